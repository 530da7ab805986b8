// parse.go — строгий двухфазный парсинг параметров запроса.
// Фаза 1: пополевые проверки в объявленном порядке полей.
// Фаза 2: межполевые инварианты (min <= max).
// Результат — либо полностью валидная FilterSpec, либо ровно одна ParseError.
package query

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nowordofalie/api-kata/internal/domain/model"
)

// Статусы, допустимые в параметре status.
var statusValues = []string{model.StatusDraft, model.StatusPublished, model.StatusArchived}

// Направления, допустимые в параметре sortOrder.
var sortOrderValues = []string{string(SortAsc), string(SortDesc)}

// Parse преобразует сырые параметры запроса в валидированную FilterSpec.
// Отсутствующий ключ — значение по умолчанию, никогда не пустая строка.
// Парсинг чистый и тотальный: для любого входа результат — либо FilterSpec,
// либо одна детерминированная ошибка (первое нарушение).
func Parse(raw map[string]string) (*FilterSpec, error) {
	spec := &FilterSpec{
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		Page:      0,
		Size:      DefaultSize,
	}

	// --- Фаза 1: пополевые проверки ---

	spec.Title = optionalString(raw, "title")
	spec.Author = optionalString(raw, "author")
	spec.Category = optionalString(raw, "category")
	spec.Tags = parseTags(raw["tags"])

	if v, ok := raw["status"]; ok {
		status := strings.ToLower(strings.TrimSpace(v))
		if !slices.Contains(statusValues, status) {
			return nil, &ParseError{
				Field:         "status",
				RejectedValue: v,
				Reason:        "неизвестный статус",
				AllowedValues: statusValues,
			}
		}
		spec.Status = &status
	}

	var err error
	if spec.MinReadTime, err = optionalNonNegativeInt(raw, "minReadTime"); err != nil {
		return nil, err
	}
	if spec.MaxReadTime, err = optionalNonNegativeInt(raw, "maxReadTime"); err != nil {
		return nil, err
	}

	if spec.PublishedAfter, err = optionalInstant(raw, "publishedAfter"); err != nil {
		return nil, err
	}
	if spec.PublishedBefore, err = optionalInstant(raw, "publishedBefore"); err != nil {
		return nil, err
	}

	if v, ok := raw["sortBy"]; ok {
		if !slices.Contains(SortKeys, v) {
			return nil, &ParseError{
				Field:         "sortBy",
				RejectedValue: v,
				Reason:        "неизвестный ключ сортировки",
				AllowedValues: SortKeys,
			}
		}
		spec.SortBy = v
	}

	if v, ok := raw["sortOrder"]; ok {
		order := strings.ToLower(strings.TrimSpace(v))
		if !slices.Contains(sortOrderValues, order) {
			return nil, &ParseError{
				Field:         "sortOrder",
				RejectedValue: v,
				Reason:        "неизвестное направление сортировки",
				AllowedValues: sortOrderValues,
			}
		}
		spec.SortOrder = SortOrder(order)
	}

	if v, ok := raw["page"]; ok {
		page, perr := strconv.Atoi(v)
		if perr != nil {
			return nil, &ParseError{Field: "page", RejectedValue: v, Reason: "не является целым числом"}
		}
		if page < 0 {
			return nil, &ParseError{Field: "page", RejectedValue: v, Reason: "не может быть отрицательным"}
		}
		spec.Page = page
	}

	// Явно заданный size за пределами [1, MaxSize] — ошибка, а не молчаливый clamp:
	// клиент должен получать ровно то, что запросил, или явный отказ.
	if v, ok := raw["size"]; ok {
		size, perr := strconv.Atoi(v)
		if perr != nil {
			return nil, &ParseError{Field: "size", RejectedValue: v, Reason: "не является целым числом"}
		}
		if size < 1 || size > MaxSize {
			return nil, &ParseError{
				Field:         "size",
				RejectedValue: v,
				Reason:        "вне допустимого диапазона [1, 100]",
			}
		}
		spec.Size = size
	}

	// --- Фаза 2: межполевые инварианты ---

	if spec.MinReadTime != nil && spec.MaxReadTime != nil && *spec.MinReadTime > *spec.MaxReadTime {
		return nil, &ParseError{
			Field:         "minReadTime, maxReadTime",
			RejectedValue: raw["minReadTime"],
			Reason:        "minReadTime не может быть больше maxReadTime",
		}
	}
	if spec.PublishedAfter != nil && spec.PublishedBefore != nil &&
		spec.PublishedAfter.After(*spec.PublishedBefore) {
		return nil, &ParseError{
			Field:         "publishedAfter, publishedBefore",
			RejectedValue: raw["publishedAfter"],
			Reason:        "publishedAfter не может быть позже publishedBefore",
		}
	}

	return spec, nil
}

// optionalString возвращает указатель на значение параметра.
// Отсутствующий ключ и пустая строка эквивалентны «фильтр не задан».
func optionalString(raw map[string]string, key string) *string {
	v, ok := raw[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}

// parseTags разбирает comma-separated список тегов:
// сегменты триммятся, пустые отбрасываются, дубликаты удаляются (case-sensitive).
func parseTags(v string) []string {
	if v == "" {
		return nil
	}
	var tags []string
	for _, seg := range strings.Split(v, ",") {
		tag := strings.TrimSpace(seg)
		if tag == "" {
			continue
		}
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// optionalNonNegativeInt парсит неотрицательное целое.
// Нечисловое или отрицательное значение — ошибка, не молчаливая коэрция.
func optionalNonNegativeInt(raw map[string]string, key string) (*int, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, &ParseError{Field: key, RejectedValue: v, Reason: "не является целым числом"}
	}
	if n < 0 {
		return nil, &ParseError{Field: key, RejectedValue: v, Reason: "не может быть отрицательным"}
	}
	return &n, nil
}

// optionalInstant парсит момент времени в формате RFC 3339 (date-time с offset).
func optionalInstant(raw map[string]string, key string) (*time.Time, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, &ParseError{
			Field:         key,
			RejectedValue: v,
			Reason:        "некорректная метка времени, ожидается RFC 3339 (например 2026-01-15T10:00:00Z)",
		}
	}
	return &t, nil
}
