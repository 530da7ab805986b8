// predicate.go — компиляция FilterSpec в упорядоченный список предикатов.
// Каждое заполненное опциональное поле даёт ровно один предикат;
// отсутствующие поля не дают ничего — стоимость пропорциональна числу
// активных фильтров, а не полному набору полей.
package query

import (
	"slices"
	"strings"

	"github.com/nowordofalie/api-kata/internal/domain/model"
)

// Predicate — чистая булева проверка одной статьи.
// Предикаты не имеют разделяемого состояния и безопасны для
// конкурентного вызова по записям и по запросам.
type Predicate func(*model.Article) bool

// Compile строит список предикатов по заполненным полям FilterSpec.
// Все предикаты комбинируются строгой конъюнкцией (AND); OR-семантика
// движком не поддерживается — документированное ограничение.
func Compile(spec *FilterSpec) []Predicate {
	var preds []Predicate

	if spec.Title != nil {
		// Подстрочный поиск без учёта регистра
		needle := strings.ToLower(*spec.Title)
		preds = append(preds, func(a *model.Article) bool {
			return strings.Contains(strings.ToLower(a.Title), needle)
		})
	}

	if spec.Author != nil {
		author := *spec.Author
		preds = append(preds, func(a *model.Article) bool {
			return a.Author == author
		})
	}

	if spec.Category != nil {
		category := *spec.Category
		preds = append(preds, func(a *model.Article) bool {
			return a.Category == category
		})
	}

	if len(spec.Tags) > 0 {
		// Match-any: достаточно пересечения хотя бы по одному тегу.
		// Сознательный выбор политики, match-all не требуется.
		wanted := spec.Tags
		preds = append(preds, func(a *model.Article) bool {
			for _, tag := range a.Tags {
				if slices.Contains(wanted, tag) {
					return true
				}
			}
			return false
		})
	}

	if spec.Status != nil {
		status := *spec.Status
		preds = append(preds, func(a *model.Article) bool {
			return a.Status == status
		})
	}

	// Диапазоны полуоткрытые: отсутствующая граница не ограничивает свою сторону.
	if spec.MinReadTime != nil {
		minRead := *spec.MinReadTime
		preds = append(preds, func(a *model.Article) bool {
			return a.ReadTimeMinutes >= minRead
		})
	}
	if spec.MaxReadTime != nil {
		maxRead := *spec.MaxReadTime
		preds = append(preds, func(a *model.Article) bool {
			return a.ReadTimeMinutes <= maxRead
		})
	}

	// Фильтры по дате публикации не проходят для неопубликованных статей
	// (PublishedAt == nil): у них нет момента публикации в диапазоне.
	if spec.PublishedAfter != nil {
		after := *spec.PublishedAfter
		preds = append(preds, func(a *model.Article) bool {
			return a.PublishedAt != nil && !a.PublishedAt.Before(after)
		})
	}
	if spec.PublishedBefore != nil {
		before := *spec.PublishedBefore
		preds = append(preds, func(a *model.Article) bool {
			return a.PublishedAt != nil && !a.PublishedAt.After(before)
		})
	}

	return preds
}
