// Пакет query — движок динамических запросов по статьям:
// парсинг параметров, компиляция предикатов, сортировка и пагинация.
// Движок не содержит разделяемого изменяемого состояния и безопасен
// для конкурентного использования.
package query

import (
	"fmt"
	"time"
)

// SortOrder — направление сортировки.
type SortOrder string

// Допустимые направления сортировки.
const (
	// SortAsc — по возрастанию.
	SortAsc SortOrder = "asc"
	// SortDesc — по убыванию.
	SortDesc SortOrder = "desc"
)

// Значения по умолчанию и границы пагинации.
const (
	// DefaultSize — размер страницы, если параметр size не задан.
	DefaultSize = 20
	// MaxSize — максимально допустимый размер страницы.
	MaxSize = 100
	// DefaultSortBy — ключ сортировки, если параметр sortBy не задан.
	DefaultSortBy = "createdAt"
	// DefaultSortOrder — направление сортировки, если sortOrder не задан.
	DefaultSortOrder = SortDesc
)

// SortKeys — whitelist допустимых ключей сортировки.
// Неизвестный ключ отклоняется на этапе парсинга и никогда
// не достигает реестра компараторов.
var SortKeys = []string{
	"title",
	"author",
	"publishedAt",
	"createdAt",
	"viewCount",
	"likeCount",
	"readTimeMinutes",
}

// FilterSpec — валидированное, неизменяемое представление запроса клиента.
// Конструируется только парсером (Parse) и после этого не мутирует,
// поэтому её можно безопасно разделять между конкурентными чтениями.
// nil-поля означают «фильтр не применяется».
type FilterSpec struct {
	// Title — подстрока заголовка (case-insensitive)
	Title *string
	// Author — автор (exact match)
	Author *string
	// Category — категория (exact match)
	Category *string
	// Tags — теги (match-any: достаточно пересечения по одному тегу)
	Tags []string
	// Status — статус статьи (draft, published, archived)
	Status *string
	// MinReadTime — минимальное время чтения в минутах
	MinReadTime *int
	// MaxReadTime — максимальное время чтения в минутах
	MaxReadTime *int
	// PublishedAfter — опубликованные не раньше указанного момента
	PublishedAfter *time.Time
	// PublishedBefore — опубликованные не позже указанного момента
	PublishedBefore *time.Time
	// SortBy — ключ сортировки из SortKeys
	SortBy string
	// SortOrder — направление сортировки
	SortOrder SortOrder
	// Page — номер страницы, начиная с 0
	Page int
	// Size — размер страницы, [1, MaxSize]
	Size int
}

// ParseError — структурированная ошибка парсинга параметров запроса.
// Всегда описывает ровно одно (первое) нарушение.
type ParseError struct {
	// Field — имя параметра с нарушением
	Field string
	// RejectedValue — отклонённое значение в исходном виде
	RejectedValue string
	// Reason — причина отклонения
	Reason string
	// AllowedValues — допустимые значения (для enum-параметров)
	AllowedValues []string
}

// Error реализует интерфейс error.
func (e *ParseError) Error() string {
	if len(e.AllowedValues) > 0 {
		return fmt.Sprintf("параметр %s: %s (значение %q, допустимые: %v)",
			e.Field, e.Reason, e.RejectedValue, e.AllowedValues)
	}
	return fmt.Sprintf("параметр %s: %s (значение %q)", e.Field, e.Reason, e.RejectedValue)
}
