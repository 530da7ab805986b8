// comparator.go — реестр компараторов для whitelist-ключей сортировки.
// Каждый компаратор даёт тотальный порядок: первичный ключ, затем
// фиксированный tie-break по ID (всегда по возрастанию). Без тотального
// порядка пагинация нестабильна — одна и та же запись может появиться
// на двух страницах или исчезнуть со всех.
package query

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/nowordofalie/api-kata/internal/domain/model"
)

// ErrNoComparator — для whitelist-ключа не зарегистрирован компаратор.
// Это программный дефект (рассинхронизация whitelist и реестра),
// фатальный на старте; при обработке запросов недостижим.
var ErrNoComparator = errors.New("компаратор не зарегистрирован")

// Comparator — тотальная функция сравнения двух статей.
// Возвращает отрицательное значение, 0 или положительное (семантика cmp.Compare).
// Ноль возможен только при равных ID.
type Comparator func(a, b *model.Article) int

// sortKey — первичный ключ сортировки.
type sortKey struct {
	// primary сравнивает конкретные значения первичного ключа по возрастанию
	primary func(a, b *model.Article) int
	// isNull отмечает отсутствие значения ключа (nil для всегда заполненных ключей)
	isNull func(*model.Article) bool
}

// Registry — реестр компараторов по ключам сортировки.
type Registry struct {
	keys map[string]sortKey
}

// NewRegistry создаёт реестр со встроенными компараторами и проверяет,
// что каждый ключ из SortKeys покрыт. Непокрытый ключ — ошибка конфигурации,
// вызывающая сторона обязана завершиться на старте.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		keys: map[string]sortKey{
			"title": {primary: func(a, b *model.Article) int {
				return strings.Compare(a.Title, b.Title)
			}},
			"author": {primary: func(a, b *model.Article) int {
				return strings.Compare(a.Author, b.Author)
			}},
			"publishedAt": {
				primary: func(a, b *model.Article) int {
					return a.PublishedAt.Compare(*b.PublishedAt)
				},
				isNull: func(a *model.Article) bool { return a.PublishedAt == nil },
			},
			"createdAt": {primary: func(a, b *model.Article) int {
				return a.CreatedAt.Compare(b.CreatedAt)
			}},
			"viewCount": {primary: func(a, b *model.Article) int {
				return cmp.Compare(a.ViewCount, b.ViewCount)
			}},
			"likeCount": {primary: func(a, b *model.Article) int {
				return cmp.Compare(a.LikeCount, b.LikeCount)
			}},
			"readTimeMinutes": {primary: func(a, b *model.Article) int {
				return cmp.Compare(a.ReadTimeMinutes, b.ReadTimeMinutes)
			}},
		},
	}

	for _, key := range SortKeys {
		if _, ok := r.keys[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoComparator, key)
		}
	}
	return r, nil
}

// Resolve возвращает компаратор для ключа сортировки и направления.
// Правила:
//   - записи без значения первичного ключа сортируются последними
//     независимо от направления;
//   - направление Desc инвертирует только сравнение первичного ключа;
//   - tie-break по ID всегда по возрастанию, в обоих направлениях.
func (r *Registry) Resolve(sortBy string, order SortOrder) (Comparator, error) {
	key, ok := r.keys[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoComparator, sortBy)
	}

	return func(a, b *model.Article) int {
		if key.isNull != nil {
			aNull, bNull := key.isNull(a), key.isNull(b)
			switch {
			case aNull && bNull:
				return strings.Compare(a.ID, b.ID)
			case aNull:
				return 1
			case bNull:
				return -1
			}
		}

		c := key.primary(a, b)
		if order == SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	}, nil
}
