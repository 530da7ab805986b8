// engine.go — исполнение запроса: один снапшот, один проход фильтрации,
// стабильная тотальная сортировка, срез страницы и метаданные пагинации.
// TotalElements считается по тому же снапшоту, что и срез — повторный
// запрос между подсчётом и срезом дал бы рассогласованные метаданные
// при конкурентных записях.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nowordofalie/api-kata/internal/domain/model"
)

// Source — контракт источника записей.
// Snapshot обязан вернуть консистентное point-in-time представление
// коллекции: движок выполняет подсчёт и срез по одному и тому же набору.
// Порядок записей в снапшоте не важен — движок пересортировывает.
type Source interface {
	Snapshot(ctx context.Context) ([]*model.Article, error)
}

// PageResult — страница результатов с метаданными пагинации.
// Создаётся заново на каждый запрос и после возврата не мутирует.
type PageResult struct {
	// Content — записи страницы, длина <= Size
	Content []*model.Article
	// Page — запрошенный номер страницы (с 0)
	Page int
	// Size — запрошенный размер страницы
	Size int
	// TotalElements — количество записей, прошедших фильтры
	TotalElements int64
	// TotalPages — ceil(TotalElements / Size)
	TotalPages int64
	// HasNext — существует ли следующая страница
	HasNext bool
	// HasPrevious — существует ли предыдущая страница
	HasPrevious bool
}

// Engine — движок исполнения запросов.
// Не содержит изменяемого состояния, один экземпляр обслуживает
// любое число конкурентных Execute без координации между ними.
type Engine struct {
	comparators *Registry
	logger      *slog.Logger
}

// NewEngine создаёт движок с указанным реестром компараторов.
func NewEngine(comparators *Registry, logger *slog.Logger) *Engine {
	return &Engine{
		comparators: comparators,
		logger:      logger.With(slog.String("component", "query_engine")),
	}
}

// Execute выполняет запрос против источника записей.
// Ошибка снапшота пробрасывается вызывающей стороне без ретраев —
// политика повторов принадлежит вызывающему, не движку.
func (e *Engine) Execute(ctx context.Context, spec *FilterSpec, source Source) (*PageResult, error) {
	compare, err := e.comparators.Resolve(spec.SortBy, spec.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("разрешение компаратора: %w", err)
	}

	records, err := source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("снапшот источника записей: %w", err)
	}

	// Один проход по снапшоту: конъюнкция предикатов с short-circuit.
	preds := Compile(spec)
	matched := make([]*model.Article, 0, len(records))
	for _, a := range records {
		if matchesAll(a, preds) {
			matched = append(matched, a)
		}
	}
	total := int64(len(matched))

	slices.SortStableFunc(matched, compare)

	// size >= 1 гарантирован парсером, деление безопасно.
	totalPages := (total + int64(spec.Size) - 1) / int64(spec.Size)

	// Срез страницы: выход за границы — пустая страница, не ошибка.
	// Сравнение с totalPages идёт до вычисления смещения: произведение
	// page*size переполняется при огромных, но валидных номерах страниц.
	content := []*model.Article{}
	if int64(spec.Page) < totalPages {
		start := int64(spec.Page) * int64(spec.Size)
		end := start + int64(spec.Size)
		if end > total {
			end = total
		}
		content = matched[start:end]
	}

	e.logger.Debug("Запрос выполнен",
		slog.Int64("total", total),
		slog.Int("returned", len(content)),
		slog.Int("page", spec.Page),
		slog.String("sort_by", spec.SortBy),
	)

	return &PageResult{
		Content:       content,
		Page:          spec.Page,
		Size:          spec.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		HasNext:       int64(spec.Page) < totalPages-1,
		HasPrevious:   spec.Page > 0 && total > 0,
	}, nil
}

// matchesAll проверяет конъюнкцию предикатов с выходом на первом false.
func matchesAll(a *model.Article, preds []Predicate) bool {
	for _, p := range preds {
		if !p(a) {
			return false
		}
	}
	return true
}
