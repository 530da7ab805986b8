// articles.go — сервис чтения статей.
// Координирует движок запросов, repository, LRU cache и Prometheus-метрики.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nowordofalie/api-kata/internal/domain/model"
	"github.com/nowordofalie/api-kata/internal/query"
	"github.com/nowordofalie/api-kata/internal/repository"
)

// Ошибки сервисного слоя.
var (
	// ErrNotFound — статья не найдена.
	ErrNotFound = errors.New("статья не найдена")
)

// Prometheus-метрики поиска.
var (
	searchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aq_search_total",
		Help: "Общее количество поисковых запросов по статьям.",
	})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aq_search_duration_seconds",
		Help:    "Длительность поисковых запросов по статьям.",
		Buckets: prometheus.DefBuckets,
	})
)

// ArticleService — сервис поиска статей и получения метаданных.
type ArticleService struct {
	repo   repository.ArticleRepository
	engine *query.Engine
	cache  *CacheService
	logger *slog.Logger
}

// NewArticleService создаёт сервис статей.
func NewArticleService(
	repo repository.ArticleRepository,
	engine *query.Engine,
	cache *CacheService,
	logger *slog.Logger,
) *ArticleService {
	return &ArticleService{
		repo:   repo,
		engine: engine,
		cache:  cache,
		logger: logger.With(slog.String("component", "article_service")),
	}
}

// Search выполняет запрос по валидированной FilterSpec.
// Обновляет Prometheus-метрики (search_total, search_duration_seconds).
// Ошибка источника пробрасывается без ретраев.
func (s *ArticleService) Search(ctx context.Context, spec *query.FilterSpec) (*query.PageResult, error) {
	start := time.Now()
	searchTotal.Inc()

	result, err := s.engine.Execute(ctx, spec, s.repo)
	if err != nil {
		return nil, fmt.Errorf("поиск статей: %w", err)
	}

	duration := time.Since(start)
	searchDuration.Observe(duration.Seconds())

	s.logger.Debug("Поиск выполнен",
		slog.Int64("total", result.TotalElements),
		slog.Int("returned", len(result.Content)),
		slog.Duration("duration", duration),
	)

	return result, nil
}

// GetArticle возвращает статью по ID.
// Сначала проверяет LRU-кэш, при промахе — запрос к репозиторию, результат кэшируется.
func (s *ArticleService) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	// Проверяем кэш
	if article, ok := s.cache.Get(id); ok {
		s.logger.Debug("Кэш hit для статьи", slog.String("article_id", id))
		return article, nil
	}

	// Cache miss — запрос к репозиторию
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение статьи: %w", err)
	}

	// Сохраняем в кэш
	s.cache.Set(id, article)

	return article, nil
}
