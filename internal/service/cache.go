// Пакет service — бизнес-логика Articles Query Service.
// CacheService — LRU-кэш статей с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nowordofalie/api-kata/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aq_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш статей.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aq_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша статей.",
	})
)

// CacheService — LRU-кэш статей с автоматическим TTL.
// Каждый экземпляр сервиса имеет собственный in-memory кэш
// (per-instance, stateless архитектура).
type CacheService struct {
	cache *expirable.LRU[string, *model.Article]
}

// NewCacheService создаёт LRU-кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество записей в кэше.
// ttl — время жизни записи после добавления.
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	cache := expirable.NewLRU[string, *model.Article](maxSize, nil, ttl)
	return &CacheService{cache: cache}
}

// Get возвращает статью из кэша по ID.
// Возвращает (запись, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *CacheService) Get(id string) (*model.Article, bool) {
	val, ok := c.cache.Get(id)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись в кэше.
func (c *CacheService) Set(id string, article *model.Article) {
	c.cache.Add(id, article)
}

// Delete удаляет запись из кэша (инвалидация).
func (c *CacheService) Delete(id string) {
	c.cache.Remove(id)
}
