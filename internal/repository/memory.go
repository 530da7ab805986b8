// memory.go — in-memory реализация ArticleRepository.
// Используется в unit-тестах и для локальной разработки без PostgreSQL
// (AQ_DB_HOST не задан). Snapshot возвращает копию внутреннего среза,
// поэтому конкурентные Add не меняют уже выданные снапшоты.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nowordofalie/api-kata/internal/domain/model"
)

// MemorySource — потокобезопасный in-memory источник статей.
// Хранимые статьи считаются неизменяемыми после Add.
type MemorySource struct {
	mu       sync.RWMutex
	articles []*model.Article
}

// NewMemorySource создаёт пустой in-memory источник.
func NewMemorySource() *MemorySource {
	return &MemorySource{}
}

// Add добавляет статью в источник.
// Пустой ID заменяется новым UUID, нулевой CreatedAt — текущим временем.
// Возвращает сохранённую статью.
func (s *MemorySource) Add(a *model.Article) *model.Article {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = append(s.articles, a)
	return a
}

// Snapshot возвращает point-in-time копию коллекции.
// Последующие Add не видны в уже выданном снапшоте.
func (s *MemorySource) Snapshot(_ context.Context) ([]*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*model.Article, len(s.articles))
	copy(snapshot, s.articles)
	return snapshot, nil
}

// GetByID возвращает статью по ID или ErrNotFound.
func (s *MemorySource) GetByID(_ context.Context, id string) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrNotFound
}
