package service

import (
	"testing"
	"time"

	"github.com/nowordofalie/api-kata/internal/domain/model"
)

// TestCacheService_GetSet проверяет базовые операции Get/Set.
func TestCacheService_GetSet(t *testing.T) {
	cache := NewCacheService(100, 5*time.Minute)

	article := &model.Article{
		ID:     "test-uuid-1",
		Title:  "Go Basics",
		Author: "ivanov",
		Status: model.StatusPublished,
	}

	// Cache miss
	_, ok := cache.Get("test-uuid-1")
	if ok {
		t.Fatal("ожидался cache miss для нового ключа")
	}

	// Set + cache hit
	cache.Set("test-uuid-1", article)
	got, ok := cache.Get("test-uuid-1")
	if !ok {
		t.Fatal("ожидался cache hit после Set")
	}
	if got.ID != "test-uuid-1" {
		t.Errorf("ID = %q, ожидался %q", got.ID, "test-uuid-1")
	}
	if got.Title != "Go Basics" {
		t.Errorf("Title = %q, ожидался %q", got.Title, "Go Basics")
	}
}

// TestCacheService_Delete проверяет удаление из кэша (инвалидация).
func TestCacheService_Delete(t *testing.T) {
	cache := NewCacheService(100, 5*time.Minute)

	cache.Set("delete-me", &model.Article{ID: "delete-me"})

	// Проверяем что запись есть
	_, ok := cache.Get("delete-me")
	if !ok {
		t.Fatal("ожидался cache hit перед удалением")
	}

	// Удаляем
	cache.Delete("delete-me")

	// Проверяем что записи больше нет
	_, ok = cache.Get("delete-me")
	if ok {
		t.Fatal("ожидался cache miss после Delete")
	}
}

// TestCacheService_TTLExpiration проверяет автоматическое истечение TTL.
func TestCacheService_TTLExpiration(t *testing.T) {
	// Короткий TTL = 50ms для теста
	cache := NewCacheService(100, 50*time.Millisecond)

	cache.Set("ttl-test", &model.Article{ID: "ttl-test"})

	// Сразу после Set — должен быть hit
	_, ok := cache.Get("ttl-test")
	if !ok {
		t.Fatal("ожидался cache hit сразу после Set")
	}

	// Ждём истечения TTL
	time.Sleep(100 * time.Millisecond)

	// После истечения TTL — должен быть miss
	_, ok = cache.Get("ttl-test")
	if ok {
		t.Fatal("ожидался cache miss после истечения TTL")
	}
}

// TestCacheService_Eviction проверяет вытеснение при превышении maxSize.
func TestCacheService_Eviction(t *testing.T) {
	// Кэш на 2 записи
	cache := NewCacheService(2, 5*time.Minute)

	cache.Set("r1", &model.Article{ID: "r1"})
	cache.Set("r2", &model.Article{ID: "r2"})

	// Обе записи в кэше
	if _, ok := cache.Get("r1"); !ok {
		t.Fatal("ожидался cache hit для r1")
	}
	if _, ok := cache.Get("r2"); !ok {
		t.Fatal("ожидался cache hit для r2")
	}

	// Добавляем третью — r1 должна быть вытеснена (LRU: последний Get был для r2)
	cache.Set("r3", &model.Article{ID: "r3"})

	// r3 должна быть в кэше
	if _, ok := cache.Get("r3"); !ok {
		t.Fatal("ожидался cache hit для r3")
	}
}

// TestCacheService_Update проверяет обновление записи в кэше.
func TestCacheService_Update(t *testing.T) {
	cache := NewCacheService(100, 5*time.Minute)

	cache.Set("update-test", &model.Article{ID: "update-test", Title: "Старый заголовок"})
	cache.Set("update-test", &model.Article{ID: "update-test", Title: "Новый заголовок"})

	got, ok := cache.Get("update-test")
	if !ok {
		t.Fatal("ожидался cache hit после обновления")
	}
	if got.Title != "Новый заголовок" {
		t.Errorf("Title = %q, ожидался %q", got.Title, "Новый заголовок")
	}
}
