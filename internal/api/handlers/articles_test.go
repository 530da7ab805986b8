package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/nowordofalie/api-kata/internal/api/errors"
	"github.com/nowordofalie/api-kata/internal/domain/model"
	"github.com/nowordofalie/api-kata/internal/query"
	"github.com/nowordofalie/api-kata/internal/repository"
	"github.com/nowordofalie/api-kata/internal/service"
)

// failingSource — источник, всегда возвращающий ошибку снапшота.
type failingSource struct{}

func (failingSource) Snapshot(_ context.Context) ([]*model.Article, error) {
	return nil, errors.New("connection refused")
}

func (failingSource) GetByID(_ context.Context, _ string) (*model.Article, error) {
	return nil, errors.New("connection refused")
}

// newTestRouter собирает полный стек поверх указанного репозитория:
// движок, сервис, обработчики и chi-маршруты.
func newTestRouter(t *testing.T, repo repository.ArticleRepository) *chi.Mux {
	t.Helper()

	registry, err := query.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry ошибка: %v", err)
	}
	engine := query.NewEngine(registry, slog.Default())
	cache := service.NewCacheService(100, 5*time.Minute)
	svc := service.NewArticleService(repo, engine, cache, slog.Default())

	handler := NewAPIHandler(NewHealthHandler(AlwaysReady{}), svc, slog.Default())

	router := chi.NewRouter()
	router.Get("/health/ready", handler.HealthReady)
	router.Get("/api/v1/articles", handler.ListArticles)
	router.Get("/api/v1/articles/{articleId}", handler.GetArticle)
	return router
}

// seededSource — in-memory источник с двумя статьями.
func seededSource() *repository.MemorySource {
	published := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	src := repository.NewMemorySource()
	src.Add(&model.Article{
		ID: "a1", Title: "Kotlin Basics", Author: "ivanov", Tags: []string{"kotlin"},
		Status: model.StatusPublished, ReadTimeMinutes: 5,
		PublishedAt: &published, CreatedAt: published,
	})
	src.Add(&model.Article{
		ID: "a2", Title: "Go Basics", Author: "petrov", Tags: []string{"go"},
		Status: model.StatusDraft, ReadTimeMinutes: 12,
		CreatedAt: published.Add(time.Hour),
	})
	return src
}

// TestListArticles_OK проверяет фильтрацию через полный HTTP-стек.
func TestListArticles_OK(t *testing.T) {
	router := newTestRouter(t, seededSource())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles?status=published", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200; тело: %s", rec.Code, rec.Body.String())
	}

	var page PageResponse
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("ошибка декодирования ответа: %v", err)
	}

	if page.TotalElements != 1 {
		t.Errorf("totalElements = %d, ожидался 1", page.TotalElements)
	}
	if len(page.Content) != 1 || page.Content[0].ID != "a1" {
		t.Errorf("content = %v, ожидалась только статья a1", page.Content)
	}
	if page.TotalPages != 1 || page.HasNext || page.HasPrevious {
		t.Errorf("метаданные = %+v, ожидалась единственная страница", page)
	}
}

// TestListArticles_ParseError проверяет 400 со структурированной ошибкой:
// поле, отклонённое значение, причина.
func TestListArticles_ParseError(t *testing.T) {
	router := newTestRouter(t, seededSource())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles?page=-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("статус = %d, ожидался 400", rec.Code)
	}

	var body apierrors.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("ошибка декодирования ответа: %v", err)
	}

	if body.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, ожидался VALIDATION_ERROR", body.Code)
	}
	if body.Field != "page" {
		t.Errorf("field = %q, ожидался page", body.Field)
	}
	if body.RejectedValue != "-1" {
		t.Errorf("rejectedValue = %q, ожидался -1", body.RejectedValue)
	}
}

// TestListArticles_EnumError проверяет, что ошибка enum-параметра
// содержит допустимый набор значений.
func TestListArticles_EnumError(t *testing.T) {
	router := newTestRouter(t, seededSource())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles?status=removed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("статус = %d, ожидался 400", rec.Code)
	}

	var body apierrors.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("ошибка декодирования ответа: %v", err)
	}

	if body.Field != "status" {
		t.Errorf("field = %q, ожидался status", body.Field)
	}
	if len(body.AllowedValues) != 3 {
		t.Errorf("allowedValues = %v, ожидались 3 статуса", body.AllowedValues)
	}
}

// TestListArticles_SourceUnavailable проверяет 503 при недоступном источнике.
func TestListArticles_SourceUnavailable(t *testing.T) {
	router := newTestRouter(t, failingSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("статус = %d, ожидался 503", rec.Code)
	}
}

// TestGetArticle_OK проверяет получение статьи по ID.
func TestGetArticle_OK(t *testing.T) {
	router := newTestRouter(t, seededSource())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/a2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}

	var article ArticleResponse
	if err := json.NewDecoder(rec.Body).Decode(&article); err != nil {
		t.Fatalf("ошибка декодирования ответа: %v", err)
	}
	if article.ID != "a2" || article.Title != "Go Basics" {
		t.Errorf("статья = %+v, ожидалась a2 'Go Basics'", article)
	}
}

// TestGetArticle_NotFound проверяет 404 для неизвестного ID.
func TestGetArticle_NotFound(t *testing.T) {
	router := newTestRouter(t, seededSource())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("статус = %d, ожидался 404", rec.Code)
	}
}

// TestHealthReady_InMemory проверяет readiness в локальном режиме.
func TestHealthReady_InMemory(t *testing.T) {
	router := newTestRouter(t, seededSource())

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}
}
