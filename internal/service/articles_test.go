package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/nowordofalie/api-kata/internal/domain/model"
	"github.com/nowordofalie/api-kata/internal/query"
	"github.com/nowordofalie/api-kata/internal/repository"
)

// --- Mock repository ---

// mockArticleRepo — мок ArticleRepository для unit-тестов.
type mockArticleRepo struct {
	snapshotFn func(ctx context.Context) ([]*model.Article, error)
	getByIDFn  func(ctx context.Context, id string) (*model.Article, error)
}

func (m *mockArticleRepo) Snapshot(ctx context.Context) ([]*model.Article, error) {
	if m.snapshotFn != nil {
		return m.snapshotFn(ctx)
	}
	return nil, nil
}

func (m *mockArticleRepo) GetByID(ctx context.Context, id string) (*model.Article, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

// newService — хелпер: сервис поверх мока с дефолтным движком.
func newService(t *testing.T, repo repository.ArticleRepository) *ArticleService {
	t.Helper()
	registry, err := query.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry ошибка: %v", err)
	}
	engine := query.NewEngine(registry, slog.Default())
	cache := NewCacheService(100, 5*time.Minute)
	return NewArticleService(repo, engine, cache, slog.Default())
}

// specOK — хелпер: FilterSpec из сырых параметров.
func specOK(t *testing.T, raw map[string]string) *query.FilterSpec {
	t.Helper()
	spec, err := query.Parse(raw)
	if err != nil {
		t.Fatalf("Parse ошибка: %v", err)
	}
	return spec
}

// --- Тесты ArticleService ---

// TestArticleService_Search проверяет выполнение поиска через движок.
func TestArticleService_Search(t *testing.T) {
	articles := []*model.Article{
		{ID: "a1", Title: "Go Basics", Status: model.StatusPublished},
		{ID: "a2", Title: "Kotlin Basics", Status: model.StatusPublished},
	}

	repo := &mockArticleRepo{
		snapshotFn: func(_ context.Context) ([]*model.Article, error) {
			return articles, nil
		},
	}
	svc := newService(t, repo)

	result, err := svc.Search(context.Background(), specOK(t, map[string]string{}))
	if err != nil {
		t.Fatalf("Search ошибка: %v", err)
	}

	if result.TotalElements != 2 {
		t.Errorf("TotalElements = %d, ожидался 2", result.TotalElements)
	}
	if len(result.Content) != 2 {
		t.Errorf("Content = %d статей, ожидалось 2", len(result.Content))
	}
	if result.HasNext {
		t.Error("HasNext = true, ожидался false")
	}
}

// TestArticleService_Search_HasNext проверяет флаг HasNext при пагинации.
func TestArticleService_Search_HasNext(t *testing.T) {
	articles := make([]*model.Article, 0, 5)
	for _, id := range []string{"a1", "a2", "a3", "a4", "a5"} {
		articles = append(articles, &model.Article{ID: id, Status: model.StatusPublished})
	}

	repo := &mockArticleRepo{
		snapshotFn: func(_ context.Context) ([]*model.Article, error) {
			return articles, nil
		},
	}
	svc := newService(t, repo)

	result, err := svc.Search(context.Background(), specOK(t, map[string]string{"size": "2"}))
	if err != nil {
		t.Fatalf("Search ошибка: %v", err)
	}

	if !result.HasNext {
		t.Error("HasNext = false, ожидался true (total=5, size=2, page=0)")
	}
	if result.TotalPages != 3 {
		t.Errorf("TotalPages = %d, ожидался 3", result.TotalPages)
	}
}

// TestArticleService_Search_SourceError проверяет проброс ошибки источника
// без ретраев и подмены.
func TestArticleService_Search_SourceError(t *testing.T) {
	sourceErr := errors.New("connection refused")
	repo := &mockArticleRepo{
		snapshotFn: func(_ context.Context) ([]*model.Article, error) {
			return nil, sourceErr
		},
	}
	svc := newService(t, repo)

	_, err := svc.Search(context.Background(), specOK(t, map[string]string{}))
	if !errors.Is(err, sourceErr) {
		t.Errorf("ошибка = %v, ожидалась обёртка над ошибкой источника", err)
	}
}

// TestArticleService_GetArticle_CacheHit проверяет получение из кэша.
func TestArticleService_GetArticle_CacheHit(t *testing.T) {
	callCount := 0
	repo := &mockArticleRepo{
		getByIDFn: func(_ context.Context, _ string) (*model.Article, error) {
			callCount++
			return &model.Article{ID: "cached-article", Status: model.StatusPublished}, nil
		},
	}
	svc := newService(t, repo)

	// Первый вызов — cache miss, идёт в репозиторий
	article, err := svc.GetArticle(context.Background(), "cached-article")
	if err != nil {
		t.Fatalf("GetArticle ошибка: %v", err)
	}
	if article.ID != "cached-article" {
		t.Errorf("ID = %q, ожидался %q", article.ID, "cached-article")
	}
	if callCount != 1 {
		t.Errorf("repo.GetByID вызван %d раз, ожидался 1", callCount)
	}

	// Второй вызов — cache hit, в репозиторий не идёт
	article, err = svc.GetArticle(context.Background(), "cached-article")
	if err != nil {
		t.Fatalf("GetArticle ошибка (cache hit): %v", err)
	}
	if article.ID != "cached-article" {
		t.Errorf("ID = %q, ожидался %q", article.ID, "cached-article")
	}
	if callCount != 1 {
		t.Errorf("repo.GetByID вызван %d раз, ожидался 1 (cache hit)", callCount)
	}
}

// TestArticleService_GetArticle_NotFound проверяет ErrNotFound.
func TestArticleService_GetArticle_NotFound(t *testing.T) {
	repo := &mockArticleRepo{
		getByIDFn: func(_ context.Context, _ string) (*model.Article, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := newService(t, repo)

	_, err := svc.GetArticle(context.Background(), "non-existent")
	if err == nil {
		t.Fatal("ожидалась ошибка ErrNotFound")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ошибка = %v, ожидалась ErrNotFound", err)
	}
}
