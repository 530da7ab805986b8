// articles.go — обработчики GET /api/v1/articles и GET /api/v1/articles/{articleId}.
// HTTP-слой только адаптирует транспорт к движку запросов: параметры →
// парсер → FilterSpec → service; вся семантика фильтрации живёт в internal/query.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/nowordofalie/api-kata/internal/api/errors"
	"github.com/nowordofalie/api-kata/internal/domain/model"
	"github.com/nowordofalie/api-kata/internal/query"
	"github.com/nowordofalie/api-kata/internal/service"
)

// ListArticles — реализация GET /api/v1/articles.
// Ошибка парсинга → 400 со структурированным телом (ровно одно нарушение);
// недоступность источника → 503; дефект конфигурации сортировки → 500.
func (h *APIHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	// Сырые параметры: при повторении ключа берётся первое значение
	raw := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}

	spec, err := query.Parse(raw)
	if err != nil {
		var perr *query.ParseError
		if errors.As(err, &perr) {
			apierrors.WriteParseError(w, perr)
			return
		}
		apierrors.ValidationError(w, err.Error())
		return
	}

	result, err := h.articles.Search(r.Context(), spec)
	if err != nil {
		if errors.Is(err, query.ErrNoComparator) {
			h.logger.Error("Рассинхронизация whitelist сортировки и реестра компараторов",
				slog.String("error", err.Error()),
			)
			apierrors.InternalError(w, "Внутренняя ошибка конфигурации сортировки")
			return
		}
		h.logger.Error("Источник статей недоступен",
			slog.String("error", err.Error()),
		)
		apierrors.SourceUnavailableError(w, "Источник статей временно недоступен")
		return
	}

	writeJSON(w, http.StatusOK, pageResultToResponse(result))
}

// GetArticle — реализация GET /api/v1/articles/{articleId}.
func (h *APIHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleId")
	if articleID == "" {
		apierrors.ValidationError(w, "Не указан идентификатор статьи")
		return
	}

	article, err := h.articles.GetArticle(r.Context(), articleID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFoundError(w, "Статья не найдена")
			return
		}
		h.logger.Error("Ошибка получения статьи",
			slog.String("article_id", articleID),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка при получении статьи")
		return
	}

	writeJSON(w, http.StatusOK, articleToResponse(article))
}

// --- API-типы ответов ---

// ArticleResponse — представление статьи в API.
type ArticleResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Category        string     `json:"category,omitempty"`
	Tags            []string   `json:"tags"`
	Status          string     `json:"status"`
	ReadTimeMinutes int        `json:"readTimeMinutes"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	ViewCount       int64      `json:"viewCount"`
	LikeCount       int64      `json:"likeCount"`
}

// PageResponse — страница статей с метаданными пагинации.
type PageResponse struct {
	Content       []ArticleResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int64             `json:"totalPages"`
	HasNext       bool              `json:"hasNext"`
	HasPrevious   bool              `json:"hasPrevious"`
}

// articleToResponse конвертирует domain-модель в API-тип.
func articleToResponse(a *model.Article) ArticleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:              a.ID,
		Title:           a.Title,
		Author:          a.Author,
		Category:        a.Category,
		Tags:            tags,
		Status:          a.Status,
		ReadTimeMinutes: a.ReadTimeMinutes,
		PublishedAt:     a.PublishedAt,
		CreatedAt:       a.CreatedAt,
		ViewCount:       a.ViewCount,
		LikeCount:       a.LikeCount,
	}
}

// pageResultToResponse конвертирует результат движка в API-тип.
func pageResultToResponse(result *query.PageResult) PageResponse {
	content := make([]ArticleResponse, 0, len(result.Content))
	for _, a := range result.Content {
		content = append(content, articleToResponse(a))
	}
	return PageResponse{
		Content:       content,
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		HasNext:       result.HasNext,
		HasPrevious:   result.HasPrevious,
	}
}
