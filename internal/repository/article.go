package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nowordofalie/api-kata/internal/domain/model"
)

// articleColumns — список столбцов таблицы articles для SELECT-запросов.
// DRY: одно место для всех SELECT'ов.
const articleColumns = `id, title, author, category, tags, status,
	read_time_minutes, published_at, created_at, view_count, like_count`

// articleRepo — реализация ArticleRepository через pgx.
type articleRepo struct {
	db DBTX
}

// NewArticleRepository создаёт репозиторий статей.
func NewArticleRepository(db DBTX) ArticleRepository {
	return &articleRepo{db: db}
}

// Snapshot читает все статьи одним SELECT.
// Один statement — один statement-level snapshot PostgreSQL (READ COMMITTED):
// подсчёт и срез в движке видят ровно этот набор записей, вставка между
// подсчётом и срезом невозможна по построению.
func (r *articleRepo) Snapshot(ctx context.Context) ([]*model.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles`, articleColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения снапшота статей: %w", err)
	}
	defer rows.Close()

	var result []*model.Article
	for rows.Next() {
		a := &model.Article{}
		if err := scanArticle(rows, a); err != nil {
			return nil, fmt.Errorf("ошибка сканирования статьи: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	return result, nil
}

// GetByID возвращает статью по UUID или ErrNotFound.
func (r *articleRepo) GetByID(ctx context.Context, id string) (*model.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1`, articleColumns)

	a := &model.Article{}
	if err := scanArticle(r.db.QueryRow(ctx, query, id), a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения статьи: %w", err)
	}
	return a, nil
}

// scanArticle сканирует одну строку articles в модель.
func scanArticle(row pgx.Row, a *model.Article) error {
	return row.Scan(
		&a.ID, &a.Title, &a.Author, &a.Category, &a.Tags, &a.Status,
		&a.ReadTimeMinutes, &a.PublishedAt, &a.CreatedAt, &a.ViewCount, &a.LikeCount,
	)
}
