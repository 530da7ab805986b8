// Пакет repository — слой доступа к данным Articles Query Service.
// Сервис — read-only потребитель таблицы articles (owned by CMS Module):
// чистый SQL через pgx, без ORM. Вся фильтрация и сортировка выполняются
// движком запросов in-memory, поэтому контракт источника — один
// консистентный снапшот, а не динамический WHERE.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nowordofalie/api-kata/internal/domain/model"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx, что позволяет
// использовать репозитории как внутри, так и вне транзакций.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ArticleRepository — источник статей для движка запросов.
type ArticleRepository interface {
	// Snapshot возвращает консистентное point-in-time представление
	// всех статей. Порядок не специфицирован — движок пересортировывает.
	Snapshot(ctx context.Context) ([]*model.Article, error)
	// GetByID возвращает статью по UUID или ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Article, error)
}
