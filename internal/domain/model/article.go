// Пакет model — доменные модели Articles Query Service.
// Article — маппинг таблицы articles (owned by CMS Module).
package model

import "time"

// Статусы статьи.
const (
	// StatusDraft — черновик, не опубликована.
	StatusDraft = "draft"
	// StatusPublished — опубликована.
	StatusPublished = "published"
	// StatusArchived — архивная, скрыта из основной выдачи.
	StatusArchived = "archived"
)

// Article — запись статьи в реестре articles.
// Сервис использует эту модель только для чтения; счётчики просмотров и лайков
// обновляются внешними модулями (CMS).
type Article struct {
	// ID — UUID статьи (задаётся при создании через CMS Module), неизменяемый
	ID string
	// Title — заголовок статьи
	Title string
	// Author — идентификатор автора
	Author string
	// Category — категория (enum-like строка)
	Category string
	// Tags — теги статьи (массив строк)
	Tags []string
	// Status — статус статьи: draft, published, archived
	Status string
	// ReadTimeMinutes — оценка времени чтения в минутах (>= 0)
	ReadTimeMinutes int
	// PublishedAt — время публикации (nil для неопубликованных)
	PublishedAt *time.Time
	// CreatedAt — время создания записи, неизменяемое
	CreatedAt time.Time
	// ViewCount — количество просмотров
	ViewCount int64
	// LikeCount — количество лайков
	LikeCount int64
}
