package service

import (
	"context"
	"shortlink-service/internal/models"
	"shortlink-service/internal/producer"
	"time"

	"github.com/google/uuid"
)

// LinkStore — контракт хранилища ссылок. Exists/Claim образуют протокол
// занятия кода: кандидат сперва проверяется, затем атомарно вставляется,
// а финальную уникальность гарантирует уникальный индекс БД.
type LinkStore interface {
	Claim(link *models.ShortLink) error
	CodeExists(code string) (bool, error)
	FindByCode(code string) (*models.ShortLink, error)
	FindLiveByLongURL(longURL string) (*models.ShortLink, error)
	Update(link *models.ShortLink) error
	Delete(link *models.ShortLink) error
	NextSequentialID() (uint64, error)
}

type ClickStore interface {
	Record(click *models.Click) error
	GetRecent(shortLinkID uuid.UUID) ([]models.Click, error)
	GetUniqueIPCount(shortLinkID uuid.UUID) (int64, error)
	GetDailyStats(shortLinkID uuid.UUID) (map[string]int64, error)
}

// CachedLink — компактная запись для кеша редиректов.
type CachedLink struct {
	ID      uuid.UUID `json:"id"`
	LongURL string    `json:"long_url"`
}

type LinkCache interface {
	Get(ctx context.Context, code string) (*CachedLink, bool)
	Set(ctx context.Context, code string, link CachedLink, ttl time.Duration)
	Invalidate(ctx context.Context, code string)
}

type ClickPublisher interface {
	PublishClick(ctx context.Context, msg producer.ClickMessage) error
}
