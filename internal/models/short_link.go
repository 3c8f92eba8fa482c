package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShortLink struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code     string    `gorm:"type:text;uniqueIndex;not null"`
	LongURL  string    `gorm:"type:text;not null"`
	IsCustom bool      `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt *time.Time

	Clicks        int64 `gorm:"not null;default:0"`
	LastClickedAt *time.Time

	ClickRecords []Click `gorm:"foreignKey:ShortLinkID"`
}

func (m *ShortLink) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

// Expired: ссылка с истёкшим expires_at не редиректит и не редактируется,
// но остаётся доступной для просмотра статистики до явного удаления.
func (m *ShortLink) Expired() bool {
	return m.ExpiresAt != nil && m.ExpiresAt.Before(time.Now())
}
