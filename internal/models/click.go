package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Click struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShortLinkID uuid.UUID `gorm:"type:uuid;not null;index"`
	ShortLink   ShortLink `gorm:"foreignKey:ShortLinkID"`

	ClickedAt time.Time `gorm:"not null"`
	UserAgent string    `gorm:"type:text"`
	Referer   string    `gorm:"type:text"`
	IP        string    `gorm:"type:text"`

	// Геолокация заполняется только когда клиент явно дал разрешение.
	Latitude          *float64
	Longitude         *float64
	Accuracy          *float64
	PermissionGranted bool `gorm:"not null;default:false"`
}

func (m *Click) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
