package service

import (
	"context"
	"shortlink-service/internal/models"
	"shortlink-service/internal/producer"
	"time"

	"go.uber.org/zap"
)

type ClickService struct {
	repo      ClickStore
	publisher ClickPublisher
	log       *zap.Logger
}

// NewClickService принимает publisher == nil, когда Kafka не настроена.
func NewClickService(repo ClickStore, publisher ClickPublisher, log *zap.Logger) *ClickService {
	return &ClickService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

type ClickInput struct {
	IP        string
	UserAgent string
	Referer   string
	Location  *LocationInput
}

// LocationInput приходит от клиента только вместе с его явным разрешением.
type LocationInput struct {
	Latitude          float64
	Longitude         float64
	Accuracy          float64
	PermissionGranted bool
}

// RecordClick фиксирует переход: запись клика, инкремент счётчика и момент
// последнего перехода обновляются одной транзакцией в хранилище.
func (s *ClickService) RecordClick(ctx context.Context, link *models.ShortLink, in ClickInput) error {
	if link.Expired() {
		return ErrLinkExpired
	}

	click := &models.Click{
		ShortLinkID: link.ID,
		ClickedAt:   time.Now(),
		IP:          in.IP,
		UserAgent:   in.UserAgent,
		Referer:     in.Referer,
	}
	if in.Location != nil && in.Location.PermissionGranted {
		lat, lon, acc := in.Location.Latitude, in.Location.Longitude, in.Location.Accuracy
		click.Latitude = &lat
		click.Longitude = &lon
		click.Accuracy = &acc
		click.PermissionGranted = true
	}

	if err := s.repo.Record(click); err != nil {
		s.log.Error("Не удалось записать клик", zap.String("code", link.Code), zap.Error(err))
		return err
	}

	if s.publisher != nil {
		msg := producer.ClickMessage{
			Code:      link.Code,
			IP:        click.IP,
			UserAgent: click.UserAgent,
			Referer:   click.Referer,
			ClickedAt: click.ClickedAt,
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.publisher.PublishClick(pubCtx, msg); err != nil {
				s.log.Warn("Не удалось отправить событие клика в Kafka", zap.Error(err))
			}
		}()
	}
	return nil
}

type Stats struct {
	Total         int64
	LastClickedAt *time.Time
	UniqueIPCount int64
	DailyStats    map[string]int64
	Recent        []models.Click
}

// GetStats собирает аналитику по ссылке. Total берётся из счётчика на
// самой ссылке: окно хранения кликов ограничено, счётчик — нет.
func (s *ClickService) GetStats(link *models.ShortLink) (Stats, error) {
	stats := Stats{
		Total:         link.Clicks,
		LastClickedAt: link.LastClickedAt,
	}

	uniqueIPs, err := s.repo.GetUniqueIPCount(link.ID)
	if err != nil {
		return stats, err
	}
	stats.UniqueIPCount = uniqueIPs

	daily, err := s.repo.GetDailyStats(link.ID)
	if err != nil {
		return stats, err
	}
	stats.DailyStats = daily

	recent, err := s.repo.GetRecent(link.ID)
	if err != nil {
		return stats, err
	}
	stats.Recent = recent

	return stats, nil
}
