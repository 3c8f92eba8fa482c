package maintenance

import (
	"context"
	"shortlink-service/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler держит окно хранения кликов: записи подрезаются и при вставке,
// но ночной проход страхует от хвостов после сбоев и ручных миграций.
type Scheduler struct {
	c         *cron.Cron
	log       *zap.Logger
	clickRepo *repository.ClickRepository
}

func NewScheduler(log *zap.Logger, clickRepo *repository.ClickRepository) *Scheduler {
	c := cron.New(cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)), cron.WithChain())
	return &Scheduler{
		c: c, log: log,
		clickRepo: clickRepo,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.c.AddFunc("0 3 * * *", func() {
		s.trimClickRetention()
	})
	if err != nil {
		return err
	}
	s.c.Start()
	s.log.Info("Запущен планировщик")
	// подрезка при старте
	go s.trimClickRetention()

	go func() {
		<-ctx.Done()
		ctxStop := s.c.Stop()
		<-ctxStop.Done()
	}()
	return nil
}

func (s *Scheduler) trimClickRetention() {
	s.log.Info("Запущена подрезка окна хранения кликов")
	removed, err := s.clickRepo.TrimAll()
	if err != nil {
		s.log.Error("Не удалось подрезать окно хранения кликов", zap.Error(err))
		return
	}
	if removed > 0 {
		s.log.Info("Удалены клики за пределами окна хранения", zap.Int64("removed", removed))
	}
}
