package storage

import (
	"shortlink-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB, log *zap.Logger) {
	if err := db.AutoMigrate(
		&models.ShortLink{},
		&models.Click{},
	); err != nil {
		log.Fatal("Не удалось выполнить миграцию базы данных", zap.Error(err))
	}

	// серверная последовательность для стратегии sequential
	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS short_code_seq").Error; err != nil {
		log.Fatal("Не удалось создать последовательность short_code_seq", zap.Error(err))
	}

	log.Info("Миграция базы данных успешно выполнена")
}
