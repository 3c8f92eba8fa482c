package repository

import (
	"shortlink-service/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RetentionLimit — сколько последних кликов хранится на ссылку.
// Хранилище кликов работает как кольцевой буфер: новые записи вытесняют
// самые старые, общий счётчик переходов при этом не теряется.
const RetentionLimit = 100

type ClickRepository struct {
	db *gorm.DB
}

func NewClickRepository(db *gorm.DB) *ClickRepository {
	return &ClickRepository{
		db: db,
	}
}

// Record сохраняет клик и согласованно обновляет счётчик и момент
// последнего перехода у ссылки, затем подрезает хвост за пределами окна.
func (r *ClickRepository) Record(click *models.Click) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(click).Error; err != nil {
			return err
		}
		err := tx.Model(&models.ShortLink{}).
			Where("id = ?", click.ShortLinkID).
			Updates(map[string]interface{}{
				"clicks":          gorm.Expr("clicks + 1"),
				"last_clicked_at": click.ClickedAt,
			}).Error
		if err != nil {
			return err
		}
		return trimRetention(tx, click.ShortLinkID)
	})
}

func trimRetention(tx *gorm.DB, shortLinkID uuid.UUID) error {
	return tx.Exec(`DELETE FROM clicks
		WHERE short_link_id = ?
		  AND id NOT IN (
			SELECT id FROM clicks
			WHERE short_link_id = ?
			ORDER BY clicked_at DESC
			LIMIT ?
		  )`, shortLinkID, shortLinkID, RetentionLimit).Error
}

// TrimAll подрезает окно хранения у всех ссылок, вызывается планировщиком.
func (r *ClickRepository) TrimAll() (int64, error) {
	res := r.db.Exec(`DELETE FROM clicks
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY short_link_id ORDER BY clicked_at DESC) AS rn
				FROM clicks
			) ranked
			WHERE rn <= ?
		)`, RetentionLimit)
	return res.RowsAffected, res.Error
}

func (r *ClickRepository) GetRecent(shortLinkID uuid.UUID) ([]models.Click, error) {
	var clicks []models.Click
	err := r.db.Where("short_link_id = ?", shortLinkID).
		Order("clicked_at DESC").
		Limit(RetentionLimit).
		Find(&clicks).Error
	return clicks, err
}

func (r *ClickRepository) GetUniqueIPCount(shortLinkID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Click{}).
		Where("short_link_id = ?", shortLinkID).
		Distinct("ip").
		Count(&count).Error
	return count, err
}

// GetDailyStats: количество переходов по датам внутри окна хранения.
func (r *ClickRepository) GetDailyStats(shortLinkID uuid.UUID) (map[string]int64, error) {
	rows, err := r.db.Model(&models.Click{}).
		Select("DATE(clicked_at) as day, COUNT(*) as cnt").
		Where("short_link_id = ?", shortLinkID).
		Group("day").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int64)
	var day time.Time
	var cnt int64
	for rows.Next() {
		if err := rows.Scan(&day, &cnt); err != nil {
			return nil, err
		}
		stats[day.Format("2006-01-02")] = cnt
	}
	return stats, nil
}
