package repository

import (
	"errors"
	"shortlink-service/internal/models"

	"gorm.io/gorm"
)

// ErrCodeTaken возвращается при нарушении уникального индекса по code.
// Именно уникальный индекс в Postgres — финальная гарантия того, что два
// конкурентных запроса не займут один и тот же кандидат.
var ErrCodeTaken = errors.New("short code already taken")

type ShortLinkRepository struct {
	db *gorm.DB
}

func NewShortLinkRepository(db *gorm.DB) *ShortLinkRepository {
	return &ShortLinkRepository{
		db: db,
	}
}

// Claim атомарно занимает код вставкой записи. Коллизия кандидата
// приходит из БД как duplicated key и превращается в ErrCodeTaken.
func (r *ShortLinkRepository) Claim(link *models.ShortLink) error {
	if err := r.db.Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCodeTaken
		}
		return err
	}
	return nil
}

func (r *ShortLinkRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ShortLink{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *ShortLinkRepository) FindByCode(code string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.db.Where("code = ?", code).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindLiveByLongURL ищет живую сгенерированную ссылку для натуральной
// дедупликации: тот же longUrl без кастомного кода -> тот же код.
func (r *ShortLinkRepository) FindLiveByLongURL(longURL string) (*models.ShortLink, error) {
	var link models.ShortLink
	err := r.db.Where("long_url = ? AND is_custom = ? AND (expires_at IS NULL OR expires_at > NOW())", longURL, false).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *ShortLinkRepository) Update(link *models.ShortLink) error {
	return r.db.Save(link).Error
}

// Delete удаляет ссылку вместе с её кликами.
func (r *ShortLinkRepository) Delete(link *models.ShortLink) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("short_link_id = ?", link.ID).Delete(&models.Click{}).Error; err != nil {
			return err
		}
		return tx.Delete(link).Error
	})
}

// NextSequentialID выдаёт следующее значение серверной последовательности
// для стратегии sequential. Коды не переиспользуются: последовательность
// только растёт, даже после удаления ссылок.
func (r *ShortLinkRepository) NextSequentialID() (uint64, error) {
	var id uint64
	err := r.db.Raw("SELECT nextval('short_code_seq')").Scan(&id).Error
	return id, err
}
