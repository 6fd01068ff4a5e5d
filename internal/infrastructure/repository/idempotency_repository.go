package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, staffID string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND staff_id = ?", key, staffID).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

// Reserve relies on the (key, staff_id) unique index, so only one concurrent insert wins
func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error) {
	ikey.ResponseCode = 0
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ikey)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *idempotencyRepository) Complete(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).
		Model(&entity.IdempotencyKey{}).
		Where("key = ? AND staff_id = ?", ikey.Key, ikey.StaffID).
		Updates(map[string]interface{}{
			"response_code": ikey.ResponseCode,
			"response_body": ikey.ResponseBody,
		}).Error
}

func (r *idempotencyRepository) Release(ctx context.Context, key, staffID string) error {
	return r.db.WithContext(ctx).
		Where("key = ? AND staff_id = ? AND response_code = 0", key, staffID).
		Delete(&entity.IdempotencyKey{}).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&entity.IdempotencyKey{}).Error
}
