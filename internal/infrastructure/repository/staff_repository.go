package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/billing-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).First(&staff, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).First(&staff, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepository) List(ctx context.Context) ([]entity.Staff, error) {
	var staff []entity.Staff
	err := r.db.WithContext(ctx).Order("joined_at ASC, name ASC").Find(&staff).Error
	return staff, err
}
