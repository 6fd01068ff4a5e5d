package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// LoadSections returns the stored payload of every section
func (r *settingsRepository) LoadSections(ctx context.Context) (map[string][]byte, error) {
	var rows []entity.SettingsSection
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(rows))
	for _, row := range rows {
		out[row.Name] = []byte(row.Payload)
	}
	return out, nil
}

// SaveSection upserts one section
func (r *settingsRepository) SaveSection(ctx context.Context, name string, payload []byte) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&entity.SettingsSection{
		Name:      name,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: time.Now(),
	}).Error
}

// SaveSections upserts several sections atomically
func (r *settingsRepository) SaveSections(ctx context.Context, sections map[string][]byte) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &settingsRepository{db: tx}
		for name, payload := range sections {
			if err := txRepo.SaveSection(ctx, name, payload); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetProfile returns the business profile or nil when none was saved
func (r *settingsRepository) GetProfile(ctx context.Context) (*entity.BusinessProfile, error) {
	var profile entity.BusinessProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", entity.BusinessProfileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// SaveProfile creates or replaces the single profile row
func (r *settingsRepository) SaveProfile(ctx context.Context, profile *entity.BusinessProfile) error {
	profile.ID = entity.BusinessProfileID
	return r.db.WithContext(ctx).Save(profile).Error
}
