package repository

import (
	"context"

	"github.com/sangkips/billing-api/internal/domain/entity"
)

// SettingsRepository stores the customization sections and the business profile
type SettingsRepository interface {
	// LoadSections returns every stored section keyed by name
	LoadSections(ctx context.Context) (map[string][]byte, error)
	SaveSection(ctx context.Context, name string, payload []byte) error
	SaveSections(ctx context.Context, sections map[string][]byte) error

	GetProfile(ctx context.Context) (*entity.BusinessProfile, error)
	SaveProfile(ctx context.Context, profile *entity.BusinessProfile) error
}
