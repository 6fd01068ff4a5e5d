package service

import (
	"context"
	"strings"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/utils"
)

// ProfileService manages the single business profile
type ProfileService struct {
	repo repository.SettingsRepository
}

// NewProfileService creates a new profile service
func NewProfileService(repo repository.SettingsRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetProfile returns the stored profile, or an empty one before setup
func (s *ProfileService) GetProfile(ctx context.Context) (*entity.BusinessProfile, error) {
	profile, err := s.repo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.BusinessProfile{ID: entity.BusinessProfileID}
	}
	return profile, nil
}

// UpdateProfileInput holds the editable profile fields; nil means unchanged
type UpdateProfileInput struct {
	BusinessName  *string
	OwnerName     *string
	Category      *string
	Mobile        *string
	Email         *string
	GSTIN         *string
	Address       *string
	District      *string
	State         *string
	Pincode       *string
	UPIID         *string
	LogoURL       *string
	InvoiceFooter *string
	FinancialYear *string
}

// UpdateProfile applies the given fields and saves the profile
func (s *ProfileService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.BusinessProfile, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	var fieldErrors []apperror.FieldError
	if input.BusinessName != nil {
		if strings.TrimSpace(*input.BusinessName) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "business_name", Message: "is required"})
		}
		profile.BusinessName = strings.TrimSpace(*input.BusinessName)
	}
	if input.Mobile != nil {
		if *input.Mobile != "" && !utils.IsValidMobile(*input.Mobile) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "mobile", Message: "must be 10 digits"})
		}
		profile.Mobile = *input.Mobile
	}
	if input.GSTIN != nil {
		gstin := utils.NormalizeGSTIN(*input.GSTIN)
		if gstin != "" && !utils.IsValidGSTIN(gstin) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gstin", Message: "is not a valid GSTIN"})
		}
		profile.GSTIN = gstin
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	setString(&profile.OwnerName, input.OwnerName)
	setString(&profile.Category, input.Category)
	setString(&profile.Email, input.Email)
	setString(&profile.Address, input.Address)
	setString(&profile.District, input.District)
	setString(&profile.State, input.State)
	setString(&profile.Pincode, input.Pincode)
	setString(&profile.UPIID, input.UPIID)
	setString(&profile.LogoURL, input.LogoURL)
	setString(&profile.InvoiceFooter, input.InvoiceFooter)
	setString(&profile.FinancialYear, input.FinancialYear)

	profile.ID = entity.BusinessProfileID
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
