package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/utils"
)

// AuthService handles staff login and the staff directory
type AuthService struct {
	staffRepo  repository.StaffRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repository.StaffRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Staff       *entity.Staff
	AccessToken string
	ExpiresAt   time.Time
}

// Login checks the password and issues an access token. Disabled accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if staff == nil || !utils.CheckPasswordHash(input.Password, staff.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, apperror.ErrStaffInactive
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(staff.ID, staff.Email, staff.Role.String())
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Staff:       staff,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// GetCurrentStaff returns the logged-in staff member
func (s *AuthService) GetCurrentStaff(ctx context.Context, staffID string) (*entity.Staff, error) {
	return s.GetStaff(ctx, staffID)
}

// GetStaff retrieves a staff member by ID
func (s *AuthService) GetStaff(ctx context.Context, staffID string) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}
	return staff, nil
}

// ListStaff returns every staff account
func (s *AuthService) ListStaff(ctx context.Context) ([]entity.Staff, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		staff = []entity.Staff{}
	}
	return staff, nil
}

// CreateStaffInput represents a new staff account
type CreateStaffInput struct {
	Name     string
	Email    string
	Mobile   string
	Role     enum.StaffRole
	Password string
}

// CreateStaff adds a staff account. Emails are unique regardless of case.
func (s *AuthService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.Staff, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !input.Role.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "role", Message: "unknown role"}})
	}
	if input.Mobile != "" && !utils.IsValidMobile(input.Mobile) {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "mobile", Message: "must be 10 digits"}})
	}

	existing, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	staff := &entity.Staff{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Mobile:       input.Mobile,
		Role:         input.Role,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdateStaffInput holds the editable staff fields; nil means unchanged
type UpdateStaffInput struct {
	Name     *string
	Mobile   *string
	Role     *enum.StaffRole
	IsActive *bool
}

// UpdateStaff edits a staff account. A staff member cannot disable their own account.
func (s *AuthService) UpdateStaff(ctx context.Context, actorID, staffID string, input *UpdateStaffInput) (*entity.Staff, error) {
	staff, err := s.GetStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		staff.Name = strings.TrimSpace(*input.Name)
	}
	if input.Mobile != nil {
		if *input.Mobile != "" && !utils.IsValidMobile(*input.Mobile) {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "mobile", Message: "must be 10 digits"}})
		}
		staff.Mobile = *input.Mobile
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "role", Message: "unknown role"}})
		}
		staff.Role = *input.Role
	}
	if input.IsActive != nil {
		if !*input.IsActive && actorID == staff.ID {
			return nil, apperror.NewBadRequestError("You cannot disable your own account")
		}
		staff.IsActive = *input.IsActive
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	StaffID         string
	CurrentPassword string
	NewPassword     string
}

// ChangePassword replaces the caller's password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	staff, err := s.GetStaff(ctx, input.StaffID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(input.CurrentPassword, staff.PasswordHash) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	staff.PasswordHash = hash
	return s.staffRepo.Update(ctx, staff)
}
