package request

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// CreateStaffRequest represents a new staff account
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"omitempty,len=10,numeric"`
	Role     string `json:"role" binding:"required,oneof=owner manager cashier accountant"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateStaffRequest represents a staff update; omitted fields are unchanged
type UpdateStaffRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Mobile   *string `json:"mobile" binding:"omitempty,len=10,numeric"`
	Role     *string `json:"role" binding:"omitempty,oneof=owner manager cashier accountant"`
	IsActive *bool   `json:"is_active"`
}
