package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billing-api/pkg/apperror"
)

// AuthHandler handles authentication and staff account requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles staff login
// @Summary Login
// @Description Authenticate a staff member and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"staff":        output.Staff,
		"access_token": output.AccessToken,
		"expires_at":   output.ExpiresAt,
		"token_type":   "Bearer",
	})
}

// Me returns the logged in staff member
// @Summary Get current staff
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == "" {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	staff, err := h.authService.GetCurrentStaff(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff retrieved successfully", staff)
}

// ChangePassword handles password change
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ChangePasswordRequest true "Password change data"
// @Success 200 {object} response.APIResponse
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		StaffID:         GetStaffID(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password changed successfully", nil)
}

// ListStaff lists all staff accounts
func (h *AuthHandler) ListStaff(c *gin.Context) {
	staff, err := h.authService.ListStaff(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff retrieved successfully", staff)
}

// CreateStaff adds a staff account
func (h *AuthHandler) CreateStaff(c *gin.Context) {
	var req request.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	staff, err := h.authService.CreateStaff(c.Request.Context(), &service.CreateStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Role:     enum.StaffRole(req.Role),
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Staff created successfully", staff)
}

// UpdateStaff edits a staff account
func (h *AuthHandler) UpdateStaff(c *gin.Context) {
	var req request.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateStaffInput{
		Name:     req.Name,
		Mobile:   req.Mobile,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := enum.StaffRole(*req.Role)
		input.Role = &role
	}

	staff, err := h.authService.UpdateStaff(c.Request.Context(), GetStaffID(c), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff updated successfully", staff)
}
