package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

// ProfileHandler serves the business profile printed on invoices
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the business profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile retrieved successfully", profile)
}

// Update edits the business profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		BusinessName:  req.BusinessName,
		OwnerName:     req.OwnerName,
		Category:      req.Category,
		Mobile:        req.Mobile,
		Email:         req.Email,
		GSTIN:         req.GSTIN,
		Address:       req.Address,
		District:      req.District,
		State:         req.State,
		Pincode:       req.Pincode,
		UPIID:         req.UPIID,
		LogoURL:       req.LogoURL,
		InvoiceFooter: req.InvoiceFooter,
		FinancialYear: req.FinancialYear,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile updated successfully", profile)
}
