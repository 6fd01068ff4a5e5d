package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/presentation/http/middleware"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/pagination"
	"github.com/sangkips/billing-api/pkg/utils"
)

const dateLayout = "2006-01-02"

// GetStaffID extracts the staff ID set by the auth middleware
func GetStaffID(c *gin.Context) string {
	return c.GetString(middleware.StaffIDKey)
}

// GetStaffRole extracts the staff role set by the auth middleware
func GetStaffRole(c *gin.Context) enum.StaffRole {
	role, _ := c.Get(middleware.StaffRoleKey)
	r, _ := role.(enum.StaffRole)
	return r
}

// RegisterValidators adds the custom binding tags used by request DTOs
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return utils.IsValidGSTIN(utils.NormalizeGSTIN(fl.Field().String()))
	})
}

func pageParams(page, perPage int) *pagination.Params {
	p := &pagination.Params{Page: page, PerPage: perPage}
	p.Validate()
	return p
}

// parseDate reads an optional YYYY-MM-DD value in local time
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: "must be a date in YYYY-MM-DD format"}})
	}
	return &t, nil
}

// parseDateRange reads from/to as an inclusive day range. The end is moved to the start
// of the following day so repositories can filter with a half-open range.
func parseDateRange(from, to string) (*time.Time, *time.Time, error) {
	start, err := parseDate("from", from)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate("to", to)
	if err != nil {
		return nil, nil, err
	}
	if end != nil {
		next := end.AddDate(0, 0, 1)
		end = &next
	}
	return start, end, nil
}
