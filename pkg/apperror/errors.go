package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error that carries the HTTP status it should be reported with
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a problem with a single input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches sentinel errors by code and message so wrapped copies still compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

var (
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
	ErrStaffInactive      = &AppError{Code: http.StatusForbidden, Message: "Staff account is disabled"}

	// Billing
	ErrEmptyCart           = &AppError{Code: http.StatusBadRequest, Message: "Cart is empty"}
	ErrInvalidQuantity     = &AppError{Code: http.StatusBadRequest, Message: "Quantity must be at least 1"}
	ErrProductInactive     = &AppError{Code: http.StatusBadRequest, Message: "Product is not active"}
	ErrPaymentModeDisabled = &AppError{Code: http.StatusBadRequest, Message: "Payment mode is not enabled"}
	ErrOverpayment         = &AppError{Code: http.StatusBadRequest, Message: "Payment exceeds balance due"}

	// Customization
	ErrUnknownSection = &AppError{Code: http.StatusBadRequest, Message: "Unknown settings section"}
)

// NewAppError creates an error with an arbitrary status code
func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewValidationError wraps field errors into a 422 response
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError reports that the named resource does not exist
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: resource + " not found"}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// NewUnknownFieldsError rejects patch keys that a settings section does not define
func NewUnknownFieldsError(section string, keys []string) *AppError {
	fields := make([]FieldError, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, FieldError{Field: k, Message: fmt.Sprintf("unknown field for section %s", section)})
	}
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: "Unknown settings field",
		Errors:  fields,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts any error into an AppError, defaulting to 500
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
