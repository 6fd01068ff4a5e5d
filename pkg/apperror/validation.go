package apperror

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FromValidation turns validator errors into a 422 with one entry per failing field.
// Errors of any other kind become a 400 carrying the error text.
func FromValidation(err error) *AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewBadRequestError(err.Error())
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Namespace(), Message: fieldMessage(fe)})
	}
	return NewValidationError(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		return "must be at least " + fe.Param()
	case "gstin":
		return "is not a valid GSTIN"
	case "mobile":
		return "must be a 10 digit mobile number"
	default:
		return fmt.Sprintf("failed the %s check", fe.Tag())
	}
}
