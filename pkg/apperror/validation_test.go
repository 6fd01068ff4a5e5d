package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Format string `json:"format" validate:"oneof=thermal a4 a5"`
	Name   string `json:"name" validate:"required"`
}

func TestFromValidation(t *testing.T) {
	err := validator.New().Struct(sample{Format: "letter"})
	appErr := FromValidation(err)

	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "sample.Format", appErr.Errors[0].Field)
	assert.Equal(t, "must be one of [thermal a4 a5]", appErr.Errors[0].Message)
	assert.Equal(t, "is required", appErr.Errors[1].Message)
}

func TestFromValidation_OtherError(t *testing.T) {
	appErr := FromValidation(errors.New("bad json"))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "bad json", appErr.Message)
}

func TestSentinelsMatchThroughWrapping(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrEmptyCart)
	assert.True(t, errors.Is(wrapped, ErrEmptyCart))
	assert.False(t, errors.Is(wrapped, ErrOverpayment))
	assert.Equal(t, http.StatusInternalServerError, GetAppError(errors.New("x")).Code)
}
