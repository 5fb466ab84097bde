package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FirstName string `json:"first_name" validate:"required,min=2"`
	Email     string `json:"email" validate:"omitempty,email"`
	Gender    string `json:"gender" validate:"required,oneof='Male' 'Female' 'Others' 'Prefer not to say'"`
	Born      string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&sample{FirstName: "Al", Gender: "Prefer not to say", Born: "2001-12-31"}))
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&sample{FirstName: "A", Email: "nope", Gender: "Robot", Born: "31/12/2001"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "first_name must be at least 2 characters", errs["first_name"])
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "gender must be one of: Male Female Others Prefer not to say", errs["gender"])
	assert.Equal(t, "date_of_birth must be a date formatted as YYYY-MM-DD", errs["date_of_birth"])
}
