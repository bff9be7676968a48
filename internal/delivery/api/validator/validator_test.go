package validator

import (
	"testing"

	domainerrors "identity/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Username   string `json:"username" validate:"required,min=3"`
	Email      string `json:"email" validate:"required,email"`
	Permission string `json:"permission" validate:"omitempty,permission"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{Username: "alice", Email: "alice@example.com", Permission: "doc:write"}))

	err := v.Validate(&sample{Username: "al", Email: "nope", Permission: "DocWrite"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "Username must be at least 3 characters")
	assert.Contains(t, appErr.Details(), "Email must be a valid email address")
	assert.Contains(t, appErr.Details(), "Permission must look like resource:action")
}
