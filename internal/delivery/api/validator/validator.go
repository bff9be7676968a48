// Package validator adapts go-playground/validator to echo.
package validator

import (
	"strings"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *playground.Validate
}

// New builds a validator with the custom tags registered.
func New() *Validator {
	validate := playground.New(playground.WithRequiredStructEnabled())
	// "permission" checks the resource:action naming rule.
	_ = validate.RegisterValidation("permission", func(fl playground.FieldLevel) bool {
		return entity.IsValidPermissionName(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Validate returns ErrValidationFailed describing every failed field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(messages, "; "))
}

func describe(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "permission":
		return field + " must look like resource:action"
	default:
		return field + " failed " + fe.Tag()
	}
}
