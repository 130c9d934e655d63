package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

var validate = validator.New()

// Validate checks struct tags and converts failures into a validation
// error with per-field details.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	details := map[string]any{}
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return errorutil.NewValidationError("invalid payload", details)
}
