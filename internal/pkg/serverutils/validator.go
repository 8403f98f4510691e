package serverutils

import (
	"ai-redesign-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and classifies failures as
// ValidationError so the error middleware maps them to 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return apperr.Wrap(apperr.Validation("invalid request body"), err)
	}
	return nil
}
