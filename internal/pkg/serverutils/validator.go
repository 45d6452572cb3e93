package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}

func FormatValidationErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", strings.ToLower(e.Field())))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", strings.ToLower(e.Field()), e.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", strings.ToLower(e.Field()), e.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", strings.ToLower(e.Field())))
		}
	}
	return strings.Join(parts, ", ")
}
