package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationError is one field problem reported to the client
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors turns binding errors into per-field messages. Errors
// that are not validation failures (malformed JSON) yield an empty list.
func ParseValidationErrors(err error) []ValidationError {
	out := []ValidationError{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return out
	}
	for _, fe := range validationErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
