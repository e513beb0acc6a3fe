package validator

import (
	"errors"
	"resto/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be at most {param} characters",
		"min":         "{field} must be at least {param} characters",
		"email":       "{field} must be a valid email address",
		"uuid":        "{field} must be a valid id",
		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must be at most {param} MB",
	}
)

// fields turns validator errors into one FieldError per violated field, in struct order.
func fields(err error) []failure.FieldError {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return []failure.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]failure.FieldError, 0, len(valErrors))

	for _, valErr := range valErrors {
		field := valErr.Field()
		if field == "" {
			field = "value"
		}

		msg := messages[valErr.Tag()]
		if msg == "" {
			msg = "{field} is invalid"
		}

		msg = strings.ReplaceAll(msg, "{field}", field)
		msg = strings.ReplaceAll(msg, "{param}", valErr.Param())

		out = append(out, failure.FieldError{Field: field, Message: msg})
	}

	return out
}

func message(fieldErrors []failure.FieldError) string {
	if len(fieldErrors) == 0 {
		return "invalid request"
	}

	return fieldErrors[0].Message
}
