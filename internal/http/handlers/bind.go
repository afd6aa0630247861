package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string
	Message string
}

// BindForm binds a form payload and turns validator failures into the
// field-level messages the templates print back to the user.
func BindForm(ctx *gin.Context, out interface{}) ([]FieldError, bool) {
	err := ctx.ShouldBind(out)

	if err == nil {
		return nil, true
	}

	return parseFormError(err), false
}

func parseFormError(err error) []FieldError {
	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		fields := make([]FieldError, 0, len(validatorError))

		for _, fieldError := range validatorError {
			label := fieldLabel(fieldError.Field())

			fields = append(fields, FieldError{
				Field:   label,
				Message: validationMessage(label, fieldError.Tag(), fieldError.Param()),
			})
		}

		return fields
	}

	// final fallback if the error could not be deciphered
	return []FieldError{{Field: "form", Message: "Invalid form submission"}}
}

// the forms label the multi-select "Genre" even though the field is plural.
func fieldLabel(field string) string {
	if field == "Genres" {
		return "Genre"
	}

	return field
}

func validationMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "min":
		return label + " must be at least " + param + " characters"
	case "max":
		return label + " must be at most " + param + " characters"
	default:
		return label + " is invalid"
	}
}
