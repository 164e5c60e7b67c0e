package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var uzbekPhone = regexp.MustCompile(`^\+998\d{9}$`)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Buyer phone numbers are Uzbek mobile numbers: +998 followed by 9 digits.
	_ = v.RegisterValidation("uzphone", func(fl validator.FieldLevel) bool {
		return uzbekPhone.MatchString(fl.Field().String())
	})

	return v
}

// ValidationErrors flattens validator errors into field → message pairs
// suitable for a 400 response body.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = err.Error()
		return out
	}

	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "this field is required"
		case "email":
			out[fe.Field()] = "must be a valid email address"
		case "url":
			out[fe.Field()] = "must be a valid URL"
		case "gt":
			out[fe.Field()] = "must be greater than " + fe.Param()
		case "min":
			out[fe.Field()] = "must have at least " + fe.Param() + " items or characters"
		case "oneof":
			out[fe.Field()] = "must be one of: " + fe.Param()
		case "uzphone":
			out[fe.Field()] = "must match +998XXXXXXXXX"
		default:
			out[fe.Field()] = "is invalid"
		}
	}

	return out
}
