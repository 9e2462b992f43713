package config

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Single "@" and a dot in the domain part; not an RFC 5322 check.
var contactEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return contactEmailRegex.MatchString(fl.Field().String())
	})

	return v
}
