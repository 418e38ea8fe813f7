package validation

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/consultdesk/internal/app/models"
)

// PasswordMinLength is the shortest password accepted at registration
const PasswordMinLength = 8

// Rules maps custom binding tags to their validation functions
var Rules = map[string]validator.Func{
	"appstatus": func(fl validator.FieldLevel) bool {
		return models.ApplicationStatus(fl.Field().String()).Valid()
	},
	"docstatus": func(fl validator.FieldLevel) bool {
		return models.DocumentStatus(fl.Field().String()).Valid()
	},
	"role": func(fl validator.FieldLevel) bool {
		return models.RoleType(fl.Field().String()).Valid()
	},
	"date": func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	},
}

// Register installs every custom rule on v
func Register(v *validator.Validate) error {
	for tag, fn := range Rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("error registering validation rule %q: %w", tag, err)
		}
	}
	return nil
}

// StrongPassword reports whether password is long enough and mixes letters with digits
func StrongPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
