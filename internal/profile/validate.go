package profile

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmailTag is the validator tag checking the local@domain.tld shape.
const EmailTag = "profile_email"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Form holds the values entered on the profile form.
type Form struct {
	Username    string `form:"username"     json:"username"    validate:"required"`
	Email       string `form:"email"        json:"email"       validate:"required,profile_email"`
	OldPassword string `form:"old_password" json:"oldPassword" validate:"required"`
	NewPassword string `form:"new_password" json:"newPassword" validate:"required"`
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	return Form{
		Username:    strings.TrimSpace(f.Username),
		Email:       strings.TrimSpace(f.Email),
		OldPassword: strings.TrimSpace(f.OldPassword),
		NewPassword: strings.TrimSpace(f.NewPassword),
	}
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func newValidator() *validator.Validate {
	v := validator.New()

	if err := v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// validateForm maps validation failures to ErrFieldsRequired first and
// ErrInvalidEmail second, the order the form reports them in.
func validateForm(v *validator.Validate, f *Form) error {
	err := v.Struct(f)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err //nolint:wrapcheck
	}

	invalidEmail := false

	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			return ErrFieldsRequired
		case EmailTag:
			invalidEmail = true
		}
	}

	if invalidEmail {
		return ErrInvalidEmail
	}

	return err //nolint:wrapcheck
}
