package auth

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/quietpage/quietpage/internal/domain"
)

const (
	maxEmailLength    = 254
	maxPasswordLength = 72 // bcrypt ignores anything longer
	maxNameLength     = 100
)

// RegisterInput holds parameters for email + password sign-up.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Validate checks the sign-up form. A blank name is reported first because the
// form asks for it first.
func (i RegisterInput) Validate(minPasswordLength int) error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.DisplayName) == "" {
		errs = append(errs, domain.FieldError{Field: "displayName", Message: "Please enter your name."})
	} else if len(i.DisplayName) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "displayName", Message: "Your name is too long."})
	}

	errs = append(errs, validateEmail(i.Email)...)

	if len(i.Password) < minPasswordLength {
		errs = append(errs, domain.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters.", minPasswordLength),
		})
	} else if len(i.Password) > maxPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "Password is too long."})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LoginPasswordInput holds parameters for email + password sign-in.
type LoginPasswordInput struct {
	Email    string
	Password string
}

// Validate validates the password login input.
func (i LoginPasswordInput) Validate() error {
	errs := validateEmail(i.Email)
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "Please enter your password."})
	} else if len(i.Password) > maxPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "Password is too long."})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateEmail(email string) []domain.FieldError {
	switch {
	case email == "":
		return []domain.FieldError{{Field: "email", Message: "Please enter your email."}}
	case len(email) > maxEmailLength:
		return []domain.FieldError{{Field: "email", Message: "Email is too long."}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []domain.FieldError{{Field: "email", Message: "Please enter a valid email."}}
	}
	return nil
}

// LoginInput holds parameters for federated sign-in.
type LoginInput struct {
	Provider string
	Code     string
}

// Validate validates the login input.
func (i LoginInput) Validate(allowedProviders []string) error {
	var errs []domain.FieldError

	if i.Provider == "" {
		errs = append(errs, domain.FieldError{Field: "provider", Message: "required"})
	} else if !slices.Contains(allowedProviders, i.Provider) {
		errs = append(errs, domain.FieldError{Field: "provider", Message: "unsupported provider"})
	}

	if i.Code == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	} else if len(i.Code) > 4096 {
		errs = append(errs, domain.FieldError{Field: "code", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.RefreshToken == "" {
		errs = append(errs, domain.FieldError{Field: "refreshToken", Message: "required"})
	} else if len(i.RefreshToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "refreshToken", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
