package auth

// This file defines the form payloads for registration and login, validated
// with go-playground/validator struct tags. A failed validation is a
// request-scoped ValidationError: the handler re-renders the form with an
// inline message and no state changes.

import (
	"github.com/go-playground/validator/v10"

	"github.com/user/chickenblog-go/apperror"
)

// validate is the shared validator instance for this package. The instance
// caches struct metadata, so one per package is the intended usage.
var validate = validator.New()

// RegisterForm carries the fields of the registration form.
type RegisterForm struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=100"`
	Password string `validate:"required,min=6,max=100"`
}

// Validate checks the registration form, returning a ValidationError with a
// user-presentable message on failure.
func (f RegisterForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return apperror.NewValidationError("please provide a name, a valid email, and a password of at least 6 characters", err)
	}
	return nil
}

// LoginForm carries the fields of the login form.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Validate checks the login form.
func (f LoginForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return apperror.NewValidationError("please provide your email and password", err)
	}
	return nil
}
