package auth

import (
	"errors"
	"strings"

	"github.com/xyz-asif/travlr/internal/pkg/validator"
)

// MaxPasswordBytes is the most bcrypt will hash.
const MaxPasswordBytes = 72

var (
	ErrFieldsRequired  = errors.New("All fields required")
	ErrInvalidEmail    = errors.New("Invalid email address")
	ErrPasswordTooLong = errors.New("Password must be at most 72 bytes")
)

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegister normalizes req in place.
func ValidateRegister(req *RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return ErrFieldsRequired
	}
	if !validator.IsValidEmail(req.Email) {
		return ErrInvalidEmail
	}
	if len(req.Password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// ValidateLogin normalizes req in place.
func ValidateLogin(req *LoginRequest) error {
	req.Email = NormalizeEmail(req.Email)

	if req.Email == "" || req.Password == "" {
		return ErrFieldsRequired
	}
	return nil
}
