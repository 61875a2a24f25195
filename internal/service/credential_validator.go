package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"scheduler/internal/errors"
)

// Field names as they appear in request bodies.
const (
	FieldEmail    = "email"
	FieldPassword = "plaintextPassword"
	FieldName     = "name"
)

// CredentialValidator checks the shape of signup and login payloads.
// Checks run in a fixed order so the reported field is deterministic.
type CredentialValidator struct {
	validate *validator.Validate
}

// NewCredentialValidator creates a new credential validator.
func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{validate: validator.New()}
}

// ValidateLogin validates a login payload.
func (v *CredentialValidator) ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return errors.EmptyField(FieldEmail)
	}
	if password == "" {
		return errors.EmptyField(FieldPassword)
	}
	if !v.validEmail(email) {
		return errors.InvalidFormat(FieldEmail)
	}
	return nil
}

// ValidateSignup validates a signup payload.
func (v *CredentialValidator) ValidateSignup(name, email, password string) error {
	if err := v.ValidateLogin(email, password); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errors.EmptyField(FieldName)
	}
	return nil
}

// validEmail requires local@domain.tld on top of the validator's email rule.
func (v *CredentialValidator) validEmail(email string) bool {
	if v.validate.Var(email, "email") != nil {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
