package aulakit

import (
	"errors"
	"fmt"
)

// Error codes carried by AuthError. Every failed operation in this
// package resolves to one of these plus a human-readable message meant
// for direct display next to the triggering action.
const (
	ErrCodeMissingField           = "missing_field"
	ErrCodeWeakPassword           = "weak_password"
	ErrCodeUserNotFound           = "user_not_found"
	ErrCodeInvalidCredentials     = "invalid_credentials"
	ErrCodeEmailTaken             = "email_taken"
	ErrCodeRegistrationFailed     = "registration_failed"
	ErrCodeProviderCancelled      = "provider_cancelled"
	ErrCodeProviderUnavailable    = "provider_unavailable"
	ErrCodeBiometricUnavailable   = "biometric_unavailable"
	ErrCodeBiometricNotConfigured = "biometric_not_configured"
	ErrCodeBiometricFailed        = "biometric_failed"
	ErrCodeNoSavedSession         = "no_saved_session"
	ErrCodeNotAdmin               = "not_admin"
	ErrCodeBackendUnavailable     = "backend_unavailable"
)

// ErrNotFound is the sentinel returned (wrapped) by stores when a row
// does not exist. Absence is a normal outcome for most lookups, so
// callers branch on it with errors.Is rather than treating it as a
// backend failure.
var ErrNotFound = errors.New("not found")

// AuthError is a typed failure with an optional offending field, so
// screens can highlight the right input.
type AuthError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Field   string `json:"field,omitempty"`
}

func NewAuthError(code, message, field string) *AuthError {
	return &AuthError{Code: code, Message: message, Field: field}
}

func (e *AuthError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode extracts the code from an error, or "" if it is not an
// *AuthError.
func ErrorCode(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
