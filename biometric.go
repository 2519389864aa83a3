package aulakit

import "github.com/aulakit/aulakit/device"

// BiometricKey gates whether the local-authentication prompt may be
// offered. Value is the literal "true" or absent.
const BiometricKey = "aula_biometric_enabled"

// Challenger is the host-supplied hook into platform biometric
// hardware. Available reports hardware support; Challenge runs the
// local prompt and returns nil on a passed challenge.
type Challenger interface {
	Available() bool
	Challenge(prompt string) error
}

// Biometric is a re-entry convenience layered on top of an existing
// session: a passed local challenge returns whatever session is already
// cached, it never creates one. Users opt in with Enable after logging
// in by another means.
type Biometric struct {
	Device     *device.Adapter
	Challenger Challenger

	// CurrentSession supplies the session to resume, normally
	// Authenticator.CurrentSession.
	CurrentSession func() *Session
}

// Enabled reports whether the user previously opted in on this device.
func (b *Biometric) Enabled() bool {
	v, _ := b.Device.Get(BiometricKey)
	return v == "true"
}

// Enable runs a local challenge and, on success, records the opt-in.
func (b *Biometric) Enable() error {
	if b.Challenger == nil || !b.Challenger.Available() {
		return NewAuthError(ErrCodeBiometricUnavailable, "biometric authentication is not available on this device", "")
	}
	if err := b.Challenger.Challenge("Set up biometric sign-in"); err != nil {
		return NewAuthError(ErrCodeBiometricFailed, "biometric challenge failed", "")
	}
	b.Device.Set(BiometricKey, "true")
	return nil
}

// Disable clears the opt-in flag; called on sign-out.
func (b *Biometric) Disable() {
	b.Device.Remove(BiometricKey)
}

// Authenticate runs the local challenge and resumes the saved session.
func (b *Biometric) Authenticate() (*Session, error) {
	if b.Challenger == nil || !b.Challenger.Available() {
		return nil, NewAuthError(ErrCodeBiometricUnavailable, "biometric authentication is not available on this device", "")
	}
	if !b.Enabled() {
		return nil, NewAuthError(ErrCodeBiometricNotConfigured, "biometric sign-in has not been set up", "")
	}
	if err := b.Challenger.Challenge("Sign in"); err != nil {
		return nil, NewAuthError(ErrCodeBiometricFailed, "biometric challenge failed", "")
	}

	sess := b.CurrentSession()
	if sess == nil {
		return nil, NewAuthError(ErrCodeNoSavedSession, "no saved session; sign in first", "")
	}
	return sess, nil
}
