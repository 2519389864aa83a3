package aulakit_test

import (
	"errors"
	"testing"

	aulakit "github.com/aulakit/aulakit"
	"github.com/aulakit/aulakit/device"
)

type fakeChallenger struct {
	available bool
	err       error
	prompts   []string
}

func (c *fakeChallenger) Available() bool { return c.available }
func (c *fakeChallenger) Challenge(prompt string) error {
	c.prompts = append(c.prompts, prompt)
	return c.err
}

func TestBiometricEnableDisable(t *testing.T) {
	adapter := device.NewAdapter(device.NewMemoryStorage())
	ch := &fakeChallenger{available: true}
	b := &aulakit.Biometric{Device: adapter, Challenger: ch}

	if b.Enabled() {
		t.Error("Expected disabled before opt-in")
	}
	if err := b.Enable(); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if !b.Enabled() {
		t.Error("Expected enabled after opt-in")
	}
	if len(ch.prompts) != 1 {
		t.Errorf("Expected one challenge, got %d", len(ch.prompts))
	}

	b.Disable()
	if b.Enabled() {
		t.Error("Expected disabled after Disable")
	}
}

func TestBiometricAuthenticate(t *testing.T) {
	newSession := func() *aulakit.Session {
		return &aulakit.Session{User: aulakit.SessionUser{ID: "u1", Email: "a@b.c"}}
	}

	tests := []struct {
		name     string
		ch       *fakeChallenger
		enabled  bool
		session  func() *aulakit.Session
		wantCode string
	}{
		{
			name:     "no hardware",
			ch:       &fakeChallenger{available: false},
			enabled:  true,
			session:  newSession,
			wantCode: aulakit.ErrCodeBiometricUnavailable,
		},
		{
			name:     "not opted in",
			ch:       &fakeChallenger{available: true},
			enabled:  false,
			session:  newSession,
			wantCode: aulakit.ErrCodeBiometricNotConfigured,
		},
		{
			name:     "challenge fails",
			ch:       &fakeChallenger{available: true, err: errors.New("denied")},
			enabled:  true,
			session:  newSession,
			wantCode: aulakit.ErrCodeBiometricFailed,
		},
		{
			name:     "no saved session",
			ch:       &fakeChallenger{available: true},
			enabled:  true,
			session:  func() *aulakit.Session { return nil },
			wantCode: aulakit.ErrCodeNoSavedSession,
		},
		{
			name:    "success",
			ch:      &fakeChallenger{available: true},
			enabled: true,
			session: newSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := device.NewAdapter(device.NewMemoryStorage())
			if tt.enabled {
				adapter.Set(aulakit.BiometricKey, "true")
			}
			b := &aulakit.Biometric{
				Device:         adapter,
				Challenger:     tt.ch,
				CurrentSession: tt.session,
			}

			sess, err := b.Authenticate()
			if tt.wantCode != "" {
				if aulakit.ErrorCode(err) != tt.wantCode {
					t.Errorf("Expected %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate failed: %v", err)
			}
			if sess.User.ID != "u1" {
				t.Errorf("Expected resumed session, got %+v", sess)
			}
		})
	}
}
