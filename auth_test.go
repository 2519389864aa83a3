package aulakit_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	aulakit "github.com/aulakit/aulakit"
	"github.com/aulakit/aulakit/device"
	"github.com/aulakit/aulakit/stores"
)

// setupAuth wires an authenticator over tmpdir FS stores and in-memory
// device storage.
func setupAuth(t *testing.T) (*aulakit.Authenticator, *stores.FS) {
	t.Helper()
	fs := stores.NewFS(t.TempDir())
	adapter := device.NewAdapter(device.NewMemoryStorage())
	return aulakit.NewAuthenticator(fs.Users, adapter), fs
}

func TestRegisterThenLogin(t *testing.T) {
	auth, _ := setupAuth(t)

	sess, err := auth.Register("User@Example.com", "secret1", "Jane")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if sess.User.Email != "user@example.com" {
		t.Errorf("Expected normalized email, got %q", sess.User.Email)
	}
	if sess.User.Name != "Jane" {
		t.Errorf("Expected name Jane, got %q", sess.User.Name)
	}
	if sess.Timestamp == 0 {
		t.Error("Expected a session timestamp")
	}

	// Login is case-insensitive on email
	sess2, err := auth.Login("USER@EXAMPLE.COM", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess2.User.ID != sess.User.ID {
		t.Errorf("Expected same user, got %s vs %s", sess2.User.ID, sess.User.ID)
	}

	// Wrong password
	_, err = auth.Login("user@example.com", "wrongpass")
	if aulakit.ErrorCode(err) != aulakit.ErrCodeInvalidCredentials {
		t.Errorf("Expected invalid_credentials, got %v", err)
	}

	// Logout clears the cached session
	auth.Logout()
	if got := auth.CurrentSession(); got != nil {
		t.Errorf("Expected nil session after logout, got %+v", got)
	}
	if auth.CurrentEmail() != "" {
		t.Error("Expected empty current email after logout")
	}
}

func TestLoginValidation(t *testing.T) {
	auth, _ := setupAuth(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{"missing email", "", "secret1", aulakit.ErrCodeMissingField},
		{"missing password", "a@b.c", "", aulakit.ErrCodeMissingField},
		{"unknown user", "nobody@example.com", "secret1", aulakit.ErrCodeUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(tt.email, tt.password)
			if aulakit.ErrorCode(err) != tt.wantCode {
				t.Errorf("Expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := setupAuth(t)

	if _, err := auth.Register("dup@example.com", "secret1", ""); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}
	_, err := auth.Register("DUP@example.com", "other12", "")
	if aulakit.ErrorCode(err) != aulakit.ErrCodeEmailTaken {
		t.Errorf("Expected email_taken, got %v", err)
	}
}

func TestRegisterDefaultsNameToLocalPart(t *testing.T) {
	auth, _ := setupAuth(t)

	sess, err := auth.Register("jane.doe@example.com", "secret1", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if sess.User.Name != "jane.doe" {
		t.Errorf("Expected name 'jane.doe', got %q", sess.User.Name)
	}
}

func TestLegacyPasswordlessAccount(t *testing.T) {
	auth, fs := setupAuth(t)

	// Rows created before password auth existed have no hash; any
	// password is accepted.
	id, _ := device.NewUserID()
	legacy := &aulakit.AuthUser{
		ID:       id,
		Email:    "legacy@example.com",
		Name:     "Legacy",
		IsActive: true,
	}
	if err := fs.Users.SaveUser(legacy); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	sess, err := auth.Login("legacy@example.com", "anything")
	if err != nil {
		t.Fatalf("Expected passwordless account to log in, got %v", err)
	}
	if sess.User.ID != id {
		t.Errorf("Wrong user logged in: %s", sess.User.ID)
	}
}

func TestLoginBcryptHash(t *testing.T) {
	auth, fs := setupAuth(t)

	// Hashes written by other tooling use bcrypt; the verifier
	// recognizes them by prefix.
	hashBytes, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	hash := string(hashBytes)
	id, _ := device.NewUserID()
	user := &aulakit.AuthUser{
		ID:           id,
		Email:        "bc@example.com",
		Name:         "BC",
		PasswordHash: &hash,
		IsActive:     true,
	}
	if err := fs.Users.SaveUser(user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	if _, err := auth.Login("bc@example.com", "secret1"); err != nil {
		t.Fatalf("Expected bcrypt login to succeed, got %v", err)
	}
	if _, err := auth.Login("bc@example.com", "nope123"); aulakit.ErrorCode(err) != aulakit.ErrCodeInvalidCredentials {
		t.Errorf("Expected invalid_credentials, got %v", err)
	}
}

func TestInactiveAccount(t *testing.T) {
	auth, fs := setupAuth(t)

	sess, err := auth.Register("gone@example.com", "secret1", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := fs.Users.GetUserByID(sess.User.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	user.IsActive = false
	if err := fs.Users.SaveUser(user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	// Login of a deactivated account reads as not found
	if _, err := auth.Login("gone@example.com", "secret1"); aulakit.ErrorCode(err) != aulakit.ErrCodeUserNotFound {
		t.Errorf("Expected user_not_found, got %v", err)
	}

	// The cached session is invalidated on the next read
	if got := auth.CurrentSession(); got != nil {
		t.Errorf("Expected nil session for deactivated account, got %+v", got)
	}
	if auth.CurrentEmail() != "" {
		t.Error("Expected the email marker to be cleared")
	}
}

func TestCurrentSessionRefreshesUser(t *testing.T) {
	auth, fs := setupAuth(t)

	sess, err := auth.Register("fresh@example.com", "secret1", "Old Name")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, _ := fs.Users.GetUserByID(sess.User.ID)
	user.Name = "New Name"
	if err := fs.Users.SaveUser(user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	got := auth.CurrentSession()
	if got == nil {
		t.Fatal("Expected a session")
	}
	if got.User.Name != "New Name" {
		t.Errorf("Expected refreshed name, got %q", got.User.Name)
	}
}

func TestCurrentSessionDiscardsCorruptRecord(t *testing.T) {
	fs := stores.NewFS(t.TempDir())
	adapter := device.NewAdapter(device.NewMemoryStorage())
	auth := aulakit.NewAuthenticator(fs.Users, adapter)

	adapter.Set(aulakit.SessionKey, "{not json")
	adapter.Set(aulakit.EmailKey, "x@y.z")

	if got := auth.CurrentSession(); got != nil {
		t.Errorf("Expected nil for corrupt record, got %+v", got)
	}
	if _, ok := adapter.Get(aulakit.SessionKey); ok {
		t.Error("Expected corrupt record to be cleared")
	}
}
