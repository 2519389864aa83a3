package aulakit

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aulakit/aulakit/device"
)

// Storage keys used by the credential manager. At most one session
// record exists at a time under SessionKey; absence means logged out.
// EmailKey mirrors the session email so screens can read it without
// re-parsing the session JSON.
const (
	SessionKey = "aula_session"
	EmailKey   = "aula_user_email"
)

// Authenticator is the session & credential manager: email/password
// registration and login against the backend users table, plus the
// single current-session query the rest of the application uses.
//
// Per device the state machine is LoggedOut -> LoggedIn -> LoggedOut;
// the transition is atomic from the caller's perspective (either a
// valid session record exists, or none does).
type Authenticator struct {
	Users  UserStore
	Device *device.Adapter

	logger *slog.Logger
}

func NewAuthenticator(users UserStore, dev *device.Adapter) *Authenticator {
	return &Authenticator{Users: users, Device: dev, logger: slog.Default()}
}

// WithLogger replaces the authenticator's logger.
func (a *Authenticator) WithLogger(l *slog.Logger) *Authenticator {
	a.logger = l
	return a
}

// NormalizeEmail applies the canonical form used as the unique key in
// the users table.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login authenticates an email/password pair. Accounts with no stored
// password hash are accepted unconditionally (legacy bypass for rows
// created before password auth existed).
func (a *Authenticator) Login(email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, NewAuthError(ErrCodeMissingField, "email is required", "email")
	}
	if password == "" {
		return nil, NewAuthError(ErrCodeMissingField, "password is required", "password")
	}

	user, err := a.Users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewAuthError(ErrCodeUserNotFound, "user not found", "email")
		}
		return nil, NewAuthError(ErrCodeBackendUnavailable, err.Error(), "")
	}
	if !user.IsActive {
		return nil, NewAuthError(ErrCodeUserNotFound, "user not found", "email")
	}

	if user.PasswordHash != nil {
		if !verifyPassword(password, *user.PasswordHash) {
			return nil, NewAuthError(ErrCodeInvalidCredentials, "incorrect password", "password")
		}
	}

	return a.BeginSession(user), nil
}

// verifyPassword checks plain against the stored hash. The stored form
// is legacy lowercase SHA-256 hex; bcrypt-formatted hashes written by
// other tooling are also recognized. Nothing in this package writes
// bcrypt hashes.
func verifyPassword(plain, stored string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return device.DigestSHA256(plain) == stored
}

// Register creates a new active account and logs it in. An empty name
// defaults to the local part of the email.
func (a *Authenticator) Register(email, password, name string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, NewAuthError(ErrCodeMissingField, "email is required", "email")
	}
	if password == "" {
		return nil, NewAuthError(ErrCodeMissingField, "password is required", "password")
	}

	_, err := a.Users.GetUserByEmail(email)
	if err == nil {
		return nil, NewAuthError(ErrCodeEmailTaken, "email is already registered", "email")
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, NewAuthError(ErrCodeBackendUnavailable, err.Error(), "")
	}

	id, err := device.NewUserID()
	if err != nil {
		return nil, NewAuthError(ErrCodeRegistrationFailed, err.Error(), "")
	}

	if name == "" {
		name = email
		if i := strings.Index(email, "@"); i > 0 {
			name = email[:i]
		}
	}

	hash := device.DigestSHA256(password)
	user := &AuthUser{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := a.Users.CreateUser(user); err != nil {
		return nil, NewAuthError(ErrCodeRegistrationFailed, err.Error(), "")
	}

	a.logger.Info("registered user", "id", user.ID, "email", user.Email)
	return a.BeginSession(user), nil
}

// BeginSession persists a session record and the email marker for an
// already-authenticated user and returns the session. Exposed for the
// delegated-provider flows, which authenticate elsewhere.
func (a *Authenticator) BeginSession(user *AuthUser) *Session {
	sess := &Session{
		User: SessionUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
		Timestamp: time.Now().UnixMilli(),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		// Session is a fixed struct; this cannot fail in practice.
		a.logger.Error("failed to encode session", "err", err)
		return sess
	}

	a.Device.Set(SessionKey, string(data))
	a.Device.Set(EmailKey, user.Email)
	return sess
}

// CurrentSession returns the cached session after re-validating it
// against the backend, or nil when logged out. The session is "soft":
// a definitive negative (account missing or inactive) clears the
// record; a backend outage leaves it in place and reports nil for this
// read only.
func (a *Authenticator) CurrentSession() *Session {
	raw, ok := a.Device.Get(SessionKey)
	if !ok {
		return nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		a.logger.Warn("discarding unreadable session record", "err", err)
		a.Logout()
		return nil
	}

	user, err := a.Users.GetUserByID(sess.User.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.Logout()
		}
		return nil
	}
	if !user.IsActive {
		a.Logout()
		return nil
	}

	// Refresh the view from the source of truth.
	sess.User = SessionUser{ID: user.ID, Email: user.Email, Name: user.Name}
	return &sess
}

// CurrentEmail is the fast path for screens that only need the email of
// the logged-in user. Empty when logged out.
func (a *Authenticator) CurrentEmail() string {
	v, _ := a.Device.Get(EmailKey)
	return v
}

// Logout removes the session record and the email marker. Idempotent.
func (a *Authenticator) Logout() {
	a.Device.Remove(SessionKey)
	a.Device.Remove(EmailKey)
}
