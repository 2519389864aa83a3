package oauth2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/aulakit/aulakit"
	"github.com/aulakit/aulakit/device"
)

const (
	stateCookieName    = "oauthstate"
	callbackCookieName = "oauthCallbackURL"

	// Issued states older than this are rejected on callback.
	stateTTL = 10 * time.Minute
)

// GoogleConfig configures the Google provider. Empty fields fall back
// to the AULA_GOOGLE_* environment variables. A missing client ID
// leaves the flow constructible but unavailable — delegated login
// degrades to an error state instead of crashing the host.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// Google implements both delegated sign-in variants against Google.
// Its embedded Notifier announces sessions completed via the redirect
// path.
type Google struct {
	Notifier

	auth *aulakit.Authenticator
	cfg  oauth2.Config
	mux  *http.ServeMux

	mu     sync.Mutex
	states map[string]time.Time

	// userInfoURL is overridable for tests.
	userInfoURL string
}

func NewGoogle(cfg GoogleConfig, auth *aulakit.Authenticator) *Google {
	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("AULA_GOOGLE_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = os.Getenv("AULA_GOOGLE_CLIENT_SECRET")
	}
	if cfg.CallbackURL == "" {
		cfg.CallbackURL = os.Getenv("AULA_GOOGLE_CALLBACK_URL")
	}

	g := &Google{
		auth: auth,
		cfg: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		states:      map[string]time.Time{},
		userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		mux:         http.NewServeMux(),
	}
	g.mux.HandleFunc("/login", g.handleLogin)
	g.mux.HandleFunc("/callback", g.handleCallback)
	return g
}

// Configured reports whether a client ID is present.
func (g *Google) Configured() bool {
	return g.cfg.ClientID != ""
}

// SignIn starts the redirect variant: it returns a Pending outcome
// whose AuthURL the host must send the user agent to. The real session
// materializes later, when the provider redirects back into Handler and
// subscribers are notified.
func (g *Google) SignIn() (*Outcome, error) {
	if !g.Configured() {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeProviderUnavailable, "Google client ID not configured", "")
	}

	state, err := newState()
	if err != nil {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeProviderUnavailable, err.Error(), "")
	}
	g.rememberState(state)

	return &Outcome{Pending: true, AuthURL: g.cfg.AuthCodeURL(state)}, nil
}

// Exchange is the synchronous variant for hosts without redirect
// support: the host runs the consent screen itself and hands over the
// resulting authorization code. An empty code means the user aborted.
func (g *Google) Exchange(code string) (*Outcome, error) {
	if !g.Configured() {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeProviderUnavailable, "Google client ID not configured", "")
	}
	if code == "" {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeProviderCancelled, "authentication cancelled", "")
	}

	token, err := g.cfg.Exchange(context.Background(), code)
	if err != nil {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeBackendUnavailable, fmt.Sprintf("code exchange failed: %s", err), "")
	}

	sess, err := g.sessionFromToken(token)
	if err != nil {
		return nil, err
	}
	return &Outcome{Completed: sess}, nil
}

// Handler serves the redirect variant's HTTP side: /login primes the
// state cookie and redirects to the provider, /callback completes the
// exchange and notifies subscribers.
func (g *Google) Handler() http.Handler {
	return g.mux
}

func (g *Google) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !g.Configured() {
		http.Error(w, `{"error": "Google sign-in not configured"}`, http.StatusServiceUnavailable)
		return
	}

	if callbackURL := r.URL.Query().Get("callbackURL"); callbackURL != "" {
		http.SetCookie(w, &http.Cookie{
			Name:    callbackCookieName,
			Value:   callbackURL,
			Path:    "/",
			Expires: time.Now().Add(time.Hour),
			MaxAge:  120, // keep this short
		})
	}

	state, err := newState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	g.rememberState(state)
	http.SetCookie(w, &http.Cookie{
		Name:    stateCookieName,
		Value:   state,
		Path:    "/",
		Expires: time.Now().Add(stateTTL),
	})

	http.Redirect(w, r, g.cfg.AuthCodeURL(state), http.StatusFound)
}

func (g *Google) handleCallback(w http.ResponseWriter, r *http.Request) {
	if errCode := r.FormValue("error"); errCode != "" {
		log.Println("provider returned error: ", errCode)
		http.Error(w, `{"error": "authentication cancelled", "code": "provider_cancelled"}`, http.StatusUnauthorized)
		return
	}

	state := r.FormValue("state")
	if !g.consumeState(state) {
		// Fall back to the cookie for agents that dropped the query.
		cookie, _ := r.Cookie(stateCookieName)
		if cookie == nil || cookie.Value != state || state == "" {
			http.Error(w, "invalid oauth state", http.StatusBadRequest)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", MaxAge: -1, Path: "/"})

	token, err := g.cfg.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Println("code exchange failed: ", err)
		http.Error(w, "code exchange failed", http.StatusUnauthorized)
		return
	}

	sess, err := g.sessionFromToken(token)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	g.notify(sess)

	callbackURL := "/"
	if cookie, _ := r.Cookie(callbackCookieName); cookie != nil && cookie.Value != "" {
		callbackURL = cookie.Value
	}
	http.SetCookie(w, &http.Cookie{Name: callbackCookieName, Value: "", MaxAge: -1, Path: "/"})
	http.Redirect(w, r, callbackURL, http.StatusFound)
}

// sessionFromToken fetches the provider's user view and ensures a
// matching, active backend user, then begins the local session.
func (g *Google) sessionFromToken(token *oauth2.Token) (*aulakit.Session, error) {
	info, err := g.fetchUserInfo(token)
	if err != nil {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeBackendUnavailable, err.Error(), "")
	}

	email, _ := info["email"].(string)
	if email == "" {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeProviderUnavailable, "provider returned no email", "")
	}
	name, _ := info["name"].(string)

	user, err := g.ensureUser(aulakit.NormalizeEmail(email), name)
	if err != nil {
		return nil, err
	}
	return g.auth.BeginSession(user), nil
}

func (g *Google) ensureUser(email, name string) (*aulakit.AuthUser, error) {
	user, err := g.auth.Users.GetUserByEmail(email)
	if err == nil {
		if !user.IsActive {
			return nil, aulakit.NewAuthError(aulakit.ErrCodeUserNotFound, "account is deactivated", "email")
		}
		return user, nil
	}
	if !errors.Is(err, aulakit.ErrNotFound) {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeBackendUnavailable, err.Error(), "")
	}

	id, err := device.NewUserID()
	if err != nil {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeRegistrationFailed, err.Error(), "")
	}
	if name == "" {
		name = email
	}

	// Provider accounts carry no password hash.
	user = &aulakit.AuthUser{
		ID:        id,
		Email:     email,
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := g.auth.Users.CreateUser(user); err != nil {
		return nil, aulakit.NewAuthError(aulakit.ErrCodeRegistrationFailed, err.Error(), "")
	}
	return user, nil
}

func (g *Google) fetchUserInfo(token *oauth2.Token) (map[string]any, error) {
	resp, err := http.Get(g.userInfoURL + "?access_token=" + token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request failed: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading user info: %w", err)
	}

	var info map[string]any
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed parsing user info: %w", err)
	}
	return info, nil
}

func (g *Google) rememberState(state string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now()
	for s, issued := range g.states {
		if now.Sub(issued) > stateTTL {
			delete(g.states, s)
		}
	}
	g.states[state] = now
}

func (g *Google) consumeState(state string) bool {
	if state == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	issued, ok := g.states[state]
	if !ok {
		return false
	}
	delete(g.states, state)
	return time.Since(issued) <= stateTTL
}

func newState() (string, error) {
	b, err := device.RandomBytes(16)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}
