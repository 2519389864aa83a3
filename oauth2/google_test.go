package oauth2

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	xoauth2 "golang.org/x/oauth2"

	"github.com/aulakit/aulakit"
	"github.com/aulakit/aulakit/device"
	"github.com/aulakit/aulakit/stores"
)

// mockProvider stands in for Google's token and userinfo endpoints.
func mockProvider(t *testing.T, userinfo map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"mock-access-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "mock-access-token" {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(userinfo)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestGoogle(t *testing.T, provider *httptest.Server) (*Google, *stores.FS) {
	t.Helper()
	fs := stores.NewFS(t.TempDir())
	auth := aulakit.NewAuthenticator(fs.Users, device.NewAdapter(device.NewMemoryStorage()))

	g := NewGoogle(GoogleConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		CallbackURL:  "http://localhost/auth/google/callback",
	}, auth)
	g.cfg.Endpoint = xoauth2.Endpoint{
		AuthURL:  provider.URL + "/auth",
		TokenURL: provider.URL + "/token",
	}
	g.userInfoURL = provider.URL + "/userinfo"
	return g, fs
}

func TestSignInReturnsPendingOutcome(t *testing.T) {
	provider := mockProvider(t, map[string]any{"email": "g@example.com"})
	g, _ := newTestGoogle(t, provider)

	out, err := g.SignIn()
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if !out.Pending || out.Completed != nil {
		t.Errorf("Expected a pending outcome, got %+v", out)
	}

	u, err := url.Parse(out.AuthURL)
	if err != nil {
		t.Fatalf("AuthURL does not parse: %v", err)
	}
	if u.Query().Get("client_id") != "test-client" {
		t.Errorf("Expected client_id in auth URL, got %s", out.AuthURL)
	}
	if u.Query().Get("state") == "" {
		t.Error("Expected a state parameter")
	}
}

func TestUnconfiguredProvider(t *testing.T) {
	fs := stores.NewFS(t.TempDir())
	auth := aulakit.NewAuthenticator(fs.Users, device.NewAdapter(device.NewMemoryStorage()))
	g := NewGoogle(GoogleConfig{}, auth)
	// Make sure the environment cannot configure it behind our back
	g.cfg.ClientID = ""

	if g.Configured() {
		t.Fatal("Expected unconfigured provider")
	}
	if _, err := g.SignIn(); aulakit.ErrorCode(err) != aulakit.ErrCodeProviderUnavailable {
		t.Errorf("Expected provider_unavailable from SignIn, got %v", err)
	}
	if _, err := g.Exchange("code"); aulakit.ErrorCode(err) != aulakit.ErrCodeProviderUnavailable {
		t.Errorf("Expected provider_unavailable from Exchange, got %v", err)
	}
}

func TestExchangeCreatesUserAndSession(t *testing.T) {
	provider := mockProvider(t, map[string]any{
		"email": "New.User@Example.com", "name": "New User",
	})
	g, fs := newTestGoogle(t, provider)

	out, err := g.Exchange("auth-code")
	if err != nil {
		t.Fatalf("Exchange failed: %v", err)
	}
	if out.Pending || out.Completed == nil {
		t.Fatalf("Expected a completed outcome, got %+v", out)
	}
	if out.Completed.User.Email != "new.user@example.com" {
		t.Errorf("Expected normalized email, got %q", out.Completed.User.Email)
	}

	// The backend row exists, active and passwordless
	user, err := fs.Users.GetUserByEmail("new.user@example.com")
	if err != nil {
		t.Fatalf("Expected a created user: %v", err)
	}
	if !user.IsActive || user.PasswordHash != nil {
		t.Errorf("Unexpected provider account shape: %+v", user)
	}

	// The local session is cached
	if sess := g.auth.CurrentSession(); sess == nil || sess.User.ID != user.ID {
		t.Errorf("Expected a cached session for the provider user")
	}

	// A second sign-in reuses the row
	out2, err := g.Exchange("auth-code")
	if err != nil {
		t.Fatalf("Second Exchange failed: %v", err)
	}
	if out2.Completed.User.ID != user.ID {
		t.Error("Expected the existing account to be reused")
	}
}

func TestExchangeEmptyCodeIsCancellation(t *testing.T) {
	provider := mockProvider(t, map[string]any{"email": "g@example.com"})
	g, _ := newTestGoogle(t, provider)

	if _, err := g.Exchange(""); aulakit.ErrorCode(err) != aulakit.ErrCodeProviderCancelled {
		t.Errorf("Expected provider_cancelled, got %v", err)
	}
}

func TestExchangeDeactivatedAccount(t *testing.T) {
	provider := mockProvider(t, map[string]any{"email": "old@example.com"})
	g, fs := newTestGoogle(t, provider)

	id, _ := device.NewUserID()
	if err := fs.Users.SaveUser(&aulakit.AuthUser{
		ID: id, Email: "old@example.com", Name: "Old", IsActive: false,
	}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	if _, err := g.Exchange("auth-code"); aulakit.ErrorCode(err) != aulakit.ErrCodeUserNotFound {
		t.Errorf("Expected user_not_found for deactivated account, got %v", err)
	}
}

func TestExchangeProviderWithoutEmail(t *testing.T) {
	provider := mockProvider(t, map[string]any{"name": "No Email"})
	g, _ := newTestGoogle(t, provider)

	if _, err := g.Exchange("auth-code"); aulakit.ErrorCode(err) != aulakit.ErrCodeProviderUnavailable {
		t.Errorf("Expected provider_unavailable when no email returned, got %v", err)
	}
}

func TestRedirectFlow(t *testing.T) {
	provider := mockProvider(t, map[string]any{
		"email": "redirect@example.com", "name": "Redirect User",
	})
	g, _ := newTestGoogle(t, provider)

	var notified *aulakit.Session
	g.Subscribe(func(sess *aulakit.Session) { notified = sess })

	// /login issues the state and redirects to the provider
	rr := httptest.NewRecorder()
	g.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login?callbackURL=/home", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("Expected 302 from /login, got %d", rr.Code)
	}
	loc, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("Bad redirect location: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatal("Expected a state in the provider redirect")
	}

	// Provider redirects back with the code
	rr2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/callback?state="+state+"&code=auth-code", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	g.Handler().ServeHTTP(rr2, req)
	if rr2.Code != http.StatusFound {
		t.Fatalf("Expected 302 from /callback, got %d. Body: %s", rr2.Code, rr2.Body.String())
	}
	if got := rr2.Header().Get("Location"); got != "/home" {
		t.Errorf("Expected redirect to /home, got %s", got)
	}

	if notified == nil {
		t.Fatal("Expected subscribers to be notified")
	}
	if notified.User.Email != "redirect@example.com" {
		t.Errorf("Unexpected notified session: %+v", notified.User)
	}
}

func TestCallbackProviderError(t *testing.T) {
	provider := mockProvider(t, map[string]any{"email": "g@example.com"})
	g, _ := newTestGoogle(t, provider)

	rr := httptest.NewRecorder()
	g.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/callback?error=access_denied", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "provider_cancelled") {
		t.Errorf("Expected cancellation code in body, got %s", rr.Body.String())
	}
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	provider := mockProvider(t, map[string]any{"email": "g@example.com"})
	g, _ := newTestGoogle(t, provider)

	rr := httptest.NewRecorder()
	g.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/callback?state=forged&code=auth-code", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown state, got %d", rr.Code)
	}
}

func TestStateSingleUse(t *testing.T) {
	provider := mockProvider(t, map[string]any{"email": "g@example.com"})
	g, _ := newTestGoogle(t, provider)

	state, err := newState()
	if err != nil {
		t.Fatalf("newState failed: %v", err)
	}
	g.rememberState(state)

	if !g.consumeState(state) {
		t.Error("Expected first consume to succeed")
	}
	if g.consumeState(state) {
		t.Error("Expected second consume to fail")
	}
	if g.consumeState("") {
		t.Error("Expected empty state to fail")
	}
}
