package aulakit

import (
	"context"
	"log/slog"
	"net/http"
)

type userParamNameKey string

// Middleware resolves the logged-in user for each request, checking the
// server session first and falling back to the auth token cookie or
// Authorization header so native hosts can call the API without
// cookies.
type Middleware struct {
	AuthTokenHeaderName string
	AuthTokenCookieName string
	UserParamName       string
	SessionGetter       func(r *http.Request, param string) any
	VerifyToken         func(tokenString string) (loggedInUserId string, token any, err error)
}

func (a *Middleware) EnsureReasonableDefaults() {
	if a.UserParamName == "" {
		a.UserParamName = "loggedInUserId"
	}
	if a.AuthTokenHeaderName == "" {
		a.AuthTokenHeaderName = "Authorization"
	}
}

// GetLoggedInUserId returns the ID of the logged in user for the
// current request, or "" when nobody is logged in.
func (a *Middleware) GetLoggedInUserId(r *http.Request) string {
	v := r.Context().Value(userParamNameKey(a.UserParamName))
	if v != nil {
		if loggedInUserId, ok := v.(string); ok && loggedInUserId != "" {
			return loggedInUserId
		}
	}

	if userParam := a.getLoggedInUserId(r); userParam != "" {
		return userParam
	}

	if a.VerifyToken == nil {
		return ""
	}

	authTokens := r.Header.Values(a.AuthTokenHeaderName)
	for _, cookie := range r.Cookies() {
		if cookie.Name == a.AuthTokenCookieName && len(cookie.Value) > 0 {
			authTokens = append(authTokens, cookie.Value)
		}
	}

	for _, authToken := range authTokens {
		loggedInUserId, _, err := a.VerifyToken(authToken)
		if err == nil && loggedInUserId != "" {
			return loggedInUserId
		} else if err != nil {
			slog.Warn("error verifying auth token", "error", err)
		}
	}
	return ""
}

// ExtractUser resolves the logged-in user and stashes the ID in the
// request context for downstream handlers. It never rejects a request;
// use EnsureUser for that.
func (a *Middleware) ExtractUser(next http.Handler) http.Handler {
	a.EnsureReasonableDefaults()
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			userParam := a.GetLoggedInUserId(r)
			next.ServeHTTP(w, a.setLoggedInUserId(userParam, r))
		},
	)
}

// EnsureUser is ExtractUser plus a 401 when nobody is logged in.
func (a *Middleware) EnsureUser(next http.Handler) http.Handler {
	a.EnsureReasonableDefaults()
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			userParam := a.GetLoggedInUserId(r)
			if userParam == "" {
				writeError(w, http.StatusUnauthorized,
					NewAuthError(ErrCodeNoSavedSession, "login required", ""))
				return
			}
			next.ServeHTTP(w, a.setLoggedInUserId(userParam, r))
		},
	)
}

func (a *Middleware) getLoggedInUserId(r *http.Request) string {
	if a.SessionGetter == nil {
		return ""
	}
	out := a.SessionGetter(r, a.UserParamName)
	if out == nil {
		return ""
	}
	s, _ := out.(string)
	return s
}

func (a *Middleware) setLoggedInUserId(userId string, r *http.Request) *http.Request {
	contextWithUser := context.WithValue(r.Context(), userParamNameKey(a.UserParamName), userId)
	return r.WithContext(contextWithUser)
}
