package aulakit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

// App wires the services behind an HTTP surface for the UI screens.
// Sessions are server-managed (scs) with a JWT auth-token cookie as
// fallback, so native hosts can authenticate with a bearer token
// instead of cookies.
type App struct {
	Auth    *Authenticator
	Catalog *Catalog
	Search  *Search
	QA      *QA
	Admin   *Admin

	router     *mux.Router
	Session    *scs.SessionManager
	Middleware Middleware

	// Optional name used as a prefix for default var names
	AppName string

	// Name of the session variable where the auth token is stored
	AuthTokenSessionVar string

	JwtIssuer    string
	JWTSecretKey string

	// How long is a session cookie valid for.  Defaults to 1 day
	SessionTimeoutInSeconds int

	// UseDeviceSession lets cookie-less requests fall back to the
	// device-cached session, which the delegated-provider flows write
	// without ever touching the scs session. Only single-device hosts
	// should opt in: with it on, an anonymous request is attributed to
	// whoever last logged in on this device.
	UseDeviceSession bool
}

func NewApp(appName string) *App {
	return (&App{AppName: appName}).EnsureDefaults()
}

func (a *App) EnsureDefaults() *App {
	if a.AppName == "" {
		a.AppName = "AulaKit"
	}
	if a.SessionTimeoutInSeconds <= 0 {
		a.SessionTimeoutInSeconds = 86400
	}
	if a.JwtIssuer == "" {
		a.JwtIssuer = fmt.Sprintf("%s-Issuer", a.AppName)
	}
	if a.AuthTokenSessionVar == "" {
		a.AuthTokenSessionVar = fmt.Sprintf("%sAuthToken", a.AppName)
	}
	if a.JWTSecretKey == "" {
		a.JWTSecretKey = strings.TrimSpace(os.Getenv("AULA_JWT_SECRET"))
		if a.JWTSecretKey == "" {
			a.JWTSecretKey = "MyTestJWTSecretKey123456"
		}
	}
	if a.Session == nil {
		a.Session = scs.New()
		a.Session.Lifetime = time.Duration(a.SessionTimeoutInSeconds) * time.Second
	}
	if a.Middleware.AuthTokenCookieName == "" {
		a.Middleware.AuthTokenCookieName = a.AuthTokenSessionVar
	}
	if a.Middleware.SessionGetter == nil {
		a.Middleware.SessionGetter = func(r *http.Request, param string) any {
			return a.Session.Get(r.Context(), param)
		}
	}
	if a.Middleware.VerifyToken == nil {
		a.Middleware.VerifyToken = a.verifyJWT
	}
	a.Middleware.EnsureReasonableDefaults()
	return a
}

// Handler returns the full surface: session loading, user extraction,
// then the routes.
func (a *App) Handler() http.Handler {
	a.EnsureDefaults()
	a.setupRoutes()
	return a.Session.LoadAndSave(a.Middleware.ExtractUser(a.router))
}

// AddAuth mounts a delegated-provider handler (e.g. the Google flow)
// under prefix, stripping the prefix so the handler sees /login and
// /callback.
func (a *App) AddAuth(prefix string, handler http.Handler) *App {
	a.EnsureDefaults()
	a.setupRoutes()
	prefix = strings.TrimSuffix(prefix, "/")
	a.router.PathPrefix(prefix + "/").Handler(http.StripPrefix(prefix, handler))
	return a
}

func (a *App) setupRoutes() *App {
	if a.router != nil {
		return a
	}
	r := mux.NewRouter()
	a.router = r

	r.HandleFunc("/auth/login", a.onLogin).Methods("POST")
	r.HandleFunc("/auth/register", a.onRegister).Methods("POST")
	r.HandleFunc("/auth/logout", a.onLogout).Methods("POST")
	r.HandleFunc("/auth/session", a.onSession).Methods("GET")

	r.HandleFunc("/courses", a.requireUser(a.onCourses)).Methods("GET")
	r.HandleFunc("/courses/{id}", a.requireUser(a.onCourse)).Methods("GET")
	r.HandleFunc("/courses/{id}/access", a.requireUser(a.onRequestAccess)).Methods("POST")
	r.HandleFunc("/courses/{id}/lessons", a.requireUser(a.onCourseLessons)).Methods("GET")
	r.HandleFunc("/courses/{id}/lessons/{lessonId}/complete", a.requireUser(a.onComplete)).Methods("POST")
	r.HandleFunc("/courses/{id}/lessons/{lessonId}/complete", a.requireUser(a.onUncomplete)).Methods("DELETE")

	r.HandleFunc("/search", a.requireUser(a.onSearch)).Methods("GET")

	r.HandleFunc("/lessons/{id}/questions", a.requireUser(a.onQuestions)).Methods("GET")
	r.HandleFunc("/lessons/{id}/questions", a.requireUser(a.onAsk)).Methods("POST")
	r.HandleFunc("/lessons/{id}/materials", a.requireUser(a.onMaterials)).Methods("GET")

	r.HandleFunc("/admin/subscriptions", a.requireAdmin(a.onPendingSubscriptions)).Methods("GET")
	r.HandleFunc("/admin/subscriptions/{id}/grant", a.requireAdmin(a.onGrant)).Methods("POST")
	r.HandleFunc("/admin/subscriptions/{id}", a.requireAdmin(a.onReject)).Methods("DELETE")

	r.HandleFunc("/admin/courses", a.requireAdmin(a.onAdminCourses)).Methods("GET")
	r.HandleFunc("/admin/courses", a.requireAdmin(a.onCreateCourse)).Methods("POST")
	r.HandleFunc("/admin/courses/{id}", a.requireAdmin(a.onUpdateCourse)).Methods("PATCH")
	r.HandleFunc("/admin/courses/{id}", a.requireAdmin(a.onDeleteCourse)).Methods("DELETE")
	r.HandleFunc("/admin/courses/{id}/lessons", a.requireAdmin(a.onAdminLessons)).Methods("GET")
	r.HandleFunc("/admin/courses/{id}/lessons", a.requireAdmin(a.onCreateLesson)).Methods("POST")
	r.HandleFunc("/admin/courses/{id}/upload", a.requireAdmin(a.onUpload)).Methods("POST")
	r.HandleFunc("/admin/lessons/{id}", a.requireAdmin(a.onUpdateLesson)).Methods("PATCH")
	r.HandleFunc("/admin/lessons/{id}", a.requireAdmin(a.onDeleteLesson)).Methods("DELETE")
	r.HandleFunc("/admin/lessons/{id}/materials", a.requireAdmin(a.onAddMaterial)).Methods("POST")
	r.HandleFunc("/admin/materials/{id}", a.requireAdmin(a.onRemoveMaterial)).Methods("DELETE")
	r.HandleFunc("/admin/questions/{id}/answer", a.requireAdmin(a.onAnswer)).Methods("POST")

	return a
}

// currentUser resolves the caller. The server session and auth token
// cookie win; the device-cached session is consulted only when the
// host opted in via UseDeviceSession.
func (a *App) currentUser(r *http.Request) *AuthUser {
	userID := a.Middleware.GetLoggedInUserId(r)
	if userID == "" {
		if !a.UseDeviceSession {
			return nil
		}
		sess := a.Auth.CurrentSession()
		if sess == nil {
			return nil
		}
		userID = sess.User.ID
	}
	user, err := a.Auth.Users.GetUserByID(userID)
	if err != nil || !user.IsActive {
		return nil
	}
	return user
}

type userHandler func(w http.ResponseWriter, r *http.Request, user *AuthUser)

func (a *App) requireUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := a.currentUser(r)
		if user == nil {
			writeError(w, http.StatusUnauthorized,
				NewAuthError(ErrCodeNoSavedSession, "login required", ""))
			return
		}
		next(w, r, user)
	}
}

func (a *App) requireAdmin(next userHandler) http.HandlerFunc {
	return a.requireUser(func(w http.ResponseWriter, r *http.Request, user *AuthUser) {
		if !a.Admin.IsAdmin(user.ID) {
			writeError(w, http.StatusForbidden,
				NewAuthError(ErrCodeNotAdmin, "admin access required", ""))
			return
		}
		next(w, r, user)
	})
}

// authBody is the payload the auth endpoints accept, as JSON or form
// fields.
type authBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func readAuthBody(r *http.Request) (*authBody, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var body authBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, NewAuthError(ErrCodeMissingField, "could not parse request body", "")
		}
		return &body, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, NewAuthError(ErrCodeMissingField, "could not parse request body", "")
	}
	return &authBody{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Name:     r.FormValue("name"),
	}, nil
}

func (a *App) onLogin(w http.ResponseWriter, r *http.Request) {
	body, err := readAuthBody(r)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	sess, err := a.Auth.Login(body.Email, body.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	a.setLoggedInUser(&sess.User, w, r)
	writeJSON(w, http.StatusOK, sess)
}

func (a *App) onRegister(w http.ResponseWriter, r *http.Request) {
	body, err := readAuthBody(r)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	// The manager itself imposes no password policy; the minimum length
	// lives here with the rest of the input validation.
	if body.Password != "" && len(body.Password) < 6 {
		writeError(w, http.StatusBadRequest,
			NewAuthError(ErrCodeWeakPassword, "password must be at least 6 characters", "password"))
		return
	}
	sess, err := a.Auth.Register(body.Email, body.Password, body.Name)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	a.setLoggedInUser(&sess.User, w, r)
	writeJSON(w, http.StatusCreated, sess)
}

func (a *App) onLogout(w http.ResponseWriter, r *http.Request) {
	a.Auth.Logout()
	a.setLoggedInUser(nil, w, r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (a *App) onSession(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized,
			NewAuthError(ErrCodeNoSavedSession, "no saved session", ""))
		return
	}
	// Prefer the persisted record so the wire view carries the real
	// creation timestamp.
	if sess := a.Auth.CurrentSession(); sess != nil && sess.User.ID == user.ID {
		writeJSON(w, http.StatusOK, sess)
		return
	}
	writeJSON(w, http.StatusOK, &Session{
		User:      SessionUser{ID: user.ID, Email: user.Email, Name: user.Name},
		Timestamp: time.Now().UnixMilli(),
	})
}

func (a *App) onCourses(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	courses, err := a.Catalog.CoursesWithProgress(user.Email)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (a *App) onCourse(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	course, err := a.Catalog.Course(mux.Vars(r)["id"])
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (a *App) onRequestAccess(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	if err := a.Catalog.RequestAccess(user.Email, mux.Vars(r)["id"]); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "requested"})
}

func (a *App) onCourseLessons(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	lessons, err := a.Catalog.LessonsWithStatus(mux.Vars(r)["id"], user.Email)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (a *App) onComplete(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	vars := mux.Vars(r)
	if err := a.Catalog.MarkCompleted(user.Email, vars["id"], vars["lessonId"]); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (a *App) onUncomplete(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	vars := mux.Vars(r)
	if err := a.Catalog.UnmarkCompleted(user.Email, vars["id"], vars["lessonId"]); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "incomplete"})
}

func (a *App) onSearch(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	result, err := a.Search.Global(r.URL.Query().Get("q"))
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) onQuestions(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	questions, err := a.QA.ForLesson(mux.Vars(r)["id"])
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (a *App) onAsk(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	var body struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest,
			NewAuthError(ErrCodeMissingField, "could not parse request body", ""))
		return
	}
	q, err := a.QA.Ask(mux.Vars(r)["id"], user.ID, body.Question)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (a *App) onMaterials(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	materials, err := a.Catalog.MaterialsForLesson(mux.Vars(r)["id"])
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func (a *App) onPendingSubscriptions(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	subs, err := a.Admin.PendingSubscriptions()
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (a *App) onGrant(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	if err := a.Admin.Grant(mux.Vars(r)["id"]); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "granted"})
}

func (a *App) onReject(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	if err := a.Admin.Reject(mux.Vars(r)["id"]); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (a *App) onAdminCourses(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	courses, err := a.Admin.AllCourses()
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

type courseBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

func (a *App) onCreateCourse(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	var body courseBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest,
			NewAuthError(ErrCodeMissingField, "could not parse request body", ""))
		return
	}
	title := ""
	if body.Title != nil {
		title = *body.Title
	}
	course, err := a.Admin.CreateCourse(title, body.Description, body.ImageURL)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

func (a *App) onUpdateCourse(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	var body courseBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest,
			NewAuthError(ErrCodeMissingField, "could not parse request body", ""))
		return
	}
	course, err := a.Admin.UpdateCourse(mux.Vars(r)["id"], CourseUpdate{
		Title:       body.Title,
		Description: body.Description,
		ImageURL:    body.ImageURL,
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (a *App) onDeleteCourse(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	if err := a.Admin.DeleteCourse(mux.Vars(r)["id"]); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *App) onAdminLessons(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	lessons, err := a.Admin.LessonsForCourse(mux.Vars(r)["id"])
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

type lessonBody struct {
	Title       *string      `json:"title"`
	ContentURL  *string      `json:"content_url"`
	ContentType *ContentType `json:"content_type"`
	OrderIndex  *int         `json:"order_index"`
}

func (a *App) onCreateLesson(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	var body lessonBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest,
			NewAuthError(ErrCodeMissingField, "could not parse request body", ""))
		return
	}
	title, contentURL, orderIndex := "", "", 0
	contentType := ContentVideo
	if body.Title != nil {
		title = *body.Title
	}
	if body.ContentURL != nil {
		contentURL = *body.ContentURL
	}
	if body.ContentType != nil {
		contentType = *body.ContentType
	}
	if body.OrderIndex != nil {
		orderIndex = *body.OrderIndex
	}
	lesson, err := a.Admin.CreateLesson(mux.Vars(r)["id"], title, contentURL, contentType, orderIndex)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lesson)
}

func (a *App) onUpdateLesson(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	var body lessonBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest,
			NewAuthError(ErrCodeMissingField, "could not parse request body", ""))
		return
	}
	lesson, err := a.Admin.UpdateLesson(mux.Vars(r)["id"], LessonUpdate{
		Title:       body.Title,
		ContentURL:  body.ContentURL,
		ContentType: body.ContentType,
		OrderIndex:  body.OrderIndex,
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (a *App) onDeleteLesson(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	if err := a.Admin.DeleteLesson(mux.Vars(r)["id"]); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *App) onUpload(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest,
			NewAuthError(ErrCodeMissingField, "file is required", "file"))
		return
	}
	defer file.Close()

	url, err := a.Admin.UploadPDF(mux.Vars(r)["id"], header.Filename, file)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (a *App) onAddMaterial(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	var body struct {
		FileName    string  `json:"file_name"`
		FileURL     string  `json:"file_url"`
		FileType    string  `json:"file_type"`
		Description *string `json:"description"`
		OrderIndex  int     `json:"order_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest,
			NewAuthError(ErrCodeMissingField, "could not parse request body", ""))
		return
	}
	m, err := a.Admin.AddMaterial(mux.Vars(r)["id"], body.FileName, body.FileURL,
		body.FileType, body.Description, body.OrderIndex)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (a *App) onRemoveMaterial(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	if err := a.Admin.RemoveMaterial(mux.Vars(r)["id"]); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (a *App) onAnswer(w http.ResponseWriter, r *http.Request, user *AuthUser) {
	var body struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest,
			NewAuthError(ErrCodeMissingField, "could not parse request body", ""))
		return
	}
	if err := a.QA.Answer(mux.Vars(r)["id"], body.Answer); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "answered"})
}

func (a *App) verifyJWT(tokenString string) (loggedInUserId string, t any, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(a.JWTSecretKey), nil
	})
	if err != nil {
		return "", nil, err
	}
	if !token.Valid {
		return "", nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims == nil {
		return "", nil, fmt.Errorf("claims is not a map")
	}
	sub, err := claims.GetSubject()
	if sub == "" {
		return "", nil, fmt.Errorf("subject not found")
	} else if err != nil {
		return "", nil, err
	}
	return sub, token, nil
}

// setLoggedInUser sets (or with nil, clears) the session variables and
// the auth token cookie.
func (a *App) setLoggedInUser(user *SessionUser, w http.ResponseWriter, r *http.Request) string {
	a.EnsureDefaults()
	if user == nil {
		if err := a.Session.Clear(r.Context()); err != nil {
			slog.Warn("error clearing session", "err", err)
		}
		http.SetCookie(w, &http.Cookie{
			Name:    a.AuthTokenSessionVar,
			Path:    "/",
			MaxAge:  -1,
			Expires: time.Now(),
		})
		return ""
	}

	a.Session.Put(r.Context(), a.Middleware.UserParamName, user.ID)
	a.Session.Put(r.Context(), "loggedInUserEmail", user.Email)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"iss": a.JwtIssuer,
		"exp": time.Now().Add(time.Second * time.Duration(a.SessionTimeoutInSeconds)).Unix(),
		"iat": time.Now().Unix(),
	})
	tokenString, err := token.SignedString([]byte(a.JWTSecretKey))
	if err != nil {
		slog.Info("error signing token", "err", err)
	}

	a.Session.Put(r.Context(), a.AuthTokenSessionVar, tokenString)
	http.SetCookie(w, &http.Cookie{
		Name:    a.AuthTokenSessionVar,
		Value:   tokenString,
		Path:    "/",
		Expires: time.Now().Add(time.Second * time.Duration(a.SessionTimeoutInSeconds)),
		MaxAge:  a.SessionTimeoutInSeconds,
	})
	return tokenString
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("error encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, ae *AuthError) {
	writeJSON(w, status, ae)
}

// writeAuthError maps an error to its HTTP status by code. Errors that
// are not AuthErrors read as backend failures.
func writeAuthError(w http.ResponseWriter, err error) {
	var ae *AuthError
	if !errors.As(err, &ae) {
		ae = NewAuthError(ErrCodeBackendUnavailable, err.Error(), "")
	}
	writeError(w, statusForCode(ae.Code), ae)
}

func statusForCode(code string) int {
	switch code {
	case ErrCodeMissingField, ErrCodeWeakPassword:
		return http.StatusBadRequest
	case ErrCodeUserNotFound, ErrCodeInvalidCredentials, ErrCodeNoSavedSession,
		ErrCodeProviderCancelled:
		return http.StatusUnauthorized
	case ErrCodeNotAdmin:
		return http.StatusForbidden
	case ErrCodeEmailTaken:
		return http.StatusConflict
	case ErrCodeBackendUnavailable, ErrCodeProviderUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
