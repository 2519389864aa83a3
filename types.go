package aulakit

import "time"

// AuthUser is a backend account row. PasswordHash is nil for accounts
// created before password auth existed and for delegated-provider
// accounts; a nil hash permits passwordless login (legacy bypass).
type AuthUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"` // unique, stored lowercase
	Name         string    `json:"name"`
	PasswordHash *string   `json:"password_hash,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionUser is the minimal user view cached on the device.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the locally persisted proof of a logged-in identity.
// Timestamp is epoch milliseconds at creation.
type Session struct {
	User      SessionUser `json:"user"`
	Timestamp int64       `json:"timestamp"`
}

// ContentType distinguishes lesson playback widgets.
type ContentType string

const (
	ContentVideo ContentType = "VIDEO"
	ContentPDF   ContentType = "PDF"
)

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseProgress is a course decorated with the calling user's progress.
type CourseProgress struct {
	Course
	Progress       int `json:"progress"` // percent, 0-100
	LessonCount    int `json:"lesson_count"`
	CompletedCount int `json:"completed_count"`
}

type Lesson struct {
	ID          string      `json:"id"`
	CourseID    string      `json:"course_id"`
	Title       string      `json:"title"`
	ContentURL  string      `json:"content_url"`
	ContentType ContentType `json:"content_type"`
	OrderIndex  int         `json:"order_index"`
	Duration    *int        `json:"duration,omitempty"` // seconds, video only
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LessonStatus is a lesson decorated with the calling user's completion.
type LessonStatus struct {
	Lesson
	Completed bool `json:"completed"`
}

// LessonHit is a search result carrying the parent course title.
type LessonHit struct {
	Lesson
	CourseTitle string `json:"course_title"`
}

// Enrollment records that a user has (requested) access to a course.
// Keyed by (email, course) — the backend enforces uniqueness.
type Enrollment struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	CourseID   string    `json:"course_id"`
	Progress   int       `json:"progress"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type LessonCompletion struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	CourseID    string     `json:"course_id"`
	LessonID    string     `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// CourseSubscription is an access request awaiting admin approval.
type CourseSubscription struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CourseID      string    `json:"course_id"`
	AccessGranted bool      `json:"access_granted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PendingSubscription joins the request with display data for the
// approval screen.
type PendingSubscription struct {
	CourseSubscription
	CourseTitle string `json:"course_title"`
	UserEmail   string `json:"user_email"`
}

type LessonQuestion struct {
	ID          string    `json:"id"`
	LessonID    string    `json:"lesson_id"`
	UserID      string    `json:"user_id"`
	Question    string    `json:"question"`
	AdminAnswer *string   `json:"admin_answer"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LessonMaterial struct {
	ID          string  `json:"id"`
	LessonID    string  `json:"lesson_id"`
	FileName    string  `json:"file_name"`
	FileURL     string  `json:"file_url"`
	FileType    string  `json:"file_type"`
	Description *string `json:"description"`
	OrderIndex  int     `json:"order_index"`
}

// Profile carries per-user flags that are not credentials, currently
// just the admin bit.
type Profile struct {
	ID        string    `json:"id"` // same value as the user ID
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
