package aulakit

import "io"

// UserStore manages backend account rows.
type UserStore interface {
	// CreateUser inserts a new account. Fails if the email is taken.
	CreateUser(u *AuthUser) error

	// GetUserByEmail retrieves an account by normalized email.
	// Returns an error wrapping ErrNotFound when no row exists.
	GetUserByEmail(email string) (*AuthUser, error)

	// GetUserByID retrieves an account by ID.
	GetUserByID(id string) (*AuthUser, error)

	// SaveUser creates or updates an account (upsert).
	SaveUser(u *AuthUser) error
}

// CourseUpdate is a partial course update; nil fields are unchanged.
type CourseUpdate struct {
	Title       *string
	Description *string
	ImageURL    *string
}

// LessonUpdate is a partial lesson update; nil fields are unchanged.
type LessonUpdate struct {
	Title       *string
	ContentURL  *string
	ContentType *ContentType
	OrderIndex  *int
}

// CourseStore manages the catalog.
type CourseStore interface {
	// ListCourses returns all courses, newest first.
	ListCourses() ([]*Course, error)

	GetCourse(id string) (*Course, error)
	CreateCourse(c *Course) error
	UpdateCourse(id string, upd CourseUpdate) (*Course, error)
	DeleteCourse(id string) error

	// SearchCourses matches title substrings case-insensitively,
	// newest first.
	SearchCourses(term string) ([]*Course, error)
}

// LessonStore manages lessons within courses.
type LessonStore interface {
	// LessonsForCourse returns a course's lessons by ascending order
	// index.
	LessonsForCourse(courseID string) ([]*Lesson, error)

	// ListLessons returns every lesson; used for progress math.
	ListLessons() ([]*Lesson, error)

	GetLesson(id string) (*Lesson, error)
	CreateLesson(l *Lesson) error
	UpdateLesson(id string, upd LessonUpdate) (*Lesson, error)
	DeleteLesson(id string) error

	// SearchLessons matches title substrings case-insensitively and
	// joins in the parent course title.
	SearchLessons(term string) ([]*LessonHit, error)
}

// EnrollmentStore manages per-user course access rows.
type EnrollmentStore interface {
	// GetEnrollment returns an error wrapping ErrNotFound when the
	// user has no enrollment for the course.
	GetEnrollment(email, courseID string) (*Enrollment, error)

	CreateEnrollment(e *Enrollment) error
	ListEnrollments(email string) ([]*Enrollment, error)
}

// CompletionStore manages per-lesson completion rows.
type CompletionStore interface {
	// ListCompleted returns the user's rows with Completed set.
	ListCompleted(email string) ([]*LessonCompletion, error)

	// CompletedForCourse returns the user's completed rows within one
	// course.
	CompletedForCourse(email, courseID string) ([]*LessonCompletion, error)

	// GetCompletion returns an error wrapping ErrNotFound when no row
	// exists.
	GetCompletion(email, courseID, lessonID string) (*LessonCompletion, error)

	// SaveCompletion creates or updates a row (upsert).
	SaveCompletion(c *LessonCompletion) error
}

// SubscriptionStore manages access requests for the approval workflow.
type SubscriptionStore interface {
	// PendingSubscriptions returns requests not yet granted, newest
	// first, joined with course/user display data.
	PendingSubscriptions() ([]*PendingSubscription, error)

	GetSubscription(id string) (*CourseSubscription, error)
	SaveSubscription(s *CourseSubscription) error
	DeleteSubscription(id string) error
}

// QuestionStore manages the per-lesson Q&A thread.
type QuestionStore interface {
	// QuestionsForLesson returns a lesson's questions, newest first.
	QuestionsForLesson(lessonID string) ([]*LessonQuestion, error)

	CreateQuestion(q *LessonQuestion) error

	// AnswerQuestion sets the admin answer and refreshes UpdatedAt.
	AnswerQuestion(id, answer string) error
}

// MaterialStore manages supplementary lesson files.
type MaterialStore interface {
	// MaterialsForLesson returns materials by ascending order index.
	MaterialsForLesson(lessonID string) ([]*LessonMaterial, error)

	SaveMaterial(m *LessonMaterial) error
	DeleteMaterial(id string) error
}

// ProfileStore manages per-user flags.
type ProfileStore interface {
	// GetProfile returns an error wrapping ErrNotFound when the user
	// has no profile row.
	GetProfile(userID string) (*Profile, error)

	SaveProfile(p *Profile) error
}

// FileStore manages uploaded lesson content (PDFs) in bucket-style
// storage.
type FileStore interface {
	// Upload stores the object under a unique name scoped to the
	// course and returns its public URL.
	Upload(courseID, fileName, contentType string, r io.Reader) (string, error)

	// Remove deletes the object a previous Upload returned the URL
	// for.
	Remove(publicURL string) error
}
