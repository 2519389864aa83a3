//go:build !wasm
// +build !wasm

package gorm

import (
	"time"

	aulakit "github.com/aulakit/aulakit"
)

// UserModel is the GORM model for user accounts
type UserModel struct {
	ID           string  `gorm:"primaryKey;size:64"`
	Email        string  `gorm:"size:255;uniqueIndex"`
	Name         string  `gorm:"size:255"`
	PasswordHash *string `gorm:"size:128"`
	IsActive     bool    `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToUser() *aulakit.AuthUser {
	return &aulakit.AuthUser{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func UserToModel(u *aulakit.AuthUser) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// CourseModel is the GORM model for courses
type CourseModel struct {
	ID          string  `gorm:"primaryKey;size:64"`
	Title       string  `gorm:"size:255"`
	Description *string `gorm:"type:text"`
	ImageURL    *string `gorm:"size:1024"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CourseModel) TableName() string {
	return "courses"
}

func (m *CourseModel) ToCourse() *aulakit.Course {
	return &aulakit.Course{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func CourseToModel(c *aulakit.Course) *CourseModel {
	return &CourseModel{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// LessonModel is the GORM model for lessons
type LessonModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	CourseID    string `gorm:"size:64;index"`
	Title       string `gorm:"size:255"`
	ContentURL  string `gorm:"size:1024"`
	ContentType string `gorm:"size:16"`
	OrderIndex  int
	Duration    *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (LessonModel) TableName() string {
	return "lessons"
}

func (m *LessonModel) ToLesson() *aulakit.Lesson {
	return &aulakit.Lesson{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		ContentURL:  m.ContentURL,
		ContentType: aulakit.ContentType(m.ContentType),
		OrderIndex:  m.OrderIndex,
		Duration:    m.Duration,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func LessonToModel(l *aulakit.Lesson) *LessonModel {
	return &LessonModel{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Title:       l.Title,
		ContentURL:  l.ContentURL,
		ContentType: string(l.ContentType),
		OrderIndex:  l.OrderIndex,
		Duration:    l.Duration,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// EnrollmentModel is the GORM model for course enrollments
type EnrollmentModel struct {
	ID         string `gorm:"primaryKey;size:64"`
	Email      string `gorm:"size:255;uniqueIndex:idx_enrollment_key"`
	CourseID   string `gorm:"size:64;uniqueIndex:idx_enrollment_key"`
	Progress   int    `gorm:"default:0"`
	EnrolledAt time.Time
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}

func (m *EnrollmentModel) ToEnrollment() *aulakit.Enrollment {
	return &aulakit.Enrollment{
		ID:         m.ID,
		Email:      m.Email,
		CourseID:   m.CourseID,
		Progress:   m.Progress,
		EnrolledAt: m.EnrolledAt,
	}
}

func EnrollmentToModel(e *aulakit.Enrollment) *EnrollmentModel {
	return &EnrollmentModel{
		ID:         e.ID,
		Email:      e.Email,
		CourseID:   e.CourseID,
		Progress:   e.Progress,
		EnrolledAt: e.EnrolledAt,
	}
}

// CompletionModel is the GORM model for lesson completions
type CompletionModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Email       string `gorm:"size:255;uniqueIndex:idx_completion_key"`
	CourseID    string `gorm:"size:64;uniqueIndex:idx_completion_key"`
	LessonID    string `gorm:"size:64;uniqueIndex:idx_completion_key"`
	Completed   bool   `gorm:"default:false"`
	CompletedAt *time.Time
}

func (CompletionModel) TableName() string {
	return "lesson_completions"
}

func (m *CompletionModel) ToCompletion() *aulakit.LessonCompletion {
	return &aulakit.LessonCompletion{
		ID:          m.ID,
		Email:       m.Email,
		CourseID:    m.CourseID,
		LessonID:    m.LessonID,
		Completed:   m.Completed,
		CompletedAt: m.CompletedAt,
	}
}

func CompletionToModel(c *aulakit.LessonCompletion) *CompletionModel {
	return &CompletionModel{
		ID:          c.ID,
		Email:       c.Email,
		CourseID:    c.CourseID,
		LessonID:    c.LessonID,
		Completed:   c.Completed,
		CompletedAt: c.CompletedAt,
	}
}

// SubscriptionModel is the GORM model for course access requests
type SubscriptionModel struct {
	ID            string `gorm:"primaryKey;size:64"`
	UserID        string `gorm:"size:64;index"`
	CourseID      string `gorm:"size:64;index"`
	AccessGranted bool   `gorm:"default:false;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SubscriptionModel) TableName() string {
	return "course_subscriptions"
}

func (m *SubscriptionModel) ToSubscription() *aulakit.CourseSubscription {
	return &aulakit.CourseSubscription{
		ID:            m.ID,
		UserID:        m.UserID,
		CourseID:      m.CourseID,
		AccessGranted: m.AccessGranted,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func SubscriptionToModel(s *aulakit.CourseSubscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:            s.ID,
		UserID:        s.UserID,
		CourseID:      s.CourseID,
		AccessGranted: s.AccessGranted,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// QuestionModel is the GORM model for lesson questions
type QuestionModel struct {
	ID          string  `gorm:"primaryKey;size:64"`
	LessonID    string  `gorm:"size:64;index"`
	UserID      string  `gorm:"size:64;index"`
	Question    string  `gorm:"type:text"`
	AdminAnswer *string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (QuestionModel) TableName() string {
	return "lesson_questions"
}

func (m *QuestionModel) ToQuestion() *aulakit.LessonQuestion {
	return &aulakit.LessonQuestion{
		ID:          m.ID,
		LessonID:    m.LessonID,
		UserID:      m.UserID,
		Question:    m.Question,
		AdminAnswer: m.AdminAnswer,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func QuestionToModel(q *aulakit.LessonQuestion) *QuestionModel {
	return &QuestionModel{
		ID:          q.ID,
		LessonID:    q.LessonID,
		UserID:      q.UserID,
		Question:    q.Question,
		AdminAnswer: q.AdminAnswer,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

// MaterialModel is the GORM model for lesson materials
type MaterialModel struct {
	ID          string  `gorm:"primaryKey;size:64"`
	LessonID    string  `gorm:"size:64;index"`
	FileName    string  `gorm:"size:255"`
	FileURL     string  `gorm:"size:1024"`
	FileType    string  `gorm:"size:64"`
	Description *string `gorm:"type:text"`
	OrderIndex  int
}

func (MaterialModel) TableName() string {
	return "lesson_materials"
}

func (m *MaterialModel) ToMaterial() *aulakit.LessonMaterial {
	return &aulakit.LessonMaterial{
		ID:          m.ID,
		LessonID:    m.LessonID,
		FileName:    m.FileName,
		FileURL:     m.FileURL,
		FileType:    m.FileType,
		Description: m.Description,
		OrderIndex:  m.OrderIndex,
	}
}

func MaterialToModel(m *aulakit.LessonMaterial) *MaterialModel {
	return &MaterialModel{
		ID:          m.ID,
		LessonID:    m.LessonID,
		FileName:    m.FileName,
		FileURL:     m.FileURL,
		FileType:    m.FileType,
		Description: m.Description,
		OrderIndex:  m.OrderIndex,
	}
}

// ProfileModel is the GORM model for per-user flags
type ProfileModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	IsAdmin   bool   `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProfileModel) TableName() string {
	return "profiles"
}

func (m *ProfileModel) ToProfile() *aulakit.Profile {
	return &aulakit.Profile{
		ID:        m.ID,
		IsAdmin:   m.IsAdmin,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ProfileToModel(p *aulakit.Profile) *ProfileModel {
	return &ProfileModel{
		ID:        p.ID,
		IsAdmin:   p.IsAdmin,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
