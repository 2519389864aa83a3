package aulakit

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/aulakit/aulakit/device"
)

// Admin serves the admin console: access-request approval, course and
// lesson management, and content uploads. Authorization (the is-admin
// check) is exposed here and enforced by the HTTP surface; native
// hosts are expected to gate their admin screens the same way.
type Admin struct {
	Profiles      ProfileStore
	Subscriptions SubscriptionStore
	Courses       CourseStore
	Lessons       LessonStore
	Materials     MaterialStore
	Files         FileStore
}

// IsAdmin reports whether the user's profile carries the admin flag.
// A missing profile or lookup failure reads as false.
func (a *Admin) IsAdmin(userID string) bool {
	p, err := a.Profiles.GetProfile(userID)
	if err != nil {
		return false
	}
	return p.IsAdmin
}

// PendingSubscriptions lists access requests awaiting a decision,
// newest first.
func (a *Admin) PendingSubscriptions() ([]*PendingSubscription, error) {
	return a.Subscriptions.PendingSubscriptions()
}

// Grant approves an access request.
func (a *Admin) Grant(subscriptionID string) error {
	sub, err := a.Subscriptions.GetSubscription(subscriptionID)
	if err != nil {
		return err
	}
	sub.AccessGranted = true
	sub.UpdatedAt = time.Now()
	return a.Subscriptions.SaveSubscription(sub)
}

// Reject deletes an access request. The user may request again.
func (a *Admin) Reject(subscriptionID string) error {
	return a.Subscriptions.DeleteSubscription(subscriptionID)
}

// AllCourses lists the catalog for the management screen, newest
// first.
func (a *Admin) AllCourses() ([]*Course, error) {
	return a.Courses.ListCourses()
}

// CreateCourse adds a course. Description and image are optional.
func (a *Admin) CreateCourse(title string, description, imageURL *string) (*Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewAuthError(ErrCodeMissingField, "course title is required", "title")
	}

	id, err := device.NewUserID()
	if err != nil {
		return nil, err
	}
	course := &Course{
		ID:          id,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := a.Courses.CreateCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

// UpdateCourse applies a partial update.
func (a *Admin) UpdateCourse(id string, upd CourseUpdate) (*Course, error) {
	return a.Courses.UpdateCourse(id, upd)
}

// DeleteCourse removes a course.
func (a *Admin) DeleteCourse(id string) error {
	return a.Courses.DeleteCourse(id)
}

// LessonsForCourse lists a course's lessons for the management screen.
func (a *Admin) LessonsForCourse(courseID string) ([]*Lesson, error) {
	return a.Lessons.LessonsForCourse(courseID)
}

// CreateLesson adds a lesson to a course.
func (a *Admin) CreateLesson(courseID, title, contentURL string, contentType ContentType, orderIndex int) (*Lesson, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewAuthError(ErrCodeMissingField, "lesson title is required", "title")
	}

	id, err := device.NewUserID()
	if err != nil {
		return nil, err
	}
	lesson := &Lesson{
		ID:          id,
		CourseID:    courseID,
		Title:       title,
		ContentURL:  contentURL,
		ContentType: contentType,
		OrderIndex:  orderIndex,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := a.Lessons.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// UpdateLesson applies a partial update.
func (a *Admin) UpdateLesson(id string, upd LessonUpdate) (*Lesson, error) {
	return a.Lessons.UpdateLesson(id, upd)
}

// DeleteLesson removes a lesson.
func (a *Admin) DeleteLesson(id string) error {
	return a.Lessons.DeleteLesson(id)
}

// UploadPDF stores lesson content in bucket storage and returns its
// public URL for use as a lesson content URL or material file URL.
func (a *Admin) UploadPDF(courseID, fileName string, r io.Reader) (string, error) {
	if a.Files == nil {
		return "", errors.New("no file store configured")
	}
	return a.Files.Upload(courseID, fileName, "application/pdf", r)
}

// RemovePDF deletes previously uploaded content by its public URL.
func (a *Admin) RemovePDF(publicURL string) error {
	if a.Files == nil {
		return errors.New("no file store configured")
	}
	return a.Files.Remove(publicURL)
}

// AddMaterial attaches a supplementary file to a lesson.
func (a *Admin) AddMaterial(lessonID, fileName, fileURL, fileType string, description *string, orderIndex int) (*LessonMaterial, error) {
	id, err := device.NewUserID()
	if err != nil {
		return nil, err
	}
	m := &LessonMaterial{
		ID:          id,
		LessonID:    lessonID,
		FileName:    fileName,
		FileURL:     fileURL,
		FileType:    fileType,
		Description: description,
		OrderIndex:  orderIndex,
	}
	if err := a.Materials.SaveMaterial(m); err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveMaterial detaches a supplementary file.
func (a *Admin) RemoveMaterial(id string) error {
	return a.Materials.DeleteMaterial(id)
}
