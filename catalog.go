package aulakit

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/aulakit/aulakit/device"
)

// Catalog serves the learner-facing screens: course list with
// progress, lesson lists, access requests and completion toggles.
// Progress state is keyed by the user's email, matching the backend
// enrollment/completion tables.
type Catalog struct {
	Courses     CourseStore
	Lessons     LessonStore
	Enrollments EnrollmentStore
	Completions CompletionStore
	Materials   MaterialStore

	logger *slog.Logger
}

func NewCatalog(courses CourseStore, lessons LessonStore, enrollments EnrollmentStore, completions CompletionStore, materials MaterialStore) *Catalog {
	return &Catalog{
		Courses:     courses,
		Lessons:     lessons,
		Enrollments: enrollments,
		Completions: completions,
		Materials:   materials,
		logger:      slog.Default(),
	}
}

// CoursesWithProgress returns every course, newest first, decorated
// with the user's lesson counts and percent progress. An enrollment
// row's recorded progress wins over the computed ratio when present.
// Progress lookups degrade to zero on error; the catalog itself must
// still render.
func (c *Catalog) CoursesWithProgress(email string) ([]*CourseProgress, error) {
	courses, err := c.Courses.ListCourses()
	if err != nil {
		return nil, err
	}

	enrollments, err := c.Enrollments.ListEnrollments(email)
	if err != nil {
		c.logger.Warn("could not load enrollments", "email", email, "err", err)
	}
	completed, err := c.Completions.ListCompleted(email)
	if err != nil {
		c.logger.Warn("could not load completions", "email", email, "err", err)
	}
	lessons, err := c.Lessons.ListLessons()
	if err != nil {
		c.logger.Warn("could not load lessons", "err", err)
	}

	lessonCount := map[string]int{}
	for _, l := range lessons {
		lessonCount[l.CourseID]++
	}
	completedCount := map[string]int{}
	for _, comp := range completed {
		completedCount[comp.CourseID]++
	}
	enrollmentFor := map[string]*Enrollment{}
	for _, e := range enrollments {
		enrollmentFor[e.CourseID] = e
	}

	out := make([]*CourseProgress, 0, len(courses))
	for _, course := range courses {
		cp := &CourseProgress{
			Course:         *course,
			LessonCount:    lessonCount[course.ID],
			CompletedCount: completedCount[course.ID],
		}
		if e, ok := enrollmentFor[course.ID]; ok {
			cp.Progress = e.Progress
		} else if cp.LessonCount > 0 {
			cp.Progress = int(math.Round(float64(cp.CompletedCount) / float64(cp.LessonCount) * 100))
		}
		out = append(out, cp)
	}
	return out, nil
}

// Course returns one course by ID.
func (c *Catalog) Course(id string) (*Course, error) {
	return c.Courses.GetCourse(id)
}

// LessonList returns a course's lessons in playback order.
func (c *Catalog) LessonList(courseID string) ([]*Lesson, error) {
	return c.Lessons.LessonsForCourse(courseID)
}

// LessonsWithStatus returns a course's lessons in playback order,
// each flagged with the user's completion. A failed completion lookup
// renders everything as incomplete rather than failing the screen.
func (c *Catalog) LessonsWithStatus(courseID, email string) ([]*LessonStatus, error) {
	lessons, err := c.Lessons.LessonsForCourse(courseID)
	if err != nil {
		return nil, err
	}

	done := map[string]bool{}
	comps, err := c.Completions.CompletedForCourse(email, courseID)
	if err != nil {
		c.logger.Warn("could not load completions", "course", courseID, "err", err)
	}
	for _, comp := range comps {
		done[comp.LessonID] = true
	}

	out := make([]*LessonStatus, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, &LessonStatus{Lesson: *l, Completed: done[l.ID]})
	}
	return out, nil
}

// MaterialsForLesson returns a lesson's supplementary files in order.
func (c *Catalog) MaterialsForLesson(lessonID string) ([]*LessonMaterial, error) {
	return c.Materials.MaterialsForLesson(lessonID)
}

// RequestAccess records an enrollment for the user. Requesting a
// course the user already has is a no-op, not an error.
func (c *Catalog) RequestAccess(email, courseID string) error {
	if _, err := c.Enrollments.GetEnrollment(email, courseID); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	id, err := device.NewUserID()
	if err != nil {
		return err
	}
	return c.Enrollments.CreateEnrollment(&Enrollment{
		ID:         id,
		Email:      email,
		CourseID:   courseID,
		Progress:   0,
		EnrolledAt: time.Now(),
	})
}

// HasAccess reports whether the user holds an enrollment for the
// course. Lookup errors read as "no access".
func (c *Catalog) HasAccess(email, courseID string) bool {
	_, err := c.Enrollments.GetEnrollment(email, courseID)
	return err == nil
}

// MarkCompleted upserts a completed row for the lesson.
func (c *Catalog) MarkCompleted(email, courseID, lessonID string) error {
	now := time.Now()

	comp, err := c.Completions.GetCompletion(email, courseID, lessonID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		id, err := device.NewUserID()
		if err != nil {
			return err
		}
		comp = &LessonCompletion{
			ID:       id,
			Email:    email,
			CourseID: courseID,
			LessonID: lessonID,
		}
	}

	comp.Completed = true
	comp.CompletedAt = &now
	return c.Completions.SaveCompletion(comp)
}

// UnmarkCompleted clears the completed flag. Unmarking a lesson that
// was never marked is a no-op.
func (c *Catalog) UnmarkCompleted(email, courseID, lessonID string) error {
	comp, err := c.Completions.GetCompletion(email, courseID, lessonID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	comp.Completed = false
	comp.CompletedAt = nil
	return c.Completions.SaveCompletion(comp)
}
