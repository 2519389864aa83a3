package stores

import (
	"fmt"
	"path/filepath"

	aulakit "github.com/aulakit/aulakit"
)

// FSCompletionStore stores lesson completions as JSON files named by
// row ID, scanned by (email, course, lesson).
type FSCompletionStore struct {
	StoragePath string
}

func NewFSCompletionStore(storagePath string) *FSCompletionStore {
	return &FSCompletionStore{StoragePath: storagePath}
}

func (s *FSCompletionStore) getCompletionPath(id string) string {
	return filepath.Join(s.StoragePath, "completions", id+".json")
}

func (s *FSCompletionStore) scan(keep func(c *aulakit.LessonCompletion) bool) ([]*aulakit.LessonCompletion, error) {
	rows := []*aulakit.LessonCompletion{}
	err := eachJSON(filepath.Join(s.StoragePath, "completions"), func(path string) error {
		var c aulakit.LessonCompletion
		if err := loadJSON(path, &c); err != nil {
			return err
		}
		if keep(&c) {
			rows = append(rows, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *FSCompletionStore) ListCompleted(email string) ([]*aulakit.LessonCompletion, error) {
	return s.scan(func(c *aulakit.LessonCompletion) bool {
		return c.Email == email && c.Completed
	})
}

func (s *FSCompletionStore) CompletedForCourse(email, courseID string) ([]*aulakit.LessonCompletion, error) {
	return s.scan(func(c *aulakit.LessonCompletion) bool {
		return c.Email == email && c.CourseID == courseID && c.Completed
	})
}

func (s *FSCompletionStore) GetCompletion(email, courseID, lessonID string) (*aulakit.LessonCompletion, error) {
	rows, err := s.scan(func(c *aulakit.LessonCompletion) bool {
		return c.Email == email && c.CourseID == courseID && c.LessonID == lessonID
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("completion %s/%s/%s: %w", email, courseID, lessonID, aulakit.ErrNotFound)
	}
	return rows[0], nil
}

func (s *FSCompletionStore) SaveCompletion(c *aulakit.LessonCompletion) error {
	return saveJSON(s.getCompletionPath(c.ID), c)
}
