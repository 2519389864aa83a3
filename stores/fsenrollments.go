package stores

import (
	"fmt"
	"path/filepath"

	aulakit "github.com/aulakit/aulakit"
)

// FSEnrollmentStore stores enrollments as JSON files named by row ID.
// The (email, course) key is resolved by scanning.
type FSEnrollmentStore struct {
	StoragePath string
}

func NewFSEnrollmentStore(storagePath string) *FSEnrollmentStore {
	return &FSEnrollmentStore{StoragePath: storagePath}
}

func (s *FSEnrollmentStore) getEnrollmentPath(id string) string {
	return filepath.Join(s.StoragePath, "enrollments", id+".json")
}

func (s *FSEnrollmentStore) GetEnrollment(email, courseID string) (*aulakit.Enrollment, error) {
	var found *aulakit.Enrollment
	err := eachJSON(filepath.Join(s.StoragePath, "enrollments"), func(path string) error {
		var e aulakit.Enrollment
		if err := loadJSON(path, &e); err != nil {
			return err
		}
		if e.Email == email && e.CourseID == courseID {
			found = &e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("enrollment %s/%s: %w", email, courseID, aulakit.ErrNotFound)
	}
	return found, nil
}

func (s *FSEnrollmentStore) CreateEnrollment(e *aulakit.Enrollment) error {
	return saveJSON(s.getEnrollmentPath(e.ID), e)
}

func (s *FSEnrollmentStore) ListEnrollments(email string) ([]*aulakit.Enrollment, error) {
	enrollments := []*aulakit.Enrollment{}
	err := eachJSON(filepath.Join(s.StoragePath, "enrollments"), func(path string) error {
		var e aulakit.Enrollment
		if err := loadJSON(path, &e); err != nil {
			return err
		}
		if e.Email == email {
			enrollments = append(enrollments, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}
