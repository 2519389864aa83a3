package stores

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	aulakit "github.com/aulakit/aulakit"
)

// FSCourseStore stores courses as JSON files named by course ID.
type FSCourseStore struct {
	StoragePath string
}

func NewFSCourseStore(storagePath string) *FSCourseStore {
	return &FSCourseStore{StoragePath: storagePath}
}

func (s *FSCourseStore) getCoursePath(id string) string {
	return filepath.Join(s.StoragePath, "courses", id+".json")
}

func (s *FSCourseStore) ListCourses() ([]*aulakit.Course, error) {
	var courses []*aulakit.Course
	err := eachJSON(filepath.Join(s.StoragePath, "courses"), func(path string) error {
		var c aulakit.Course
		if err := loadJSON(path, &c); err != nil {
			return err
		}
		courses = append(courses, &c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
	return courses, nil
}

func (s *FSCourseStore) GetCourse(id string) (*aulakit.Course, error) {
	var c aulakit.Course
	if err := loadJSON(s.getCoursePath(id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *FSCourseStore) CreateCourse(c *aulakit.Course) error {
	return saveJSON(s.getCoursePath(c.ID), c)
}

func (s *FSCourseStore) UpdateCourse(id string, upd aulakit.CourseUpdate) (*aulakit.Course, error) {
	c, err := s.GetCourse(id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = upd.Description
	}
	if upd.ImageURL != nil {
		c.ImageURL = upd.ImageURL
	}
	c.UpdatedAt = time.Now()
	if err := saveJSON(s.getCoursePath(id), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *FSCourseStore) DeleteCourse(id string) error {
	err := os.Remove(s.getCoursePath(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FSCourseStore) SearchCourses(term string) ([]*aulakit.Course, error) {
	all, err := s.ListCourses()
	if err != nil {
		return nil, err
	}
	matched := []*aulakit.Course{}
	for _, c := range all {
		if containsFold(c.Title, term) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
