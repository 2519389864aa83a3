package stores

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	aulakit "github.com/aulakit/aulakit"
)

// FSLessonStore stores lessons as JSON files named by lesson ID.
// Search joins in the parent course title via the course store.
type FSLessonStore struct {
	StoragePath string
	Courses     *FSCourseStore
}

func NewFSLessonStore(storagePath string, courses *FSCourseStore) *FSLessonStore {
	return &FSLessonStore{StoragePath: storagePath, Courses: courses}
}

func (s *FSLessonStore) getLessonPath(id string) string {
	return filepath.Join(s.StoragePath, "lessons", id+".json")
}

func (s *FSLessonStore) ListLessons() ([]*aulakit.Lesson, error) {
	var lessons []*aulakit.Lesson
	err := eachJSON(filepath.Join(s.StoragePath, "lessons"), func(path string) error {
		var l aulakit.Lesson
		if err := loadJSON(path, &l); err != nil {
			return err
		}
		lessons = append(lessons, &l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

func (s *FSLessonStore) LessonsForCourse(courseID string) ([]*aulakit.Lesson, error) {
	all, err := s.ListLessons()
	if err != nil {
		return nil, err
	}
	lessons := []*aulakit.Lesson{}
	for _, l := range all {
		if l.CourseID == courseID {
			lessons = append(lessons, l)
		}
	}
	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].OrderIndex < lessons[j].OrderIndex
	})
	return lessons, nil
}

func (s *FSLessonStore) GetLesson(id string) (*aulakit.Lesson, error) {
	var l aulakit.Lesson
	if err := loadJSON(s.getLessonPath(id), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *FSLessonStore) CreateLesson(l *aulakit.Lesson) error {
	return saveJSON(s.getLessonPath(l.ID), l)
}

func (s *FSLessonStore) UpdateLesson(id string, upd aulakit.LessonUpdate) (*aulakit.Lesson, error) {
	l, err := s.GetLesson(id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		l.Title = *upd.Title
	}
	if upd.ContentURL != nil {
		l.ContentURL = *upd.ContentURL
	}
	if upd.ContentType != nil {
		l.ContentType = *upd.ContentType
	}
	if upd.OrderIndex != nil {
		l.OrderIndex = *upd.OrderIndex
	}
	l.UpdatedAt = time.Now()
	if err := saveJSON(s.getLessonPath(id), l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *FSLessonStore) DeleteLesson(id string) error {
	err := os.Remove(s.getLessonPath(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FSLessonStore) SearchLessons(term string) ([]*aulakit.LessonHit, error) {
	all, err := s.ListLessons()
	if err != nil {
		return nil, err
	}
	hits := []*aulakit.LessonHit{}
	for _, l := range all {
		if !containsFold(l.Title, term) {
			continue
		}
		hit := &aulakit.LessonHit{Lesson: *l}
		course, err := s.Courses.GetCourse(l.CourseID)
		if err == nil {
			hit.CourseTitle = course.Title
		} else if !errors.Is(err, aulakit.ErrNotFound) {
			return nil, err
		}
		hits = append(hits, hit)
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].OrderIndex < hits[j].OrderIndex
	})
	return hits, nil
}
