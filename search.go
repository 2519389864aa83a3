package aulakit

import "strings"

// SearchResult groups the hits of one global search.
type SearchResult struct {
	Courses []*Course    `json:"courses"`
	Lessons []*LessonHit `json:"lessons"`
}

// Search implements the global search screen over course and lesson
// titles.
type Search struct {
	Courses CourseStore
	Lessons LessonStore
}

// Global matches the term case-insensitively against course titles
// (newest first) and lesson titles (playback order, with the parent
// course title attached). An empty or whitespace term yields an empty
// result without touching the backend.
func (s *Search) Global(term string) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return &SearchResult{Courses: []*Course{}, Lessons: []*LessonHit{}}, nil
	}

	courses, err := s.Courses.SearchCourses(term)
	if err != nil {
		return nil, err
	}
	lessons, err := s.Lessons.SearchLessons(term)
	if err != nil {
		return nil, err
	}

	return &SearchResult{Courses: courses, Lessons: lessons}, nil
}
