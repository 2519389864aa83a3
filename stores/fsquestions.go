package stores

import (
	"path/filepath"
	"sort"
	"time"

	aulakit "github.com/aulakit/aulakit"
)

// FSQuestionStore stores lesson questions as JSON files named by row
// ID.
type FSQuestionStore struct {
	StoragePath string
}

func NewFSQuestionStore(storagePath string) *FSQuestionStore {
	return &FSQuestionStore{StoragePath: storagePath}
}

func (s *FSQuestionStore) getQuestionPath(id string) string {
	return filepath.Join(s.StoragePath, "questions", id+".json")
}

func (s *FSQuestionStore) QuestionsForLesson(lessonID string) ([]*aulakit.LessonQuestion, error) {
	questions := []*aulakit.LessonQuestion{}
	err := eachJSON(filepath.Join(s.StoragePath, "questions"), func(path string) error {
		var q aulakit.LessonQuestion
		if err := loadJSON(path, &q); err != nil {
			return err
		}
		if q.LessonID == lessonID {
			questions = append(questions, &q)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
	return questions, nil
}

func (s *FSQuestionStore) CreateQuestion(q *aulakit.LessonQuestion) error {
	return saveJSON(s.getQuestionPath(q.ID), q)
}

func (s *FSQuestionStore) AnswerQuestion(id, answer string) error {
	var q aulakit.LessonQuestion
	if err := loadJSON(s.getQuestionPath(id), &q); err != nil {
		return err
	}
	q.AdminAnswer = &answer
	q.UpdatedAt = time.Now()
	return saveJSON(s.getQuestionPath(id), &q)
}
