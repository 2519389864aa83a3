package aulakit

import (
	"log/slog"
	"strings"
	"time"

	"github.com/aulakit/aulakit/device"
)

// QuestionNotifier is told about new questions so someone can answer
// them. Replaces the hosted backend's serverless notification function.
type QuestionNotifier interface {
	NotifyNewQuestion(q *LessonQuestion) error
}

// QA serves the per-lesson question thread.
type QA struct {
	Questions QuestionStore

	// Notifier is optional; send failures are logged, never surfaced,
	// and never fail the question itself.
	Notifier QuestionNotifier

	logger *slog.Logger
}

func NewQA(questions QuestionStore, notifier QuestionNotifier) *QA {
	return &QA{Questions: questions, Notifier: notifier, logger: slog.Default()}
}

// ForLesson returns a lesson's questions, newest first.
func (s *QA) ForLesson(lessonID string) ([]*LessonQuestion, error) {
	return s.Questions.QuestionsForLesson(lessonID)
}

// Ask records a new question on a lesson.
func (s *QA) Ask(lessonID, userID, text string) (*LessonQuestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewAuthError(ErrCodeMissingField, "question text is required", "question")
	}

	id, err := device.NewUserID()
	if err != nil {
		return nil, err
	}

	q := &LessonQuestion{
		ID:        id,
		LessonID:  lessonID,
		UserID:    userID,
		Question:  text,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Questions.CreateQuestion(q); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyNewQuestion(q); err != nil {
			s.logger.Warn("question notification failed", "question", q.ID, "err", err)
		}
	}
	return q, nil
}

// Answer records the admin answer on a question.
func (s *QA) Answer(questionID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return NewAuthError(ErrCodeMissingField, "answer text is required", "answer")
	}
	return s.Questions.AnswerQuestion(questionID, text)
}
