package aulakit

import (
	"fmt"
	"log"

	mail "github.com/go-mail/mail"
)

// ConsoleNotifier is a development QuestionNotifier that logs new
// questions to the console instead of mailing anyone.
type ConsoleNotifier struct{}

func (c *ConsoleNotifier) NotifyNewQuestion(q *LessonQuestion) error {
	log.Printf("\n=== NEW LESSON QUESTION ===")
	log.Printf("Lesson: %s", q.LessonID)
	log.Printf("From: %s", q.UserID)
	log.Printf("Question: %s", q.Question)
	log.Printf("===========================\n")
	return nil
}

// SMTPNotifier emails the teaching staff when a student posts a new
// question, so answers do not wait for someone to open the admin
// console.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string

	// From is the sender address; To receives the notifications.
	From string
	To   string

	// AppName appears in the subject line. Defaults to "AulaKit".
	AppName string
}

func (s *SMTPNotifier) NotifyNewQuestion(q *LessonQuestion) error {
	appName := s.AppName
	if appName == "" {
		appName = "AulaKit"
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("[%s] New lesson question", appName))
	m.SetBody("text/plain", fmt.Sprintf(
		"A student posted a new question.\n\nLesson: %s\nUser: %s\n\n%s\n",
		q.LessonID, q.UserID, q.Question))

	d := mail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send question notification: %w", err)
	}
	return nil
}
