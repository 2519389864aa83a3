//go:build !wasm
// +build !wasm

package gorm

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	aulakit "github.com/aulakit/aulakit"
)

// AutoMigrate runs database migrations for all aulakit tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CourseModel{},
		&LessonModel{},
		&EnrollmentModel{},
		&CompletionModel{},
		&SubscriptionModel{},
		&QuestionModel{},
		&MaterialModel{},
		&ProfileModel{},
	)
}

// =============================================================================
// UserStore
// =============================================================================

// UserStore implements aulakit.UserStore using GORM
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(u *aulakit.AuthUser) error {
	return s.db.Create(UserToModel(u)).Error
}

func (s *UserStore) GetUserByEmail(email string) (*aulakit.AuthUser, error) {
	var model UserModel
	if err := s.db.First(&model, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user %s: %w", email, aulakit.ErrNotFound)
		}
		return nil, err
	}
	return model.ToUser(), nil
}

func (s *UserStore) GetUserByID(id string) (*aulakit.AuthUser, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user %s: %w", id, aulakit.ErrNotFound)
		}
		return nil, err
	}
	return model.ToUser(), nil
}

func (s *UserStore) SaveUser(u *aulakit.AuthUser) error {
	return s.db.Save(UserToModel(u)).Error
}

// =============================================================================
// CourseStore
// =============================================================================

// CourseStore implements aulakit.CourseStore using GORM
type CourseStore struct {
	db *gorm.DB
}

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{db: db}
}

func (s *CourseStore) ListCourses() ([]*aulakit.Course, error) {
	var models []CourseModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	courses := make([]*aulakit.Course, len(models))
	for i := range models {
		courses[i] = models[i].ToCourse()
	}
	return courses, nil
}

func (s *CourseStore) GetCourse(id string) (*aulakit.Course, error) {
	var model CourseModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("course %s: %w", id, aulakit.ErrNotFound)
		}
		return nil, err
	}
	return model.ToCourse(), nil
}

func (s *CourseStore) CreateCourse(c *aulakit.Course) error {
	return s.db.Create(CourseToModel(c)).Error
}

func (s *CourseStore) UpdateCourse(id string, upd aulakit.CourseUpdate) (*aulakit.Course, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.ImageURL != nil {
		updates["image_url"] = *upd.ImageURL
	}
	if err := s.db.Model(&CourseModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetCourse(id)
}

func (s *CourseStore) DeleteCourse(id string) error {
	return s.db.Delete(&CourseModel{}, "id = ?", id).Error
}

func (s *CourseStore) SearchCourses(term string) ([]*aulakit.Course, error) {
	var models []CourseModel
	if err := s.db.Where("title ILIKE ?", "%"+term+"%").
		Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	courses := make([]*aulakit.Course, len(models))
	for i := range models {
		courses[i] = models[i].ToCourse()
	}
	return courses, nil
}

// =============================================================================
// LessonStore
// =============================================================================

// LessonStore implements aulakit.LessonStore using GORM
type LessonStore struct {
	db *gorm.DB
}

func NewLessonStore(db *gorm.DB) *LessonStore {
	return &LessonStore{db: db}
}

func (s *LessonStore) LessonsForCourse(courseID string) ([]*aulakit.Lesson, error) {
	var models []LessonModel
	if err := s.db.Where("course_id = ?", courseID).
		Order("order_index ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	lessons := make([]*aulakit.Lesson, len(models))
	for i := range models {
		lessons[i] = models[i].ToLesson()
	}
	return lessons, nil
}

func (s *LessonStore) ListLessons() ([]*aulakit.Lesson, error) {
	var models []LessonModel
	if err := s.db.Find(&models).Error; err != nil {
		return nil, err
	}
	lessons := make([]*aulakit.Lesson, len(models))
	for i := range models {
		lessons[i] = models[i].ToLesson()
	}
	return lessons, nil
}

func (s *LessonStore) GetLesson(id string) (*aulakit.Lesson, error) {
	var model LessonModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("lesson %s: %w", id, aulakit.ErrNotFound)
		}
		return nil, err
	}
	return model.ToLesson(), nil
}

func (s *LessonStore) CreateLesson(l *aulakit.Lesson) error {
	return s.db.Create(LessonToModel(l)).Error
}

func (s *LessonStore) UpdateLesson(id string, upd aulakit.LessonUpdate) (*aulakit.Lesson, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.ContentURL != nil {
		updates["content_url"] = *upd.ContentURL
	}
	if upd.ContentType != nil {
		updates["content_type"] = string(*upd.ContentType)
	}
	if upd.OrderIndex != nil {
		updates["order_index"] = *upd.OrderIndex
	}
	if err := s.db.Model(&LessonModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetLesson(id)
}

func (s *LessonStore) DeleteLesson(id string) error {
	return s.db.Delete(&LessonModel{}, "id = ?", id).Error
}

func (s *LessonStore) SearchLessons(term string) ([]*aulakit.LessonHit, error) {
	type row struct {
		LessonModel
		CourseTitle string
	}
	var rows []row
	err := s.db.Model(&LessonModel{}).
		Select("lessons.*, courses.title AS course_title").
		Joins("LEFT JOIN courses ON courses.id = lessons.course_id").
		Where("lessons.title ILIKE ?", "%"+term+"%").
		Order("lessons.order_index ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	hits := make([]*aulakit.LessonHit, len(rows))
	for i := range rows {
		hits[i] = &aulakit.LessonHit{
			Lesson:      *rows[i].ToLesson(),
			CourseTitle: rows[i].CourseTitle,
		}
	}
	return hits, nil
}

// =============================================================================
// EnrollmentStore
// =============================================================================

// EnrollmentStore implements aulakit.EnrollmentStore using GORM
type EnrollmentStore struct {
	db *gorm.DB
}

func NewEnrollmentStore(db *gorm.DB) *EnrollmentStore {
	return &EnrollmentStore{db: db}
}

func (s *EnrollmentStore) GetEnrollment(email, courseID string) (*aulakit.Enrollment, error) {
	var model EnrollmentModel
	err := s.db.First(&model, "email = ? AND course_id = ?", email, courseID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("enrollment %s/%s: %w", email, courseID, aulakit.ErrNotFound)
		}
		return nil, err
	}
	return model.ToEnrollment(), nil
}

func (s *EnrollmentStore) CreateEnrollment(e *aulakit.Enrollment) error {
	return s.db.Create(EnrollmentToModel(e)).Error
}

func (s *EnrollmentStore) ListEnrollments(email string) ([]*aulakit.Enrollment, error) {
	var models []EnrollmentModel
	if err := s.db.Where("email = ?", email).Find(&models).Error; err != nil {
		return nil, err
	}
	enrollments := make([]*aulakit.Enrollment, len(models))
	for i := range models {
		enrollments[i] = models[i].ToEnrollment()
	}
	return enrollments, nil
}

// =============================================================================
// CompletionStore
// =============================================================================

// CompletionStore implements aulakit.CompletionStore using GORM
type CompletionStore struct {
	db *gorm.DB
}

func NewCompletionStore(db *gorm.DB) *CompletionStore {
	return &CompletionStore{db: db}
}

func (s *CompletionStore) ListCompleted(email string) ([]*aulakit.LessonCompletion, error) {
	return s.find("email = ? AND completed = ?", email, true)
}

func (s *CompletionStore) CompletedForCourse(email, courseID string) ([]*aulakit.LessonCompletion, error) {
	return s.find("email = ? AND course_id = ? AND completed = ?", email, courseID, true)
}

func (s *CompletionStore) find(query string, args ...any) ([]*aulakit.LessonCompletion, error) {
	var models []CompletionModel
	if err := s.db.Where(query, args...).Find(&models).Error; err != nil {
		return nil, err
	}
	completions := make([]*aulakit.LessonCompletion, len(models))
	for i := range models {
		completions[i] = models[i].ToCompletion()
	}
	return completions, nil
}

func (s *CompletionStore) GetCompletion(email, courseID, lessonID string) (*aulakit.LessonCompletion, error) {
	var model CompletionModel
	err := s.db.First(&model,
		"email = ? AND course_id = ? AND lesson_id = ?", email, courseID, lessonID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("completion %s/%s/%s: %w",
				email, courseID, lessonID, aulakit.ErrNotFound)
		}
		return nil, err
	}
	return model.ToCompletion(), nil
}

func (s *CompletionStore) SaveCompletion(c *aulakit.LessonCompletion) error {
	return s.db.Save(CompletionToModel(c)).Error
}

// =============================================================================
// SubscriptionStore
// =============================================================================

// SubscriptionStore implements aulakit.SubscriptionStore using GORM
type SubscriptionStore struct {
	db *gorm.DB
}

func NewSubscriptionStore(db *gorm.DB) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

func (s *SubscriptionStore) PendingSubscriptions() ([]*aulakit.PendingSubscription, error) {
	type row struct {
		SubscriptionModel
		CourseTitle string
		UserEmail   string
	}
	var rows []row
	err := s.db.Model(&SubscriptionModel{}).
		Select("course_subscriptions.*, courses.title AS course_title, users.email AS user_email").
		Joins("LEFT JOIN courses ON courses.id = course_subscriptions.course_id").
		Joins("LEFT JOIN users ON users.id = course_subscriptions.user_id").
		Where("course_subscriptions.access_granted = ?", false).
		Order("course_subscriptions.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	pending := make([]*aulakit.PendingSubscription, len(rows))
	for i := range rows {
		pending[i] = &aulakit.PendingSubscription{
			CourseSubscription: *rows[i].ToSubscription(),
			CourseTitle:        rows[i].CourseTitle,
			UserEmail:          rows[i].UserEmail,
		}
	}
	return pending, nil
}

func (s *SubscriptionStore) GetSubscription(id string) (*aulakit.CourseSubscription, error) {
	var model SubscriptionModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("subscription %s: %w", id, aulakit.ErrNotFound)
		}
		return nil, err
	}
	return model.ToSubscription(), nil
}

func (s *SubscriptionStore) SaveSubscription(sub *aulakit.CourseSubscription) error {
	return s.db.Save(SubscriptionToModel(sub)).Error
}

func (s *SubscriptionStore) DeleteSubscription(id string) error {
	return s.db.Delete(&SubscriptionModel{}, "id = ?", id).Error
}

// =============================================================================
// QuestionStore
// =============================================================================

// QuestionStore implements aulakit.QuestionStore using GORM
type QuestionStore struct {
	db *gorm.DB
}

func NewQuestionStore(db *gorm.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

func (s *QuestionStore) QuestionsForLesson(lessonID string) ([]*aulakit.LessonQuestion, error) {
	var models []QuestionModel
	if err := s.db.Where("lesson_id = ?", lessonID).
		Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	questions := make([]*aulakit.LessonQuestion, len(models))
	for i := range models {
		questions[i] = models[i].ToQuestion()
	}
	return questions, nil
}

func (s *QuestionStore) CreateQuestion(q *aulakit.LessonQuestion) error {
	return s.db.Create(QuestionToModel(q)).Error
}

func (s *QuestionStore) AnswerQuestion(id, answer string) error {
	return s.db.Model(&QuestionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"admin_answer": answer, "updated_at": time.Now()}).Error
}

// =============================================================================
// MaterialStore
// =============================================================================

// MaterialStore implements aulakit.MaterialStore using GORM
type MaterialStore struct {
	db *gorm.DB
}

func NewMaterialStore(db *gorm.DB) *MaterialStore {
	return &MaterialStore{db: db}
}

func (s *MaterialStore) MaterialsForLesson(lessonID string) ([]*aulakit.LessonMaterial, error) {
	var models []MaterialModel
	if err := s.db.Where("lesson_id = ?", lessonID).
		Order("order_index ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	materials := make([]*aulakit.LessonMaterial, len(models))
	for i := range models {
		materials[i] = models[i].ToMaterial()
	}
	return materials, nil
}

func (s *MaterialStore) SaveMaterial(m *aulakit.LessonMaterial) error {
	return s.db.Save(MaterialToModel(m)).Error
}

func (s *MaterialStore) DeleteMaterial(id string) error {
	return s.db.Delete(&MaterialModel{}, "id = ?", id).Error
}

// =============================================================================
// ProfileStore
// =============================================================================

// ProfileStore implements aulakit.ProfileStore using GORM
type ProfileStore struct {
	db *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) GetProfile(userID string) (*aulakit.Profile, error) {
	var model ProfileModel
	if err := s.db.First(&model, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("profile %s: %w", userID, aulakit.ErrNotFound)
		}
		return nil, err
	}
	return model.ToProfile(), nil
}

func (s *ProfileStore) SaveProfile(p *aulakit.Profile) error {
	return s.db.Save(ProfileToModel(p)).Error
}
