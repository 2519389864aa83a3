package aulakit_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	aulakit "github.com/aulakit/aulakit"
	"github.com/aulakit/aulakit/device"
	"github.com/aulakit/aulakit/stores"
)

func setupAdmin(t *testing.T) (*aulakit.Admin, *stores.FS, string) {
	t.Helper()
	root := t.TempDir()
	fs := stores.NewFS(root)
	admin := &aulakit.Admin{
		Profiles:      fs.Profiles,
		Subscriptions: fs.Subscriptions,
		Courses:       fs.Courses,
		Lessons:       fs.Lessons,
		Materials:     fs.Materials,
		Files:         stores.NewFSFileStore(filepath.Join(root, "uploads"), "http://localhost:8080/uploads"),
	}
	return admin, fs, root
}

func TestIsAdmin(t *testing.T) {
	admin, fs, _ := setupAdmin(t)

	// Missing profile reads as not admin
	if admin.IsAdmin("nobody") {
		t.Error("Expected false for missing profile")
	}

	if err := fs.Profiles.SaveProfile(&aulakit.Profile{ID: "u1", IsAdmin: true}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if err := fs.Profiles.SaveProfile(&aulakit.Profile{ID: "u2", IsAdmin: false}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	if !admin.IsAdmin("u1") {
		t.Error("Expected true for admin profile")
	}
	if admin.IsAdmin("u2") {
		t.Error("Expected false for regular profile")
	}
}

func TestApprovalWorkflow(t *testing.T) {
	admin, fs, _ := setupAdmin(t)

	// A user and course give the pending listing its display data
	userID, _ := device.NewUserID()
	if err := fs.Users.SaveUser(&aulakit.AuthUser{
		ID: userID, Email: "student@example.com", Name: "Student", IsActive: true,
	}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	course := mustCreateCourse(t, fs, "Drawing", time.Now())

	subID, _ := device.NewUserID()
	sub := &aulakit.CourseSubscription{
		ID:        subID,
		UserID:    userID,
		CourseID:  course.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := fs.Subscriptions.SaveSubscription(sub); err != nil {
		t.Fatalf("SaveSubscription failed: %v", err)
	}

	pending, err := admin.PendingSubscriptions()
	if err != nil {
		t.Fatalf("PendingSubscriptions failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending request, got %d", len(pending))
	}
	if pending[0].UserEmail != "student@example.com" || pending[0].CourseTitle != "Drawing" {
		t.Errorf("Expected joined display data, got %+v", pending[0])
	}

	if err := admin.Grant(subID); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	pending, _ = admin.PendingSubscriptions()
	if len(pending) != 0 {
		t.Errorf("Expected no pending requests after grant, got %d", len(pending))
	}
	granted, err := fs.Subscriptions.GetSubscription(subID)
	if err != nil {
		t.Fatalf("GetSubscription failed: %v", err)
	}
	if !granted.AccessGranted {
		t.Error("Expected the request to be marked granted")
	}
}

func TestRejectDeletesRequest(t *testing.T) {
	admin, fs, _ := setupAdmin(t)

	subID, _ := device.NewUserID()
	sub := &aulakit.CourseSubscription{ID: subID, UserID: "u1", CourseID: "c1", CreatedAt: time.Now()}
	if err := fs.Subscriptions.SaveSubscription(sub); err != nil {
		t.Fatalf("SaveSubscription failed: %v", err)
	}

	if err := admin.Reject(subID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if _, err := fs.Subscriptions.GetSubscription(subID); err == nil {
		t.Error("Expected the request to be deleted")
	}
	// A second reject is a no-op
	if err := admin.Reject(subID); err != nil {
		t.Errorf("Expected idempotent reject, got %v", err)
	}
}

func TestCourseCRUD(t *testing.T) {
	admin, _, _ := setupAdmin(t)

	// Title is required
	if _, err := admin.CreateCourse("  ", nil, nil); aulakit.ErrorCode(err) != aulakit.ErrCodeMissingField {
		t.Errorf("Expected missing_field, got %v", err)
	}

	desc := "Learn to draw"
	course, err := admin.CreateCourse("Drawing", &desc, nil)
	if err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}
	if course.ID == "" || course.Title != "Drawing" {
		t.Errorf("Unexpected course: %+v", course)
	}

	newTitle := "Figure Drawing"
	updated, err := admin.UpdateCourse(course.ID, aulakit.CourseUpdate{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateCourse failed: %v", err)
	}
	if updated.Title != "Figure Drawing" {
		t.Errorf("Expected updated title, got %q", updated.Title)
	}
	// Untouched fields survive a partial update
	if updated.Description == nil || *updated.Description != "Learn to draw" {
		t.Errorf("Expected description to survive, got %v", updated.Description)
	}

	all, err := admin.AllCourses()
	if err != nil {
		t.Fatalf("AllCourses failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 course, got %d", len(all))
	}

	if err := admin.DeleteCourse(course.ID); err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}
	all, _ = admin.AllCourses()
	if len(all) != 0 {
		t.Errorf("Expected empty catalog after delete, got %d", len(all))
	}
}

func TestLessonCRUD(t *testing.T) {
	admin, _, _ := setupAdmin(t)

	course, err := admin.CreateCourse("Piano", nil, nil)
	if err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	if _, err := admin.CreateLesson(course.ID, "", "", aulakit.ContentVideo, 0); aulakit.ErrorCode(err) != aulakit.ErrCodeMissingField {
		t.Errorf("Expected missing_field, got %v", err)
	}

	lesson, err := admin.CreateLesson(course.ID, "Posture", "https://cdn/v1.mp4", aulakit.ContentVideo, 0)
	if err != nil {
		t.Fatalf("CreateLesson failed: %v", err)
	}

	newType := aulakit.ContentPDF
	newURL := "https://cdn/notes.pdf"
	updated, err := admin.UpdateLesson(lesson.ID, aulakit.LessonUpdate{
		ContentType: &newType,
		ContentURL:  &newURL,
	})
	if err != nil {
		t.Fatalf("UpdateLesson failed: %v", err)
	}
	if updated.ContentType != aulakit.ContentPDF || updated.ContentURL != newURL {
		t.Errorf("Unexpected lesson after update: %+v", updated)
	}
	if updated.Title != "Posture" {
		t.Errorf("Expected title to survive partial update, got %q", updated.Title)
	}

	lessons, err := admin.LessonsForCourse(course.ID)
	if err != nil {
		t.Fatalf("LessonsForCourse failed: %v", err)
	}
	if len(lessons) != 1 {
		t.Fatalf("Expected 1 lesson, got %d", len(lessons))
	}

	if err := admin.DeleteLesson(lesson.ID); err != nil {
		t.Fatalf("DeleteLesson failed: %v", err)
	}
	lessons, _ = admin.LessonsForCourse(course.ID)
	if len(lessons) != 0 {
		t.Errorf("Expected no lessons after delete, got %d", len(lessons))
	}
}

func TestUploadAndRemovePDF(t *testing.T) {
	admin, _, root := setupAdmin(t)

	url, err := admin.UploadPDF("course-1", "My Notes (final).pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("UploadPDF failed: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/course-1/") {
		t.Errorf("Unexpected URL: %s", url)
	}
	// Unsafe characters are sanitized out of the object name
	if strings.Contains(url, "(") || strings.Contains(url, " ") {
		t.Errorf("Expected sanitized object name, got %s", url)
	}

	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	onDisk := filepath.Join(root, "uploads", filepath.FromSlash(rel))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("Expected uploaded file on disk: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Errorf("Unexpected file content: %q", data)
	}

	if err := admin.RemovePDF(url); err != nil {
		t.Fatalf("RemovePDF failed: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Error("Expected the file to be removed")
	}
}

func TestMaterials(t *testing.T) {
	admin, fs, _ := setupAdmin(t)

	m2, err := admin.AddMaterial("lesson-1", "b.pdf", "http://x/b.pdf", "pdf", nil, 1)
	if err != nil {
		t.Fatalf("AddMaterial failed: %v", err)
	}
	m1, err := admin.AddMaterial("lesson-1", "a.pdf", "http://x/a.pdf", "pdf", nil, 0)
	if err != nil {
		t.Fatalf("AddMaterial failed: %v", err)
	}

	list, err := fs.Materials.MaterialsForLesson("lesson-1")
	if err != nil {
		t.Fatalf("MaterialsForLesson failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != m1.ID || list[1].ID != m2.ID {
		t.Error("Expected materials ordered by index")
	}

	if err := admin.RemoveMaterial(m1.ID); err != nil {
		t.Fatalf("RemoveMaterial failed: %v", err)
	}
	list, _ = fs.Materials.MaterialsForLesson("lesson-1")
	if len(list) != 1 {
		t.Errorf("Expected 1 material after removal, got %d", len(list))
	}
}
