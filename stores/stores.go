// Package stores provides filesystem-backed implementations of the
// aulakit store interfaces: one JSON file per row, written atomically.
// Intended for tests, demos and offline development; the gorm
// subpackage covers the hosted backend.
package stores

// FS bundles the filesystem stores rooted at one directory.
type FS struct {
	Users         *FSUserStore
	Courses       *FSCourseStore
	Lessons       *FSLessonStore
	Enrollments   *FSEnrollmentStore
	Completions   *FSCompletionStore
	Subscriptions *FSSubscriptionStore
	Questions     *FSQuestionStore
	Materials     *FSMaterialStore
	Profiles      *FSProfileStore
}

func NewFS(root string) *FS {
	users := NewFSUserStore(root)
	courses := NewFSCourseStore(root)
	return &FS{
		Users:         users,
		Courses:       courses,
		Lessons:       NewFSLessonStore(root, courses),
		Enrollments:   NewFSEnrollmentStore(root),
		Completions:   NewFSCompletionStore(root),
		Subscriptions: NewFSSubscriptionStore(root, users, courses),
		Questions:     NewFSQuestionStore(root),
		Materials:     NewFSMaterialStore(root),
		Profiles:      NewFSProfileStore(root),
	}
}
