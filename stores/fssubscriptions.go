package stores

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	aulakit "github.com/aulakit/aulakit"
)

// FSSubscriptionStore stores access requests as JSON files named by
// row ID. The pending listing joins user and course display data via
// the sibling stores.
type FSSubscriptionStore struct {
	StoragePath string
	Users       *FSUserStore
	Courses     *FSCourseStore
}

func NewFSSubscriptionStore(storagePath string, users *FSUserStore, courses *FSCourseStore) *FSSubscriptionStore {
	return &FSSubscriptionStore{StoragePath: storagePath, Users: users, Courses: courses}
}

func (s *FSSubscriptionStore) getSubscriptionPath(id string) string {
	return filepath.Join(s.StoragePath, "subscriptions", id+".json")
}

func (s *FSSubscriptionStore) PendingSubscriptions() ([]*aulakit.PendingSubscription, error) {
	pending := []*aulakit.PendingSubscription{}
	err := eachJSON(filepath.Join(s.StoragePath, "subscriptions"), func(path string) error {
		var sub aulakit.CourseSubscription
		if err := loadJSON(path, &sub); err != nil {
			return err
		}
		if sub.AccessGranted {
			return nil
		}
		row := &aulakit.PendingSubscription{CourseSubscription: sub}
		if user, err := s.Users.GetUserByID(sub.UserID); err == nil {
			row.UserEmail = user.Email
		} else if !errors.Is(err, aulakit.ErrNotFound) {
			return err
		}
		if course, err := s.Courses.GetCourse(sub.CourseID); err == nil {
			row.CourseTitle = course.Title
		} else if !errors.Is(err, aulakit.ErrNotFound) {
			return err
		}
		pending = append(pending, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	return pending, nil
}

func (s *FSSubscriptionStore) GetSubscription(id string) (*aulakit.CourseSubscription, error) {
	var sub aulakit.CourseSubscription
	if err := loadJSON(s.getSubscriptionPath(id), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *FSSubscriptionStore) SaveSubscription(sub *aulakit.CourseSubscription) error {
	return saveJSON(s.getSubscriptionPath(sub.ID), sub)
}

func (s *FSSubscriptionStore) DeleteSubscription(id string) error {
	err := os.Remove(s.getSubscriptionPath(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
