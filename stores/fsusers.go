package stores

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	aulakit "github.com/aulakit/aulakit"
)

// FSUserStore stores user accounts as JSON files named by user ID.
// Email lookups scan the directory; fine for the sizes this store is
// meant for (tests, demos, offline dev).
type FSUserStore struct {
	StoragePath string
}

func NewFSUserStore(storagePath string) *FSUserStore {
	return &FSUserStore{StoragePath: storagePath}
}

func (s *FSUserStore) getUserPath(userId string) string {
	return filepath.Join(s.StoragePath, "users", userId+".json")
}

func (s *FSUserStore) CreateUser(u *aulakit.AuthUser) error {
	if _, err := s.GetUserByEmail(u.Email); err == nil {
		return fmt.Errorf("email already registered: %s", u.Email)
	} else if !errors.Is(err, aulakit.ErrNotFound) {
		return err
	}
	return s.SaveUser(u)
}

func (s *FSUserStore) GetUserByEmail(email string) (*aulakit.AuthUser, error) {
	var found *aulakit.AuthUser
	err := eachJSON(filepath.Join(s.StoragePath, "users"), func(path string) error {
		var u aulakit.AuthUser
		if err := loadJSON(path, &u); err != nil {
			return err
		}
		if u.Email == email {
			found = &u
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("user %s: %w", email, aulakit.ErrNotFound)
	}
	return found, nil
}

func (s *FSUserStore) GetUserByID(id string) (*aulakit.AuthUser, error) {
	var u aulakit.AuthUser
	if err := loadJSON(s.getUserPath(id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *FSUserStore) SaveUser(u *aulakit.AuthUser) error {
	u.UpdatedAt = time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = u.UpdatedAt
	}
	return saveJSON(s.getUserPath(u.ID), u)
}
