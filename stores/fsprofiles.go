package stores

import (
	"path/filepath"
	"time"

	aulakit "github.com/aulakit/aulakit"
)

// FSProfileStore stores per-user profiles (currently just the admin
// flag) as JSON files named by user ID.
type FSProfileStore struct {
	StoragePath string
}

func NewFSProfileStore(storagePath string) *FSProfileStore {
	return &FSProfileStore{StoragePath: storagePath}
}

func (s *FSProfileStore) getProfilePath(id string) string {
	return filepath.Join(s.StoragePath, "profiles", id+".json")
}

func (s *FSProfileStore) GetProfile(userID string) (*aulakit.Profile, error) {
	var p aulakit.Profile
	if err := loadJSON(s.getProfilePath(userID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *FSProfileStore) SaveProfile(p *aulakit.Profile) error {
	p.UpdatedAt = time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}
	return saveJSON(s.getProfilePath(p.ID), p)
}
