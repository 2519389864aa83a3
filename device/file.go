package device

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage keeps all values in a single JSON file, loaded at
// construction and rewritten on every mutation. Suits the one-profile,
// low-traffic access pattern of session markers and flags.
type FileStorage struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// storageFile is the JSON structure stored on disk.
type storageFile struct {
	Values map[string]string `json:"values"`
}

// NewFileStorage creates a file-backed storage. If path is empty it
// defaults to ~/.config/<appName>/device.json (or the platform
// equivalent of the user config dir).
func NewFileStorage(path string, appName string) (*FileStorage, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("could not determine config directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
		if appName == "" {
			appName = "aulakit"
		}
		path = filepath.Join(configDir, appName, "device.json")
	}

	s := &FileStorage{
		path:   path,
		values: make(map[string]string),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

func (s *FileStorage) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file storageFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse device storage file: %w", err)
	}

	s.values = file.Values
	if s.values == nil {
		s.values = make(map[string]string)
	}

	return nil
}

// save persists to disk with restricted permissions. Caller holds the
// write lock.
func (s *FileStorage) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(storageFile{Values: s.values}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize device storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write device storage: %w", err)
	}

	return nil
}

func (s *FileStorage) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoValue, key)
	}
	return v, nil
}

func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.values[key]; ok && old == value {
		return nil
	}
	s.values[key] = value
	return s.save()
}

func (s *FileStorage) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

// Path returns the path of the backing file.
func (s *FileStorage) Path() string {
	return s.path
}
