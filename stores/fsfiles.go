package stores

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FSFileStore keeps uploaded lesson content on local disk and serves
// public URLs under BaseURL. Object paths are
// courseID/<timestamp>_<sanitized-name>, mirroring the bucket layout
// the hosted backend uses.
type FSFileStore struct {
	BaseDir string
	BaseURL string
}

func NewFSFileStore(baseDir, baseURL string) *FSFileStore {
	return &FSFileStore{BaseDir: baseDir, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *FSFileStore) Upload(courseID, fileName, contentType string, r io.Reader) (string, error) {
	objectPath := fmt.Sprintf("%s/%d_%s", courseID, time.Now().UnixMilli(), sanitizeFileName(fileName))
	fullPath := filepath.Join(s.BaseDir, filepath.FromSlash(objectPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return "", err
	}
	return s.BaseURL + "/" + objectPath, nil
}

func (s *FSFileStore) Remove(publicURL string) error {
	objectPath := strings.TrimPrefix(publicURL, s.BaseURL+"/")
	if objectPath == publicURL || strings.Contains(objectPath, "..") {
		return fmt.Errorf("not a managed file URL: %s", publicURL)
	}
	err := os.Remove(filepath.Join(s.BaseDir, filepath.FromSlash(objectPath)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// sanitizeFileName keeps letters, digits, dots, underscores and
// hyphens; everything else becomes an underscore.
func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
