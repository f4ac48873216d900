package storage

import (
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/ctrls-academy/exam-platform/config"
)

// FSStore keeps blobs on the local filesystem and serves them under the
// configured public base path.
type FSStore struct {
	base      string
	publicURL string
}

func NewFSStore(cfg *config.Config) (*FSStore, error) {
	base := cfg.Storage.BlobDir
	if base == "" {
		base = "./data/blobs"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base, publicURL: cfg.Storage.PublicBaseURL}, nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	dst := filepath.Join(s.base, filepath.Clean(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return path.Join(s.publicURL, key), nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.base, filepath.Clean(key)))
}

// BaseDir exposes the on-disk root for the static file route.
func (s *FSStore) BaseDir() string {
	return s.base
}
