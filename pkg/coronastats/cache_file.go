package coronastats

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps one flat file per country in dir.
type FileStore struct {
	dir string
}

var _ Store = &FileStore{}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the cache file used for the country.
func (s *FileStore) Path(country string) string {
	return filepath.Join(s.dir, "corona_stats_"+country)
}

func (s *FileStore) IsFresh(ctx context.Context, country string, now time.Time) (bool, error) {
	info, err := os.Stat(s.Path(country))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sameDay(info.ModTime(), now), nil
}

func (s *FileStore) Write(ctx context.Context, country, body string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create cache dir %q: %w", s.dir, err)
	}
	return os.WriteFile(s.Path(country), []byte(body), 0o644)
}

func (s *FileStore) Read(ctx context.Context, country string) (string, error) {
	b, err := os.ReadFile(s.Path(country))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
