package coronastats

import (
	"context"
	"path"
	"time"

	"github.com/studio-b12/gowebdav"
)

type WebDAVConfig struct {
	URL  string
	User string
	Pass string
	Dir  string
}

// WebDAVStore keeps the cache files on a WebDAV share. Freshness relies on the
// last-modified date the server stamps on every PUT.
type WebDAVStore struct {
	client *gowebdav.Client
	dir    string
}

var _ Store = &WebDAVStore{}

func NewWebDAVStore(cfg WebDAVConfig) *WebDAVStore {
	dir := cfg.Dir
	if dir == "" {
		dir = "/"
	}
	return &WebDAVStore{
		client: gowebdav.NewClient(cfg.URL, cfg.User, cfg.Pass),
		dir:    dir,
	}
}

func (s *WebDAVStore) Path(country string) string {
	return path.Join(s.dir, "corona_stats_"+country)
}

func (s *WebDAVStore) IsFresh(ctx context.Context, country string, now time.Time) (bool, error) {
	info, err := s.client.Stat(s.Path(country))
	if gowebdav.IsErrNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sameDay(info.ModTime(), now), nil
}

func (s *WebDAVStore) Write(ctx context.Context, country, body string) error {
	debugw("Uploading stats", "path", s.Path(country), "size", len(body))
	return s.client.Write(s.Path(country), []byte(body), 0o644)
}

func (s *WebDAVStore) Read(ctx context.Context, country string) (string, error) {
	b, err := s.client.Read(s.Path(country))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
