package corona

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gcfg.v1"

	"github.com/flying-scorpio/i3blocks-contrib/pkg/coronastats"
)

const (
	defaultCountry     = "France"
	defaultMaxAttempts = 5
	defaultRetryDelay  = "2s"
	defaultViewer      = "xdg-open"
)

// Config mirrors the sections of the corona.cfg file.
type Config struct {
	Stats struct {
		Country     string
		Province    string
		BaseURL     string
		CacheDir    string
		MaxAttempts int
		RetryDelay  string
		Timeout     string
		Viewer      string
		Verbose     bool
	}
	Redis        coronastats.RedisConfig
	WebDAV       coronastats.WebDAVConfig
	Proxy_SOCKS5 coronastats.ProxyConfig
}

// Trigger is the mouse button which activated the block.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerPrimary
	TriggerTertiary
)

func ParseTrigger(button string) Trigger {
	switch button {
	case "1":
		return TriggerPrimary
	case "3":
		return TriggerTertiary
	}
	return TriggerNone
}

// Options is the fully resolved configuration of a single run.
type Options struct {
	Country     string
	Province    string
	Trigger     Trigger
	Locale      Locale
	CacheDir    string
	MaxAttempts int
	RetryDelay  time.Duration
	Viewer      string
	Verbose     bool
	Fetcher     coronastats.FetcherConfig
	Redis       coronastats.RedisConfig
	WebDAV      coronastats.WebDAVConfig
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "corona", "corona.cfg")
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".cache")
}

func defaultConfig() Config {
	var cfg Config
	cfg.Stats.Country = defaultCountry
	cfg.Stats.Province = coronastats.Global
	cfg.Stats.BaseURL = coronastats.DefaultBaseURL
	cfg.Stats.MaxAttempts = defaultMaxAttempts
	cfg.Stats.RetryDelay = defaultRetryDelay
	cfg.Stats.Viewer = defaultViewer
	return cfg
}

// NewConfig reads filename on top of the defaults. An empty filename means the
// default path, which may be absent.
func NewConfig(filename string) (Config, error) {
	cfg := defaultConfig()

	optional := filename == ""
	if optional {
		filename = DefaultConfigPath()
	}
	if _, err := os.Stat(filename); optional && errors.Is(err, fs.ErrNotExist) {
		log.WithField("file", filename).Debug("No configuration file, using defaults")
		return cfg, nil
	}

	log.WithField("file", filename).Debug("Reading configuration")
	if err := gcfg.ReadFileInto(&cfg, filename); err != nil {
		log.WithFields(log.Fields{"file": filename, "err": err}).Error("Could not correctly parse configuration file")
		return cfg, err
	}
	return cfg, nil
}

func parseDuration(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return d, nil
}

// Options resolves cfg against the environment. Set environment variables take
// precedence over the file.
func (cfg Config) Options(lookupEnv func(string) (string, bool)) (Options, error) {
	country := cfg.Stats.Country
	if v, ok := lookupEnv("COUNTRY"); ok && v != "" {
		country = v
	}
	province := cfg.Stats.Province
	if v, ok := lookupEnv("PROVINCE"); ok && v != "" {
		province = v
	}
	button, _ := lookupEnv("BLOCK_BUTTON")

	delay, err := parseDuration("retry delay", cfg.Stats.RetryDelay)
	if err != nil {
		return Options{}, err
	}
	timeout, err := parseDuration("timeout", cfg.Stats.Timeout)
	if err != nil {
		return Options{}, err
	}
	if cfg.Stats.MaxAttempts < 0 {
		return Options{}, fmt.Errorf("max attempts must not be negative, got %d", cfg.Stats.MaxAttempts)
	}

	cacheDir := cfg.Stats.CacheDir
	if cacheDir == "" {
		cacheDir = defaultCacheDir()
	}
	viewer := cfg.Stats.Viewer
	if viewer == "" {
		viewer = defaultViewer
	}

	return Options{
		Country:     country,
		Province:    province,
		Trigger:     ParseTrigger(button),
		Locale:      LocaleFromEnv(lookupEnv),
		CacheDir:    cacheDir,
		MaxAttempts: cfg.Stats.MaxAttempts,
		RetryDelay:  delay,
		Viewer:      viewer,
		Verbose:     cfg.Stats.Verbose,
		Fetcher: coronastats.FetcherConfig{
			BaseURL: cfg.Stats.BaseURL,
			Timeout: timeout,
			Proxy:   cfg.Proxy_SOCKS5,
		},
		Redis:  cfg.Redis,
		WebDAV: cfg.WebDAV,
	}, nil
}
