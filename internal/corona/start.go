package corona

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/flying-scorpio/i3blocks-contrib/pkg/coronastats"
)

var ErrInvalidContent = errors.New("stats content is not valid JSON")

type fetcher interface {
	Fetch(ctx context.Context, country string) (string, error)
}

type chartPlotter interface {
	Plot(series []int, now time.Time, name, title string) error
}

type App struct {
	opts    Options
	store   coronastats.Store
	fetcher fetcher
	plotter chartPlotter
	out     io.Writer
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewApp picks the cache by configuration: redis first, then WebDAV, and the
// cache file store otherwise.
func NewApp(opts Options) (*App, error) {
	f, err := coronastats.NewFetcher(opts.Fetcher)
	if err != nil {
		return nil, err
	}

	return &App{
		opts:    opts,
		store:   newStore(opts),
		fetcher: f,
		plotter: newPlotter(opts.CacheDir, opts.Viewer),
		out:     os.Stdout,
		now:     time.Now,
		sleep:   sleepCtx,
	}, nil
}

func newStore(opts Options) coronastats.Store {
	switch {
	case opts.Redis.Server != "":
		log.WithField("server", opts.Redis.Server).Debug("Using redis cache")
		return coronastats.NewRedisStore(coronastats.NewRedisClient(opts.Redis))
	case opts.WebDAV.URL != "":
		log.WithField("url", opts.WebDAV.URL).Debug("Using WebDAV cache")
		return coronastats.NewWebDAVStore(opts.WebDAV)
	}
	return coronastats.NewFileStore(opts.CacheDir)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (a *App) refresh(ctx context.Context) error {
	country := a.opts.Country
	fmt.Fprintf(a.out, "Downloading data from %s to corona file\n", country)
	body, err := a.fetcher.Fetch(ctx, country)
	if err != nil {
		return err
	}
	if err := a.store.Write(ctx, country, body); err != nil {
		return fmt.Errorf("could not write cache for %q: %w", country, err)
	}
	return nil
}

// Records returns every region of the configured country, downloading them
// when the cache is stale or holds invalid content.
func (a *App) Records(ctx context.Context) ([]coronastats.Record, error) {
	country := a.opts.Country
	fresh, err := a.store.IsFresh(ctx, country, a.now())
	if err != nil {
		return nil, fmt.Errorf("could not check cache for %q: %w", country, err)
	}
	if !fresh {
		if err := a.refresh(ctx); err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		text, err := a.store.Read(ctx, country)
		if err != nil {
			return nil, fmt.Errorf("could not read cache for %q: %w", country, err)
		}
		res := coronastats.Parse(text)
		if res.Valid {
			return res.Records, nil
		}
		if a.opts.MaxAttempts > 0 && attempt >= a.opts.MaxAttempts {
			return nil, fmt.Errorf("%w after %d attempts", ErrInvalidContent, attempt)
		}
		log.WithFields(log.Fields{"country": country, "attempt": attempt}).Warn("Cached stats are invalid, downloading again")
		if err := a.sleep(ctx, a.opts.RetryDelay); err != nil {
			return nil, err
		}
		if err := a.refresh(ctx); err != nil {
			return nil, err
		}
	}
}

// place names the selected region for chart titles and file names.
func (a *App) place() (name, title string) {
	country, province := a.opts.Country, a.opts.Province
	if province == "" || province == coronastats.Global {
		return country, country
	}
	return country + "_" + province, province + ", " + country
}

func (a *App) Run(ctx context.Context) error {
	records, err := a.Records(ctx)
	if err != nil {
		return err
	}
	r, err := coronastats.Select(records, a.opts.Province)
	if err != nil {
		return err
	}
	confirmedDelta, err := r.TodayConfirmed()
	if err != nil {
		return fmt.Errorf("confirmed: %w", err)
	}
	deathsDelta, err := r.TodayDeaths()
	if err != nil {
		return fmt.Errorf("deaths: %w", err)
	}

	switch a.opts.Trigger {
	case TriggerPrimary:
		name, place := a.place()
		return a.plotter.Plot(r.ConfirmedByDay, a.now(), name,
			fmt.Sprintf("COVID-19 confirmed cases in %s", place))
	case TriggerTertiary:
		name, place := a.place()
		return a.plotter.Plot(r.DeathsByDay, a.now(), name,
			fmt.Sprintf("COVID-19 deaths in %s", place))
	}

	_, err = fmt.Fprintln(a.out, Summary(a.opts.Locale, r.Confirmed, confirmedDelta, r.Deaths, deathsDelta))
	return err
}

// LoadOptions reads the config file and resolves it against the process
// environment.
func LoadOptions(cfgFilename string) (Options, error) {
	cfg, err := NewConfig(cfgFilename)
	if err != nil {
		return Options{}, err
	}
	opts, err := cfg.Options(os.LookupEnv)
	if err != nil {
		return Options{}, err
	}
	if opts.Verbose {
		log.SetLevel(log.DebugLevel)
		coronastats.SetVerbose(true)
	}
	log.WithFields(log.Fields{"country": opts.Country, "province": opts.Province, "trigger": opts.Trigger}).Debug("Resolved options")
	return opts, nil
}

func Start(ctx context.Context, cfgFilename string) error {
	opts, err := LoadOptions(cfgFilename)
	if err != nil {
		return err
	}
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
