package coronastats

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly"
	"golang.org/x/net/proxy"
)

const DefaultBaseURL = "https://corona-stats.online"

type ProxyConfig struct {
	Server string
	User   string
	Pass   string
}

type FetcherConfig struct {
	BaseURL string
	// Timeout of 0 waits for the server forever.
	Timeout time.Duration
	Proxy   ProxyConfig
}

// Fetcher downloads the raw stats payload of a country. It never retries.
type Fetcher struct {
	cfg       FetcherConfig
	transport http.RoundTripper
}

func NewFetcher(cfg FetcherConfig) (*Fetcher, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	f := &Fetcher{cfg: cfg}
	if cfg.Proxy.Server != "" {
		debugw("Proxy is set", "server", cfg.Proxy.Server, "user", cfg.Proxy.User)
		auth := proxy.Auth{User: cfg.Proxy.User,
			Password: cfg.Proxy.Pass}
		dialer, err := proxy.SOCKS5("tcp", cfg.Proxy.Server, &auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("could not get proxy dialer: %w", err)
		}
		httpTransport := &http.Transport{}
		httpTransport.Dial = dialer.Dial
		f.transport = httpTransport
	}
	return f, nil
}

func (f *Fetcher) URL(country string) string {
	return fmt.Sprintf("%s/%s?source=1&format=json", f.cfg.BaseURL, url.PathEscape(country))
}

func (f *Fetcher) Fetch(ctx context.Context, country string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := colly.NewCollector(colly.AllowURLRevisit())
	c.MaxBodySize = 0
	// colly defaults to 10s, zero disables the client timeout
	c.SetRequestTimeout(f.cfg.Timeout)
	if f.transport != nil {
		c.WithTransport(f.transport)
	}

	var body string
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		errorw("Could not fetch stats", "url", r.Request.URL.String(), "status", r.StatusCode, "err", err)
	})

	u := f.URL(country)
	debugw("Fetching stats", "url", u)
	if err := c.Visit(u); err != nil {
		return "", fmt.Errorf("could not fetch %q: %w", u, err)
	}
	debugw("Fetched stats", "url", u, "size", len(body))
	return body, nil
}
