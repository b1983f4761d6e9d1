// Package shell fetches the client application shell for passthrough
// responses, using a Colly collector.
package shell

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// Config controls the shell fetcher.
type Config struct {
	// Origin is the deployment's own origin serving the static shell.
	Origin string
	// Path is the shell document path, usually /index.html.
	Path      string
	UserAgent string
	Timeout   time.Duration
}

// Fetcher retrieves the static app shell document.
type Fetcher struct {
	cfg           Config
	baseCollector *colly.Collector
}

// New builds a Fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Path == "" {
		cfg.Path = "/index.html"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	// The same shell URL is fetched on every passthrough request.
	c.AllowURLRevisit = true
	c.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 15 * time.Second,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
	})
	return &Fetcher{cfg: cfg, baseCollector: c}
}

// Fetch executes a single GET for the shell document and returns its body.
// Any transport error or non-2xx status is an error; callers degrade to a
// redirect.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	collector := f.baseCollector.Clone()
	collector.IgnoreRobotsTxt = true
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.SetRequestTimeout(f.cfg.Timeout)

	var (
		body     []byte
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		if r.StatusCode < 200 || r.StatusCode > 299 {
			fetchErr = fmt.Errorf("shell fetch status %d", r.StatusCode)
			return
		}
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	target := strings.TrimRight(f.cfg.Origin, "/") + f.cfg.Path

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(target)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("shell fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("shell visit failed: %w", err)
		}
		if fetchErr != nil {
			return nil, fmt.Errorf("shell response failed: %w", fetchErr)
		}
		return body, nil
	}
}
