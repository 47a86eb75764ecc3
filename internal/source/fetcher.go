package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pfrederiksen/rlol/internal/config"
	"github.com/pfrederiksen/rlol/internal/logger"
	"github.com/pfrederiksen/rlol/internal/tabular"
)

const (
	// CacheBustParam is the query parameter carrying the request time.
	CacheBustParam = "_cb"

	maxBodyBytes = 32 << 20
	accept       = "text/csv, text/plain;q=0.9, */*;q=0.1"
)

// Fetcher downloads sheet exports.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	cacheBust bool
	maxBody   int64
	now       func() time.Time
	log       *logger.Logger
	metrics   *logger.Metrics
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client built from the config.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithLogger sets the logger; the package default is used otherwise.
func WithLogger(l *logger.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

// WithMetrics records fetch counters and timings into m.
func WithMetrics(m *logger.Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

// WithClock sets the time source used for cache busting.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// New creates a Fetcher from HTTP settings.
func New(cfg config.HTTPConfig, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout.Duration},
		userAgent: cfg.UserAgent,
		cacheBust: cfg.CacheBust,
		maxBody:   maxBodyBytes,
		now:       time.Now,
		metrics:   logger.NewMetrics(),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.log == nil {
		f.log = logger.Default()
	}
	return f
}

// Metrics returns the tracker the fetcher records into.
func (f *Fetcher) Metrics() *logger.Metrics {
	return f.metrics
}

// requestURL appends the cache-busting parameter without re-encoding the
// existing query.
func (f *Fetcher) requestURL(raw string) string {
	if !f.cacheBust {
		return raw
	}
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + CacheBustParam + "=" + strconv.FormatInt(f.now().UnixMilli(), 10)
}

// Fetch downloads url and returns the body as text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting to fetch %s: %w", url, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.requestURL(url), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.metrics.IncrCounter("fetch.errors")
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		f.metrics.IncrCounter("fetch.errors")
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	if int64(len(body)) > f.maxBody {
		f.metrics.IncrCounter("fetch.errors")
		return "", fmt.Errorf("reading %s: %w (limit %d bytes)", url, ErrBodyTooLarge, f.maxBody)
	}
	f.metrics.RecordTiming("fetch.duration", time.Since(start))
	f.metrics.IncrCounter("fetch.requests")
	f.metrics.AddCounter("fetch.bytes", int64(len(body)))

	text := string(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.metrics.IncrCounter("fetch.errors")
		statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode}
		if tabular.CheckCSV(text) != nil {
			statusErr.Title = pageTitle(text)
		}
		return "", statusErr
	}

	if err := tabular.CheckCSV(text); err != nil {
		f.metrics.IncrCounter("fetch.errors")
		var notCSV *tabular.NotCSVError
		if errors.As(err, &notCSV) {
			notCSV.Title = pageTitle(text)
		}
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	return text, nil
}

// FetchTable downloads and decodes one dataset.
func (f *Fetcher) FetchTable(ctx context.Context, dataset Dataset, url string) (*tabular.Table, error) {
	start := time.Now()
	text, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dataset, err)
	}

	table, err := tabular.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", dataset, err)
	}

	f.metrics.AddCounter("rows."+string(dataset), int64(table.Len()))
	f.log.Debug("Fetched dataset", logger.Fields{
		"dataset":     string(dataset),
		"rows":        table.Len(),
		"bytes":       len(text),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return table, nil
}
