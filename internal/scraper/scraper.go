package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/course-ical/internal/course"
	"github.com/pfrederiksen/course-ical/internal/logger"
)

const (
	DefaultUserAgent   = "course-ical/1.0 (github.com/pfrederiksen/course-ical)"
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 4
)

// Options configures a Scraper. Zero values fall back to the defaults.
type Options struct {
	UserAgent   string
	Timeout     time.Duration
	Concurrency int
}

// Scraper fetches catalog pages and extracts course records from them.
type Scraper struct {
	client      *http.Client
	userAgent   string
	concurrency int
}

// New creates a Scraper.
func New(opts Options) *Scraper {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Scraper{
		client:      &http.Client{Timeout: opts.Timeout},
		userAgent:   opts.UserAgent,
		concurrency: opts.Concurrency,
	}
}

// FetchError reports a page that could not be retrieved or parsed as HTML.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// FetchPage downloads and parses one page.
func (s *Scraper) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Cause: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: pageURL, Cause: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	page, err := NewPage(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Cause: err}
	}
	return page, nil
}

// FetchCourse downloads one catalog page and extracts its record.
func (s *Scraper) FetchCourse(ctx context.Context, pageURL string) (*course.Record, error) {
	start := time.Now()
	defer func() { logger.RecordTiming("page.fetch", time.Since(start)) }()

	page, err := s.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	rec, err := Extract(page)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", pageURL, err)
	}
	return rec, nil
}

// Result is the outcome for one input URL.
type Result struct {
	URL    string
	Record *course.Record
	Err    error
}

// ProgressFunc is called once per finished page. Calls are serialized.
type ProgressFunc func(done, total int, r Result)

// FetchAll fetches every URL with at most the configured number of pages in
// flight. results[i] always belongs to urls[i] whatever order pages finish
// in. With failFast the first failure cancels the pages still running and
// is returned; otherwise failures are only recorded in their Result.
func (s *Scraper) FetchAll(ctx context.Context, urls []string, failFast bool, progress ProgressFunc) ([]Result, error) {
	results := make([]Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	var mu sync.Mutex
	done := 0

	for i, u := range urls {
		g.Go(func() error {
			rec, err := s.FetchCourse(gctx, u)
			results[i] = Result{URL: u, Record: rec, Err: err}

			if err != nil {
				logger.IncrCounter("pages.failed")
				logger.Error("course extraction failed", logger.Fields{"url": u}, err)
			} else {
				logger.IncrCounter("pages.fetched")
				logger.Debug("course extracted", logger.Fields{"url": u, "title": rec.Title})
			}

			mu.Lock()
			done++
			if progress != nil {
				progress(done, len(urls), results[i])
			}
			mu.Unlock()

			if err != nil && failFast {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q: must be an absolute http(s) URL", raw)
	}
	return nil
}
