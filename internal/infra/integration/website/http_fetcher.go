package website

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xavierca1/leadpilot/internal/sitecheck"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; LeadPilotAudit/1.0)"
	// maxBodyBytes caps how much of a homepage is read
	maxBodyBytes = 2 << 20
)

// HTTPFetcher downloads homepages with a plain HTTP client
type HTTPFetcher struct {
	client    *http.Client
	limiter   *HostLimiter
	userAgent string
}

// HTTPOption configures the HTTPFetcher
type HTTPOption func(*HTTPFetcher)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

func WithLimiter(l *HostLimiter) HTTPOption {
	return func(f *HTTPFetcher) {
		f.limiter = l
	}
}

func NewHTTPFetcher(timeout time.Duration, opts ...HTTPOption) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	f := &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*sitecheck.Page, error) {
	if err := f.limiter.WaitURL(ctx, pageURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return &sitecheck.Page{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		HTML:       body,
		FetchedAt:  time.Now(),
	}, nil
}
