package website

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/xavierca1/leadpilot/internal/sitecheck"
)

// ChromeFetcher renders homepages in headless Chrome so script-built sites
// are audited as visitors see them.
type ChromeFetcher struct {
	timeout    time.Duration
	chromePath string
	limiter    *HostLimiter
}

func NewChromeFetcher(timeout time.Duration, chromePath string, limiter *HostLimiter) *ChromeFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ChromeFetcher{timeout: timeout, chromePath: chromePath, limiter: limiter}
}

func (f *ChromeFetcher) Fetch(ctx context.Context, pageURL string) (*sitecheck.Page, error) {
	if err := f.limiter.WaitURL(ctx, pageURL); err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(defaultUserAgent),
	}
	if f.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(f.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var html, location string
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if location == "" {
		location = pageURL
	}

	return &sitecheck.Page{
		URL:       location,
		HTML:      []byte(html),
		FetchedAt: time.Now(),
	}, nil
}
