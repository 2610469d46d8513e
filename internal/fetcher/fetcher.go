package fetcher

import (
	"context"
	"fmt"
	"time"

	"boothx/internal/browser"

	"github.com/go-rod/rod"
)

// WaitStrategy decides when a navigated page counts as ready.
type WaitStrategy string

const (
	WaitStrategyLoad    WaitStrategy = "load"    // wait for the load event
	WaitStrategyElement WaitStrategy = "element" // wait for a selector to appear
	WaitStrategyTime    WaitStrategy = "time"    // wait a fixed number of milliseconds
)

// Request describes one page load.
type Request struct {
	URL        string
	Headers    map[string]string
	WaitFor    WaitStrategy
	WaitTarget string
	Timeout    time.Duration
}

// FetchResult holds the still-open page and its metadata.
type FetchResult struct {
	Page     *rod.Page
	Title    string
	URL      string // final URL after redirects
	LoadTime time.Duration
}

// Fetcher loads pages in a shared browser.
type Fetcher struct {
	browser *browser.Browser
}

// NewFetcher creates a Fetcher bound to b.
func NewFetcher(b *browser.Browser) *Fetcher {
	return &Fetcher{browser: b}
}

// Fetch navigates a fresh tab to req.URL. The caller owns the returned page and must close it.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (*FetchResult, error) {
	startTime := time.Now()

	page, err := f.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page = page.Context(ctx)

	if len(req.Headers) > 0 {
		headerList := make([]string, 0, len(req.Headers)*2)
		for k, v := range req.Headers {
			headerList = append(headerList, k, v)
		}
		cleanup, err := page.SetExtraHeaders(headerList)
		if err != nil {
			page.Close()
			return nil, fmt.Errorf("failed to set headers: %w", err)
		}
		defer cleanup()
	}

	if err := page.Timeout(req.Timeout).Navigate(req.URL); err != nil {
		page.Close()
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}

	if err := ApplyWaitStrategy(page.Timeout(req.Timeout), req.WaitFor, req.WaitTarget); err != nil {
		page.Close()
		return nil, fmt.Errorf("wait strategy failed: %w", err)
	}

	title, err := PageTitle(page)
	if err != nil {
		page.Close()
		return nil, err
	}

	info, err := page.Info()
	if err != nil {
		page.Close()
		return nil, fmt.Errorf("failed to get page info: %w", err)
	}

	return &FetchResult{
		Page:     page,
		Title:    title,
		URL:      info.URL,
		LoadTime: time.Since(startTime),
	}, nil
}

// PageTitle reads document.title from the live page.
func PageTitle(page *rod.Page) (string, error) {
	res, err := page.Eval(`() => document.title`)
	if err != nil {
		return "", fmt.Errorf("failed to get page title: %w", err)
	}
	return res.Value.Str(), nil
}

// ApplyWaitStrategy blocks until page is ready according to strategy.
func ApplyWaitStrategy(page *rod.Page, strategy WaitStrategy, target string) error {
	switch strategy {
	case WaitStrategyElement:
		if target == "" {
			return fmt.Errorf("wait target is required for element strategy")
		}
		if _, err := page.Element(target); err != nil {
			return fmt.Errorf("failed to wait for element '%s': %w", target, err)
		}

	case WaitStrategyTime:
		if target == "" {
			return fmt.Errorf("wait target is required for time strategy")
		}
		duration, err := time.ParseDuration(target + "ms")
		if err != nil {
			return fmt.Errorf("invalid wait time '%s': %w", target, err)
		}
		time.Sleep(duration)

	default:
		if err := page.WaitLoad(); err != nil {
			return fmt.Errorf("failed to wait for page load: %w", err)
		}
	}

	return nil
}
