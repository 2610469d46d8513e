package booth

import (
	"context"
	"fmt"
	"time"

	"boothx/internal/browser"
	"boothx/internal/fetcher"
	"boothx/internal/sales"
	"boothx/internal/scraper"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"
	"go.uber.org/zap"
)

// ExportFunc handles one button click. The returned message is shown in the page.
type ExportFunc func(p *Page) (string, error)

// Client loads sales pages through a browser.
type Client struct {
	browser *browser.Browser
	logger  *zap.Logger
}

// NewClient creates a Client bound to b.
func NewClient(b *browser.Browser, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{browser: b, logger: logger}
}

// Fetch loads target and snapshots it. Pages outside /sales/<year>/<month> are rejected
// before and after navigation, so a login redirect is reported as ErrNotSalesPage.
func (c *Client) Fetch(ctx context.Context, target string, opts scraper.Options) (*Page, error) {
	if err := sales.CheckURL(target); err != nil {
		return nil, fmt.Errorf("%w: %s", err, target)
	}

	f := fetcher.NewFetcher(c.browser)
	result, err := f.Fetch(ctx, fetcher.Request{
		URL:        target,
		Headers:    opts.Headers,
		WaitFor:    fetcher.WaitStrategy(opts.WaitFor),
		WaitTarget: opts.WaitTarget,
		Timeout:    opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer result.Page.Close()

	c.logger.Debug("page loaded",
		zap.String("url", result.URL),
		zap.String("title", result.Title),
		zap.Duration("load_time", result.LoadTime))

	if err := sales.CheckURL(result.URL); err != nil {
		return nil, fmt.Errorf("%w: %s", err, result.URL)
	}

	html, err := result.Page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}

	return &Page{
		HTML:     html,
		Title:    result.Title,
		URL:      result.URL,
		LoadTime: result.LoadTime,
	}, nil
}

// Serve opens target in a tab carrying the export button and runs export once per click
// until ctx is cancelled. The button is re-injected on every navigation that passes the gate,
// so the user may log in or move between months in the same tab.
func (c *Client) Serve(ctx context.Context, target string, opts scraper.Options, export ExportFunc) error {
	page, err := c.browser.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	clicks := make(chan struct{}, 1)
	stop, err := page.Expose(exportBinding, func(gson.JSON) (interface{}, error) {
		select {
		case clicks <- struct{}{}:
		default: // an export is already queued
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to expose export binding: %w", err)
	}
	defer func() { _ = stop() }()

	remove, err := page.EvalOnNewDocument(ButtonScript())
	if err != nil {
		return fmt.Errorf("failed to install export button: %w", err)
	}
	defer func() { _ = remove() }()

	if len(opts.Headers) > 0 {
		headerList := make([]string, 0, len(opts.Headers)*2)
		for k, v := range opts.Headers {
			headerList = append(headerList, k, v)
		}
		cleanup, err := page.SetExtraHeaders(headerList)
		if err != nil {
			return fmt.Errorf("failed to set headers: %w", err)
		}
		defer cleanup()
	}

	if err := page.Timeout(opts.Timeout).Navigate(target); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	c.logger.Info("waiting for export clicks", zap.String("url", target))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-clicks:
			msg := c.exportOnce(page, export)
			if _, err := page.Eval(alertScript, msg); err != nil {
				c.logger.Warn("failed to show notice", zap.Error(err))
			}
		}
	}
}

func (c *Client) exportOnce(page *rod.Page, export ExportFunc) string {
	p, err := c.snapshot(page)
	if err == nil {
		var msg string
		msg, err = export(p)
		if err == nil {
			return msg
		}
	}

	if _, ok := sales.Notice(err); ok {
		c.logger.Info("nothing exported", zap.Error(err))
	} else {
		c.logger.Error("export failed", zap.Error(err))
	}
	return failureNotice(err)
}

// failureNotice is the in-page message for a failed click.
func failureNotice(err error) string {
	if notice, ok := sales.Notice(err); ok {
		return notice
	}
	return "エクスポートに失敗しました: " + err.Error()
}

func (c *Client) snapshot(page *rod.Page) (*Page, error) {
	start := time.Now()

	info, err := page.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get page info: %w", err)
	}
	if err := sales.CheckURL(info.URL); err != nil {
		return nil, fmt.Errorf("%w: %s", err, info.URL)
	}

	title, err := fetcher.PageTitle(page)
	if err != nil {
		return nil, err
	}
	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}

	return &Page{HTML: html, Title: title, URL: info.URL, LoadTime: time.Since(start)}, nil
}
