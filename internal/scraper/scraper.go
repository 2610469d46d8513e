package scraper

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Scraper interface {
	Name() string
	Scrape(ctx context.Context, target string, opts Options) (Content, error)
}

// Content is what a scraper hands to the formatter.
type Content interface {
	Title() string
	ToXLSX() ([]byte, error)
	ToHTML() (string, error)
	ToText() (string, error)
	ToMarkdown() (string, error)
	ToJSON() ([]byte, error)
	ToCSV() (string, error)
}

type Options struct {
	Headers     map[string]string
	WaitFor     string
	WaitTarget  string
	Timeout     time.Duration
	ShowUI      bool
	ProxyURL    string // --proxy flag or BOOTHX_PROXY env var
	UserDataDir string // browser profile holding the seller login
	Logger      *zap.Logger
}

// Log returns opts.Logger, or a no-op logger when unset.
func (o Options) Log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
