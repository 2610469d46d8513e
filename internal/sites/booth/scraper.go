package booth

import (
	"context"
	"fmt"

	"boothx/internal/browser"
	"boothx/internal/export"
	"boothx/internal/scraper"

	"go.uber.org/zap"
)

func init() {
	scraper.Register(&SalesScraper{name: "booth"})
	scraper.Register(&SalesScraper{name: "booth.single", single: true})
}

// DefaultWriter is the workbook writer used by registered scrapers.
var DefaultWriter export.WorkbookWriter = export.XLSXWriter{ColWidth: 16}

// SalesScraper exports the order panels of a BOOTH monthly sales page.
// The single variant reads only the first panel, as the dashboard's
// per-order view does.
type SalesScraper struct {
	name   string
	single bool
}

// Name returns the registry name.
func (s *SalesScraper) Name() string {
	return s.name
}

// Scrape loads target (a saved HTML file or a sales page URL) and builds its rows.
func (s *SalesScraper) Scrape(ctx context.Context, target string, opts scraper.Options) (scraper.Content, error) {
	logger := opts.Log().With(zap.String("scraper", s.name))

	page, err := Load(ctx, target, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("page ready",
		zap.String("title", page.Title),
		zap.String("url", page.URL),
		zap.Int("html_bytes", len(page.HTML)))

	content, err := Collect(page, s.single, DefaultWriter)
	if err != nil {
		return nil, err
	}
	logger.Info("orders extracted",
		zap.Int("records", len(content.Records())),
		zap.Int("rows", len(content.Rows())))
	return content, nil
}

// Load reads target from disk when it is a file, otherwise fetches it with a fresh browser.
func Load(ctx context.Context, target string, opts scraper.Options) (*Page, error) {
	if IsLocalFile(target) {
		return LoadFile(target)
	}

	b, err := browser.New(browser.Config{
		ProxyURL:    opts.ProxyURL,
		Headless:    !opts.ShowUI,
		UserDataDir: opts.UserDataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	defer b.Close()

	return NewClient(b, opts.Log()).Fetch(ctx, target, opts)
}
