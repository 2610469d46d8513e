package booth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is a snapshot of a sales page, detached from any browser.
type Page struct {
	HTML     string
	Title    string
	URL      string
	LoadTime time.Duration
}

// Document parses the snapshot.
func (p *Page) Document() (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// IsLocalFile reports whether target names an existing file rather than a URL.
func IsLocalFile(target string) bool {
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}

// LoadFile reads a sales page saved from the browser. The title comes from <title>,
// falling back to the file name without extension.
func LoadFile(path string) (*Page, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	p := &Page{HTML: string(data)}
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}

	p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if p.Title == "" {
		base := filepath.Base(path)
		p.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	p.URL = "file://" + filepath.ToSlash(abs)
	p.LoadTime = time.Since(start)
	return p, nil
}
