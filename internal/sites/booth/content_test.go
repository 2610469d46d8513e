package booth

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boothx/internal/export"
	"boothx/internal/sales"
	"boothx/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func loadFixture(t *testing.T, name string) *Page {
	t.Helper()
	p, err := LoadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return p
}

func TestLoadFile(t *testing.T) {
	p := loadFixture(t, "sales_page.html")

	assert.Equal(t, "売上管理 2023年1月 - BOOTH", p.Title)
	assert.True(t, strings.HasPrefix(p.URL, "file://"))
	assert.Contains(t, p.HTML, "co-expansion-panel")
}

func TestLoadFile_TitleFallsBackToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales-2023-01.html")
	require.NoError(t, os.WriteFile(path, []byte("<html><body></body></html>"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sales-2023-01", p.Title)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}

func TestIsLocalFile(t *testing.T) {
	assert.True(t, IsLocalFile(filepath.Join("testdata", "sales_page.html")))
	assert.False(t, IsLocalFile("testdata"))
	assert.False(t, IsLocalFile("https://manage.booth.pm/sales/2023/1"))
}

func TestCollect_MultiRecord(t *testing.T) {
	c, err := Collect(loadFixture(t, "sales_page.html"), false, export.XLSXWriter{})
	require.NoError(t, err)

	assert.Len(t, c.Records(), 2)
	rows := c.Rows()
	require.Len(t, rows, 5)
	assert.Equal(t, sales.Header, rows[0])
	assert.Equal(t, []string{"収入", "2023/01/05", "売上高", "課対仕入10%", "1000", "Booth", "ABC123"}, rows[1])
	assert.Equal(t, []string{"", "", "支払手数料", "課対仕入10%", "-100", "Booth", ""}, rows[2])
	assert.Equal(t, []string{"収入", "2023/01/20", "売上高", "課対仕入10%", "12345", "Booth", "DEF456"}, rows[3])
	assert.Equal(t, []string{"", "", "支払手数料", "課対仕入10%", "-1234", "Booth", ""}, rows[4])
	assert.Equal(t, "売上管理 2023年1月 - BOOTH", c.Title())
}

func TestCollect_Single(t *testing.T) {
	c, err := Collect(loadFixture(t, "sales_page.html"), true, nil)
	require.NoError(t, err)
	assert.Len(t, c.Rows(), 3)
}

func TestCollect_EmptyPage(t *testing.T) {
	p := loadFixture(t, "empty_page.html")

	_, err := Collect(p, false, nil)
	assert.ErrorIs(t, err, sales.ErrNoRecords)

	_, err = Collect(p, true, nil)
	assert.ErrorIs(t, err, sales.ErrPanelNotFound)
}

func TestSalesContent_Formats(t *testing.T) {
	c, err := Collect(loadFixture(t, "sales_page.html"), false, export.XLSXWriter{})
	require.NoError(t, err)

	t.Run("xlsx", func(t *testing.T) {
		data, err := c.ToXLSX()
		require.NoError(t, err)
		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(sales.SheetName)
		require.NoError(t, err)
		assert.Len(t, rows, 5)
		assert.Equal(t, "ABC123", rows[1][6])
	})

	t.Run("csv", func(t *testing.T) {
		out, err := c.ToCSV()
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 5)
		assert.Equal(t, "収支区分,発生日,勘定科目,税区分,金額,取引先,備考", lines[0])
		assert.Equal(t, ",,支払手数料,課対仕入10%,-100,Booth,", lines[2])
	})

	t.Run("json", func(t *testing.T) {
		out, err := c.ToJSON()
		require.NoError(t, err)

		var decoded struct {
			Title   string              `json:"title"`
			Records []sales.OrderRecord `json:"records"`
			Rows    [][]string          `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.Equal(t, c.Title(), decoded.Title)
		assert.Equal(t, c.Records(), decoded.Records)
		assert.Equal(t, c.Rows(), decoded.Rows)
	})

	t.Run("html", func(t *testing.T) {
		out, err := c.ToHTML()
		require.NoError(t, err)
		assert.Contains(t, out, "<th>収支区分</th>")
		assert.Contains(t, out, "<td>DEF456</td>")
		assert.Equal(t, 5, strings.Count(out, "<tr>"))
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := c.ToMarkdown()
		require.NoError(t, err)
		assert.Contains(t, out, "収支区分")
		assert.Contains(t, out, "DEF456")
		assert.Contains(t, out, "|")

		text, err := c.ToText()
		require.NoError(t, err)
		assert.Equal(t, out, text)
	})
}

func TestSalesContent_NoWriter(t *testing.T) {
	c := NewSalesContent("t", "", nil, [][]string{sales.Header}, nil)
	_, err := c.ToXLSX()
	assert.Error(t, err)
}

func TestScrapersRegistered(t *testing.T) {
	for _, name := range []string{"booth", "booth.single"} {
		s, ok := scraper.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, name, s.Name())
	}
}

func TestSalesScraper_LocalFile(t *testing.T) {
	s, _ := scraper.Get("booth")
	content, err := s.Scrape(context.Background(), filepath.Join("testdata", "sales_page.html"), scraper.Options{})
	require.NoError(t, err)

	data, err := content.ToXLSX()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSalesScraper_EmptyLocalFile(t *testing.T) {
	s, _ := scraper.Get("booth.single")
	_, err := s.Scrape(context.Background(), filepath.Join("testdata", "empty_page.html"), scraper.Options{})
	assert.ErrorIs(t, err, sales.ErrPanelNotFound)
}
