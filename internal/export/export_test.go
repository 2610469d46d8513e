package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var sampleRows = [][]string{
	{"収支区分", "発生日", "勘定科目", "税区分", "金額", "取引先", "備考"},
	{"収入", "2023/01/05", "売上高", "課対仕入10%", "1000", "Booth", "ABC123"},
	{"", "", "支払手数料", "課対仕入10%", "-100", "Booth", ""},
}

func readSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheet}, f.GetSheetList())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestXLSXWriter_RoundTrip(t *testing.T) {
	data, err := XLSXWriter{ColWidth: 16}.Write(sampleRows, "Sheet1")
	require.NoError(t, err)

	rows := readSheet(t, data, "Sheet1")
	require.Len(t, rows, 3)
	assert.Equal(t, sampleRows[0], rows[0])
	assert.Equal(t, sampleRows[1], rows[1])
	// GetRows drops trailing empty cells.
	assert.Equal(t, sampleRows[2][:6], rows[2])
}

func TestXLSXWriter_KeepsAmountsAsText(t *testing.T) {
	data, err := XLSXWriter{}.Write(sampleRows, "Sheet1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	typ, err := f.GetCellType("Sheet1", "E2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeNumber, typ)

	v, err := f.GetCellValue("Sheet1", "E3")
	require.NoError(t, err)
	assert.Equal(t, "-100", v)
}

func TestXLSXWriter_CustomSheetName(t *testing.T) {
	data, err := XLSXWriter{}.Write(sampleRows[:1], "売上")
	require.NoError(t, err)

	rows := readSheet(t, data, "売上")
	assert.Len(t, rows, 1)
}

func TestXLSXWriter_DefaultSheetName(t *testing.T) {
	data, err := XLSXWriter{}.Write(sampleRows[:1], "")
	require.NoError(t, err)
	assert.Len(t, readSheet(t, data, "Sheet1"), 1)
}

func TestDiskSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := DiskSaver{Dir: dir}

	require.NoError(t, s.Save([]byte("data"), "report.xlsx"))

	got, err := os.ReadFile(filepath.Join(dir, "report.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
	assert.Equal(t, filepath.Join(dir, "report.xlsx"), s.Path("report.xlsx"))
}

func TestDiskSaver_EmptyDirUsesName(t *testing.T) {
	assert.Equal(t, "a.xlsx", DiskSaver{}.Path("a.xlsx"))
}

type fakeWriter struct {
	rows  [][]string
	sheet string
	err   error
}

func (w *fakeWriter) Write(rows [][]string, sheet string) ([]byte, error) {
	w.rows, w.sheet = rows, sheet
	if w.err != nil {
		return nil, w.err
	}
	return []byte("workbook"), nil
}

type fakeSaver struct {
	data     []byte
	filename string
	calls    int
	err      error
}

func (s *fakeSaver) Save(data []byte, filename string) error {
	s.calls++
	s.data, s.filename = data, filename
	return s.err
}

func TestExporter_Export(t *testing.T) {
	w, s := &fakeWriter{}, &fakeSaver{}
	e := &Exporter{Writer: w, Saver: s, Sheet: "Sheet1", Ext: ".xlsx"}

	name, err := e.Export(sampleRows, "売上管理 2023年1月 - BOOTH")
	require.NoError(t, err)
	assert.Equal(t, "売上管理 2023年1月 - BOOTH.xlsx", name)
	assert.Equal(t, sampleRows, w.rows)
	assert.Equal(t, "Sheet1", w.sheet)
	assert.Equal(t, []byte("workbook"), s.data)
	assert.Equal(t, name, s.filename)
}

func TestExporter_TitleNotSanitized(t *testing.T) {
	s := &fakeSaver{}
	e := &Exporter{Writer: &fakeWriter{}, Saver: s, Ext: ".xlsx"}

	_, err := e.Export(sampleRows, `a/b:c*?`)
	require.NoError(t, err)
	assert.Equal(t, `a/b:c*?.xlsx`, s.filename)
}

func TestExporter_WriterErrorSkipsSave(t *testing.T) {
	s := &fakeSaver{}
	e := &Exporter{Writer: &fakeWriter{err: errors.New("boom")}, Saver: s, Ext: ".xlsx"}

	_, err := e.Export(sampleRows, "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Zero(t, s.calls)
}

func TestExporter_SaverError(t *testing.T) {
	e := &Exporter{Writer: &fakeWriter{}, Saver: &fakeSaver{err: errors.New("disk full")}, Ext: ".xlsx"}

	_, err := e.Export(sampleRows, "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	WriterNotifier{W: &buf}.Notify("見つかりません")
	assert.Equal(t, "見つかりません\n", buf.String())
}

func TestNotifyFunc(t *testing.T) {
	var got []string
	n := NotifyFunc(func(msg string) { got = append(got, msg) })
	n.Notify("one")
	assert.Equal(t, []string{"one"}, got)
}
