package export

import (
	"archive/zip"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/colprofile-cli/internal/profile"
	"github.com/KaramelBytes/colprofile-cli/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDoc() *report.Document {
	res := profile.Result{
		Source: "staff.csv",
		Rows:   4,
		Columns: []profile.ColumnProfile{
			{Name: "Age", Kind: profile.Quantitative, Quantitative: &profile.QuantitativeProfile{
				Count: 4, Min: 25, Max: 40, Mean: 31.25, P25: 28.75, P50: 30, P75: 32.5, Sum: 125, PercentOfGrandTotal: 100,
				Frequency: []profile.FrequencyRow{
					{Value: 25, Frequency: 1, PctOfCount: 25, ValueSum: 25, PctOfColumnSum: 20},
					{Value: 30, Frequency: 2, PctOfCount: 50, ValueSum: 60, PctOfColumnSum: 48},
					{Value: 40, Frequency: 1, PctOfCount: 25, ValueSum: 40, PctOfColumnSum: 32},
				},
			}},
			{Name: "Dept Name", Kind: profile.Qualitative, Qualitative: profile.QualitativeProfile{
				{Label: "Eng", Frequency: 2, PctOfCount: 200.0 / 3},
				{Label: "HR", Frequency: 1, PctOfCount: 100.0 / 3},
			}},
		},
	}
	return report.Build(res, report.DefaultOptions())
}

func countCharts(t *testing.T, path string) int {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	n := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/charts/chart") && strings.HasSuffix(f.Name, ".xml") {
			n++
		}
	}
	return n
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	doc := sampleDoc()
	path := filepath.Join(t.TempDir(), "staff_analysis.xlsx")
	require.NoError(t, WriteXLSX(doc, path, Options{ReportID: "run-1"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Index", "Visualizations", "Age", "Dept Name"}, f.GetSheetList())

	v, err := f.GetCellValue("Index", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Analysis Results - Column Index", v)

	ok, target, err := f.GetCellHyperLink("Index", "D3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Age!A1", target)

	ok, target, err = f.GetCellHyperLink("Index", "D4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "'Dept Name'!A1", target)

	raw, err := f.GetCellValue("Age", "B10", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "31.25", raw)

	merges, err := f.GetMergeCells("Index")
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A1", merges[0].GetStartAxis())
	assert.Equal(t, "D1", merges[0].GetEndAxis())

	w, err := f.GetColWidth("Index", "B")
	require.NoError(t, err)
	assert.Equal(t, 40.0, w)

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "run-1", props.Identifier)

	// Two charts on Age, one pie on Dept Name, two copies on Visualizations.
	assert.Equal(t, 5, countCharts(t, path))
}

func TestWriteXLSX_OutputTargetErrors(t *testing.T) {
	doc := sampleDoc()

	err := WriteXLSX(doc, filepath.Join(t.TempDir(), "missing", "out.xlsx"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputTarget))
	var ote *OutputTargetError
	require.True(t, errors.As(err, &ote))
	assert.Contains(t, ote.Path, "out.xlsx")

	dir := t.TempDir()
	err = WriteXLSX(doc, dir, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputTarget))
}

func TestLocationLink(t *testing.T) {
	assert.Equal(t, "Age!A1", locationLink("#Age!A1"))
	assert.Equal(t, "'Dept Name'!A1", locationLink("#Dept Name!A1"))
	assert.Equal(t, "'it''s'!A1", locationLink("#it's!A1"))
	assert.Equal(t, "'A1'!A1", locationLink("#A1!A1"))
	assert.Equal(t, "'xfd10'!A1", locationLink("#xfd10!A1"))
	assert.Equal(t, "'R1C1'!A1", locationLink("#R1C1!A1"))
	assert.Equal(t, "'R'!A1", locationLink("#R!A1"))
	assert.Equal(t, "Revenue!A1", locationLink("#Revenue!A1"))
	assert.Equal(t, "ABCD1!A1", locationLink("#ABCD1!A1"))
}

func TestWriteXLSX_QuotesCellLikeSheetLinks(t *testing.T) {
	res := profile.Result{Source: "grid.csv", Rows: 1, Columns: []profile.ColumnProfile{
		{Name: "A1", Kind: profile.Qualitative, Qualitative: profile.QualitativeProfile{{Label: "x", Frequency: 1, PctOfCount: 100}}},
		{Name: "R1C1", Kind: profile.Qualitative, Qualitative: profile.QualitativeProfile{{Label: "y", Frequency: 1, PctOfCount: 100}}},
	}}
	path := filepath.Join(t.TempDir(), "grid_analysis.xlsx")
	require.NoError(t, WriteXLSX(report.Build(res, report.DefaultOptions()), path, Options{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	for cell, want := range map[string]string{"D3": "'A1'!A1", "D4": "'R1C1'!A1"} {
		ok, target, err := f.GetCellHyperLink("Index", cell)
		require.NoError(t, err)
		assert.True(t, ok, cell)
		assert.Equal(t, want, target)
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	_, err := Render(&report.Document{}, Options{})
	assert.Error(t, err)
}
