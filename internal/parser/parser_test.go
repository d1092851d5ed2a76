package parser_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KaramelBytes/colprofile-cli/internal/dataset"
	"github.com/KaramelBytes/colprofile-cli/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV_TypesAndMissing(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "staff.csv")
	content := "Dept,Age,Note\n" +
		"Eng,25,first\n" +
		"Eng,30,NA\n" +
		"HR,,third\n" +
		"HR,40.5,fourth\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	ds, err := parser.Load(p, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "staff.csv", ds.Name())
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"Dept", "Age", "Note"}, ds.Columns())

	age, ok := ds.Column("Age")
	require.True(t, ok)
	assert.Equal(t, dataset.Numeric, age.Storage)
	assert.True(t, age.Cells[2].Missing)
	assert.Equal(t, 40.5, age.Cells[3].Num)

	dept, _ := ds.Column("Dept")
	assert.Equal(t, dataset.Text, dept.Storage)
	assert.True(t, ds.Cell("Note", 1).Missing)
}

func TestLoadCSV_SemicolonSniffAndMaxRows(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "eu.csv")
	require.NoError(t, os.WriteFile(p, []byte("a;b\n1;x\n2;y\n3;z\n"), 0o644))

	ds, err := parser.Load(p, parser.Options{MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.Columns())
	assert.Equal(t, 2, ds.Len())
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	_, err := parser.Load(p, parser.Options{})
	assert.Error(t, err)
}

func TestLoad_Unsupported(t *testing.T) {
	_, err := parser.Load("notes.docx", parser.Options{})
	assert.ErrorIs(t, err, parser.ErrUnsupported)
	assert.False(t, parser.Supported("notes.docx"))
	assert.True(t, parser.Supported("DATA.XLSX"))
}

func writeWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("People")
	require.NoError(t, err)
	rows := [][]any{
		{"Dept", "Age", "Code"},
		{"Eng", 25, "42"},
		{"Eng", 30, "43"},
		{"HR", 30, "x1"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, f.SetCellValue("People", cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestLoadXLSX_SheetSelectionAndStorage(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "book.xlsx")
	writeWorkbook(t, p)

	names, err := parser.SheetNames(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "People"}, names)

	ds, err := parser.Load(p, parser.Options{SheetName: "people"})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	age, ok := ds.Column("Age")
	require.True(t, ok)
	assert.Equal(t, dataset.Numeric, age.Storage)
	assert.Equal(t, 25.0, age.Cells[0].Num)

	code, _ := ds.Column("Code")
	assert.Equal(t, dataset.Text, code.Storage)
	assert.Equal(t, "42", code.Cells[0].Display())

	ds2, err := parser.Load(p, parser.Options{SheetIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, ds.Columns(), ds2.Columns())

	_, err = parser.Load(p, parser.Options{SheetName: "Nope"})
	assert.Error(t, err)
	_, err = parser.Load(p, parser.Options{SheetIndex: 9})
	assert.Error(t, err)
}

func TestLoadXLSX_DatesAndBooleans(t *testing.T) {
	p := filepath.Join(t.TempDir(), "hires.xlsx")
	f := excelize.NewFile()
	custom := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	require.NoError(t, err)
	fixed, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)

	cells := map[string]any{
		"A1": "Hired", "B1": "Flag", "C1": "Score", "D1": "Mixed",
		"A2": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"A3": 45356,
		"A4": time.Date(2024, 3, 6, 9, 30, 0, 0, time.UTC),
		"B2": true, "B3": false, "B4": true,
		"C2": 1.5, "C3": 2.5, "C4": 3,
		"D2": true, "D3": "n/a", "D4": 7,
	}
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", ref, v))
	}
	require.NoError(t, f.SetCellStyle("Sheet1", "A3", "A3", dateStyle))
	require.NoError(t, f.SetCellStyle("Sheet1", "C2", "C4", fixed))
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	ds, err := parser.Load(p, parser.Options{})
	require.NoError(t, err)

	hired, _ := ds.Column("Hired")
	assert.Equal(t, dataset.Text, hired.Storage)
	assert.Equal(t, "2024-01-02", hired.Cells[0].Display())
	assert.Equal(t, "2024-03-05", hired.Cells[1].Display())
	assert.Equal(t, "2024-03-06 09:30:00", hired.Cells[2].Display())

	flag, _ := ds.Column("Flag")
	assert.Equal(t, dataset.Numeric, flag.Storage)
	assert.Equal(t, []float64{1, 0, 1}, []float64{flag.Cells[0].Num, flag.Cells[1].Num, flag.Cells[2].Num})

	score, _ := ds.Column("Score")
	assert.Equal(t, dataset.Numeric, score.Storage)
	assert.Equal(t, 2.5, score.Cells[1].Num)

	mixed, _ := ds.Column("Mixed")
	assert.Equal(t, dataset.Text, mixed.Storage)
	assert.Equal(t, "True", mixed.Cells[0].Display())
	assert.Equal(t, "7", mixed.Cells[2].Display())
}
