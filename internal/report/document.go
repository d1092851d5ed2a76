// Package report lays an analysis result out as a multi-sheet document.
//
// The Document is a format-neutral description of sheets, typed cells, merged
// ranges, hyperlinks and chart placements. internal/export turns it into an
// .xlsx workbook; nothing in this package touches the filesystem.
package report

import (
	"fmt"
	"strings"
)

// CellKind distinguishes string cells from numeric cells.
type CellKind int

const (
	CellString CellKind = iota
	CellNumber
)

// NumberFormat is the presentation role of a numeric cell. The stored value
// is always the raw number.
type NumberFormat int

const (
	// General shows the value as-is.
	General NumberFormat = iota
	// Fixed2 shows two decimals ("31.25").
	Fixed2
	// Percent2 shows two decimals followed by "%" ("66.67%"); the value is
	// already a percentage, not a fraction.
	Percent2
)

// Style is a visual role resolved by the writer.
type Style int

const (
	StyleNone Style = iota
	// StyleBanner is the white-on-blue title in row 1.
	StyleBanner
	// StyleSheetBanner is the smaller banner of column sheets.
	StyleSheetBanner
	// StyleHeader is a bold table header on a light fill.
	StyleHeader
	// StyleBold is plain bold text.
	StyleBold
	// StyleSection is a bold 12pt section heading.
	StyleSection
	// StyleChartLabel is the bold 10pt caption above packed charts.
	StyleChartLabel
	// StyleLink is a blue underlined hyperlink.
	StyleLink
	// StyleNote is 11pt body text.
	StyleNote
)

// Cell is one populated grid position.
type Cell struct {
	Ref    string
	Kind   CellKind
	Text   string
	Num    float64
	Format NumberFormat
	Style  Style
	// Link is an in-document target of the form "#<sheet>!A1".
	Link string
}

// ChartKind names the chart family.
type ChartKind int

const (
	ChartColumn ChartKind = iota
	ChartLine
	ChartPie
)

func (k ChartKind) String() string {
	switch k {
	case ChartLine:
		return "line"
	case ChartPie:
		return "pie"
	default:
		return "column"
	}
}

// Chart is a chart anchored at a cell. Ranges are absolute and carry their
// own sheet name, so a chart may live on a sheet other than its data.
// Width and Height are in centimeters.
type Chart struct {
	Kind          ChartKind
	Title         string
	XAxisTitle    string
	YAxisTitle    string
	// SeriesName references the header cell naming the series.
	SeriesName    string
	DataRange     string
	CategoryRange string
	Anchor        string
	Width         float64
	Height        float64
}

// Sheet is a sparse grid plus layout metadata.
type Sheet struct {
	Name   string
	Merges []string
	Charts []Chart

	cells  map[string]*Cell
	order  []string
	widths map[string]float64
	cols   []string
}

func newSheet(name string) *Sheet {
	return &Sheet{Name: name, cells: map[string]*Cell{}, widths: map[string]float64{}}
}

func (s *Sheet) put(c Cell) {
	if _, ok := s.cells[c.Ref]; !ok {
		s.order = append(s.order, c.Ref)
	}
	cc := c
	s.cells[c.Ref] = &cc
}

// SetString writes a text cell.
func (s *Sheet) SetString(ref, text string, style Style) {
	s.put(Cell{Ref: ref, Kind: CellString, Text: text, Style: style})
}

// SetNumber writes a numeric cell with a presentation role.
func (s *Sheet) SetNumber(ref string, v float64, f NumberFormat, style Style) {
	s.put(Cell{Ref: ref, Kind: CellNumber, Num: v, Format: f, Style: style})
}

// SetLink writes a text cell hyperlinked to the top-left of another sheet.
func (s *Sheet) SetLink(ref, text, sheet string) {
	s.put(Cell{Ref: ref, Kind: CellString, Text: text, Style: StyleLink, Link: LinkTarget(sheet)})
}

// Merge records a merged range such as "A1:D1".
func (s *Sheet) Merge(from, to string) {
	s.Merges = append(s.Merges, from+":"+to)
}

// SetWidth sets the width of a column by letter.
func (s *Sheet) SetWidth(col string, w float64) {
	if _, ok := s.widths[col]; !ok {
		s.cols = append(s.cols, col)
	}
	s.widths[col] = w
}

// AddChart places a chart on the sheet.
func (s *Sheet) AddChart(c Chart) { s.Charts = append(s.Charts, c) }

// Cell returns the cell at ref.
func (s *Sheet) Cell(ref string) (Cell, bool) {
	c, ok := s.cells[ref]
	if !ok {
		return Cell{}, false
	}
	return *c, true
}

// Cells returns populated cells in write order.
func (s *Sheet) Cells() []Cell {
	out := make([]Cell, 0, len(s.order))
	for _, ref := range s.order {
		out = append(out, *s.cells[ref])
	}
	return out
}

// Widths returns column widths in the order they were first set.
func (s *Sheet) Widths() []ColumnWidth {
	out := make([]ColumnWidth, 0, len(s.cols))
	for _, c := range s.cols {
		out = append(out, ColumnWidth{Column: c, Width: s.widths[c]})
	}
	return out
}

// ColumnWidth pairs a column letter with its width.
type ColumnWidth struct {
	Column string
	Width  float64
}

// Document is the ordered list of sheets produced by Build.
type Document struct {
	Title  string
	Sheets []*Sheet
}

// Sheet finds a sheet by exact name.
func (d *Document) Sheet(name string) (*Sheet, bool) {
	for _, s := range d.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// SheetNames lists sheet names in document order.
func (d *Document) SheetNames() []string {
	out := make([]string, len(d.Sheets))
	for i, s := range d.Sheets {
		out[i] = s.Name
	}
	return out
}

// LinkTarget is the in-document hyperlink target for a sheet.
func LinkTarget(sheet string) string { return "#" + sheet + "!A1" }

// LinkSheet extracts the sheet name from a LinkTarget value.
func LinkSheet(target string) string {
	t := strings.TrimPrefix(target, "#")
	if i := strings.LastIndex(t, "!"); i >= 0 {
		return t[:i]
	}
	return t
}

// Ref builds an A1 reference.
func Ref(col string, row int) string { return fmt.Sprintf("%s%d", col, row) }

// CellRange is an absolute single-cell reference on a sheet: 'My Sheet'!$B$4.
func CellRange(sheet, col string, row int) string {
	return fmt.Sprintf("'%s'!$%s$%d", quoteSheet(sheet), col, row)
}

func quoteSheet(sheet string) string { return strings.ReplaceAll(sheet, "'", "''") }

// ColumnRange is an absolute single-column range on a sheet, quoted so any
// sheet name is valid: 'My Sheet'!$B$4:$B$9.
func ColumnRange(sheet, col string, fromRow, toRow int) string {
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", quoteSheet(sheet), col, fromRow, col, toRow)
}
