package report

import (
	"fmt"

	"github.com/KaramelBytes/colprofile-cli/internal/profile"
)

// Options tunes chart selection and packing.
type Options struct {
	// HistogramMaxValues is the largest frequency table that still gets
	// histogram and density charts.
	HistogramMaxValues int
	// PieMaxCategories is the largest category count drawn as a pie; larger
	// counts get a column chart.
	PieMaxCategories int
	// BandRows is the row advance between bands of packed charts.
	BandRows int
}

// DefaultOptions returns the standard report layout.
func DefaultOptions() Options {
	return Options{HistogramMaxValues: 50, PieMaxCategories: 20, BandRows: 18}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HistogramMaxValues <= 0 {
		o.HistogramMaxValues = d.HistogramMaxValues
	}
	if o.PieMaxCategories <= 0 {
		o.PieMaxCategories = d.PieMaxCategories
	}
	if o.BandRows <= 0 {
		o.BandRows = d.BandRows
	}
	return o
}

// pendingChart is a chart copy waiting for the Visualizations sheet.
type pendingChart struct {
	Column string
	Kind   string
	Chart  Chart
}

// builder accumulates one document. It lives for exactly one Build call.
type builder struct {
	opt     Options
	doc     *Document
	names   *sheetNamer
	pending []pendingChart
}

// Build lays out res as a Document: Index first, Visualizations second, then
// one sheet per column (per group and column when grouped).
func Build(res profile.Result, opt Options) *Document {
	b := &builder{
		opt:   opt.withDefaults(),
		doc:   &Document{Title: res.Source},
		names: newSheetNamer(IndexSheet, VisualizationsSheet),
	}
	index := b.addSheet(IndexSheet)
	viz := b.addSheet(VisualizationsSheet)

	if res.Grouped() {
		b.buildGrouped(index, res)
	} else {
		b.buildUngrouped(index, res)
	}
	packCharts(viz, b.pending, b.opt.BandRows)
	return b.doc
}

func (b *builder) addSheet(name string) *Sheet {
	s := newSheet(name)
	b.doc.Sheets = append(b.doc.Sheets, s)
	return s
}

func (b *builder) buildUngrouped(index *Sheet, res profile.Result) {
	index.SetString("A1", "Analysis Results - Column Index", StyleBanner)
	index.Merge("A1", "D1")
	for i, h := range []string{"#", "Column Name", "Type", "Link"} {
		index.SetString(Ref(string(rune('A'+i)), 2), h, StyleHeader)
	}
	index.SetWidth("A", 8)
	index.SetWidth("B", 40)
	index.SetWidth("C", 20)
	index.SetWidth("D", 15)

	row := 3
	for i, col := range res.Columns {
		name := b.names.next(col.Name)
		index.SetNumber(Ref("A", row), float64(i+1), General, StyleNone)
		index.SetString(Ref("B", row), col.Name, StyleNone)
		index.SetString(Ref("C", row), col.Kind.Upper(), StyleNone)
		index.SetLink(Ref("D", row), "Go to Sheet", name)
		row++
		b.addColumnSheet(name, col.Name, col)
	}
}

func (b *builder) buildGrouped(index *Sheet, res profile.Result) {
	index.SetString("A1", fmt.Sprintf("Analysis Results - Grouped by %s", res.GroupColumn), StyleBanner)
	index.Merge("A1", "C1")
	index.SetWidth("A", 50)
	index.SetWidth("B", 20)
	index.SetWidth("C", 15)

	row := 2
	for _, g := range res.Groups {
		index.SetString(Ref("A", row), "GROUP: "+g.Label, StyleSection)
		row++
		for _, col := range g.Columns {
			name := b.names.next(g.Label + "_" + col.Name)
			index.SetString(Ref("A", row), col.Name, StyleNone)
			index.SetString(Ref("B", row), col.Kind.Upper(), StyleNone)
			index.SetLink(Ref("C", row), "Go to Sheet", name)
			row++
			b.addColumnSheet(name, g.Label+" - "+col.Name, col)
		}
		row++
	}
}

// addColumnSheet switches once on the profile tag.
func (b *builder) addColumnSheet(name, title string, col profile.ColumnProfile) {
	s := b.addSheet(name)
	switch col.Kind {
	case profile.Quantitative:
		if col.Quantitative != nil {
			b.pending = append(b.pending, writeQuantitative(s, title, *col.Quantitative, b.opt)...)
		}
	default:
		writeQualitative(s, title, col.Qualitative, b.opt)
	}
}
