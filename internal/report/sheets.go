package report

import (
	"github.com/KaramelBytes/colprofile-cli/internal/profile"
)

// Quantitative sheet layout.
const (
	statsFirstRow  = 4
	boxPlotCol     = "G"
	boxValueCol    = "H"
	histogramCol   = "G"
	densityCol     = "V"
	sheetChartW    = 15.0
	sheetChartH    = 10.0
	overviewChartW = 12.0
	overviewChartH = 8.0
)

// Qualitative sheet layout.
const (
	categoryHeaderRow = 4
	categoryChartCell = "E4"
)

var freqHeaders = []string{"Value", "Frequency", "% of Count", "Value Sum", "% of Total"}

// writeQuantitative fills a numeric column sheet and returns the chart
// copies destined for the Visualizations sheet.
func writeQuantitative(s *Sheet, title string, q profile.QuantitativeProfile, opt Options) []pendingChart {
	s.SetString("A1", "Analysis: "+title, StyleSheetBanner)
	s.Merge("A1", "E1")
	s.SetString("A3", "Statistical Summary", StyleSection)

	stats := []struct {
		label string
		value float64
		f     NumberFormat
	}{
		{"Count", float64(q.Count), General},
		{"Minimum", q.Min, Fixed2},
		{"25th Percentile", q.P25, Fixed2},
		{"Median (50th)", q.P50, Fixed2},
		{"75th Percentile", q.P75, Fixed2},
		{"Maximum", q.Max, Fixed2},
		{"Average", q.Mean, Fixed2},
		{"Sum", q.Sum, Fixed2},
		{"% of Total", q.PercentOfGrandTotal, Percent2},
	}
	row := statsFirstRow
	for _, st := range stats {
		s.SetString(Ref("A", row), st.label, StyleBold)
		s.SetNumber(Ref("B", row), st.value, st.f, StyleNone)
		row++
	}

	box := row + 1
	s.SetString(Ref(boxPlotCol, box), "Box Plot Data", StyleBold)
	for i, bp := range []struct {
		label string
		value float64
	}{
		{"Min", q.Min}, {"Q1", q.P25}, {"Median", q.P50}, {"Q3", q.P75}, {"Max", q.Max},
	} {
		s.SetString(Ref(boxPlotCol, box+1+i), bp.label, StyleNone)
		s.SetNumber(Ref(boxValueCol, box+1+i), bp.value, General, StyleNone)
	}

	freqStart := row + 2
	s.SetString(Ref("A", freqStart), "Frequency Distribution", StyleSection)
	header := freqStart + 1
	for i, h := range freqHeaders {
		s.SetString(Ref(string(rune('A'+i)), header), h, StyleHeader)
	}
	first := header + 1
	for i, fr := range q.Frequency {
		r := first + i
		s.SetNumber(Ref("A", r), fr.Value, General, StyleNone)
		s.SetNumber(Ref("B", r), float64(fr.Frequency), General, StyleNone)
		s.SetNumber(Ref("C", r), fr.PctOfCount, Percent2, StyleNone)
		s.SetNumber(Ref("D", r), fr.ValueSum, Fixed2, StyleNone)
		s.SetNumber(Ref("E", r), fr.PctOfColumnSum, Percent2, StyleNone)
	}

	s.SetWidth("A", 20)
	for _, c := range []string{"B", "C", "D", "E"} {
		s.SetWidth(c, 15)
	}

	n := len(q.Frequency)
	if n < 1 || n > opt.HistogramMaxValues {
		return nil
	}
	last := first + n - 1
	data := ColumnRange(s.Name, "B", first, last)
	cats := ColumnRange(s.Name, "A", first, last)
	series := func(kind ChartKind, chartTitle, anchor string, w, h float64) Chart {
		return Chart{
			Kind:          kind,
			Title:         chartTitle,
			XAxisTitle:    "Value",
			YAxisTitle:    "Frequency",
			SeriesName:    CellRange(s.Name, "B", header),
			DataRange:     data,
			CategoryRange: cats,
			Anchor:        anchor,
			Width:         w,
			Height:        h,
		}
	}

	s.AddChart(series(ChartColumn, "Histogram - Frequency Distribution", Ref(histogramCol, freqStart), sheetChartW, sheetChartH))
	s.AddChart(series(ChartLine, "Distribution Density", Ref(densityCol, freqStart), sheetChartW, sheetChartH))
	return []pendingChart{
		{Column: title, Kind: "Histogram", Chart: series(ChartColumn, title+" - Histogram", "", overviewChartW, overviewChartH)},
		{Column: title, Kind: "Distribution Density", Chart: series(ChartLine, title+" - Distribution Density", "", overviewChartW, overviewChartH)},
	}
}

// writeQualitative fills a categorical column sheet. Its chart stays on the
// sheet and is not copied to Visualizations.
func writeQualitative(s *Sheet, title string, q profile.QualitativeProfile, opt Options) {
	s.SetString("A1", "Analysis: "+title, StyleSheetBanner)
	s.Merge("A1", "D1")
	s.SetString("A3", "Category Distribution", StyleSection)
	for i, h := range []string{"Label", "Frequency", "Percentage"} {
		s.SetString(Ref(string(rune('A'+i)), categoryHeaderRow), h, StyleHeader)
	}
	first := categoryHeaderRow + 1
	for i, c := range q {
		r := first + i
		s.SetString(Ref("A", r), c.Label, StyleNone)
		s.SetNumber(Ref("B", r), float64(c.Frequency), General, StyleNone)
		s.SetNumber(Ref("C", r), c.PctOfCount, Percent2, StyleNone)
	}
	s.SetWidth("A", 30)
	s.SetWidth("B", 15)
	s.SetWidth("C", 15)

	n := len(q)
	if n == 0 {
		return
	}
	last := first + n - 1
	ch := Chart{
		Title:         title + " - Distribution",
		SeriesName:    CellRange(s.Name, "B", categoryHeaderRow),
		DataRange:     ColumnRange(s.Name, "B", first, last),
		CategoryRange: ColumnRange(s.Name, "A", first, last),
		Anchor:        categoryChartCell,
	}
	if n <= opt.PieMaxCategories {
		ch.Kind = ChartPie
		ch.Width, ch.Height = 20, 12
	} else {
		ch.Kind = ChartColumn
		ch.XAxisTitle = "Category"
		ch.YAxisTitle = "Frequency"
		ch.Width, ch.Height = 25, 15
	}
	s.AddChart(ch)
}
