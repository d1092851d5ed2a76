package report

// Visualizations packing grid.
const (
	firstBandRow = 5
	slotsPerBand = 3
)

var slotColumns = [slotsPerBand]string{"A", "I", "Q"}

// ChartSlot returns the label cell and chart anchor of the i-th packed chart.
// Charts fill slots A, I, Q left to right; every third chart starts a new
// band bandRows further down.
func ChartSlot(i, bandRows int) (label, anchor string) {
	col := slotColumns[i%slotsPerBand]
	row := firstBandRow + (i/slotsPerBand)*bandRows
	return Ref(col, row), Ref(col, row+1)
}

// packCharts renders the overview sheet once every column sheet exists.
func packCharts(s *Sheet, pending []pendingChart, bandRows int) {
	s.SetString("A1", "Visualizations Overview", StyleBanner)
	s.Merge("A1", "P1")
	s.SetString("A3", "This sheet contains visualizations for all quantitative columns.", StyleNote)
	for i, p := range pending {
		label, anchor := ChartSlot(i, bandRows)
		s.SetString(label, p.Column+" - "+p.Kind, StyleChartLabel)
		ch := p.Chart
		ch.Anchor = anchor
		s.AddChart(ch)
	}
	s.SetWidth("A", 2)
}
