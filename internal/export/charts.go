package export

import (
	"github.com/KaramelBytes/colprofile-cli/internal/report"
	"github.com/xuri/excelize/v2"
)

const pixelsPerCm = 37.8

func cmToPixels(cm float64) uint {
	if cm <= 0 {
		return 0
	}
	return uint(cm*pixelsPerCm + 0.5)
}

func chartType(k report.ChartKind) excelize.ChartType {
	switch k {
	case report.ChartLine:
		return excelize.Line
	case report.ChartPie:
		return excelize.Pie
	default:
		return excelize.Col
	}
}

func runs(text string) []excelize.RichTextRun {
	if text == "" {
		return nil
	}
	return []excelize.RichTextRun{{Text: text}}
}

// toChart maps a document chart onto excelize's chart options.
func toChart(c report.Chart) *excelize.Chart {
	ch := &excelize.Chart{
		Type: chartType(c.Kind),
		Series: []excelize.ChartSeries{{
			Name:       c.SeriesName,
			Categories: c.CategoryRange,
			Values:     c.DataRange,
		}},
		Title:     runs(c.Title),
		Dimension: excelize.ChartDimension{Width: cmToPixels(c.Width), Height: cmToPixels(c.Height)},
		Legend:    excelize.ChartLegend{Position: "right"},
	}
	if c.Kind == report.ChartPie {
		ch.PlotArea.ShowPercent = true
		return ch
	}
	ch.XAxis.Title = runs(c.XAxisTitle)
	ch.YAxis.Title = runs(c.YAxisTitle)
	ch.YAxis.MajorGridLines = true
	return ch
}
