package export

import (
	"fmt"

	"github.com/KaramelBytes/colprofile-cli/internal/report"
	"github.com/xuri/excelize/v2"
)

const (
	bannerFill = "366092"
	headerFill = "D9E1F2"
	linkColor  = "0563C1"
)

type styleKey struct {
	role   report.Style
	format report.NumberFormat
}

// styleCache creates each (role, format) style once per workbook.
type styleCache struct {
	f   *excelize.File
	ids map[styleKey]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: map[styleKey]int{}}
}

func (c *styleCache) id(role report.Style, format report.NumberFormat) (int, error) {
	k := styleKey{role, format}
	if id, ok := c.ids[k]; ok {
		return id, nil
	}
	st := styleFor(role)
	if nf := report.ExcelFormat(format); nf != "" {
		st.CustomNumFmt = &nf
	}
	id, err := c.f.NewStyle(st)
	if err != nil {
		return 0, fmt.Errorf("new style: %w", err)
	}
	c.ids[k] = id
	return id, nil
}

func solid(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func styleFor(role report.Style) *excelize.Style {
	switch role {
	case report.StyleBanner:
		return &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"}, Fill: solid(bannerFill)}
	case report.StyleSheetBanner:
		return &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"}, Fill: solid(bannerFill)}
	case report.StyleHeader:
		return &excelize.Style{Font: &excelize.Font{Bold: true}, Fill: solid(headerFill)}
	case report.StyleBold:
		return &excelize.Style{Font: &excelize.Font{Bold: true}}
	case report.StyleSection:
		return &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}
	case report.StyleChartLabel:
		return &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}}
	case report.StyleLink:
		return &excelize.Style{Font: &excelize.Font{Color: linkColor, Underline: "single"}}
	case report.StyleNote:
		return &excelize.Style{Font: &excelize.Font{Size: 11}}
	default:
		return &excelize.Style{}
	}
}
