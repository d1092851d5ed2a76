package report

import (
	"strconv"

	"github.com/KaramelBytes/colprofile-cli/internal/dataset"
)

// ExcelFormat is the custom number format the writer applies for a role.
// General has no custom format.
func ExcelFormat(f NumberFormat) string {
	switch f {
	case Fixed2:
		return "0.00"
	case Percent2:
		return `0.00"%"`
	default:
		return ""
	}
}

// Display renders a cell the way the writer's number format shows it.
func Display(c Cell) string {
	if c.Kind == CellString {
		return c.Text
	}
	switch c.Format {
	case Fixed2:
		return strconv.FormatFloat(c.Num, 'f', 2, 64)
	case Percent2:
		return strconv.FormatFloat(c.Num, 'f', 2, 64) + "%"
	default:
		return dataset.FormatNumber(c.Num)
	}
}
