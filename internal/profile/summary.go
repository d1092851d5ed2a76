package profile

import (
	"fmt"
	"strings"
)

// Summary renders a plain-text report suitable for the terminal.
func (r Result) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	b.WriteString(rule + "\n")
	if r.Grouped() {
		b.WriteString(fmt.Sprintf("ANALYSIS RESULTS (Grouped by: %s)\n", r.GroupColumn))
	} else {
		b.WriteString("ANALYSIS RESULTS (Ungrouped)\n")
	}
	b.WriteString(rule + "\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))

	if !r.Grouped() {
		for _, c := range r.Columns {
			b.WriteString("\n" + strings.Repeat("─", 80) + "\n")
			b.WriteString(fmt.Sprintf("Column: %s\n", c.Name))
			b.WriteString(strings.Repeat("─", 80) + "\n")
			writeColumn(&b, c, "  ")
		}
		return b.String()
	}
	for _, g := range r.Groups {
		b.WriteString("\n" + strings.Repeat("═", 80) + "\n")
		b.WriteString(fmt.Sprintf("GROUP: %s (%d rows)\n", g.Label, g.RowCount))
		b.WriteString(strings.Repeat("═", 80) + "\n")
		for _, c := range g.Columns {
			b.WriteString(fmt.Sprintf("\n  Column: %s\n", c.Name))
			b.WriteString("  " + strings.Repeat("-", 76) + "\n")
			writeColumn(&b, c, "    ")
		}
	}
	return b.String()
}

func writeColumn(b *strings.Builder, c ColumnProfile, indent string) {
	switch c.Kind {
	case Quantitative:
		q := c.Quantitative
		if q == nil {
			return
		}
		b.WriteString(indent + "Type: QUANTITATIVE (Numeric)\n\n")
		stats := []struct {
			label string
			value string
		}{
			{"Count", fmt.Sprintf("%d", q.Count)},
			{"Minimum", fmt.Sprintf("%.2f", q.Min)},
			{"25th Percentile", fmt.Sprintf("%.2f", q.P25)},
			{"Median (50th)", fmt.Sprintf("%.2f", q.P50)},
			{"75th Percentile", fmt.Sprintf("%.2f", q.P75)},
			{"Maximum", fmt.Sprintf("%.2f", q.Max)},
			{"Average", fmt.Sprintf("%.2f", q.Mean)},
			{"Sum", fmt.Sprintf("%.2f", q.Sum)},
			{"% of Total", fmt.Sprintf("%.2f%%", q.PercentOfGrandTotal)},
		}
		for _, s := range stats {
			b.WriteString(fmt.Sprintf("%s%-17s%s\n", indent, s.label+":", s.value))
		}
		b.WriteString("\n" + indent + "Frequency Distribution:\n")
		b.WriteString(fmt.Sprintf("%s%-15s %-10s %-12s %-15s %s\n", indent, "Value", "Freq", "% Count", "Value Sum", "% of Total"))
		b.WriteString(fmt.Sprintf("%s%s %s %s %s %s\n", indent,
			strings.Repeat("-", 15), strings.Repeat("-", 10), strings.Repeat("-", 12), strings.Repeat("-", 15), strings.Repeat("-", 12)))
		for _, f := range q.Frequency {
			b.WriteString(fmt.Sprintf("%s%-15.2f %-10d %-12.2f %-15.2f %.2f%%\n", indent, f.Value, f.Frequency, f.PctOfCount, f.ValueSum, f.PctOfColumnSum))
		}
	case Qualitative:
		b.WriteString(indent + "Type: QUALITATIVE (Categorical)\n\n")
		b.WriteString(fmt.Sprintf("%s%-30s %-15s %s\n", indent, "Label", "Frequency", "Percentage"))
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", indent, strings.Repeat("-", 30), strings.Repeat("-", 15), strings.Repeat("-", 15)))
		for _, row := range c.Qualitative {
			b.WriteString(fmt.Sprintf("%s%-30s %-15d %.2f%%\n", indent, safeVal(row.Label), row.Frequency, row.PctOfCount))
		}
	}
}

func safeVal(s string) string { return strings.ReplaceAll(s, "\n", " ") }
