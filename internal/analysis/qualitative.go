package analysis

import (
	"sort"

	"github.com/KaramelBytes/colprofile-cli/internal/dataset"
	"github.com/KaramelBytes/colprofile-cli/internal/profile"
)

// AnalyzeQualitative counts labels over rows (nil means every row). Missing
// cells are excluded from both labels and the percentage denominator. Rows
// are ordered by descending frequency; ties keep first-seen order. The result
// is empty, never nil-as-error, when the column has no values.
func AnalyzeQualitative(ds *dataset.Dataset, column string, rows []int) profile.QualitativeProfile {
	col, ok := ds.Column(column)
	if !ok {
		return profile.QualitativeProfile{}
	}
	counts := map[string]int{}
	var order []string
	total := 0
	visit := func(c dataset.Cell) {
		if c.Missing {
			return
		}
		label := c.Display()
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
		total++
	}
	if rows == nil {
		for _, c := range col.Cells {
			visit(c)
		}
	} else {
		for _, r := range rows {
			if r >= 0 && r < len(col.Cells) {
				visit(col.Cells[r])
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	out := make(profile.QualitativeProfile, 0, len(order))
	for _, label := range order {
		out = append(out, profile.CategoryRow{
			Label:      label,
			Frequency:  counts[label],
			PctOfCount: float64(counts[label]) / float64(total) * 100,
		})
	}
	return out
}
