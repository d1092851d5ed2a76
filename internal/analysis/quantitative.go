package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/colprofile-cli/internal/dataset"
	"github.com/KaramelBytes/colprofile-cli/internal/profile"
	"github.com/montanaflynn/stats"
)

// AnalyzeQuantitative profiles a numeric column over rows (nil means every
// row). Non-numeric and missing cells are dropped. It returns false when no
// numeric value remains, which callers treat as "skip this column".
//
// PercentOfGrandTotal is always relative to the whole column, so a group's
// profile shows its share of the overall sum.
func AnalyzeQuantitative(ds *dataset.Dataset, column string, rows []int) (*profile.QuantitativeProfile, bool) {
	col, ok := ds.Column(column)
	if !ok {
		return nil, false
	}
	vals := numericValues(col, rows)
	if len(vals) == 0 {
		return nil, false
	}

	total, _ := stats.Sum(vals)
	lo, _ := stats.Min(vals)
	hi, _ := stats.Max(vals)
	mean, _ := stats.Mean(vals)
	grand, _ := stats.Sum(numericValues(col, nil))

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	p := &profile.QuantitativeProfile{
		Count:     len(vals),
		Min:       lo,
		Max:       hi,
		Mean:      mean,
		P25:       quantile(sorted, 0.25),
		P50:       quantile(sorted, 0.50),
		P75:       quantile(sorted, 0.75),
		Sum:       total,
		Frequency: frequencyRows(sorted, total),
	}
	if grand != 0 {
		p.PercentOfGrandTotal = total / grand * 100
	}
	return p, true
}

func numericValues(col *dataset.Column, rows []int) []float64 {
	var out []float64
	add := func(c dataset.Cell) {
		if f, ok := c.Float(); ok && !math.IsInf(f, 0) {
			out = append(out, f)
		}
	}
	if rows == nil {
		out = make([]float64, 0, len(col.Cells))
		for _, c := range col.Cells {
			add(c)
		}
		return out
	}
	out = make([]float64, 0, len(rows))
	for _, r := range rows {
		if r >= 0 && r < len(col.Cells) {
			add(col.Cells[r])
		}
	}
	return out
}

// frequencyRows groups sorted values by exact equality, ascending.
func frequencyRows(sorted []float64, total float64) []profile.FrequencyRow {
	n := len(sorted)
	var out []profile.FrequencyRow
	for i := 0; i < n; {
		j := i
		for j < n && sorted[j] == sorted[i] {
			j++
		}
		v := sorted[i]
		cnt := j - i
		row := profile.FrequencyRow{
			Value:      v,
			Frequency:  cnt,
			PctOfCount: float64(cnt) / float64(n) * 100,
			ValueSum:   v * float64(cnt),
		}
		if total != 0 {
			row.PctOfColumnSum = row.ValueSum / total * 100
		}
		out = append(out, row)
		i = j
	}
	return out
}

// quantile uses linear interpolation between the order statistics bracketing
// q*(n-1).
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
