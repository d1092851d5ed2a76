// Package profile defines the analysis result handed from the analysis engine
// to the report builder. Values are produced once per run and never mutated.
package profile

import "strings"

// Kind tags a column as quantitative or qualitative.
type Kind string

const (
	Quantitative Kind = "quantitative"
	Qualitative  Kind = "qualitative"
)

// Upper returns the kind as shown in the report index ("QUANTITATIVE").
func (k Kind) Upper() string { return strings.ToUpper(string(k)) }

// FrequencyRow is one distinct numeric value and its aggregates.
type FrequencyRow struct {
	Value          float64 `json:"value"`
	Frequency      int     `json:"frequency"`
	PctOfCount     float64 `json:"pct_of_count"`
	ValueSum       float64 `json:"value_sum"`
	PctOfColumnSum float64 `json:"pct_of_column_sum"`
}

// QuantitativeProfile summarizes a numeric column (or one group's slice of it).
type QuantitativeProfile struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	Sum   float64 `json:"sum"`
	// PercentOfGrandTotal is Sum over the full, ungrouped column sum, in percent.
	PercentOfGrandTotal float64        `json:"percent_of_grand_total"`
	Frequency           []FrequencyRow `json:"frequency"`
}

// CategoryRow is one label of a qualitative column.
type CategoryRow struct {
	Label      string  `json:"label"`
	Frequency  int     `json:"frequency"`
	PctOfCount float64 `json:"pct_of_count"`
}

// QualitativeProfile is ordered by descending frequency.
type QualitativeProfile []CategoryRow

// ColumnProfile is the tagged profile of one column. Exactly one payload is
// set, matching Kind.
type ColumnProfile struct {
	Name         string               `json:"name"`
	Kind         Kind                 `json:"kind"`
	Quantitative *QuantitativeProfile `json:"quantitative,omitempty"`
	Qualitative  QualitativeProfile   `json:"qualitative,omitempty"`
}

// GroupProfile holds the column profiles of one partition.
type GroupProfile struct {
	Label    string          `json:"label"`
	RowCount int             `json:"row_count"`
	Columns  []ColumnProfile `json:"columns"`
}

// Result is either ungrouped (Columns set) or grouped (GroupColumn and Groups set).
type Result struct {
	Source      string          `json:"source"`
	Rows        int             `json:"rows"`
	GroupColumn string          `json:"group_column,omitempty"`
	Columns     []ColumnProfile `json:"columns,omitempty"`
	Groups      []GroupProfile  `json:"groups,omitempty"`
}

// Grouped reports whether the result was partitioned by a column.
func (r Result) Grouped() bool { return r.GroupColumn != "" }

