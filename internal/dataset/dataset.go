// Package dataset holds an in-memory, read-only table of named columns.
//
// Loaders in internal/parser build a Dataset once; analysis code only reads
// it. Subset returns a new Dataset and never mutates the receiver.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StorageKind is the declared storage type of a column as reported by the loader.
type StorageKind int

const (
	// Text columns hold strings (or a mix of strings and numbers).
	Text StorageKind = iota
	// Numeric columns hold only numbers and missing cells.
	Numeric
)

func (k StorageKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "text"
}

// Cell is a single value: a number, a string, or missing.
type Cell struct {
	Text    string
	Num     float64
	IsNum   bool
	Missing bool
}

// TextCell returns a string cell.
func TextCell(s string) Cell { return Cell{Text: s} }

// NumberCell returns a numeric cell. NaN is stored as missing.
func NumberCell(f float64) Cell {
	if math.IsNaN(f) {
		return Cell{Missing: true}
	}
	return Cell{Num: f, IsNum: true}
}

// MissingCell returns an empty cell.
func MissingCell() Cell { return Cell{Missing: true} }

// Float coerces the cell to a number. Non-numeric text and missing cells
// report false.
func (c Cell) Float() (float64, bool) {
	if c.Missing {
		return 0, false
	}
	if c.IsNum {
		return c.Num, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Display renders the cell as a label. Missing cells render as "".
func (c Cell) Display() string {
	switch {
	case c.Missing:
		return ""
	case c.IsNum:
		return FormatNumber(c.Num)
	default:
		return c.Text
	}
}

// FormatNumber renders a float in its shortest round-trip form ("25", "2.5").
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Column is a named, ordered sequence of cells.
type Column struct {
	Name    string
	Storage StorageKind
	Cells   []Cell
}

// Dataset is an ordered set of equally long columns.
type Dataset struct {
	name  string
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a Dataset. Short columns are padded with missing cells;
// duplicate names get a ".1", ".2", ... suffix.
func New(name string, cols []Column) (*Dataset, error) {
	d := &Dataset{name: name, index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if len(c.Cells) > d.rows {
			d.rows = len(c.Cells)
		}
	}
	for i := range cols {
		c := cols[i]
		colName := uniqueName(c.Name, d.index)
		cells := make([]Cell, d.rows)
		copy(cells, c.Cells)
		for j := len(c.Cells); j < d.rows; j++ {
			cells[j] = MissingCell()
		}
		d.index[colName] = len(d.cols)
		d.cols = append(d.cols, &Column{Name: colName, Storage: c.Storage, Cells: cells})
	}
	if len(d.cols) == 0 {
		return nil, fmt.Errorf("dataset %q has no columns", name)
	}
	return d, nil
}

func uniqueName(name string, seen map[string]int) string {
	if _, ok := seen[name]; !ok {
		return name
	}
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s.%d", name, i)
		if _, ok := seen[cand]; !ok {
			return cand
		}
	}
}

// Name is the source name, usually the file base name.
func (d *Dataset) Name() string { return d.name }

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name
	}
	return out
}

// Column looks up a column by exact name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

// Cell returns the cell at (column, row). Unknown columns or out-of-range
// rows yield a missing cell.
func (d *Dataset) Cell(name string, row int) Cell {
	c, ok := d.Column(name)
	if !ok || row < 0 || row >= d.rows {
		return MissingCell()
	}
	return c.Cells[row]
}

// Subset returns a new Dataset holding only the given rows, in the given
// order, for callers that want a standalone partition. Analysis passes row
// indices instead so shares are measured against the full column.
func (d *Dataset) Subset(rows []int) *Dataset {
	out := &Dataset{name: d.name, index: make(map[string]int, len(d.cols)), rows: len(rows)}
	for i, c := range d.cols {
		cells := make([]Cell, len(rows))
		for j, r := range rows {
			if r >= 0 && r < d.rows {
				cells[j] = c.Cells[r]
			} else {
				cells[j] = MissingCell()
			}
		}
		out.index[c.Name] = i
		out.cols = append(out.cols, &Column{Name: c.Name, Storage: c.Storage, Cells: cells})
	}
	return out
}

// InferStorage reports Numeric when the column has at least one non-missing
// cell and every non-missing cell coerces to a number.
func InferStorage(cells []Cell) StorageKind {
	seen := false
	for _, c := range cells {
		if c.Missing {
			continue
		}
		if _, ok := c.Float(); !ok {
			return Text
		}
		seen = true
	}
	if !seen {
		return Text
	}
	return Numeric
}
