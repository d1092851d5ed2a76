package dataset

import (
	"sort"
)

// MissingGroupLabel labels the partition of rows whose grouping cell is empty.
const MissingGroupLabel = "(blank)"

// Group is one partition produced by GroupRows.
type Group struct {
	Label string
	Key   Cell
	Rows  []int
}

// GroupRows partitions row indices by the distinct values of a column.
//
// Rows keep their original order within each group. Groups are ordered by
// ascending key: numerically for numeric columns, by label otherwise. Rows
// with a missing key form a trailing MissingGroupLabel group so that every
// row belongs to exactly one group.
func (d *Dataset) GroupRows(name string) ([]Group, bool) {
	col, ok := d.Column(name)
	if !ok {
		return nil, false
	}
	numeric := col.Storage == Numeric

	type acc struct {
		g   *Group
		num float64
	}
	byKey := map[string]*acc{}
	var order []*acc
	var missing *Group
	for i, c := range col.Cells {
		if c.Missing {
			if missing == nil {
				missing = &Group{Label: MissingGroupLabel, Key: MissingCell()}
			}
			missing.Rows = append(missing.Rows, i)
			continue
		}
		key := c.Display()
		var num float64
		if numeric {
			if f, ok := c.Float(); ok {
				if f == 0 {
					f = 0 // fold -0 into 0
				}
				num = f
				key = FormatNumber(f)
			}
		}
		a := byKey[key]
		if a == nil {
			a = &acc{g: &Group{Label: key, Key: c}, num: num}
			byKey[key] = a
			order = append(order, a)
		}
		a.g.Rows = append(a.g.Rows, i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		if numeric {
			return order[i].num < order[j].num
		}
		return order[i].g.Label < order[j].g.Label
	})
	out := make([]Group, 0, len(order)+1)
	for _, a := range order {
		out = append(out, *a.g)
	}
	if missing != nil {
		out = append(out, *missing)
	}
	return out, true
}
