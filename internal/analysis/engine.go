// Package analysis computes per-column profiles from a dataset.
//
// Every function here is pure over (Dataset, params): nothing is cached and
// the dataset is only read, so columns can be profiled in parallel.
package analysis

import (
	"io"
	"runtime"
	"time"

	"github.com/KaramelBytes/colprofile-cli/internal/dataset"
	"github.com/KaramelBytes/colprofile-cli/internal/profile"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options controls analysis execution. It never changes results.
type Options struct {
	// Workers bounds concurrent column analyses. <= 1 runs sequentially.
	Workers int
	// Logger receives debug timings. Nil discards.
	Logger logrus.FieldLogger
}

// DefaultOptions returns reasonable defaults for dataset analysis.
func DefaultOptions() Options {
	return Options{Workers: runtime.NumCPU()}
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Classify decides the column kind once, from its declared storage.
func Classify(col *dataset.Column) profile.Kind {
	if col.Storage == dataset.Numeric {
		return profile.Quantitative
	}
	return profile.Qualitative
}

// AnalyzeColumn dispatches to the analyzer matching the column kind. It
// returns false when the column has nothing renderable.
func AnalyzeColumn(ds *dataset.Dataset, name string, rows []int) (profile.ColumnProfile, bool) {
	col, ok := ds.Column(name)
	if !ok {
		return profile.ColumnProfile{}, false
	}
	cp := profile.ColumnProfile{Name: name, Kind: Classify(col)}
	switch cp.Kind {
	case profile.Quantitative:
		q, ok := AnalyzeQuantitative(ds, name, rows)
		if !ok {
			return profile.ColumnProfile{}, false
		}
		cp.Quantitative = q
	default:
		q := AnalyzeQualitative(ds, name, rows)
		if len(q) == 0 {
			return profile.ColumnProfile{}, false
		}
		cp.Qualitative = q
	}
	return cp, true
}

// AnalyzeAll profiles every column of the dataset. Columns with no usable
// data are omitted.
func AnalyzeAll(ds *dataset.Dataset, opt Options) profile.Result {
	log := opt.logger()
	start := time.Now()
	names := ds.Columns()
	res := profile.Result{Source: ds.Name(), Rows: ds.Len()}
	res.Columns = analyzeColumns(ds, names, nil, opt.Workers)
	log.WithFields(logrus.Fields{
		"columns":  len(names),
		"profiled": len(res.Columns),
		"elapsed":  time.Since(start).String(),
	}).Debug("analyzed dataset")
	return res
}

// AnalyzeByGroup partitions the dataset by groupColumn and profiles every
// other column within each partition. Groups follow ascending key order.
func AnalyzeByGroup(ds *dataset.Dataset, groupColumn string, opt Options) (profile.Result, error) {
	groups, ok := ds.GroupRows(groupColumn)
	if !ok {
		return profile.Result{}, &ColumnNotFoundError{Column: groupColumn, Available: ds.Columns()}
	}
	log := opt.logger()
	start := time.Now()

	var names []string
	for _, n := range ds.Columns() {
		if n != groupColumn {
			names = append(names, n)
		}
	}
	res := profile.Result{
		Source:      ds.Name(),
		Rows:        ds.Len(),
		GroupColumn: groupColumn,
		Groups:      make([]profile.GroupProfile, len(groups)),
	}
	for i, g := range groups {
		res.Groups[i] = profile.GroupProfile{
			Label:    g.Label,
			RowCount: len(g.Rows),
			Columns:  analyzeColumns(ds, names, g.Rows, opt.Workers),
		}
		log.WithFields(logrus.Fields{
			"group":    g.Label,
			"rows":     len(g.Rows),
			"profiled": len(res.Groups[i].Columns),
		}).Debug("analyzed group")
	}
	log.WithFields(logrus.Fields{
		"group_column": groupColumn,
		"groups":       len(groups),
		"elapsed":      time.Since(start).String(),
	}).Debug("analyzed dataset by group")
	return res, nil
}

// analyzeColumns runs AnalyzeColumn for each name, writing into a slot per
// column so output order matches input order regardless of workers.
func analyzeColumns(ds *dataset.Dataset, names []string, rows []int, workers int) []profile.ColumnProfile {
	slots := make([]profile.ColumnProfile, len(names))
	found := make([]bool, len(names))
	if workers <= 1 {
		for i, n := range names {
			slots[i], found[i] = AnalyzeColumn(ds, n, rows)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for i, n := range names {
			i, n := i, n
			g.Go(func() error {
				slots[i], found[i] = AnalyzeColumn(ds, n, rows)
				return nil
			})
		}
		// closures never fail; Wait only joins them
		g.Wait()
	}
	out := make([]profile.ColumnProfile, 0, len(names))
	for i := range slots {
		if found[i] {
			out = append(out, slots[i])
		}
	}
	return out
}
