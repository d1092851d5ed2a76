package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/colprofile-cli/internal/analysis"
	"github.com/KaramelBytes/colprofile-cli/internal/export"
	"github.com/KaramelBytes/colprofile-cli/internal/parser"
	"github.com/KaramelBytes/colprofile-cli/internal/profile"
	"github.com/KaramelBytes/colprofile-cli/internal/report"
	"github.com/KaramelBytes/colprofile-cli/internal/utils"
	"github.com/sirupsen/logrus"
)

// pipelineOptions carries everything one load → analyze → build → write run needs.
type pipelineOptions struct {
	GroupBy  string
	Load     parser.Options
	Workers  int
	Report   report.Options
	ReportID string
	Logger   logrus.FieldLogger
}

// pipelineResult is what a run produced.
type pipelineResult struct {
	Result profile.Result
	Sheets int
	Output string
}

// runPipeline loads input, profiles it, and writes the report to output.
// An empty output skips the report.
func runPipeline(input, output string, opt pipelineOptions) (pipelineResult, error) {
	var out pipelineResult
	logger := opt.Logger
	if logger == nil {
		logger = log
	}
	ds, err := parser.Load(input, opt.Load)
	if err != nil {
		return out, fmt.Errorf("load %s: %w", filepath.Base(input), err)
	}
	logger.WithFields(logrus.Fields{"file": input, "rows": ds.Len(), "columns": len(ds.Columns())}).Debug("loaded dataset")

	aopt := analysis.Options{Workers: opt.Workers, Logger: logger}
	if opt.GroupBy != "" {
		out.Result, err = analysis.AnalyzeByGroup(ds, opt.GroupBy, aopt)
		if err != nil {
			return out, err
		}
	} else {
		out.Result = analysis.AnalyzeAll(ds, aopt)
	}
	if output == "" {
		return out, nil
	}

	doc := report.Build(out.Result, opt.Report)
	if err := export.WriteXLSX(doc, output, export.Options{Logger: logger, ReportID: opt.ReportID}); err != nil {
		return out, err
	}
	out.Sheets = len(doc.Sheets)
	out.Output = output
	return out, nil
}

// baseOptions builds pipeline options from the loaded config.
func baseOptions() pipelineOptions {
	opt := pipelineOptions{
		Workers: 4,
		Report:  report.DefaultOptions(),
		Logger:  log,
	}
	if cfg == nil {
		return opt
	}
	if cfg.Workers > 0 {
		opt.Workers = cfg.Workers
	}
	if cfg.HistogramMaxValues > 0 {
		opt.Report.HistogramMaxValues = cfg.HistogramMaxValues
	}
	if cfg.PieMaxCategories > 0 {
		opt.Report.PieMaxCategories = cfg.PieMaxCategories
	}
	if cfg.BandRows > 0 {
		opt.Report.BandRows = cfg.BandRows
	}
	if cfg.SheetName != "" {
		opt.Load.SheetName = cfg.SheetName
	}
	if cfg.Delimiter != "" {
		if d, err := parseDelimiter(cfg.Delimiter); err == nil {
			opt.Load.Delimiter = d
		}
	}
	return opt
}

// selectSheet applies the --sheet-name/--sheet-index flags. An explicit
// index overrides a sheet name that came from config.
func selectSheet(load *parser.Options, name string, index int) {
	switch {
	case name != "":
		load.SheetName = name
	case index > 0:
		load.SheetName = ""
		load.SheetIndex = index
	}
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",", "comma":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";", "semicolon":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s (use ',' | ';' | 'tab' | '|')", s)
	}
}

// outputFor resolves the report path for input, honoring an explicit path,
// then a directory, then the configured output_dir.
func outputFor(input, explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if dir == "" && cfg != nil {
		dir = cfg.OutputDir
	}
	if dir != "" {
		if err := utils.EnsureDir(dir); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	return utils.ReportPath(input, dir), nil
}
