package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/colprofile-cli/internal/parser"
	"github.com/KaramelBytes/colprofile-cli/internal/utils"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	abGroupBy    string
	abOutDir     string
	abDelimiter  string
	abSheetName  string
	abSheetIndex int
	abParallel   int
	abQuiet      bool
	abFailFast   bool
)

// batchItem is the outcome of one file in a batch.
type batchItem struct {
	Input  string
	Output string
	Rows   int
	Err    error
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Profile many CSV/TSV/XLSX files concurrently, one report each",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := utils.ExpandGlobs(args)
		if err != nil {
			return err
		}
		var inputs []string
		for _, f := range files {
			if !parser.Supported(f) {
				if !abQuiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Skipping unsupported file: %s\n", f)
				}
				continue
			}
			inputs = append(inputs, f)
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(inputs)

		opt := baseOptions()
		opt.GroupBy = abGroupBy
		if abDelimiter != "" {
			d, err := parseDelimiter(abDelimiter)
			if err != nil {
				return err
			}
			opt.Load.Delimiter = d
		}
		selectSheet(&opt.Load, abSheetName, abSheetIndex)
		parallel := abParallel
		if parallel <= 0 {
			parallel = opt.Workers
		}
		// Files already run side by side; keep per-file column work sequential.
		opt.Workers = 1

		runID := uuid.NewString()
		runLog := log.WithField("run_id", runID)
		runLog.WithFields(logrus.Fields{"files": len(inputs), "parallel": parallel}).Debug("starting batch")

		var progressOut io.Writer = cmd.ErrOrStderr()
		if abQuiet {
			progressOut = io.Discard
		}
		bar := progressbar.NewOptions(len(inputs),
			progressbar.OptionSetWriter(progressOut),
			progressbar.OptionSetDescription("Analyzing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
			}),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)

		// Resolve outputs up front so same-named inputs from different
		// directories never race on one report path.
		outputs := make([]string, len(inputs))
		taken := map[string]bool{}
		for i, in := range inputs {
			o, err := outputFor(in, "", abOutDir)
			if err != nil {
				return err
			}
			outputs[i] = uniqueOutput(o, taken)
		}

		items := make([]batchItem, len(inputs))
		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(parallel)
		for i, in := range inputs {
			i, in := i, in
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					items[i] = batchItem{Input: in, Err: err}
					return nil
				}
				fileOpt := opt
				fileOpt.ReportID = runID
				fileOpt.Logger = runLog.WithField("file", filepath.Base(in))
				res, err := runPipeline(in, outputs[i], fileOpt)
				items[i] = batchItem{Input: in, Output: res.Output, Rows: res.Result.Rows, Err: err}
				_ = bar.Add(1)
				if err != nil && abFailFast {
					return err
				}
				return nil
			})
		}
		waitErr := g.Wait()
		_ = bar.Finish()

		out := cmd.OutOrStdout()
		failed := 0
		for _, it := range items {
			if it.Err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", filepath.Base(it.Input), it.Err)
				continue
			}
			if !abQuiet {
				fmt.Fprintf(out, "✓ %s → %s (%d rows)\n", filepath.Base(it.Input), it.Output, it.Rows)
			}
		}
		if waitErr != nil {
			return waitErr
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(inputs))
		}
		if !abQuiet {
			fmt.Fprintf(out, "✓ Analyzed %d files\n", len(inputs))
		}
		return nil
	},
}

// uniqueOutput appends "__2", "__3", ... before the extension until path is
// not yet taken, then marks it taken.
func uniqueOutput(path string, taken map[string]bool) string {
	cand := path
	ext := filepath.Ext(path)
	for i := 2; taken[cand]; i++ {
		cand = fmt.Sprintf("%s__%d%s", strings.TrimSuffix(path, ext), i, ext)
	}
	taken[cand] = true
	return cand
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVarP(&abGroupBy, "group-by", "g", "", "column to partition rows by in every file")
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory for reports (default next to each input, or output_dir)")
	analyzeBatchCmd.Flags().StringVar(&abDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (auto-detect if omitted)")
	analyzeBatchCmd.Flags().StringVar(&abSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeBatchCmd.Flags().IntVar(&abSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeBatchCmd.Flags().IntVar(&abParallel, "parallel", 0, "files processed concurrently (default: workers from config)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
	analyzeBatchCmd.Flags().BoolVar(&abFailFast, "fail-fast", false, "stop scheduling files after the first failure")
}
