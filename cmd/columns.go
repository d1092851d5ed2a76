package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/colprofile-cli/internal/analysis"
	"github.com/KaramelBytes/colprofile-cli/internal/dataset"
	"github.com/KaramelBytes/colprofile-cli/internal/parser"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	quantStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CC66"))
	qualStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3399FF"))
)

var (
	colSheetName  string
	colSheetIndex int
	colDelimiter  string
)

// columnInfo is one row of the columns listing.
type columnInfo struct {
	Name     string
	Kind     string
	NonEmpty int
	Distinct int
}

func describeColumns(ds *dataset.Dataset) []columnInfo {
	var out []columnInfo
	for _, name := range ds.Columns() {
		col, _ := ds.Column(name)
		seen := map[string]struct{}{}
		info := columnInfo{Name: name, Kind: string(analysis.Classify(col))}
		for _, c := range col.Cells {
			if c.Missing {
				continue
			}
			info.NonEmpty++
			seen[c.Display()] = struct{}{}
		}
		info.Distinct = len(seen)
		out = append(out, info)
	}
	return out
}

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List columns with their detected kind (usable with --group-by)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := parser.Options{SheetName: colSheetName, SheetIndex: colSheetIndex}
		if colDelimiter != "" {
			d, err := parseDelimiter(colDelimiter)
			if err != nil {
				return err
			}
			opt.Delimiter = d
		}
		ds, err := parser.Load(args[0], opt)
		if err != nil {
			return err
		}
		infos := describeColumns(ds)

		width := len("Column")
		for _, c := range infos {
			if len(c.Name) > width {
				width = len(c.Name)
			}
		}
		nameCol := lipgloss.NewStyle().Width(width + 2)
		kindCol := lipgloss.NewStyle().Width(15)
		numCol := lipgloss.NewStyle().Width(10).Align(lipgloss.Right)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%d rows)\n\n", headerStyle.Render(ds.Name()), ds.Len())
		fmt.Fprintln(out, headerStyle.Render(nameCol.Render("Column")+kindCol.Render("Kind")+numCol.Render("Non-empty")+numCol.Render("Distinct")))
		fmt.Fprintln(out, mutedStyle.Render(strings.Repeat("─", width+2+15+20)))
		for _, c := range infos {
			kind := qualStyle.Render(kindCol.Render(c.Kind))
			if c.Kind == "quantitative" {
				kind = quantStyle.Render(kindCol.Render(c.Kind))
			}
			fmt.Fprintln(out, nameCol.Render(c.Name)+kind+numCol.Render(fmt.Sprint(c.NonEmpty))+numCol.Render(fmt.Sprint(c.Distinct)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.Flags().StringVar(&colSheetName, "sheet-name", "", "XLSX: sheet name to inspect")
	columnsCmd.Flags().IntVar(&colSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index")
	columnsCmd.Flags().StringVar(&colDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (auto-detect if omitted)")
}
