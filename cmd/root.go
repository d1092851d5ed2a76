package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/colprofile-cli/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "colprofile",
	Short: "Profile the columns of a CSV/XLSX file into a navigable Excel report",
	Long: `colprofile reads a tabular file, computes per-column statistics and frequency
distributions (optionally per group of a column), and writes an Excel workbook
with an index sheet, one sheet per column, and an overview of all charts.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.colprofile/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text | json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{Workers: 4, HistogramMaxValues: 50, PieMaxCategories: 20, BandRows: 18, LogFormat: "text"}
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("log-format") && logFormat != "" {
		cfg.LogFormat = logFormat
	}
	configureLogger()
}

func configureLogger() {
	log.SetOutput(os.Stderr)
	if cfg != nil && cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}
