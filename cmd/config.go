package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/colprofile-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set colprofile configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "workers: %d\n", cfg.Workers)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "histogram_max_values: %d\n", cfg.HistogramMaxValues)
		fmt.Fprintf(out, "pie_max_categories: %d\n", cfg.PieMaxCategories)
		fmt.Fprintf(out, "band_rows: %d\n", cfg.BandRows)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

func positiveInt(key, val string) (int, error) {
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	return i, nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		var err error
		switch key {
		case "output_dir":
			cfg.OutputDir = val
		case "workers":
			cfg.Workers, err = positiveInt(key, val)
		case "delimiter":
			if _, err = parseDelimiter(val); err == nil {
				cfg.Delimiter = val
			}
		case "sheet_name":
			cfg.SheetName = val
		case "histogram_max_values":
			cfg.HistogramMaxValues, err = positiveInt(key, val)
		case "pie_max_categories":
			cfg.PieMaxCategories, err = positiveInt(key, val)
		case "band_rows":
			cfg.BandRows, err = positiveInt(key, val)
		case "log_format":
			switch val {
			case "text", "json":
				cfg.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use text or json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
