package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/sortbench"
	"github.com/hupe1980/sortbench/config"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "sortbench",
		Short: "Benchmark comparison sorts on genealogy records",
		Long: `sortbench generates random genealogy records, sorts a private copy of each
dataset with bubble sort, shaker sort, heap sort and the standard library sort,
and records one timing row per input size.

Records are ordered by birth year, then full name, then children count.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text, json")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newSummaryCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the config file and applies the persistent flags.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig) (*sortbench.Logger, error) {
	level, err := sortbench.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return sortbench.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return sortbench.NewLogger(slog.NewTextHandler(w, opts)), nil
}
