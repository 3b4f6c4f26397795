package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/KaramelBytes/csvtool/internal/analysis"
	cfgpkg "github.com/KaramelBytes/csvtool/internal/config"
	"github.com/KaramelBytes/csvtool/internal/logging"
	"github.com/KaramelBytes/csvtool/internal/table"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "csvtool <file> [operation] [args...]",
	Short: "csvtool: quick filtering, grouping, extrema and sorting for CSV files",
	Long: `csvtool loads a comma-delimited file with a header line and runs one analysis per invocation.

The original flag form is still accepted:
  csvtool data.csv -max <column>
  csvtool data.csv -sort <column> [desc]`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("usage: csvtool <filename.csv> [options]")
		}
		// The input must still open even when no operation is requested.
		src, err := table.Open(args[0])
		if err != nil {
			return err
		}
		defer src.Close()
		fmt.Fprintln(cmd.OutOrStdout(), "No operation specified or unsupported args.")
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	args = legacyArgs(args)
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.csvtool/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(rootCmd.ErrOrStderr(), "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{OutputPath: "sorted_output.csv", ParallelSortMinRows: 50000, LogLevel: "warn", LogFormat: "text"}
	}
	cfg = c

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logging.Setup(level, cfg.LogFormat, rootCmd.ErrOrStderr())
}

// openAnalyzer opens path and wraps it with analyzer settings from config.
// The caller closes the returned source.
func openAnalyzer(path string) (*analysis.Analyzer, *table.Source, error) {
	src, err := table.Open(path)
	if err != nil {
		return nil, nil, err
	}
	opt := analysis.DefaultOptions()
	if cfg != nil {
		opt.SortWorkers = cfg.SortWorkers
		opt.ParallelSortMinRows = cfg.ParallelSortMinRows
		opt.Compress = cfg.CompressOutput
	}
	return analysis.New(src, opt), src, nil
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
