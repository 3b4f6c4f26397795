package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sortDesc   bool
	sortOutput string
)

var sortCmd = &cobra.Command{
	Use:   "sort <file> <column> [desc]",
	Short: "Sort rows by a numeric column and export them to a new file",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc := sortDesc
		if len(args) == 3 {
			if args[2] != "desc" && args[2] != "asc" {
				return fmt.Errorf("invalid sort direction %q (use asc or desc)", args[2])
			}
			desc = args[2] == "desc"
		}
		out := sortOutput
		if out == "" {
			out = "sorted_output.csv"
			if cfg != nil && cfg.OutputPath != "" {
				out = cfg.OutputPath
			}
		}

		a, src, err := openAnalyzer(args[0])
		if err != nil {
			return err
		}
		defer src.Close()
		rows, err := a.SortByColumn(args[1], desc)
		if err != nil {
			return err
		}
		if err := a.Export(out, a.Headers(), rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sorted data exported to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().BoolVar(&sortDesc, "desc", false, "sort in descending order")
	sortCmd.Flags().StringVarP(&sortOutput, "output", "o", "", "output path (default from config output_path, sorted_output.csv)")
}
