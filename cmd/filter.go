package cmd

import (
	"fmt"

	"github.com/KaramelBytes/csvtool/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	filterWhere  []string
	filterOutput string
)

var filterCmd = &cobra.Command{
	Use:   "filter <file>",
	Short: "Keep rows matching every --where clause",
	Long: `Keep rows matching every --where clause and print them, header first.

Clauses have the form <column><op><value>:
  ==, =, !=        exact text comparison
  <, <=, >, >=     numeric comparison`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, src, err := openAnalyzer(args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		preds := make([]analysis.Predicate, 0, len(filterWhere))
		for _, w := range filterWhere {
			p, err := a.Where(w)
			if err != nil {
				return err
			}
			preds = append(preds, p)
		}
		rows, err := a.Filter(analysis.All(preds...))
		if err != nil {
			return err
		}
		if filterOutput != "" {
			if err := a.Export(filterOutput, a.Headers(), rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filtered %d rows exported to %s\n", len(rows), filterOutput)
			return nil
		}
		return analysis.WriteRows(cmd.OutOrStdout(), a.Headers(), rows)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().StringArrayVarP(&filterWhere, "where", "w", nil, "filter clause <column><op><value> (repeatable)")
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "optional path to write matching rows")
}
