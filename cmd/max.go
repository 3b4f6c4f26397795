package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var maxCmd = &cobra.Command{
	Use:   "max <file> <column>",
	Short: "Print the maximum and minimum numeric value of a column",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, src, err := openAnalyzer(args[0])
		if err != nil {
			return err
		}
		defer src.Close()
		column := args[1]
		maxVal, minVal, err := a.Extrema(column)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Max %s: %s, Min: %s\n", column, formatNum(maxVal), formatNum(minVal))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(maxCmd)
}
