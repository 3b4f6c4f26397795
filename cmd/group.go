package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group <file> <group-column> <value-column>",
	Short: "Print the mean of a numeric column for each distinct group key",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, src, err := openAnalyzer(args[0])
		if err != nil {
			return err
		}
		defer src.Close()
		groups, err := a.GroupAverage(args[1], args[2])
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", g.Key, formatNum(g.Mean))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(groupCmd)
}
