package cmd

import (
	"fmt"

	"github.com/KaramelBytes/csvtool/internal/table"
	"github.com/spf13/cobra"
)

var headersCmd = &cobra.Command{
	Use:   "headers <file>",
	Short: "List column names in file order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := table.Open(args[0])
		if err != nil {
			return err
		}
		defer src.Close()
		for _, h := range src.Headers() {
			fmt.Fprintln(cmd.OutOrStdout(), h)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headersCmd)
}
