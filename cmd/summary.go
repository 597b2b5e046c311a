package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/nhanes-cli/internal/render"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the report as plain text",
	Long:  `Runs the same report sections against the terminal: narrative as text, tables as grids and every chart as its box summary.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		res, err := buildReport(cmd.Context(), c, render.NewTerminal(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		if debug && res.Overview != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), res.Overview.Markdown())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
