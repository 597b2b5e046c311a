package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/nhanes-cli/internal/charts"
	"github.com/KaramelBytes/nhanes-cli/internal/render"
	"github.com/KaramelBytes/nhanes-cli/internal/utils"
)

var (
	reportOut        string
	reportFiguresDir string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the report to a standalone HTML page",
	Long: `Loads the survey data, runs every report section and writes a single HTML page.
With --figures-dir each chart is also exported as its own HTML file named after its id.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := c.OutputPath
		if reportOut != "" {
			out = reportOut
		}

		page := render.NewPage(c.PlotlyJSURL)
		if _, err := buildReport(cmd.Context(), c, page); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := page.Render(&buf); err != nil {
			return fmt.Errorf("render page: %w", err)
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return err
		}
		infof("Wrote report %s to %s (%d charts)", page.ID, out, len(page.Charts()))

		if reportFiguresDir == "" {
			return nil
		}
		for _, ch := range page.Charts() {
			path := filepath.Join(reportFiguresDir, ch.ID+".html")
			if err := charts.Export(ch.Fig, path); err != nil {
				return err
			}
			debugf("exported %s", path)
		}
		infof("Exported %d figures to %s", len(page.Charts()), reportFiguresDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "output HTML file (default from config output_path)")
	reportCmd.Flags().StringVar(&reportFiguresDir, "figures-dir", "", "also export each chart as a standalone HTML file into this directory")
}
