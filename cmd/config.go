package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/nhanes-cli/internal/config"
	"github.com/KaramelBytes/nhanes-cli/internal/survey"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set nhanes configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_url: %s\n", c.DataURL)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", c.HTTPTimeoutSec)
		fmt.Fprintf(out, "listen_addr: %s\n", c.ListenAddr)
		fmt.Fprintf(out, "output_path: %s\n", c.OutputPath)
		fmt.Fprintf(out, "plotly_js_url: %s\n", c.PlotlyJSURL)
		fmt.Fprintf(out, "preview_rows: %d\n", c.PreviewRows)
		fmt.Fprintf(out, "page_title: %s\n", c.PageTitle)
		fmt.Fprintf(out, "age_bins: %s\n", formatBins(c.AgeBins))
		for _, name := range c.RecodeNames() {
			r := c.Recode(name)
			if r.Source == "" {
				continue
			}
			fmt.Fprintf(out, "recode %s: %s -> %s (%s)\n", name, r.Source, r.Target, formatLabels(r.Labels))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		switch key {
		case "data_url":
			c.DataURL = val
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for http_timeout_sec: %v", val)
			}
			c.HTTPTimeoutSec = i
		case "listen_addr":
			c.ListenAddr = val
		case "output_path":
			c.OutputPath = val
		case "plotly_js_url":
			c.PlotlyJSURL = val
		case "preview_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for preview_rows: %v", val)
			}
			c.PreviewRows = i
		case "page_title":
			c.PageTitle = val
		case "age_bins":
			edges, err := parseBins(val)
			if err != nil {
				return err
			}
			c.AgeBins = edges
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		infof("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// parseBins reads comma-separated, strictly increasing stratum edges.
func parseBins(val string) ([]float64, error) {
	var edges []float64
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid age_bins edge %q: %w", part, err)
		}
		edges = append(edges, f)
	}
	if _, err := survey.NewBins(edges); err != nil {
		return nil, fmt.Errorf("invalid age_bins: %w", err)
	}
	return edges, nil
}

func formatBins(edges []float64) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = strconv.FormatFloat(e, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func formatLabels(labels map[int]string) string {
	codes := make([]int, 0, len(labels))
	for c := range labels {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = fmt.Sprintf("%d=%s", c, labels[c])
	}
	return strings.Join(parts, ", ")
}
