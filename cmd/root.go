package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/nhanes-cli/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Override config if set
	flagHTTPTimeoutSec int
	flagData           string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "nhanes",
	Short: "NHANES univariate analysis report",
	Long: `nhanes loads the NHANES 2015-2016 survey extract, derives categorical recodings and renders
the univariate analysis report as a standalone HTML page, a local web page or plain text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errorf("Error: %v", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.nhanes/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "survey CSV URL or local path (overrides config)")
}

func loadConfig() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warnf("Warning: failed to read .env: %v", err)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: config set can still write a fresh file
		warnf("Warning: failed to load config: %v", err)
		return
	}
	cfg = c
	applyOverrides(cfg)
}

func applyOverrides(c *cfgpkg.Global) {
	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		c.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("data") && flagData != "" {
		c.DataURL = flagData
	}
}

// currentConfig returns the loaded configuration, loading it on first use.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		applyOverrides(cfg)
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	applyOverrides(cfg)
	return cfg, nil
}
