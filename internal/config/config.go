package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultDataURL is the NHANES 2015-2016 extract the report was written against.
const DefaultDataURL = "https://raw.githubusercontent.com/ftarantuviez/Data/main/nhanes_2015_2016.csv"

// Recode names used by the report.
const (
	RecodeEducation = "education"
	RecodeGender    = "gender"
	RecodeMarital   = "marital"
)

// Recode is a static code -> label lookup table applied to one source column.
type Recode struct {
	Source string         `mapstructure:"source" yaml:"source"`
	Target string         `mapstructure:"target" yaml:"target"`
	Labels map[int]string `mapstructure:"labels" yaml:"labels"`
}

// Global configuration structure.
type Global struct {
	DataURL        string    `mapstructure:"data_url" yaml:"data_url"`
	HTTPTimeoutSec int       `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	ListenAddr     string    `mapstructure:"listen_addr" yaml:"listen_addr"`
	OutputPath     string    `mapstructure:"output_path" yaml:"output_path"`
	PlotlyJSURL    string    `mapstructure:"plotly_js_url" yaml:"plotly_js_url"`
	PreviewRows    int       `mapstructure:"preview_rows" yaml:"preview_rows"`
	PageTitle      string    `mapstructure:"page_title" yaml:"page_title"`
	AgeBins        []float64 `mapstructure:"age_bins" yaml:"age_bins"`

	// Code -> label tables keyed by recode name (education, gender, marital).
	Recodes map[string]Recode `mapstructure:"recodes" yaml:"recodes,omitempty"`
}

// DefaultRecodes returns the NHANES lookup tables used when the config file does not override them.
func DefaultRecodes() map[string]Recode {
	return map[string]Recode{
		RecodeEducation: {
			Source: "DMDEDUC2",
			Target: "DMDEDUC2x",
			Labels: map[int]string{1: "<9", 2: "9-11", 3: "HS/GED", 4: "Some college/AA", 5: "College", 7: "Refused", 9: "Don't know"},
		},
		RecodeGender: {
			Source: "RIAGENDR",
			Target: "RIAGENDRx",
			Labels: map[int]string{1: "Male", 2: "Female"},
		},
		RecodeMarital: {
			Source: "DMDMARTL",
			Target: "DMDMARTLx",
			Labels: map[int]string{1: "Married", 2: "Widowed", 3: "Divorced", 4: "Separated", 5: "Never married", 6: "Living with partner", 77: "Refused"},
		},
	}
}

// DefaultAgeBins are the stratum edges for RIDAGEYR.
func DefaultAgeBins() []float64 {
	return []float64{18, 30, 40, 50, 60, 70, 80}
}

// Recode returns the named lookup table, falling back to the built-in default.
func (c *Global) Recode(name string) Recode {
	if r, ok := c.Recodes[name]; ok && r.Source != "" && len(r.Labels) > 0 {
		if r.Target == "" {
			r.Target = r.Source + "x"
		}
		return r
	}
	return DefaultRecodes()[name]
}

// RecodeNames lists the configured recode tables in a stable order.
func (c *Global) RecodeNames() []string {
	seen := map[string]bool{}
	for k := range DefaultRecodes() {
		seen[k] = true
	}
	for k := range c.Recodes {
		seen[k] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".nhanes"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.nhanes/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("NHANES")
	v.AutomaticEnv()

	v.SetDefault("data_url", DefaultDataURL)
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("listen_addr", "127.0.0.1:8501")
	v.SetDefault("output_path", "nhanes_report.html")
	v.SetDefault("plotly_js_url", "https://cdn.plot.ly/plotly-2.27.0.min.js")
	v.SetDefault("preview_rows", 20)
	v.SetDefault("page_title", "Analysis of univariate data - NHANES case study")
	v.SetDefault("age_bins", DefaultAgeBins())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.AgeBins) < 2 {
		c.AgeBins = DefaultAgeBins()
	}
	if c.HTTPTimeoutSec <= 0 {
		c.HTTPTimeoutSec = 60
	}
	return &c, nil
}
