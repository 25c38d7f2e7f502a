package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tase-symbol-finder/internal/table"
)

// Default file names used when neither config nor flags name them
const (
	DefaultInputPath  = "מניות מותרות.csv"
	DefaultOutputPath = "israeli_stocks_with_symbols_complete.csv"
	DefaultNameColumn = "שם"
)

type Config struct {
	Input struct {
		Path             string `yaml:"path"`
		NameColumn       string `yaml:"name_column"`
		Encoding         string `yaml:"encoding"`
		FallbackEncoding string `yaml:"fallback_encoding"`
	} `yaml:"input"`
	Output struct {
		Path          string `yaml:"path"`
		Encoding      string `yaml:"encoding"`
		NotFoundLabel string `yaml:"not_found_label"`
		SummaryFormat string `yaml:"summary_format"`
		PreviewRows   int    `yaml:"preview_rows"`
		SampleRows    int    `yaml:"sample_rows"`
	} `yaml:"output"`
	Matching struct {
		Threshold   int    `yaml:"threshold"`
		AliasesFile string `yaml:"aliases_file"`
	} `yaml:"matching"`
	Pacing struct {
		RowDelayMs *int `yaml:"row_delay_ms"`
	} `yaml:"pacing"`
	Providers struct {
		Yahoo struct {
			Enabled           *bool   `yaml:"enabled"`
			Backend           string  `yaml:"backend"`
			MarketSuffix      string  `yaml:"market_suffix"`
			BaseURL           string  `yaml:"base_url"`
			RequestsPerSecond float64 `yaml:"requests_per_second"`
			TimeoutSeconds    int     `yaml:"timeout_seconds"`
		} `yaml:"yahoo"`
		AlphaVantage struct {
			Enabled           *bool    `yaml:"enabled"`
			BaseURL           string   `yaml:"base_url"`
			APIKeyEnv         string   `yaml:"api_key_env"`
			Markers           []string `yaml:"markers"`
			RequestsPerSecond float64  `yaml:"requests_per_second"`
			TimeoutSeconds    int      `yaml:"timeout_seconds"`
			MaxAttempts       int      `yaml:"max_attempts"`
		} `yaml:"alpha_vantage"`
	} `yaml:"providers"`
	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
	Journal struct {
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"journal"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Input.Path == "" {
		c.Input.Path = DefaultInputPath
	}
	if c.Input.NameColumn == "" {
		c.Input.NameColumn = DefaultNameColumn
	}
	if c.Input.Encoding == "" {
		c.Input.Encoding = table.EncodingUTF8
	}
	if c.Input.FallbackEncoding == "" {
		c.Input.FallbackEncoding = table.EncodingHebrew
	}

	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
	if c.Output.Encoding == "" {
		c.Output.Encoding = table.EncodingUTF8BOM
	}
	if c.Output.NotFoundLabel == "" {
		c.Output.NotFoundLabel = "not found"
	}
	if c.Output.SummaryFormat == "" {
		c.Output.SummaryFormat = "text"
	}
	if c.Output.PreviewRows == 0 {
		c.Output.PreviewRows = 10
	}
	if c.Output.SampleRows == 0 {
		c.Output.SampleRows = 10
	}

	if c.Matching.Threshold == 0 {
		c.Matching.Threshold = 80
	}
	if c.Pacing.RowDelayMs == nil {
		c.Pacing.RowDelayMs = intPtr(500)
	}

	y := &c.Providers.Yahoo
	if y.Enabled == nil {
		y.Enabled = boolPtr(true)
	}
	if y.Backend == "" {
		y.Backend = "page"
	}
	if y.MarketSuffix == "" {
		y.MarketSuffix = ".TA"
	}
	if y.TimeoutSeconds == 0 {
		y.TimeoutSeconds = 10
	}

	av := &c.Providers.AlphaVantage
	if av.Enabled == nil {
		av.Enabled = boolPtr(true)
	}
	if av.APIKeyEnv == "" {
		av.APIKeyEnv = "ALPHAVANTAGE_API_KEY"
	}
	if len(av.Markers) == 0 {
		av.Markers = []string{".TA", "TLV"}
	}
	if av.TimeoutSeconds == 0 {
		av.TimeoutSeconds = 10
	}
	if av.MaxAttempts == 0 {
		av.MaxAttempts = 1
	}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

// YahooEnabled reports whether Provider A runs
func (c *Config) YahooEnabled() bool {
	return c.Providers.Yahoo.Enabled == nil || *c.Providers.Yahoo.Enabled
}

// AlphaVantageEnabled reports whether Provider B may run (it still needs a key)
func (c *Config) AlphaVantageEnabled() bool {
	return c.Providers.AlphaVantage.Enabled == nil || *c.Providers.AlphaVantage.Enabled
}

// RowDelay returns the pause between rows
func (c *Config) RowDelay() time.Duration {
	if c.Pacing.RowDelayMs == nil {
		return 500 * time.Millisecond
	}
	return time.Duration(*c.Pacing.RowDelayMs) * time.Millisecond
}

// APIKey reads the Provider B credential from the configured environment variable
func (c *Config) APIKey() string {
	return os.Getenv(c.Providers.AlphaVantage.APIKeyEnv)
}

// Validate checks all configuration fields and reports every problem found
func (c *Config) Validate() error {
	var errs []error

	if c.Input.NameColumn == "" {
		errs = append(errs, errors.New("input.name_column cannot be empty"))
	}
	if !table.ValidEncoding(c.Input.Encoding) {
		errs = append(errs, fmt.Errorf("input.encoding %q is not a known encoding", c.Input.Encoding))
	}
	if !table.ValidEncoding(c.Input.FallbackEncoding) {
		errs = append(errs, fmt.Errorf("input.fallback_encoding %q is not a known encoding", c.Input.FallbackEncoding))
	}
	if !table.ValidEncoding(c.Output.Encoding) {
		errs = append(errs, fmt.Errorf("output.encoding %q is not a known encoding", c.Output.Encoding))
	}
	switch c.Output.SummaryFormat {
	case "text", "json", "markdown":
	default:
		errs = append(errs, fmt.Errorf("output.summary_format must be 'text', 'json' or 'markdown', got '%s'", c.Output.SummaryFormat))
	}
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 100 {
		errs = append(errs, fmt.Errorf("matching.threshold must be between 0-100, got %d", c.Matching.Threshold))
	}
	if c.Pacing.RowDelayMs != nil && *c.Pacing.RowDelayMs < 0 {
		errs = append(errs, fmt.Errorf("pacing.row_delay_ms cannot be negative, got %d", *c.Pacing.RowDelayMs))
	}

	y := c.Providers.Yahoo
	if y.Backend != "api" && y.Backend != "page" {
		errs = append(errs, fmt.Errorf("providers.yahoo.backend must be 'api' or 'page', got '%s'", y.Backend))
	}
	if y.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("providers.yahoo.requests_per_second cannot be negative, got %.2f", y.RequestsPerSecond))
	}
	if y.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("providers.yahoo.timeout_seconds cannot be negative, got %d", y.TimeoutSeconds))
	}

	av := c.Providers.AlphaVantage
	if av.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("providers.alpha_vantage.requests_per_second cannot be negative, got %.2f", av.RequestsPerSecond))
	}
	if av.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("providers.alpha_vantage.timeout_seconds cannot be negative, got %d", av.TimeoutSeconds))
	}
	if av.MaxAttempts < 1 || av.MaxAttempts > 5 {
		errs = append(errs, fmt.Errorf("providers.alpha_vantage.max_attempts must be 1..5, got %d", av.MaxAttempts))
	}
	if av.APIKeyEnv == "" {
		errs = append(errs, errors.New("providers.alpha_vantage.api_key_env cannot be empty"))
	}
	if c.Journal.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("journal.retention_days cannot be negative, got %d", c.Journal.RetentionDays))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LoadConfig reads a YAML file, fills defaults and validates the result
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// LoadOrDefault is LoadConfig, except that a missing file yields the
// defaults unless required is set
func LoadOrDefault(path string, required bool) (*Config, error) {
	c, err := LoadConfig(path)
	if err == nil {
		return c, nil
	}
	if !required && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}
