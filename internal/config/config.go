// Package config loads the signal generator configuration.
//
// The compiled-in defaults mirror the published example so the tool runs
// without any config file; a YAML file passed via --config overrides them.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/MrBlackSheep91/innova-trading-docs/internal/types"
	"github.com/MrBlackSheep91/innova-trading-docs/pkg/errors"
)

// APIConfig configures the connection to the InnovaTrading external API.
type APIConfig struct {
	URL            string `yaml:"url" validate:"required,url"`
	Key            string `yaml:"key" validate:"required"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"min=0"`
}

// IndicatorConfig identifies the indicator the signals are published under.
type IndicatorConfig struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

// MarketConfig selects the analyzed symbol and timeframe.
type MarketConfig struct {
	Symbol    string `yaml:"symbol" validate:"required"`
	Timeframe int    `yaml:"timeframe" validate:"required,oneof=1 5 15 60 240 1440"`
	Limit     int    `yaml:"limit" validate:"min=1,max=5000"`
}

// RunnerConfig configures the continuous mode loop.
type RunnerConfig struct {
	IntervalSeconds int `yaml:"interval_seconds" validate:"min=1"`
}

// Config is the full signal generator configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Market    MarketConfig    `yaml:"market"`
	Runner    RunnerConfig    `yaml:"runner"`
}

// Default returns the configuration used when no config file is given.
// Edit the api.key value (or supply a config file) before running against
// a real account.
func Default() Config {
	return Config{
		API: APIConfig{
			URL:            "https://api.innova-trading.com",
			Key:            "your_api_key_here",
			TimeoutSeconds: 30,
		},
		Indicator: IndicatorConfig{
			ID:   "my_indicator",
			Name: "My Signal Indicator",
		},
		Market: MarketConfig{
			Symbol:    "EURUSD",
			Timeframe: int(types.TimeframeH1),
			Limit:     500,
		},
		Runner: RunnerConfig{
			IntervalSeconds: 300,
		},
	}
}

// Load reads a YAML config file on top of the defaults and validates the
// result. Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(errors.ErrCodeConfigReadFailed, err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(errors.ErrCodeConfigParseFailed, err, "failed to parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the configuration against its struct constraints.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// Timeout returns the HTTP timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Interval returns the continuous mode interval as a duration.
func (c RunnerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// TimeframeValue returns the configured timeframe as a typed value.
func (c MarketConfig) TimeframeValue() types.Timeframe {
	return types.Timeframe(c.Timeframe)
}

// String renders the config for startup logging with the API key masked.
func (c Config) String() string {
	return fmt.Sprintf("symbol=%s timeframe=%dm limit=%d indicator=%s url=%s",
		c.Market.Symbol, c.Market.Timeframe, c.Market.Limit, c.Indicator.ID, c.API.URL)
}
