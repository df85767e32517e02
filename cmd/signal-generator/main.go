// Command signal-generator is a reference client for the InnovaTrading
// external API. It fetches OHLC bars, runs an example inside-bar strategy
// over them, and submits the resulting chart annotations back to the API,
// either once or on a fixed interval.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/MrBlackSheep91/innova-trading-docs/internal/config"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/logger"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/runner"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/strategy"
	"github.com/MrBlackSheep91/innova-trading-docs/pkg/innovaapi"
)

// generateAction wires the client, strategy and runner together and runs
// one cycle, or the continuous loop when --continuous is set.
func generateAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	if configPath := cmd.String("config"); configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg = loaded
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync() //nolint:errcheck // stdout sync failures are harmless on exit

	client, err := innovaapi.NewClient(innovaapi.ClientConfig{
		BaseURL: cfg.API.URL,
		APIKey:  cfg.API.Key,
		Timeout: cfg.API.Timeout(),
	}, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	run := runner.New(runner.Config{
		Symbol:        cfg.Market.Symbol,
		Timeframe:     cfg.Market.TimeframeValue(),
		Limit:         cfg.Market.Limit,
		IndicatorID:   cfg.Indicator.ID,
		IndicatorName: cfg.Indicator.Name,
	}, client, strategy.NewInsideBarStrategy(strategy.DefaultInsideBarConfig()), appLogger)

	appLogger.Info("Signal generator starting", zap.String("config", cfg.String()))

	if cmd.Bool("continuous") {
		interval := time.Duration(cmd.Int("interval")) * time.Second
		if !cmd.IsSet("interval") {
			interval = cfg.Runner.Interval()
		}

		if err := run.Run(ctx, interval); err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Stopped by user")
				return nil
			}

			return err
		}

		return nil
	}

	// Single-shot mode logs the outcome but always exits zero, so cron-style
	// invocations are not treated as unit failures on quiet markets.
	if err := run.RunOnce(ctx); err != nil {
		appLogger.Error("Run failed", zap.Error(err))
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "signal-generator",
		Usage: "Generate trading signals and publish them as chart annotations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to a YAML config file (defaults are compiled in)",
				Required: false,
			},
			&cli.BoolFlag{
				Name:     "continuous",
				Usage:    "Run repeatedly instead of a single cycle",
				Required: false,
			},
			&cli.IntFlag{
				Name:     "interval",
				Aliases:  []string{"i"},
				Usage:    "Seconds between cycles in continuous mode",
				Value:    300,
				Required: false,
			},
		},
		Action: generateAction,
	}

	// Ctrl+C ends continuous mode cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
