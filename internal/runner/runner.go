// Package runner orchestrates one fetch-generate-submit cycle and the
// continuous polling loop around it.
package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/MrBlackSheep91/innova-trading-docs/internal/logger"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/strategy"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/types"
	"github.com/MrBlackSheep91/innova-trading-docs/pkg/errors"
	"github.com/MrBlackSheep91/innova-trading-docs/pkg/innovaapi"
)

// DefaultInterval is the continuous mode interval when none is configured.
const DefaultInterval = 300 * time.Second

// APIClient is the part of the API client the runner depends on.
type APIClient interface {
	GetBars(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) optional.Option[[]types.Bar]
	SubmitIndicator(ctx context.Context, indicatorID string, req innovaapi.SubmitRequest) bool
}

var _ APIClient = (*innovaapi.Client)(nil)

// Config holds the market and indicator parameters of a runner.
type Config struct {
	Symbol        string
	Timeframe     types.Timeframe
	Limit         int
	IndicatorID   string
	IndicatorName string
}

// Runner drives the fetch, generate, submit sequence. It is sequential:
// each cycle blocks on its HTTP calls and nothing is shared between runs
// except the configuration.
type Runner struct {
	config   Config
	client   APIClient
	strategy strategy.Strategy
	log      *logger.Logger

	// runID correlates all cycles of one process in server-side logs.
	runID string
	cycle int
}

// New creates a runner for the given client and strategy.
func New(config Config, client APIClient, strat strategy.Strategy, log *logger.Logger) *Runner {
	return &Runner{
		config:   config,
		client:   client,
		strategy: strat,
		log:      log,
		runID:    uuid.NewString(),
		cycle:    0,
	}
}

// RunOnce executes a single cycle: fetch bars, generate signals, submit.
//
// An absent or empty bar fetch is a failed cycle and nothing is submitted.
// A fetch with no qualifying pattern is a successful cycle with no
// submission. A rejected submission is a failed cycle.
func (r *Runner) RunOnce(ctx context.Context) error {
	r.cycle++

	r.log.Info("Starting signal generation cycle",
		zap.Int("cycle", r.cycle),
		zap.String("symbol", r.config.Symbol),
		zap.Int("timeframe", int(r.config.Timeframe)))

	barsOpt := r.client.GetBars(ctx, r.config.Symbol, r.config.Timeframe, r.config.Limit)
	if barsOpt.IsNone() {
		return errors.New(errors.ErrCodeNoBars, "could not fetch bars")
	}

	bars := barsOpt.Unwrap()
	if len(bars) == 0 {
		return errors.Newf(errors.ErrCodeNoBars, "no bars returned for %s", r.config.Symbol)
	}

	r.log.Info("Fetched bars", zap.Int("count", len(bars)))

	points, lines := r.strategy.Generate(bars)
	if len(points) == 0 && len(lines) == 0 {
		r.log.Info("No signals to submit")
		return nil
	}

	buyCount, sellCount := countDirections(points)

	r.log.Info("Generated signals",
		zap.Int("points", len(points)),
		zap.Int("lines", len(lines)),
		zap.Int("buy", buyCount),
		zap.Int("sell", sellCount))

	req := innovaapi.SubmitRequest{
		Symbol:        r.config.Symbol,
		Timeframe:     r.config.Timeframe,
		IndicatorName: r.config.IndicatorName,
		Points:        points,
		Lines:         lines,
		Metadata: map[string]any{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"total_points": len(points),
			"total_lines":  len(lines),
			"buy_count":    buyCount,
			"sell_count":   sellCount,
			"strategy":     r.strategy.Name(),
			"run_id":       r.runID,
		},
	}

	if !r.client.SubmitIndicator(ctx, r.config.IndicatorID, req) {
		return errors.New(errors.ErrCodeSubmitFailed, "indicator submission rejected")
	}

	r.log.Info("Cycle completed", zap.Int("cycle", r.cycle))

	return nil
}

// Run repeats RunOnce on a fixed interval until the context is cancelled.
// A failed cycle is logged and retried after the full interval; no failure
// stops the loop.
func (r *Runner) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	r.log.Info("Starting continuous mode",
		zap.Duration("interval", interval),
		zap.String("runId", r.runID))

	for {
		if err := r.RunOnce(ctx); err != nil {
			r.log.Error("Cycle failed", zap.Error(err))
		}

		r.log.Info("Waiting for next cycle", zap.Duration("interval", interval))

		select {
		case <-ctx.Done():
			r.log.Info("Continuous mode stopped")
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func countDirections(points []types.Point) (buy, sell int) {
	for _, point := range points {
		switch point.Label {
		case types.PointLabelBuy:
			buy++
		case types.PointLabelSell:
			sell++
		}
	}

	return buy, sell
}
