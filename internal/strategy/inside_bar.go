package strategy

import (
	"fmt"

	"github.com/MrBlackSheep91/innova-trading-docs/internal/types"
)

// Default parameter values matching the published example.
const (
	DefaultStopOffset    = 0.0005
	DefaultExtensionBars = 15
	DefaultMarkerSize    = 2
)

var tpColors = []string{types.ColorTP1, types.ColorTP2, types.ColorTP3}

// InsideBarConfig holds the tunable parameters of the inside-bar strategy.
type InsideBarConfig struct {
	// StopOffset is the absolute price buffer placed beyond the mother bar
	// extreme when computing the stop-loss.
	StopOffset float64
	// RiskMultiples are the take-profit distances as multiples of the
	// entry-to-stop distance, one line per multiple.
	RiskMultiples []float64
	// ExtensionBars is how many bars each line extends to the right.
	ExtensionBars int
	// MarkerSize is the rendered size of the entry arrow.
	MarkerSize int
}

// DefaultInsideBarConfig returns the parameters used by the original example:
// a 5-pip stop buffer and take-profits at 1x, 2x and 3x risk.
func DefaultInsideBarConfig() InsideBarConfig {
	return InsideBarConfig{
		StopOffset:    DefaultStopOffset,
		RiskMultiples: []float64{1, 2, 3},
		ExtensionBars: DefaultExtensionBars,
		MarkerSize:    DefaultMarkerSize,
	}
}

// InsideBarStrategy detects inside bars and emits an entry marker plus
// entry/stop-loss/take-profit level lines for each occurrence.
//
// An inside bar is a candle fully contained within the previous candle's
// high-low range (strict on both sides). Direction is decided by whether the
// inside bar closes above or below the mother bar's midpoint.
type InsideBarStrategy struct {
	config InsideBarConfig
}

var _ Strategy = (*InsideBarStrategy)(nil)

// NewInsideBarStrategy creates an inside-bar strategy with the given config.
func NewInsideBarStrategy(config InsideBarConfig) *InsideBarStrategy {
	return &InsideBarStrategy{
		config: config,
	}
}

// Name implements Strategy.
func (s *InsideBarStrategy) Name() string {
	return "Inside Bar with Multi-TP + Lines"
}

// Generate implements Strategy.
//
// Line ids are "signal_NNN_<role>" with a zero-padded counter that restarts
// at 000 on every call. Ids are therefore unique within one generated batch
// only; two runs against the same indicator reuse the same ids. The remote
// API treats a resubmitted id as a replacement, so this is intentional for
// the example but unsuitable for concurrent producers.
func (s *InsideBarStrategy) Generate(bars []types.Bar) ([]types.Point, []types.Line) {
	points := []types.Point{}
	lines := []types.Line{}
	signalCount := 0

	for i := 2; i < len(bars); i++ {
		prev := bars[i-1]
		curr := bars[i]

		isInsideBar := curr.High < prev.High && curr.Low > prev.Low
		if !isInsideBar {
			continue
		}

		midpoint := (prev.High + prev.Low) / 2

		direction := types.DirectionBearish
		if curr.Close > midpoint {
			direction = types.DirectionBullish
		}

		// Anchor everything to the bar's own timestamp so annotations land
		// on the candle that produced them, not on wall-clock time.
		entry := curr.Close

		var stop float64
		if direction == types.DirectionBullish {
			stop = prev.Low - s.config.StopOffset
		} else {
			stop = prev.High + s.config.StopOffset
		}

		signalID := fmt.Sprintf("signal_%03d", signalCount)
		signalCount++

		points = append(points, s.entryPoint(curr.Time, entry, direction))
		lines = append(lines, s.levelLines(signalID, curr.Time, entry, stop, direction)...)
	}

	return points, lines
}

func (s *InsideBarStrategy) entryPoint(barTime int64, entry float64, direction types.Direction) types.Point {
	if direction == types.DirectionBullish {
		return types.Point{
			Time:  barTime,
			Type:  types.PointTypeLow,
			Price: entry,
			Label: types.PointLabelBuy,
			Color: types.ColorBuy,
			Shape: types.PointShapeArrowUp,
			Size:  s.config.MarkerSize,
		}
	}

	return types.Point{
		Time:  barTime,
		Type:  types.PointTypeHigh,
		Price: entry,
		Label: types.PointLabelSell,
		Color: types.ColorSell,
		Shape: types.PointShapeArrowDown,
		Size:  s.config.MarkerSize,
	}
}

// levelLines builds the entry, stop-loss and take-profit lines for one signal.
func (s *InsideBarStrategy) levelLines(signalID string, barTime int64, entry, stop float64, direction types.Direction) []types.Line {
	entryColor := types.ColorSell
	if direction == types.DirectionBullish {
		entryColor = types.ColorBuy
	}

	lines := []types.Line{
		{
			ID:        signalID + "_entry",
			Price:     entry,
			StartTime: barTime,
			Bars:      s.config.ExtensionBars,
			Label:     fmt.Sprintf("Entry: %.5f", entry),
			Color:     entryColor,
			Style:     types.LineStyleDashed,
			Width:     1,
		},
		{
			ID:        signalID + "_sl",
			Price:     stop,
			StartTime: barTime,
			Bars:      s.config.ExtensionBars,
			Label:     fmt.Sprintf("SL: %.5f", stop),
			Color:     types.ColorSL,
			Style:     types.LineStyleSolid,
			Width:     2,
		},
	}

	risk := entry - stop
	if direction == types.DirectionBearish {
		risk = stop - entry
	}

	for n, multiple := range s.config.RiskMultiples {
		target := entry + risk*multiple
		if direction == types.DirectionBearish {
			target = entry - risk*multiple
		}

		color := tpColors[len(tpColors)-1]
		if n < len(tpColors) {
			color = tpColors[n]
		}

		lines = append(lines, types.Line{
			ID:        fmt.Sprintf("%s_tp%d", signalID, n+1),
			Price:     target,
			StartTime: barTime,
			Bars:      s.config.ExtensionBars,
			Label:     fmt.Sprintf("TP%d: %.5f", n+1, target),
			Color:     color,
			Style:     types.LineStyleDotted,
			Width:     1,
		})
	}

	return lines
}
