package strategy

import (
	"github.com/MrBlackSheep91/innova-trading-docs/internal/types"
)

// Strategy maps a bar sequence to chart annotations. Implementations must be
// pure: no I/O, and identical input must produce identical output.
type Strategy interface {
	// Name is the strategy name reported in submission metadata.
	Name() string
	// Generate returns the markers and horizontal lines derived from bars.
	// Bars are ordered oldest first.
	Generate(bars []types.Bar) ([]types.Point, []types.Line)
}
