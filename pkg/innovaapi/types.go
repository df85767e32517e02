package innovaapi

import (
	"github.com/MrBlackSheep91/innova-trading-docs/internal/types"
)

// PayloadVersion is the indicator payload schema version the API expects.
const PayloadVersion = "1.0"

// MaxBarsLimit is the largest number of bars the bars endpoint returns per request.
const MaxBarsLimit = 5000

// SubmitRequest is the body POSTed to /api/external/indicators/{id}.
type SubmitRequest struct {
	Symbol        string          `json:"symbol"`
	Timeframe     types.Timeframe `json:"timeframe"`
	IndicatorName string          `json:"indicator_name"`
	Version       string          `json:"version"`
	Points        []types.Point   `json:"points"`
	Lines         []types.Line    `json:"lines"`
	Metadata      map[string]any  `json:"metadata"`
}

// SubmitResponse is the acknowledgement returned on a successful submission.
// ExpiresAt reflects the server-side TTL of the submitted batch.
type SubmitResponse struct {
	PointsReceived int    `json:"points_received"`
	LinesReceived  int    `json:"lines_received"`
	ExpiresAt      string `json:"expires_at"`
}

type barsResponse struct {
	Bars []types.Bar `json:"bars"`
}
