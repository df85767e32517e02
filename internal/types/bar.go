package types

// Bar is a single OHLC candle as served by the external bars endpoint.
// Time is in unix seconds. Sequences are ordered oldest first.
type Bar struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Timeframe is a bar interval in minutes.
type Timeframe int

const (
	TimeframeM1  Timeframe = 1
	TimeframeM5  Timeframe = 5
	TimeframeM15 Timeframe = 15
	TimeframeH1  Timeframe = 60
	TimeframeH4  Timeframe = 240
	TimeframeD1  Timeframe = 1440
)

// IsValid reports whether the timeframe is one of the intervals the API serves.
func (t Timeframe) IsValid() bool {
	switch t {
	case TimeframeM1, TimeframeM5, TimeframeM15, TimeframeH1, TimeframeH4, TimeframeD1:
		return true
	default:
		return false
	}
}

// Direction classifies a signal as bullish or bearish.
type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
)
