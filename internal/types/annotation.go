package types

type PointType string

const (
	PointTypeLow  PointType = "low"
	PointTypeHigh PointType = "high"
)

type PointLabel string

const (
	PointLabelBuy  PointLabel = "BUY"
	PointLabelSell PointLabel = "SELL"
)

type PointShape string

const (
	PointShapeArrowUp   PointShape = "arrowUp"
	PointShapeArrowDown PointShape = "arrowDown"
)

type LineStyle string

const (
	LineStyleDashed LineStyle = "dashed"
	LineStyleSolid  LineStyle = "solid"
	LineStyleDotted LineStyle = "dotted"
)

// Chart colors understood by the InnovaTrading frontend.
const (
	ColorBuy  = "#3b82f6"
	ColorSell = "#f97316"
	ColorSL   = "#ef4444"
	ColorTP1  = "#22c55e"
	ColorTP2  = "#10b981"
	ColorTP3  = "#059669"
)

// Point is a chart marker anchored to a bar timestamp.
type Point struct {
	// Time is the bar timestamp in unix seconds, not the wall-clock time
	// the point was generated.
	Time  int64      `json:"time"`
	Type  PointType  `json:"type"`
	Price float64    `json:"price"`
	Label PointLabel `json:"label"`
	Color string     `json:"color"`
	Shape PointShape `json:"shape"`
	Size  int        `json:"size"`
}

// Line is a horizontal price annotation extending a fixed number of bars
// to the right of its start time.
type Line struct {
	// ID must be unique within a single submission batch. The API replaces
	// lines sharing an id on resubmission.
	ID        string    `json:"id"`
	Price     float64   `json:"price"`
	StartTime int64     `json:"start_time"`
	Bars      int       `json:"bars"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	Style     LineStyle `json:"style"`
	Width     int       `json:"width"`
}
