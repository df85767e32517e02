// Package innovaapi is a client for the InnovaTrading external API.
//
// It covers the two endpoints available to third-party indicator developers:
// fetching OHLC bars and submitting chart annotations (points and lines) for
// a named indicator. Both calls authenticate with a static bearer token.
//
// Failures never propagate as errors to the caller: a failed bar fetch
// returns an absent value and a failed submission returns false, with the
// condition logged. Retrying is the caller's decision.
package innovaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/MrBlackSheep91/innova-trading-docs/internal/logger"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/types"
)

// DefaultTimeout is applied to each HTTP call when the config leaves it unset.
const DefaultTimeout = 30 * time.Second

// ClientConfig holds the configuration for the API client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. https://api.innova-trading.com.
	BaseURL string `validate:"required,url"`
	// APIKey is the static bearer token issued for the indicator.
	APIKey string `validate:"required"`
	// Timeout bounds each HTTP call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Client talks to the InnovaTrading external API.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	validate   *validator.Validate
	log        *logger.Logger
}

// NewClient creates a new API client with the given configuration.
func NewClient(config ClientConfig, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		validate: validate,
		log:      log,
	}, nil
}

// GetBars fetches up to limit OHLC bars for the symbol and timeframe,
// ordered oldest first. Limit is capped at MaxBarsLimit.
//
// On any transport failure or non-200 status the condition is logged and
// None is returned; an empty bars array in a 200 response yields an empty
// slice, not None.
func (c *Client) GetBars(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) optional.Option[[]types.Bar] {
	if !timeframe.IsValid() {
		c.log.Error("Invalid timeframe for bars request", zap.Int("timeframe", int(timeframe)))
		return optional.None[[]types.Bar]()
	}

	if limit > MaxBarsLimit {
		limit = MaxBarsLimit
	}

	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("timeframe", strconv.Itoa(int(timeframe)))
	params.Add("limit", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s/api/external/bars?%s", c.config.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.Error("Failed to create bars request", zap.Error(err))
		return optional.None[[]types.Bar]()
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Failed to fetch bars",
			zap.Error(err),
			zap.String("symbol", symbol),
			zap.Int("timeframe", int(timeframe)))

		return optional.None[[]types.Bar]()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.log.Error("Bars request returned unexpected status",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(bodyBytes)))

		return optional.None[[]types.Bar]()
	}

	var body barsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Error("Failed to decode bars response", zap.Error(err))
		return optional.None[[]types.Bar]()
	}

	bars := body.Bars
	if bars == nil {
		bars = []types.Bar{}
	}

	return optional.Some(bars)
}

// SubmitIndicator submits a batch of points and lines for the indicator.
// The payload version is set by the client; nil point/line slices are sent
// as empty arrays.
//
// Returns true when the API acknowledges the batch with 200 or 201. Any
// other status or transport failure is logged and reported as false.
func (c *Client) SubmitIndicator(ctx context.Context, indicatorID string, req SubmitRequest) bool {
	req.Version = PayloadVersion

	if req.Points == nil {
		req.Points = []types.Point{}
	}

	if req.Lines == nil {
		req.Lines = []types.Line{}
	}

	if req.Metadata == nil {
		req.Metadata = map[string]any{}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		c.log.Error("Failed to encode indicator payload", zap.Error(err))
		return false
	}

	reqURL := fmt.Sprintf("%s/api/external/indicators/%s", c.config.BaseURL, url.PathEscape(indicatorID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		c.log.Error("Failed to create indicator request", zap.Error(err))
		return false
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("Failed to submit indicator",
			zap.Error(err),
			zap.String("indicatorId", indicatorID))

		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.log.Error("Indicator submission returned unexpected status",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(bodyBytes)))

		return false
	}

	var ack SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		// The batch was accepted; a malformed ack only costs the log detail.
		c.log.Warn("Failed to decode submission acknowledgement", zap.Error(err))
		return true
	}

	c.log.Info("Signals submitted",
		zap.Int("pointsReceived", ack.PointsReceived),
		zap.Int("linesReceived", ack.LinesReceived),
		zap.String("expiresAt", ack.ExpiresAt))

	return true
}
