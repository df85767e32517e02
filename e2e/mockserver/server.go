// Package mockserver provides a mock InnovaTrading external API for testing.
// It implements the bars and indicators endpoints with bearer-token checks
// and records every submission it receives.
package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/MrBlackSheep91/innova-trading-docs/internal/types"
	"github.com/MrBlackSheep91/innova-trading-docs/pkg/innovaapi"
)

// Submission records one indicator POST received by the server.
type Submission struct {
	IndicatorID string
	Request     innovaapi.SubmitRequest
}

// MockAPIServer is a mock of the InnovaTrading external API.
type MockAPIServer struct {
	mu sync.RWMutex

	httpServer *http.Server
	listener   net.Listener

	apiKey string

	// Canned bar data per symbol.
	bars map[string][]types.Bar

	// When non-zero, the bars endpoint returns this status instead of data.
	barsStatus int

	submissions []Submission
	expiresAt   time.Time
}

// NewMockAPIServer creates a mock server accepting the given API key.
func NewMockAPIServer(apiKey string) *MockAPIServer {
	return &MockAPIServer{
		apiKey:      apiKey,
		bars:        make(map[string][]types.Bar),
		barsStatus:  0,
		submissions: nil,
		expiresAt:   time.Now().UTC().Add(24 * time.Hour),
	}
}

// Start binds the server to a random local port.
func (s *MockAPIServer) Start() error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/external/bars", s.handleBars).Methods(http.MethodGet)
	router.HandleFunc("/api/external/indicators/{indicator_id}", s.handleIndicator).Methods(http.MethodPost)

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.httpServer.Serve(listener) //nolint:errcheck // returns ErrServerClosed on Stop

	return nil
}

// Stop shuts the server down.
func (s *MockAPIServer) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *MockAPIServer) URL() string {
	return "http://" + s.listener.Addr().String()
}

// SetBars sets the canned bars returned for a symbol.
func (s *MockAPIServer) SetBars(symbol string, bars []types.Bar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bars[symbol] = bars
}

// SetBarsStatus forces the bars endpoint to return the given status.
// Zero restores normal behavior.
func (s *MockAPIServer) SetBarsStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.barsStatus = status
}

// Submissions returns a copy of all recorded indicator submissions.
func (s *MockAPIServer) Submissions() []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Submission, len(s.submissions))
	copy(out, s.submissions)

	return out
}

func (s *MockAPIServer) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+s.apiKey
}

func (s *MockAPIServer) handleBars(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	s.mu.RLock()
	forcedStatus := s.barsStatus
	bars := s.bars[r.URL.Query().Get("symbol")]
	s.mu.RUnlock()

	if forcedStatus != 0 {
		http.Error(w, `{"error":"forced failure"}`, forcedStatus)
		return
	}

	limit := len(bars)
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed < limit {
			limit = parsed
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck // test server
		"bars": bars[len(bars)-limit:],
	})
}

func (s *MockAPIServer) handleIndicator(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req innovaapi.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	if req.Version != innovaapi.PayloadVersion {
		http.Error(w, `{"error":"unsupported version"}`, http.StatusBadRequest)
		return
	}

	indicatorID := mux.Vars(r)["indicator_id"]

	s.mu.Lock()
	s.submissions = append(s.submissions, Submission{
		IndicatorID: indicatorID,
		Request:     req,
	})
	expiresAt := s.expiresAt
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(innovaapi.SubmitResponse{ //nolint:errcheck // test server
		PointsReceived: len(req.Points),
		LinesReceived:  len(req.Lines),
		ExpiresAt:      expiresAt.Format(time.RFC3339),
	})
}
