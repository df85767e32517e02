package runner

import (
	"context"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/MrBlackSheep91/innova-trading-docs/internal/logger"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/strategy"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/types"
	"github.com/MrBlackSheep91/innova-trading-docs/pkg/errors"
	"github.com/MrBlackSheep91/innova-trading-docs/pkg/innovaapi"
)

// fakeClient is a hand-rolled APIClient capturing submissions.
type fakeClient struct {
	bars        optional.Option[[]types.Bar]
	submitOK    bool
	fetchCalls  int
	submissions []innovaapi.SubmitRequest
	indicators  []string
	onFetch     func(calls int)
}

func (f *fakeClient) GetBars(_ context.Context, _ string, _ types.Timeframe, _ int) optional.Option[[]types.Bar] {
	f.fetchCalls++
	if f.onFetch != nil {
		f.onFetch(f.fetchCalls)
	}

	return f.bars
}

func (f *fakeClient) SubmitIndicator(_ context.Context, indicatorID string, req innovaapi.SubmitRequest) bool {
	f.indicators = append(f.indicators, indicatorID)
	f.submissions = append(f.submissions, req)

	return f.submitOK
}

type RunnerTestSuite struct {
	suite.Suite
	log *logger.Logger
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}

func (suite *RunnerTestSuite) SetupSuite() {
	log, err := logger.NewLogger()
	suite.Require().NoError(err)
	suite.log = log
}

func (suite *RunnerTestSuite) newRunner(client APIClient) *Runner {
	return New(Config{
		Symbol:        "EURUSD",
		Timeframe:     types.TimeframeH1,
		Limit:         500,
		IndicatorID:   "test_indicator",
		IndicatorName: "Test Indicator",
	}, client, strategy.NewInsideBarStrategy(strategy.DefaultInsideBarConfig()), suite.log)
}

// insideBarSequence has exactly one inside bar (bars[2] within bars[1]),
// closing above the mother bar midpoint.
func insideBarSequence() []types.Bar {
	return []types.Bar{
		{Time: 1700000000, High: 1.1010, Low: 1.0990, Close: 1.1005},
		{Time: 1700003600, High: 1.1050, Low: 1.1030, Close: 1.1040},
		{Time: 1700007200, High: 1.1048, Low: 1.1032, Close: 1.1045},
	}
}

// trendingSequence has no inside bars.
func trendingSequence() []types.Bar {
	return []types.Bar{
		{Time: 1700000000, High: 1.1010, Low: 1.0990, Close: 1.1005},
		{Time: 1700003600, High: 1.1030, Low: 1.1000, Close: 1.1025},
		{Time: 1700007200, High: 1.1050, Low: 1.1020, Close: 1.1045},
	}
}

func (suite *RunnerTestSuite) TestRunOnceFetchFailure() {
	client := &fakeClient{bars: optional.None[[]types.Bar]()}

	err := suite.newRunner(client).RunOnce(context.Background())
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoBars))
	suite.Empty(client.submissions, "no submission after a failed fetch")
}

func (suite *RunnerTestSuite) TestRunOnceEmptyBars() {
	client := &fakeClient{bars: optional.Some([]types.Bar{})}

	err := suite.newRunner(client).RunOnce(context.Background())
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoBars))
	suite.Empty(client.submissions)
}

func (suite *RunnerTestSuite) TestRunOnceNoSignals() {
	client := &fakeClient{bars: optional.Some(trendingSequence()), submitOK: true}

	err := suite.newRunner(client).RunOnce(context.Background())
	suite.NoError(err, "a cycle without signals succeeds")
	suite.Empty(client.submissions, "nothing is submitted without signals")
}

func (suite *RunnerTestSuite) TestRunOnceSubmits() {
	client := &fakeClient{bars: optional.Some(insideBarSequence()), submitOK: true}

	err := suite.newRunner(client).RunOnce(context.Background())
	suite.Require().NoError(err)
	suite.Require().Len(client.submissions, 1)
	suite.Equal([]string{"test_indicator"}, client.indicators)

	req := client.submissions[0]
	suite.Equal("EURUSD", req.Symbol)
	suite.Equal(types.TimeframeH1, req.Timeframe)
	suite.Equal("Test Indicator", req.IndicatorName)
	suite.Len(req.Points, 1)
	suite.Len(req.Lines, 5)

	suite.Equal(1, req.Metadata["total_points"])
	suite.Equal(5, req.Metadata["total_lines"])
	suite.Equal(1, req.Metadata["buy_count"])
	suite.Equal(0, req.Metadata["sell_count"])
	suite.Equal("Inside Bar with Multi-TP + Lines", req.Metadata["strategy"])
	suite.NotEmpty(req.Metadata["generated_at"])
	suite.NotEmpty(req.Metadata["run_id"])
}

func (suite *RunnerTestSuite) TestRunOnceSubmitRejected() {
	client := &fakeClient{bars: optional.Some(insideBarSequence()), submitOK: false}

	err := suite.newRunner(client).RunOnce(context.Background())
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeSubmitFailed))
}

func (suite *RunnerTestSuite) TestRunLoopSurvivesFailuresAndStopsOnCancel() {
	ctx, cancel := context.WithCancel(context.Background())

	// Every fetch fails; the loop must keep retrying until cancelled.
	client := &fakeClient{bars: optional.None[[]types.Bar]()}
	client.onFetch = func(calls int) {
		if calls >= 3 {
			cancel()
		}
	}

	err := suite.newRunner(client).Run(ctx, time.Millisecond)
	suite.ErrorIs(err, context.Canceled)
	suite.GreaterOrEqual(client.fetchCalls, 3)
	suite.Empty(client.submissions)
}

func (suite *RunnerTestSuite) TestRunStopsBeforeSecondCycleWhenCancelled() {
	ctx, cancel := context.WithCancel(context.Background())

	client := &fakeClient{bars: optional.Some(trendingSequence())}
	client.onFetch = func(int) { cancel() }

	err := suite.newRunner(client).Run(ctx, time.Hour)
	suite.ErrorIs(err, context.Canceled)
	suite.Equal(1, client.fetchCalls)
}
