package innovaapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/MrBlackSheep91/innova-trading-docs/e2e/mockserver"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/logger"
	"github.com/MrBlackSheep91/innova-trading-docs/internal/types"
	"github.com/MrBlackSheep91/innova-trading-docs/pkg/innovaapi"
)

const testAPIKey = "test_api_key"

type ClientTestSuite struct {
	suite.Suite
	server *mockserver.MockAPIServer
	client *innovaapi.Client
	log    *logger.Logger
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (suite *ClientTestSuite) SetupSuite() {
	log, err := logger.NewLogger()
	suite.Require().NoError(err)
	suite.log = log
}

func (suite *ClientTestSuite) SetupTest() {
	suite.server = mockserver.NewMockAPIServer(testAPIKey)
	suite.Require().NoError(suite.server.Start())

	client, err := innovaapi.NewClient(innovaapi.ClientConfig{
		BaseURL: suite.server.URL(),
		APIKey:  testAPIKey,
		Timeout: 5 * time.Second,
	}, suite.log)
	suite.Require().NoError(err)
	suite.client = client
}

func (suite *ClientTestSuite) TearDownTest() {
	suite.NoError(suite.server.Stop(context.Background()))
}

func (suite *ClientTestSuite) newClientWithKey(key string) *innovaapi.Client {
	client, err := innovaapi.NewClient(innovaapi.ClientConfig{
		BaseURL: suite.server.URL(),
		APIKey:  key,
		Timeout: 5 * time.Second,
	}, suite.log)
	suite.Require().NoError(err)

	return client
}

func testBars() []types.Bar {
	return []types.Bar{
		{Time: 1700000000, Open: 1.1000, High: 1.1010, Low: 1.0990, Close: 1.1005, Volume: 100},
		{Time: 1700003600, Open: 1.1005, High: 1.1050, Low: 1.1030, Close: 1.1040, Volume: 120},
	}
}

func (suite *ClientTestSuite) TestNewClientRejectsInvalidConfig() {
	testCases := []struct {
		name   string
		config innovaapi.ClientConfig
	}{
		{
			name:   "missing base url",
			config: innovaapi.ClientConfig{APIKey: "key"},
		},
		{
			name:   "malformed base url",
			config: innovaapi.ClientConfig{BaseURL: "not a url", APIKey: "key"},
		},
		{
			name:   "missing api key",
			config: innovaapi.ClientConfig{BaseURL: "https://api.example.com"},
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			client, err := innovaapi.NewClient(tc.config, suite.log)
			suite.Error(err)
			suite.Nil(client)
		})
	}
}

func (suite *ClientTestSuite) TestGetBars() {
	suite.server.SetBars("EURUSD", testBars())

	result := suite.client.GetBars(context.Background(), "EURUSD", types.TimeframeH1, 500)
	suite.Require().True(result.IsSome())

	bars := result.Unwrap()
	suite.Require().Len(bars, 2)
	suite.Equal(int64(1700000000), bars[0].Time)
	suite.InDelta(1.1040, bars[1].Close, 1e-9)
}

func (suite *ClientTestSuite) TestGetBarsUnknownSymbol() {
	// No canned data for the symbol: a 200 with an empty array is still Some.
	result := suite.client.GetBars(context.Background(), "GBPUSD", types.TimeframeH1, 500)
	suite.Require().True(result.IsSome())
	suite.Empty(result.Unwrap())
}

func (suite *ClientTestSuite) TestGetBarsUnauthorized() {
	suite.server.SetBars("EURUSD", testBars())
	client := suite.newClientWithKey("wrong_key")

	result := client.GetBars(context.Background(), "EURUSD", types.TimeframeH1, 500)
	suite.True(result.IsNone())
}

func (suite *ClientTestSuite) TestGetBarsServerError() {
	suite.server.SetBars("EURUSD", testBars())
	suite.server.SetBarsStatus(http.StatusInternalServerError)

	result := suite.client.GetBars(context.Background(), "EURUSD", types.TimeframeH1, 500)
	suite.True(result.IsNone())
}

func (suite *ClientTestSuite) TestGetBarsTransportFailure() {
	suite.Require().NoError(suite.server.Stop(context.Background()))

	result := suite.client.GetBars(context.Background(), "EURUSD", types.TimeframeH1, 500)
	suite.True(result.IsNone())

	// Restart so TearDownTest can stop it again without error.
	suite.Require().NoError(suite.server.Start())
}

func (suite *ClientTestSuite) TestGetBarsInvalidTimeframe() {
	suite.server.SetBars("EURUSD", testBars())

	result := suite.client.GetBars(context.Background(), "EURUSD", types.Timeframe(7), 500)
	suite.True(result.IsNone())
}

func (suite *ClientTestSuite) TestGetBarsRespectsLimit() {
	suite.server.SetBars("EURUSD", testBars())

	result := suite.client.GetBars(context.Background(), "EURUSD", types.TimeframeH1, 1)
	suite.Require().True(result.IsSome())
	suite.Len(result.Unwrap(), 1)
}

func (suite *ClientTestSuite) TestSubmitIndicator() {
	ok := suite.client.SubmitIndicator(context.Background(), "my_indicator", innovaapi.SubmitRequest{
		Symbol:        "EURUSD",
		Timeframe:     types.TimeframeH1,
		IndicatorName: "Test Indicator",
		Points: []types.Point{
			{Time: 1700003600, Type: types.PointTypeLow, Price: 1.1040, Label: types.PointLabelBuy, Color: types.ColorBuy, Shape: types.PointShapeArrowUp, Size: 2},
		},
	})
	suite.True(ok)

	submissions := suite.server.Submissions()
	suite.Require().Len(submissions, 1)
	suite.Equal("my_indicator", submissions[0].IndicatorID)

	req := submissions[0].Request
	suite.Equal(innovaapi.PayloadVersion, req.Version, "client stamps the payload version")
	suite.Len(req.Points, 1)
	suite.NotNil(req.Lines, "nil lines are sent as an empty array")
	suite.Empty(req.Lines)
}

func (suite *ClientTestSuite) TestSubmitIndicatorUnauthorized() {
	client := suite.newClientWithKey("wrong_key")

	ok := client.SubmitIndicator(context.Background(), "my_indicator", innovaapi.SubmitRequest{
		Symbol:        "EURUSD",
		Timeframe:     types.TimeframeH1,
		IndicatorName: "Test Indicator",
	})
	suite.False(ok)
	suite.Empty(suite.server.Submissions())
}

func (suite *ClientTestSuite) TestSubmitIndicatorTransportFailure() {
	suite.Require().NoError(suite.server.Stop(context.Background()))

	ok := suite.client.SubmitIndicator(context.Background(), "my_indicator", innovaapi.SubmitRequest{
		Symbol:        "EURUSD",
		Timeframe:     types.TimeframeH1,
		IndicatorName: "Test Indicator",
	})
	suite.False(ok)

	suite.Require().NoError(suite.server.Start())
}
