package strategy

import (
	"testing"

	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/stretchr/testify/suite"
)

type RSIStrategyTestSuite struct {
	suite.Suite
}

func TestRSIStrategySuite(t *testing.T) {
	suite.Run(t, new(RSIStrategyTestSuite))
}

func (suite *RSIStrategyTestSuite) newStrategy(params Params) Strategy {
	merged := Params{types.ParamRSIPeriod: 2}
	for k, v := range params {
		merged[k] = v
	}

	s, err := New(types.StrategyKindRSI, merged)
	suite.Require().NoError(err)

	return s
}

func (suite *RSIStrategyTestSuite) TestCrossings() {
	s := suite.newStrategy(nil)

	// RSI(2): 0 after the third close, then 80, then ~57.1
	signals := replay(s, candlesFromCloses(10, 9, 8, 12, 11))

	suite.Equal([]types.Signal{
		types.SignalHold,
		types.SignalHold,
		types.SignalHold,
		types.SignalBuy,
		types.SignalSell,
	}, signals)

	trades := s.Trades()
	suite.Len(trades, 1)
	suite.Equal(12.0, trades[0].EntryPrice)
	suite.Equal(11.0, trades[0].ExitPrice)
	suite.Equal(-1.0, trades[0].PnL)
	suite.Equal(types.ExitReasonSignal, trades[0].ExitReason)
	suite.Equal(1, s.Metrics().LosingTrades)

	snapshot := s.Indicators()
	suite.InDelta(57.142857, snapshot[types.IndicatorTypeRSI].RSI, 1e-4)
}

func (suite *RSIStrategyTestSuite) TestStopLossTakesPrecedence() {
	s := suite.newStrategy(Params{types.ParamStopLossPercent: 5})

	signals := replay(s, candlesFromCloses(10, 9, 8, 12, 11.3))
	suite.Equal(types.SignalSell, signals[4])

	trades := s.Trades()
	suite.Len(trades, 1)
	suite.Equal(types.ExitReasonStopLoss, trades[0].ExitReason)
}

func (suite *RSIStrategyTestSuite) TestTakeProfit() {
	s := suite.newStrategy(Params{types.ParamTakeProfitPercent: 10})

	signals := replay(s, candlesFromCloses(10, 9, 8, 12, 13.5))
	suite.Equal(types.SignalSell, signals[4])
	suite.Equal(types.ExitReasonTakeProfit, s.Trades()[0].ExitReason)
	suite.InDelta(1.5, s.Trades()[0].PnL, 1e-9)
}

func (suite *RSIStrategyTestSuite) TestNoSignalWithoutPreviousValue() {
	s := suite.newStrategy(nil)

	// the first RSI value is 100 but there is nothing to cross from
	signals := replay(s, candlesFromCloses(10, 11, 12))
	for _, signal := range signals {
		suite.Equal(types.SignalHold, signal)
	}
}

func (suite *RSIStrategyTestSuite) TestMonotonicSeriesNeverBuys() {
	s, err := New(types.StrategyKindRSI, nil)
	suite.Require().NoError(err)

	closes := make([]float64, 0, 20)
	for i := 0; i < 20; i++ {
		closes = append(closes, float64(100+i))
	}

	for _, signal := range replay(s, candlesFromCloses(closes...)) {
		suite.NotEqual(types.SignalBuy, signal)
	}

	suite.Empty(s.Trades())
	suite.Len(s.EquityCurve(), 20)
	suite.Equal(100.0, s.Indicators()[types.IndicatorTypeRSI].RSI)
}

func (suite *RSIStrategyTestSuite) TestResetIsDeterministic() {
	s := suite.newStrategy(Params{types.ParamRSIPeriod: 5})
	candles := candlesFromCloses(sineCloses(120)...)

	replay(s, candles)
	firstTrades := s.Trades()
	firstCurve := s.EquityCurve()
	firstMetrics := s.Metrics()

	s.Reset()
	suite.Empty(s.Trades())
	suite.Empty(s.EquityCurve())
	suite.Empty(s.Indicators())
	suite.Equal(types.PositionFlat, s.Position())

	replay(s, candles)
	suite.Equal(firstTrades, s.Trades())
	suite.Equal(firstCurve, s.EquityCurve())
	suite.Equal(firstMetrics, s.Metrics())
	suite.NotEmpty(firstTrades)
}
