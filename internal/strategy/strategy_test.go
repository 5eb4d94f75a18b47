package strategy

import (
	"testing"

	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StrategyStateTestSuite struct {
	suite.Suite
	strategy Strategy
}

func TestStrategyStateSuite(t *testing.T) {
	suite.Run(t, new(StrategyStateTestSuite))
}

func (suite *StrategyStateTestSuite) SetupTest() {
	s, err := New(types.StrategyKindRSI, Params{types.ParamQuantity: 2})
	suite.Require().NoError(err)
	suite.Require().NoError(s.SetInitialCapital(1000))
	suite.strategy = s
}

func (suite *StrategyStateTestSuite) TestBuyWhileFlatOpensPosition() {
	candles := candlesFromCloses(100, 110)

	suite.True(suite.strategy.ProcessSignal(types.SignalBuy, candles[0]))
	suite.Equal(types.PositionLong, suite.strategy.Position())
	suite.Equal(100.0, suite.strategy.EntryPrice().Unwrap())
	suite.Empty(suite.strategy.Trades())

	// already in the target state
	suite.False(suite.strategy.ProcessSignal(types.SignalBuy, candles[1]))
	suite.Equal(100.0, suite.strategy.EntryPrice().Unwrap())
	suite.Len(suite.strategy.EquityCurve(), 2)

	open := suite.strategy.OpenTrade()
	suite.True(open.IsSome())
	suite.Equal(20.0, open.Unwrap().PnL)
}

func (suite *StrategyStateTestSuite) TestSellWhileLongClosesPosition() {
	candles := candlesFromCloses(100, 90, 115)

	suite.True(suite.strategy.ProcessSignal(types.SignalBuy, candles[0]))
	suite.False(suite.strategy.ProcessSignal(types.SignalHold, candles[1]))
	suite.True(suite.strategy.ProcessSignal(types.SignalSell, candles[2]))

	suite.Equal(types.PositionFlat, suite.strategy.Position())
	suite.True(suite.strategy.EntryPrice().IsNone())
	suite.True(suite.strategy.OpenTrade().IsNone())

	trades := suite.strategy.Trades()
	suite.Len(trades, 1)
	suite.Equal(int64(0), trades[0].EntryTime)
	suite.Equal(int64(120), trades[0].ExitTime)
	suite.Equal(30.0, trades[0].PnL)
	suite.Equal(15.0, trades[0].PnLPercent)
	suite.Equal(types.ExitReasonSignal, trades[0].ExitReason)

	curve := suite.strategy.EquityCurve()
	suite.Equal([]types.EquityPoint{
		{Timestamp: 0, Equity: 1000},
		{Timestamp: 60, Equity: 980},
		{Timestamp: 120, Equity: 1030},
	}, curve)

	metrics := suite.strategy.Metrics()
	suite.Equal(30.0, metrics.TotalPnL)
	suite.Equal(1.0, metrics.WinRate)
	suite.Equal(20.0, metrics.MaxDrawdown)
	suite.Equal(1030.0, metrics.FinalEquity)
}

func (suite *StrategyStateTestSuite) TestSellWhileFlatIsNoOp() {
	candle := candlesFromCloses(100)[0]

	suite.False(suite.strategy.ProcessSignal(types.SignalSell, candle))
	suite.Equal(types.PositionFlat, suite.strategy.Position())
	suite.Empty(suite.strategy.Trades())
	suite.Len(suite.strategy.EquityCurve(), 1)
}

func (suite *StrategyStateTestSuite) TestHoldOnlyAppendsEquity() {
	candles := candlesFromCloses(100, 101, 102, 103)

	suite.True(suite.strategy.ProcessSignal(types.SignalBuy, candles[0]))

	for i, c := range candles[1:] {
		position := suite.strategy.Position()
		entry := suite.strategy.EntryPrice()
		trades := suite.strategy.Trades()

		suite.False(suite.strategy.ProcessSignal(types.SignalHold, c))

		suite.Equal(position, suite.strategy.Position())
		suite.Equal(entry, suite.strategy.EntryPrice())
		suite.Equal(trades, suite.strategy.Trades())
		suite.Len(suite.strategy.EquityCurve(), i+2)
	}
}

func (suite *StrategyStateTestSuite) TestReturnedSlicesAreCopies() {
	candles := candlesFromCloses(100, 110)
	suite.strategy.ProcessSignal(types.SignalBuy, candles[0])
	suite.strategy.ProcessSignal(types.SignalSell, candles[1])

	trades := suite.strategy.Trades()
	trades[0].PnL = -1
	curve := suite.strategy.EquityCurve()
	curve[0].Equity = -1

	suite.Equal(20.0, suite.strategy.Trades()[0].PnL)
	suite.Equal(1000.0, suite.strategy.EquityCurve()[0].Equity)
}

func (suite *StrategyStateTestSuite) TestClosePositionDoesNotAddEquityPoint() {
	candles := candlesFromCloses(100, 105)

	suite.False(suite.strategy.ClosePosition(candles[0]))

	suite.strategy.ProcessSignal(types.SignalBuy, candles[0])
	suite.strategy.ProcessSignal(types.SignalHold, candles[1])
	suite.True(suite.strategy.ClosePosition(candles[1]))

	suite.Equal(types.PositionFlat, suite.strategy.Position())
	suite.Len(suite.strategy.EquityCurve(), 2)

	trades := suite.strategy.Trades()
	suite.Len(trades, 1)
	suite.Equal(types.ExitReasonForceClose, trades[0].ExitReason)
	suite.Equal(10.0, trades[0].PnL)
	suite.Equal(0.0, suite.strategy.Metrics().UnrealizedPnL)
	suite.Equal(1010.0, suite.strategy.Metrics().FinalEquity)
}

func (suite *StrategyStateTestSuite) TestUnrealizedPnLInMetrics() {
	candles := candlesFromCloses(100, 95)
	suite.strategy.ProcessSignal(types.SignalBuy, candles[0])
	suite.strategy.ProcessSignal(types.SignalHold, candles[1])

	metrics := suite.strategy.Metrics()
	suite.Equal(0, metrics.TotalTrades)
	suite.Equal(-10.0, metrics.UnrealizedPnL)
	suite.Equal(990.0, metrics.FinalEquity)
}

func (suite *StrategyStateTestSuite) TestSetInitialCapital() {
	err := suite.strategy.SetInitialCapital(0)
	suite.Equal(errors.ErrCodeInvalidCapital, errors.GetCode(err))

	err = suite.strategy.SetInitialCapital(-5)
	suite.Error(err)

	suite.strategy.ProcessSignal(types.SignalBuy, candlesFromCloses(100)[0])
	suite.NoError(suite.strategy.SetInitialCapital(5000))

	suite.Equal(5000.0, suite.strategy.InitialCapital())
	suite.Equal(types.PositionFlat, suite.strategy.Position())
	suite.Empty(suite.strategy.EquityCurve())
}

func (suite *StrategyStateTestSuite) TestPositionInvariantUnderRandomSignals() {
	signals := []types.Signal{
		types.SignalSell, types.SignalBuy, types.SignalBuy, types.SignalHold, types.SignalSell,
		types.SignalSell, types.SignalBuy, types.SignalHold, types.SignalSell, types.SignalBuy,
	}
	candles := candlesFromCloses(10, 11, 12, 13, 14, 15, 16, 17, 18, 19)

	opens := 0
	closes := 0

	for i, signal := range signals {
		before := suite.strategy.Position()
		changed := suite.strategy.ProcessSignal(signal, candles[i])

		if changed && before == types.PositionFlat {
			opens++
		}

		if changed && before == types.PositionLong {
			closes++
			suite.Equal(types.SignalSell, signal)
		}

		suite.Equal(suite.strategy.Position() == types.PositionLong, suite.strategy.EntryPrice().IsSome())
		suite.LessOrEqual(len(suite.strategy.Trades()), opens)
		suite.Len(suite.strategy.EquityCurve(), i+1)
	}

	suite.Equal(3, opens)
	suite.Equal(2, closes)
	suite.Len(suite.strategy.Trades(), closes)
}

func (suite *StrategyStateTestSuite) TestEquityCurveMarksToMarketAcrossTrades() {
	candles := candlesFromCloses(100, 104, 110, 90, 95, 80)
	signals := []types.Signal{
		types.SignalBuy, types.SignalHold, types.SignalSell,
		types.SignalBuy, types.SignalHold, types.SignalSell,
	}

	for i, signal := range signals {
		suite.strategy.ProcessSignal(signal, candles[i])
	}

	equity := make([]float64, 0, len(candles))
	for _, point := range suite.strategy.EquityCurve() {
		equity = append(equity, point.Equity)
	}

	// quantity 2: +20 on the first trade, -20 on the second
	suite.Equal([]float64{1000, 1008, 1020, 1020, 1030, 1000}, equity)
	suite.Equal(1000.0, suite.strategy.Metrics().FinalEquity)

	suite.NoError(suite.strategy.SetInitialCapital(500))
	suite.strategy.ProcessSignal(types.SignalHold, candles[0])
	suite.Equal(500.0, suite.strategy.EquityCurve()[0].Equity)
}

func BenchmarkProcessSignalHold(b *testing.B) {
	s, err := New(types.StrategyKindMACD, Params{})
	if err != nil {
		b.Fatal(err)
	}

	candles := candlesFromCloses(100, 101)
	s.ProcessSignal(types.SignalBuy, candles[0])

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.ProcessSignal(types.SignalHold, candles[1])
	}
}
