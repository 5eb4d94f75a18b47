package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/shopspring/decimal"
)

// positionState is the mutable part of a strategy. Only ProcessSignal and ClosePosition write to it.
type positionState struct {
	initialCapital float64
	quantity       float64

	position   types.Position
	entryPrice float64
	entryTime  int64

	realized decimal.Decimal
	// initialCapital plus realized, refreshed once per closed trade
	settled     float64
	trades      []types.Trade
	equityCurve []types.EquityPoint

	lastClose float64
	lastTime  int64
}

func newPositionState(initialCapital, quantity float64) *positionState {
	s := &positionState{ //nolint:exhaustruct
		initialCapital: initialCapital,
		quantity:       quantity,
	}
	s.reset()

	return s
}

func (s *positionState) reset() {
	s.position = types.PositionFlat
	s.entryPrice = 0
	s.entryTime = 0
	s.realized = decimal.Zero
	s.settled = s.initialCapital
	s.trades = make([]types.Trade, 0)
	s.equityCurve = make([]types.EquityPoint, 0)
	s.lastClose = 0
	s.lastTime = 0
}

func (s *positionState) open(candle types.Candle) {
	s.position = types.PositionLong
	s.entryPrice = candle.Close
	s.entryTime = candle.Timestamp
}

func (s *positionState) close(candle types.Candle, reason types.ExitReason) types.Trade {
	trade := types.NewTrade(s.entryTime, s.entryPrice, candle.Timestamp, candle.Close,
		types.DirectionLong, s.quantity, reason)

	s.trades = append(s.trades, trade)
	s.realized = s.realized.Add(decimal.NewFromFloat(trade.PnL))
	s.settled = decimal.NewFromFloat(s.initialCapital).Add(s.realized).InexactFloat64()
	s.position = types.PositionFlat
	s.entryPrice = 0
	s.entryTime = 0

	return trade
}

func (s *positionState) mark(candle types.Candle) {
	s.lastClose = candle.Close
	s.lastTime = candle.Timestamp
}

func (s *positionState) unrealized() float64 {
	if s.position != types.PositionLong {
		return 0
	}

	return (s.lastClose - s.entryPrice) * s.quantity
}

func (s *positionState) equity() float64 {
	return s.settled + s.unrealized()
}

func (s *positionState) appendEquity() {
	s.equityCurve = append(s.equityCurve, types.EquityPoint{
		Timestamp: s.lastTime,
		Equity:    s.equity(),
	})
}

func (s *positionState) entry() optional.Option[float64] {
	if s.position != types.PositionLong {
		return optional.None[float64]()
	}

	return optional.Some(s.entryPrice)
}

func (s *positionState) openTrade() optional.Option[types.Trade] {
	if s.position != types.PositionLong {
		return optional.None[types.Trade]()
	}

	return optional.Some(types.Trade{
		EntryTime:  s.entryTime,
		EntryPrice: s.entryPrice,
		ExitTime:   0,
		ExitPrice:  s.lastClose,
		Direction:  types.DirectionLong,
		Quantity:   s.quantity,
		PnL:        s.unrealized(),
		PnLPercent: 0,
		ExitReason: "",
	})
}

func (s *positionState) metrics() types.Metrics {
	return types.ComputeMetrics(s.trades, s.equityCurve, s.initialCapital, s.unrealized())
}
