package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
// macd = EMA(fast) - EMA(slow), signal = EMA(signalPeriod) of macd, histogram = macd - signal.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int

	fast   *EMA
	slow   *EMA
	signal *EMA
	last   optional.Option[Value]
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return newMACD(12, 26, 9)
}

func newMACD(fastPeriod, slowPeriod, signalPeriod int) *MACD {
	return &MACD{
		fastPeriod:   fastPeriod,
		slowPeriod:   slowPeriod,
		signalPeriod: signalPeriod,
		fast:         newEMA(fastPeriod),
		slow:         newEMA(slowPeriod),
		signal:       newEMA(signalPeriod),
		last:         optional.None[Value](),
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	periods := make([]int, 0, 3)

	for i, name := range []string{"fastPeriod", "slowPeriod", "signalPeriod"} {
		period, ok := params[i].(int)
		if !ok {
			return errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
		}

		if period <= 0 {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
		}

		periods = append(periods, period)
	}

	if periods[0] >= periods[1] {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod (%d) must be less than slowPeriod (%d)", periods[0], periods[1])
	}

	*m = *newMACD(periods[0], periods[1], periods[2])

	return nil
}

// Update consumes one close.
func (m *MACD) Update(close float64) optional.Option[Value] {
	fast := m.fast.Update(close)
	slow := m.slow.Update(close)

	if fast.IsNone() || slow.IsNone() {
		return optional.None[Value]()
	}

	macd := fast.Unwrap().EMA - slow.Unwrap().EMA

	signal := m.signal.Update(macd)
	if signal.IsNone() {
		return optional.None[Value]()
	}

	signalLine := signal.Unwrap().EMA
	m.last = optional.Some(Value{ //nolint:exhaustruct
		Type:      types.IndicatorTypeMACD,
		MACD:      macd,
		Signal:    signalLine,
		Histogram: macd - signalLine,
	})

	return m.last
}

// Last returns the latest MACD value.
func (m *MACD) Last() optional.Option[Value] {
	return m.last
}

func (m *MACD) Ready() bool {
	return m.last.IsSome()
}

// WarmupPeriod is slow + signal - 1 closes.
func (m *MACD) WarmupPeriod() int {
	return m.slowPeriod + m.signalPeriod - 1
}

func (m *MACD) Reset() {
	m.fast.Reset()
	m.slow.Reset()
	m.signal.Reset()
	m.last = optional.None[Value]()
}
