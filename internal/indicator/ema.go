package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// EMA indicator implements Exponential Moving Average calculation.
// It is seeded with the simple average of the first period closes.
type EMA struct {
	period int
	k      float64
	seed   []float64
	value  float64
	ready  bool
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return newEMA(20) // Default period
}

func newEMA(period int) *EMA {
	return &EMA{
		period: period,
		k:      2.0 / float64(period+1),
		seed:   make([]float64, 0, period),
		value:  0,
		ready:  false,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	*e = *newEMA(period)

	return nil
}

// Update consumes one close.
func (e *EMA) Update(close float64) optional.Option[Value] {
	if !e.ready {
		e.seed = append(e.seed, close)
		if len(e.seed) < e.period {
			return optional.None[Value]()
		}

		sum := 0.0
		for _, v := range e.seed {
			sum += v
		}

		e.value = sum / float64(e.period)
		e.ready = true
		e.seed = e.seed[:0]

		return e.Last()
	}

	e.value += e.k * (close - e.value)

	return e.Last()
}

// Last returns the current EMA value.
func (e *EMA) Last() optional.Option[Value] {
	if !e.ready {
		return optional.None[Value]()
	}

	return optional.Some(Value{Type: types.IndicatorTypeEMA, EMA: e.value}) //nolint:exhaustruct
}

func (e *EMA) Ready() bool {
	return e.ready
}

func (e *EMA) WarmupPeriod() int {
	return e.period
}

func (e *EMA) Reset() {
	e.seed = e.seed[:0]
	e.value = 0
	e.ready = false
}
