package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// RSI represents the Relative Strength Index indicator with Wilder smoothing.
// The first value needs period price changes, that is period+1 closes.
type RSI struct {
	period int

	prevClose float64
	hasPrev   bool
	// seed window occupancy, never above period
	seedCount int
	sumGain   float64
	sumLoss   float64

	avgGain float64
	avgLoss float64
	ready   bool
	value   float64
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{period: 14} //nolint:exhaustruct // Default period
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
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

	r.period = period
	r.Reset()

	return nil
}

// Update consumes one close.
func (r *RSI) Update(close float64) optional.Option[Value] {
	if !r.hasPrev {
		r.prevClose = close
		r.hasPrev = true

		return optional.None[Value]()
	}

	change := close - r.prevClose
	r.prevClose = close

	gain := max(change, 0)
	loss := max(-change, 0)

	if !r.ready {
		r.sumGain += gain
		r.sumLoss += loss
		r.seedCount++

		if r.seedCount < r.period {
			return optional.None[Value]()
		}

		r.avgGain = r.sumGain / float64(r.period)
		r.avgLoss = r.sumLoss / float64(r.period)
		r.ready = true
	} else {
		n := float64(r.period)
		r.avgGain = (r.avgGain*(n-1) + gain) / n
		r.avgLoss = (r.avgLoss*(n-1) + loss) / n
	}

	r.value = rsiFromAverages(r.avgGain, r.avgLoss)

	return r.Last()
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	// a flat series has no losses either and also reads 100
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}

// Last returns the current RSI value.
func (r *RSI) Last() optional.Option[Value] {
	if !r.ready {
		return optional.None[Value]()
	}

	return optional.Some(Value{Type: types.IndicatorTypeRSI, RSI: r.value}) //nolint:exhaustruct
}

func (r *RSI) Ready() bool {
	return r.ready
}

func (r *RSI) WarmupPeriod() int {
	return r.period + 1
}

func (r *RSI) Reset() {
	r.prevClose = 0
	r.hasPrev = false
	r.seedCount = 0
	r.sumGain = 0
	r.sumLoss = 0
	r.avgGain = 0
	r.avgLoss = 0
	r.ready = false
	r.value = 0
}
