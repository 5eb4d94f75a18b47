package strategy

import (
	"math"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

var validate = validator.New()

// Params is a named parameter set, for example {"fast_period": 12, "slow_period": 26}.
type Params map[string]float64

// NewConfig returns the default configuration for kind.
func NewConfig(kind types.StrategyKind) (types.StrategyConfig, error) {
	cfg := types.StrategyConfig{Kind: kind} //nolint:exhaustruct
	if err := defaults.Set(&cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to apply strategy defaults", err)
	}

	return cfg, nil
}

// ApplyParams overrides fields of cfg with params. Period parameters must be whole numbers.
func ApplyParams(cfg *types.StrategyConfig, params Params) error {
	for name, value := range params {
		switch name {
		case types.ParamRSIPeriod:
			period, err := toPeriod(name, value)
			if err != nil {
				return err
			}

			cfg.RSIPeriod = period
		case types.ParamFastPeriod:
			period, err := toPeriod(name, value)
			if err != nil {
				return err
			}

			cfg.FastPeriod = period
		case types.ParamSlowPeriod:
			period, err := toPeriod(name, value)
			if err != nil {
				return err
			}

			cfg.SlowPeriod = period
		case types.ParamSignalPeriod:
			period, err := toPeriod(name, value)
			if err != nil {
				return err
			}

			cfg.SignalPeriod = period
		case types.ParamOversold:
			cfg.Oversold = value
		case types.ParamOverbought:
			cfg.Overbought = value
		case types.ParamStopLossPercent:
			cfg.StopLossPercent = value
		case types.ParamTakeProfitPercent:
			cfg.TakeProfitPercent = value
		case types.ParamQuantity:
			cfg.Quantity = value
		default:
			return errors.Newf(errors.ErrCodeInvalidParameter, "unknown strategy parameter: %q", name)
		}
	}

	return nil
}

func toPeriod(name string, value float64) (int, error) {
	if value != math.Trunc(value) {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a whole number, got %v", name, value)
	}

	return int(value), nil
}

// ValidateConfig checks the parameters used by cfg.Kind.
func ValidateConfig(cfg types.StrategyConfig) error {
	switch cfg.Kind {
	case types.StrategyKindRSI, types.StrategyKindMACD, types.StrategyKindRSIMACD:
	default:
		return errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy kind: %q", cfg.Kind)
	}

	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy config", err)
	}

	if cfg.UsesRSI() {
		if cfg.RSIPeriod <= 0 {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "rsi_period must be positive, got %d", cfg.RSIPeriod)
		}

		if cfg.Oversold >= cfg.Overbought {
			return errors.Newf(errors.ErrCodeInvalidThreshold,
				"oversold (%v) must be less than overbought (%v)", cfg.Oversold, cfg.Overbought)
		}
	}

	if cfg.UsesMACD() {
		if cfg.FastPeriod <= 0 || cfg.SlowPeriod <= 0 || cfg.SignalPeriod <= 0 {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "macd periods must be positive, got %d/%d/%d",
				cfg.FastPeriod, cfg.SlowPeriod, cfg.SignalPeriod)
		}

		if cfg.FastPeriod >= cfg.SlowPeriod {
			return errors.Newf(errors.ErrCodeInvalidPeriod,
				"fast_period (%d) must be less than slow_period (%d)", cfg.FastPeriod, cfg.SlowPeriod)
		}
	}

	return nil
}
