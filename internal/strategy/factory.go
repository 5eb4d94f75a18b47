package strategy

import (
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// New builds a strategy of kind from its defaults overridden by params.
func New(kind types.StrategyKind, params Params) (Strategy, error) {
	cfg, err := NewConfig(kind)
	if err != nil {
		return nil, err
	}

	if err := ApplyParams(&cfg, params); err != nil {
		return nil, err
	}

	return NewFromConfig(cfg)
}

// NewFromConfig builds a strategy from a complete config.
func NewFromConfig(cfg types.StrategyConfig) (Strategy, error) {
	switch cfg.Kind {
	case types.StrategyKindRSI:
		return asStrategy(NewRSIStrategy(cfg))
	case types.StrategyKindMACD:
		return asStrategy(NewMACDStrategy(cfg))
	case types.StrategyKindRSIMACD:
		return asStrategy(NewRSIMACDStrategy(cfg))
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy kind: %q", cfg.Kind)
	}
}

// asStrategy keeps a failed constructor from returning a non-nil interface around a nil pointer.
func asStrategy[T Strategy](s T, err error) (Strategy, error) {
	if err != nil {
		return nil, err
	}

	return s, nil
}

// SupportedKinds lists the strategy kinds New accepts.
func SupportedKinds() []types.StrategyKind {
	return []types.StrategyKind{types.StrategyKindRSI, types.StrategyKindMACD, types.StrategyKindRSIMACD}
}
