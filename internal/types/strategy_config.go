package types

// StrategyKind selects the signal rules of a strategy.
type StrategyKind string

const (
	StrategyKindRSI     StrategyKind = "rsi"
	StrategyKindMACD    StrategyKind = "macd"
	StrategyKindRSIMACD StrategyKind = "rsi_macd"
)

// StrategyConfig is the immutable parameter set of one strategy instance.
// Only the fields used by Kind are validated.
type StrategyConfig struct {
	Kind StrategyKind `yaml:"kind" json:"kind" jsonschema:"enum=rsi,enum=macd,enum=rsi_macd"`

	RSIPeriod  int     `yaml:"rsi_period" json:"rsi_period" default:"14"`
	Oversold   float64 `yaml:"oversold" json:"oversold" default:"30" validate:"gte=0,lte=100"`
	Overbought float64 `yaml:"overbought" json:"overbought" default:"70" validate:"gte=0,lte=100"`

	FastPeriod   int `yaml:"fast_period" json:"fast_period" default:"12"`
	SlowPeriod   int `yaml:"slow_period" json:"slow_period" default:"26"`
	SignalPeriod int `yaml:"signal_period" json:"signal_period" default:"9"`

	// StopLossPercent closes a long position when the close drops this many percent below the entry. Zero disables it.
	StopLossPercent float64 `yaml:"stop_loss_percent" json:"stop_loss_percent" validate:"gte=0,lt=100"`
	// TakeProfitPercent closes a long position when the close rises this many percent above the entry. Zero disables it.
	TakeProfitPercent float64 `yaml:"take_profit_percent" json:"take_profit_percent" validate:"gte=0"`
	// Quantity traded on every entry.
	Quantity float64 `yaml:"quantity" json:"quantity" default:"1" validate:"gt=0"`
}

// UsesRSI reports whether the RSI parameters are relevant for the kind.
func (c StrategyConfig) UsesRSI() bool {
	return c.Kind == StrategyKindRSI || c.Kind == StrategyKindRSIMACD
}

// UsesMACD reports whether the MACD parameters are relevant for the kind.
func (c StrategyConfig) UsesMACD() bool {
	return c.Kind == StrategyKindMACD || c.Kind == StrategyKindRSIMACD
}
