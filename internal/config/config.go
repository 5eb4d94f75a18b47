package config

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/backtest/engine"
	"github.com/rxtech-lab/argo-sweep/internal/strategy"
	"github.com/rxtech-lab/argo-sweep/internal/sweep"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/internal/version"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SchemaFileName is the file name of the generated JSON schema.
const SchemaFileName = "sweep-config.json"

// DataConfig selects the candles a sweep runs on.
type DataConfig struct {
	// Path is a parquet or CSV file readable by DuckDB.
	Path      string          `yaml:"path" json:"path" validate:"required" jsonschema:"title=Data Path,description=Parquet or CSV file with candles"`
	Symbol    string          `yaml:"symbol" json:"symbol" validate:"required" jsonschema:"title=Symbol"`
	Timeframe types.Timeframe `yaml:"timeframe" json:"timeframe" default:"1h" validate:"required" jsonschema:"title=Timeframe"`
	StartTime *time.Time      `yaml:"start_time,omitempty" json:"start_time,omitempty" jsonschema:"title=Start Time,description=Optional inclusive lower bound"`
	EndTime   *time.Time      `yaml:"end_time,omitempty" json:"end_time,omitempty" jsonschema:"title=End Time,description=Optional inclusive upper bound"`
}

// Start returns the optional lower time bound.
func (d DataConfig) Start() optional.Option[time.Time] {
	if d.StartTime == nil {
		return optional.None[time.Time]()
	}

	return optional.Some(*d.StartTime)
}

// End returns the optional upper time bound.
func (d DataConfig) End() optional.Option[time.Time] {
	if d.EndTime == nil {
		return optional.None[time.Time]()
	}

	return optional.Some(*d.EndTime)
}

// StrategySection names the strategy and the parameter grid.
type StrategySection struct {
	Kind   types.StrategyKind `yaml:"kind" json:"kind" validate:"required" jsonschema:"title=Strategy Kind"`
	Ranges []sweep.Range      `yaml:"ranges" json:"ranges" validate:"required,min=1,dive" jsonschema:"title=Parameter Ranges,description=Inclusive integer ranges swept as a grid"`
	// Fixed parameters apply to every combination, for example oversold thresholds.
	Fixed map[string]float64 `yaml:"fixed,omitempty" json:"fixed,omitempty" jsonschema:"title=Fixed Parameters"`
}

// BacktestSection configures every engine run.
type BacktestSection struct {
	InitialCapital float64       `yaml:"initial_capital" json:"initial_capital" default:"100000" validate:"gt=0" jsonschema:"title=Initial Capital,minimum=0"`
	Engine         engine.Config `yaml:"engine" json:"engine"`
}

// SweepSection configures the worker pool.
type SweepSection struct {
	Workers     int           `yaml:"workers" json:"workers" default:"0" validate:"gte=0" jsonschema:"title=Workers,description=Zero uses every CPU"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" default:"0s" jsonschema:"title=Timeout,description=Whole sweep timeout. Zero disables it"`
	KeepResults bool          `yaml:"keep_results" json:"keep_results" default:"false"`
	Top         int           `yaml:"top" json:"top" default:"3" validate:"gt=0" jsonschema:"title=Top,description=Number of best and worst entries to report"`
}

// OutputSection configures where results are written.
type OutputSection struct {
	Path string `yaml:"path" json:"path" default:"results" validate:"required" jsonschema:"title=Output Directory"`
}

// SweepConfig is the YAML file accepted by the sweep command.
type SweepConfig struct {
	Version  string          `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=argo-sweep version the file was written for"`
	Data     DataConfig      `yaml:"data" json:"data"`
	Strategy StrategySection `yaml:"strategy" json:"strategy"`
	Backtest BacktestSection `yaml:"backtest" json:"backtest"`
	Sweep    SweepSection    `yaml:"sweep" json:"sweep"`
	Output   OutputSection   `yaml:"output" json:"output"`
}

// Default returns a complete sample configuration.
func Default() SweepConfig {
	cfg := SweepConfig{ //nolint:exhaustruct
		Version: version.GetVersion(),
		Data:    DataConfig{Path: "data/candles.parquet", Symbol: "BTCUSDT"}, //nolint:exhaustruct
		Strategy: StrategySection{
			Kind: types.StrategyKindMACD,
			Ranges: []sweep.Range{
				{Name: types.ParamFastPeriod, Start: 8, End: 24, Step: 1},
				{Name: types.ParamSlowPeriod, Start: 18, End: 52, Step: 1},
				{Name: types.ParamSignalPeriod, Start: 5, End: 12, Step: 1},
			},
			Fixed: nil,
		},
	}

	// tags are static
	_ = defaults.Set(&cfg)

	return cfg
}

// Load reads and validates a YAML config file.
func Load(path string) (SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SweepConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse decodes YAML, applies defaults to missing fields and validates the result.
func Parse(data []byte) (SweepConfig, error) {
	var cfg SweepConfig

	if err := defaults.Set(&cfg); err != nil {
		return SweepConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to apply config defaults", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SweepConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return SweepConfig{}, err
	}

	return cfg, nil
}

// Validate checks struct tags, the file version, the timeframe, the strategy kind and that
// every parameter name is known.
func (c SweepConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid sweep config", err)
	}

	if err := version.CheckCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	if !c.Data.Timeframe.IsValid() {
		return errors.Newf(errors.ErrCodeInvalidTimeframe, "unknown timeframe %q", c.Data.Timeframe)
	}

	if c.Data.StartTime != nil && c.Data.EndTime != nil && c.Data.EndTime.Before(*c.Data.StartTime) {
		return errors.New(errors.ErrCodeInvalidRange, "data end_time is before start_time")
	}

	cfg, err := strategy.NewConfig(c.Strategy.Kind)
	if err != nil {
		return err
	}

	if _, err := strategy.NewFromConfig(cfg); err != nil {
		return err
	}

	if err := strategy.ApplyParams(&cfg, c.FixedParams()); err != nil {
		return err
	}

	if _, err := sweep.NewGrid(c.Strategy.Ranges...); err != nil {
		return err
	}

	for _, r := range c.Strategy.Ranges {
		if err := strategy.ApplyParams(&cfg, strategy.Params{r.Name: float64(r.Start)}); err != nil {
			return err
		}
	}

	return nil
}

// FixedParams returns the fixed parameters as strategy params.
func (c SweepConfig) FixedParams() strategy.Params {
	params := make(strategy.Params, len(c.Strategy.Fixed))
	for name, value := range c.Strategy.Fixed {
		params[name] = value
	}

	return params
}

// Options maps the sweep section to orchestrator options.
func (c SweepConfig) Options() sweep.Options {
	return sweep.Options{
		Workers:     c.Sweep.Workers,
		Timeout:     c.Sweep.Timeout,
		KeepResults: c.Sweep.KeepResults,
		OnProgress:  nil,
	}
}

// Marshal encodes the config as YAML with a schema hint for editors.
func (c SweepConfig) Marshal() ([]byte, error) {
	body, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal config", err)
	}

	return append([]byte("# yaml-language-server: $schema="+SchemaFileName+"\n"), body...), nil
}

// GenerateSchema builds the JSON schema of SweepConfig.
func GenerateSchema() *jsonschema.Schema {
	timeframes := make([]any, 0, len(types.AllTimeframes()))
	for _, tf := range types.AllTimeframes() {
		timeframes = append(timeframes, string(tf))
	}

	kinds := make([]any, 0, len(strategy.SupportedKinds()))
	for _, kind := range strategy.SupportedKinds() {
		kinds = append(kinds, string(kind))
	}

	reflector := jsonschema.Reflector{ //nolint:exhaustruct
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(types.Timeframe("")):
				return &jsonschema.Schema{Type: "string", Enum: timeframes} //nolint:exhaustruct
			case reflect.TypeOf(types.StrategyKind("")):
				return &jsonschema.Schema{Type: "string", Enum: kinds} //nolint:exhaustruct
			case reflect.TypeOf(time.Duration(0)):
				return &jsonschema.Schema{Type: "string", Pattern: `^([0-9]+(\.[0-9]+)?(ns|us|ms|s|m|h))+$`} //nolint:exhaustruct
			}

			return nil
		},
	}

	schema := reflector.Reflect(&SweepConfig{}) //nolint:exhaustruct
	schema.Title = "argo-sweep-config"
	schema.Description = "Configuration schema for a parameter sweep"

	return schema
}

// GenerateSchemaJSON renders GenerateSchema as indented JSON.
func GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal schema", err)
	}

	return string(schemaBytes), nil
}
