package sweep

import (
	"cmp"
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-sweep/internal/backtest/engine"
	"github.com/rxtech-lab/argo-sweep/internal/logger"
	"github.com/rxtech-lab/argo-sweep/internal/metrics"
	"github.com/rxtech-lab/argo-sweep/internal/strategy"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"go.uber.org/zap"
)

// OnProgressCallback is called from the collector after each processed combination.
type OnProgressCallback func(done int, total int)

// Options tunes an Orchestrator.
type Options struct {
	// Workers is the pool size. Zero means runtime.NumCPU().
	Workers int `yaml:"workers" json:"workers" validate:"gte=0"`
	// Timeout bounds the whole sweep. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// KeepResults stores the full BacktestResult on every entry.
	KeepResults bool                `yaml:"keep_results" json:"keep_results"`
	OnProgress  *OnProgressCallback `yaml:"-" json:"-"`
}

// Request describes one sweep.
type Request struct {
	Kind types.StrategyKind
	Axes []Range
	// FixedParams apply to every combination. Axis values override them.
	FixedParams    strategy.Params
	Candles        []types.Candle
	InitialCapital float64
}

// Orchestrator runs a strategy over every combination of a parameter grid.
type Orchestrator struct {
	engine   engine.Engine
	recorder metrics.Recorder
	log      *logger.Logger
	options  Options
}

// outcome is what a worker hands to the collector.
type outcome struct {
	combination types.Combination
	status      metrics.Status
	entry       types.SweepEntry
	skip        types.SweepSkip
	failure     types.SweepFailure
	duration    time.Duration
	// cancelled combinations were interrupted and are not counted as processed
	cancelled bool
}

// NewOrchestrator creates an orchestrator. A nil recorder or logger disables that concern.
func NewOrchestrator(e engine.Engine, recorder metrics.Recorder, log *logger.Logger, options Options) *Orchestrator {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}

	return &Orchestrator{
		engine:   e,
		recorder: recorder,
		log:      log,
		options:  options,
	}
}

// Sweep runs every valid combination of req.Axes against the same candles and capital.
// Combinations the strategy rejects as invalid configuration are skipped and run errors are
// recorded as failures; neither stops the sweep. When ctx is cancelled or the timeout expires
// the partial result is returned together with an ErrCodeSweepCancelled error.
func (o *Orchestrator) Sweep(ctx context.Context, req Request) (*types.SweepResult, error) {
	grid, err := o.validate(req)
	if err != nil {
		return nil, err
	}

	if o.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.options.Timeout)

		defer cancel()
	}

	started := time.Now()
	total := grid.Size()
	kind := string(req.Kind)
	result := &types.SweepResult{
		ID:                uuid.New(),
		StrategyKind:      req.Kind,
		Symbol:            req.Candles[0].Symbol,
		Timeframe:         req.Candles[0].Timeframe,
		InitialCapital:    req.InitialCapital,
		TotalCombinations: total,
		Entries:           []types.SweepEntry{},
		Skipped:           []types.SweepSkip{},
		Failures:          []types.SweepFailure{},
		Partial:           false,
		Duration:          0,
	}

	log := o.log.With(zap.String("sweep_id", result.ID.String()), zap.String("strategy", kind))
	log.Info("Starting sweep", zap.Int("combinations", total), zap.Int("workers", o.options.Workers))
	o.recorder.SweepStarted(kind, total)

	jobs := make(chan types.Combination)
	results := make(chan outcome, o.options.Workers)

	go func() {
		defer close(jobs)

		for combination := range grid.All() {
			select {
			case <-ctx.Done():
				return
			case jobs <- combination:
			}
		}
	}()

	var wg sync.WaitGroup
	for range o.options.Workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for combination := range jobs {
				if ctx.Err() != nil {
					return
				}

				results <- o.evaluate(ctx, req, combination)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	done := 0
	for out := range results {
		if out.cancelled {
			continue
		}

		switch out.status {
		case metrics.StatusSuccess:
			result.Entries = append(result.Entries, out.entry)
		case metrics.StatusSkipped:
			log.Debug("Skipping combination", zap.Int("index", out.combination.Index), zap.String("reason", out.skip.Reason))
			result.Skipped = append(result.Skipped, out.skip)
		case metrics.StatusFailed:
			log.Warn("Combination failed",
				zap.Int("index", out.combination.Index),
				zap.Int("code", int(out.failure.Code)),
				zap.String("error", out.failure.Message),
			)
			result.Failures = append(result.Failures, out.failure)
		}

		o.recorder.CombinationFinished(kind, out.status, out.duration)

		done++
		if o.options.OnProgress != nil {
			(*o.options.OnProgress)(done, total)
		}
	}

	rank(result)

	result.Partial = done < total
	result.Duration = time.Since(started)
	o.recorder.SweepFinished(kind, result.Partial, result.Duration)

	if result.Partial {
		log.Warn("Sweep interrupted", zap.Int("processed", done), zap.Int("combinations", total), zap.Error(ctx.Err()))

		return result, errors.Wrapf(errors.ErrCodeSweepCancelled, ctx.Err(), "sweep stopped after %d of %d combinations", done, total)
	}

	log.Info("Sweep finished",
		zap.Int("entries", len(result.Entries)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failures", len(result.Failures)),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}

// validate rejects a request that no combination could run against.
func (o *Orchestrator) validate(req Request) (*Grid, error) {
	if o.engine == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "backtest engine is required")
	}

	if !slices.Contains(strategy.SupportedKinds(), req.Kind) {
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy kind: %q", req.Kind)
	}

	cfg, err := strategy.NewConfig(req.Kind)
	if err != nil {
		return nil, err
	}

	if req.InitialCapital <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %v", req.InitialCapital)
	}

	if len(req.Candles) == 0 {
		return nil, errors.NewInsufficientDataError(1, 0, "", "sweep requires at least one candle")
	}

	grid, err := NewGrid(req.Axes...)
	if err != nil {
		return nil, err
	}

	// unknown parameter names fail the whole sweep instead of skipping every combination
	sample := strategy.Params{}
	for name, value := range req.FixedParams {
		sample[name] = value
	}

	for _, axis := range grid.Axes() {
		sample[axis.Name] = float64(axis.Start)
	}

	if err := strategy.ApplyParams(&cfg, sample); err != nil {
		return nil, err
	}

	return grid, nil
}

// evaluate runs one combination with a fresh strategy.
func (o *Orchestrator) evaluate(ctx context.Context, req Request, combination types.Combination) outcome {
	started := time.Now()
	out := outcome{combination: combination} //nolint:exhaustruct

	params := make(strategy.Params, len(req.FixedParams)+len(combination.Params))
	for name, value := range req.FixedParams {
		params[name] = value
	}

	for name, value := range combination.Params {
		params[name] = float64(value)
	}

	s, err := strategy.New(req.Kind, params)
	if err != nil {
		if errors.IsInvalidConfig(err) {
			out.status = metrics.StatusSkipped
			out.skip = types.SweepSkip{Combination: combination, Reason: err.Error()}

			return out
		}

		out.status = metrics.StatusFailed
		out.failure = failure(combination, err)

		return out
	}

	run, err := o.engine.Run(ctx, s, req.Candles, req.InitialCapital)
	out.duration = time.Since(started)

	if err != nil {
		if ctx.Err() != nil && errors.HasCode(err, errors.ErrCodeBacktestCancelled) {
			out.cancelled = true

			return out
		}

		out.status = metrics.StatusFailed
		out.failure = failure(combination, err)

		return out
	}

	out.status = metrics.StatusSuccess
	out.entry = types.SweepEntry{Combination: combination, Config: s.Config(), Metrics: run.Metrics, Result: nil}

	if o.options.KeepResults {
		out.entry.Result = &run
	}

	return out
}

func failure(combination types.Combination, err error) types.SweepFailure {
	return types.SweepFailure{
		Combination: combination,
		Code:        errors.GetCode(err),
		Message:     err.Error(),
	}
}

// rank sorts entries by total pnl ascending with ties in enumeration order.
// Skips and failures are ordered by enumeration index.
func rank(result *types.SweepResult) {
	slices.SortFunc(result.Entries, func(a, b types.SweepEntry) int {
		if c := cmp.Compare(a.Metrics.TotalPnL, b.Metrics.TotalPnL); c != 0 {
			return c
		}

		return cmp.Compare(a.Combination.Index, b.Combination.Index)
	})

	slices.SortFunc(result.Skipped, func(a, b types.SweepSkip) int {
		return cmp.Compare(a.Combination.Index, b.Combination.Index)
	})

	slices.SortFunc(result.Failures, func(a, b types.SweepFailure) int {
		return cmp.Compare(a.Combination.Index, b.Combination.Index)
	})
}
