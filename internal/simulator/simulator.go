package simulator

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/datasource"
	"github.com/rxtech-lab/argo-sweep/internal/indicator"
	"github.com/rxtech-lab/argo-sweep/internal/logger"
	"github.com/rxtech-lab/argo-sweep/internal/strategy"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"go.uber.org/zap"
)

// StepStatus tells whether a step processed a candle.
type StepStatus string

const (
	StepStatusOK       StepStatus = "ok"
	StepStatusFinished StepStatus = "finished"
)

// CreateSessionRequest selects the candles and the strategy of a new session.
type CreateSessionRequest struct {
	Symbol    string
	Timeframe types.Timeframe
	Kind      types.StrategyKind
	Params    strategy.Params
	// InitialCapital defaults to strategy.DefaultInitialCapital when zero.
	InitialCapital float64
	Start          optional.Option[time.Time]
	End            optional.Option[time.Time]
}

// SessionInfo describes a created session.
type SessionInfo struct {
	ID             uuid.UUID            `json:"id"`
	Symbol         string               `json:"symbol"`
	Timeframe      types.Timeframe      `json:"timeframe"`
	StrategyName   string               `json:"strategy_name"`
	Config         types.StrategyConfig `json:"config"`
	InitialCapital float64              `json:"initial_capital"`
	TotalCandles   int                  `json:"total_candles"`
}

// Step is the outcome of processing one candle.
type Step struct {
	Index      int                                     `json:"index"`
	Candle     types.Candle                            `json:"candle"`
	Signal     types.Signal                            `json:"signal"`
	Position   types.Position                          `json:"position"`
	Equity     float64                                 `json:"equity"`
	Indicators map[types.IndicatorType]indicator.Value `json:"indicators"`
	// CurrentTrade is the open position marked at this candle, if any.
	CurrentTrade *types.Trade `json:"current_trade,omitempty"`
	// LastTrade is the most recent completed trade, if any.
	LastTrade *types.Trade `json:"last_trade,omitempty"`
}

// StepResult is returned by Manager.Step. Step is nil once every candle has been processed.
type StepResult struct {
	Status    StepStatus    `json:"status"`
	Step      *Step         `json:"step,omitempty"`
	Remaining int           `json:"remaining"`
	Total     int           `json:"total"`
	Metrics   types.Metrics `json:"metrics"`
}

// SessionState is a snapshot of a session.
type SessionState struct {
	Info         SessionInfo   `json:"info"`
	CurrentIndex int           `json:"current_index"`
	Remaining    int           `json:"remaining"`
	Metrics      types.Metrics `json:"metrics"`
	History      []Step        `json:"history"`
}

type session struct {
	mu       sync.Mutex
	info     SessionInfo
	candles  []types.Candle
	strategy strategy.Strategy
	index    int
	history  []Step
	// broken holds the invariant violation that stopped the session until Reset.
	broken   error
}

// Manager owns step-through sessions. It is safe for concurrent use.
type Manager struct {
	source      datasource.CandleSource
	log         *logger.Logger
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*session
	newStrategy func(types.StrategyKind, strategy.Params) (strategy.Strategy, error)
}

// NewManager creates a manager reading candles from source.
func NewManager(source datasource.CandleSource, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Manager{
		source:      source,
		log:         log,
		mu:          sync.RWMutex{},
		sessions:    make(map[uuid.UUID]*session),
		newStrategy: strategy.New,
	}
}

// Create loads the candles and builds the strategy of a new session.
func (m *Manager) Create(ctx context.Context, req CreateSessionRequest) (SessionInfo, error) {
	s, err := m.newStrategy(req.Kind, req.Params)
	if err != nil {
		return SessionInfo{}, err
	}

	capital := req.InitialCapital
	if capital == 0 {
		capital = strategy.DefaultInitialCapital
	}

	if err := s.SetInitialCapital(capital); err != nil {
		return SessionInfo{}, err
	}

	loaded, err := m.source.GetCandles(ctx, req.Symbol, req.Timeframe, req.Start, req.End)
	if err != nil {
		return SessionInfo{}, err
	}

	candles := slices.DeleteFunc(slices.Clone(loaded), func(c types.Candle) bool { return !c.Closed })
	if len(candles) == 0 {
		return SessionInfo{}, errors.NewInsufficientDataErrorf(1, 0, req.Symbol, "no candles found for %s %s", req.Symbol, req.Timeframe)
	}

	info := SessionInfo{
		ID:             uuid.New(),
		Symbol:         req.Symbol,
		Timeframe:      req.Timeframe,
		StrategyName:   s.Name(),
		Config:         s.Config(),
		InitialCapital: capital,
		TotalCandles:   len(candles),
	}

	m.mu.Lock()
	m.sessions[info.ID] = &session{
		mu:       sync.Mutex{},
		info:     info,
		candles:  candles,
		strategy: s,
		index:    0,
		history:  []Step{},
		broken:   nil,
	}
	m.mu.Unlock()

	m.log.Info("Created simulator session",
		zap.String("session_id", info.ID.String()),
		zap.String("strategy", info.StrategyName),
		zap.String("symbol", info.Symbol),
		zap.Int("candles", info.TotalCandles),
	)

	return info, nil
}

// Step processes the next candle of a session.
func (m *Manager) Step(id uuid.UUID) (StepResult, error) {
	sess, err := m.get(id)
	if err != nil {
		return StepResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.broken != nil {
		return StepResult{}, sess.broken
	}

	total := len(sess.candles)
	if sess.index >= total {
		return StepResult{
			Status:    StepStatusFinished,
			Step:      nil,
			Remaining: 0,
			Total:     total,
			Metrics:   sess.strategy.Metrics(),
		}, nil
	}

	candle := sess.candles[sess.index]
	signal := sess.strategy.OnCandle(candle)
	if changed := sess.strategy.ProcessSignal(signal, candle); !changed && signal != types.SignalHold {
		m.log.Error("Strategy emitted a signal its state refused",
			zap.String("session_id", id.String()),
			zap.String("strategy", sess.info.StrategyName),
			zap.String("signal", string(signal)),
			zap.String("position", string(sess.strategy.Position())),
			zap.Int64("timestamp", candle.Timestamp),
		)

		sess.broken = errors.Newf(errors.ErrCodeInvariantViolation, "strategy %s emitted %s while %s at %d",
			sess.info.StrategyName, signal, sess.strategy.Position(), candle.Timestamp)

		return StepResult{}, sess.broken
	}

	step := Step{
		Index:        sess.index,
		Candle:       candle,
		Signal:       signal,
		Position:     sess.strategy.Position(),
		Equity:       lastEquity(sess.strategy),
		Indicators:   sess.strategy.Indicators(),
		CurrentTrade: nil,
		LastTrade:    nil,
	}

	if trade := sess.strategy.OpenTrade(); trade.IsSome() {
		open := trade.Unwrap()
		step.CurrentTrade = &open
	}

	if trades := sess.strategy.Trades(); len(trades) > 0 {
		last := trades[len(trades)-1]
		step.LastTrade = &last
	}

	sess.history = append(sess.history, step)
	sess.index++

	return StepResult{
		Status:    StepStatusOK,
		Step:      &step,
		Remaining: total - sess.index,
		Total:     total,
		Metrics:   sess.strategy.Metrics(),
	}, nil
}

// State returns a snapshot of a session including its step history.
func (m *Manager) State(id uuid.UUID) (SessionState, error) {
	sess, err := m.get(id)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return SessionState{
		Info:         sess.info,
		CurrentIndex: sess.index,
		Remaining:    len(sess.candles) - sess.index,
		Metrics:      sess.strategy.Metrics(),
		History:      slices.Clone(sess.history),
	}, nil
}

// Reset rewinds a session to its first candle and clears the strategy.
func (m *Manager) Reset(id uuid.UUID) error {
	sess, err := m.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.index = 0
	sess.history = []Step{}
	sess.broken = nil
	sess.strategy.Reset()

	return nil
}

// Delete removes a session.
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return sessionNotFound(id)
	}

	delete(m.sessions, id)

	return nil
}

// Sessions lists the ids of live sessions.
func (m *Manager) Sessions() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })

	return ids
}

func (m *Manager) get(id uuid.UUID) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, sessionNotFound(id)
	}

	return sess, nil
}

func sessionNotFound(id uuid.UUID) error {
	return errors.Newf(errors.ErrCodeSessionNotFound, "session %s not found", id)
}

func lastEquity(s strategy.Strategy) float64 {
	curve := s.EquityCurve()
	if len(curve) == 0 {
		return s.InitialCapital()
	}

	return curve[len(curve)-1].Equity
}
