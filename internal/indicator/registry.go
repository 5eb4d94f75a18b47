package indicator

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// IndicatorRegistry holds the indicators a strategy feeds, keyed by name.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(name types.IndicatorType) (Indicator, error)
	ListIndicators() []types.IndicatorType
	RemoveIndicator(name types.IndicatorType) error
	// Update feeds the close to every registered indicator
	Update(close float64)
	// Snapshot returns the latest value of every ready indicator
	Snapshot() map[types.IndicatorType]Value
	// Reset clears the state of every registered indicator
	Reset()
}

// IndicatorRegistryV1 manages the indicators of one strategy instance.
type IndicatorRegistryV1 struct {
	indicators map[types.IndicatorType]Indicator
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates a new indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[types.IndicatorType]Indicator),
		mu:         sync.RWMutex{},
	}
}

// RegisterIndicator adds an indicator to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := indicator.Name()
	if _, exists := r.indicators[name]; exists {
		return errors.Newf(errors.ErrCodeInvalidParameter, "RegisterIndicator: indicator with name %s already registered", name)
	}

	r.indicators[name] = indicator

	return nil
}

// GetIndicator retrieves an indicator by name.
func (r *IndicatorRegistryV1) GetIndicator(name types.IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "GetIndicator: indicator with name %s not found", name)
	}

	return indicator, nil
}

// ListIndicators returns all registered indicator names in sorted order.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.indicators))
	for name := range r.indicators {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; !exists {
		return errors.Newf(errors.ErrCodeDataNotFound, "RemoveIndicator: indicator with name %s not found", name)
	}

	delete(r.indicators, name)

	return nil
}

func (r *IndicatorRegistryV1) Update(close float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, indicator := range r.indicators {
		indicator.Update(close)
	}
}

func (r *IndicatorRegistryV1) Snapshot() map[types.IndicatorType]Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[types.IndicatorType]Value, len(r.indicators))

	for name, indicator := range r.indicators {
		if last := indicator.Last(); last.IsSome() {
			snapshot[name] = last.Unwrap()
		}
	}

	return snapshot
}

func (r *IndicatorRegistryV1) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, indicator := range r.indicators {
		indicator.Reset()
	}
}
