package indicator

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/stretchr/testify/suite"
)

// mockIndicator is a simple mock indicator for testing the registry
type mockIndicator struct {
	name    types.IndicatorType
	updates int
	resets  int
}

func newMockIndicator(name types.IndicatorType) *mockIndicator {
	return &mockIndicator{name: name}
}

func (m *mockIndicator) Name() types.IndicatorType {
	return m.name
}

func (m *mockIndicator) Config(params ...any) error {
	return nil
}

func (m *mockIndicator) Update(close float64) optional.Option[Value] {
	m.updates++

	return m.Last()
}

func (m *mockIndicator) Last() optional.Option[Value] {
	if m.updates == 0 {
		return optional.None[Value]()
	}

	return optional.Some(Value{Type: m.name, EMA: float64(m.updates)})
}

func (m *mockIndicator) Ready() bool {
	return m.updates > 0
}

func (m *mockIndicator) WarmupPeriod() int {
	return 1
}

func (m *mockIndicator) Reset() {
	m.updates = 0
	m.resets++
}

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestNewIndicatorRegistry() {
	registry := NewIndicatorRegistry()
	suite.NotNil(registry)
}

func (suite *RegistryTestSuite) TestRegisterIndicator() {
	registry := NewIndicatorRegistry()

	indicator := newMockIndicator(types.IndicatorTypeRSI)
	err := registry.RegisterIndicator(indicator)
	suite.NoError(err)

	// Verify the indicator is registered
	retrieved, err := registry.GetIndicator(types.IndicatorTypeRSI)
	suite.NoError(err)
	suite.Equal(indicator, retrieved)
}

func (suite *RegistryTestSuite) TestRegisterIndicatorDuplicate() {
	registry := NewIndicatorRegistry()

	indicator1 := newMockIndicator(types.IndicatorTypeRSI)
	indicator2 := newMockIndicator(types.IndicatorTypeRSI)

	err := registry.RegisterIndicator(indicator1)
	suite.NoError(err)

	// Trying to register another indicator with the same name should fail
	err = registry.RegisterIndicator(indicator2)
	suite.Error(err)
	suite.Contains(err.Error(), "already registered")
}

func (suite *RegistryTestSuite) TestGetIndicatorNotFound() {
	registry := NewIndicatorRegistry()

	_, err := registry.GetIndicator(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.Contains(err.Error(), "not found")
}

func (suite *RegistryTestSuite) TestListIndicators() {
	registry := NewIndicatorRegistry()

	// Empty registry should return empty list
	indicators := registry.ListIndicators()
	suite.Empty(indicators)

	// Register some indicators
	registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeRSI))
	registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeMACD))
	registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeEMA))

	// Should now have 3 indicators
	indicators = registry.ListIndicators()
	suite.Len(indicators, 3)
	suite.Contains(indicators, types.IndicatorTypeRSI)
	suite.Contains(indicators, types.IndicatorTypeMACD)
	suite.Contains(indicators, types.IndicatorTypeEMA)
}

func (suite *RegistryTestSuite) TestRemoveIndicator() {
	registry := NewIndicatorRegistry()

	// Register an indicator
	indicator := newMockIndicator(types.IndicatorTypeRSI)
	err := registry.RegisterIndicator(indicator)
	suite.NoError(err)

	// Remove it
	err = registry.RemoveIndicator(types.IndicatorTypeRSI)
	suite.NoError(err)

	// Should no longer be found
	_, err = registry.GetIndicator(types.IndicatorTypeRSI)
	suite.Error(err)
}

func (suite *RegistryTestSuite) TestRemoveIndicatorNotFound() {
	registry := NewIndicatorRegistry()

	// Trying to remove a non-existent indicator should fail
	err := registry.RemoveIndicator(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.Contains(err.Error(), "not found")
}

func (suite *RegistryTestSuite) TestConcurrentAccess() {
	registry := NewIndicatorRegistry()

	// Test concurrent registration
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(idx int) {
			indicatorType := types.IndicatorType(string(rune('A' + idx)))
			indicator := newMockIndicator(indicatorType)
			registry.RegisterIndicator(indicator)
			done <- true
		}(i)
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}

	// Should have 10 indicators
	indicators := registry.ListIndicators()
	suite.Len(indicators, 10)
}

func (suite *RegistryTestSuite) TestListIndicatorsSorted() {
	registry := NewIndicatorRegistry()
	suite.NoError(registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeRSI)))
	suite.NoError(registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeEMA)))
	suite.NoError(registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeMACD)))

	suite.Equal([]types.IndicatorType{
		types.IndicatorTypeEMA,
		types.IndicatorTypeMACD,
		types.IndicatorTypeRSI,
	}, registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestUpdateSnapshotAndReset() {
	registry := NewIndicatorRegistry()
	rsi := newMockIndicator(types.IndicatorTypeRSI)
	macd := newMockIndicator(types.IndicatorTypeMACD)
	suite.NoError(registry.RegisterIndicator(rsi))
	suite.NoError(registry.RegisterIndicator(macd))

	suite.Empty(registry.Snapshot())

	registry.Update(100)
	registry.Update(101)

	snapshot := registry.Snapshot()
	suite.Len(snapshot, 2)
	suite.Equal(2.0, snapshot[types.IndicatorTypeRSI].EMA)
	suite.Equal(types.IndicatorTypeMACD, snapshot[types.IndicatorTypeMACD].Type)

	registry.Reset()
	suite.Equal(1, rsi.resets)
	suite.Equal(1, macd.resets)
	suite.Empty(registry.Snapshot())
}
