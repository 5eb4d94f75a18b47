package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MACDUnitTestSuite struct {
	suite.Suite
}

func TestMACDUnitSuite(t *testing.T) {
	suite.Run(t, new(MACDUnitTestSuite))
}

func (suite *MACDUnitTestSuite) TestNewMACD() {
	macd := NewMACD()
	suite.NotNil(macd)

	// Cast to *MACD to check default values
	macdImpl := macd.(*MACD)
	suite.Equal(12, macdImpl.fastPeriod)
	suite.Equal(26, macdImpl.slowPeriod)
	suite.Equal(9, macdImpl.signalPeriod)
	suite.Equal(34, macd.WarmupPeriod())
}

func (suite *MACDUnitTestSuite) TestName() {
	macd := NewMACD()
	suite.Equal(types.IndicatorTypeMACD, macd.Name())
}

func (suite *MACDUnitTestSuite) TestConfigValid() {
	macd := NewMACD()
	macdImpl := macd.(*MACD)

	err := macd.Config(10, 20, 5)
	suite.NoError(err)
	suite.Equal(10, macdImpl.fastPeriod)
	suite.Equal(20, macdImpl.slowPeriod)
	suite.Equal(5, macdImpl.signalPeriod)
	suite.Equal(24, macd.WarmupPeriod())
}

func (suite *MACDUnitTestSuite) TestConfigInvalid() {
	macd := NewMACD()

	suite.Equal(errors.ErrCodeMissingParameter, errors.GetCode(macd.Config(12, 26)))
	suite.Equal(errors.ErrCodeInvalidType, errors.GetCode(macd.Config(12, "26", 9)))
	suite.Equal(errors.ErrCodeInvalidPeriod, errors.GetCode(macd.Config(12, 26, 0)))

	err := macd.Config(26, 26, 9)
	suite.Equal(errors.ErrCodeInvalidPeriod, errors.GetCode(err))
	suite.Contains(err.Error(), "must be less than")
}

func (suite *MACDUnitTestSuite) TestWarmup() {
	macd := NewMACD()
	suite.NoError(macd.Config(3, 5, 2))

	for i := 1; i <= 5; i++ {
		suite.True(macd.Update(float64(i)).IsNone(), "close %d", i)
	}

	suite.False(macd.Ready())

	value := macd.Update(6)
	suite.True(value.IsSome())
	suite.True(macd.Ready())

	v := value.Unwrap()
	suite.Equal(types.IndicatorTypeMACD, v.Type)
	suite.InDelta(v.MACD-v.Signal, v.Histogram, 1e-12)
	// a rising series keeps the fast EMA above the slow EMA
	suite.Greater(v.MACD, 0.0)
}

func (suite *MACDUnitTestSuite) TestFlatSeries() {
	macd := NewMACD()

	values := 0

	for i := 0; i < 40; i++ {
		value := macd.Update(50.0)
		if i < 33 {
			suite.True(value.IsNone())

			continue
		}

		values++
		v := value.Unwrap()
		suite.Equal(0.0, v.MACD)
		suite.Equal(0.0, v.Signal)
		suite.Equal(0.0, v.Histogram)
	}

	suite.Equal(7, values)
}

func (suite *MACDUnitTestSuite) TestReset() {
	macd := NewMACD()
	suite.NoError(macd.Config(2, 3, 2))

	first := make([]Value, 0)
	for i := 0; i < 10; i++ {
		if v := macd.Update(float64(i * i)); v.IsSome() {
			first = append(first, v.Unwrap())
		}
	}

	macd.Reset()
	suite.True(macd.Last().IsNone())

	second := make([]Value, 0)
	for i := 0; i < 10; i++ {
		if v := macd.Update(float64(i * i)); v.IsSome() {
			second = append(second, v.Unwrap())
		}
	}

	suite.Equal(first, second)
	suite.Len(first, 7)
}
