package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/suite"
)

type RecorderTestSuite struct {
	suite.Suite
	recorder *PrometheusRecorder
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderTestSuite))
}

func (suite *RecorderTestSuite) SetupTest() {
	suite.recorder = NewPrometheusRecorder()
}

func (suite *RecorderTestSuite) TestCombinationCounters() {
	suite.recorder.CombinationFinished("macd", StatusSuccess, 10*time.Millisecond)
	suite.recorder.CombinationFinished("macd", StatusSuccess, 20*time.Millisecond)
	suite.recorder.CombinationFinished("macd", StatusSkipped, 0)
	suite.recorder.CombinationFinished("macd", StatusFailed, time.Millisecond)

	suite.Equal(2.0, testutil.ToFloat64(suite.recorder.combinations.WithLabelValues("macd", "success")))
	suite.Equal(1.0, testutil.ToFloat64(suite.recorder.combinations.WithLabelValues("macd", "skipped")))
	suite.Equal(1.0, testutil.ToFloat64(suite.recorder.combinations.WithLabelValues("macd", "failed")))

	// skipped combinations never ran
	suite.Equal(1, testutil.CollectAndCount(suite.recorder.runDuration))
}

func (suite *RecorderTestSuite) TestRunDurationHistogram() {
	suite.recorder.CombinationFinished("rsi_macd", StatusSuccess, 2*time.Millisecond)
	suite.recorder.CombinationFinished("rsi_macd", StatusFailed, 4*time.Millisecond)

	observer := suite.recorder.runDuration.WithLabelValues("rsi_macd")
	metric, ok := observer.(prometheus.Metric)
	suite.Require().True(ok)

	var out dto.Metric
	suite.Require().NoError(metric.Write(&out))
	suite.Equal(uint64(2), out.GetHistogram().GetSampleCount())
	suite.InDelta(0.006, out.GetHistogram().GetSampleSum(), 1e-9)
}

func (suite *RecorderTestSuite) TestInFlightGauge() {
	suite.recorder.SweepStarted("rsi", 12)
	suite.recorder.SweepStarted("rsi", 3)

	suite.Equal(2.0, testutil.ToFloat64(suite.recorder.inFlight.WithLabelValues("rsi")))
	suite.Equal(3.0, testutil.ToFloat64(suite.recorder.gridSize.WithLabelValues("rsi")))

	suite.recorder.SweepFinished("rsi", false, time.Second)
	suite.recorder.SweepFinished("rsi", true, time.Second)

	suite.Equal(0.0, testutil.ToFloat64(suite.recorder.inFlight.WithLabelValues("rsi")))
	suite.Equal(1.0, testutil.ToFloat64(suite.recorder.sweeps.WithLabelValues("rsi", "true")))
	suite.Equal(1.0, testutil.ToFloat64(suite.recorder.sweeps.WithLabelValues("rsi", "false")))
}

func (suite *RecorderTestSuite) TestRegistriesAreIndependent() {
	other := NewPrometheusRecorder()
	other.CombinationFinished("rsi", StatusSuccess, time.Millisecond)

	families, err := suite.recorder.Registry().Gather()
	suite.NoError(err)

	for _, family := range families {
		suite.NotEqual("argo_sweep_combinations_total", family.GetName())
	}

	families, err = other.Registry().Gather()
	suite.NoError(err)
	suite.NotEmpty(families)
}

func (suite *RecorderTestSuite) TestNopRecorder() {
	var recorder Recorder = NopRecorder{}

	recorder.SweepStarted("rsi", 1)
	recorder.CombinationFinished("rsi", StatusSuccess, time.Second)
	recorder.SweepFinished("rsi", false, time.Second)
}
