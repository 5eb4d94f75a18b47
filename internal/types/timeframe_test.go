package types

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "one minute", input: "1m", expected: time.Minute},
		{name: "fifteen minutes", input: "15m", expected: 15 * time.Minute},
		{name: "four hours", input: "4h", expected: 4 * time.Hour},
		{name: "one day", input: "1d", expected: 24 * time.Hour},
		{name: "unsupported", input: "7m", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf, err := ParseTimeframe(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidTimeframe, errors.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, tf.Duration())
			assert.Equal(t, int64(tt.expected/time.Second), tf.Seconds())
		})
	}
}

func TestAllTimeframesAreValid(t *testing.T) {
	all := AllTimeframes()
	assert.Len(t, all, 12)

	for i, tf := range all {
		assert.True(t, tf.IsValid(), tf.String())

		if i > 0 {
			assert.Greater(t, tf.Duration(), all[i-1].Duration())
		}
	}
}

func TestBucketStart(t *testing.T) {
	tf := Timeframe5m

	assert.Equal(t, int64(1_700_000_100), tf.BucketStart(1_700_000_100))
	assert.Equal(t, int64(1_700_000_100), tf.BucketStart(1_700_000_399))
	assert.Equal(t, int64(1_700_000_400), tf.BucketStart(1_700_000_400))
	assert.Equal(t, int64(-300), tf.BucketStart(-1))
	assert.Equal(t, int64(0), tf.BucketStart(0))
}
