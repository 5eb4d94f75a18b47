package types

import (
	"time"

	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// Timeframe is the duration of one candle bucket.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe3m  Timeframe = "3m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	Timeframe2h  Timeframe = "2h"
	Timeframe4h  Timeframe = "4h"
	Timeframe6h  Timeframe = "6h"
	Timeframe8h  Timeframe = "8h"
	Timeframe12h Timeframe = "12h"
	Timeframe1d  Timeframe = "1d"
)

var timeframeDurations = map[Timeframe]time.Duration{
	Timeframe1m:  time.Minute,
	Timeframe3m:  3 * time.Minute,
	Timeframe5m:  5 * time.Minute,
	Timeframe15m: 15 * time.Minute,
	Timeframe30m: 30 * time.Minute,
	Timeframe1h:  time.Hour,
	Timeframe2h:  2 * time.Hour,
	Timeframe4h:  4 * time.Hour,
	Timeframe6h:  6 * time.Hour,
	Timeframe8h:  8 * time.Hour,
	Timeframe12h: 12 * time.Hour,
	Timeframe1d:  24 * time.Hour,
}

// AllTimeframes returns every supported timeframe from shortest to longest.
func AllTimeframes() []Timeframe {
	return []Timeframe{
		Timeframe1m, Timeframe3m, Timeframe5m, Timeframe15m, Timeframe30m,
		Timeframe1h, Timeframe2h, Timeframe4h, Timeframe6h, Timeframe8h, Timeframe12h,
		Timeframe1d,
	}
}

// ParseTimeframe converts a string such as "5m" into a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if !tf.IsValid() {
		return "", errors.Newf(errors.ErrCodeInvalidTimeframe, "unsupported timeframe: %q", s)
	}

	return tf, nil
}

// IsValid reports whether the timeframe is one of the supported values.
func (t Timeframe) IsValid() bool {
	_, ok := timeframeDurations[t]

	return ok
}

// Duration returns the bucket length, or zero for an unsupported timeframe.
func (t Timeframe) Duration() time.Duration {
	return timeframeDurations[t]
}

// Seconds returns the bucket length in seconds.
func (t Timeframe) Seconds() int64 {
	return int64(t.Duration() / time.Second)
}

// BucketStart aligns a timestamp to the start of its bucket.
func (t Timeframe) BucketStart(ts int64) int64 {
	seconds := t.Seconds()
	if seconds == 0 {
		return ts
	}

	bucket := ts / seconds
	// floor for negative timestamps
	if ts%seconds != 0 && ts < 0 {
		bucket--
	}

	return bucket * seconds
}

func (t Timeframe) String() string {
	return string(t)
}
