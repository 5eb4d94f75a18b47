package types

import "time"

// Candle is an aggregated OHLCV summary of one timeframe bucket.
type Candle struct {
	// Timestamp is the bucket start in seconds since epoch
	Timestamp int64     `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	Symbol    string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Timeframe Timeframe `yaml:"timeframe" json:"timeframe" csv:"timeframe"`
	Open      float64   `yaml:"open" json:"open" csv:"open"`
	High      float64   `yaml:"high" json:"high" csv:"high"`
	Low       float64   `yaml:"low" json:"low" csv:"low"`
	Close     float64   `yaml:"close" json:"close" csv:"close"`
	Volume    int64     `yaml:"volume" json:"volume" csv:"volume"`
	// Closed is true once the bucket has been finalized. It is never reset.
	Closed bool `yaml:"closed" json:"closed" csv:"closed"`
}

// Time returns the bucket start as UTC time.
func (c Candle) Time() time.Time {
	return time.Unix(c.Timestamp, 0).UTC()
}

// Tick is a single trade print consumed by the candle builder.
type Tick struct {
	Timestamp int64   `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	Symbol    string  `yaml:"symbol" json:"symbol" csv:"symbol"`
	Price     float64 `yaml:"price" json:"price" csv:"price"`
	Volume    int64   `yaml:"volume" json:"volume" csv:"volume"`
}
