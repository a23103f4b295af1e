package models

// Candle represents a single OHLCV bar as returned by the exchange.
// Timestamps are unix seconds and non-decreasing within a series.
// The exchange does not guarantee high >= max(open, close) or
// low <= min(open, close); detectors must tolerate malformed bars.
type Candle struct {
	Timestamp int64   `json:"time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// Bullish reports whether the bar closed above its open.
func (c Candle) Bullish() bool { return c.Close > c.Open }

// Bearish reports whether the bar closed below its open.
func (c Candle) Bearish() bool { return c.Close < c.Open }

// HL2 returns the bar midpoint.
func (c Candle) HL2() float64 { return (c.High + c.Low) / 2 }

// TypicalPrice returns (high + low + close) / 3.
func (c Candle) TypicalPrice() float64 { return (c.High + c.Low + c.Close) / 3 }
