package detect

import (
	"SignalForge/internal/domain/models"
)

const (
	// DefaultTrendLength is the trailing window for the pseudo-ATR.
	DefaultTrendLength = 10
	// DefaultTrendMultiplier widens the volatility bands.
	DefaultTrendMultiplier = 3.0
)

// TrendConfig parameterizes the adaptive-trend detector.
type TrendConfig struct {
	Length     int
	Multiplier float64
}

// DefaultTrendConfig returns the standard detector parameters.
func DefaultTrendConfig() TrendConfig {
	return TrendConfig{Length: DefaultTrendLength, Multiplier: DefaultTrendMultiplier}
}

// AdaptiveTrend computes volatility bands around the latest bar midpoint and
// classifies the close against them. The pseudo-ATR is the maximum high-low
// range over the last cfg.Length bars; bands are hl2 +/- multiplier*atr.
//
// This intentionally recomputes from a fixed trailing window each call
// instead of carrying the previous band forward the way a true supertrend
// does; the recursive variant produces a materially different series and is
// out of scope here. Returns nil when the series is shorter than cfg.Length.
func AdaptiveTrend(candles []models.Candle, cfg TrendConfig) *models.Trend {
	if cfg.Length <= 0 {
		cfg.Length = DefaultTrendLength
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = DefaultTrendMultiplier
	}
	n := len(candles)
	if n < cfg.Length {
		return nil
	}
	var atr float64
	for i := n - cfg.Length; i < n; i++ {
		if r := candles[i].High - candles[i].Low; r > atr {
			atr = r
		}
	}
	last := candles[n-1]
	hl2 := last.HL2()
	upper := hl2 + cfg.Multiplier*atr
	lower := hl2 - cfg.Multiplier*atr

	state := models.TrendFlat
	switch {
	case last.Close < lower:
		state = models.TrendDown
	case last.Close > upper:
		state = models.TrendUp
	}
	return &models.Trend{State: state, Upper: upper, Lower: lower}
}
