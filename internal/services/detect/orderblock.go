package detect

import (
	"SignalForge/internal/domain/models"
)

const (
	// obWindow bounds how far back the order-block scan reaches.
	obWindow = 20
	// obSkipRecent keeps the scan away from the newest bars, which are
	// still forming structure.
	obSkipRecent = 5
	// obMinDisplacement is the minimum body displacement of the follow-up
	// bar, strict: a displacement of exactly 0.01 does not qualify.
	obMinDisplacement = 0.01
)

// OrderBlock scans the trailing window for a bearish bar immediately
// followed by a bullish bar with strong body displacement, returning the
// bearish bar's range as a bullish order block. The scan walks backward
// starting obSkipRecent bars before the end, so the most recent qualifying
// block wins. Returns nil when the series is shorter than obWindow or no
// candidate qualifies.
//
// Only the bullish case is detected; the bearish mirror is not supported.
func OrderBlock(candles []models.Candle) *models.OrderBlock {
	n := len(candles)
	if n < obWindow {
		return nil
	}
	stop := n - obWindow
	if stop < 0 {
		stop = 0
	}
	for i := n - obSkipRecent; i > stop; i-- {
		c := candles[i]
		if !c.Bearish() || i+1 >= n {
			continue
		}
		next := candles[i+1]
		if !next.Bullish() || next.Open <= 0 {
			continue
		}
		displacement := (next.Close - next.Open) / next.Open
		if displacement > obMinDisplacement {
			strength := displacement * 10
			if strength > 1.0 {
				strength = 1.0
			}
			return &models.OrderBlock{
				PriceHigh: c.High,
				PriceLow:  c.Low,
				Bias:      models.BiasBullish,
				Strength:  strength,
			}
		}
	}
	return nil
}
