package detect

import (
	"SignalForge/internal/domain/models"
)

// breakoutLookback is the number of prior closes the latest close must clear.
const breakoutLookback = 9

// Breakout reports whether the latest close prints a new local high close,
// i.e. it exceeds the maximum close of the preceding breakoutLookback bars.
// Requires at least breakoutLookback+2 bars; shorter series yield false.
func Breakout(candles []models.Candle) bool {
	n := len(candles)
	if n < breakoutLookback+2 {
		return false
	}
	max := candles[n-1-breakoutLookback].Close
	for i := n - breakoutLookback; i < n-1; i++ {
		if candles[i].Close > max {
			max = candles[i].Close
		}
	}
	return candles[n-1].Close > max
}
