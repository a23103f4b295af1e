package detect

import (
	"SignalForge/internal/domain/models"
)

const (
	// mfWindow is the total money-flow comparison window.
	mfWindow = 14
	// mfRecent is the recent slice compared against the rest of the window.
	mfRecent = 4

	// volSurgeWindow covers the surge baseline plus the latest bar.
	volSurgeWindow = 21
	// volSurgeMultiplier is how far above the baseline average the latest
	// volume must land.
	volSurgeMultiplier = 1.5
)

// MoneyFlow reports whether the typical-price-weighted volume of the most
// recent mfRecent bars exceeds that of the preceding mfWindow-mfRecent bars.
// Requires mfWindow bars; shorter series yield false.
func MoneyFlow(candles []models.Candle) bool {
	n := len(candles)
	if n < mfWindow {
		return false
	}
	var recent, prior float64
	for i := n - mfWindow; i < n; i++ {
		mf := candles[i].TypicalPrice() * candles[i].Volume
		if i >= n-mfRecent {
			recent += mf
		} else {
			prior += mf
		}
	}
	return recent > prior
}

// VolumeSurge reports whether the latest bar's volume exceeds
// volSurgeMultiplier times the average volume of the preceding
// volSurgeWindow-1 bars. A zero baseline (all-zero volumes) never surges.
// Requires volSurgeWindow bars; shorter series yield false.
func VolumeSurge(candles []models.Candle) bool {
	n := len(candles)
	if n < volSurgeWindow {
		return false
	}
	var sum float64
	for i := n - volSurgeWindow + 1; i < n-1; i++ {
		sum += candles[i].Volume
	}
	avg := sum / float64(volSurgeWindow-2)
	if avg == 0 {
		return false
	}
	return candles[n-1].Volume > volSurgeMultiplier*avg
}
