package detect

import (
	"SignalForge/internal/domain/models"
)

const (
	// fvgWindow bounds how far back the gap scan reaches.
	fvgWindow = 10
	// fvgMinSize is the minimum gap size relative to the lower boundary,
	// strict: a gap of exactly 0.002 does not qualify.
	fvgMinSize = 0.002
)

// FVG scans the trailing window for a fair value gap: bar i's low sitting
// strictly above bar i-2's high by more than fvgMinSize of the lower
// boundary. The scan walks backward from the latest bar, so the most recent
// qualifying gap wins. Returns nil for series shorter than 3 bars or when no
// gap qualifies.
//
// Only the bullish gap (low above prior high) is detected; the bearish
// mirror is not supported.
func FVG(candles []models.Candle) *models.FairValueGap {
	n := len(candles)
	if n < 3 {
		return nil
	}
	stop := n - fvgWindow
	if stop < 2 {
		stop = 2
	}
	for i := n - 1; i > stop; i-- {
		bottom := candles[i-2].High
		top := candles[i].Low
		if top <= bottom || bottom <= 0 {
			continue
		}
		gap := (top - bottom) / bottom
		if gap > fvgMinSize {
			return &models.FairValueGap{
				Top:            top,
				Bottom:         bottom,
				Bias:           models.BiasBullish,
				SizePercentage: gap * 100,
			}
		}
	}
	return nil
}
