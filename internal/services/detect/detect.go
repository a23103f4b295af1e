// Package detect implements the pattern detectors that feed signal fusion.
// Every detector is a pure function over an ordered candle series
// (most-recent last) scanning a bounded trailing window; insufficient
// history yields "no observation", never an error.
package detect

import (
	"SignalForge/internal/domain/models"
)

// All runs every detector over the series and bundles the results.
// CurrentPrice is left for the caller to fill in.
func All(candles []models.Candle, trendCfg TrendConfig) models.Observations {
	return models.Observations{
		OrderBlock:  OrderBlock(candles),
		FVG:         FVG(candles),
		Breakout:    Breakout(candles),
		MoneyFlow:   MoneyFlow(candles),
		VolumeSurge: VolumeSurge(candles),
		Trend:       AdaptiveTrend(candles, trendCfg),
	}
}
