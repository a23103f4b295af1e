package detect

import (
	"testing"

	"SignalForge/internal/domain/models"
)

// flat returns n doji bars around price p so no detector fires by accident.
func flat(n int, p float64) []models.Candle {
	out := make([]models.Candle, n)
	for i := range out {
		out[i] = models.Candle{
			Timestamp: int64(i) * 3600,
			Open:      p,
			High:      p + 0.5,
			Low:       p - 0.5,
			Close:     p,
			Volume:    100,
		}
	}
	return out
}

func TestOrderBlockShortSeries(t *testing.T) {
	if ob := OrderBlock(flat(19, 1000)); ob != nil {
		t.Fatalf("expected nil for 19 bars, got %+v", ob)
	}
}

func TestOrderBlockDisplacementThreshold(t *testing.T) {
	cs := flat(20, 1000)
	// bearish bar at 10, bullish follow-up at 11
	cs[10] = models.Candle{Open: 1010, High: 1011, Low: 999, Close: 1000}
	cs[11] = models.Candle{Open: 1000, High: 1011, Low: 999, Close: 1010}

	// displacement exactly 0.01 must not qualify
	cs[11].Close = 1010
	if ob := OrderBlock(cs); ob != nil {
		t.Fatalf("displacement 0.01 should not qualify, got %+v", ob)
	}

	// 0.011 must qualify with the bearish bar's range
	cs[11].Close = 1011
	ob := OrderBlock(cs)
	if ob == nil {
		t.Fatalf("displacement 0.011 should qualify")
	}
	if ob.Bias != models.BiasBullish {
		t.Fatalf("expected bullish bias, got %s", ob.Bias)
	}
	if ob.PriceHigh != 1011 || ob.PriceLow != 999 {
		t.Fatalf("unexpected block range %v/%v", ob.PriceHigh, ob.PriceLow)
	}
	if ob.Strength < 0.10 || ob.Strength > 0.12 {
		t.Fatalf("unexpected strength %v", ob.Strength)
	}
}

func TestOrderBlockStrengthCapped(t *testing.T) {
	cs := flat(20, 1000)
	cs[10] = models.Candle{Open: 1010, High: 1011, Low: 999, Close: 1000}
	// 20% displacement, strength would be 2.0 uncapped
	cs[11] = models.Candle{Open: 1000, High: 1300, Low: 999, Close: 1200}
	ob := OrderBlock(cs)
	if ob == nil {
		t.Fatalf("expected order block")
	}
	if ob.Strength != 1.0 {
		t.Fatalf("strength not capped: %v", ob.Strength)
	}
}

func TestFVGShortSeries(t *testing.T) {
	if g := FVG(flat(2, 1000)); g != nil {
		t.Fatalf("expected nil for 2 bars, got %+v", g)
	}
}

func TestFVGSizeThreshold(t *testing.T) {
	cs := flat(12, 1000)
	cs[9].High = 1000

	// gap of exactly 0.002 must not qualify
	cs[11].Low = 1002
	if g := FVG(cs); g != nil {
		t.Fatalf("gap 0.002 should not qualify, got %+v", g)
	}

	// 0.0021 must qualify
	cs[11].Low = 1002.1
	g := FVG(cs)
	if g == nil {
		t.Fatalf("gap 0.0021 should qualify")
	}
	if g.Bias != models.BiasBullish {
		t.Fatalf("expected bullish bias, got %s", g.Bias)
	}
	if g.Top != 1002.1 || g.Bottom != 1000 {
		t.Fatalf("unexpected gap bounds %v/%v", g.Top, g.Bottom)
	}
	if g.SizePercentage < 0.2 || g.SizePercentage > 0.22 {
		t.Fatalf("unexpected size percentage %v", g.SizePercentage)
	}
}

func TestBreakout(t *testing.T) {
	closes := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 11}
	cs := make([]models.Candle, len(closes))
	for i, c := range closes {
		cs[i] = models.Candle{Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	if !Breakout(cs) {
		t.Fatalf("expected breakout for new high close")
	}
	cs[len(cs)-1].Close = 9
	if Breakout(cs) {
		t.Fatalf("expected no breakout for lower close")
	}
	if Breakout(cs[:10]) {
		t.Fatalf("expected false for short series")
	}
}

func TestMoneyFlow(t *testing.T) {
	cs := flat(14, 1000)
	if MoneyFlow(cs) {
		t.Fatalf("uniform flow should not qualify, 4-bar sum < 10-bar sum")
	}
	for i := 10; i < 14; i++ {
		cs[i].Volume = 30
	}
	for i := 0; i < 10; i++ {
		cs[i].Volume = 10
	}
	if !MoneyFlow(cs) {
		t.Fatalf("expected recent money flow to dominate")
	}
	if MoneyFlow(cs[:13]) {
		t.Fatalf("expected false for short series")
	}
}

func TestVolumeSurge(t *testing.T) {
	cs := flat(21, 1000)
	cs[20].Volume = 150 // exactly 1.5x baseline, strict > required
	if VolumeSurge(cs) {
		t.Fatalf("exactly 1.5x average should not qualify")
	}
	cs[20].Volume = 151
	if !VolumeSurge(cs) {
		t.Fatalf("expected surge at 1.51x average")
	}
	if VolumeSurge(cs[:20]) {
		t.Fatalf("expected false for short series")
	}
}

func TestVolumeSurgeZeroBaseline(t *testing.T) {
	cs := flat(21, 1000)
	for i := range cs {
		cs[i].Volume = 0
	}
	cs[20].Volume = 10
	if VolumeSurge(cs) {
		t.Fatalf("zero baseline must never surge")
	}
}

func TestAdaptiveTrend(t *testing.T) {
	cfg := DefaultTrendConfig()

	if tr := AdaptiveTrend(flat(9, 1000), cfg); tr != nil {
		t.Fatalf("expected nil below window, got %+v", tr)
	}

	cs := flat(10, 100)
	// atr = 1 from uniform ranges, bands = hl2 +/- 3
	cs[9] = models.Candle{Open: 100, High: 100.5, Low: 99.5, Close: 104}
	tr := AdaptiveTrend(cs, cfg)
	if tr == nil || tr.State != models.TrendUp {
		t.Fatalf("expected uptrend, got %+v", tr)
	}

	cs[9].Close = 96
	tr = AdaptiveTrend(cs, cfg)
	if tr == nil || tr.State != models.TrendDown {
		t.Fatalf("expected downtrend, got %+v", tr)
	}

	cs[9].Close = 100
	tr = AdaptiveTrend(cs, cfg)
	if tr == nil || tr.State != models.TrendFlat {
		t.Fatalf("expected flat trend, got %+v", tr)
	}
}

func TestAllBundlesObservations(t *testing.T) {
	obs := All(flat(25, 1000), DefaultTrendConfig())
	if obs.OrderBlock != nil || obs.FVG != nil {
		t.Fatalf("flat series should carry no structures: %+v", obs)
	}
	if obs.Breakout || obs.MoneyFlow || obs.VolumeSurge {
		t.Fatalf("flat series should trip no boolean detectors: %+v", obs)
	}
	if obs.Trend == nil || obs.Trend.State != models.TrendFlat {
		t.Fatalf("expected flat trend observation, got %+v", obs.Trend)
	}
}
