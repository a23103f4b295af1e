package fusion

import (
	"reflect"
	"testing"

	"SignalForge/internal/domain/models"
	"SignalForge/internal/services/detect"
)

// fixture returns a 25-bar series holding a qualifying bullish order block
// in bars 18/19 and a qualifying fair value gap across bars 21..23.
func fixture() []models.Candle {
	cs := make([]models.Candle, 25)
	for i := range cs {
		cs[i] = models.Candle{
			Timestamp: int64(i) * 3600,
			Open:      1000,
			High:      1000.5,
			Low:       999.5,
			Close:     1000,
			Volume:    100,
		}
	}
	// bearish bar followed by a >1% bullish displacement
	cs[18] = models.Candle{Open: 1005, High: 1006, Low: 994, Close: 995, Volume: 100}
	cs[19] = models.Candle{Open: 995, High: 1008, Low: 994, Close: 1007, Volume: 100}
	// gap: bar 23's low clears bar 21's high by ~0.4%
	cs[21] = models.Candle{Open: 1007, High: 1008, Low: 1006, Close: 1007, Volume: 100}
	cs[23] = models.Candle{Open: 1013, High: 1014, Low: 1012, Close: 1013, Volume: 100}
	return cs
}

func TestEvaluateFullConfidence(t *testing.T) {
	obs := detect.All(fixture(), detect.DefaultTrendConfig())
	obs.CurrentPrice = 1000 // inside the block, below the gap bottom

	sig := DefaultPolicy().Evaluate("BTCUSD", obs)
	if sig == nil {
		t.Fatalf("expected signal")
	}
	if sig.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", sig.Confidence)
	}
	if len(sig.Reasons) != 2 {
		t.Fatalf("expected two reasons, got %v", sig.Reasons)
	}
	if sig.Side != models.SideLong {
		t.Fatalf("expected long side, got %s", sig.Side)
	}
	if sig.TargetPrice != obs.FVG.Bottom {
		t.Fatalf("target should be the gap bottom, got %v", sig.TargetPrice)
	}
	if sig.StopLoss != obs.OrderBlock.PriceLow*0.998 {
		t.Fatalf("unexpected stop %v", sig.StopLoss)
	}
	if sig.EntryPrice != 1000 {
		t.Fatalf("entry should be current price, got %v", sig.EntryPrice)
	}
}

func TestEvaluateRiskRewardFallback(t *testing.T) {
	obs := detect.All(fixture(), detect.DefaultTrendConfig())
	obs.CurrentPrice = 1000
	obs.FVG = nil

	sig := DefaultPolicy().Evaluate("BTCUSD", obs)
	if sig == nil {
		t.Fatalf("expected signal without FVG")
	}
	if sig.Confidence != 0.75 {
		t.Fatalf("expected confidence 0.75, got %v", sig.Confidence)
	}
	if len(sig.Reasons) != 1 || sig.Reasons[0] != "Bullish Order Block" {
		t.Fatalf("expected order-block reason only, got %v", sig.Reasons)
	}
	want := 1000 + (1000-obs.OrderBlock.PriceLow)*2.0
	if sig.TargetPrice != want {
		t.Fatalf("expected risk-reward target %v, got %v", want, sig.TargetPrice)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	obs := detect.All(fixture(), detect.DefaultTrendConfig())
	obs.CurrentPrice = 1000

	p := DefaultPolicy()
	a := p.Evaluate("BTCUSD", obs)
	b := p.Evaluate("BTCUSD", obs)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("fusion not idempotent: %+v vs %+v", a, b)
	}
}

func TestEvaluateNoOrderBlock(t *testing.T) {
	obs := models.Observations{CurrentPrice: 1000}
	if sig := DefaultPolicy().Evaluate("BTCUSD", obs); sig != nil {
		t.Fatalf("no order block must mean no signal, got %+v", sig)
	}
}

func TestEvaluatePriceOutsideBlock(t *testing.T) {
	obs := detect.All(fixture(), detect.DefaultTrendConfig())
	obs.CurrentPrice = 1050 // above the block high
	if sig := DefaultPolicy().Evaluate("BTCUSD", obs); sig != nil {
		t.Fatalf("price outside block must mean no signal, got %+v", sig)
	}
}

func TestEvaluateStrictGates(t *testing.T) {
	p := DefaultPolicy()
	p.StrictGates = true

	obs := detect.All(fixture(), detect.DefaultTrendConfig())
	obs.CurrentPrice = 1000
	if sig := p.Evaluate("BTCUSD", obs); sig != nil {
		t.Fatalf("missing gates must collapse to hold, got %+v", sig)
	}

	obs.Breakout = true
	obs.MoneyFlow = true
	obs.VolumeSurge = true
	obs.Trend = &models.Trend{State: models.TrendUp}
	sig := p.Evaluate("BTCUSD", obs)
	if sig == nil {
		t.Fatalf("expected signal once all gates pass")
	}
	if sig.Confidence != 1.0 {
		t.Fatalf("gates must not change confidence, got %v", sig.Confidence)
	}
}
