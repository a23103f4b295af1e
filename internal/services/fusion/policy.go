// Package fusion combines detector observations into at most one trade
// signal per analysis pass. The combination rule is a fixed, named policy so
// the gating behavior is explicit and testable rather than scattered across
// call sites.
package fusion

import (
	"SignalForge/internal/domain/models"
)

const (
	// baseConfidence is the starting score before any structure is credited.
	baseConfidence = 0.5
	// structureWeight is added per qualifying structure (order block, FVG).
	structureWeight = 0.25
	// stopBuffer places the stop slightly below the order-block low.
	stopBuffer = 0.998
)

// Policy holds the fusion thresholds. StrictGates additionally requires the
// breakout, money-flow and trend+volume confirmations before emitting; the
// canonical default leaves them advisory (loose variant, see DESIGN.md).
type Policy struct {
	MinConfidence float64
	MinRiskReward float64
	Leverage      int
	StrictGates   bool
}

// DefaultPolicy returns the canonical loose-gate policy.
func DefaultPolicy() Policy {
	return Policy{
		MinConfidence: 0.65,
		MinRiskReward: 2.0,
		Leverage:      10,
	}
}

// Evaluate fuses the observations into a long signal or nil. The rule is
// long-only: the short path is structurally absent from the inherited rule
// and deliberately not invented here.
//
// Evaluate is pure: identical observations produce an identical signal.
// Identity fields (ID, session, timestamp) are stamped by the caller.
func (p Policy) Evaluate(symbol string, obs models.Observations) *models.TradeSignal {
	price := obs.CurrentPrice
	ob := obs.OrderBlock
	if ob == nil || ob.Bias != models.BiasBullish || price <= 0 {
		return nil
	}
	if price < ob.PriceLow || price > ob.PriceHigh {
		return nil
	}

	confidence := baseConfidence + structureWeight
	reasons := []string{"Bullish Order Block"}

	var target float64
	if fvg := obs.FVG; fvg != nil && fvg.Bias == models.BiasBullish && fvg.Bottom > price {
		reasons = append(reasons, "FVG Target Above")
		confidence += structureWeight
		target = fvg.Bottom
	} else {
		risk := price - ob.PriceLow
		target = price + risk*p.MinRiskReward
	}

	if confidence <= p.MinConfidence {
		return nil
	}
	if p.StrictGates && !p.gatesPass(obs) {
		return nil
	}

	return &models.TradeSignal{
		Symbol:      symbol,
		Side:        models.SideLong,
		EntryPrice:  price,
		StopLoss:    ob.PriceLow * stopBuffer,
		TargetPrice: target,
		Confidence:  confidence,
		Leverage:    p.Leverage,
		Reasons:     reasons,
	}
}

// gatesPass checks the hard confirmations of the strict variant: breakout,
// money flow, and an up-trend backed by a volume surge.
func (p Policy) gatesPass(obs models.Observations) bool {
	if !obs.Breakout || !obs.MoneyFlow {
		return false
	}
	return obs.Trend != nil && obs.Trend.State == models.TrendUp && obs.VolumeSurge
}
