package models

import "time"

// Bias is the directional read of a detected structure.
type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// Side is the direction of an emitted trade signal.
type Side string

const (
	SideLong Side = "FUTURES_LONG"
	// SideShort exists for completeness; the fusion rule never emits it.
	// Short detection is not supported (long-only by
	// inherited rule, see DESIGN.md).
	SideShort Side = "FUTURES_SHORT"
	SideHold  Side = "HOLD"
)

// Session labels the trading-hours window a signal was generated in.
type Session string

const (
	SessionTokyo       Session = "TOKYO"
	SessionNewYork     Session = "NEW_YORK"
	SessionCryptoPrime Session = "CRYPTO_PRIME"
)

// OrderBlock is a candle range preceding a strong directional displacement,
// recomputed fresh on every analysis call.
type OrderBlock struct {
	PriceHigh float64 `json:"price_high"`
	PriceLow  float64 `json:"price_low"`
	Bias      Bias    `json:"bias"`
	Strength  float64 `json:"strength"` // [0,1]
}

// FairValueGap is a price range skipped over by rapid movement, bounded by
// non-overlapping highs/lows of nearby bars.
type FairValueGap struct {
	Top            float64 `json:"top"`
	Bottom         float64 `json:"bottom"`
	Bias           Bias    `json:"bias"`
	SizePercentage float64 `json:"size_percentage"`
}

// TrendState is the adaptive-trend verdict: +1 above the upper band,
// -1 below the lower band, 0 in between.
type TrendState int

const (
	TrendUp   TrendState = 1
	TrendDown TrendState = -1
	TrendFlat TrendState = 0
)

// Trend is the adaptive-trend observation. The bands are recomputed from a
// fixed trailing window each call rather than carried forward recursively.
type Trend struct {
	State TrendState `json:"state"`
	Upper float64    `json:"upper"`
	Lower float64    `json:"lower"`
}

// Observations bundles all detector outputs for one analysis pass. Nil
// pointers mean "no observation" (insufficient history or no qualifying
// pattern), which is not an error.
type Observations struct {
	OrderBlock   *OrderBlock   `json:"order_block,omitempty"`
	FVG          *FairValueGap `json:"fvg,omitempty"`
	Breakout     bool          `json:"breakout"`
	MoneyFlow    bool          `json:"money_flow"`
	VolumeSurge  bool          `json:"volume_surge"`
	Trend        *Trend        `json:"trend,omitempty"`
	CurrentPrice float64       `json:"current_price"`
}

// TradeSignal is the fused directional verdict. Immutable once produced.
type TradeSignal struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	Side        Side      `json:"side"`
	EntryPrice  float64   `json:"entry_price"`
	StopLoss    float64   `json:"stop_loss"`
	TargetPrice float64   `json:"target_price"`
	Confidence  float64   `json:"confidence"` // [0,1]
	Leverage    int       `json:"leverage"`
	Session     Session   `json:"session"`
	Reasons     []string  `json:"reasons"`
	GeneratedAt time.Time `json:"generated_at"`
}

// TradeStats is a point-in-time snapshot of the trade-state tracker.
type TradeStats struct {
	TotalTrades       int     `json:"total_trades"`
	ProfitableTrades  int     `json:"profitable_trades"`
	ConsecutiveLosses int     `json:"consecutive_losses"`
	SuccessRate       float64 `json:"success_rate"`
	DynamicMultiplier float64 `json:"dynamic_multiplier"`
	Paused            bool    `json:"paused"`
}
