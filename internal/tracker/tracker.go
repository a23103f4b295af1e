// Package tracker keeps the cumulative win/loss state that gates signal
// generation. The tracker is an injected dependency owned by the usecase
// layer, never a package global, and every mutation runs under a single
// mutex so concurrent requests cannot lose updates.
package tracker

import (
	"sync"

	"SignalForge/internal/domain/models"
)

const (
	// pauseAfterLosses suspends signal generation entirely.
	pauseAfterLosses = 4
	// throttleAfterLosses lowers the multiplier before the full pause.
	throttleAfterLosses = 3

	multiplierThrottled = 0.8
	multiplierFull      = 1.0
	multiplierReduced   = 0.7

	// neutralSuccessRate is reported before any trade has closed,
	// avoiding a divide by zero.
	neutralSuccessRate = 50.0
)

// Tracker accumulates closed-trade outcomes across the process lifetime.
// State does not survive a restart; persistence is an explicit non-goal.
type Tracker struct {
	mu sync.Mutex

	totalTrades       int
	profitableTrades  int
	consecutiveLosses int
	successRate       float64
	dynamicMultiplier float64
}

// New returns a tracker in its neutral starting state.
func New() *Tracker {
	return &Tracker{
		successRate:       neutralSuccessRate,
		dynamicMultiplier: multiplierFull,
	}
}

// Record registers one closed trade and recomputes the derived fields.
func (t *Tracker) Record(profitable bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totalTrades++
	if profitable {
		t.profitableTrades++
		t.consecutiveLosses = 0
	} else {
		t.consecutiveLosses++
	}
	t.successRate = float64(t.profitableTrades) / float64(t.totalTrades) * 100
	t.adjustMultiplier()
}

// adjustMultiplier applies the threshold rules. A success rate in (50,70]
// with fewer than 3 consecutive losses leaves the previous multiplier in
// place; that hysteresis is inherited behavior, kept on purpose.
func (t *Tracker) adjustMultiplier() {
	switch {
	case t.consecutiveLosses >= throttleAfterLosses:
		t.dynamicMultiplier = multiplierThrottled
	case t.successRate > 70:
		t.dynamicMultiplier = multiplierFull
	case t.successRate < 50:
		t.dynamicMultiplier = multiplierReduced
	}
}

// ShouldTrade reports whether new signals may be generated. The only gate is
// the consecutive-loss pause; a later win naturally re-enables trading.
func (t *Tracker) ShouldTrade() (bool, string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.consecutiveLosses >= pauseAfterLosses {
		return false, "4+ consecutive losses - trading paused"
	}
	return true, "all systems go"
}

// Snapshot returns a point-in-time copy of the counters.
func (t *Tracker) Snapshot() models.TradeStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return models.TradeStats{
		TotalTrades:       t.totalTrades,
		ProfitableTrades:  t.profitableTrades,
		ConsecutiveLosses: t.consecutiveLosses,
		SuccessRate:       t.successRate,
		DynamicMultiplier: t.dynamicMultiplier,
		Paused:            t.consecutiveLosses >= pauseAfterLosses,
	}
}

// SuccessRate returns the current success rate percentage.
func (t *Tracker) SuccessRate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.successRate
}
