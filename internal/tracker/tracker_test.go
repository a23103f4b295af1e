package tracker

import "testing"

func TestNeutralStartingState(t *testing.T) {
	tr := New()
	s := tr.Snapshot()
	if s.SuccessRate != 50.0 {
		t.Fatalf("expected neutral success rate 50.0, got %v", s.SuccessRate)
	}
	if s.DynamicMultiplier != 1.0 {
		t.Fatalf("expected multiplier 1.0, got %v", s.DynamicMultiplier)
	}
	if ok, _ := tr.ShouldTrade(); !ok {
		t.Fatalf("fresh tracker must allow trading")
	}
}

func TestLossStreakThrottlesThenPauses(t *testing.T) {
	tr := New()
	for i := 0; i < 3; i++ {
		tr.Record(false)
	}
	s := tr.Snapshot()
	if s.ConsecutiveLosses != 3 {
		t.Fatalf("expected 3 consecutive losses, got %d", s.ConsecutiveLosses)
	}
	if s.DynamicMultiplier != 0.8 {
		t.Fatalf("expected throttled multiplier 0.8, got %v", s.DynamicMultiplier)
	}
	if ok, _ := tr.ShouldTrade(); !ok {
		t.Fatalf("3 losses must not pause yet")
	}

	tr.Record(false)
	ok, reason := tr.ShouldTrade()
	if ok {
		t.Fatalf("4 losses must pause trading")
	}
	if reason == "" {
		t.Fatalf("pause must carry a reason")
	}
	if !tr.Snapshot().Paused {
		t.Fatalf("snapshot must report paused")
	}
}

func TestWinResetsLossStreak(t *testing.T) {
	tr := New()
	for i := 0; i < 4; i++ {
		tr.Record(false)
	}
	tr.Record(true)
	s := tr.Snapshot()
	if s.ConsecutiveLosses != 0 {
		t.Fatalf("win must reset consecutive losses, got %d", s.ConsecutiveLosses)
	}
	if ok, _ := tr.ShouldTrade(); !ok {
		t.Fatalf("win must re-enable trading")
	}
	if s.TotalTrades != 5 || s.ProfitableTrades != 1 {
		t.Fatalf("unexpected totals %d/%d", s.TotalTrades, s.ProfitableTrades)
	}
	if s.SuccessRate != 20.0 {
		t.Fatalf("expected success rate 20.0, got %v", s.SuccessRate)
	}
}

func TestMultiplierThresholds(t *testing.T) {
	tr := New()
	// 8 wins, 2 losses spread out: 80% success rate
	for i := 0; i < 10; i++ {
		tr.Record(i%5 != 0)
	}
	s := tr.Snapshot()
	if s.SuccessRate != 80.0 {
		t.Fatalf("expected 80%% success rate, got %v", s.SuccessRate)
	}
	if s.DynamicMultiplier != 1.0 {
		t.Fatalf("rate above 70 must restore multiplier 1.0, got %v", s.DynamicMultiplier)
	}

	// fresh tracker landing below 50% without a 3-loss streak
	tr2 := New()
	tr2.Record(true)
	tr2.Record(false)
	tr2.Record(false)
	s = tr2.Snapshot()
	if s.SuccessRate >= 50.0 {
		t.Fatalf("fixture should land below 50%%, got %v", s.SuccessRate)
	}
	if s.DynamicMultiplier != 0.7 {
		t.Fatalf("rate below 50 must reduce multiplier to 0.7, got %v", s.DynamicMultiplier)
	}
}

func TestMultiplierHysteresisBand(t *testing.T) {
	tr := New()
	// 2 wins, 1 loss = 66.7%: inside (50,70], multiplier must stay put
	tr.Record(true)
	tr.Record(true)
	tr.Record(false)
	s := tr.Snapshot()
	if s.DynamicMultiplier != 1.0 {
		t.Fatalf("multiplier must be left unchanged in the 50-70 band, got %v", s.DynamicMultiplier)
	}
}
