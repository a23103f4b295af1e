package telegram

import (
	"context"
	"strings"
	"testing"

	"SignalForge/internal/domain/models"
)

func TestFormatSignal(t *testing.T) {
	s := &models.TradeSignal{
		Symbol:      "BTCUSD",
		Side:        models.SideLong,
		EntryPrice:  50000,
		StopLoss:    49500.5,
		TargetPrice: 51000,
		Confidence:  0.75,
		Leverage:    10,
		Reasons:     []string{"Bullish Order Block"},
	}
	msg := FormatSignal(s)
	for _, want := range []string{"BTCUSD", "FUTURES_LONG", "$50000.00", "$49500.50", "75.0%", "Bullish Order Block"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestDisabledNotifierDropsSilently(t *testing.T) {
	n := NewNotifier("", "", false)
	// must not panic or attempt any network call
	n.SendText(context.Background(), "hello")
}
