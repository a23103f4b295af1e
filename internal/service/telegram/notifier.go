// Package telegram pushes signal alerts to a Telegram chat. Delivery is
// best-effort: transport failures are logged and swallowed, never surfaced
// to the analysis path.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SignalForge/internal/domain/models"
	drepo "SignalForge/internal/domain/repository"
	xhttp "SignalForge/pkg/http"
	xlogger "SignalForge/pkg/logger"
)

const apiBase = "https://api.telegram.org/bot"

type Notifier struct {
	botToken string
	chatID   string
	enabled  bool
	http     *xhttp.Client
	l        *xlogger.Logger
}

// NewNotifier creates a Telegram notifier. A disabled notifier drops all
// messages silently.
func NewNotifier(botToken, chatID string, enabled bool) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		enabled:  enabled,
		http:     xhttp.NewClient(xhttp.WithTimeout(5 * time.Second)),
	}
}

// SetLogger injects a structured logger.
func (n *Notifier) SetLogger(l *xlogger.Logger) { n.l = l }

// SendSignal formats and pushes a trade-signal alert.
func (n *Notifier) SendSignal(ctx context.Context, s *models.TradeSignal) {
	n.SendText(ctx, FormatSignal(s))
}

// SendText pushes raw text to the configured chat, swallowing failures.
func (n *Notifier) SendText(ctx context.Context, text string) {
	if !n.enabled {
		return
	}
	err := n.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    apiBase + n.botToken + "/sendMessage",
		Body: map[string]interface{}{
			"chat_id":    n.chatID,
			"text":       text,
			"parse_mode": "HTML",
		},
	}, nil)
	if err != nil && n.l != nil {
		n.l.Warn("telegram send failed", xlogger.Error(err))
	}
}

// FormatSignal renders the alert body for a signal.
func FormatSignal(s *models.TradeSignal) string {
	var b strings.Builder
	b.WriteString("🚀 <b>FUTURES SIGNAL</b> 🚀\n\n")
	fmt.Fprintf(&b, "Symbol: <b>%s</b>\n", s.Symbol)
	fmt.Fprintf(&b, "Type: %s\n", s.Side)
	fmt.Fprintf(&b, "Entry: <code>$%.2f</code>\n", s.EntryPrice)
	fmt.Fprintf(&b, "Stop: <code>$%.2f</code>\n", s.StopLoss)
	fmt.Fprintf(&b, "Target: <code>$%.2f</code>\n", s.TargetPrice)
	fmt.Fprintf(&b, "Leverage: %dx\n\n", s.Leverage)
	fmt.Fprintf(&b, "Confidence: <b>%.1f%%</b>\n\n", s.Confidence*100)
	b.WriteString("Reasons:\n")
	for _, r := range s.Reasons {
		fmt.Fprintf(&b, "✓ %s\n", r)
	}
	return b.String()
}

var _ drepo.Notifier = (*Notifier)(nil)
