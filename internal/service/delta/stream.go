package delta

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	drepo "SignalForge/internal/domain/repository"
	xlogger "SignalForge/pkg/logger"

	"github.com/gorilla/websocket"
)

// Stream keeps a table of last traded prices fed by the exchange WebSocket.
// It is an optional optimization: the engine falls back to the REST ticker
// whenever LastPrice has nothing fresh.
type Stream struct {
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	staleAfter     time.Duration
	l              *xlogger.Logger

	conn      *websocket.Conn
	connected bool

	mu     sync.RWMutex
	prices map[string]streamedPrice
}

type streamedPrice struct {
	price float64
	at    time.Time
}

// NewStream creates a mark-price stream for the given symbols.
func NewStream(websocketURL string, symbols []string, reconnectDelay, pingInterval, staleAfter time.Duration) *Stream {
	if staleAfter <= 0 {
		staleAfter = 30 * time.Second
	}
	return &Stream{
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		staleAfter:     staleAfter,
		prices:         make(map[string]streamedPrice),
	}
}

// SetLogger injects a structured logger.
func (s *Stream) SetLogger(l *xlogger.Logger) { s.l = l }

// Connect establishes the WebSocket connection.
func (s *Stream) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.websocketURL, nil)
	if err != nil {
		return fmt.Errorf("delta stream connect: %w", err)
	}
	s.conn = conn
	s.connected = true
	if s.l != nil {
		s.l.Info("delta stream connected")
	}
	return nil
}

// Start connects, subscribes, and runs the read and ping loops until the
// context is cancelled.
func (s *Stream) Start(ctx context.Context) error {
	if err := s.Connect(ctx); err != nil {
		return err
	}
	if err := s.Subscribe(ctx); err != nil {
		return err
	}
	go s.pingLoop(ctx)
	go s.readLoop(ctx)
	return nil
}

// Subscribe subscribes to the ticker channel for the configured symbols.
func (s *Stream) Subscribe(ctx context.Context) error {
	if s.conn == nil || !s.connected {
		return fmt.Errorf("delta stream not connected")
	}
	msg := map[string]interface{}{
		"type": "subscribe",
		"payload": map[string]interface{}{
			"channels": []map[string]interface{}{
				{"name": "v2/ticker", "symbols": s.symbols},
			},
		},
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("subscribe tickers: %w", err)
	}
	return nil
}

type tickerFrame struct {
	Type   string `json:"type"`
	Symbol string `json:"symbol"`
	Close  string `json:"close"`
	Mark   string `json:"mark_price"`
}

func (s *Stream) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if s.conn == nil {
			return
		}
		_, b, err := s.conn.ReadMessage()
		if err != nil {
			if s.l != nil {
				s.l.Warn("delta stream read error", xlogger.Error(err))
			}
			s.connected = false
			if err := s.Reconnect(ctx); err != nil {
				return
			}
			continue
		}
		var f tickerFrame
		if err := json.Unmarshal(b, &f); err != nil || f.Type != "v2/ticker" {
			// ignore non-ticker frames
			continue
		}
		raw := f.Close
		if raw == "" {
			raw = f.Mark
		}
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || p <= 0 {
			continue
		}
		s.mu.Lock()
		s.prices[f.Symbol] = streamedPrice{price: p, at: time.Now()}
		s.mu.Unlock()
	}
}

func (s *Stream) pingLoop(ctx context.Context) {
	if s.pingInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.conn != nil && s.connected {
				_ = s.conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}
}

// LastPrice returns the most recent streamed price for symbol, with
// ok=false when nothing fresh enough is known.
func (s *Stream) LastPrice(symbol string) (float64, bool) {
	s.mu.RLock()
	sp, ok := s.prices[symbol]
	s.mu.RUnlock()
	if !ok || time.Since(sp.at) > s.staleAfter {
		return 0, false
	}
	return sp.price, true
}

// Reconnect closes and re-establishes the connection.
func (s *Stream) Reconnect(ctx context.Context) error {
	_ = s.Close()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.reconnectDelay):
	}
	if err := s.Connect(ctx); err != nil {
		return err
	}
	return s.Subscribe(ctx)
}

// Close closes the WebSocket connection.
func (s *Stream) Close() error {
	s.connected = false
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// IsConnected indicates connection status.
func (s *Stream) IsConnected() bool { return s.connected }

var _ drepo.PriceStream = (*Stream)(nil)
