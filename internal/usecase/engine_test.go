package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"SignalForge/internal/domain/models"
	"SignalForge/internal/services/detect"
	"SignalForge/internal/services/fusion"
	"SignalForge/internal/tracker"
)

type fakeMarket struct {
	candles []models.Candle
	ticker  float64
	calls   int
	err     error
}

func (m *fakeMarket) GetCandles(ctx context.Context, symbol, resolution string, limit int) ([]models.Candle, error) {
	m.calls++
	return m.candles, m.err
}

func (m *fakeMarket) GetTicker(ctx context.Context, symbol string) (float64, error) {
	return m.ticker, nil
}

type fakeStream struct {
	price     float64
	connected bool
}

func (s *fakeStream) Connect(ctx context.Context) error   { return nil }
func (s *fakeStream) Subscribe(ctx context.Context) error { return nil }
func (s *fakeStream) LastPrice(symbol string) (float64, bool) {
	return s.price, s.price > 0
}
func (s *fakeStream) Reconnect(ctx context.Context) error { return nil }
func (s *fakeStream) Close() error                        { return nil }
func (s *fakeStream) IsConnected() bool                   { return s.connected }

type fakeNotifier struct {
	signals []*models.TradeSignal
	texts   []string
}

func (n *fakeNotifier) SendSignal(ctx context.Context, s *models.TradeSignal) {
	n.signals = append(n.signals, s)
}
func (n *fakeNotifier) SendText(ctx context.Context, text string) {
	n.texts = append(n.texts, text)
}

type fakePublisher struct {
	published []*models.TradeSignal
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, s *models.TradeSignal) error {
	p.published = append(p.published, s)
	return p.err
}
func (p *fakePublisher) Close() error { return nil }

type fakeExecutor struct {
	orders int
	err    error
}

func (x *fakeExecutor) PlaceOrder(ctx context.Context, s *models.TradeSignal, size float64) (string, error) {
	x.orders++
	return "order-1", x.err
}

type nopMetrics struct{}

func (nopMetrics) RecordSignal(symbol, side string) {}
func (nopMetrics) RecordError(kind string) {}
func (nopMetrics) RecordLastPrice(symbol string, p float64) {}
func (nopMetrics) RecordLatency(op string, seconds float64) {}

// signalSeries is a flat series with an embedded bullish order block and a
// bullish gap above price, enough for the full-confidence fused signal.
func signalSeries() []models.Candle {
	cs := make([]models.Candle, 25)
	for i := range cs {
		cs[i] = models.Candle{
			Timestamp: int64(i) * 3600,
			Open:      1000, High: 1000, Low: 1000, Close: 1000,
			Volume: 100,
		}
	}
	cs[18] = models.Candle{Timestamp: 18 * 3600, Open: 1005, High: 1006, Low: 994, Close: 995, Volume: 100}
	cs[19] = models.Candle{Timestamp: 19 * 3600, Open: 995, High: 1008, Low: 995, Close: 1007, Volume: 100}
	cs[21].High = 1008
	cs[23].Low = 1012
	return cs
}

func newTestEngine(market *fakeMarket, stream *fakeStream) (*Engine, *fakeNotifier, *fakePublisher, *fakeExecutor) {
	notifier := &fakeNotifier{}
	publisher := &fakePublisher{}
	executor := &fakeExecutor{}
	e := NewEngine(market, nil, notifier, publisher, executor, nopMetrics{}, tracker.New(), EngineConfig{
		Policy: fusion.DefaultPolicy(),
		Trend:  detect.DefaultTrendConfig(),
	})
	if stream != nil {
		e.stream = stream
	}
	// Pin the clock inside the Tokyo window so session gating is stable.
	e.now = func() time.Time {
		return time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	}
	return e, notifier, publisher, executor
}

func TestAnalyzeEmitsSignal(t *testing.T) {
	market := &fakeMarket{candles: signalSeries(), ticker: 1000}
	e, notifier, publisher, executor := newTestEngine(market, nil)

	resp, err := e.Analyze(context.Background(), &models.AnalyzeRequest{Symbol: "BTCUSD", Resolution: "60", Limit: 100})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.Status != models.AnalyzeStatusSignal {
		t.Fatalf("status = %q, want %q (%s)", resp.Status, models.AnalyzeStatusSignal, resp.Message)
	}
	sig := resp.Data
	if sig == nil {
		t.Fatal("signal data is nil")
	}
	if sig.ID == "" {
		t.Error("signal ID not stamped")
	}
	if sig.Session != models.SessionTokyo {
		t.Errorf("session = %q, want TOKYO", sig.Session)
	}
	if sig.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not stamped")
	}
	if len(notifier.signals) != 1 {
		t.Errorf("notifier got %d signals, want 1", len(notifier.signals))
	}
	if len(publisher.published) != 1 {
		t.Errorf("publisher got %d signals, want 1", len(publisher.published))
	}
	if executor.orders != 0 {
		t.Errorf("executor placed %d orders with execution disabled", executor.orders)
	}
	if got := e.Stats().ActiveTrades; got != 1 {
		t.Errorf("active trades = %d, want 1", got)
	}
}

func TestAnalyzePausedSkipsMarket(t *testing.T) {
	market := &fakeMarket{candles: signalSeries(), ticker: 1000}
	e, _, _, _ := newTestEngine(market, nil)
	for i := 0; i < 4; i++ {
		e.tracker.Record(false)
	}

	resp, err := e.Analyze(context.Background(), &models.AnalyzeRequest{Symbol: "BTCUSD", Resolution: "60", Limit: 100})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.Status != models.AnalyzeStatusPaused {
		t.Fatalf("status = %q, want paused", resp.Status)
	}
	if market.calls != 0 {
		t.Errorf("market was called %d times while paused", market.calls)
	}
}

func TestAnalyzeSessionFilter(t *testing.T) {
	market := &fakeMarket{candles: signalSeries(), ticker: 1000}
	e, _, _, _ := newTestEngine(market, nil)
	e.sessionFilter = true
	e.now = func() time.Time {
		return time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC) // dead zone
	}

	resp, err := e.Analyze(context.Background(), &models.AnalyzeRequest{Symbol: "BTCUSD", Resolution: "60", Limit: 100})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.Status != models.AnalyzeStatusNoSignal {
		t.Fatalf("status = %q, want no_signal", resp.Status)
	}
	if market.calls != 0 {
		t.Errorf("market was called %d times outside session", market.calls)
	}
}

func TestAnalyzeNoSetup(t *testing.T) {
	flat := make([]models.Candle, 25)
	for i := range flat {
		flat[i] = models.Candle{Open: 1000, High: 1000, Low: 1000, Close: 1000, Volume: 100}
	}
	market := &fakeMarket{candles: flat, ticker: 1000}
	e, notifier, _, _ := newTestEngine(market, nil)

	resp, err := e.Analyze(context.Background(), &models.AnalyzeRequest{Symbol: "BTCUSD", Resolution: "60", Limit: 100})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.Status != models.AnalyzeStatusNoSignal {
		t.Fatalf("status = %q, want no_signal", resp.Status)
	}
	if len(notifier.signals) != 0 {
		t.Error("notifier called without a signal")
	}
}

func TestAnalyzeFetchFailureYieldsNoSignal(t *testing.T) {
	market := &fakeMarket{err: errors.New("upstream down")}
	e, _, _, _ := newTestEngine(market, nil)

	resp, err := e.Analyze(context.Background(), &models.AnalyzeRequest{Symbol: "BTCUSD", Resolution: "60", Limit: 100})
	if err != nil {
		t.Fatalf("fetch failure must not surface as error, got %v", err)
	}
	if resp.Status != models.AnalyzeStatusNoSignal {
		t.Fatalf("status = %q, want no_signal", resp.Status)
	}
}

func TestAnalyzePrefersStreamPrice(t *testing.T) {
	market := &fakeMarket{candles: signalSeries(), ticker: 2000} // outside the block
	stream := &fakeStream{price: 1000, connected: true}
	e, _, _, _ := newTestEngine(market, stream)

	resp, err := e.Analyze(context.Background(), &models.AnalyzeRequest{Symbol: "BTCUSD", Resolution: "60", Limit: 100})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.Status != models.AnalyzeStatusSignal {
		t.Fatalf("status = %q, want signal (stream price should be used)", resp.Status)
	}
	if resp.Data.EntryPrice != 1000 {
		t.Errorf("entry = %v, want streamed 1000", resp.Data.EntryPrice)
	}
}

func TestAnalyzeExecutionEnabled(t *testing.T) {
	market := &fakeMarket{candles: signalSeries(), ticker: 1000}
	e, _, _, executor := newTestEngine(market, nil)
	e.execEnabled = true
	e.orderSize = 1

	if _, err := e.Analyze(context.Background(), &models.AnalyzeRequest{Symbol: "BTCUSD", Resolution: "60", Limit: 100}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if executor.orders != 1 {
		t.Errorf("executor placed %d orders, want 1", executor.orders)
	}
}

func TestCloseTradeUnknownSymbol(t *testing.T) {
	e, _, _, _ := newTestEngine(&fakeMarket{}, nil)

	profitable := true
	_, err := e.CloseTrade(context.Background(), "ETHUSD", &models.CloseTradeRequest{ExitPrice: 100, Profitable: &profitable})
	if !errors.Is(err, ErrNoActiveTrade) {
		t.Fatalf("err = %v, want ErrNoActiveTrade", err)
	}
}

func TestCloseTradeRecordsOutcome(t *testing.T) {
	market := &fakeMarket{candles: signalSeries(), ticker: 1000}
	e, notifier, _, _ := newTestEngine(market, nil)

	if _, err := e.Analyze(context.Background(), &models.AnalyzeRequest{Symbol: "BTCUSD", Resolution: "60", Limit: 100}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	profitable := false
	resp, err := e.CloseTrade(context.Background(), "BTCUSD", &models.CloseTradeRequest{ExitPrice: 990, Profitable: &profitable})
	if err != nil {
		t.Fatalf("CloseTrade: %v", err)
	}
	if resp.Status != "closed" {
		t.Errorf("status = %q, want closed", resp.Status)
	}
	if resp.SuccessRate != 0 {
		t.Errorf("success rate = %v, want 0 after single loss", resp.SuccessRate)
	}
	stats := e.Stats()
	if stats.ActiveTrades != 0 {
		t.Errorf("active trades = %d, want 0", stats.ActiveTrades)
	}
	if stats.Stats.TotalTrades != 1 {
		t.Errorf("total trades = %d, want 1", stats.Stats.TotalTrades)
	}
	if len(notifier.texts) != 1 {
		t.Errorf("notifier got %d texts, want 1", len(notifier.texts))
	}

	// Closing again is a 404 equivalent.
	if _, err := e.CloseTrade(context.Background(), "BTCUSD", &models.CloseTradeRequest{ExitPrice: 990, Profitable: &profitable}); !errors.Is(err, ErrNoActiveTrade) {
		t.Fatalf("second close err = %v, want ErrNoActiveTrade", err)
	}
}

func TestCurrentSessionWindows(t *testing.T) {
	cases := []struct {
		hour    int
		session models.Session
		ok      bool
	}{
		{5, models.SessionTokyo, true},
		{12, models.SessionTokyo, true},
		{15, models.SessionCryptoPrime, true},
		{17, models.SessionCryptoPrime, true},
		{19, models.SessionNewYork, true},
		{23, models.SessionNewYork, true},
		{0, models.SessionNewYork, true},
		{1, models.SessionNewYork, true},
		{2, models.SessionCryptoPrime, false},
		{13, models.SessionCryptoPrime, false},
		{14, models.SessionCryptoPrime, false},
		{18, models.SessionCryptoPrime, false},
	}
	for _, tc := range cases {
		at := time.Date(2025, 3, 10, tc.hour, 30, 0, 0, time.UTC)
		session, ok := CurrentSession(at)
		if ok != tc.ok || session != tc.session {
			t.Errorf("hour %d: got (%s, %v), want (%s, %v)", tc.hour, session, ok, tc.session, tc.ok)
		}
	}
}
