package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"SignalForge/internal/domain/models"
	drepo "SignalForge/internal/domain/repository"
	"SignalForge/internal/services/detect"
	"SignalForge/internal/services/fusion"
	"SignalForge/internal/tracker"
	"SignalForge/pkg/logger"
)

// ErrNoActiveTrade is returned when closing a symbol with no open trade.
var ErrNoActiveTrade = errors.New("no active trade for symbol")

// Engine runs the full analysis pipeline for one symbol: gate on tracker
// state and session window, fetch candles and price, run the detectors,
// fuse, then fan the signal out to the side effects (notify, publish,
// optionally execute). Each call recomputes everything from fresh market
// data; no detector state is carried between calls.
type Engine struct {
	market    drepo.MarketData
	stream    drepo.PriceStream // nil when the live feed is disabled
	notifier  drepo.Notifier
	publisher drepo.SignalPublisher
	executor  drepo.OrderExecutor
	metrics   drepo.Metrics
	tracker   *tracker.Tracker

	policy        fusion.Policy
	trendCfg      detect.TrendConfig
	sessionFilter bool
	execEnabled   bool
	orderSize     float64

	log *logger.Logger

	mu     sync.Mutex
	active map[string]*models.TradeSignal

	// now is swapped out in tests to pin the session window.
	now func() time.Time
}

// EngineConfig carries the tunables the engine does not own.
type EngineConfig struct {
	Policy           fusion.Policy
	Trend            detect.TrendConfig
	SessionFilter    bool
	ExecutionEnabled bool
	OrderSize        float64
}

// NewEngine creates the analysis engine. stream may be nil.
func NewEngine(
	market drepo.MarketData,
	stream drepo.PriceStream,
	notifier drepo.Notifier,
	publisher drepo.SignalPublisher,
	executor drepo.OrderExecutor,
	metrics drepo.Metrics,
	trk *tracker.Tracker,
	cfg EngineConfig,
) *Engine {
	return &Engine{
		market:        market,
		stream:        stream,
		notifier:      notifier,
		publisher:     publisher,
		executor:      executor,
		metrics:       metrics,
		tracker:       trk,
		policy:        cfg.Policy,
		trendCfg:      cfg.Trend,
		sessionFilter: cfg.SessionFilter,
		execEnabled:   cfg.ExecutionEnabled,
		orderSize:     cfg.OrderSize,
		active:        make(map[string]*models.TradeSignal),
		now:           time.Now,
	}
}

// SetLogger injects the logger used for pipeline events.
func (e *Engine) SetLogger(log *logger.Logger) {
	e.log = log
}

// Analyze runs one analysis pass for the requested symbol. A nil-signal
// outcome (paused, off-session, no pattern) is a normal response, not an
// error; errors are reserved for upstream failures.
func (e *Engine) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	start := time.Now()
	defer func() {
		e.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	}()

	if ok, msg := e.tracker.ShouldTrade(); !ok {
		e.logWarn("trading paused", logger.String("symbol", req.Symbol), logger.String("reason", msg))
		return &models.AnalyzeResponse{Status: models.AnalyzeStatusPaused, Message: msg}, nil
	}

	session, inSession := CurrentSession(e.now())
	if e.sessionFilter && !inSession {
		return &models.AnalyzeResponse{
			Status:  models.AnalyzeStatusNoSignal,
			Message: "outside trading session",
		}, nil
	}

	// Upstream failures are absorbed here: a broken fetch means "no data",
	// and a no-data pass reports no_signal rather than an error.
	candles, err := e.market.GetCandles(ctx, req.Symbol, req.Resolution, req.Limit)
	if err != nil {
		e.metrics.RecordError("candles")
		e.logWarn("candle fetch failed", logger.String("symbol", req.Symbol), logger.Error(err))
		candles = nil
	}
	if len(candles) == 0 {
		return &models.AnalyzeResponse{
			Status:  models.AnalyzeStatusNoSignal,
			Message: "no candle data",
		}, nil
	}

	price, err := e.currentPrice(ctx, req.Symbol)
	if err != nil {
		e.metrics.RecordError("ticker")
		e.logWarn("price fetch failed", logger.String("symbol", req.Symbol), logger.Error(err))
		price = 0
	}
	if price <= 0 {
		return &models.AnalyzeResponse{
			Status:  models.AnalyzeStatusNoSignal,
			Message: "no price available",
		}, nil
	}
	e.metrics.RecordLastPrice(req.Symbol, price)

	obs := detect.All(candles, e.trendCfg)
	obs.CurrentPrice = price

	sig := e.policy.Evaluate(req.Symbol, obs)
	if sig == nil {
		return &models.AnalyzeResponse{
			Status:  models.AnalyzeStatusNoSignal,
			Message: "no qualifying setup",
		}, nil
	}

	sig.ID = uuid.NewString()
	sig.Session = session
	sig.GeneratedAt = e.now()

	e.mu.Lock()
	e.active[sig.Symbol] = sig
	e.mu.Unlock()

	e.metrics.RecordSignal(sig.Symbol, string(sig.Side))
	e.logInfo("signal emitted",
		logger.String("symbol", sig.Symbol),
		logger.String("side", string(sig.Side)),
		logger.Any("confidence", sig.Confidence),
	)

	e.dispatch(ctx, sig)

	return &models.AnalyzeResponse{Status: models.AnalyzeStatusSignal, Data: sig}, nil
}

// currentPrice prefers a fresh streamed price and falls back to the REST
// ticker when the stream is absent, disconnected, or stale.
func (e *Engine) currentPrice(ctx context.Context, symbol string) (float64, error) {
	if e.stream != nil && e.stream.IsConnected() {
		if p, ok := e.stream.LastPrice(symbol); ok {
			return p, nil
		}
	}
	return e.market.GetTicker(ctx, symbol)
}

// dispatch fans the signal out to the side effects. Notification and
// publishing are best-effort; an execution failure is logged and counted
// but never fails the analysis that produced the signal.
func (e *Engine) dispatch(ctx context.Context, sig *models.TradeSignal) {
	e.notifier.SendSignal(ctx, sig)

	if err := e.publisher.Publish(ctx, sig); err != nil {
		e.metrics.RecordError("publish")
		e.logWarn("publish signal failed", logger.String("symbol", sig.Symbol), logger.Error(err))
	}

	if e.execEnabled && e.executor != nil {
		orderID, err := e.executor.PlaceOrder(ctx, sig, e.orderSize)
		if err != nil {
			e.metrics.RecordError("order")
			e.logWarn("order placement failed", logger.String("symbol", sig.Symbol), logger.Error(err))
			return
		}
		e.logInfo("order placed", logger.String("symbol", sig.Symbol), logger.String("order_id", orderID))
	}
}

// CloseTrade records the outcome of an open trade and removes it from the
// active registry. Returns ErrNoActiveTrade when the symbol has no open
// trade recorded.
func (e *Engine) CloseTrade(ctx context.Context, symbol string, req *models.CloseTradeRequest) (*models.CloseTradeResponse, error) {
	e.mu.Lock()
	_, ok := e.active[symbol]
	if ok {
		delete(e.active, symbol)
	}
	e.mu.Unlock()

	if !ok {
		return nil, ErrNoActiveTrade
	}

	profitable := *req.Profitable
	e.tracker.Record(profitable)

	outcome := "loss"
	if profitable {
		outcome = "win"
	}
	e.logInfo("trade closed",
		logger.String("symbol", symbol),
		logger.String("outcome", outcome),
		logger.Any("exit_price", req.ExitPrice),
	)
	e.notifier.SendText(ctx, fmt.Sprintf("Closed %s (%s) at %.2f", symbol, outcome, req.ExitPrice))

	return &models.CloseTradeResponse{
		Status:      "closed",
		Symbol:      symbol,
		SuccessRate: e.tracker.SuccessRate(),
	}, nil
}

// Stats returns the tracker snapshot plus the open-trade count.
func (e *Engine) Stats() *models.StatsResponse {
	e.mu.Lock()
	n := len(e.active)
	e.mu.Unlock()

	return &models.StatsResponse{
		Stats:        e.tracker.Snapshot(),
		ActiveTrades: n,
	}
}

// ActiveTrades returns a copy of the open-trade registry keyed by symbol.
func (e *Engine) ActiveTrades() map[string]*models.TradeSignal {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]*models.TradeSignal, len(e.active))
	for k, v := range e.active {
		out[k] = v
	}
	return out
}

// CurrentSession maps a wall-clock hour onto the trading-session windows:
// Tokyo 05-13, crypto prime 15-18, New York 19-01 (wrapping midnight).
// ok is false in the dead zones between windows.
func CurrentSession(t time.Time) (models.Session, bool) {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 13:
		return models.SessionTokyo, true
	case hour >= 15 && hour < 18:
		return models.SessionCryptoPrime, true
	case hour >= 19 || hour <= 1:
		return models.SessionNewYork, true
	default:
		return models.SessionCryptoPrime, false
	}
}

func (e *Engine) logInfo(msg string, fields ...logger.Field) {
	if e.log != nil {
		e.log.Info(msg, fields...)
	}
}

func (e *Engine) logWarn(msg string, fields ...logger.Field) {
	if e.log != nil {
		e.log.Warn(msg, fields...)
	}
}
