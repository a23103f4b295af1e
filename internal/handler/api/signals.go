package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"SignalForge/internal/domain/models"
	drepo "SignalForge/internal/domain/repository"
	icache "SignalForge/internal/service/cache"
	"SignalForge/internal/service/metrics"
	"SignalForge/internal/service/ratelimit"
	"SignalForge/internal/usecase"
	xhttp "SignalForge/pkg/http"
	xlogger "SignalForge/pkg/logger"
)

// SignalsHandler serves the analysis endpoints over Echo.
type SignalsHandler struct {
	engine   *usecase.Engine
	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
	l        *xlogger.Logger
}

func NewSignalsHandler(engine *usecase.Engine) *SignalsHandler {
	metrics.Register()
	return &SignalsHandler{engine: engine, rl: ratelimit.New(), cacheTTL: 30 * time.Second}
}

// SetCache injects a response cache for the analyze endpoint. Caching the
// serialized response also deduplicates the downstream side effects
// (notify, publish, execute) within the TTL.
func (h *SignalsHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.cacheTTL = ttl
	}
}

// SetLogger injects a structured logger.
func (h *SignalsHandler) SetLogger(l *xlogger.Logger) { h.l = l }

func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	g := e.Group("/api")
	g.GET("/analyze", h.Analyze)
	g.POST("/close/:symbol", h.CloseTrade)
	g.GET("/stats", h.Stats)
	g.GET("/trades", h.ActiveTrades)
}

// Root reports liveness plus a short tracker summary.
func (h *SignalsHandler) Root(c echo.Context) error {
	stats := h.engine.Stats()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       "running",
		"system":       "SignalForge",
		"success_rate": fmt.Sprintf("%.1f%%", stats.Stats.SuccessRate),
		"trades":       stats.Stats.TotalTrades,
	})
}

func (h *SignalsHandler) Analyze(c echo.Context) error {
	start := time.Now()
	endpoint := "analyze"
	defer func() { metrics.HandlerLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	req.Resolution = drepo.NormalizeResolution(req.Resolution)

	if !h.rl.Allow(c.RealIP()+":analyze", 5, 2) {
		h.warn("signals.analyze rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	cacheKey := fmt.Sprintf("analyze:%s:%s:%d", req.Symbol, req.Resolution, req.Limit)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(c.Request().Context(), cacheKey); err != nil {
			h.warn("signals.analyze cache_get_error", xlogger.Error(err))
		} else if ok {
			h.debug("signals.analyze cache_hit", xlogger.String("key", cacheKey))
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	res, err := h.engine.Analyze(c.Request().Context(), req)
	if err != nil {
		metrics.HandlerErrors.WithLabelValues(endpoint).Inc()
		h.error("signals.analyze error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	metrics.AnalyzeOutcomes.WithLabelValues(res.Status).Inc()

	if h.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := h.cache.SetBytes(c.Request().Context(), cacheKey, b, h.cacheTTL); err != nil {
				h.warn("signals.analyze cache_set_error", xlogger.Error(err))
			}
		}
	}

	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsHandler) CloseTrade(c echo.Context) error {
	start := time.Now()
	endpoint := "close"
	defer func() { metrics.HandlerLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	symbol := c.Param("symbol")
	if symbol == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("symbol required"))
	}
	req := &models.CloseTradeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.engine.CloseTrade(c.Request().Context(), symbol, req)
	if err != nil {
		if errors.Is(err, usecase.ErrNoActiveTrade) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no active trade for %s", symbol))
		}
		metrics.HandlerErrors.WithLabelValues(endpoint).Inc()
		h.error("signals.close error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsHandler) Stats(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.engine.Stats())
}

func (h *SignalsHandler) ActiveTrades(c echo.Context) error {
	trades := h.engine.ActiveTrades()
	return xhttp.ListResponse(c, trades, int64(len(trades)))
}

func (h *SignalsHandler) warn(msg string, fields ...xlogger.Field) {
	if h.l != nil {
		h.l.Warn(msg, fields...)
	}
}

func (h *SignalsHandler) debug(msg string, fields ...xlogger.Field) {
	if h.l != nil {
		h.l.Debug(msg, fields...)
	}
}

func (h *SignalsHandler) error(msg string, fields ...xlogger.Field) {
	if h.l != nil {
		h.l.Error(msg, fields...)
	}
}
