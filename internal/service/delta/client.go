// Package delta implements the exchange adapters: a REST client for candle
// history, tickers and order placement, and a WebSocket mark-price stream.
package delta

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"SignalForge/internal/domain/models"
	drepo "SignalForge/internal/domain/repository"
	xhttp "SignalForge/pkg/http"
	xlogger "SignalForge/pkg/logger"
	"SignalForge/pkg/util"
)

// Client is a thin REST adapter over the Delta exchange public API.
// Requests are unsigned; authenticated endpoints are out of scope.
type Client struct {
	baseURL string
	http    *xhttp.Client
	l       *xlogger.Logger
}

// NewClient creates a Delta REST client with the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// SetLogger injects a structured logger.
func (c *Client) SetLogger(l *xlogger.Logger) { c.l = l }

type candlesResponse struct {
	Result []models.Candle `json:"result"`
}

// GetCandles fetches up to limit OHLCV bars for symbol at the given
// resolution, ordered most-recent last. Any transport or decode failure
// yields an error; callers treat that as "no data", not a fault.
func (c *Client) GetCandles(ctx context.Context, symbol, resolution string, limit int) ([]models.Candle, error) {
	start, end := util.CandleWindow(time.Now(), resolution, limit)
	var res candlesResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v2/history/candles",
		QueryParams: map[string][]string{
			"symbol":     {symbol},
			"resolution": {resolution},
			"start":      {strconv.FormatInt(start, 10)},
			"end":        {strconv.FormatInt(end, 10)},
		},
	}, &res)
	if err != nil {
		if c.l != nil {
			c.l.Warn("delta candles fetch failed",
				xlogger.String("symbol", symbol),
				xlogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get candles %s: %w", symbol, err)
	}

	candles := res.Result
	// the history endpoint returns newest-first; detectors expect ascending
	if len(candles) > 1 && candles[0].Timestamp > candles[len(candles)-1].Timestamp {
		sort.Slice(candles, func(i, j int) bool {
			return candles[i].Timestamp < candles[j].Timestamp
		})
	}
	return candles, nil
}

type tickerResponse struct {
	Result struct {
		Close     float64 `json:"close"`
		MarkPrice string  `json:"mark_price"`
	} `json:"result"`
}

// GetTicker returns the latest traded price for symbol, falling back to the
// mark price when the close field is absent.
func (c *Client) GetTicker(ctx context.Context, symbol string) (float64, error) {
	var res tickerResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v2/tickers/" + symbol,
	}, &res)
	if err != nil {
		if c.l != nil {
			c.l.Warn("delta ticker fetch failed",
				xlogger.String("symbol", symbol),
				xlogger.Error(err),
			)
		}
		return 0, fmt.Errorf("get ticker %s: %w", symbol, err)
	}
	if res.Result.Close > 0 {
		return res.Result.Close, nil
	}
	if res.Result.MarkPrice != "" {
		if p, err := strconv.ParseFloat(res.Result.MarkPrice, 64); err == nil && p > 0 {
			return p, nil
		}
	}
	return 0, fmt.Errorf("get ticker %s: no price in response", symbol)
}

type orderRequest struct {
	ProductSymbol string `json:"product_symbol"`
	Size          string `json:"size"`
	Side          string `json:"side"`
	OrderType     string `json:"order_type"`
	LimitPrice    string `json:"limit_price"`
}

type orderResponse struct {
	Result struct {
		ID int64 `json:"id"`
	} `json:"result"`
}

// PlaceOrder submits a limit order derived from the signal. The request is
// unsigned, so this only works against endpoints that accept it; order
// signing is deliberately not implemented.
func (c *Client) PlaceOrder(ctx context.Context, s *models.TradeSignal, size float64) (string, error) {
	side := "buy"
	if s.Side == models.SideShort {
		side = "sell"
	}
	req := orderRequest{
		ProductSymbol: s.Symbol,
		Size:          strconv.FormatFloat(size, 'f', -1, 64),
		Side:          side,
		OrderType:     "limit_order",
		LimitPrice:    strconv.FormatFloat(s.EntryPrice, 'f', -1, 64),
	}
	var res orderResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/v2/orders",
		Body:   req,
	}, &res)
	if err != nil {
		return "", fmt.Errorf("place order %s: %w", s.Symbol, err)
	}
	return strconv.FormatInt(res.Result.ID, 10), nil
}

var _ drepo.MarketData = (*Client)(nil)
var _ drepo.OrderExecutor = (*Client)(nil)
