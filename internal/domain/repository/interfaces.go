package repository

import (
	"context"

	"SignalForge/internal/domain/models"
)

// MarketData fetches candles and the latest traded price from the exchange.
// Transport failures surface as errors; the analysis layer absorbs them as
// "no data" rather than failing the request.
type MarketData interface {
	GetCandles(ctx context.Context, symbol, resolution string, limit int) ([]models.Candle, error)
	GetTicker(ctx context.Context, symbol string) (float64, error)
}

// PriceStream provides a live last-price feed as an alternative to polling
// the REST ticker. LastPrice returns ok=false when no fresh price is known.
type PriceStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	LastPrice(symbol string) (price float64, ok bool)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Notifier pushes a formatted alert for an emitted signal. Best-effort:
// implementations swallow transport failures.
type Notifier interface {
	SendSignal(ctx context.Context, s *models.TradeSignal)
	SendText(ctx context.Context, text string)
}

// SignalPublisher fans emitted signals out to a message bus.
type SignalPublisher interface {
	Publish(ctx context.Context, s *models.TradeSignal) error
	Close() error
}

// OrderExecutor submits an order derived from a signal to the exchange.
type OrderExecutor interface {
	PlaceOrder(ctx context.Context, s *models.TradeSignal, size float64) (orderID string, err error)
}

// Metrics records operational counters for the service.
type Metrics interface {
	RecordSignal(symbol string, side string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
