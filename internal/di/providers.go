package di

import (
	"fmt"

	"SignalForge/internal/domain/repository"
	"SignalForge/internal/handler/api"
	internalrepo "SignalForge/internal/repository"
	icache "SignalForge/internal/service/cache"
	"SignalForge/internal/service/delta"
	"SignalForge/internal/service/telegram"
	"SignalForge/internal/services/detect"
	"SignalForge/internal/services/fusion"
	"SignalForge/internal/tracker"
	"SignalForge/internal/usecase"
	"SignalForge/pkg/config"
	pkgkafka "SignalForge/pkg/kafka"
	"SignalForge/pkg/metrics"
	"SignalForge/pkg/server"
)

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideDeltaClient creates the exchange REST client.
func ProvideDeltaClient(cfg *config.Config) *delta.Client {
	return delta.NewClient(cfg.Exchange.BaseURL, cfg.Exchange.Timeout)
}

// ProvideMarketData exposes the exchange client as the candle/ticker source.
func ProvideMarketData(client *delta.Client) repository.MarketData {
	return client
}

// ProvideOrderExecutor exposes the exchange client as the order submitter.
func ProvideOrderExecutor(client *delta.Client) repository.OrderExecutor {
	return client
}

// ProvideStream creates the live mark-price stream, or nil when disabled.
func ProvideStream(cfg *config.Config) *delta.Stream {
	if !cfg.Exchange.StreamEnabled {
		return nil
	}
	return delta.NewStream(
		cfg.Exchange.WebSocketURL,
		cfg.Exchange.Symbols,
		cfg.Exchange.ReconnectDelay,
		cfg.Exchange.PingInterval,
		cfg.Exchange.StalePriceAfter,
	)
}

// ProvideNotifier creates the Telegram notifier.
func ProvideNotifier(cfg *config.Config) repository.Notifier {
	return telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.Enabled)
}

// ProvideSignalPublisher creates the Kafka signal fan-out, or a no-op when
// Kafka is disabled.
func ProvideSignalPublisher(cfg *config.Config) (repository.SignalPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NopSignalPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideTracker creates the trade-state tracker.
func ProvideTracker() *tracker.Tracker {
	return tracker.New()
}

// ProvideCache creates the analyze-response cache backend.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Type == "redis" {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideEngine creates the analysis engine.
func ProvideEngine(
	market repository.MarketData,
	stream *delta.Stream,
	notifier repository.Notifier,
	publisher repository.SignalPublisher,
	executor repository.OrderExecutor,
	m repository.Metrics,
	trk *tracker.Tracker,
	cfg *config.Config,
) *usecase.Engine {
	var ps repository.PriceStream
	if stream != nil {
		ps = stream
	}
	return usecase.NewEngine(market, ps, notifier, publisher, executor, m, trk, usecase.EngineConfig{
		Policy: fusion.Policy{
			MinConfidence: cfg.Engine.MinConfidence,
			MinRiskReward: cfg.Engine.MinRiskReward,
			Leverage:      cfg.Engine.Leverage,
			StrictGates:   cfg.Engine.StrictGates,
		},
		Trend: detect.TrendConfig{
			Length:     cfg.Engine.TrendLength,
			Multiplier: cfg.Engine.TrendMultiplier,
		},
		SessionFilter:    cfg.Engine.SessionFilter,
		ExecutionEnabled: cfg.Execution.Enabled,
		OrderSize:        cfg.Execution.OrderSize,
	})
}

// ProvideHandler creates the HTTP handler with caching wired in.
func ProvideHandler(engine *usecase.Engine, cache icache.BytesCache, cfg *config.Config) *api.SignalsHandler {
	h := api.NewSignalsHandler(engine)
	h.SetCache(cache, cfg.Cache.TTL)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler *api.SignalsHandler,
	stream *delta.Stream,
	publisher repository.SignalPublisher,
) *server.App {
	return server.New(cfg, handler, stream, publisher)
}
