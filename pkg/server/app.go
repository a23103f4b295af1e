package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SignalForge/internal/domain/repository"
	"SignalForge/internal/handler/api"
	"SignalForge/internal/service/delta"
	"SignalForge/pkg/config"
	xhttp "SignalForge/pkg/http"
	applogger "SignalForge/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	handler    *api.SignalsHandler
	stream     *delta.Stream // nil when the live feed is disabled
	publisher  repository.SignalPublisher
	httpServer *xhttp.Server
	logger     *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	handler *api.SignalsHandler,
	stream *delta.Stream,
	publisher repository.SignalPublisher,
) *App {
	return &App{
		cfg:       cfg,
		handler:   handler,
		stream:    stream,
		publisher: publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, err := applogger.New(&applogger.Config{
		Level:  a.cfg.Log.Level,
		Format: a.cfg.Log.Format,
		Output: a.cfg.Log.Output,
	})
	if err != nil {
		return err
	}
	a.logger = l
	a.handler.SetLogger(l)

	if a.cfg.Kafka.Enabled && a.cfg.Kafka.ErrorLogTopic != "" {
		if pub, ok := a.publisher.(applogger.Publisher); ok {
			l.AddCollector(&applogger.CollectionConfig{
				TimeInterval:   30 * time.Second,
				CountThreshold: 100,
				Topic:          a.cfg.Kafka.ErrorLogTopic,
				Publisher:      pub,
			})
		}
	}

	if a.stream != nil {
		a.stream.SetLogger(l)
		if err := a.stream.Start(ctx); err != nil {
			// The REST ticker still works without the stream.
			l.Warn("price stream start failed", applogger.Error(err))
		} else {
			l.Info("price stream started", applogger.Strings("symbols", a.cfg.Exchange.Symbols))
		}
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(l),
	)

	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.logger

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			l.Warn("price stream close error", applogger.Error(err))
		}
	}

	l.RemoveCollector()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			l.Warn("publisher close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
