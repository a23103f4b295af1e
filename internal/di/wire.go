//go:build wireinject
// +build wireinject

package di

import (
	"SignalForge/pkg/config"
	"SignalForge/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics
		ProvideMetrics,

		// Exchange clients
		ProvideDeltaClient,
		ProvideMarketData,
		ProvideOrderExecutor,
		ProvideStream,

		// Side effects
		ProvideNotifier,
		ProvideSignalPublisher,

		// State and caching
		ProvideTracker,
		ProvideCache,

		// Use case and HTTP surface
		ProvideEngine,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
