package runtime

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

type ServiceCtx struct {
	deps            *dependencies
	shutdownChannel chan os.Signal
	serverCtx       context.Context
	serverStopFunc  context.CancelFunc
	serverReady     chan struct{}
}

func New(opts ...ServiceOption) *ServiceCtx {
	ctx := &ServiceCtx{
		shutdownChannel: make(chan os.Signal, 1),
	}

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx
}

func (c *ServiceCtx) Run() {
	if err := c.build(); err != nil {
		log.Fatalf("failed to build service: %v", err)
	}

	c.startService()
	c.shutdownHook()

	select {
	case <-c.serverCtx.Done():
	case <-c.shutdownChannel:
		defer close(c.shutdownChannel)
	}

	c.shutdown()
}

func (c *ServiceCtx) build() error {
	c.serverCtx, c.serverStopFunc = context.WithCancel(context.Background())

	var err error

	c.deps, err = initializeDependencies(c.serverCtx)
	if err != nil {
		return fmt.Errorf("initializing dependencies: %w", err)
	}

	return nil
}

func (c *ServiceCtx) startService() {
	go func() {
		c.deps.infra.logger.Info().
			Str("address", c.deps.infra.httpServer.Addr).
			Msg("starting the HTTP server")

		if c.serverReady != nil {
			close(c.serverReady)
		}

		if err := c.deps.infra.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()
}

func (c *ServiceCtx) shutdownHook() {
	signal.Notify(c.shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
}

func (c *ServiceCtx) shutdown() {
	c.deps.infra.logger.Info().Msg("shutting down service...")

	c.serverStopFunc()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.deps.config.HTTPServer.ShutdownTimeout)
	defer cancel()

	c.cleanup(shutdownCtx)

	c.deps.infra.logger.Info().Msg("service shutdown complete")
}

func (c *ServiceCtx) cleanup(ctx context.Context) {
	if err := c.deps.infra.httpServer.Shutdown(ctx); err != nil {
		c.deps.infra.logger.Error().Err(err).Msg("graceful HTTP shutdown failed")
	}

	if c.deps.infra.tracerShutdown != nil {
		if err := c.deps.infra.tracerShutdown(ctx); err != nil {
			c.deps.infra.logger.Error().Err(err).Msg("tracer shutdown failed")
		}
	}

	if c.deps.infra.metricsClient != nil {
		if err := c.deps.infra.metricsClient.Shutdown(ctx); err != nil {
			c.deps.infra.logger.Error().Err(err).Msg("metrics shutdown failed")
		}
	}

	if c.deps.infra.dbPool != nil {
		c.deps.infra.dbPool.Close()
	}
}

func (c *ServiceCtx) WaitForServer() {
	if c.serverReady != nil {
		<-c.serverReady
	}
}
