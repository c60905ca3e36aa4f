package container

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/lukawang/emoscope-go/internal/app"
	"github.com/lukawang/emoscope-go/internal/config"
	"github.com/lukawang/emoscope-go/internal/sentry"
)

// sentryFlushTimeout bounds the final event flush during shutdown.
const sentryFlushTimeout = 2 * time.Second

// Application runs the HTTP server and background jobs on top of an
// initialized container.
type Application struct {
	container *Container
	server    *http.Server
	wg        sync.WaitGroup
}

// NewApplication builds the HTTP server around the container.
func NewApplication(c *Container) *Application {
	router := app.NewRouter(*c.Router())

	return &Application{
		container: c,
		server: &http.Server{
			Addr:              ":" + c.cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: config.ServerHTTPRead,
			ReadTimeout:       config.ServerHTTPRead,
			WriteTimeout:      config.ServerHTTPWrite,
			IdleTimeout:       config.ServerHTTPIdle,
		},
	}
}

// Run starts the HTTP server and background jobs, then blocks until a
// shutdown signal arrives. Shutdown order: stop background jobs, drain
// in-flight requests, close resources.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.cacheCleanup(ctx)
	}()

	go func() {
		a.container.log.WithField("port", a.container.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.container.log.WithError(err).Error("HTTP server error")
		}
	}()

	sig := a.waitForShutdownSignal()
	a.container.log.WithField("signal", sig.String()).Info("Received shutdown signal")

	cancel()
	a.wg.Wait()

	return a.shutdown()
}

// cacheCleanup periodically purges expired cache rows.
func (a *Application) cacheCleanup(ctx context.Context) {
	ticker := time.NewTicker(config.CacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.container.db.CleanupExpired(ctx)
			if err != nil {
				a.container.log.WithError(err).Warn("Cache cleanup failed")
				continue
			}
			if removed > 0 {
				a.container.log.WithField("removed", removed).Info("Expired cache entries purged")
			}
		}
	}
}

func (a *Application) waitForShutdownSignal() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}

func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.container.cfg.ShutdownTimeout)
	defer cancel()

	a.container.log.Info("Stopping HTTP server...")
	err := a.server.Shutdown(shutdownCtx)
	if err != nil {
		a.container.log.WithError(err).Error("HTTP server shutdown error")
	}

	a.container.log.Info("Closing resources...")
	a.container.Close()

	if sentry.IsEnabled() {
		sentry.Flush(sentryFlushTimeout)
	}

	a.container.log.Info("Shutdown complete")
	return err
}
