// Package server boots the HTTP server from configuration: it builds the
// service container, starts the preview watcher and serves until ctx is done.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/happyplace/internal/api"
	"github.com/ericfisherdev/happyplace/internal/config"
	"github.com/ericfisherdev/happyplace/internal/container"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/preview"
	"github.com/ericfisherdev/happyplace/internal/services"
)

// Run serves until ctx is canceled, then shuts down within the configured
// timeout.
func Run(ctx context.Context, cfg *config.AppConfig, appLog *logger.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	c, err := container.Initialize(cfg, appLog)
	if err != nil {
		return fmt.Errorf("failed to setup service container: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			appLog.Error(err, "failed to close services")
		}
	}()

	deps, err := resolveDeps(ctx, c)
	if err != nil {
		return err
	}

	if deps.Hub != nil && deps.Preview != nil {
		go deps.Hub.Run(ctx)
		go func() {
			if err := preview.NewWatcher(deps.Preview, deps.Hub, appLog).Run(ctx); err != nil {
				appLog.Error(err, "preview watcher stopped")
			}
		}()
	}

	router, cleanup := api.NewRouter(ctx, deps)
	defer cleanup()

	server := &http.Server{
		Addr:         ":" + cfg.GetServerPort(),
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
		IdleTimeout:  cfg.GetIdleTimeout(),
	}

	serveErr := make(chan error, 1)
	go func() {
		appLog.With("addr", server.Addr).With("environment", cfg.GetEnvironment()).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		appLog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	appLog.Info("server stopped")
	return nil
}

// resolveDeps pulls the router's collaborators out of the container. The
// preview store and hub are only resolved when the preview is enabled.
func resolveDeps(ctx context.Context, c container.Container) (api.Deps, error) {
	var (
		deps api.Deps
		err  error
	)
	if deps.Config, err = container.Resolve[*config.AppConfig](ctx, c, container.ConfigService); err != nil {
		return deps, err
	}
	if deps.Logger, err = container.Resolve[*logger.Logger](ctx, c, container.LoggerService); err != nil {
		return deps, err
	}
	if deps.Listings, err = container.Resolve[*services.ListingService](ctx, c, container.ListingService); err != nil {
		return deps, err
	}
	if deps.Inquiries, err = container.Resolve[*services.InquiryService](ctx, c, container.InquiryService); err != nil {
		return deps, err
	}
	if deps.Render, err = container.Resolve[*services.RenderService](ctx, c, container.RenderService); err != nil {
		return deps, err
	}
	if deps.Health, err = container.Resolve[*services.HealthService](ctx, c, container.HealthService); err != nil {
		return deps, err
	}

	client, err := container.Resolve[*redis.Client](ctx, c, container.RedisService)
	if err != nil {
		return deps, err
	}
	if client != nil {
		deps.Redis = client
	}

	if deps.Config.IsPreviewEnabled() {
		if deps.Preview, err = container.Resolve[*preview.Store](ctx, c, container.PreviewStoreService); err != nil {
			return deps, err
		}
		if deps.Hub, err = container.Resolve[*preview.Hub](ctx, c, container.PreviewHubService); err != nil {
			return deps, err
		}
	}
	return deps, nil
}
