package container

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/happyplace/internal/config"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/preview"
	"github.com/ericfisherdev/happyplace/internal/registry"
	"github.com/ericfisherdev/happyplace/internal/repository"
	"github.com/ericfisherdev/happyplace/internal/services"
)

// Service names used in the container.
const (
	ConfigService            = "config"
	LoggerService            = "logger"
	DatabaseService          = "database"
	RedisService             = "redis"
	CacheService             = "cache"
	ListingRepositoryService = "listing_repository"
	InquiryRepositoryService = "inquiry_repository"
	ListingService           = "listing_service"
	InquiryService           = "inquiry_service"
	RegistryService          = "component_registry"
	RenderService            = "render_service"
	HealthService            = "health_service"
	PreviewStoreService      = "preview_store"
	PreviewHubService        = "preview_hub"
)

// Version is reported by the health endpoints.
var Version = "dev"

const cachePrefix = "hph:"

// RegisterServices registers every application service. Nothing is built
// until it is first resolved.
func RegisterServices(c Container, cfg *config.AppConfig, log *logger.Logger) error {
	registrations := []struct {
		name    string
		factory Factory
	}{
		{ConfigService, func(context.Context, Container) (interface{}, error) { return cfg, nil }},
		{LoggerService, func(context.Context, Container) (interface{}, error) { return log, nil }},
		{DatabaseService, newDatabase},
		{RedisService, newRedis},
		{CacheService, newCache},
		{ListingRepositoryService, func(ctx context.Context, c Container) (interface{}, error) {
			db, err := Resolve[*dbx.DB](ctx, c, DatabaseService)
			if err != nil {
				return nil, err
			}
			return repository.NewSQLiteListingRepository(db), nil
		}},
		{InquiryRepositoryService, func(ctx context.Context, c Container) (interface{}, error) {
			db, err := Resolve[*dbx.DB](ctx, c, DatabaseService)
			if err != nil {
				return nil, err
			}
			return repository.NewSQLiteInquiryRepository(db), nil
		}},
		{ListingService, newListingService},
		{InquiryService, newInquiryService},
		{RegistryService, newRegistry},
		{RenderService, newRenderService},
		{HealthService, newHealthService},
		{PreviewStoreService, newPreviewStore},
		{PreviewHubService, func(context.Context, Container) (interface{}, error) {
			return preview.NewHub(log), nil
		}},
	}
	for _, r := range registrations {
		if err := c.RegisterSingleton(r.name, r.factory); err != nil {
			return fmt.Errorf("failed to register %s: %w", r.name, err)
		}
	}
	return nil
}

// Initialize builds a container with every service registered.
func Initialize(cfg *config.AppConfig, log *logger.Logger) (*DIContainer, error) {
	c := NewContainer()
	if err := RegisterServices(c, cfg, log); err != nil {
		return nil, err
	}
	return c, nil
}

func deps(ctx context.Context, c Container) (*config.AppConfig, *logger.Logger, error) {
	cfg, err := Resolve[*config.AppConfig](ctx, c, ConfigService)
	if err != nil {
		return nil, nil, err
	}
	log, err := Resolve[*logger.Logger](ctx, c, LoggerService)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func newDatabase(ctx context.Context, c Container) (interface{}, error) {
	cfg, log, err := deps(ctx, c)
	if err != nil {
		return nil, err
	}
	db, err := repository.OpenSQLite(cfg.GetDatabaseURL())
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	c.OnClose(db.Close)
	log.With("dsn", cfg.GetDatabaseURL()).Info("database ready")
	return db, nil
}

// newRedis returns a nil client when redis is disabled.
func newRedis(ctx context.Context, c Container) (interface{}, error) {
	cfg, log, err := deps(ctx, c)
	if err != nil {
		return nil, err
	}
	if !cfg.IsRedisEnabled() {
		return (*redis.Client)(nil), nil
	}
	client, err := services.NewRedisClient(ctx, cfg.GetRedisAddr(), cfg.GetRedisPassword(), cfg.GetRedisDB())
	if err != nil {
		return nil, err
	}
	c.OnClose(client.Close)
	log.With("addr", cfg.GetRedisAddr()).Info("redis connected")
	return client, nil
}

func newCache(ctx context.Context, c Container) (interface{}, error) {
	cfg, log, err := deps(ctx, c)
	if err != nil {
		return nil, err
	}
	client, err := Resolve[*redis.Client](ctx, c, RedisService)
	if err != nil {
		return nil, err
	}
	var backend services.CacheBackend = services.NewMemoryCacheBackend(cachePrefix)
	if client != nil {
		backend = services.NewRedisCacheBackend(client, cachePrefix)
	}
	return services.NewCache(backend, cfg.GetCacheTTL(), log), nil
}

func newListingService(ctx context.Context, c Container) (interface{}, error) {
	log, err := Resolve[*logger.Logger](ctx, c, LoggerService)
	if err != nil {
		return nil, err
	}
	repo, err := Resolve[repository.ListingRepository](ctx, c, ListingRepositoryService)
	if err != nil {
		return nil, err
	}
	cache, err := Resolve[*services.Cache](ctx, c, CacheService)
	if err != nil {
		return nil, err
	}
	return services.NewListingService(repo, cache, log), nil
}

func newInquiryService(ctx context.Context, c Container) (interface{}, error) {
	log, err := Resolve[*logger.Logger](ctx, c, LoggerService)
	if err != nil {
		return nil, err
	}
	repo, err := Resolve[repository.InquiryRepository](ctx, c, InquiryRepositoryService)
	if err != nil {
		return nil, err
	}
	listings, err := Resolve[repository.ListingRepository](ctx, c, ListingRepositoryService)
	if err != nil {
		return nil, err
	}
	return services.NewInquiryService(repo, listings, log), nil
}

func newRegistry(ctx context.Context, c Container) (interface{}, error) {
	cfg, log, err := deps(ctx, c)
	if err != nil {
		return nil, err
	}
	listings, err := Resolve[*services.ListingService](ctx, c, ListingService)
	if err != nil {
		return nil, err
	}
	return registry.New(registry.Deps{
		Listings:    listings,
		MapboxToken: cfg.GetMapboxAccessToken(),
		Logger:      log,
	}), nil
}

func newRenderService(ctx context.Context, c Container) (interface{}, error) {
	log, err := Resolve[*logger.Logger](ctx, c, LoggerService)
	if err != nil {
		return nil, err
	}
	reg, err := Resolve[*registry.Registry](ctx, c, RegistryService)
	if err != nil {
		return nil, err
	}
	cache, err := Resolve[*services.Cache](ctx, c, CacheService)
	if err != nil {
		return nil, err
	}
	return services.NewRenderService(reg, cache, log), nil
}

func newHealthService(ctx context.Context, c Container) (interface{}, error) {
	cfg, err := Resolve[*config.AppConfig](ctx, c, ConfigService)
	if err != nil {
		return nil, err
	}
	repo, err := Resolve[repository.ListingRepository](ctx, c, ListingRepositoryService)
	if err != nil {
		return nil, err
	}
	cache, err := Resolve[*services.Cache](ctx, c, CacheService)
	if err != nil {
		return nil, err
	}
	health := services.NewHealthService(Version, cfg.GetEnvironment())
	health.RegisterChecker(services.NewStoreChecker(repo))
	health.RegisterChecker(services.NewCacheChecker(cache))
	return health, nil
}

// newPreviewStore returns a nil store when the preview is disabled. A
// fixture directory that fails to load is logged, not fatal.
func newPreviewStore(ctx context.Context, c Container) (interface{}, error) {
	cfg, log, err := deps(ctx, c)
	if err != nil {
		return nil, err
	}
	if !cfg.IsPreviewEnabled() {
		return (*preview.Store)(nil), nil
	}
	store, err := preview.NewStore(cfg.GetPreviewDir())
	if err != nil {
		log.With("dir", cfg.GetPreviewDir()).Error(err, "preview fixtures failed to load")
	}
	return store, nil
}
