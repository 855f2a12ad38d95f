package api

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/happyplace/internal/api/middleware"
	"github.com/ericfisherdev/happyplace/internal/config"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/preview"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/services"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
	"github.com/ericfisherdev/happyplace/internal/validation"
)

// Route prefixes the pages and behavior modules refer to.
const (
	AssetsPath    = "/assets/hydrate"
	FragmentsPath = "/fragments/listings"
	ListingsAPI   = "/api/listings"
	InquiriesAPI  = "/api/inquiries"
	PreviewSocket = "/ws/preview"
)

// Deps are the collaborators the HTTP surface is built from. Preview and
// Hub are nil when the component preview is disabled; Redis is nil when
// rate limits are kept in memory.
type Deps struct {
	Config    *config.AppConfig
	Logger    *logger.Logger
	Listings  *services.ListingService
	Render    *services.RenderService
	Inquiries *services.InquiryService
	Health    *services.HealthService
	Redis     redis.UniversalClient
	Preview   *preview.Store
	Hub       *preview.Hub
}

// Server holds the handlers.
type Server struct {
	deps     Deps
	cfg      *config.AppConfig
	log      *logger.Logger
	limiters []*middleware.RateLimitManager
}

// NewRouter wires middleware and routes. The returned func stops the rate
// limiters and must be called on shutdown.
func NewRouter(ctx context.Context, deps Deps) (*gin.Engine, func()) {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Config == nil {
		deps.Config = config.NewConfig()
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.ConfigureBinding(v)
	}

	s := &Server{deps: deps, cfg: deps.Config, log: deps.Logger}
	dev := !s.cfg.IsProduction()

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware(s.log))
	router.Use(middleware.DefaultLoggingMiddleware(s.log))
	if dev {
		router.Use(middleware.DevelopmentRecoveryMiddleware(s.log))
	} else {
		router.Use(middleware.DefaultRecoveryMiddleware(s.log))
	}
	router.Use(middleware.ErrorHandlerMiddleware(middleware.ErrorHandlerConfig{Logger: s.log, ExposeInternal: dev}))
	router.Use(s.limiter(ctx, "global", s.cfg.GetRateLimitRPM()))

	router.NoRoute(s.notFound)
	router.StaticFS(AssetsPath, http.FS(hydrate.FS()))

	router.GET("/", s.home)
	router.GET("/listings", s.browse)
	router.GET("/listings/:slug", s.listing)
	router.GET(FragmentsPath, s.listingFragments)

	api := router.Group("/api", middleware.CORSMiddleware([]string{s.cfg.GetSiteURL()}))
	api.GET("/listings", s.listListings)
	api.GET("/listings/:id", s.getListing)
	api.POST("/inquiries", s.limiter(ctx, "inquiries", s.cfg.GetInquiryRateLimit()), s.submitInquiry)
	api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if s.previewEnabled() {
		router.GET("/components", s.componentIndex)
		router.GET("/components/:name", s.componentPage)
		router.POST("/components/:name", s.componentFragment)
		if deps.Hub != nil {
			router.GET(PreviewSocket, gin.WrapH(deps.Hub))
		}
	}

	if deps.Health != nil {
		NewHealthHandler(deps.Health, s.limiters...).RegisterRoutes(router)
	}

	return router, s.shutdown
}

func (s *Server) limiter(ctx context.Context, name string, rpm int) gin.HandlerFunc {
	handler, manager := middleware.RateLimitMiddleware(ctx, middleware.RateLimitConfig{
		Name:              name,
		RequestsPerMinute: rpm,
		Redis:             s.deps.Redis,
		Logger:            s.log,
	})
	s.limiters = append(s.limiters, manager)
	return handler
}

func (s *Server) shutdown() {
	for _, m := range s.limiters {
		m.Shutdown()
	}
}

func (s *Server) previewEnabled() bool {
	return s.cfg.IsPreviewEnabled() && s.deps.Render != nil
}

// fragment renders a registry component through the render service, so
// data-bound fragments come from the cache when possible.
func (s *Server) fragment(name string, args props.Map) templ.Component {
	return writerComponent(func(ctx context.Context) (string, error) {
		return s.deps.Render.Render(ctx, name, args)
	})
}
