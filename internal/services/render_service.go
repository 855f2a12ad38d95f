package services

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/registry"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

// fragment is a cached render: the markup plus the behavior families it
// declared, so a cache hit still requires the right scripts.
type fragment struct {
	HTML     string           `json:"html"`
	Families []hydrate.Family `json:"families,omitempty"`
}

// RenderService renders registry components to strings. Output of
// data-bound components is cached per name and args until the listing
// store changes.
type RenderService struct {
	reg   *registry.Registry
	cache *Cache
	log   *logger.Logger
}

// NewRenderService creates a render service. cache may be nil.
func NewRenderService(reg *registry.Registry, cache *Cache, log *logger.Logger) *RenderService {
	if log == nil {
		log = logger.Nop()
	}
	return &RenderService{reg: reg, cache: cache, log: log}
}

// Registry returns the registry components are looked up in.
func (s *RenderService) Registry() *registry.Registry {
	return s.reg
}

// fragmentKey hashes args through their JSON form; encoding/json sorts map
// keys so equal args give equal keys.
func fragmentKey(name string, args props.Map) (string, bool) {
	data, err := json.Marshal(args)
	if err != nil {
		return "", false
	}
	return FragmentCachePrefix + name + ":" + strconv.FormatUint(xxhash.Sum64(data), 16), true
}

// Render renders the named component. Behavior families it needs are
// recorded on the collector in ctx, if any.
func (s *RenderService) Render(ctx context.Context, name string, args props.Map) (string, error) {
	entry, err := s.reg.Lookup(name)
	if err != nil {
		return "", err
	}

	key, cacheable := fragmentKey(entry.Name, args)
	cacheable = cacheable && entry.Bound && s.cache.Enabled()
	if cacheable {
		var cached fragment
		if s.cache.GetJSON(ctx, key, &cached) {
			hydrate.Require(ctx, cached.Families...)
			return cached.HTML, nil
		}
	}

	comp, err := s.reg.Render(ctx, entry.Name, args)
	if err != nil {
		return "", err
	}
	rctx, collector := hydrate.WithCollector(ctx)
	out, err := html.Render(rctx, comp)
	if err != nil {
		s.log.With("component", entry.Name).Error(err, "render failed")
		return "", err
	}
	families := collector.Families()
	hydrate.Require(ctx, families...)

	if cacheable {
		s.cache.SetJSON(ctx, key, fragment{HTML: out, Families: families})
	}
	return out, nil
}
