// Package registry looks up components by name and builds them from loose
// key/value arguments, the way templates and the preview tools call them.
package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

// ListingSource answers the listing lookups data-bound components need.
type ListingSource interface {
	Query(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error)
	Get(ctx context.Context, idOrSlug string) (*domain.Listing, error)
	GetAgent(ctx context.Context, id string) (*domain.Agent, error)
}

// Deps are the collaborators the catalog is built with. Every field is
// optional: without Listings data-bound components render their empty state.
type Deps struct {
	Listings    ListingSource
	MapboxToken string
	Logger      *logger.Logger
}

// Builder normalizes args and returns the component. The returned Result
// reports unused keys; a non-nil error means args could not be applied and
// the component was built from defaults.
type Builder func(ctx context.Context, args props.Map) (templ.Component, props.Result, error)

// Entry describes one registered component.
type Entry struct {
	Name        string
	Group       string
	Description string
	Families    []hydrate.Family
	// Bound entries read listings, so their output changes with the store.
	Bound bool
	Build Builder
}

// Registry maps component names to entries. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	log     *logger.Logger
}

// NewEmpty returns a registry with nothing registered.
func NewEmpty(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{entries: make(map[string]Entry), log: log}
}

// New returns a registry holding the full component catalog.
func New(deps Deps) *Registry {
	r := NewEmpty(deps.Logger)
	for _, e := range catalog(deps, r.log) {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds an entry. Names are unique.
func (r *Registry) Register(e Entry) error {
	name := normalize(e.Name)
	if name == "" {
		return domain.NewValidationError("COMPONENT_NAME_REQUIRED", "Component name is required", nil)
	}
	if e.Build == nil {
		return domain.NewValidationError("COMPONENT_BUILDER_REQUIRED", fmt.Sprintf("Component %q has no builder", name), nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return domain.NewValidationError("DUPLICATE_COMPONENT", fmt.Sprintf("Component %q is already registered", name), nil)
	}
	e.Name = name
	r.entries[name] = e
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	e, ok := r.entries[normalize(name)]
	r.mu.RUnlock()
	if !ok {
		return Entry{}, domain.NewNotFoundError("UNKNOWN_COMPONENT", fmt.Sprintf("Unknown component %q", name))
	}
	return e, nil
}

// Render builds the named component from args. Args that cannot be applied
// are logged and the component renders with its defaults; only an unknown
// name is an error.
func (r *Registry) Render(ctx context.Context, name string, args props.Map) (templ.Component, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	c, res, err := e.Build(ctx, args)
	if err != nil {
		r.log.With("component", e.Name).Error(err, "props rejected, rendering defaults")
	} else if len(res.Unused) > 0 {
		r.log.WithFields(map[string]any{"component": e.Name, "keys": res.Unused}).Debug("unused props")
	}
	return c, nil
}

// Check normalizes args for the named component without rendering it and
// reports what was ignored or rejected.
func (r *Registry) Check(ctx context.Context, name string, args props.Map) (props.Result, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return props.Result{}, err
	}
	_, res, err := e.Build(ctx, args)
	return res, err
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Entries returns every entry ordered by group then name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b Entry) int {
		if c := strings.Compare(groupRank(a.Group), groupRank(b.Group)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Groups in catalog order.
const (
	GroupAtoms      = "atoms"
	GroupForms      = "forms"
	GroupNavigation = "navigation"
	GroupOverlay    = "overlay"
	GroupData       = "data"
)

func groupRank(g string) string {
	switch g {
	case GroupAtoms:
		return "0"
	case GroupForms:
		return "1"
	case GroupNavigation:
		return "2"
	case GroupOverlay:
		return "3"
	case GroupData:
		return "4"
	}
	return "9" + g
}
