package registry

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

type fakeSource struct {
	listings map[string]*domain.Listing
	agents   map[string]*domain.Agent
	err      error
	queries  []domain.ListingQuery
}

func (f *fakeSource) Query(_ context.Context, q domain.ListingQuery) (*domain.ListingPage, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	var items []*domain.Listing
	for _, l := range f.listings {
		items = append(items, l)
	}
	return domain.NewListingPage(items, len(items), q), nil
}

func (f *fakeSource) Get(_ context.Context, id string) (*domain.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	if l, ok := f.listings[id]; ok {
		return l, nil
	}
	return nil, domain.NewNotFoundError("LISTING_NOT_FOUND", "Listing not found")
}

func (f *fakeSource) GetAgent(_ context.Context, id string) (*domain.Agent, error) {
	if a, ok := f.agents[id]; ok {
		return a, nil
	}
	return nil, domain.NewNotFoundError("AGENT_NOT_FOUND", "Agent not found")
}

func newSource() *fakeSource {
	agent := &domain.Agent{ID: "ag1", Name: "Jane Roe", Email: "jane@example.com"}
	return &fakeSource{
		listings: map[string]*domain.Listing{
			"l1": {
				ID: "l1", Slug: "12-oak-lane", Title: "Oak Lane Craftsman",
				Status: domain.StatusActive, Price: 1250000, Bedrooms: 3, Bathrooms: 2, SquareFeet: 2400,
				Address: domain.Address{Street: "12 Oak Lane", City: "Austin", State: "TX", Zip: "78701", Lat: 30.27, Lng: -97.74},
				Gallery: []string{"/img/1.jpg", "/img/2.jpg"},
				AgentID: "ag1",
			},
		},
		agents: map[string]*domain.Agent{"ag1": agent},
	}
}

func renderName(t *testing.T, r *Registry, name string, args props.Map) string {
	t.Helper()
	comp, err := r.Render(context.Background(), name, args)
	require.NoError(t, err)
	out, err := html.Render(context.Background(), comp)
	require.NoError(t, err)
	return out
}

func TestNew_RegistersCatalog(t *testing.T) {
	r := New(Deps{})

	names := r.Names()
	assert.Len(t, names, 39)
	assert.True(t, strings.Compare(names[0], names[1]) < 0)
	for _, want := range []string{"card-grid", "checkbox", "radio-group", "dashboard-map", "agent-card", "tooltip"} {
		assert.Contains(t, names, want)
	}

	entries := r.Entries()
	assert.Equal(t, GroupAtoms, entries[0].Group)
	assert.Equal(t, GroupData, entries[len(entries)-1].Group)
}

func TestRegister_Rejects(t *testing.T) {
	r := New(Deps{})
	err := r.Register(Entry{Name: "Button", Build: simple(func() struct{} { return struct{}{} }, func(struct{}) templ.Component { return html.Empty() })})
	assert.True(t, domain.IsValidation(err))

	assert.Error(t, r.Register(Entry{Name: " "}))
	assert.Error(t, r.Register(Entry{Name: "new-thing"}))
}

func TestRender_UnknownComponent(t *testing.T) {
	r := New(Deps{})
	_, err := r.Render(context.Background(), "carousel-3000", nil)
	assert.True(t, domain.IsNotFound(err))

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UNKNOWN_COMPONENT", domainErr.Code)
}

func TestRender_NormalizesArgs(t *testing.T) {
	r := New(Deps{})
	out := renderName(t, r, "BUTTON", props.Map{"text": "Search", "variant": "neon", "size": "lg"})

	assert.Contains(t, out, "hph-btn--primary")
	assert.Contains(t, out, "hph-btn--lg")
	assert.Contains(t, out, "Search")
}

func TestRender_BadPropsFallBackToDefaults(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Writer: buf})
	require.NoError(t, err)
	r := New(Deps{Logger: log})

	args := props.Map{"text": map[string]any{"nested": true}}
	out := renderName(t, r, "button", args)
	assert.Contains(t, out, "hph-btn--primary")
	assert.Contains(t, buf.String(), "props rejected")

	_, err = r.Check(context.Background(), "button", args)
	assert.True(t, domain.IsValidation(err))

	res, err := r.Check(context.Background(), "button", props.Map{"text": "Go", "colour": "red"})
	require.NoError(t, err)
	assert.Equal(t, []string{"colour"}, res.Unused)
}

func TestCardGrid_ResolvesQueryThroughSource(t *testing.T) {
	src := newSource()
	r := New(Deps{Listings: src})

	out := renderName(t, r, "card-grid", props.Map{"query": map[string]any{"city": "Austin", "per_page": "6"}})

	assert.Contains(t, out, "12 Oak Lane")
	require.Len(t, src.queries, 1)
	assert.Equal(t, "Austin", src.queries[0].City)
	assert.Equal(t, 6, src.queries[0].PerPage)
}

func TestCardGrid_QueryFailureDegradesToEmptyState(t *testing.T) {
	src := newSource()
	src.err = errors.New("database is locked")
	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Writer: buf})
	require.NoError(t, err)
	r := New(Deps{Listings: src, Logger: log})

	out := renderName(t, r, "card-grid", nil)
	assert.Contains(t, out, "No listings found")
	assert.Contains(t, buf.String(), "listing query failed")

	// without a source nothing is queried
	for _, name := range []string{"card-grid", "card-list", "card-map"} {
		out = renderName(t, New(Deps{}), name, props.Map{"title": "Featured", "show_empty": false})
		assert.Empty(t, out, name)
	}
}

func TestListingEntries_ResolveListingID(t *testing.T) {
	r := New(Deps{Listings: newSource()})

	assert.Contains(t, renderName(t, r, "listing-price", props.Map{"listing_id": "l1"}), "$1,250,000")
	assert.Contains(t, renderName(t, r, "listing-details", props.Map{"listing_id": "l1"}), "2,400")
	assert.Contains(t, renderName(t, r, "gallery", props.Map{"listing_id": "l1"}), "/img/2.jpg")
	assert.Contains(t, renderName(t, r, "agent-card", props.Map{"listing_id": "l1"}), "Jane Roe")
	assert.Contains(t, renderName(t, r, "agent-card", props.Map{"agent_id": "ag1"}), "Jane Roe")

	// unknown ids render nothing
	assert.Equal(t, "", renderName(t, r, "listing-details", props.Map{"listing_id": "nope"}))
	assert.Equal(t, "", renderName(t, r, "agent-card", props.Map{"agent_id": "nope"}))
}

func TestMapEntries_DefaultAccessToken(t *testing.T) {
	r := New(Deps{Listings: newSource(), MapboxToken: "pk.test"})

	out := renderName(t, r, "card-map", nil)
	assert.Contains(t, out, `data-hph-component="map"`)
	assert.Contains(t, out, "pk.test")

	out = renderName(t, r, "dashboard-map", props.Map{"access_token": ""})
	assert.Contains(t, out, "Map unavailable")

	out = renderName(t, New(Deps{Listings: newSource()}), "card-map", nil)
	assert.Contains(t, out, "Map unavailable")
	assert.Contains(t, out, "12 Oak Lane")
}

func TestRender_Idempotent(t *testing.T) {
	r := New(Deps{Listings: newSource()})
	args := props.Map{"query": map[string]any{"status": "active"}, "title": "Featured"}

	assert.Equal(t, renderName(t, r, "card-list", args), renderName(t, r, "card-list", args))
}
