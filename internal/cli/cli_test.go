package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/registry"
)

const seedYAML = `
agents:
  - id: ag1
    name: John Doe
    email: john@example.com
listings:
  - id: l1
    slug: oak-lane
    title: Oak Lane
    price: 450000
    bedrooms: 3
    agent_id: ag1
    address:
      street: 12 Oak Lane
      city: Austin
  - id: l2
    slug: pine-court
    title: Pine Court
    price: 650000
    status: pending
    address:
      street: 8 Pine Court
      city: Dallas
`

func TestParseSet(t *testing.T) {
	got, err := parseSet([]string{
		"title=Hello world",
		"columns=2",
		"show_count=false",
		"query.city=Austin",
		"query.min_beds=3",
		"empty=",
		"ids=[a, b]",
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello world", got["title"])
	assert.Equal(t, 2, got["columns"])
	assert.Equal(t, false, got["show_count"])
	assert.Equal(t, "", got["empty"])
	assert.Equal(t, []interface{}{"a", "b"}, got["ids"])
	assert.Equal(t, props.Map{"city": "Austin", "min_beds": 3}, got["query"])
}

func TestParseSet_Invalid(t *testing.T) {
	_, err := parseSet([]string{"novalue"})
	assert.Error(t, err)

	_, err = parseSet([]string{"=x"})
	assert.Error(t, err)
}

func TestBuildArgs_FileThenSet(t *testing.T) {
	stdin := strings.NewReader("title: From file\nquery:\n  city: Austin\n  sort: price_asc\n")

	args, err := buildArgs(stdin, Settings{}, renderOptions{
		File: "-",
		Set:  []string{"query.city=Dallas", "columns=4"},
	})

	require.NoError(t, err)
	assert.Equal(t, "From file", args["title"])
	assert.Equal(t, 4, args["columns"])
	assert.Equal(t, props.Map{"city": "Dallas", "sort": "price_asc"}, args["query"])
}

func TestBuildArgs_Fixture(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "badge.yaml"), []byte("component: badge\ntitle: New\nprops:\n  text: New\n  variant: success\n"), 0o600))

	args, err := buildArgs(strings.NewReader(""), Settings{PreviewDir: dir}, renderOptions{
		Fixture: "badge-1",
		Set:     []string{"text=Sold"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sold", args["text"])
	assert.Equal(t, "success", args["variant"])

	_, err = buildArgs(strings.NewReader(""), Settings{PreviewDir: dir}, renderOptions{Fixture: "missing"})
	assert.Error(t, err)
}

func TestReadSeedFile(t *testing.T) {
	seed, err := readSeedFile(strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Len(t, seed.Agents, 1)
	require.Len(t, seed.Listings, 2)
	assert.Equal(t, "Austin", seed.Listings[0].Address.City)
	assert.Equal(t, domain.StatusPending, seed.Listings[1].Status)

	_, err = readSeedFile(strings.NewReader("listings:\n  - id: x\n    colour: red\n"))
	assert.Error(t, err)
}

func seededSettings(t *testing.T) Settings {
	t.Helper()
	s := Settings{Database: filepath.Join(t.TempDir(), "hph.db")}
	seed, err := readSeedFile(strings.NewReader(seedYAML))
	require.NoError(t, err)

	app, err := openLocal(context.Background(), s)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()
	n, err := app.listings.Seed(context.Background(), seed.Agents, seed.Listings)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	return s
}

func TestListListingsLocal(t *testing.T) {
	s := seededSettings(t)
	var out bytes.Buffer

	err := withSource(context.Background(), s, func(src listingSource) error {
		page, err := src.Query(context.Background(), domain.ListingQuery{City: "Austin"}.Normalized())
		if err != nil {
			return err
		}
		return printListingPage(&out, page, "table")
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Oak Lane")
	assert.Contains(t, out.String(), "$450,000")
	assert.NotContains(t, out.String(), "Pine Court")
}

func TestRunRenderLocal(t *testing.T) {
	s := seededSettings(t)
	var out, errOut bytes.Buffer

	err := runRender(context.Background(), strings.NewReader(""), &out, &errOut, s, "card",
		renderOptions{Set: []string{"listing_id=oak-lane", "shade=blue"}})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Oak Lane")
	assert.Contains(t, errOut.String(), "unused props: shade")

	out.Reset()
	err = runRender(context.Background(), strings.NewReader(""), &out, &errOut, s, "card",
		renderOptions{Set: []string{"listing_id=oak-lane", "shade=blue"}, Check: true})
	assert.Error(t, err)
}

func TestRunRenderPage(t *testing.T) {
	s := seededSettings(t)
	var out bytes.Buffer

	err := runRender(context.Background(), strings.NewReader(""), &out, &bytes.Buffer{}, s, "alert",
		renderOptions{Set: []string{"title=Heads up", "dismissible=true"}, Page: true})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "<!DOCTYPE html>"))
	assert.Contains(t, out.String(), "Heads up")
	assert.Contains(t, out.String(), "/assets/hydrate/alert.js")
}

func TestRunRender_UnknownComponent(t *testing.T) {
	s := Settings{Database: ":memory:"}

	err := runRender(context.Background(), strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, s, "nothing", renderOptions{})

	assert.True(t, domain.IsNotFound(err))
}

func TestPrintComponents(t *testing.T) {
	reg := registry.New(registry.Deps{})
	var out bytes.Buffer

	require.NoError(t, printComponents(&out, componentInfos(reg, "data"), "table"))
	assert.Contains(t, out.String(), "card-grid")
	assert.NotContains(t, out.String(), "badge")

	out.Reset()
	require.NoError(t, printComponents(&out, componentInfos(reg, ""), "json"))
	var infos []componentInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	assert.Len(t, infos, len(reg.Names()))
}

func TestAPIClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/listings":
			assert.Equal(t, "Austin", r.URL.Query().Get("city"))
			_, _ = w.Write([]byte(`{"success":true,"data":{"items":[{"id":"l1","title":"Oak Lane"}],"total":1,"page":1,"per_page":12,"total_pages":1}}`))
		case r.URL.Path == "/api/listings/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"type":"NOT_FOUND_ERROR","code":"LISTING_NOT_FOUND","message":"Listing not found: missing"}}`))
		case r.URL.Path == "/components/badge" && r.Method == http.MethodPost:
			var args map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&args))
			w.Header().Set(familiesHeader, "core,alert")
			w.Header().Set(unusedPropsHeader, "shade")
			_, _ = w.Write([]byte(`<span class="hph-badge">` + args["text"].(string) + `</span>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	c := NewAPIClient(srv.URL + "/")
	ctx := context.Background()

	page, err := c.Listings(ctx, domain.ListingQuery{City: "Austin"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Oak Lane", page.Items[0].Title)

	_, err = c.Listing(ctx, "missing")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "LISTING_NOT_FOUND", apiErr.Code)

	frag, err := c.Render(ctx, "badge", props.Map{"text": "New", "shade": "red"})
	require.NoError(t, err)
	assert.Contains(t, frag.HTML, "New")
	assert.Equal(t, []string{"core", "alert"}, frag.Families)
	assert.Equal(t, []string{"shade"}, frag.Unused)
}

func TestServeEnv(t *testing.T) {
	env := serveEnv(Settings{Database: "site.db", MapboxToken: "pk.test"}, "9090", true)

	assert.Equal(t, map[string]string{
		"SERVER_PORT":         "9090",
		"DATABASE_URL":        "site.db",
		"MAPBOX_ACCESS_TOKEN": "pk.test",
		"PREVIEW_ENABLED":     "true",
	}, env)

	assert.Empty(t, serveEnv(Settings{}, "", false))
}
