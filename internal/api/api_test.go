package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"

	"github.com/ericfisherdev/happyplace/internal/config"
	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/preview"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/registry"
	"github.com/ericfisherdev/happyplace/internal/repository"
	"github.com/ericfisherdev/happyplace/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router    *gin.Engine
	inquiries repository.InquiryRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PREVIEW_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPM", "1000")
	t.Setenv("INQUIRY_RATE_LIMIT", "1000")
	t.Setenv("SITE_NAME", "Test Homes")
	cfg := config.NewConfig()

	repo := repository.NewMemoryListingRepository()
	inquiries := repository.NewMemoryInquiryRepository()
	listings := services.NewListingService(repo, nil, nil)
	_, err := listings.Seed(context.Background(),
		[]*domain.Agent{{ID: "ag1", Name: "John Doe", Email: "john@example.com"}},
		[]*domain.Listing{
			{ID: "l1", Slug: "oak-lane", Title: "Oak Lane", Price: 450000, Bedrooms: 3, AgentID: "ag1", Featured: true,
				Description: "A **sunny** bungalow.",
				Address:     domain.Address{Street: "12 Oak Lane", City: "Austin", Lat: 30.2, Lng: -97.7}},
			{ID: "l2", Slug: "pine-court", Title: "Pine Court", Price: 650000, Bedrooms: 4, Status: domain.StatusPending,
				Address: domain.Address{Street: "8 Pine Court", City: "Dallas"}},
		})
	require.NoError(t, err)

	reg := registry.New(registry.Deps{Listings: listings})
	store, err := preview.NewStore(t.TempDir())
	require.NoError(t, err)
	health := services.NewHealthService("test", cfg.GetEnvironment())
	health.RegisterChecker(services.NewStoreChecker(repo))

	router, cleanup := NewRouter(context.Background(), Deps{
		Config:    cfg,
		Listings:  listings,
		Render:    services.NewRenderService(reg, nil, nil),
		Inquiries: services.NewInquiryService(inquiries, repo, nil),
		Health:    health,
		Preview:   store,
	})
	t.Cleanup(cleanup)
	return &testApp{router: router, inquiries: inquiries}
}

func (a *testApp) do(method, target string, body string, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(target string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, target, "", "")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func findAll(n *xhtml.Node, match func(*xhtml.Node) bool) []*xhtml.Node {
	var out []*xhtml.Node
	if match(n) {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, match)...)
	}
	return out
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func scriptSources(t *testing.T, body string) []string {
	t.Helper()
	doc, err := xhtml.Parse(strings.NewReader(body))
	require.NoError(t, err)
	var srcs []string
	for _, n := range findAll(doc, func(n *xhtml.Node) bool { return n.Type == xhtml.ElementNode && n.Data == "script" }) {
		if src := attr(n, "src"); src != "" {
			srcs = append(srcs, src)
		}
	}
	return srcs
}

func TestHomePage(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, "<title>Test Homes</title>")
	assert.Contains(t, body, "window.hphContext")
	assert.Contains(t, body, "Featured Listings")
	assert.Contains(t, body, "Oak Lane")
	assert.Contains(t, scriptSources(t, body), AssetsPath+"/cards.js")
}

func TestBrowsePage_FiltersAndDegrades(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/listings?city=Dallas")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pine Court")
	assert.NotContains(t, w.Body.String(), "Oak Lane")
	assert.Contains(t, w.Body.String(), "Homes for Sale in Dallas")

	w = app.get("/listings?min_beds=lots")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Oak Lane")
	assert.Contains(t, w.Body.String(), "Pine Court")
}

func TestBrowsePage_ListView(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/listings?view=list")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hph-card-list")
}

func TestListingPage(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/listings/oak-lane")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Oak Lane | Test Homes</title>")
	assert.Contains(t, body, "<strong>sunny</strong>")
	assert.Contains(t, body, `name="listing_id"`)
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, scriptSources(t, body), AssetsPath+"/form.js")
}

func TestListingPage_NotFound(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/listings/nowhere")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Listing not found")
}

func TestListingFragments(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/fragments/listings?per_page=1&sort=price_asc&view=list")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(HasMoreHeader))
	assert.Equal(t, "2", w.Header().Get(TotalHeader))
	assert.Contains(t, w.Body.String(), "Oak Lane")
	assert.NotContains(t, w.Body.String(), "Pine Court")

	w = app.get("/fragments/listings?per_page=1&sort=price_asc&page=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", w.Header().Get(HasMoreHeader))
	assert.Contains(t, w.Body.String(), "Pine Court")
}

func TestListingFragments_InvalidQuery(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/fragments/listings?min_price=cheap")

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
}

func TestListingsAPI(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/api/listings?ids=l1,l2")

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 2, data["total"])
	assert.Len(t, data["items"], 2)
	markers := data["markers"].([]any)
	require.Len(t, markers, 1)
	assert.Equal(t, "l1", markers[0].(map[string]any)["id"])
}

func TestListingAPI_GetAndNotFound(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/api/listings/pine-court")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "l2", decode(t, w)["data"].(map[string]any)["id"])

	w = app.get("/api/listings/missing")
	require.Equal(t, http.StatusNotFound, w.Code)
	errBody := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "LISTING_NOT_FOUND", errBody["code"])
}

func TestSubmitInquiry(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{
		"listing_id": {"l1"},
		"name":       {"Jane Buyer"},
		"email":      {"jane@example.com"},
		"message":    {"Is this still available?"},
	}

	w := app.do(http.MethodPost, InquiriesAPI, form.Encode(), "application/x-www-form-urlencoded")

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["data"].(map[string]any)["id"])

	stored, err := app.inquiries.ListByListing(context.Background(), "l1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Jane Buyer", stored[0].Name)
}

func TestSubmitInquiry_Invalid(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{"name": {"Jane Buyer"}, "message": {"Hello there"}}

	w := app.do(http.MethodPost, InquiriesAPI, form.Encode(), "application/x-www-form-urlencoded")

	require.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decode(t, w)["error"].(map[string]any)
	details := errBody["details"].(map[string]any)
	assert.Contains(t, details, "email")
}

func TestComponentPreview(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/components")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/components/card-grid"`)

	w = app.get("/components/badge?props=" + url.QueryEscape(`{"text":"Just Listed","shade":"red"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Just Listed")
	assert.Contains(t, w.Body.String(), "Unused props")

	w = app.get("/components/nothing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComponentFragment(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/components/alert", "title: Heads up\ndismissible: true\nshade: red\n", "application/yaml")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Heads up")
	assert.Equal(t, "core,alert", w.Header().Get(FamiliesHeader))
	assert.Equal(t, "shade", w.Header().Get(UnusedPropsHeader))
}

func TestComponentFragment_UnknownComponent(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/components/nothing", "{}", "application/json")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQueryArgsRoundTrip(t *testing.T) {
	q := domain.ListingQuery{City: "Austin", MinBeds: 2, IDs: []string{"a", "b"}, Page: 3}.Normalized()

	var got domain.ListingQuery
	_, err := props.Normalize(domain.ListingQuery{}, queryArgs(q), &got)

	require.NoError(t, err)
	assert.Equal(t, q, got.Normalized())
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/health/live")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", decode(t, w)["status"])

	w = app.get("/health/ready")
	require.Equal(t, http.StatusOK, w.Code)

	w = app.get("/api/nothing")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", decode(t, w)["error"].(map[string]any)["code"])

	w = app.get("/nothing")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}
