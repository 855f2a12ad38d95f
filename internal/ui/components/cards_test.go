package components

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

func TestListingPrice(t *testing.T) {
	assert.Equal(t, "$2,500/mo", PriceText(2500, domain.StatusForRent, false))
	assert.Equal(t, "$1.25M", PriceText(1250000, domain.StatusActive, true))
	assert.Equal(t, "Price upon request", PriceText(0, domain.StatusActive, false))

	p := ListingPriceFor(sampleListing("1"), DefaultListingPriceProps())
	p.ShowPerSqft = true
	out := render(t, ListingPrice(p))
	assert.Contains(t, out, ">$1,250,000<")
	assert.Contains(t, out, "$521/sqft")

	p.Status = domain.StatusSold
	p.OriginalPrice = 1300000
	out = render(t, ListingPrice(p))
	assert.Contains(t, out, "Sold for")
	assert.Contains(t, out, "hph-price--reduced")
	assert.Contains(t, out, "<del")
}

func TestCard_Listing(t *testing.T) {
	ctx, c := hydrate.WithCollector(context.Background())
	p := DefaultCardProps()
	p.Listing = sampleListing("42")

	root := parse(t, renderCtx(t, ctx, Card(p)))
	articles := byTag(root, "article")
	require.Len(t, articles, 1)
	assert.Equal(t, "42", attr(articles[0], "data-hph-listing"))
	assert.True(t, hasClass(articles[0], "hph-card--active"))

	title := byClass(root, "hph-card__link")
	require.Len(t, title, 1)
	assert.Equal(t, "12 Maple St", textOf(title[0]))
	assert.Equal(t, "/listings/maple-42", attr(title[0], "href"))
	assert.Equal(t, "Austin, TX 78701", textOf(byClass(root, "hph-card__subtitle")[0]))

	meta := byClass(root, "hph-card__meta-item")
	require.Len(t, meta, 3)
	assert.Equal(t, "3 beds", textOf(meta[0]))
	assert.Equal(t, "2.5 baths", textOf(meta[1]))
	assert.Equal(t, "2,400 sqft", textOf(meta[2]))

	fav := findAll(root, func(n *xhtml.Node) bool { return attr(n, "data-hph-favorite") == "42" })
	assert.Len(t, fav, 1)
	assert.Contains(t, c.Families(), hydrate.Cards)
}

func TestCard_GenericAndGuard(t *testing.T) {
	p := DefaultCardProps()
	p.Title = "Sell with us"
	p.Text = "Free valuation"
	p.Actions = []ButtonProps{{Text: "Start", Href: "/sell"}}

	out := render(t, Card(p))
	assert.Contains(t, out, "Free valuation")
	assert.Contains(t, out, `href="/sell"`)
	assert.NotContains(t, out, "data-hph-favorite")

	assert.Empty(t, render(t, Card(DefaultCardProps())))
}

func TestCardGrid_EmptyState(t *testing.T) {
	ctx, c := hydrate.WithCollector(context.Background())
	out := renderCtx(t, ctx, CardGrid(DefaultCardGridProps()))

	assert.Contains(t, out, "No listings found")
	assert.Contains(t, out, "hph-cards--empty")
	assert.Contains(t, out, `data-hph-component="cards"`)
	assert.NotContains(t, out, "data-hph-load-more")
	assert.Equal(t, []hydrate.Family{hydrate.Core, hydrate.Cards}, c.Families())
}

func TestCollections_RenderNothingWithoutEmptyState(t *testing.T) {
	grid := DefaultCardGridProps()
	grid.Title = "Featured Listings"
	grid.ShowEmpty = false
	list := DefaultCardListProps()
	list.ShowEmpty = false
	cardMap := DefaultCardMapProps()
	cardMap.ShowEmpty = false

	ctx, c := hydrate.WithCollector(context.Background())
	assert.Empty(t, renderCtx(t, ctx, CardGrid(grid)))
	assert.Empty(t, renderCtx(t, ctx, CardList(list)))
	assert.Empty(t, renderCtx(t, ctx, CardMap(cardMap)))
	assert.Empty(t, c.Families())
}

func TestCardGrid_NormalizeMergesNestedCard(t *testing.T) {
	var p CardGridProps
	_, err := props.Normalize(DefaultCardGridProps(), props.Map{
		"columns":   "2",
		"load_more": true,
		"card":      map[string]any{"show_favorite": false},
		"query":     map[string]any{"city": "Austin", "sort": "price_asc"},
	}, &p)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Columns)
	assert.False(t, p.Card.ShowFavorite)
	assert.True(t, p.Card.ShowMeta)
	assert.Equal(t, "Austin", p.Query.City)

	p.Page = domain.NewListingPage([]*domain.Listing{sampleListing("1"), sampleListing("2")}, 5, domain.ListingQuery{PerPage: 2})
	out := render(t, CardGrid(p))
	root := parse(t, out)

	assert.Len(t, byTag(root, "article"), 2)
	assert.Contains(t, out, "hph-grid--cols-2")
	assert.Contains(t, out, "5 properties")
	assert.NotContains(t, out, "data-hph-favorite")
	more := findAll(root, func(n *xhtml.Node) bool { return attr(n, "data-hph-load-more") != "" })
	require.Len(t, more, 1)
	_, hidden := hasAttr(more[0], "hidden")
	assert.False(t, hidden)
	assert.Contains(t, out, `&#34;view&#34;:&#34;grid&#34;`)
	assert.Contains(t, out, `&#34;city&#34;:&#34;Austin&#34;`)
	assert.Equal(t, out, render(t, CardGrid(p)))
}

func TestCardList_ViewToggleAndPagination(t *testing.T) {
	p := DefaultCardListProps()
	p.ShowPagination = true
	p.BaseURL = "/listings"
	p.Page = domain.NewListingPage([]*domain.Listing{sampleListing("1")}, 30, domain.ListingQuery{Page: 2})

	root := parse(t, render(t, CardList(p)))
	views := findAll(root, func(n *xhtml.Node) bool { return attr(n, "data-hph-view") != "" })
	assert.Len(t, views, 2)
	assert.True(t, hasClass(byTag(root, "article")[0], "hph-card--horizontal"))
	assert.Len(t, byClass(root, "hph-pagination"), 1)
	assert.Len(t, findAll(root, func(n *xhtml.Node) bool { return attr(n, "data-hph-sort") != "" }), 1)
}

func TestCardMap_WithoutTokenShowsPlaceholder(t *testing.T) {
	ctx, c := hydrate.WithCollector(context.Background())
	p := DefaultCardMapProps()
	p.Listings = []*domain.Listing{sampleListing("1")}

	out := renderCtx(t, ctx, CardMap(p))
	assert.Contains(t, out, "Map unavailable")
	assert.NotContains(t, out, `data-hph-component="map"`)
	assert.NotContains(t, c.Families(), hydrate.Map)
	assert.Contains(t, out, "hph-card--compact")
}

func TestCardMap_WithToken(t *testing.T) {
	ctx, c := hydrate.WithCollector(context.Background())
	p := DefaultCardMapProps()
	p.AccessToken = "pk.test"
	noCoords := sampleListing("2")
	noCoords.Address.Lat, noCoords.Address.Lng = 0, 0
	p.Listings = []*domain.Listing{sampleListing("1"), noCoords}

	out := renderCtx(t, ctx, CardMap(p))
	assert.Contains(t, out, `data-hph-component="map"`)
	assert.Contains(t, c.Families(), hydrate.Map)
	assert.Len(t, Markers(p.Listings, false), 1)
	assert.Len(t, byTag(parse(t, out), "article"), 2)
}

func TestDashboardMap(t *testing.T) {
	sold := sampleListing("2")
	sold.Status = domain.StatusSold
	p := DefaultDashboardMapProps()
	p.AccessToken = "pk.test"
	p.Listings = []*domain.Listing{sampleListing("1"), sold}

	out := render(t, DashboardMap(p))
	assert.Contains(t, out, "hph-dashboard-map__legend")
	markers := Markers(p.Listings, true)
	require.Len(t, markers, 2)
	assert.Equal(t, StatusColors[domain.StatusSold], markers[1].Color)

	root := parse(t, out)
	values := byClass(root, "hph-stat__value")
	require.Len(t, values, 3)
	assert.Equal(t, "2", textOf(values[0]))
}

func TestGallery(t *testing.T) {
	ctx, c := hydrate.WithCollector(context.Background())
	p := DefaultGalleryProps()
	p.Images = GalleryImages([]string{"/a.jpg", "", "/b.jpg"}, "Maple")

	root := parse(t, renderCtx(t, ctx, Gallery(p)))
	assert.Len(t, byClass(root, "hph-gallery__slide"), 2)
	assert.Len(t, byClass(root, "hph-gallery__dot"), 2)
	assert.Contains(t, c.Families(), hydrate.Gallery)
	assert.Contains(t, render(t, Gallery(p)), "2 photos")

	single := DefaultGalleryProps()
	single.Images = []GalleryImage{{Src: "/a.jpg"}}
	out := render(t, Gallery(single))
	assert.NotContains(t, out, "data-hph-component")
	assert.NotContains(t, out, "hph-gallery__arrow")

	assert.Empty(t, render(t, Gallery(DefaultGalleryProps())))
}

func TestListingDetails(t *testing.T) {
	p := DefaultListingDetailsProps()
	l := sampleListing("1")
	l.Garage = 0
	p.Listing = l

	root := parse(t, render(t, ListingDetails(p)))
	labels := byClass(root, "hph-details__label")
	var names []string
	for _, n := range labels {
		names = append(names, textOf(n))
	}
	assert.Equal(t, []string{"Bedrooms", "Bathrooms", "Square Feet", "Lot Size", "Year Built", "Property Type", "Price / Sqft"}, names)
	assert.Len(t, byTag(byClass(root, "hph-details__features")[0], "li"), 2)

	assert.Empty(t, render(t, ListingDetails(DefaultListingDetailsProps())))
}

func TestAgentCard(t *testing.T) {
	p := DefaultAgentCardProps()
	p.Agent = sampleListing("1").Agent
	p.ContactModal = "contact-modal"

	out := render(t, AgentCard(p))
	assert.Contains(t, out, `href="tel:5125550100"`)
	assert.Contains(t, out, `href="mailto:john@example.com"`)
	assert.Contains(t, out, `data-hph-modal-open="contact-modal"`)
	assert.Contains(t, out, ">JD</span>")

	assert.Empty(t, render(t, AgentCard(DefaultAgentCardProps())))
}
