package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ericfisherdev/happyplace/internal/api/middleware"
	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/props"
	c "github.com/ericfisherdev/happyplace/internal/ui/components"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

// collectionFor maps a view to the registry entry that renders it.
var collectionFor = map[c.View]string{
	c.ViewGrid: "card-grid",
	c.ViewList: "card-list",
	c.ViewMap:  "card-map",
}

func parseView(raw string) c.View {
	v := c.View(raw)
	if _, ok := collectionFor[v]; ok {
		return v
	}
	return c.ViewGrid
}

// queryArgs converts q to the loose form the collection components take.
func queryArgs(q domain.ListingQuery) props.Map {
	out := make(props.Map, len(q.Params())+1)
	for k, v := range q.Params() {
		out[k] = v
	}
	out["page"] = q.Normalized().Page
	return out
}

// browseURL is the listings page URL for q, without the page number.
func browseURL(q domain.ListingQuery, view c.View) string {
	values := url.Values{}
	for k, v := range q.Params() {
		values.Set(k, v)
	}
	if view != c.ViewGrid {
		values.Set("view", string(view))
	}
	if len(values) == 0 {
		return "/listings"
	}
	return "/listings?" + values.Encode()
}

func (s *Server) home(gc *gin.Context) {
	search := c.DefaultSearchFormProps()
	search.Action = "/listings"

	hero := html.Markup(func(b *html.Builder) {
		b.Open("section", html.NewAttrs().Set("class", "hph-hero"))
		b.Element("h1", html.NewAttrs().Set("class", "hph-hero__title"), "Find your happy place")
		b.Element("p", html.NewAttrs().Set("class", "hph-hero__subtitle"), "Homes for sale and rent, updated daily.")
		b.Component(c.SearchForm(search))
		b.Close("section")
	})

	body := html.Markup(func(b *html.Builder) {
		b.Component(hero)
		b.Component(s.fragment("card-grid", props.Map{
			"title":      "Featured Listings",
			"query":      props.Map{"featured": true, "per_page": 6},
			"show_count": false,
			"show_empty": false,
		}))
		b.Component(s.fragment("card-grid", props.Map{
			"title":     "Just Listed",
			"subtitle":  "The newest homes on the market",
			"query":     props.Map{"sort": string(domain.SortNewest), "per_page": 6},
			"load_more": true,
		}))
	})
	s.renderPage(gc, http.StatusOK, pageMeta{
		Description: "Browse homes for sale and rent on " + s.cfg.GetSiteName() + ".",
		Path:        "/",
	}, body)
}

func (s *Server) browse(gc *gin.Context) {
	q, err := bindQuery(gc)
	if err != nil {
		logger.FromContext(gc.Request.Context()).With("error", err.Error()).Debug("ignoring invalid listing filters")
		q = domain.ListingQuery{}.Normalized()
	}
	view := parseView(gc.Query("view"))

	title := "Homes for Sale"
	switch q.Status {
	case domain.StatusForRent:
		title = "Homes for Rent"
	case "":
	default:
		title = q.Status.Label() + " Listings"
	}
	if q.City != "" {
		title += " in " + q.City
	}

	search := c.DefaultSearchFormProps()
	search.Layout = "stacked"
	search.ShowStatus = true
	search.Values = q

	crumbs := c.DefaultBreadcrumbsProps()
	crumbs.Items = []c.Link{{Label: "Listings", URL: "/listings"}}
	if q.City != "" {
		crumbs.Items = append(crumbs.Items, c.Link{Label: q.City, URL: browseURL(domain.ListingQuery{City: q.City}, view)})
	}

	body := html.Markup(func(b *html.Builder) {
		b.Component(c.Breadcrumbs(crumbs))
		b.Open("div", html.NewAttrs().Set("class", "hph-browse"))
		b.Open("aside", html.NewAttrs().Set("class", "hph-browse__filters"))
		b.Component(c.SearchForm(search))
		b.Close("aside")
		b.Open("div", html.NewAttrs().Set("class", "hph-browse__results"))
		b.Component(s.fragment(collectionFor[view], props.Map{
			"title":           title,
			"query":           queryArgs(q),
			"show_sort":       true,
			"show_pagination": true,
			"base_url":        browseURL(q, view),
		}))
		b.Close("div")
		b.Close("div")
	})
	s.renderPage(gc, http.StatusOK, pageMeta{Title: title, Path: "/listings"}, body)
}

func (s *Server) listing(gc *gin.Context) {
	ctx := gc.Request.Context()
	l, err := s.deps.Listings.Get(ctx, gc.Param("slug"))
	if err != nil {
		if domain.IsNotFound(err) {
			s.renderPage(gc, http.StatusNotFound, pageMeta{Title: "Listing not found"},
				notFoundBody("Listing not found", "This listing may have been sold or removed."))
			return
		}
		middleware.Abort(gc, err)
		return
	}

	crumbs := c.DefaultBreadcrumbsProps()
	crumbs.Items = []c.Link{{Label: "Listings", URL: "/listings"}}
	if l.Address.City != "" {
		crumbs.Items = append(crumbs.Items, c.Link{Label: l.Address.City, URL: browseURL(domain.ListingQuery{City: l.Address.City}, c.ViewGrid)})
	}
	crumbs.Items = append(crumbs.Items, c.Link{Label: l.Title, URL: l.URL()})

	description := c.DefaultRichTextProps()
	description.Content = l.Description

	contact := c.DefaultContactFormProps()
	contact.ListingID = l.ID
	contact.AgentID = l.AgentID
	contact.Message = "I am interested in " + l.Address.Line1() + "."
	if l.Address.Line1() == "" {
		contact.Message = "I am interested in " + l.Title + "."
	}

	bound := props.Map{"listing_id": l.ID}
	body := html.Markup(func(b *html.Builder) {
		b.Component(c.Breadcrumbs(crumbs))
		b.Open("article", html.NewAttrs().Set("class", "hph-listing").Data("hph-listing", l.ID))
		b.Component(s.fragment("gallery", bound))
		b.Open("header", html.NewAttrs().Set("class", "hph-listing__header"))
		b.Element("h1", html.NewAttrs().Set("class", "hph-listing__title"), l.Title)
		if line2 := l.Address.Line2(); line2 != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-listing__address"), l.Address.Line1()+", "+line2)
		}
		b.Component(s.fragment("listing-price", props.Map{"listing_id": l.ID, "show_status": true, "show_per_sqft": true}))
		b.Close("header")
		b.Open("div", html.NewAttrs().Set("class", "hph-listing__layout"))
		b.Open("div", html.NewAttrs().Set("class", "hph-listing__content"))
		if l.Description != "" {
			b.Component(section("hph-listing__description", "About this home", c.RichText(description)))
		}
		b.Component(s.fragment("listing-details", bound))
		if l.Address.HasCoordinates() {
			b.Component(section("hph-listing__location", "Location", s.fragment("card-map", props.Map{
				"query":      props.Map{"ids": []string{l.ID}},
				"show_count": false,
				"map_height": "md",
			})))
		}
		b.Close("div")
		b.Open("aside", html.NewAttrs().Set("class", "hph-listing__sidebar"))
		b.Component(s.fragment("agent-card", props.Map{"listing_id": l.ID}))
		b.Component(c.ContactForm(contact))
		b.Close("aside")
		b.Close("div")
		b.Close("article")
	})

	summary := l.Title
	if l.Address.City != "" {
		summary += " in " + l.Address.City
	}
	s.renderPage(gc, http.StatusOK, pageMeta{Title: l.Title, Description: summary, Path: l.URL()}, body)
}
