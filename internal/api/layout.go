package api

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/ericfisherdev/happyplace/internal/api/middleware"
	c "github.com/ericfisherdev/happyplace/internal/ui/components"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

type pageMeta struct {
	Title       string
	Description string
	Path        string
}

var siteNav = []c.NavItem{
	{Label: "Home", URL: "/"},
	{Label: "Listings", URL: "/listings", Children: []c.NavItem{
		{Label: "For Sale", URL: "/listings?status=active"},
		{Label: "Coming Soon", URL: "/listings?status=coming_soon"},
		{Label: "For Rent", URL: "/listings?status=for_rent"},
		{Label: "Map", URL: "/listings?view=map"},
	}},
}

// liveReload reloads the page when the preview socket reports changed
// fixtures.
const liveReload = `<script>(function(){var p=location.protocol==="https:"?"wss://":"ws://";` +
	`var s=new WebSocket(p+location.host+"` + PreviewSocket + `");` +
	`s.onmessage=function(e){try{if(JSON.parse(e.data).type==="reload"){location.reload();}}catch(_){}}})();</script>`

// layout wraps body in the site chrome. The script tags come last so they
// see every behavior family body required.
func (s *Server) layout(meta pageMeta, body templ.Component) templ.Component {
	site := s.cfg.GetSiteName()
	title := site
	if meta.Title != "" {
		title = meta.Title + " | " + site
	}
	nav := c.DefaultNavigationProps()
	nav.Items = siteNav
	nav.CurrentURL = meta.Path

	return html.Markup(func(b *html.Builder) {
		b.Raw("<!DOCTYPE html>")
		b.Open("html", html.NewAttrs().Set("lang", "en"))
		b.Open("head", nil)
		b.Void("meta", html.NewAttrs().Set("charset", "utf-8"))
		b.Void("meta", html.NewAttrs().Set("name", "viewport").Set("content", "width=device-width, initial-scale=1"))
		b.Element("title", nil, title)
		if meta.Description != "" {
			b.Void("meta", html.NewAttrs().Set("name", "description").Set("content", meta.Description))
		}
		if meta.Path != "" {
			b.Void("link", html.NewAttrs().Set("rel", "canonical").Href(strings.TrimRight(s.cfg.GetSiteURL(), "/")+meta.Path))
		}
		b.Close("head")

		b.Open("body", html.NewAttrs().Set("class", "hph-site"))
		b.Open("header", html.NewAttrs().Set("class", "hph-site__header"))
		b.Element("a", html.NewAttrs().Set("class", "hph-site__brand").Href("/"), site)
		b.Component(c.Navigation(nav))
		b.Close("header")
		b.Open("main", html.NewAttrs().Set("class", "hph-site__main").ID("main"))
		b.Component(body)
		b.Close("main")
		b.Open("footer", html.NewAttrs().Set("class", "hph-site__footer"))
		b.Element("p", nil, "© "+site)
		b.Close("footer")

		b.Component(hydrate.ContextScript(hydrate.Context{
			AjaxURL:           InquiriesAPI,
			FragmentsURL:      FragmentsPath,
			ListingsURL:       ListingsAPI,
			MapboxAccessToken: s.cfg.GetMapboxAccessToken(),
			SiteName:          site,
		}))
		b.Component(hydrate.Scripts(AssetsPath))
		if s.previewEnabled() && s.deps.Hub != nil {
			b.Raw(liveReload)
		}
		b.Close("body")
		b.Close("html")
	})
}

// renderPage renders a full document with a fresh behavior collector.
func (s *Server) renderPage(gc *gin.Context, status int, meta pageMeta, body templ.Component) {
	ctx, _ := hydrate.WithCollector(gc.Request.Context())
	HTMLResponse(gc, ctx, status, s.layout(meta, body))
}

// notFound answers unknown routes: JSON under /api, a page elsewhere.
func (s *Server) notFound(gc *gin.Context) {
	if strings.HasPrefix(gc.Request.URL.Path, "/api/") {
		middleware.AbortWithNotFoundError(gc, "ROUTE_NOT_FOUND", "Route not found")
		return
	}
	s.renderPage(gc, http.StatusNotFound, pageMeta{Title: "Page not found"}, notFoundBody("Page not found", "The page you are looking for does not exist."))
}

func notFoundBody(title, message string) templ.Component {
	es := c.DefaultEmptyStateProps()
	es.Icon = "search"
	es.Title = title
	es.Message = message
	es.ActionText = "Browse listings"
	es.ActionURL = "/listings"
	return c.EmptyState(es)
}

// section wraps content in a page section with an optional heading.
func section(class, title string, content ...templ.Component) templ.Component {
	return html.Markup(func(b *html.Builder) {
		b.Open("section", html.NewAttrs().Set("class", html.CN("hph-page__section", class)))
		if title != "" {
			sh := c.DefaultSectionHeaderProps()
			sh.Title = title
			b.Component(c.SectionHeader(sh))
		}
		for _, comp := range content {
			b.Component(comp)
		}
		b.Close("section")
	})
}
