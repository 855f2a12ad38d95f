// Package hydrate ships the client-side behavior attached to rendered
// components. Each component family has one embedded module; components
// declare the families they need and the page emits the matching scripts.
package hydrate

import (
	"context"
	"embed"
	"io/fs"
	"strings"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

// Family names a behavior module. Markup opts in with data-hph-component.
type Family string

const (
	Core      Family = "core"
	Alert     Family = "alert"
	Dropdown  Family = "dropdown"
	Modal     Family = "modal"
	Tabs      Family = "tabs"
	Accordion Family = "accordion"
	Tooltip   Family = "tooltip"
	Gallery   Family = "gallery"
	Range     Family = "range"
	Form      Family = "form"
	Cards     Family = "cards"
	Map       Family = "map"
	Chart     Family = "chart"
)

// Families lists every module in script order.
var Families = []Family{Core, Alert, Dropdown, Modal, Tabs, Accordion, Tooltip, Gallery, Range, Form, Cards, Map, Chart}

// Third-party libraries the map and chart modules expect on window.
const (
	MapboxScript     = "https://api.mapbox.com/mapbox-gl-js/v3.4.0/mapbox-gl.js"
	MapboxStylesheet = "https://api.mapbox.com/mapbox-gl-js/v3.4.0/mapbox-gl.css"
	ChartScript      = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"
)

//go:embed assets/*.js
var assets embed.FS

// FS returns the embedded behavior modules, one <family>.js per family.
func FS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Mark tags a component root with its behavior family and options.
func Mark(attrs *html.Attrs, family Family, options any) *html.Attrs {
	attrs.Data("hph-component", string(family))
	if options != nil {
		attrs.Data("hph-options", html.JSON(options))
	}
	return attrs
}

type collectorKey struct{}

// Collector records the families required while rendering one page.
// It belongs to a single render and is not safe for concurrent use.
type Collector struct {
	required map[Family]bool
}

// WithCollector returns a context that records Require calls.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{required: make(map[Family]bool)}
	return context.WithValue(ctx, collectorKey{}, c), c
}

// FromContext returns the collector carried by ctx, if any.
func FromContext(ctx context.Context) *Collector {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// Require declares that the rendered markup needs the given families.
// Without a collector in ctx it does nothing.
func Require(ctx context.Context, families ...Family) {
	c := FromContext(ctx)
	if c == nil {
		return
	}
	for _, f := range families {
		c.required[f] = true
	}
}

// Families returns required families in script order; core leads whenever
// anything is required.
func (c *Collector) Families() []Family {
	if c == nil || len(c.required) == 0 {
		return nil
	}
	out := []Family{Core}
	for _, f := range Families[1:] {
		if c.required[f] {
			out = append(out, f)
		}
	}
	return out
}

// Scripts emits script tags for the families collected in ctx. Render it
// after the page body so every component has declared its needs.
func Scripts(basePath string) templ.Component {
	return html.Markup(func(b *html.Builder) {
		families := FromContext(b.Context()).Families()
		b.Raw(scriptTags(basePath, families))
	})
}

// ScriptsFor emits script tags for an explicit family list.
func ScriptsFor(basePath string, families ...Family) templ.Component {
	c := &Collector{required: make(map[Family]bool)}
	for _, f := range families {
		c.required[f] = true
	}
	return html.Markup(func(b *html.Builder) {
		b.Raw(scriptTags(basePath, c.Families()))
	})
}

func scriptTags(basePath string, families []Family) string {
	if len(families) == 0 {
		return ""
	}
	base := strings.TrimRight(basePath, "/")
	var sb strings.Builder
	for _, f := range families {
		switch f {
		case Map:
			sb.WriteString(`<link rel="stylesheet" href="` + MapboxStylesheet + `">`)
			sb.WriteString(`<script src="` + MapboxScript + `" defer></script>`)
		case Chart:
			sb.WriteString(`<script src="` + ChartScript + `" defer></script>`)
		}
		sb.WriteString(`<script src="` + html.Escape(base+"/"+string(f)+".js") + `" defer></script>`)
	}
	return sb.String()
}

// Context is the page-level runtime configuration exposed as window.hphContext.
type Context struct {
	AjaxURL           string `json:"ajaxUrl"`
	FragmentsURL      string `json:"fragmentsUrl"`
	ListingsURL       string `json:"listingsUrl"`
	MapboxAccessToken string `json:"mapboxAccessToken,omitempty"`
	SiteName          string `json:"siteName,omitempty"`
}

// ContextScript emits the inline script defining window.hphContext.
func ContextScript(c Context) templ.Component {
	return html.Markup(func(b *html.Builder) {
		payload := strings.ReplaceAll(html.JSON(c), "</", `<\/`)
		b.Raw("<script>window.hphContext = " + payload + ";</script>")
	})
}
