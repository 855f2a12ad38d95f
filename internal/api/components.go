package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/happyplace/internal/api/middleware"
	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/preview"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/registry"
	c "github.com/ericfisherdev/happyplace/internal/ui/components"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

// Headers describing a rendered preview fragment.
const (
	FamiliesHeader    = "X-HPH-Families"
	UnusedPropsHeader = "X-HPH-Unused-Props"
)

const maxPropsBody = 1 << 20

// parseProps reads a props object. YAML is accepted, which covers JSON.
func parseProps(raw []byte) (props.Map, error) {
	args := props.Map{}
	if strings.TrimSpace(string(raw)) == "" {
		return args, nil
	}
	if err := yaml.Unmarshal(raw, &args); err != nil {
		return nil, domain.NewValidationError("INVALID_PROPS", "Props must be a YAML or JSON object", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return args, nil
}

func (s *Server) fixtures(name string) []preview.Fixture {
	if s.deps.Preview == nil {
		return nil
	}
	return s.deps.Preview.ForComponent(name)
}

func (s *Server) componentIndex(gc *gin.Context) {
	reg := s.deps.Render.Registry()
	body := html.Markup(func(b *html.Builder) {
		b.Element("h1", html.NewAttrs().Set("class", "hph-preview__title"), "Components")
		group := ""
		for _, e := range reg.Entries() {
			if e.Group != group {
				if group != "" {
					b.Close("ul")
				}
				group = e.Group
				b.Element("h2", html.NewAttrs().Set("class", "hph-preview__group"), strings.ToUpper(group[:1])+group[1:])
				b.Open("ul", html.NewAttrs().Set("class", "hph-preview__list"))
			}
			b.Open("li", html.NewAttrs().Set("class", "hph-preview__entry"))
			b.Element("a", html.NewAttrs().Href("/components/"+e.Name), e.Name)
			b.Element("span", html.NewAttrs().Set("class", "hph-preview__description"), " "+e.Description)
			if n := len(s.fixtures(e.Name)); n > 0 {
				badge := c.DefaultBadgeProps()
				badge.Text = format.Plural(float64(n), "fixture", "fixtures")
				badge.Size = c.SizeSM
				b.Component(c.Badge(badge))
			}
			if e.Bound {
				badge := c.DefaultBadgeProps()
				badge.Text = "data"
				badge.Size = c.SizeSM
				b.Component(c.Badge(badge))
			}
			b.Close("li")
		}
		if group != "" {
			b.Close("ul")
		}
	})
	s.renderPage(gc, http.StatusOK, pageMeta{Title: "Components", Path: "/components"}, body)
}

// specimen is one rendering on a component page.
type specimen struct {
	title       string
	description string
	args        props.Map
}

func (s *Server) componentPage(gc *gin.Context) {
	reg := s.deps.Render.Registry()
	entry, err := reg.Lookup(gc.Param("name"))
	if err != nil {
		s.renderPage(gc, http.StatusNotFound, pageMeta{Title: "Unknown component"},
			notFoundBody("Unknown component", "No component is registered as "+strconv.Quote(gc.Param("name"))+"."))
		return
	}

	var specimens []specimen
	switch {
	case gc.Query("props") != "":
		args, err := parseProps([]byte(gc.Query("props")))
		if err != nil {
			middleware.Abort(gc, err)
			return
		}
		specimens = append(specimens, specimen{title: "Custom props", args: args})
	case gc.Query("fixture") != "":
		var f preview.Fixture
		ok := false
		if s.deps.Preview != nil {
			f, ok = s.deps.Preview.Get(gc.Query("fixture"))
		}
		if !ok || f.Component != entry.Name {
			middleware.AbortWithNotFoundError(gc, "FIXTURE_NOT_FOUND", "Fixture not found: "+gc.Query("fixture"))
			return
		}
		specimens = append(specimens, specimen{title: f.Title, description: f.Description, args: f.Props})
	default:
		specimens = append(specimens, specimen{title: "Defaults", args: props.Map{}})
		for _, f := range s.fixtures(entry.Name) {
			specimens = append(specimens, specimen{title: f.Title, description: f.Description, args: f.Props})
		}
	}

	crumbs := c.DefaultBreadcrumbsProps()
	crumbs.Items = []c.Link{{Label: "Components", URL: "/components"}, {Label: entry.Name, URL: "/components/" + entry.Name}}

	body := html.Markup(func(b *html.Builder) {
		b.Component(c.Breadcrumbs(crumbs))
		b.Element("h1", html.NewAttrs().Set("class", "hph-preview__title"), entry.Name)
		b.Element("p", html.NewAttrs().Set("class", "hph-preview__description"), entry.Description)
		for i, sp := range specimens {
			b.Component(s.specimen(entry, sp, i))
		}
	})
	s.renderPage(gc, http.StatusOK, pageMeta{Title: entry.Name, Path: "/components/" + entry.Name}, body)
}

// specimen renders one prop set with its normalization report and source.
func (s *Server) specimen(entry registry.Entry, sp specimen, n int) templ.Component {
	return html.Markup(func(b *html.Builder) {
		ctx := b.Context()
		res, checkErr := s.deps.Render.Registry().Check(ctx, entry.Name, sp.args)
		out, err := s.deps.Render.Render(ctx, entry.Name, sp.args)

		b.Open("section", html.NewAttrs().Set("class", "hph-preview__specimen").ID("specimen-"+strconv.Itoa(n)))
		b.Element("h2", html.NewAttrs().Set("class", "hph-preview__specimen-title"), sp.title)
		if sp.description != "" {
			b.Element("p", nil, sp.description)
		}
		if checkErr != nil {
			alert := c.DefaultAlertProps()
			alert.Variant = c.AlertDanger
			alert.Title = "Props rejected, showing defaults"
			alert.Message = checkErr.Error()
			b.Component(c.Alert(alert))
		} else if len(res.Unused) > 0 {
			alert := c.DefaultAlertProps()
			alert.Variant = c.AlertWarning
			alert.Title = "Unused props"
			alert.Message = strings.Join(res.Unused, ", ")
			b.Component(c.Alert(alert))
		}
		if err != nil {
			b.Element("pre", html.NewAttrs().Set("class", "hph-preview__error"), err.Error())
			b.Close("section")
			return
		}
		b.Open("div", html.NewAttrs().Set("class", "hph-preview__canvas")).Raw(out).Close("div")
		b.Open("details", html.NewAttrs().Set("class", "hph-preview__source"))
		b.Element("summary", nil, "Markup")
		b.Element("pre", nil, out)
		b.Close("details")
		b.Close("section")
	})
}

// componentFragment renders the posted props and returns the bare markup.
func (s *Server) componentFragment(gc *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(gc.Request.Body, maxPropsBody))
	if err != nil {
		middleware.Abort(gc, domain.NewValidationError("INVALID_PROPS", "Props could not be read", nil))
		return
	}
	args, err := parseProps(raw)
	if err != nil {
		middleware.Abort(gc, err)
		return
	}

	reg := s.deps.Render.Registry()
	res, err := reg.Check(gc.Request.Context(), gc.Param("name"), args)
	if err != nil {
		middleware.Abort(gc, err)
		return
	}
	ctx, collector := hydrate.WithCollector(gc.Request.Context())
	out, err := s.deps.Render.Render(ctx, gc.Param("name"), args)
	if err != nil {
		middleware.Abort(gc, err)
		return
	}

	families := make([]string, 0, len(collector.Families()))
	for _, f := range collector.Families() {
		families = append(families, string(f))
	}
	gc.Header(FamiliesHeader, strings.Join(families, ","))
	gc.Header(UnusedPropsHeader, strings.Join(res.Unused, ","))
	gc.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}
