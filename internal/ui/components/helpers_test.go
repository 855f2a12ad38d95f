package components

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	out, err := html.Render(context.Background(), c)
	require.NoError(t, err)
	return out
}

func renderCtx(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	out, err := html.Render(ctx, c)
	require.NoError(t, err)
	return out
}

// parse parses a markup fragment under a synthetic root.
func parse(t *testing.T, markup string) *xhtml.Node {
	t.Helper()
	nodes, err := xhtml.ParseFragment(strings.NewReader(markup), &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	require.NoError(t, err)
	root := &xhtml.Node{Type: xhtml.ElementNode, Data: "root"}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *xhtml.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *xhtml.Node, match func(*xhtml.Node) bool) []*xhtml.Node {
	var out []*xhtml.Node
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byClass(n *xhtml.Node, class string) []*xhtml.Node {
	return findAll(n, func(n *xhtml.Node) bool { return hasClass(n, class) })
}

func byTag(n *xhtml.Node, tag string) []*xhtml.Node {
	return findAll(n, func(n *xhtml.Node) bool { return n.Data == tag })
}

func textOf(n *xhtml.Node) string {
	var sb strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func sampleListing(id string) *domain.Listing {
	return &domain.Listing{
		ID:           id,
		Slug:         "maple-" + id,
		Title:        "Bright bungalow " + id,
		Status:       domain.StatusActive,
		PropertyType: "House",
		Price:        1250000,
		Bedrooms:     3,
		Bathrooms:    2.5,
		SquareFeet:   2400,
		LotSize:      0.25,
		YearBuilt:    1998,
		Address: domain.Address{
			Street: "12 Maple St",
			City:   "Austin",
			State:  "TX",
			Zip:    "78701",
			Lat:    30.27,
			Lng:    -97.74,
		},
		FeaturedImage: "/img/" + id + ".jpg",
		Features:      []string{"Pool", "Fireplace"},
		Agent:         &domain.Agent{ID: "ag1", Name: "John Doe", Email: "john@example.com", Phone: "(512) 555-0100"},
	}
}
