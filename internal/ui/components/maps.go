package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

// DefaultMapStyle is the Mapbox style used when none is configured.
const DefaultMapStyle = "mapbox://styles/mapbox/streets-v12"

// StatusColors are the marker colors per listing status.
var StatusColors = map[domain.ListingStatus]string{
	domain.StatusActive:     "#16a34a",
	domain.StatusComingSoon: "#2563eb",
	domain.StatusPending:    "#d97706",
	domain.StatusSold:       "#dc2626",
	domain.StatusForRent:    "#0891b2",
}

// MapMarker is one pin handed to the map behavior module.
type MapMarker struct {
	ID     string  `json:"id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Title  string  `json:"title"`
	Price  string  `json:"price"`
	URL    string  `json:"url"`
	Status string  `json:"status,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// Markers returns a marker for every listing with coordinates.
func Markers(listings []*domain.Listing, colorByStatus bool) []MapMarker {
	out := make([]MapMarker, 0, len(listings))
	for _, l := range listings {
		if l == nil || !l.Address.HasCoordinates() {
			continue
		}
		m := MapMarker{
			ID:     l.ID,
			Lat:    l.Address.Lat,
			Lng:    l.Address.Lng,
			Title:  l.Address.Line1(),
			Price:  PriceText(l.Price, l.Status, true),
			URL:    l.URL(),
			Status: string(l.Status),
		}
		if m.Title == "" {
			m.Title = l.Title
		}
		if colorByStatus {
			m.Color = StatusColors[l.Status]
		}
		out = append(out, m)
	}
	return out
}

type mapPanel struct {
	id          string
	token       string
	style       string
	zoom        float64
	center      []float64
	height      string
	markerColor string
	markers     []MapMarker
}

// render writes the map container, or a static placeholder when no access
// token is configured or nothing can be placed on the map.
func (m mapPanel) render(b *html.Builder) {
	height := props.Enum(m.height, "md", "sm", "md", "lg", "full")
	classes := html.NewClasses("hph-map", "hph-map--"+height)

	if m.token == "" || len(m.markers) == 0 {
		message := "Map unavailable"
		if m.token != "" {
			message = "No listings to show on the map"
		}
		classes.Add("hph-map--unavailable")
		b.Open("div", html.NewAttrs().Class(classes).Set("role", "img").Aria("label", message)).
			Open("div", html.NewAttrs().Set("class", "hph-map__placeholder")).
			Component(icon("map", SizeXL)).
			Element("p", nil, message).
			Close("div").
			Close("div")
		return
	}

	opts := map[string]any{
		"accessToken": m.token,
		"style":       m.style,
		"zoom":        m.zoom,
		"markers":     m.markers,
	}
	if len(m.center) == 2 {
		opts["center"] = m.center
	}
	if m.markerColor != "" {
		opts["markerColor"] = m.markerColor
	}
	hydrate.Require(b.Context(), hydrate.Map)
	b.Open("div", hydrate.Mark(html.NewAttrs().ID(m.id).Class(classes), hydrate.Map, opts)).
		Element("div", html.NewAttrs().Set("class", "hph-map__canvas").Set("role", "region").Aria("label", "Map of listings"), "").
		Close("div")
}

type CardMapProps struct {
	CollectionProps `prop:",squash"`
	AccessToken     string    `prop:"access_token"`
	MapStyle        string    `prop:"map_style"`
	Zoom            float64   `prop:"zoom"`
	Center          []float64 `prop:"center"`       // [lng, lat]
	MapPosition     string    `prop:"map_position"` // "left", "right"
	MapHeight       string    `prop:"map_height"`   // "sm", "md", "lg", "full"
	MarkerColor     string    `prop:"marker_color"`
}

func DefaultCardMapProps() CardMapProps {
	c := defaultCollection()
	c.Card.Variant = CardCompact
	c.Card.CompactPrice = true
	return CardMapProps{
		CollectionProps: c,
		MapStyle:        DefaultMapStyle,
		Zoom:            11,
		MapPosition:     "right",
		MapHeight:       "full",
		MarkerColor:     "#2563eb",
	}
}

// CardMap shows listing cards beside a map of the same listings.
func CardMap(p CardMapProps) templ.Component {
	if p.hidden() {
		return html.Empty()
	}
	id := p.id("card-map")
	items := p.items()
	position := props.Enum(p.MapPosition, "right", "left", "right")

	classes := html.NewClasses("hph-cards", "hph-card-map", "hph-card-map--map-"+position)
	classes.AddIf(len(items) == 0, "hph-cards--empty")
	classes.Add(p.Class)
	attrs := hydrate.Mark(html.NewAttrs().ID(id).Class(classes), hydrate.Cards, p.cardsOptions(ViewMap))

	panel := mapPanel{
		id:          id + "-map",
		token:       p.AccessToken,
		style:       p.MapStyle,
		zoom:        p.Zoom,
		center:      p.Center,
		height:      p.MapHeight,
		markerColor: p.MarkerColor,
		markers:     Markers(items, false),
	}

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Cards)
		b.Open("section", attrs)
		p.header(b, id, nil)
		b.Open("div", html.NewAttrs().Set("class", "hph-card-map__layout"))
		b.Open("div", html.NewAttrs().Set("class", "hph-card-map__list"))
		b.Open("div", html.NewAttrs().Set("class", "hph-card-map__items").Bool("data-hph-cards-items", true))
		if len(items) > 0 {
			b.Component(CardItems(items, p.Card))
		}
		b.Close("div")
		if len(items) == 0 {
			p.empty(b)
		} else {
			p.footer(b)
		}
		b.Close("div")
		b.Open("div", html.NewAttrs().Set("class", "hph-card-map__map"))
		panel.render(b)
		b.Close("div")
		b.Close("div")
		b.Close("section")
	})
}

type DashboardMapProps struct {
	Title       string              `prop:"title"`
	Query       domain.ListingQuery `prop:"query"`
	AccessToken string              `prop:"access_token"`
	MapStyle    string              `prop:"map_style"`
	Zoom        float64             `prop:"zoom"`
	MapHeight   string              `prop:"map_height"`
	ShowLegend  bool                `prop:"show_legend"`
	ShowSummary bool                `prop:"show_summary"`
	ID          string              `prop:"id"`
	Class       string              `prop:"class"`

	Listings []*domain.Listing `prop:"-"`
}

func DefaultDashboardMapProps() DashboardMapProps {
	return DashboardMapProps{
		Title:       "Listings Map",
		MapStyle:    DefaultMapStyle,
		Zoom:        10,
		MapHeight:   "lg",
		ShowLegend:  true,
		ShowSummary: true,
	}
}

// DashboardMap is the agent dashboard view: every listing on one map with
// markers colored by status and a per-status summary.
func DashboardMap(p DashboardMapProps) templ.Component {
	id := p.ID
	if id == "" {
		id = html.AutoID("dashboard-map", p.Title, p.Query.AgentID)
	}
	counts := make(map[domain.ListingStatus]int)
	for _, l := range p.Listings {
		if l != nil {
			counts[l.Status]++
		}
	}
	panel := mapPanel{
		id:      id + "-map",
		token:   p.AccessToken,
		style:   p.MapStyle,
		zoom:    p.Zoom,
		height:  p.MapHeight,
		markers: Markers(p.Listings, true),
	}

	return html.Markup(func(b *html.Builder) {
		b.Open("section", html.NewAttrs().ID(id).Set("class", html.CN("hph-dashboard-map", p.Class)))
		if p.Title != "" {
			sh := DefaultSectionHeaderProps()
			sh.Title = p.Title
			sh.Level = 3
			b.Component(SectionHeader(sh))
		}
		if p.ShowSummary {
			sg := DefaultStatsGridProps()
			sg.Variant = "minimal"
			sg.Stats = append(sg.Stats, StatProps{Label: "Total", Value: format.Number(len(p.Listings))})
			for _, s := range domain.ListingStatuses {
				if counts[s] > 0 {
					sg.Stats = append(sg.Stats, StatProps{Label: s.Label(), Value: format.Number(counts[s])})
				}
			}
			sg.Columns = len(sg.Stats)
			b.Component(StatsGrid(sg))
		}
		panel.render(b)
		if p.ShowLegend {
			b.Open("ul", html.NewAttrs().Set("class", "hph-dashboard-map__legend"))
			for _, s := range domain.ListingStatuses {
				b.Open("li", html.NewAttrs().Set("class", "hph-dashboard-map__legend-item")).
					Element("span", html.NewAttrs().
						Set("class", "hph-dashboard-map__swatch").
						Set("style", "background-color:"+StatusColors[s]).
						Aria("hidden", "true"), "").
					Text(s.Label()).
					Close("li")
			}
			b.Close("ul")
		}
		b.Close("section")
	})
}
