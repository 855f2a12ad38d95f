package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

type CardVariant string

const (
	CardVertical   CardVariant = "vertical"
	CardHorizontal CardVariant = "horizontal"
	CardCompact    CardVariant = "compact"
	CardOverlay    CardVariant = "overlay"
)

var cardVariants = []CardVariant{CardVertical, CardHorizontal, CardCompact, CardOverlay}

// CardProps configures a content card. With Listing set the card shows the
// listing; the generic fields fill in whatever the listing leaves empty.
type CardProps struct {
	Variant      CardVariant       `prop:"variant"`
	Title        string            `prop:"title"`
	Subtitle     string            `prop:"subtitle"`
	Text         string            `prop:"text"`
	Image        string            `prop:"image"`
	ImageAlt     string            `prop:"image_alt"`
	ImageRatio   string            `prop:"image_ratio"`
	URL          string            `prop:"url"`
	Badge        string            `prop:"badge"`
	BadgeVariant BadgeVariant      `prop:"badge_variant"`
	HeadingLevel int               `prop:"heading_level"`
	ShowPrice    bool              `prop:"show_price"`
	CompactPrice bool              `prop:"compact_price"`
	ShowMeta     bool              `prop:"show_meta"`
	ShowStatus   bool              `prop:"show_status"`
	ShowFavorite bool              `prop:"show_favorite"`
	ShowAgent    bool              `prop:"show_agent"`
	Lazy         bool              `prop:"lazy"`
	Hover        bool              `prop:"hover"`
	Actions      []ButtonProps     `prop:"actions"`
	ID           string            `prop:"id"`
	Class        string            `prop:"class"`
	Attributes   map[string]string `prop:"attributes"`

	Listing *domain.Listing `prop:"-"`
	Footer  templ.Component `prop:"-"`
}

func DefaultCardProps() CardProps {
	return CardProps{
		Variant:      CardVertical,
		ImageRatio:   "4:3",
		BadgeVariant: BadgePrimary,
		HeadingLevel: 3,
		ShowPrice:    true,
		ShowMeta:     true,
		ShowStatus:   true,
		ShowFavorite: true,
		Lazy:         true,
		Hover:        true,
	}
}

// fromListing fills empty generic fields from the listing.
func (p CardProps) fromListing() CardProps {
	l := p.Listing
	if l == nil {
		return p
	}
	if p.Title == "" {
		p.Title = l.Address.Line1()
		if p.Title == "" {
			p.Title = l.Title
		}
	}
	if p.Subtitle == "" {
		p.Subtitle = l.Address.Line2()
	}
	if p.Image == "" {
		p.Image = l.Image()
	}
	if p.ImageAlt == "" {
		p.ImageAlt = l.Title
	}
	if p.URL == "" {
		p.URL = l.URL()
	}
	if p.Badge == "" && l.Featured {
		p.Badge = "Featured"
	}
	return p
}

func listingMeta(l *domain.Listing) []struct{ icon, text string } {
	var out []struct{ icon, text string }
	if l.Bedrooms > 0 {
		out = append(out, struct{ icon, text string }{"bed", format.Plural(float64(l.Bedrooms), "bed", "beds")})
	}
	if l.Bathrooms > 0 {
		out = append(out, struct{ icon, text string }{"bath", format.Plural(l.Bathrooms, "bath", "baths")})
	}
	if l.SquareFeet > 0 {
		out = append(out, struct{ icon, text string }{"ruler", format.Number(l.SquareFeet) + " sqft"})
	}
	return out
}

func Card(p CardProps) templ.Component {
	p = p.fromListing()
	if p.Title == "" {
		return html.Empty()
	}
	l := p.Listing
	variant := props.Enum(p.Variant, CardVertical, cardVariants...)

	classes := html.NewClasses("hph-card", "hph-card--"+string(variant))
	classes.AddIf(p.Hover, "hph-card--hover")
	classes.AddIf(l != nil, "hph-card--listing")
	if l != nil && l.Status.IsValid() {
		classes.Add("hph-card--" + string(l.Status))
	}
	classes.Add(p.Class)

	attrs := root(p.ID, classes, nil)
	if l != nil {
		attrs.Data("hph-listing", l.ID)
	}
	attrs.Merge(p.Attributes)

	favorite := l != nil && p.ShowFavorite

	return html.Markup(func(b *html.Builder) {
		if favorite {
			hydrate.Require(b.Context(), hydrate.Cards)
		}
		b.Open("article", attrs)

		if p.Image != "" {
			media := html.NewAttrs().Set("class", html.CN("hph-card__media", ratioClass("hph-card__media", p.ImageRatio)))
			tag := "div"
			if p.URL != "" {
				tag = "a"
				media.Href(p.URL).Set("tabindex", "-1").Aria("hidden", "true")
			}
			b.Open(tag, media)
			img := html.NewAttrs().Set("class", "hph-card__image").Src(p.Image).Set("alt", p.ImageAlt)
			if p.Lazy {
				img.Set("loading", "lazy").Set("decoding", "async")
			}
			b.Void("img", img)
			b.Open("div", html.NewAttrs().Set("class", "hph-card__badges"))
			if l != nil && p.ShowStatus {
				b.Component(StatusBadge(l.Status))
			}
			if p.Badge != "" {
				bp := DefaultBadgeProps()
				bp.Text = p.Badge
				bp.Variant = p.BadgeVariant
				b.Component(Badge(bp))
			}
			b.Close("div")
			b.Close(tag)
		}
		if favorite {
			b.Open("button", html.NewAttrs().
				Set("type", "button").
				Set("class", "hph-card__favorite").
				Data("hph-favorite", l.ID).
				Aria("pressed", "false").
				Aria("label", "Save "+p.Title)).
				Component(icon("heart", SizeMD)).
				Close("button")
		}

		b.Open("div", html.NewAttrs().Set("class", "hph-card__body"))
		if l != nil && p.ShowPrice {
			pp := ListingPriceFor(l, DefaultListingPriceProps())
			pp.Compact = p.CompactPrice
			pp.Class = "hph-card__price"
			b.Component(ListingPrice(pp))
		}
		tag := headingLevel(p.HeadingLevel, 3)
		b.Open(tag, html.NewAttrs().Set("class", "hph-card__title"))
		if p.URL != "" {
			b.Element("a", html.NewAttrs().Set("class", "hph-card__link").Href(p.URL), p.Title)
		} else {
			b.Text(p.Title)
		}
		b.Close(tag)
		if p.Subtitle != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-card__subtitle"), p.Subtitle)
		}
		if l != nil && p.ShowMeta {
			if meta := listingMeta(l); len(meta) > 0 {
				b.Open("ul", html.NewAttrs().Set("class", "hph-card__meta"))
				for _, m := range meta {
					b.Open("li", html.NewAttrs().Set("class", "hph-card__meta-item")).
						Component(icon(m.icon, SizeSM)).
						Element("span", nil, m.text).
						Close("li")
				}
				b.Close("ul")
			}
		}
		if p.Text != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-card__text"), p.Text)
		}
		if l != nil && p.ShowAgent && l.Agent != nil {
			ap := DefaultAvatarProps()
			ap.Name = l.Agent.Name
			ap.Image = l.Agent.Photo
			ap.Size = SizeSM
			b.Open("div", html.NewAttrs().Set("class", "hph-card__agent")).
				Component(Avatar(ap)).
				Element("span", nil, l.Agent.Name).
				Close("div")
		}
		b.Close("div")

		if len(p.Actions) > 0 || p.Footer != nil {
			b.Open("div", html.NewAttrs().Set("class", "hph-card__footer"))
			for _, a := range p.Actions {
				btn := DefaultButtonProps()
				mergeButton(&btn, a)
				b.Component(Button(btn))
			}
			b.Component(p.Footer)
			b.Close("div")
		}
		b.Close("article")
	})
}

// mergeButton copies the fields set on src over dst.
func mergeButton(dst *ButtonProps, src ButtonProps) {
	if src.Text != "" {
		dst.Text = src.Text
	}
	if src.Icon != "" {
		dst.Icon = src.Icon
	}
	if src.IconPosition != "" {
		dst.IconPosition = src.IconPosition
	}
	if src.Variant != "" {
		dst.Variant = src.Variant
	}
	if src.Size != "" {
		dst.Size = src.Size
	}
	if src.Type != "" {
		dst.Type = src.Type
	}
	dst.Href = src.Href
	dst.Target = src.Target
	dst.Disabled = src.Disabled
	dst.FullWidth = src.FullWidth
	dst.Label = src.Label
	dst.Class = src.Class
	dst.Attributes = src.Attributes
}

// CardItems renders one card per listing using tmpl for every card. The
// fragments endpoint returns exactly this markup for load-more requests.
func CardItems(listings []*domain.Listing, tmpl CardProps) templ.Component {
	return html.Markup(func(b *html.Builder) {
		for i, l := range listings {
			if l == nil {
				continue
			}
			cp := tmpl
			cp.Listing = l
			cp.Lazy = tmpl.Lazy && i > 2
			b.Component(Card(cp))
		}
	})
}

func cardCount(n int) string {
	if n == 1 {
		return "1 property"
	}
	return strconv.Itoa(n) + " properties"
}
