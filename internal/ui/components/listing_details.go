package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

// DetailFields are the listing facts the details block can show, in
// default order.
var DetailFields = []string{"bedrooms", "bathrooms", "square_feet", "lot_size", "year_built", "garage", "property_type", "price_per_sqft"}

type ListingDetailsProps struct {
	Title         string   `prop:"title"`
	Fields        []string `prop:"fields"`
	Layout        string   `prop:"layout"` // "grid", "list"
	Columns       int      `prop:"columns"`
	ShowIcons     bool     `prop:"show_icons"`
	ShowFeatures  bool     `prop:"show_features"`
	FeaturesTitle string   `prop:"features_title"`
	Class         string   `prop:"class"`

	Listing *domain.Listing `prop:"-"`
}

func DefaultListingDetailsProps() ListingDetailsProps {
	return ListingDetailsProps{
		Title:         "Property Details",
		Fields:        DetailFields,
		Layout:        "grid",
		Columns:       3,
		ShowIcons:     true,
		ShowFeatures:  true,
		FeaturesTitle: "Features",
	}
}

type detail struct {
	icon, label, value string
}

// listingDetail returns the display row for field, or false when the
// listing has no value for it.
func listingDetail(l *domain.Listing, field string) (detail, bool) {
	switch field {
	case "bedrooms":
		if l.Bedrooms > 0 {
			return detail{"bed", "Bedrooms", strconv.Itoa(l.Bedrooms)}, true
		}
	case "bathrooms":
		if l.Bathrooms > 0 {
			return detail{"bath", "Bathrooms", format.Decimal(l.Bathrooms, 1)}, true
		}
	case "square_feet":
		if l.SquareFeet > 0 {
			return detail{"ruler", "Square Feet", format.Number(l.SquareFeet)}, true
		}
	case "lot_size":
		if l.LotSize > 0 {
			return detail{"tree", "Lot Size", format.Acres(l.LotSize)}, true
		}
	case "year_built":
		if l.YearBuilt > 0 {
			return detail{"calendar", "Year Built", strconv.Itoa(l.YearBuilt)}, true
		}
	case "garage":
		if l.Garage > 0 {
			return detail{"car", "Garage", format.Plural(float64(l.Garage), "space", "spaces")}, true
		}
	case "property_type":
		if l.PropertyType != "" {
			return detail{"home", "Property Type", l.PropertyType}, true
		}
	case "price_per_sqft":
		if per := l.PricePerSquareFoot(); per > 0 && l.Status != domain.StatusForRent {
			return detail{"star", "Price / Sqft", format.Money(int64(per+0.5))}, true
		}
	}
	return detail{}, false
}

func ListingDetails(p ListingDetailsProps) templ.Component {
	l := p.Listing
	if l == nil {
		return html.Empty()
	}
	var rows []detail
	for _, f := range p.Fields {
		if d, ok := listingDetail(l, f); ok {
			rows = append(rows, d)
		}
	}
	features := p.ShowFeatures && len(l.Features) > 0
	if len(rows) == 0 && !features {
		return html.Empty()
	}
	layout := props.Enum(p.Layout, "grid", "grid", "list")
	if p.Columns < 2 || p.Columns > 4 {
		p.Columns = 3
	}
	classes := html.NewClasses("hph-details", "hph-details--"+layout, p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("section", html.NewAttrs().Class(classes))
		if p.Title != "" {
			b.Element("h2", html.NewAttrs().Set("class", "hph-details__title"), p.Title)
		}
		if len(rows) > 0 {
			listClasses := html.NewClasses("hph-details__list")
			if layout == "grid" {
				listClasses.Add("hph-grid", "hph-grid--cols-"+strconv.Itoa(p.Columns))
			}
			b.Open("dl", html.NewAttrs().Class(listClasses))
			for _, d := range rows {
				b.Open("div", html.NewAttrs().Set("class", "hph-details__item"))
				if p.ShowIcons {
					b.Component(icon(d.icon, SizeMD))
				}
				b.Element("dt", html.NewAttrs().Set("class", "hph-details__label"), d.label)
				b.Element("dd", html.NewAttrs().Set("class", "hph-details__value"), d.value)
				b.Close("div")
			}
			b.Close("dl")
		}
		if features {
			b.Element("h3", html.NewAttrs().Set("class", "hph-details__subtitle"), p.FeaturesTitle)
			b.Open("ul", html.NewAttrs().Set("class", "hph-details__features"))
			for _, f := range l.Features {
				b.Open("li", nil).Component(icon("check", SizeSM)).Text(f).Close("li")
			}
			b.Close("ul")
		}
		b.Close("section")
	})
}
