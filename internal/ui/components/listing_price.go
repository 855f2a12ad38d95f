package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

type ListingPriceProps struct {
	Price         int64                `prop:"price"`
	OriginalPrice int64                `prop:"original_price"`
	Status        domain.ListingStatus `prop:"status"`
	SquareFeet    int                  `prop:"square_feet"`
	Compact       bool                 `prop:"compact"`
	ShowStatus    bool                 `prop:"show_status"`
	ShowPerSqft   bool                 `prop:"show_per_sqft"`
	Size          Size                 `prop:"size"`
	Class         string               `prop:"class"`
}

func DefaultListingPriceProps() ListingPriceProps {
	return ListingPriceProps{Size: SizeMD}
}

// ListingPriceFor fills price props from a listing.
func ListingPriceFor(l *domain.Listing, base ListingPriceProps) ListingPriceProps {
	base.Price = l.Price
	base.Status = l.Status
	base.SquareFeet = l.SquareFeet
	return base
}

// PriceText formats a price the way listings display it: rentals are
// monthly and a missing price reads "Price upon request".
func PriceText(price int64, status domain.ListingStatus, compact bool) string {
	if price <= 0 {
		return "Price upon request"
	}
	text := format.Money(price)
	if compact {
		text = format.CompactMoney(price)
	}
	if status == domain.StatusForRent {
		text += "/mo"
	}
	return text
}

func ListingPrice(p ListingPriceProps) templ.Component {
	size := props.Enum(p.Size, SizeMD, SizeSM, SizeMD, SizeLG, SizeXL)
	classes := html.NewClasses("hph-price", "hph-price--"+string(size))
	classes.AddIf(p.Price <= 0, "hph-price--tbd")
	classes.AddIf(p.Status == domain.StatusSold, "hph-price--sold")
	classes.AddIf(p.Status == domain.StatusPending, "hph-price--pending")
	reduced := p.OriginalPrice > p.Price && p.Price > 0
	classes.AddIf(reduced, "hph-price--reduced")
	classes.Add(p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("div", html.NewAttrs().Class(classes))
		if p.ShowStatus {
			b.Component(StatusBadge(p.Status))
		}
		if p.Status == domain.StatusSold && p.Price > 0 {
			b.Element("span", html.NewAttrs().Set("class", "hph-price__label"), "Sold for")
		}
		b.Element("span", html.NewAttrs().Set("class", "hph-price__amount"), PriceText(p.Price, p.Status, p.Compact))
		if reduced {
			b.Element("del", html.NewAttrs().Set("class", "hph-price__original"), PriceText(p.OriginalPrice, p.Status, p.Compact))
		}
		if p.ShowPerSqft && p.Price > 0 && p.SquareFeet > 0 && p.Status != domain.StatusForRent {
			per := int64(float64(p.Price)/float64(p.SquareFeet) + 0.5)
			b.Element("span", html.NewAttrs().Set("class", "hph-price__per-sqft"), format.Money(per)+"/sqft")
		}
		b.Close("div")
	})
}
