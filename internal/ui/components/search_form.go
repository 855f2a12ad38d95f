package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

// PropertyTypes are the property types offered by the search form.
var PropertyTypes = []string{"House", "Condo", "Townhouse", "Multi-Family", "Land"}

var priceSteps = []int64{100000, 200000, 300000, 400000, 500000, 750000, 1000000, 1500000, 2000000}

type SearchFormProps struct {
	Action        string              `prop:"action"`
	Method        string              `prop:"method"` // "get", "post"
	Layout        string              `prop:"layout"` // "inline", "stacked"
	Values        domain.ListingQuery `prop:"values"`
	ShowLocation  bool                `prop:"show_location"`
	ShowPrice     bool                `prop:"show_price"`
	ShowBeds      bool                `prop:"show_beds"`
	ShowBaths     bool                `prop:"show_baths"`
	ShowType      bool                `prop:"show_type"`
	ShowStatus    bool                `prop:"show_status"`
	PropertyTypes []string            `prop:"property_types"`
	Placeholder   string              `prop:"placeholder"`
	SubmitText    string              `prop:"submit_text"`
	ID            string              `prop:"id"`
	Class         string              `prop:"class"`
}

func DefaultSearchFormProps() SearchFormProps {
	return SearchFormProps{
		Action:        "/listings",
		Method:        "get",
		Layout:        "inline",
		ShowLocation:  true,
		ShowPrice:     true,
		ShowBeds:      true,
		ShowBaths:     true,
		ShowType:      true,
		PropertyTypes: PropertyTypes,
		Placeholder:   "City, neighborhood or ZIP",
		SubmitText:    "Search",
	}
}

func priceOptions(prefix string) []Option {
	out := make([]Option, 0, len(priceSteps))
	for _, v := range priceSteps {
		out = append(out, Option{Value: strconv.FormatInt(v, 10), Label: prefix + format.CompactMoney(v)})
	}
	return out
}

func countOptions(suffix string, n int) []Option {
	out := make([]Option, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Option{Value: strconv.Itoa(i), Label: strconv.Itoa(i) + "+ " + suffix})
	}
	return out
}

func nonZero[T int | int64 | float64](v T) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

func SearchForm(p SearchFormProps) templ.Component {
	layout := props.Enum(p.Layout, "inline", "inline", "stacked")
	method := props.Enum(p.Method, "get", "get", "post")
	if p.Action == "" {
		p.Action = "/listings"
	}
	v := p.Values
	id := p.ID
	if id == "" {
		id = html.AutoID("search", p.Action, layout)
	}

	classes := html.NewClasses("hph-search-form", "hph-search-form--"+layout, p.Class)
	attrs := html.NewAttrs().
		ID(id).
		Class(classes).
		Set("action", html.URL(p.Action)).
		Set("method", method).
		Set("role", "search")

	field := func(name string) Field {
		return Field{Name: name, ID: id + "-" + name, Size: SizeMD, HideLabel: layout == "inline"}
	}

	return html.Markup(func(b *html.Builder) {
		b.Open("form", attrs)
		b.Open("div", html.NewAttrs().Set("class", "hph-search-form__fields"))

		if p.ShowLocation {
			in := DefaultInputProps()
			in.Field = field("city")
			in.Label = "Location"
			in.Type = "search"
			in.Icon = "map-pin"
			in.Value = v.City
			in.Placeholder = p.Placeholder
			b.Component(Input(in))
		}
		if p.ShowType && len(p.PropertyTypes) > 0 {
			sel := DefaultSelectProps()
			sel.Field = field("property_type")
			sel.Label = "Property type"
			sel.Placeholder = "Any type"
			sel.Value = v.PropertyType
			for _, t := range p.PropertyTypes {
				sel.Options = append(sel.Options, Option{Value: t, Label: t})
			}
			b.Component(Select(sel))
		}
		if p.ShowStatus {
			sel := DefaultSelectProps()
			sel.Field = field("status")
			sel.Label = "Status"
			sel.Placeholder = "Any status"
			sel.Value = string(v.Status)
			for _, s := range domain.ListingStatuses {
				sel.Options = append(sel.Options, Option{Value: string(s), Label: s.Label()})
			}
			b.Component(Select(sel))
		}
		if p.ShowPrice {
			lo := DefaultSelectProps()
			lo.Field = field("min_price")
			lo.Label = "Min price"
			lo.Placeholder = "No min"
			lo.Value = nonZero(v.MinPrice)
			lo.Options = priceOptions("")
			b.Component(Select(lo))

			hi := DefaultSelectProps()
			hi.Field = field("max_price")
			hi.Label = "Max price"
			hi.Placeholder = "No max"
			hi.Value = nonZero(v.MaxPrice)
			hi.Options = priceOptions("")
			b.Component(Select(hi))
		}
		if p.ShowBeds {
			sel := DefaultSelectProps()
			sel.Field = field("min_beds")
			sel.Label = "Beds"
			sel.Placeholder = "Any beds"
			sel.Value = nonZero(v.MinBeds)
			sel.Options = countOptions("beds", 5)
			b.Component(Select(sel))
		}
		if p.ShowBaths {
			sel := DefaultSelectProps()
			sel.Field = field("min_baths")
			sel.Label = "Baths"
			sel.Placeholder = "Any baths"
			sel.Value = nonZero(v.MinBaths)
			sel.Options = countOptions("baths", 4)
			b.Component(Select(sel))
		}
		if v.Sort != "" {
			b.Void("input", html.NewAttrs().Set("type", "hidden").Set("name", "sort").Set("value", string(v.Sort)))
		}
		b.Close("div")

		btn := DefaultButtonProps()
		btn.Text = p.SubmitText
		btn.Type = "submit"
		btn.Icon = "search"
		btn.Class = "hph-search-form__submit"
		b.Component(Button(btn))
		b.Close("form")
	})
}
