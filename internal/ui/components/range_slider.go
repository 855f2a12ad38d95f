package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

type RangeSliderProps struct {
	Label    string  `prop:"label"`
	Name     string  `prop:"name"`
	Min      float64 `prop:"min"`
	Max      float64 `prop:"max"`
	Step     float64 `prop:"step"`
	Value    float64 `prop:"value"`
	Dual     bool    `prop:"dual"`
	ValueMin float64 `prop:"value_min"`
	ValueMax float64 `prop:"value_max"`
	NameMin  string  `prop:"name_min"`
	NameMax  string  `prop:"name_max"`
	// Currency formats the displayed values, e.g. "USD".
	Currency  string `prop:"currency"`
	ShowValue bool   `prop:"show_value"`
	ID        string `prop:"id"`
	Class     string `prop:"class"`
}

func DefaultRangeSliderProps() RangeSliderProps {
	return RangeSliderProps{Max: 100, Step: 1, ShowValue: true}
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func RangeSlider(p RangeSliderProps) templ.Component {
	if p.Name == "" && p.NameMin == "" {
		return html.Empty()
	}
	if p.Max <= p.Min {
		p.Max = p.Min + 100
	}
	if p.Step <= 0 {
		p.Step = 1
	}
	id := p.ID
	if id == "" {
		id = html.AutoID("range", p.Name, p.NameMin, p.NameMax)
	}

	type handle struct {
		name  string
		value float64
		label string
	}
	var handles []handle
	if p.Dual {
		lo := clamp(p.ValueMin, p.Min, p.Max)
		hi := p.ValueMax
		if hi == 0 {
			hi = p.Max
		}
		hi = clamp(hi, lo, p.Max)
		nameMin, nameMax := p.NameMin, p.NameMax
		if nameMin == "" {
			nameMin = p.Name + "_min"
		}
		if nameMax == "" {
			nameMax = p.Name + "_max"
		}
		handles = []handle{{nameMin, lo, "Minimum"}, {nameMax, hi, "Maximum"}}
	} else {
		handles = []handle{{p.Name, clamp(p.Value, p.Min, p.Max), p.Label}}
	}

	display := func(v float64) string {
		if p.Currency != "" {
			return format.Money(int64(v))
		}
		return format.Decimal(v, 2)
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	classes := html.NewClasses("hph-range")
	classes.AddIf(p.Dual, "hph-range--dual")
	classes.Add(p.Class)
	attrs := hydrate.Mark(html.NewAttrs().ID(id).Class(classes), hydrate.Range, map[string]any{
		"currency": p.Currency,
		"dual":     p.Dual,
	})

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Range)
		b.Open("div", attrs)
		if p.Label != "" {
			b.Element("span", html.NewAttrs().ID(id+"-label").Set("class", "hph-range__label"), p.Label)
		}
		b.Open("div", html.NewAttrs().Set("class", "hph-range__inputs"))
		for i, h := range handles {
			inputID := id + "-" + strconv.Itoa(i)
			b.Void("input", html.NewAttrs().
				ID(inputID).
				Set("class", "hph-range__input").
				Set("type", "range").
				Set("name", h.name).
				Set("min", num(p.Min)).
				Set("max", num(p.Max)).
				Set("step", num(p.Step)).
				Set("value", num(h.value)).
				Aria("label", h.label))
		}
		b.Close("div")
		if p.ShowValue {
			b.Open("div", html.NewAttrs().Set("class", "hph-range__values"))
			for i, h := range handles {
				if i > 0 {
					b.Element("span", html.NewAttrs().Set("class", "hph-range__sep"), "–")
				}
				b.Element("output", html.NewAttrs().
					Set("class", "hph-range__value").
					Set("for", id+"-"+strconv.Itoa(i)), display(h.value))
			}
			b.Close("div")
		}
		b.Close("div")
	})
}
