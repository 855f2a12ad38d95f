package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

type SpinnerProps struct {
	Size    Size   `prop:"size"`
	Label   string `prop:"label"`
	Variant string `prop:"variant"` // "primary", "light"
	Class   string `prop:"class"`
}

func DefaultSpinnerProps() SpinnerProps {
	return SpinnerProps{Size: SizeMD, Label: "Loading…", Variant: "primary"}
}

func Spinner(p SpinnerProps) templ.Component {
	size := props.Enum(p.Size, SizeMD, SizeSM, SizeMD, SizeLG)
	variant := props.Enum(p.Variant, "primary", "primary", "light")
	classes := html.NewClasses("hph-spinner", "hph-spinner--"+string(size), "hph-spinner--"+variant, p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("span", html.NewAttrs().Class(classes).Set("role", "status"))
		b.Element("span", html.NewAttrs().Set("class", "hph-spinner__ring").Aria("hidden", "true"), "")
		if p.Label != "" {
			b.Element("span", html.NewAttrs().Set("class", "hph-sr-only"), p.Label)
		}
		b.Close("span")
	})
}

type ProgressProps struct {
	Value     float64 `prop:"value"`
	Max       float64 `prop:"max"`
	Label     string  `prop:"label"`
	ShowLabel bool    `prop:"show_label"`
	Variant   string  `prop:"variant"` // "primary", "success", "warning", "danger"
	Size      Size    `prop:"size"`
	Striped   bool    `prop:"striped"`
	Class     string  `prop:"class"`
}

func DefaultProgressProps() ProgressProps {
	return ProgressProps{Max: 100, Variant: "primary", Size: SizeMD}
}

// Percent returns Value as a share of Max, clamped to 0..100.
func (p ProgressProps) Percent() float64 {
	if p.Max <= 0 {
		return 0
	}
	pct := p.Value / p.Max * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

func Progress(p ProgressProps) templ.Component {
	if p.Max <= 0 {
		p.Max = 100
	}
	pct := p.Percent()
	pctText := strconv.FormatFloat(pct, 'f', 0, 64) + "%"
	variant := props.Enum(p.Variant, "primary", "primary", "success", "warning", "danger")
	size := props.Enum(p.Size, SizeMD, SizeSM, SizeMD, SizeLG)

	classes := html.NewClasses("hph-progress", "hph-progress--"+variant, "hph-progress--"+string(size))
	classes.AddIf(p.Striped, "hph-progress--striped")
	classes.Add(p.Class)

	label := p.Label
	if label == "" {
		label = pctText
	}

	return html.Markup(func(b *html.Builder) {
		b.Open("div", html.NewAttrs().Class(classes))
		if p.ShowLabel {
			b.Open("div", html.NewAttrs().Set("class", "hph-progress__label")).
				Element("span", nil, label).
				Element("span", html.NewAttrs().Set("class", "hph-progress__value"), pctText).
				Close("div")
		}
		b.Open("div", html.NewAttrs().
			Set("class", "hph-progress__track").
			Set("role", "progressbar").
			Aria("valuemin", "0").
			Aria("valuemax", strconv.FormatFloat(p.Max, 'f', -1, 64)).
			Aria("valuenow", strconv.FormatFloat(p.Value, 'f', -1, 64)).
			Aria("label", label))
		b.Element("div", html.NewAttrs().Set("class", "hph-progress__bar").Set("style", "width:"+pctText), "")
		b.Close("div")
		b.Close("div")
	})
}
