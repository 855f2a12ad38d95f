package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

type TooltipProps struct {
	Text     string `prop:"text"`
	Content  string `prop:"content"` // trigger text; an info icon when empty
	Icon     string `prop:"icon"`
	Position string `prop:"position"` // "top", "bottom", "left", "right"
	Trigger  string `prop:"trigger"`  // "hover", "click"
	ID       string `prop:"id"`
	Class    string `prop:"class"`
}

func DefaultTooltipProps() TooltipProps {
	return TooltipProps{Icon: "info", Position: "top", Trigger: "hover"}
}

func Tooltip(p TooltipProps) templ.Component {
	if p.Text == "" {
		return html.Empty()
	}
	position := props.Enum(p.Position, "top", "top", "bottom", "left", "right")
	trigger := props.Enum(p.Trigger, "hover", "hover", "click")
	id := p.ID
	if id == "" {
		id = html.AutoID("tooltip", p.Text, p.Content)
	}

	classes := html.NewClasses("hph-tooltip", "hph-tooltip--"+position, p.Class)
	attrs := hydrate.Mark(html.NewAttrs().Class(classes), hydrate.Tooltip, map[string]string{
		"trigger":  trigger,
		"position": position,
	})

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Tooltip)
		b.Open("span", attrs)
		b.Open("span", html.NewAttrs().
			Set("class", "hph-tooltip__trigger").
			Set("tabindex", "0").
			Aria("describedby", id))
		if p.Content != "" {
			b.Text(p.Content)
		} else {
			iconProps := DefaultIconProps()
			iconProps.Name = p.Icon
			iconProps.Size = SizeSM
			iconProps.Fallback = "info"
			iconProps.Label = "More information"
			b.Component(Icon(iconProps))
		}
		b.Close("span")
		b.Open("span", html.NewAttrs().
			ID(id).
			Set("class", "hph-tooltip__content").
			Set("role", "tooltip").
			Bool("hidden", true)).
			Text(p.Text).
			Close("span")
		b.Close("span")
	})
}
