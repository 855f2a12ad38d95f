package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

// Icons is the set of sprite symbols shipped with the theme.
var Icons = []string{
	"alert-triangle", "arrow-down", "arrow-up", "bath", "bed", "calendar", "car",
	"check", "check-circle", "chevron-down", "chevron-left", "chevron-right",
	"circle", "envelope", "grid", "heart", "home", "image", "info", "list",
	"map", "map-pin", "phone", "ruler", "search", "star", "tree", "user", "x",
	"x-circle",
}

var iconSet = func() map[string]bool {
	m := make(map[string]bool, len(Icons))
	for _, name := range Icons {
		m[name] = true
	}
	return m
}()

// IconProps configures an icon from the sprite sheet.
type IconProps struct {
	Name string `prop:"name"`
	Size Size   `prop:"size"`
	// Label makes the icon meaningful to assistive technology; without it
	// the icon is decorative.
	Label    string `prop:"label"`
	Fallback string `prop:"fallback"`
	Class    string `prop:"class"`
}

func DefaultIconProps() IconProps {
	return IconProps{Size: SizeMD, Fallback: "circle"}
}

// IconName resolves name against the sprite, falling back for unknown names.
func IconName(name, fallback string) string {
	if iconSet[name] {
		return name
	}
	if iconSet[fallback] {
		return fallback
	}
	return "circle"
}

func Icon(p IconProps) templ.Component {
	if p.Name == "" {
		return html.Empty()
	}
	name := IconName(p.Name, p.Fallback)
	size := props.Enum(p.Size, SizeMD, SizeXS, SizeSM, SizeMD, SizeLG, SizeXL)

	classes := html.NewClasses("hph-icon", "hph-icon--"+string(size), "hph-icon--"+name, p.Class)
	attrs := html.NewAttrs().Class(classes).Set("focusable", "false")
	if p.Label != "" {
		attrs.Set("role", "img").Aria("label", p.Label)
	} else {
		attrs.Aria("hidden", "true")
	}

	return html.Markup(func(b *html.Builder) {
		b.Open("svg", attrs)
		if p.Label != "" {
			b.Element("title", nil, p.Label)
		}
		b.Open("use", html.NewAttrs().Set("href", "#hph-icon-"+name)).Close("use")
		b.Close("svg")
	})
}

// icon is shorthand for a decorative icon.
func icon(name string, size Size) templ.Component {
	p := DefaultIconProps()
	p.Name = name
	p.Size = size
	return Icon(p)
}
