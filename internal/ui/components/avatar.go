package components

import (
	"github.com/a-h/templ"
	"github.com/cespare/xxhash/v2"

	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

// AvatarPalette holds the background colors used behind initials.
var AvatarPalette = []string{
	"#2563eb", "#7c3aed", "#db2777", "#dc2626",
	"#ea580c", "#16a34a", "#0d9488", "#4f46e5",
}

type AvatarProps struct {
	Name        string            `prop:"name"`
	Image       string            `prop:"image"`
	Size        Size              `prop:"size"`
	Shape       string            `prop:"shape"` // "circle", "square"
	UseInitials bool              `prop:"use_initials"`
	Status      string            `prop:"status"` // "", "online", "away", "offline"
	Href        string            `prop:"href"`
	Class       string            `prop:"class"`
	Attributes  map[string]string `prop:"attributes"`
}

func DefaultAvatarProps() AvatarProps {
	return AvatarProps{Size: SizeMD, Shape: "circle", UseInitials: true}
}

// AvatarColor picks a palette color from the name so the same person
// always gets the same color.
func AvatarColor(name string) string {
	if name == "" {
		return AvatarPalette[0]
	}
	return AvatarPalette[xxhash.Sum64String(name)%uint64(len(AvatarPalette))]
}

func Avatar(p AvatarProps) templ.Component {
	if p.Name == "" && p.Image == "" {
		return html.Empty()
	}
	size := props.Enum(p.Size, SizeMD, SizeXS, SizeSM, SizeMD, SizeLG, SizeXL)
	shape := props.Enum(p.Shape, "circle", "circle", "square")
	status := props.Enum(p.Status, "", "online", "away", "offline")
	initials := format.Initials(p.Name)

	mode := "icon"
	switch {
	case p.Image != "":
		mode = "image"
	case p.UseInitials && initials != "":
		mode = "initials"
	}

	classes := html.NewClasses("hph-avatar", "hph-avatar--"+string(size), "hph-avatar--"+shape, "hph-avatar--"+mode, p.Class)
	attrs := root("", classes, p.Attributes)
	if mode == "initials" {
		attrs.Set("style", "background-color:"+AvatarColor(p.Name))
	}
	if mode != "image" && p.Name != "" {
		attrs.Set("role", "img").Aria("label", p.Name)
	}

	tag := "span"
	if p.Href != "" {
		tag = "a"
		attrs.Href(p.Href)
	}

	return html.Markup(func(b *html.Builder) {
		b.Open(tag, attrs)
		switch mode {
		case "image":
			alt := p.Name
			b.Void("img", html.NewAttrs().
				Set("class", "hph-avatar__image").
				Src(p.Image).
				Set("alt", alt).
				Set("loading", "lazy"))
		case "initials":
			b.Element("span", html.NewAttrs().Set("class", "hph-avatar__initials").Aria("hidden", "true"), initials)
		default:
			b.Component(icon("user", size))
		}
		if status != "" {
			b.Element("span", html.NewAttrs().
				Set("class", "hph-avatar__status hph-avatar__status--"+status).
				Set("title", status), "")
		}
		b.Close(tag)
	})
}
