package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonOutline   ButtonVariant = "outline"
	ButtonGhost     ButtonVariant = "ghost"
	ButtonDanger    ButtonVariant = "danger"
	ButtonSuccess   ButtonVariant = "success"
	ButtonLink      ButtonVariant = "link"
	ButtonWhite     ButtonVariant = "white"
)

var buttonVariants = []ButtonVariant{
	ButtonPrimary, ButtonSecondary, ButtonOutline, ButtonGhost,
	ButtonDanger, ButtonSuccess, ButtonLink, ButtonWhite,
}

type ButtonProps struct {
	Text         string            `prop:"text"`
	Icon         string            `prop:"icon"`
	IconPosition string            `prop:"icon_position"` // "left", "right"
	Variant      ButtonVariant     `prop:"variant"`
	Size         Size              `prop:"size"` // "sm", "md", "lg"
	Href         string            `prop:"href"`
	Target       string            `prop:"target"`
	Type         string            `prop:"type"` // "button", "submit", "reset"
	Disabled     bool              `prop:"disabled"`
	Loading      bool              `prop:"loading"`
	FullWidth    bool              `prop:"full_width"`
	Label        string            `prop:"label"` // aria-label for icon-only buttons
	ID           string            `prop:"id"`
	Class        string            `prop:"class"`
	Attributes   map[string]string `prop:"attributes"`
}

func DefaultButtonProps() ButtonProps {
	return ButtonProps{
		IconPosition: "left",
		Variant:      ButtonPrimary,
		Size:         SizeMD,
		Type:         "button",
	}
}

func Button(p ButtonProps) templ.Component {
	if p.Text == "" && p.Icon == "" {
		return html.Empty()
	}

	variant := props.Enum(p.Variant, ButtonPrimary, buttonVariants...)
	size := props.Enum(p.Size, SizeMD, SizeSM, SizeMD, SizeLG)
	iconOnly := p.Text == "" && p.Icon != ""

	classes := html.NewClasses("hph-btn", "hph-btn--"+string(variant), "hph-btn--"+string(size))
	classes.AddIf(p.FullWidth, "hph-btn--block")
	classes.AddIf(p.Disabled, "hph-btn--disabled")
	classes.AddIf(p.Loading, "hph-btn--loading")
	classes.AddIf(iconOnly, "hph-btn--icon-only")
	classes.Add(p.Class)

	attrs := html.NewAttrs().SetIf(p.ID != "", "id", p.ID).Class(classes)

	tag := "button"
	if p.Href != "" && !p.Disabled {
		tag = "a"
		attrs.Href(p.Href).SetIf(p.Target != "", "target", p.Target)
		if p.Target == "_blank" {
			attrs.Set("rel", "noopener noreferrer")
		}
	} else {
		attrs.Set("type", props.Enum(p.Type, "button", "button", "submit", "reset"))
		attrs.Bool("disabled", p.Disabled || p.Loading)
	}
	if p.Loading {
		attrs.Aria("busy", "true")
	}
	label := p.Label
	if label == "" && iconOnly {
		label = p.Icon
	}
	attrs.SetIf(label != "", "aria-label", label)
	attrs.Merge(p.Attributes)

	iconRight := p.IconPosition == "right"

	return html.Markup(func(b *html.Builder) {
		b.Open(tag, attrs)
		if p.Loading {
			b.Element("span", html.NewAttrs().Set("class", "hph-btn__spinner").Aria("hidden", "true"), "")
		}
		if p.Icon != "" && !iconRight {
			b.Component(icon(p.Icon, SizeSM))
		}
		if p.Text != "" {
			b.Element("span", html.NewAttrs().Set("class", "hph-btn__text"), p.Text)
		}
		if p.Icon != "" && iconRight {
			b.Component(icon(p.Icon, SizeSM))
		}
		b.Close(tag)
	})
}
