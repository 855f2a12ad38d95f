package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

type BadgeVariant string

const (
	BadgeDefault BadgeVariant = "default"
	BadgePrimary BadgeVariant = "primary"
	BadgeSuccess BadgeVariant = "success"
	BadgeWarning BadgeVariant = "warning"
	BadgeDanger  BadgeVariant = "danger"
	BadgeInfo    BadgeVariant = "info"
)

var badgeVariants = []BadgeVariant{BadgeDefault, BadgePrimary, BadgeSuccess, BadgeWarning, BadgeDanger, BadgeInfo}

type BadgeProps struct {
	Text    string       `prop:"text"`
	Variant BadgeVariant `prop:"variant"`
	Size    Size         `prop:"size"`
	Pill    bool         `prop:"pill"`
	Dot     bool         `prop:"dot"`
	Icon    string       `prop:"icon"`
	Class   string       `prop:"class"`
}

func DefaultBadgeProps() BadgeProps {
	return BadgeProps{Variant: BadgeDefault, Size: SizeMD, Pill: true}
}

func Badge(p BadgeProps) templ.Component {
	if p.Text == "" {
		return html.Empty()
	}
	variant := props.Enum(p.Variant, BadgeDefault, badgeVariants...)
	size := props.Enum(p.Size, SizeMD, SizeSM, SizeMD, SizeLG)

	classes := html.NewClasses("hph-badge", "hph-badge--"+string(variant), "hph-badge--"+string(size))
	classes.AddIf(p.Pill, "hph-badge--pill")
	classes.AddIf(p.Dot, "hph-badge--dot")
	classes.Add(p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("span", html.NewAttrs().Class(classes))
		if p.Dot {
			b.Element("span", html.NewAttrs().Set("class", "hph-badge__dot").Aria("hidden", "true"), "")
		}
		if p.Icon != "" {
			b.Component(icon(p.Icon, SizeXS))
		}
		b.Text(p.Text)
		b.Close("span")
	})
}

// StatusVariant maps a listing status to its badge color.
func StatusVariant(s domain.ListingStatus) BadgeVariant {
	switch s {
	case domain.StatusActive:
		return BadgeSuccess
	case domain.StatusPending:
		return BadgeWarning
	case domain.StatusSold:
		return BadgeDanger
	case domain.StatusForRent:
		return BadgeInfo
	case domain.StatusComingSoon:
		return BadgePrimary
	default:
		return BadgeDefault
	}
}

// StatusBadge renders the badge for a listing status. Unknown statuses
// render nothing.
func StatusBadge(s domain.ListingStatus) templ.Component {
	if !s.IsValid() {
		return html.Empty()
	}
	p := DefaultBadgeProps()
	p.Text = s.Label()
	p.Variant = StatusVariant(s)
	p.Class = "hph-badge--status-" + string(s)
	return Badge(p)
}
