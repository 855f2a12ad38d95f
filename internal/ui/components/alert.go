package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

type AlertVariant string

const (
	AlertInfo    AlertVariant = "info"
	AlertSuccess AlertVariant = "success"
	AlertWarning AlertVariant = "warning"
	AlertDanger  AlertVariant = "danger"
)

var alertIcons = map[AlertVariant]string{
	AlertInfo:    "info",
	AlertSuccess: "check-circle",
	AlertWarning: "alert-triangle",
	AlertDanger:  "x-circle",
}

type AlertProps struct {
	Title       string            `prop:"title"`
	Message     string            `prop:"message"`
	Variant     AlertVariant      `prop:"variant"`
	Dismissible bool              `prop:"dismissible"`
	ShowIcon    bool              `prop:"show_icon"`
	ID          string            `prop:"id"`
	Class       string            `prop:"class"`
	Attributes  map[string]string `prop:"attributes"`
}

func DefaultAlertProps() AlertProps {
	return AlertProps{Variant: AlertInfo, ShowIcon: true}
}

func Alert(p AlertProps) templ.Component {
	if p.Title == "" && p.Message == "" {
		return html.Empty()
	}
	if p.Variant == "error" {
		p.Variant = AlertDanger
	}
	variant := props.Enum(p.Variant, AlertInfo, AlertInfo, AlertSuccess, AlertWarning, AlertDanger)

	classes := html.NewClasses("hph-alert", "hph-alert--"+string(variant))
	classes.AddIf(p.Dismissible, "hph-alert--dismissible")
	classes.Add(p.Class)

	role := "status"
	if variant == AlertWarning || variant == AlertDanger {
		role = "alert"
	}
	attrs := root(p.ID, classes, nil).Set("role", role)
	if p.Dismissible {
		hydrate.Mark(attrs, hydrate.Alert, nil)
	}
	attrs.Merge(p.Attributes)

	return html.Markup(func(b *html.Builder) {
		if p.Dismissible {
			hydrate.Require(b.Context(), hydrate.Alert)
		}
		b.Open("div", attrs)
		if p.ShowIcon {
			b.Open("span", html.NewAttrs().Set("class", "hph-alert__icon")).
				Component(icon(alertIcons[variant], SizeMD)).
				Close("span")
		}
		b.Open("div", html.NewAttrs().Set("class", "hph-alert__content"))
		if p.Title != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-alert__title"), p.Title)
		}
		if p.Message != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-alert__message"), p.Message)
		}
		b.Close("div")
		if p.Dismissible {
			b.Open("button", html.NewAttrs().
				Set("type", "button").
				Set("class", "hph-alert__close").
				Bool("data-hph-dismiss", true).
				Aria("label", "Dismiss")).
				Component(icon("x", SizeSM)).
				Close("button")
		}
		b.Close("div")
	})
}
