package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

type ModalProps struct {
	ID      string `prop:"id"`
	Title   string `prop:"title"`
	Content string `prop:"content"` // sanitized HTML
	Size    string `prop:"size"`    // "sm", "md", "lg", "xl", "full"
	// CloseButton shows the × button in the header.
	CloseButton bool `prop:"close_button"`
	// Static keeps the modal open when the backdrop is clicked.
	Static   bool `prop:"static"`
	Keyboard bool `prop:"keyboard"`
	Open     bool `prop:"open"`
	// TriggerText renders a button that opens the modal.
	TriggerText    string          `prop:"trigger_text"`
	TriggerVariant ButtonVariant   `prop:"trigger_variant"`
	Body           templ.Component `prop:"-"`
	Footer         templ.Component `prop:"-"`
	Class          string          `prop:"class"`
}

func DefaultModalProps() ModalProps {
	return ModalProps{Size: "md", CloseButton: true, Keyboard: true, TriggerVariant: ButtonPrimary}
}

// ModalTrigger renders a button that opens the modal with the given id.
func ModalTrigger(id, text string, variant ButtonVariant) templ.Component {
	btn := DefaultButtonProps()
	btn.Text = text
	btn.Variant = variant
	btn.Attributes = map[string]string{"data-hph-modal-open": id, "aria-haspopup": "dialog"}
	return Button(btn)
}

func Modal(p ModalProps) templ.Component {
	if p.Title == "" && p.Content == "" && p.Body == nil {
		return html.Empty()
	}
	size := props.Enum(p.Size, "md", "sm", "md", "lg", "xl", "full")
	id := p.ID
	if id == "" {
		id = html.AutoID("modal", p.Title, p.TriggerText)
	}

	classes := html.NewClasses("hph-modal", "hph-modal--"+size)
	classes.AddIf(p.Open, "hph-modal--open")
	classes.Add(p.Class)

	attrs := html.NewAttrs().
		ID(id).
		Class(classes).
		Set("role", "dialog").
		Aria("modal", "true").
		SetIf(p.Title != "", "aria-labelledby", id+"-title")
	if p.Open {
		attrs.Aria("hidden", "false")
	} else {
		attrs.Aria("hidden", "true").Bool("hidden", true)
	}
	hydrate.Mark(attrs, hydrate.Modal, map[string]bool{
		"static":   p.Static,
		"keyboard": p.Keyboard,
		"open":     p.Open,
	})

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Modal)
		if p.TriggerText != "" {
			b.Component(ModalTrigger(id, p.TriggerText, p.TriggerVariant))
		}
		b.Open("div", attrs)
		b.Element("div", html.NewAttrs().Set("class", "hph-modal__backdrop"), "")
		b.Open("div", html.NewAttrs().Set("class", "hph-modal__dialog").Set("role", "document"))
		if p.Title != "" || p.CloseButton {
			b.Open("div", html.NewAttrs().Set("class", "hph-modal__header"))
			if p.Title != "" {
				b.Element("h2", html.NewAttrs().ID(id+"-title").Set("class", "hph-modal__title"), p.Title)
			}
			if p.CloseButton {
				b.Open("button", html.NewAttrs().
					Set("type", "button").
					Set("class", "hph-modal__close").
					Bool("data-hph-modal-close", true).
					Aria("label", "Close")).
					Component(icon("x", SizeMD)).
					Close("button")
			}
			b.Close("div")
		}
		b.Open("div", html.NewAttrs().Set("class", "hph-modal__body"))
		if p.Body != nil {
			b.Component(p.Body)
		} else {
			b.Raw(format.Sanitize(p.Content))
		}
		b.Close("div")
		if p.Footer != nil {
			b.Open("div", html.NewAttrs().Set("class", "hph-modal__footer")).Component(p.Footer).Close("div")
		}
		b.Close("div")
		b.Close("div")
	})
}
