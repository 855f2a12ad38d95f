package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

type ContactFormProps struct {
	Title          string `prop:"title"`
	Description    string `prop:"description"`
	Action         string `prop:"action"`
	ListingID      string `prop:"listing_id"`
	AgentID        string `prop:"agent_id"`
	Message        string `prop:"message"`
	ShowPhone      bool   `prop:"show_phone"`
	ShowTour       bool   `prop:"show_tour"`
	SubmitText     string `prop:"submit_text"`
	SuccessMessage string `prop:"success_message"`
	ErrorMessage   string `prop:"error_message"`
	Ajax           bool   `prop:"ajax"`
	ID             string `prop:"id"`
	Class          string `prop:"class"`
}

func DefaultContactFormProps() ContactFormProps {
	return ContactFormProps{
		Title:          "Request Information",
		Action:         "/api/inquiries",
		ShowPhone:      true,
		ShowTour:       true,
		SubmitText:     "Send Message",
		SuccessMessage: "Thanks! An agent will be in touch shortly.",
		ErrorMessage:   "We could not send your message. Please try again.",
		Ajax:           true,
	}
}

func ContactForm(p ContactFormProps) templ.Component {
	if p.Action == "" {
		return html.Empty()
	}
	id := p.ID
	if id == "" {
		id = html.AutoID("contact", p.ListingID, p.AgentID, p.Action)
	}
	classes := html.NewClasses("hph-form", "hph-contact-form", p.Class)
	attrs := html.NewAttrs().
		ID(id).
		Class(classes).
		Set("action", html.URL(p.Action)).
		Set("method", "post")
	if p.Ajax {
		hydrate.Mark(attrs, hydrate.Form, map[string]any{
			"ajax":           true,
			"successMessage": p.SuccessMessage,
			"errorMessage":   p.ErrorMessage,
		})
	}

	field := func(name string) Field {
		return Field{Name: name, ID: id + "-" + name, Size: SizeMD}
	}

	return html.Markup(func(b *html.Builder) {
		if p.Ajax {
			hydrate.Require(b.Context(), hydrate.Form)
		}
		b.Open("form", attrs)
		if p.Title != "" {
			b.Element("h3", html.NewAttrs().Set("class", "hph-form__title"), p.Title)
		}
		if p.Description != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-form__description"), p.Description)
		}
		if p.ListingID != "" {
			b.Void("input", html.NewAttrs().Set("type", "hidden").Set("name", "listing_id").Set("value", p.ListingID))
		}
		if p.AgentID != "" {
			b.Void("input", html.NewAttrs().Set("type", "hidden").Set("name", "agent_id").Set("value", p.AgentID))
		}

		name := DefaultInputProps()
		name.Field = field("name")
		name.Label = "Name"
		name.Required = true
		name.Autocomplete = "name"
		b.Component(Input(name))

		email := DefaultInputProps()
		email.Field = field("email")
		email.Label = "Email"
		email.Type = "email"
		email.Required = true
		email.Autocomplete = "email"
		b.Component(Input(email))

		if p.ShowPhone {
			phone := DefaultInputProps()
			phone.Field = field("phone")
			phone.Label = "Phone"
			phone.Type = "tel"
			phone.Autocomplete = "tel"
			b.Component(Input(phone))
		}

		msg := DefaultTextareaProps()
		msg.Field = field("message")
		msg.Label = "Message"
		msg.Required = true
		msg.Value = p.Message
		msg.Rows = 5
		b.Component(Textarea(msg))

		if p.ShowTour {
			tour := DefaultCheckboxProps()
			tour.Field = field("tour")
			tour.Label = "I'd like to schedule a tour"
			tour.Value = "true"
			b.Component(Checkbox(tour))
		}

		b.Element("p", html.NewAttrs().
			Set("class", "hph-form__status").
			Bool("data-hph-form-status", true).
			Set("role", "status").
			Aria("live", "polite").
			Bool("hidden", true), "")

		btn := DefaultButtonProps()
		btn.Text = p.SubmitText
		btn.Type = "submit"
		btn.FullWidth = true
		b.Component(Button(btn))
		b.Close("form")
	})
}
