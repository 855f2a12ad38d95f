package components

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

type AgentCardProps struct {
	Layout    string `prop:"layout"` // "vertical", "horizontal"
	ShowEmail bool   `prop:"show_email"`
	ShowPhone bool   `prop:"show_phone"`
	CTAText   string `prop:"cta_text"`
	// ContactModal is the id of a modal the call to action opens. Without
	// it the button mails the agent.
	ContactModal string `prop:"contact_modal"`
	Class        string `prop:"class"`

	Agent *domain.Agent `prop:"-"`
}

func DefaultAgentCardProps() AgentCardProps {
	return AgentCardProps{Layout: "vertical", ShowEmail: true, ShowPhone: true, CTAText: "Contact Agent"}
}

func telHref(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			sb.WriteRune(r)
		}
	}
	return "tel:" + sb.String()
}

func AgentCard(p AgentCardProps) templ.Component {
	a := p.Agent
	if a == nil || a.Name == "" {
		return html.Empty()
	}
	layout := props.Enum(p.Layout, "vertical", "vertical", "horizontal")
	classes := html.NewClasses("hph-agent-card", "hph-agent-card--"+layout, p.Class)

	avatar := DefaultAvatarProps()
	avatar.Name = a.Name
	avatar.Image = a.Photo
	avatar.Size = SizeLG
	if layout == "vertical" {
		avatar.Size = SizeXL
	}

	return html.Markup(func(b *html.Builder) {
		b.Open("div", html.NewAttrs().Class(classes).Data("hph-agent", a.ID))
		b.Component(Avatar(avatar))
		b.Open("div", html.NewAttrs().Set("class", "hph-agent-card__body"))
		b.Element("h3", html.NewAttrs().Set("class", "hph-agent-card__name"), a.Name)
		if a.Title != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-agent-card__title"), a.Title)
		}
		if a.Brokerage != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-agent-card__brokerage"), a.Brokerage)
		}
		if (p.ShowPhone && a.Phone != "") || (p.ShowEmail && a.Email != "") {
			b.Open("ul", html.NewAttrs().Set("class", "hph-agent-card__contact"))
			if p.ShowPhone && a.Phone != "" {
				b.Open("li", nil).
					Open("a", html.NewAttrs().Href(telHref(a.Phone))).
					Component(icon("phone", SizeSM)).
					Text(a.Phone).
					Close("a").
					Close("li")
			}
			if p.ShowEmail && a.Email != "" {
				b.Open("li", nil).
					Open("a", html.NewAttrs().Href("mailto:"+a.Email)).
					Component(icon("envelope", SizeSM)).
					Text(a.Email).
					Close("a").
					Close("li")
			}
			b.Close("ul")
		}
		if p.CTAText != "" {
			switch {
			case p.ContactModal != "":
				b.Component(ModalTrigger(p.ContactModal, p.CTAText, ButtonPrimary))
			case a.Email != "":
				btn := DefaultButtonProps()
				btn.Text = p.CTAText
				btn.Href = "mailto:" + a.Email
				btn.FullWidth = layout == "vertical"
				b.Component(Button(btn))
			}
		}
		b.Close("div")
		b.Close("div")
	})
}
