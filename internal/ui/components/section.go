package components

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

type SectionHeaderProps struct {
	Title      string `prop:"title"`
	Subtitle   string `prop:"subtitle"`
	Eyebrow    string `prop:"eyebrow"`
	Align      Align  `prop:"align"`
	Level      int    `prop:"level"`
	ActionText string `prop:"action_text"`
	ActionURL  string `prop:"action_url"`
	Class      string `prop:"class"`
}

func DefaultSectionHeaderProps() SectionHeaderProps {
	return SectionHeaderProps{Align: AlignLeft, Level: 2}
}

func SectionHeader(p SectionHeaderProps) templ.Component {
	if p.Title == "" {
		return html.Empty()
	}
	align := alignOr(p.Align, AlignLeft)
	tag := headingLevel(p.Level, 2)
	classes := html.NewClasses("hph-section-header", "hph-section-header--"+string(align), p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("header", html.NewAttrs().Class(classes))
		b.Open("div", html.NewAttrs().Set("class", "hph-section-header__text"))
		if p.Eyebrow != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-section-header__eyebrow"), p.Eyebrow)
		}
		b.Element(tag, html.NewAttrs().Set("class", "hph-section-header__title"), p.Title)
		if p.Subtitle != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-section-header__subtitle"), p.Subtitle)
		}
		b.Close("div")
		if p.ActionText != "" && p.ActionURL != "" {
			btn := DefaultButtonProps()
			btn.Text = p.ActionText
			btn.Href = p.ActionURL
			btn.Variant = ButtonLink
			btn.Icon = "chevron-right"
			btn.IconPosition = "right"
			btn.Class = "hph-section-header__action"
			b.Component(Button(btn))
		}
		b.Close("header")
	})
}

type EmptyStateProps struct {
	Icon       string `prop:"icon"`
	Title      string `prop:"title"`
	Message    string `prop:"message"`
	ActionText string `prop:"action_text"`
	ActionURL  string `prop:"action_url"`
	Compact    bool   `prop:"compact"`
	Class      string `prop:"class"`
}

func DefaultEmptyStateProps() EmptyStateProps {
	return EmptyStateProps{Icon: "home", Title: "No results found"}
}

func EmptyState(p EmptyStateProps) templ.Component {
	classes := html.NewClasses("hph-empty-state")
	classes.AddIf(p.Compact, "hph-empty-state--compact")
	classes.Add(p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("div", html.NewAttrs().Class(classes).Set("role", "status"))
		if p.Icon != "" {
			b.Open("div", html.NewAttrs().Set("class", "hph-empty-state__icon")).
				Component(icon(p.Icon, SizeXL)).
				Close("div")
		}
		if p.Title != "" {
			b.Element("h3", html.NewAttrs().Set("class", "hph-empty-state__title"), p.Title)
		}
		if p.Message != "" {
			b.Element("p", html.NewAttrs().Set("class", "hph-empty-state__message"), p.Message)
		}
		if p.ActionText != "" && p.ActionURL != "" {
			btn := DefaultButtonProps()
			btn.Text = p.ActionText
			btn.Href = p.ActionURL
			btn.Variant = ButtonOutline
			b.Component(Button(btn))
		}
		b.Close("div")
	})
}

type RichTextProps struct {
	Content  string `prop:"content"`
	Format   string `prop:"format"` // "markdown", "html", "text"
	MaxWords int    `prop:"max_words"`
	Size     Size   `prop:"size"`
	Class    string `prop:"class"`
}

func DefaultRichTextProps() RichTextProps {
	return RichTextProps{Format: "markdown", Size: SizeMD}
}

// RichText renders editorial content. Markup is always sanitized; with
// MaxWords set the content is reduced to a plain text excerpt.
func RichText(p RichTextProps) templ.Component {
	var body string
	switch {
	case p.MaxWords > 0:
		source := p.Content
		if p.Format == "markdown" {
			source = format.Markdown(source)
		}
		if excerpt := format.Excerpt(source, p.MaxWords); excerpt != "" {
			body = "<p>" + html.Escape(excerpt) + "</p>"
		}
	case p.Format == "html":
		body = format.Sanitize(p.Content)
	case p.Format == "text":
		if p.Content != "" {
			body = "<p>" + html.Escape(p.Content) + "</p>"
		}
	default:
		body = format.Markdown(p.Content)
	}
	if body == "" {
		return html.Empty()
	}

	size := SizeMD
	if p.Size == SizeSM || p.Size == SizeLG {
		size = p.Size
	}
	classes := html.NewClasses("hph-rich-text", "hph-rich-text--"+string(size), p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("div", html.NewAttrs().Class(classes)).Raw(body).Close("div")
	})
}
