package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

// Field holds what every form control shares: its label, help and error
// text and the state flags.
type Field struct {
	Name       string            `prop:"name"`
	Label      string            `prop:"label"`
	ID         string            `prop:"id"`
	Help       string            `prop:"help"`
	Error      string            `prop:"error"`
	Required   bool              `prop:"required"`
	Disabled   bool              `prop:"disabled"`
	Size       Size              `prop:"size"`
	HideLabel  bool              `prop:"hide_label"`
	Class      string            `prop:"class"`
	Attributes map[string]string `prop:"attributes"`
}

func (f Field) controlID(kind string) string {
	if f.ID != "" {
		return f.ID
	}
	if f.Name != "" {
		return "hph-" + kind + "-" + f.Name
	}
	return html.AutoID("hph-"+kind, f.Label)
}

func (f Field) size() Size {
	return props.Enum(f.Size, SizeMD, SizeSM, SizeMD, SizeLG)
}

// control applies the shared state attributes to a form control.
func (f Field) control(id string, classes *html.Classes) *html.Attrs {
	attrs := html.NewAttrs().
		ID(id).
		Class(classes).
		SetIf(f.Name != "", "name", f.Name).
		Bool("required", f.Required).
		Bool("disabled", f.Disabled)
	if f.Error != "" {
		attrs.Aria("invalid", "true")
	}
	if f.Help != "" || f.Error != "" {
		attrs.Aria("describedby", id+"-desc")
	}
	return attrs
}

// wrap renders the label, the control and the help or error text.
func (f Field) wrap(kind, id string, control func(b *html.Builder)) templ.Component {
	classes := html.NewClasses("hph-field", "hph-field--"+kind, "hph-field--"+string(f.size()))
	classes.AddIf(f.Error != "", "hph-field--error")
	classes.AddIf(f.Disabled, "hph-field--disabled")

	return html.Markup(func(b *html.Builder) {
		b.Open("div", html.NewAttrs().Class(classes))
		if f.Label != "" {
			labelClasses := html.NewClasses("hph-field__label")
			labelClasses.AddIf(f.HideLabel, "hph-sr-only")
			b.Open("label", html.NewAttrs().Class(labelClasses).Set("for", id)).Text(f.Label)
			if f.Required {
				b.Element("span", html.NewAttrs().Set("class", "hph-field__required").Aria("hidden", "true"), "*")
			}
			b.Close("label")
		}
		control(b)
		switch {
		case f.Error != "":
			b.Element("p", html.NewAttrs().ID(id+"-desc").Set("class", "hph-field__error"), f.Error)
		case f.Help != "":
			b.Element("p", html.NewAttrs().ID(id+"-desc").Set("class", "hph-field__help"), f.Help)
		}
		b.Close("div")
	})
}

var inputTypes = []string{"text", "email", "tel", "number", "password", "search", "url", "date", "hidden"}

type InputProps struct {
	Field        `prop:",squash"`
	Type         string `prop:"type"`
	Value        string `prop:"value"`
	Placeholder  string `prop:"placeholder"`
	Icon         string `prop:"icon"`
	Autocomplete string `prop:"autocomplete"`
	Min          string `prop:"min"`
	Max          string `prop:"max"`
	Step         string `prop:"step"`
	Pattern      string `prop:"pattern"`
}

func DefaultInputProps() InputProps {
	return InputProps{Field: Field{Size: SizeMD}, Type: "text"}
}

func Input(p InputProps) templ.Component {
	if p.Name == "" && p.ID == "" {
		return html.Empty()
	}
	typ := props.Enum(p.Type, "text", inputTypes...)
	id := p.controlID("input")

	classes := html.NewClasses("hph-input", "hph-input--"+string(p.size()))
	classes.AddIf(p.Icon != "", "hph-input--with-icon")
	classes.Add(p.Class)

	attrs := p.control(id, classes).
		Set("type", typ).
		Set("value", p.Value).
		Set("placeholder", p.Placeholder).
		Set("autocomplete", p.Autocomplete).
		Set("min", p.Min).
		Set("max", p.Max).
		Set("step", p.Step).
		Set("pattern", p.Pattern).
		Merge(p.Attributes)

	if typ == "hidden" {
		return html.Markup(func(b *html.Builder) {
			b.Void("input", attrs)
		})
	}
	return p.wrap("input", id, func(b *html.Builder) {
		if p.Icon != "" {
			b.Open("div", html.NewAttrs().Set("class", "hph-input-group")).
				Open("span", html.NewAttrs().Set("class", "hph-input-group__icon")).
				Component(icon(p.Icon, SizeSM)).
				Close("span")
		}
		b.Void("input", attrs)
		if p.Icon != "" {
			b.Close("div")
		}
	})
}

type TextareaProps struct {
	Field       `prop:",squash"`
	Value       string `prop:"value"`
	Placeholder string `prop:"placeholder"`
	Rows        int    `prop:"rows"`
	MaxLength   int    `prop:"max_length"`
}

func DefaultTextareaProps() TextareaProps {
	return TextareaProps{Field: Field{Size: SizeMD}, Rows: 4}
}

func Textarea(p TextareaProps) templ.Component {
	if p.Name == "" && p.ID == "" {
		return html.Empty()
	}
	if p.Rows < 1 {
		p.Rows = 4
	}
	id := p.controlID("textarea")
	classes := html.NewClasses("hph-textarea", "hph-textarea--"+string(p.size()), p.Class)
	attrs := p.control(id, classes).
		Set("rows", strconv.Itoa(p.Rows)).
		Set("placeholder", p.Placeholder).
		SetIf(p.MaxLength > 0, "maxlength", strconv.Itoa(p.MaxLength)).
		Merge(p.Attributes)

	return p.wrap("textarea", id, func(b *html.Builder) {
		b.Element("textarea", attrs, p.Value)
	})
}

type SelectProps struct {
	Field       `prop:",squash"`
	Options     []Option `prop:"options"`
	Value       string   `prop:"value"`
	Values      []string `prop:"values"`
	Placeholder string   `prop:"placeholder"`
	Multiple    bool     `prop:"multiple"`
}

func DefaultSelectProps() SelectProps {
	return SelectProps{Field: Field{Size: SizeMD}}
}

func Select(p SelectProps) templ.Component {
	if (p.Name == "" && p.ID == "") || (len(p.Options) == 0 && p.Placeholder == "") {
		return html.Empty()
	}
	id := p.controlID("select")
	classes := html.NewClasses("hph-select", "hph-select--"+string(p.size()), p.Class)
	attrs := p.control(id, classes).Bool("multiple", p.Multiple).Merge(p.Attributes)

	selected := map[string]bool{p.Value: p.Value != ""}
	for _, v := range p.Values {
		selected[v] = true
	}

	return p.wrap("select", id, func(b *html.Builder) {
		b.Open("select", attrs)
		if p.Placeholder != "" && !p.Multiple {
			b.Element("option", optionValue(""), p.Placeholder)
		}
		for _, opt := range p.Options {
			b.Element("option", optionValue(opt.Value).
				Bool("selected", selected[opt.Value]).
				Bool("disabled", opt.Disabled), opt.Label)
		}
		b.Close("select")
	})
}

// optionValue keeps an empty value attribute, which Set would drop.
func optionValue(v string) *html.Attrs {
	if v == "" {
		return html.NewAttrs().Bool("value", true)
	}
	return html.NewAttrs().Set("value", v)
}

type CheckboxProps struct {
	Field   `prop:",squash"`
	Value   string `prop:"value"`
	Checked bool   `prop:"checked"`
	Style   string `prop:"style"` // "checkbox", "switch"
}

func DefaultCheckboxProps() CheckboxProps {
	return CheckboxProps{Field: Field{Size: SizeMD}, Value: "1", Style: "checkbox"}
}

func Checkbox(p CheckboxProps) templ.Component {
	if p.Name == "" && p.ID == "" {
		return html.Empty()
	}
	style := props.Enum(p.Style, "checkbox", "checkbox", "switch")
	id := p.controlID(style)

	attrs := p.control(id, html.NewClasses("hph-check__input")).
		Set("type", "checkbox").
		Set("value", p.Value).
		Bool("checked", p.Checked)
	if style == "switch" {
		attrs.Set("role", "switch")
	}
	attrs.Merge(p.Attributes)

	classes := html.NewClasses("hph-check", "hph-check--"+style, "hph-check--"+string(p.size()))
	classes.AddIf(p.Disabled, "hph-check--disabled")
	classes.AddIf(p.Error != "", "hph-check--error")
	classes.Add(p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("div", html.NewAttrs().Class(classes))
		b.Open("label", html.NewAttrs().Set("class", "hph-check__label").Set("for", id))
		b.Void("input", attrs)
		if style == "switch" {
			b.Element("span", html.NewAttrs().Set("class", "hph-check__track").Aria("hidden", "true"), "")
		}
		b.Element("span", html.NewAttrs().Set("class", "hph-check__text"), p.Label)
		b.Close("label")
		switch {
		case p.Error != "":
			b.Element("p", html.NewAttrs().ID(id+"-desc").Set("class", "hph-field__error"), p.Error)
		case p.Help != "":
			b.Element("p", html.NewAttrs().ID(id+"-desc").Set("class", "hph-field__help"), p.Help)
		}
		b.Close("div")
	})
}

type RadioGroupProps struct {
	Field   `prop:",squash"`
	Options []Option `prop:"options"`
	Value   string   `prop:"value"`
	Inline  bool     `prop:"inline"`
}

func DefaultRadioGroupProps() RadioGroupProps {
	return RadioGroupProps{Field: Field{Size: SizeMD}}
}

func RadioGroup(p RadioGroupProps) templ.Component {
	if p.Name == "" || len(p.Options) == 0 {
		return html.Empty()
	}
	id := p.controlID("radio")
	classes := html.NewClasses("hph-radio-group", "hph-radio-group--"+string(p.size()))
	classes.AddIf(p.Inline, "hph-radio-group--inline")
	classes.AddIf(p.Error != "", "hph-radio-group--error")
	classes.Add(p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("fieldset", root(id, classes, p.Attributes).Bool("disabled", p.Disabled))
		if p.Label != "" {
			b.Element("legend", html.NewAttrs().Set("class", "hph-field__label"), p.Label)
		}
		for i, opt := range p.Options {
			optID := id + "-" + strconv.Itoa(i)
			b.Open("label", html.NewAttrs().Set("class", "hph-check hph-check--radio").Set("for", optID))
			b.Void("input", html.NewAttrs().
				ID(optID).
				Set("class", "hph-check__input").
				Set("type", "radio").
				Set("name", p.Name).
				Set("value", opt.Value).
				Bool("checked", opt.Value == p.Value).
				Bool("required", p.Required && i == 0).
				Bool("disabled", opt.Disabled))
			b.Element("span", html.NewAttrs().Set("class", "hph-check__text"), opt.Label)
			b.Close("label")
		}
		switch {
		case p.Error != "":
			b.Element("p", html.NewAttrs().Set("class", "hph-field__error"), p.Error)
		case p.Help != "":
			b.Element("p", html.NewAttrs().Set("class", "hph-field__help"), p.Help)
		}
		b.Close("fieldset")
	})
}
