package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

// Tab is one tab and its panel. Content is sanitized HTML; Go callers may
// pass Body instead.
type Tab struct {
	ID       string          `prop:"id"`
	Label    string          `prop:"label"`
	Icon     string          `prop:"icon"`
	Badge    string          `prop:"badge"`
	Content  string          `prop:"content"`
	Disabled bool            `prop:"disabled"`
	Body     templ.Component `prop:"-"`
}

type TabsProps struct {
	Tabs      []Tab  `prop:"tabs"`
	Active    string `prop:"active"`  // tab id or zero-based index
	Variant   string `prop:"variant"` // "underline", "pills", "boxed"
	FullWidth bool   `prop:"full_width"`
	ID        string `prop:"id"`
	Class     string `prop:"class"`
}

func DefaultTabsProps() TabsProps {
	return TabsProps{Variant: "underline"}
}

func (p TabsProps) activeIndex() int {
	for i, t := range p.Tabs {
		if p.Active != "" && t.ID == p.Active && !t.Disabled {
			return i
		}
	}
	if n, err := strconv.Atoi(p.Active); err == nil && n >= 0 && n < len(p.Tabs) && !p.Tabs[n].Disabled {
		return n
	}
	for i, t := range p.Tabs {
		if !t.Disabled {
			return i
		}
	}
	return 0
}

func Tabs(p TabsProps) templ.Component {
	if len(p.Tabs) == 0 {
		return html.Empty()
	}
	variant := props.Enum(p.Variant, "underline", "underline", "pills", "boxed")
	id := p.ID
	if id == "" {
		labels := make([]any, 0, len(p.Tabs))
		for _, t := range p.Tabs {
			labels = append(labels, t.Label)
		}
		id = html.AutoID("tabs", labels...)
	}
	active := p.activeIndex()

	classes := html.NewClasses("hph-tabs", "hph-tabs--"+variant)
	classes.AddIf(p.FullWidth, "hph-tabs--full")
	classes.Add(p.Class)
	attrs := hydrate.Mark(html.NewAttrs().ID(id).Class(classes), hydrate.Tabs, nil)

	tabID := func(i int) string {
		if p.Tabs[i].ID != "" {
			return id + "-" + p.Tabs[i].ID
		}
		return id + "-" + strconv.Itoa(i)
	}

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Tabs)
		b.Open("div", attrs)
		b.Open("div", html.NewAttrs().Set("class", "hph-tabs__list").Set("role", "tablist"))
		for i, t := range p.Tabs {
			selected := i == active
			tc := html.NewClasses("hph-tabs__tab")
			tc.AddIf(selected, "hph-tabs__tab--active")
			tabindex := "-1"
			if selected {
				tabindex = "0"
			}
			b.Open("button", html.NewAttrs().
				ID(tabID(i)+"-tab").
				Class(tc).
				Set("type", "button").
				Set("role", "tab").
				Aria("selected", strconv.FormatBool(selected)).
				Aria("controls", tabID(i)+"-panel").
				Set("tabindex", tabindex).
				Bool("disabled", t.Disabled))
			if t.Icon != "" {
				b.Component(icon(t.Icon, SizeSM))
			}
			b.Text(t.Label)
			if t.Badge != "" {
				bp := DefaultBadgeProps()
				bp.Text = t.Badge
				bp.Size = SizeSM
				b.Component(Badge(bp))
			}
			b.Close("button")
		}
		b.Close("div")
		for i, t := range p.Tabs {
			b.Open("div", html.NewAttrs().
				ID(tabID(i)+"-panel").
				Set("class", "hph-tabs__panel").
				Set("role", "tabpanel").
				Aria("labelledby", tabID(i)+"-tab").
				Set("tabindex", "0").
				Bool("hidden", i != active))
			if t.Body != nil {
				b.Component(t.Body)
			} else {
				b.Raw(format.Sanitize(t.Content))
			}
			b.Close("div")
		}
		b.Close("div")
	})
}

type AccordionItem struct {
	Title   string          `prop:"title"`
	Content string          `prop:"content"`
	Open    bool            `prop:"open"`
	Body    templ.Component `prop:"-"`
}

type AccordionProps struct {
	Items         []AccordionItem `prop:"items"`
	AllowMultiple bool            `prop:"allow_multiple"`
	FirstOpen     bool            `prop:"first_open"`
	Variant       string          `prop:"variant"` // "default", "bordered", "flush"
	ID            string          `prop:"id"`
	Class         string          `prop:"class"`
}

func DefaultAccordionProps() AccordionProps {
	return AccordionProps{FirstOpen: true, Variant: "default"}
}

func Accordion(p AccordionProps) templ.Component {
	if len(p.Items) == 0 {
		return html.Empty()
	}
	variant := props.Enum(p.Variant, "default", "default", "bordered", "flush")
	id := p.ID
	if id == "" {
		titles := make([]any, 0, len(p.Items))
		for _, it := range p.Items {
			titles = append(titles, it.Title)
		}
		id = html.AutoID("accordion", titles...)
	}

	open := make([]bool, len(p.Items))
	anyOpen := false
	for i, it := range p.Items {
		if it.Open && (p.AllowMultiple || !anyOpen) {
			open[i] = true
			anyOpen = true
		}
	}
	if !anyOpen && p.FirstOpen {
		open[0] = true
	}

	classes := html.NewClasses("hph-accordion", "hph-accordion--"+variant, p.Class)
	attrs := hydrate.Mark(html.NewAttrs().ID(id).Class(classes), hydrate.Accordion, map[string]bool{"multiple": p.AllowMultiple})

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Accordion)
		b.Open("div", attrs)
		for i, it := range p.Items {
			itemID := id + "-" + strconv.Itoa(i)
			ic := html.NewClasses("hph-accordion__item")
			ic.AddIf(open[i], "hph-accordion__item--open")
			b.Open("div", html.NewAttrs().Class(ic))
			b.Open("h3", html.NewAttrs().Set("class", "hph-accordion__heading"))
			b.Open("button", html.NewAttrs().
				ID(itemID+"-trigger").
				Set("class", "hph-accordion__trigger").
				Set("type", "button").
				Bool("data-hph-accordion-trigger", true).
				Aria("expanded", strconv.FormatBool(open[i])).
				Aria("controls", itemID+"-panel"))
			b.Element("span", nil, it.Title)
			b.Component(icon("chevron-down", SizeSM))
			b.Close("button")
			b.Close("h3")
			b.Open("div", html.NewAttrs().
				ID(itemID+"-panel").
				Set("class", "hph-accordion__panel").
				Set("role", "region").
				Aria("labelledby", itemID+"-trigger").
				Bool("hidden", !open[i]))
			if it.Body != nil {
				b.Component(it.Body)
			} else {
				b.Raw(format.Sanitize(it.Content))
			}
			b.Close("div")
			b.Close("div")
		}
		b.Close("div")
	})
}
