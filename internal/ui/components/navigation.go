package components

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

type BreadcrumbsProps struct {
	Items     []Link `prop:"items"`
	ShowHome  bool   `prop:"show_home"`
	HomeLabel string `prop:"home_label"`
	HomeURL   string `prop:"home_url"`
	Separator string `prop:"separator"` // "slash", "chevron", "dot"
	Class     string `prop:"class"`
}

func DefaultBreadcrumbsProps() BreadcrumbsProps {
	return BreadcrumbsProps{ShowHome: true, HomeLabel: "Home", HomeURL: "/", Separator: "chevron"}
}

// Breadcrumbs renders the trail to the current page. The last item is the
// current page and is not linked. No items renders nothing, even with the
// home link enabled.
func Breadcrumbs(p BreadcrumbsProps) templ.Component {
	if len(p.Items) == 0 {
		return html.Empty()
	}
	items := p.Items
	if p.ShowHome {
		items = append([]Link{{Label: p.HomeLabel, URL: p.HomeURL}}, items...)
	}
	sep := props.Enum(p.Separator, "chevron", "chevron", "slash", "dot")
	classes := html.NewClasses("hph-breadcrumbs", "hph-breadcrumbs--"+sep, p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("nav", html.NewAttrs().Class(classes).Aria("label", "Breadcrumb"))
		b.Open("ol", html.NewAttrs().Set("class", "hph-breadcrumbs__list"))
		for i, item := range items {
			last := i == len(items)-1
			b.Open("li", html.NewAttrs().Set("class", "hph-breadcrumbs__item"))
			if i > 0 {
				b.Open("span", html.NewAttrs().Set("class", "hph-breadcrumbs__sep").Aria("hidden", "true"))
				switch sep {
				case "chevron":
					b.Component(icon("chevron-right", SizeXS))
				case "dot":
					b.Text("·")
				default:
					b.Text("/")
				}
				b.Close("span")
			}
			if last || item.URL == "" {
				attrs := html.NewAttrs().Set("class", "hph-breadcrumbs__current")
				if last {
					attrs.Aria("current", "page")
				}
				b.Element("span", attrs, item.Label)
			} else {
				b.Element("a", html.NewAttrs().Set("class", "hph-breadcrumbs__link").Href(item.URL), item.Label)
			}
			b.Close("li")
		}
		b.Close("ol")
		b.Close("nav")
	})
}

type PaginationProps struct {
	CurrentPage  int    `prop:"current_page"`
	TotalPages   int    `prop:"total_pages"`
	BaseURL      string `prop:"base_url"`
	PageParam    string `prop:"page_param"`
	MidSize      int    `prop:"mid_size"`
	EndSize      int    `prop:"end_size"`
	ShowPrevNext bool   `prop:"show_prev_next"`
	PrevText     string `prop:"prev_text"`
	NextText     string `prop:"next_text"`
	Size         Size   `prop:"size"`
	Align        Align  `prop:"align"`
	Class        string `prop:"class"`
}

func DefaultPaginationProps() PaginationProps {
	return PaginationProps{
		CurrentPage:  1,
		TotalPages:   1,
		PageParam:    "page",
		MidSize:      2,
		EndSize:      1,
		ShowPrevNext: true,
		PrevText:     "Previous",
		NextText:     "Next",
		Size:         SizeMD,
		Align:        AlignCenter,
	}
}

// PageURL returns base with the page parameter set to n. Page 1 drops the
// parameter.
func PageURL(base, param string, n int) string {
	if param == "" {
		param = "page"
	}
	u, err := url.Parse(base)
	if err != nil {
		return "?" + param + "=" + strconv.Itoa(n)
	}
	q := u.Query()
	if n <= 1 {
		q.Del(param)
	} else {
		q.Set(param, strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()
	out := u.String()
	if out == "" {
		return "?" + param + "=1"
	}
	return out
}

// PageNumbers lays out the links: EndSize pages at each end, MidSize pages
// around current, and 0 for each elided run.
func PageNumbers(current, total, mid, end int) []int {
	if end < 1 {
		end = 1
	}
	if mid < 0 {
		mid = 0
	}
	var out []int
	for n := 1; n <= total; n++ {
		show := n <= end || n > total-end || (n >= current-mid && n <= current+mid)
		switch {
		case show:
			out = append(out, n)
		case len(out) > 0 && out[len(out)-1] != 0:
			out = append(out, 0)
		}
	}
	return out
}

// Pagination renders page links. A single page renders nothing.
func Pagination(p PaginationProps) templ.Component {
	if p.TotalPages <= 1 {
		return html.Empty()
	}
	current := p.CurrentPage
	if current < 1 {
		current = 1
	}
	if current > p.TotalPages {
		current = p.TotalPages
	}
	size := props.Enum(p.Size, SizeMD, SizeSM, SizeMD, SizeLG)
	align := alignOr(p.Align, AlignCenter)
	classes := html.NewClasses("hph-pagination", "hph-pagination--"+string(size), "hph-pagination--"+string(align), p.Class)
	link := func(n int) string { return PageURL(p.BaseURL, p.PageParam, n) }

	return html.Markup(func(b *html.Builder) {
		b.Open("nav", html.NewAttrs().Class(classes).Aria("label", "Pagination"))
		b.Open("ul", html.NewAttrs().Set("class", "hph-pagination__list"))
		if p.ShowPrevNext && current > 1 {
			b.Open("li", html.NewAttrs().Set("class", "hph-pagination__item hph-pagination__item--prev")).
				Open("a", html.NewAttrs().Set("class", "hph-pagination__link").Href(link(current-1)).Set("rel", "prev")).
				Component(icon("chevron-left", SizeSM)).
				Element("span", nil, p.PrevText).
				Close("a").
				Close("li")
		}
		for _, n := range PageNumbers(current, p.TotalPages, p.MidSize, p.EndSize) {
			switch {
			case n == 0:
				b.Element("li", html.NewAttrs().Set("class", "hph-pagination__item hph-pagination__item--dots").Aria("hidden", "true"), "…")
			case n == current:
				b.Open("li", html.NewAttrs().Set("class", "hph-pagination__item hph-pagination__item--current")).
					Element("span", html.NewAttrs().Set("class", "hph-pagination__link").Aria("current", "page"), strconv.Itoa(n)).
					Close("li")
			default:
				b.Open("li", html.NewAttrs().Set("class", "hph-pagination__item")).
					Element("a", html.NewAttrs().
						Set("class", "hph-pagination__link").
						Href(link(n)).
						Aria("label", "Page "+strconv.Itoa(n)), strconv.Itoa(n)).
					Close("li")
			}
		}
		if p.ShowPrevNext && current < p.TotalPages {
			b.Open("li", html.NewAttrs().Set("class", "hph-pagination__item hph-pagination__item--next")).
				Open("a", html.NewAttrs().Set("class", "hph-pagination__link").Href(link(current+1)).Set("rel", "next")).
				Element("span", nil, p.NextText).
				Component(icon("chevron-right", SizeSM)).
				Close("a").
				Close("li")
		}
		b.Close("ul")
		b.Close("nav")
	})
}

type NavItem struct {
	Label    string    `prop:"label" yaml:"label"`
	URL      string    `prop:"url" yaml:"url"`
	Icon     string    `prop:"icon" yaml:"icon,omitempty"`
	Badge    string    `prop:"badge" yaml:"badge,omitempty"`
	Active   bool      `prop:"active" yaml:"active,omitempty"`
	Children []NavItem `prop:"children" yaml:"children,omitempty"`
}

type NavigationProps struct {
	Items       []NavItem `prop:"items"`
	CurrentURL  string    `prop:"current_url"`
	Orientation string    `prop:"orientation"` // "horizontal", "vertical"
	Variant     string    `prop:"variant"`     // "default", "pills", "underline"
	AriaLabel   string    `prop:"aria_label"`
	ID          string    `prop:"id"`
	Class       string    `prop:"class"`
}

func DefaultNavigationProps() NavigationProps {
	return NavigationProps{Orientation: "horizontal", Variant: "default", AriaLabel: "Main navigation"}
}

func (item NavItem) isActive(current string) bool {
	if item.Active {
		return true
	}
	if current == "" || item.URL == "" {
		return false
	}
	if item.URL == "/" {
		return current == "/"
	}
	return current == item.URL || strings.HasPrefix(current, strings.TrimRight(item.URL, "/")+"/")
}

func Navigation(p NavigationProps) templ.Component {
	if len(p.Items) == 0 {
		return html.Empty()
	}
	orientation := props.Enum(p.Orientation, "horizontal", "horizontal", "vertical")
	variant := props.Enum(p.Variant, "default", "default", "pills", "underline")
	classes := html.NewClasses("hph-nav", "hph-nav--"+orientation, "hph-nav--"+variant, p.Class)
	id := p.ID
	if id == "" {
		id = html.AutoID("nav", p.AriaLabel)
	}

	return html.Markup(func(b *html.Builder) {
		b.Open("nav", html.NewAttrs().ID(id).Class(classes).Aria("label", p.AriaLabel))
		b.Open("ul", html.NewAttrs().Set("class", "hph-nav__list"))
		for i, item := range p.Items {
			active := item.isActive(p.CurrentURL)
			itemClasses := html.NewClasses("hph-nav__item")
			itemClasses.AddIf(active, "hph-nav__item--active")
			itemClasses.AddIf(len(item.Children) > 0, "hph-nav__item--has-children")
			b.Open("li", html.NewAttrs().Class(itemClasses))
			if len(item.Children) > 0 {
				dd := DefaultDropdownProps()
				dd.ID = id + "-menu-" + strconv.Itoa(i)
				dd.Label = item.Label
				dd.Icon = item.Icon
				dd.Trigger = "hover"
				dd.Variant = ButtonGhost
				for _, child := range item.Children {
					dd.Items = append(dd.Items, DropdownItem{
						Label:  child.Label,
						URL:    child.URL,
						Icon:   child.Icon,
						Active: child.isActive(p.CurrentURL),
					})
				}
				b.Component(Dropdown(dd))
			} else {
				attrs := html.NewAttrs().Set("class", "hph-nav__link").Href(item.URL)
				if active {
					attrs.Aria("current", "page")
				}
				b.Open("a", attrs)
				if item.Icon != "" {
					b.Component(icon(item.Icon, SizeSM))
				}
				b.Element("span", html.NewAttrs().Set("class", "hph-nav__label"), item.Label)
				if item.Badge != "" {
					bp := DefaultBadgeProps()
					bp.Text = item.Badge
					bp.Size = SizeSM
					bp.Variant = BadgePrimary
					b.Component(Badge(bp))
				}
				b.Close("a")
			}
			b.Close("li")
		}
		b.Close("ul")
		b.Close("nav")
	})
}

type DropdownItem struct {
	Label   string `prop:"label"`
	URL     string `prop:"url"`
	Icon    string `prop:"icon"`
	Active  bool   `prop:"active"`
	Divider bool   `prop:"divider"`
}

type DropdownProps struct {
	Label   string         `prop:"label"`
	Icon    string         `prop:"icon"`
	Items   []DropdownItem `prop:"items"`
	Align   Align          `prop:"align"`   // "left", "right"
	Trigger string         `prop:"trigger"` // "click", "hover"
	Variant ButtonVariant  `prop:"variant"`
	Size    Size           `prop:"size"`
	ID      string         `prop:"id"`
	Class   string         `prop:"class"`
}

func DefaultDropdownProps() DropdownProps {
	return DropdownProps{Align: AlignLeft, Trigger: "click", Variant: ButtonSecondary, Size: SizeMD}
}

func Dropdown(p DropdownProps) templ.Component {
	if len(p.Items) == 0 || (p.Label == "" && p.Icon == "") {
		return html.Empty()
	}
	align := AlignLeft
	if p.Align == AlignRight {
		align = AlignRight
	}
	trigger := props.Enum(p.Trigger, "click", "click", "hover")
	id := p.ID
	if id == "" {
		id = html.AutoID("dropdown", p.Label, len(p.Items))
	}
	classes := html.NewClasses("hph-dropdown", "hph-dropdown--"+string(align), p.Class)
	attrs := hydrate.Mark(html.NewAttrs().ID(id).Class(classes), hydrate.Dropdown, map[string]string{"trigger": trigger})

	btn := DefaultButtonProps()
	btn.Text = p.Label
	btn.Icon = "chevron-down"
	btn.IconPosition = "right"
	btn.Variant = p.Variant
	btn.Size = p.Size
	btn.Class = "hph-dropdown__trigger"
	btn.Attributes = map[string]string{
		"data-hph-dropdown-trigger": "true",
		"aria-haspopup":             "true",
		"aria-expanded":             "false",
		"aria-controls":             id + "-menu",
	}

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Dropdown)
		b.Open("div", attrs)
		b.Component(Button(btn))
		b.Open("ul", html.NewAttrs().
			ID(id+"-menu").
			Set("class", "hph-dropdown__menu").
			Set("role", "menu").
			Bool("data-hph-dropdown-menu", true).
			Bool("hidden", true))
		for _, item := range p.Items {
			if item.Divider {
				b.Element("li", html.NewAttrs().Set("class", "hph-dropdown__divider").Set("role", "separator"), "")
				continue
			}
			linkClasses := html.NewClasses("hph-dropdown__item")
			linkClasses.AddIf(item.Active, "hph-dropdown__item--active")
			b.Open("li", html.NewAttrs().Set("role", "none"))
			b.Open("a", html.NewAttrs().Class(linkClasses).Href(item.URL).Set("role", "menuitem"))
			if item.Icon != "" {
				b.Component(icon(item.Icon, SizeSM))
			}
			b.Text(item.Label)
			b.Close("a")
			b.Close("li")
		}
		b.Close("ul")
		b.Close("div")
	})
}
