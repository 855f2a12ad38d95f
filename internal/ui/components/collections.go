package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

// View names a listing collection layout. The fragments endpoint uses it to
// render load-more pages with the same card template.
type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
	ViewMap  View = "map"
)

// CollectionProps is shared by the card grid, list and map layouts.
type CollectionProps struct {
	Title          string              `prop:"title"`
	Subtitle       string              `prop:"subtitle"`
	Query          domain.ListingQuery `prop:"query"`
	Card           CardProps           `prop:"card"`
	ShowCount      bool                `prop:"show_count"`
	ShowSort       bool                `prop:"show_sort"`
	LoadMore       bool                `prop:"load_more"`
	LoadMoreText   string              `prop:"load_more_text"`
	ShowPagination bool                `prop:"show_pagination"`
	BaseURL        string              `prop:"base_url"`
	Endpoint       string              `prop:"endpoint"`
	ShowEmpty      bool                `prop:"show_empty"`
	EmptyTitle     string              `prop:"empty_title"`
	EmptyMessage   string              `prop:"empty_message"`
	ID             string              `prop:"id"`
	Class          string              `prop:"class"`

	// Page holds the resolved query results; Listings is used when the
	// caller already has a fixed set.
	Page     *domain.ListingPage `prop:"-"`
	Listings []*domain.Listing   `prop:"-"`
}

func defaultCollection() CollectionProps {
	return CollectionProps{
		Card:         DefaultCardProps(),
		ShowCount:    true,
		LoadMoreText: "Load More",
		ShowEmpty:    true,
		EmptyTitle:   "No listings found",
		EmptyMessage: "Try adjusting your search filters.",
	}
}

func (p CollectionProps) items() []*domain.Listing {
	if p.Page != nil {
		return p.Page.Items
	}
	return p.Listings
}

func (p CollectionProps) total() int {
	if p.Page != nil {
		return p.Page.Total
	}
	return len(p.Listings)
}

func (p CollectionProps) id(kind string) string {
	if p.ID != "" {
		return p.ID
	}
	seed := []any{p.Title, p.Query.Sort, p.Query.Status, p.Query.City}
	for _, l := range p.items() {
		if l != nil {
			seed = append(seed, l.ID)
		}
	}
	return html.AutoID(kind, seed...)
}

// cardsOptions are read by the cards behavior module.
func (p CollectionProps) cardsOptions(view View) map[string]any {
	query := p.Query.Params()
	query["view"] = string(view)
	page := 1
	if p.Page != nil {
		page = p.Page.Page
	}
	opts := map[string]any{"page": page, "query": query}
	if p.Endpoint != "" {
		opts["endpoint"] = p.Endpoint
	}
	return opts
}

// header renders the section header and the count/sort toolbar.
func (p CollectionProps) header(b *html.Builder, id string, toolbar func(b *html.Builder)) {
	if p.Title != "" {
		sh := DefaultSectionHeaderProps()
		sh.Title = p.Title
		sh.Subtitle = p.Subtitle
		b.Component(SectionHeader(sh))
	}
	if !p.ShowCount && !p.ShowSort && toolbar == nil {
		return
	}
	b.Open("div", html.NewAttrs().Set("class", "hph-cards__toolbar"))
	if p.ShowCount {
		b.Element("p", html.NewAttrs().Set("class", "hph-cards__count").Aria("live", "polite"), cardCount(p.total()))
	}
	if p.ShowSort {
		sel := DefaultSelectProps()
		sel.Name = "sort"
		sel.ID = id + "-sort"
		sel.Label = "Sort by"
		sel.Size = SizeSM
		sel.Value = string(p.Query.Normalized().Sort)
		sel.Attributes = map[string]string{"data-hph-sort": "true"}
		for _, s := range domain.ListingSorts {
			sel.Options = append(sel.Options, Option{Value: string(s.Key), Label: s.Label})
		}
		b.Component(Select(sel))
	}
	if toolbar != nil {
		toolbar(b)
	}
	b.Close("div")
}

// footer renders the load-more button and pagination.
func (p CollectionProps) footer(b *html.Builder) {
	if p.LoadMore {
		btn := DefaultButtonProps()
		btn.Text = p.LoadMoreText
		btn.Variant = ButtonOutline
		btn.Class = "hph-cards__load-more"
		btn.Attributes = map[string]string{"data-hph-load-more": "true"}
		if !p.Page.HasMore() {
			btn.Attributes["hidden"] = "hidden"
		}
		b.Component(Button(btn))
	}
	if p.ShowPagination && p.Page != nil {
		pg := DefaultPaginationProps()
		pg.CurrentPage = p.Page.Page
		pg.TotalPages = p.Page.TotalPages
		pg.BaseURL = p.BaseURL
		b.Component(Pagination(pg))
	}
}

// hidden reports whether the collection renders nothing: no listings and
// no empty state wanted.
func (p CollectionProps) hidden() bool {
	return len(p.items()) == 0 && !p.ShowEmpty
}

func (p CollectionProps) empty(b *html.Builder) {
	if !p.ShowEmpty {
		return
	}
	es := DefaultEmptyStateProps()
	es.Title = p.EmptyTitle
	es.Message = p.EmptyMessage
	b.Component(EmptyState(es))
}

type CardGridProps struct {
	CollectionProps `prop:",squash"`
	Columns         int    `prop:"columns"`
	Gap             string `prop:"gap"` // "sm", "md", "lg"
}

func DefaultCardGridProps() CardGridProps {
	return CardGridProps{CollectionProps: defaultCollection(), Columns: 3, Gap: "md"}
}

// CardGrid lays listing cards out in columns. With no listings it shows the
// empty state, or nothing when ShowEmpty is off.
func CardGrid(p CardGridProps) templ.Component {
	if p.hidden() {
		return html.Empty()
	}
	if p.Columns < 1 || p.Columns > 4 {
		p.Columns = 3
	}
	gap := props.Enum(p.Gap, "md", "sm", "md", "lg")
	id := p.id("card-grid")
	items := p.items()

	classes := html.NewClasses("hph-cards", "hph-card-grid", p.Class)
	classes.AddIf(len(items) == 0, "hph-cards--empty")
	attrs := hydrate.Mark(html.NewAttrs().ID(id).Class(classes), hydrate.Cards, p.cardsOptions(ViewGrid))

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Cards)
		b.Open("section", attrs)
		p.header(b, id, nil)
		b.Open("div", html.NewAttrs().
			Set("class", html.CN("hph-card-grid__items", "hph-grid", "hph-grid--cols-"+strconv.Itoa(p.Columns), "hph-grid--gap-"+gap)).
			Bool("data-hph-cards-items", true))
		if len(items) > 0 {
			b.Component(CardItems(items, p.Card))
		}
		b.Close("div")
		if len(items) == 0 {
			p.empty(b)
		} else {
			p.footer(b)
		}
		b.Close("section")
	})
}

type CardListProps struct {
	CollectionProps `prop:",squash"`
	ShowViewToggle  bool `prop:"show_view_toggle"`
	Dividers        bool `prop:"dividers"`
}

func DefaultCardListProps() CardListProps {
	c := defaultCollection()
	c.Card.Variant = CardHorizontal
	c.ShowSort = true
	return CardListProps{CollectionProps: c, ShowViewToggle: true}
}

// CardList stacks horizontal listing cards with an optional grid/list toggle.
func CardList(p CardListProps) templ.Component {
	if p.hidden() {
		return html.Empty()
	}
	id := p.id("card-list")
	items := p.items()

	classes := html.NewClasses("hph-cards", "hph-card-list")
	classes.AddIf(p.Dividers, "hph-card-list--dividers")
	classes.AddIf(len(items) == 0, "hph-cards--empty")
	classes.Add(p.Class)
	attrs := hydrate.Mark(html.NewAttrs().ID(id).Class(classes).Data("view", string(ViewList)), hydrate.Cards, p.cardsOptions(ViewList))

	var toggle func(b *html.Builder)
	if p.ShowViewToggle {
		toggle = func(b *html.Builder) {
			b.Open("div", html.NewAttrs().Set("class", "hph-cards__views").Set("role", "group").Aria("label", "View"))
			for _, v := range []struct {
				view View
				icon string
			}{{ViewGrid, "grid"}, {ViewList, "list"}} {
				btn := DefaultButtonProps()
				btn.Icon = v.icon
				btn.Label = string(v.view) + " view"
				btn.Variant = ButtonGhost
				btn.Size = SizeSM
				btn.Attributes = map[string]string{
					"data-hph-view": string(v.view),
					"aria-pressed":  strconv.FormatBool(v.view == ViewList),
				}
				b.Component(Button(btn))
			}
			b.Close("div")
		}
	}

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Cards)
		b.Open("section", attrs)
		p.header(b, id, toggle)
		b.Open("div", html.NewAttrs().Set("class", "hph-card-list__items").Bool("data-hph-cards-items", true))
		if len(items) > 0 {
			b.Component(CardItems(items, p.Card))
		}
		b.Close("div")
		if len(items) == 0 {
			p.empty(b)
		} else {
			p.footer(b)
		}
		b.Close("section")
	})
}

// CardTemplate returns the card props a view renders its items with.
func CardTemplate(view View) CardProps {
	switch view {
	case ViewList:
		return DefaultCardListProps().Card
	case ViewMap:
		return DefaultCardMapProps().Card
	default:
		return DefaultCardGridProps().Card
	}
}
