package registry

import (
	"context"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/props"
	c "github.com/ericfisherdev/happyplace/internal/ui/components"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

// simple builds a component whose props come entirely from args.
func simple[T any](defaults func() T, build func(T) templ.Component) Builder {
	return func(_ context.Context, args props.Map) (templ.Component, props.Result, error) {
		var p T
		res, err := props.Normalize(defaults(), args, &p)
		return build(p), res, err
	}
}

// bound builds a component that reads listings. keys are lifted out of args
// before normalizing and handed to resolve, which runs at render time with
// the render context.
func bound[T any](defaults func() T, keys []string, resolve func(ctx context.Context, p *T, data props.Map), build func(T) templ.Component) Builder {
	return func(_ context.Context, args props.Map) (templ.Component, props.Result, error) {
		data, rest := split(args, keys)
		var p T
		res, err := props.Normalize(defaults(), rest, &p)
		return html.Markup(func(b *html.Builder) {
			resolved := p
			resolve(b.Context(), &resolved, data)
			b.Component(build(resolved))
		}), res, err
	}
}

func split(args props.Map, keys []string) (data, rest props.Map) {
	data = props.Map{}
	rest = make(props.Map, len(args))
	for k, v := range args {
		rest[k] = v
	}
	for _, k := range keys {
		if v, ok := rest[k]; ok {
			data[k] = v
			delete(rest, k)
		}
	}
	return data, rest
}

// resolver performs the lookups of data-bound entries. Failures are logged
// and the component renders as if nothing was found.
type resolver struct {
	src ListingSource
	log *logger.Logger
}

func (rv resolver) failed(err error, msg string, key string, value any) {
	l := rv.log.With(key, value)
	if domain.IsNotFound(err) {
		l.Debug(msg)
		return
	}
	l.Error(err, msg)
}

func (rv resolver) listing(ctx context.Context, data props.Map) *domain.Listing {
	id := data.String("listing_id")
	if id == "" || rv.src == nil {
		return nil
	}
	l, err := rv.src.Get(ctx, id)
	if err != nil {
		rv.failed(err, "listing lookup failed", "listing_id", id)
		return nil
	}
	return l
}

func (rv resolver) agent(ctx context.Context, data props.Map) *domain.Agent {
	if rv.src == nil {
		return nil
	}
	id := data.String("agent_id")
	if id == "" {
		l := rv.listing(ctx, data)
		if l == nil {
			return nil
		}
		if l.Agent != nil {
			return l.Agent
		}
		id = l.AgentID
	}
	if id == "" {
		return nil
	}
	a, err := rv.src.GetAgent(ctx, id)
	if err != nil {
		rv.failed(err, "agent lookup failed", "agent_id", id)
		return nil
	}
	return a
}

func (rv resolver) page(ctx context.Context, q domain.ListingQuery) *domain.ListingPage {
	if rv.src == nil {
		return nil
	}
	page, err := rv.src.Query(ctx, q)
	if err != nil {
		rv.failed(err, "listing query failed", "query", q.Params())
		return nil
	}
	return page
}

func (rv resolver) collection(ctx context.Context, p *c.CollectionProps) {
	if p.Page != nil || len(p.Listings) > 0 {
		return
	}
	p.Page = rv.page(ctx, p.Query)
}

var listingKeys = []string{"listing_id"}

func catalog(deps Deps, log *logger.Logger) []Entry {
	rv := resolver{src: deps.Listings, log: log}

	cardMapDefaults := func() c.CardMapProps {
		d := c.DefaultCardMapProps()
		d.AccessToken = deps.MapboxToken
		return d
	}
	dashboardDefaults := func() c.DashboardMapProps {
		d := c.DefaultDashboardMapProps()
		d.AccessToken = deps.MapboxToken
		return d
	}

	return []Entry{
		{Name: "icon", Group: GroupAtoms, Description: "SVG sprite icon", Build: simple(c.DefaultIconProps, c.Icon)},
		{Name: "button", Group: GroupAtoms, Description: "Button or button-styled link", Build: simple(c.DefaultButtonProps, c.Button)},
		{Name: "badge", Group: GroupAtoms, Description: "Status or label pill", Build: simple(c.DefaultBadgeProps, c.Badge)},
		{Name: "avatar", Group: GroupAtoms, Description: "Photo, initials or placeholder avatar", Build: simple(c.DefaultAvatarProps, c.Avatar)},
		{Name: "alert", Group: GroupAtoms, Description: "Inline message, optionally dismissible", Families: []hydrate.Family{hydrate.Alert}, Build: simple(c.DefaultAlertProps, c.Alert)},
		{Name: "spinner", Group: GroupAtoms, Description: "Loading indicator", Build: simple(c.DefaultSpinnerProps, c.Spinner)},
		{Name: "progress", Group: GroupAtoms, Description: "Progress bar", Build: simple(c.DefaultProgressProps, c.Progress)},
		{Name: "tooltip", Group: GroupAtoms, Description: "Hover and focus hint", Families: []hydrate.Family{hydrate.Tooltip}, Build: simple(c.DefaultTooltipProps, c.Tooltip)},
		{Name: "section-header", Group: GroupAtoms, Description: "Section title with optional action", Build: simple(c.DefaultSectionHeaderProps, c.SectionHeader)},
		{Name: "empty-state", Group: GroupAtoms, Description: "No results message", Build: simple(c.DefaultEmptyStateProps, c.EmptyState)},
		{Name: "rich-text", Group: GroupAtoms, Description: "Sanitized Markdown or HTML content", Build: simple(c.DefaultRichTextProps, c.RichText)},

		{Name: "input", Group: GroupForms, Description: "Labelled text input", Build: simple(c.DefaultInputProps, c.Input)},
		{Name: "textarea", Group: GroupForms, Description: "Labelled multi-line input", Build: simple(c.DefaultTextareaProps, c.Textarea)},
		{Name: "select", Group: GroupForms, Description: "Labelled select menu", Build: simple(c.DefaultSelectProps, c.Select)},
		{Name: "checkbox", Group: GroupForms, Description: "Checkbox or switch", Build: simple(c.DefaultCheckboxProps, c.Checkbox)},
		{Name: "radio-group", Group: GroupForms, Description: "Radio button fieldset", Build: simple(c.DefaultRadioGroupProps, c.RadioGroup)},
		{Name: "range-slider", Group: GroupForms, Description: "Single or dual handle range", Families: []hydrate.Family{hydrate.Range}, Build: simple(c.DefaultRangeSliderProps, c.RangeSlider)},
		{Name: "search-form", Group: GroupForms, Description: "Listing search filters", Build: simple(c.DefaultSearchFormProps, c.SearchForm)},
		{Name: "contact-form", Group: GroupForms, Description: "Inquiry form posted to the inquiries endpoint", Families: []hydrate.Family{hydrate.Form}, Build: simple(c.DefaultContactFormProps, c.ContactForm)},

		{Name: "breadcrumbs", Group: GroupNavigation, Description: "Trail of links to the current page", Build: simple(c.DefaultBreadcrumbsProps, c.Breadcrumbs)},
		{Name: "pagination", Group: GroupNavigation, Description: "Numbered page links", Build: simple(c.DefaultPaginationProps, c.Pagination)},
		{Name: "navigation", Group: GroupNavigation, Description: "Site menu with dropdown children", Families: []hydrate.Family{hydrate.Dropdown}, Build: simple(c.DefaultNavigationProps, c.Navigation)},
		{Name: "tabs", Group: GroupNavigation, Description: "Tabbed panels", Families: []hydrate.Family{hydrate.Tabs}, Build: simple(c.DefaultTabsProps, c.Tabs)},
		{Name: "dropdown", Group: GroupNavigation, Description: "Menu behind a toggle button", Families: []hydrate.Family{hydrate.Dropdown}, Build: simple(c.DefaultDropdownProps, c.Dropdown)},
		{Name: "accordion", Group: GroupNavigation, Description: "Collapsible sections", Families: []hydrate.Family{hydrate.Accordion}, Build: simple(c.DefaultAccordionProps, c.Accordion)},

		{Name: "modal", Group: GroupOverlay, Description: "Dialog opened by a trigger", Families: []hydrate.Family{hydrate.Modal}, Build: simple(c.DefaultModalProps, c.Modal)},

		{
			Name: "card", Group: GroupData, Description: "Listing or generic content card", Bound: true,
			Families: []hydrate.Family{hydrate.Cards},
			Build: bound(c.DefaultCardProps, listingKeys, func(ctx context.Context, p *c.CardProps, data props.Map) {
				if p.Listing == nil {
					p.Listing = rv.listing(ctx, data)
				}
			}, c.Card),
		},
		{
			Name: "card-grid", Group: GroupData, Description: "Grid of listing cards", Bound: true,
			Families: []hydrate.Family{hydrate.Cards},
			Build: bound(c.DefaultCardGridProps, nil, func(ctx context.Context, p *c.CardGridProps, _ props.Map) {
				rv.collection(ctx, &p.CollectionProps)
			}, c.CardGrid),
		},
		{
			Name: "card-list", Group: GroupData, Description: "List of listing cards with view toggle", Bound: true,
			Families: []hydrate.Family{hydrate.Cards},
			Build: bound(c.DefaultCardListProps, nil, func(ctx context.Context, p *c.CardListProps, _ props.Map) {
				rv.collection(ctx, &p.CollectionProps)
			}, c.CardList),
		},
		{
			Name: "card-map", Group: GroupData, Description: "Listing cards beside a map", Bound: true,
			Families: []hydrate.Family{hydrate.Cards, hydrate.Map},
			Build: bound(cardMapDefaults, nil, func(ctx context.Context, p *c.CardMapProps, _ props.Map) {
				rv.collection(ctx, &p.CollectionProps)
			}, c.CardMap),
		},
		{
			Name: "dashboard-map", Group: GroupData, Description: "Every listing on one map with a status summary", Bound: true,
			Families: []hydrate.Family{hydrate.Map},
			Build: bound(dashboardDefaults, nil, func(ctx context.Context, p *c.DashboardMapProps, _ props.Map) {
				if len(p.Listings) > 0 {
					return
				}
				q := p.Query
				if q.PerPage == 0 {
					q.PerPage = domain.MaxPerPage
				}
				if page := rv.page(ctx, q); page != nil {
					p.Listings = page.Items
				}
			}, c.DashboardMap),
		},
		{Name: "table", Group: GroupData, Description: "Data table with sortable columns", Build: simple(c.DefaultTableProps, c.Table)},
		{Name: "stat", Group: GroupData, Description: "Single figure with trend", Build: simple(c.DefaultStatProps, c.Stat)},
		{Name: "stats-grid", Group: GroupData, Description: "Row of figures", Build: simple(c.DefaultStatsGridProps, c.StatsGrid)},
		{Name: "chart", Group: GroupData, Description: "Chart.js canvas with table fallback", Families: []hydrate.Family{hydrate.Chart}, Build: simple(c.DefaultChartProps, c.Chart)},
		{
			Name: "gallery", Group: GroupData, Description: "Photo slider or grid", Bound: true,
			Families: []hydrate.Family{hydrate.Gallery},
			Build: bound(c.DefaultGalleryProps, listingKeys, func(ctx context.Context, p *c.GalleryProps, data props.Map) {
				if len(p.Images) > 0 {
					return
				}
				l := rv.listing(ctx, data)
				if l == nil {
					return
				}
				srcs := l.Gallery
				if len(srcs) == 0 && l.Image() != "" {
					srcs = []string{l.Image()}
				}
				p.Images = c.GalleryImages(srcs, l.Title)
			}, c.Gallery),
		},
		{
			Name: "listing-price", Group: GroupData, Description: "Formatted price with status label", Bound: true,
			Build: bound(c.DefaultListingPriceProps, listingKeys, func(ctx context.Context, p *c.ListingPriceProps, data props.Map) {
				if l := rv.listing(ctx, data); l != nil {
					*p = c.ListingPriceFor(l, *p)
				}
			}, c.ListingPrice),
		},
		{
			Name: "listing-details", Group: GroupData, Description: "Property facts and features", Bound: true,
			Build: bound(c.DefaultListingDetailsProps, listingKeys, func(ctx context.Context, p *c.ListingDetailsProps, data props.Map) {
				if p.Listing == nil {
					p.Listing = rv.listing(ctx, data)
				}
			}, c.ListingDetails),
		},
		{
			Name: "agent-card", Group: GroupData, Description: "Listing agent contact card", Bound: true,
			Build: bound(c.DefaultAgentCardProps, []string{"agent_id", "listing_id"}, func(ctx context.Context, p *c.AgentCardProps, data props.Map) {
				if p.Agent == nil {
					p.Agent = rv.agent(ctx, data)
				}
			}, c.AgentCard),
		},
	}
}
