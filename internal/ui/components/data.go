package components

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/format"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

// formatValue renders a cell or stat value: "money", "number", "percent"
// or plain text.
func formatValue(v any, kind string) string {
	if v == nil {
		return ""
	}
	var f float64
	numeric := true
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil || kind == "" || kind == "text" {
			return n
		}
		f = parsed
	default:
		numeric = false
	}
	if !numeric {
		return fmt.Sprint(v)
	}
	switch kind {
	case "money":
		return format.Money(int64(f))
	case "money_compact":
		return format.CompactMoney(int64(f))
	case "number":
		return format.Number(int(f))
	case "percent":
		return format.Decimal(f, 1) + "%"
	default:
		return format.Decimal(f, 2)
	}
}

type TableColumn struct {
	Key      string `prop:"key"`
	Label    string `prop:"label"`
	Align    Align  `prop:"align"`
	Format   string `prop:"format"`
	Sortable bool   `prop:"sortable"`
}

type TableProps struct {
	Columns      []TableColumn    `prop:"columns"`
	Rows         []map[string]any `prop:"rows"`
	Caption      string           `prop:"caption"`
	Striped      bool             `prop:"striped"`
	Hover        bool             `prop:"hover"`
	Compact      bool             `prop:"compact"`
	Responsive   bool             `prop:"responsive"`
	EmptyMessage string           `prop:"empty_message"`
	// SortKey and SortDir describe the current server-side ordering;
	// sortable headers link to BaseURL with orderby/order set.
	SortKey string `prop:"sort_key"`
	SortDir string `prop:"sort_dir"`
	BaseURL string `prop:"base_url"`
	ID      string `prop:"id"`
	Class   string `prop:"class"`
}

func DefaultTableProps() TableProps {
	return TableProps{Striped: true, Hover: true, Responsive: true, EmptyMessage: "No data available", SortDir: "asc"}
}

func sortURL(base, key, dir string) string {
	u, err := url.Parse(base)
	if err != nil {
		u = &url.URL{}
	}
	q := u.Query()
	q.Del("page")
	q.Set("orderby", key)
	q.Set("order", dir)
	u.RawQuery = q.Encode()
	return u.String()
}

func Table(p TableProps) templ.Component {
	if len(p.Columns) == 0 {
		return html.Empty()
	}
	dir := props.Enum(p.SortDir, "asc", "asc", "desc")
	classes := html.NewClasses("hph-table")
	classes.AddIf(p.Striped, "hph-table--striped")
	classes.AddIf(p.Hover, "hph-table--hover")
	classes.AddIf(p.Compact, "hph-table--compact")
	classes.Add(p.Class)

	return html.Markup(func(b *html.Builder) {
		if p.Responsive {
			b.Open("div", html.NewAttrs().Set("class", "hph-table-wrap"))
		}
		b.Open("table", html.NewAttrs().SetIf(p.ID != "", "id", p.ID).Class(classes))
		if p.Caption != "" {
			b.Element("caption", nil, p.Caption)
		}
		b.Open("thead", nil).Open("tr", nil)
		for _, col := range p.Columns {
			align := alignOr(col.Align, AlignLeft)
			th := html.NewAttrs().Set("scope", "col").Set("class", "hph-table__th hph-table__th--"+string(align))
			if col.Sortable && col.Key == p.SortKey {
				if dir == "asc" {
					th.Aria("sort", "ascending")
				} else {
					th.Aria("sort", "descending")
				}
			}
			b.Open("th", th)
			if col.Sortable {
				next := "asc"
				if col.Key == p.SortKey && dir == "asc" {
					next = "desc"
				}
				b.Element("a", html.NewAttrs().Set("class", "hph-table__sort").Href(sortURL(p.BaseURL, col.Key, next)), col.Label)
			} else {
				b.Text(col.Label)
			}
			b.Close("th")
		}
		b.Close("tr").Close("thead")
		b.Open("tbody", nil)
		if len(p.Rows) == 0 {
			b.Open("tr", nil).
				Element("td", html.NewAttrs().
					Set("class", "hph-table__empty").
					Set("colspan", strconv.Itoa(len(p.Columns))), p.EmptyMessage).
				Close("tr")
		}
		for _, row := range p.Rows {
			b.Open("tr", nil)
			for _, col := range p.Columns {
				align := alignOr(col.Align, AlignLeft)
				b.Element("td", html.NewAttrs().
					Set("class", "hph-table__td hph-table__td--"+string(align)).
					Data("label", col.Label), formatValue(row[col.Key], col.Format))
			}
			b.Close("tr")
		}
		b.Close("tbody")
		b.Close("table")
		if p.Responsive {
			b.Close("div")
		}
	})
}

type StatProps struct {
	Label       string  `prop:"label"`
	Value       string  `prop:"value"`
	Number      float64 `prop:"number"`
	Format      string  `prop:"format"` // "number", "money", "money_compact", "percent"
	Icon        string  `prop:"icon"`
	Change      float64 `prop:"change"` // percent
	ChangeLabel string  `prop:"change_label"`
	Href        string  `prop:"href"`
	Class       string  `prop:"class"`
}

func DefaultStatProps() StatProps {
	return StatProps{Format: "number"}
}

func (p StatProps) display() string {
	if p.Value != "" {
		return p.Value
	}
	return formatValue(p.Number, p.Format)
}

func Stat(p StatProps) templ.Component {
	if p.Label == "" && p.Value == "" {
		return html.Empty()
	}
	trend := ""
	switch {
	case p.Change > 0:
		trend = "up"
	case p.Change < 0:
		trend = "down"
	}
	classes := html.NewClasses("hph-stat")
	classes.AddIf(trend != "", "hph-stat--"+trend)
	classes.Add(p.Class)
	tag := "div"
	attrs := html.NewAttrs().Class(classes)
	if p.Href != "" {
		tag = "a"
		attrs.Href(p.Href)
	}

	return html.Markup(func(b *html.Builder) {
		b.Open(tag, attrs)
		if p.Icon != "" {
			b.Open("span", html.NewAttrs().Set("class", "hph-stat__icon")).Component(icon(p.Icon, SizeLG)).Close("span")
		}
		b.Open("div", html.NewAttrs().Set("class", "hph-stat__body"))
		b.Element("p", html.NewAttrs().Set("class", "hph-stat__value"), p.display())
		b.Element("p", html.NewAttrs().Set("class", "hph-stat__label"), p.Label)
		if trend != "" {
			sign := "+"
			arrow := "arrow-up"
			if trend == "down" {
				sign = ""
				arrow = "arrow-down"
			}
			b.Open("p", html.NewAttrs().Set("class", "hph-stat__change hph-stat__change--"+trend)).
				Component(icon(arrow, SizeXS)).
				Text(sign + format.Decimal(p.Change, 1) + "%")
			if p.ChangeLabel != "" {
				b.Element("span", html.NewAttrs().Set("class", "hph-stat__change-label"), " "+p.ChangeLabel)
			}
			b.Close("p")
		}
		b.Close("div")
		b.Close(tag)
	})
}

type StatsGridProps struct {
	Stats   []StatProps `prop:"stats"`
	Columns int         `prop:"columns"`
	Variant string      `prop:"variant"` // "default", "cards", "minimal"
	Class   string      `prop:"class"`
}

func DefaultStatsGridProps() StatsGridProps {
	return StatsGridProps{Columns: 4, Variant: "default"}
}

func StatsGrid(p StatsGridProps) templ.Component {
	if len(p.Stats) == 0 {
		return html.Empty()
	}
	if p.Columns < 1 || p.Columns > 6 {
		p.Columns = 4
	}
	variant := props.Enum(p.Variant, "default", "default", "cards", "minimal")
	classes := html.NewClasses("hph-stats-grid", "hph-stats-grid--"+variant, "hph-grid", "hph-grid--cols-"+strconv.Itoa(p.Columns), p.Class)

	return html.Markup(func(b *html.Builder) {
		b.Open("div", html.NewAttrs().Class(classes))
		for _, s := range p.Stats {
			if s.Format == "" {
				s.Format = "number"
			}
			b.Component(Stat(s))
		}
		b.Close("div")
	})
}

type ChartDataset struct {
	Label string    `prop:"label" json:"label"`
	Data  []float64 `prop:"data" json:"data"`
	Color string    `prop:"color" json:"backgroundColor,omitempty"`
}

type ChartProps struct {
	Type     string         `prop:"type"` // "line", "bar", "pie", "doughnut"
	Title    string         `prop:"title"`
	Labels   []string       `prop:"labels"`
	Datasets []ChartDataset `prop:"datasets"`
	Height   int            `prop:"height"`
	Options  map[string]any `prop:"options"`
	ID       string         `prop:"id"`
	Class    string         `prop:"class"`
}

func DefaultChartProps() ChartProps {
	return ChartProps{Type: "line", Height: 300}
}

// Chart renders a canvas for Chart.js plus a data table fallback.
func Chart(p ChartProps) templ.Component {
	if len(p.Datasets) == 0 {
		return html.Empty()
	}
	typ := props.Enum(p.Type, "line", "line", "bar", "pie", "doughnut")
	if p.Height <= 0 {
		p.Height = 300
	}
	id := p.ID
	if id == "" {
		id = html.AutoID("chart", p.Title, typ, p.Labels)
	}
	label := p.Title
	if label == "" {
		label = "Chart"
	}
	opts := map[string]any{
		"type":     typ,
		"labels":   p.Labels,
		"datasets": p.Datasets,
	}
	if len(p.Options) > 0 {
		opts["options"] = p.Options
	}
	classes := html.NewClasses("hph-chart", "hph-chart--"+typ, p.Class)

	return html.Markup(func(b *html.Builder) {
		hydrate.Require(b.Context(), hydrate.Chart)
		b.Open("figure", hydrate.Mark(html.NewAttrs().ID(id).Class(classes), hydrate.Chart, opts))
		if p.Title != "" {
			b.Element("figcaption", html.NewAttrs().Set("class", "hph-chart__title"), p.Title)
		}
		b.Open("div", html.NewAttrs().Set("class", "hph-chart__canvas").Set("style", "height:"+strconv.Itoa(p.Height)+"px"))
		b.Element("canvas", html.NewAttrs().Set("role", "img").Aria("label", label), "")
		b.Close("div")

		cols := []TableColumn{{Key: "label", Label: "Label"}}
		for i, ds := range p.Datasets {
			name := ds.Label
			if name == "" {
				name = "Series " + strconv.Itoa(i+1)
			}
			cols = append(cols, TableColumn{Key: strconv.Itoa(i), Label: name, Align: AlignRight})
		}
		var rows []map[string]any
		for i, l := range p.Labels {
			row := map[string]any{"label": l}
			for j, ds := range p.Datasets {
				if i < len(ds.Data) {
					row[strconv.Itoa(j)] = ds.Data[i]
				}
			}
			rows = append(rows, row)
		}
		tp := DefaultTableProps()
		tp.Columns = cols
		tp.Rows = rows
		tp.Compact = true
		tp.Responsive = false
		tp.Class = "hph-sr-only"
		b.Component(Table(tp))
		b.Close("figure")
	})
}
