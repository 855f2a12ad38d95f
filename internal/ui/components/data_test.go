package components

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

func TestTable(t *testing.T) {
	p := DefaultTableProps()
	p.Columns = []TableColumn{
		{Key: "address", Label: "Address"},
		{Key: "price", Label: "Price", Format: "money", Align: AlignRight, Sortable: true},
	}
	p.Rows = []map[string]any{{"address": "12 Maple St", "price": 1250000}}
	p.SortKey = "price"
	p.BaseURL = "/dashboard?page=3"

	root := parse(t, render(t, Table(p)))
	cells := byTag(root, "td")
	require.Len(t, cells, 2)
	assert.Equal(t, "$1,250,000", textOf(cells[1]))
	assert.True(t, hasClass(cells[1], "hph-table__td--right"))

	sort := byClass(root, "hph-table__sort")
	require.Len(t, sort, 1)
	assert.Equal(t, "/dashboard?order=desc&orderby=price", attr(sort[0], "href"))
	assert.Equal(t, "ascending", attr(byTag(root, "th")[1], "aria-sort"))

	p.Rows = nil
	assert.Contains(t, render(t, Table(p)), "No data available")
	assert.Empty(t, render(t, Table(DefaultTableProps())))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "$850K", formatValue(850000, "money_compact"))
	assert.Equal(t, "12.5%", formatValue(12.5, "percent"))
	assert.Equal(t, "2,400", formatValue("2400", "number"))
	assert.Equal(t, "Austin", formatValue("Austin", "number"))
	assert.Equal(t, "", formatValue(nil, "money"))
	assert.Equal(t, "true", formatValue(true, ""))
}

func TestStat_Trend(t *testing.T) {
	p := DefaultStatProps()
	p.Label = "Active listings"
	p.Number = 1200
	p.Change = -4.3

	root := parse(t, render(t, Stat(p)))
	assert.Equal(t, "1,200", textOf(byClass(root, "hph-stat__value")[0]))
	change := byClass(root, "hph-stat__change--down")
	require.Len(t, change, 1)
	assert.Equal(t, "-4.3%", textOf(change[0]))

	assert.Empty(t, render(t, Stat(DefaultStatProps())))
	assert.Empty(t, render(t, StatsGrid(DefaultStatsGridProps())))
}

func TestChart(t *testing.T) {
	ctx, c := hydrate.WithCollector(context.Background())
	p := DefaultChartProps()
	p.Type = "radar"
	p.Title = "Median price"
	p.Labels = []string{"Jan", "Feb"}
	p.Datasets = []ChartDataset{{Label: "Austin", Data: []float64{500000, 510000}}}

	out := renderCtx(t, ctx, Chart(p))
	assert.Contains(t, out, `data-hph-component="chart"`)
	assert.Contains(t, out, "hph-chart--line")
	assert.Contains(t, out, `aria-label="Median price"`)
	assert.Contains(t, c.Families(), hydrate.Chart)

	root := parse(t, out)
	assert.Len(t, byTag(root, "tr"), 3)
	assert.Empty(t, render(t, Chart(DefaultChartProps())))
}
