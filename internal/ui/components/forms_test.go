package components

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

func TestInput_LabelErrorAndType(t *testing.T) {
	var p InputProps
	_, err := props.Normalize(DefaultInputProps(), props.Map{
		"name":     "email",
		"label":    "Email",
		"type":     "bogus",
		"error":    "Enter a valid email",
		"required": "true",
	}, &p)
	require.NoError(t, err)

	root := parse(t, render(t, Input(p)))
	inputs := byTag(root, "input")
	require.Len(t, inputs, 1)
	assert.Equal(t, "text", attr(inputs[0], "type"))
	assert.Equal(t, "hph-input-email", attr(inputs[0], "id"))
	assert.Equal(t, "true", attr(inputs[0], "aria-invalid"))
	assert.Equal(t, "hph-input-email-desc", attr(inputs[0], "aria-describedby"))
	assert.Equal(t, "hph-input-email", attr(byTag(root, "label")[0], "for"))
	assert.Equal(t, "Enter a valid email", textOf(byClass(root, "hph-field__error")[0]))

	assert.Empty(t, render(t, Input(DefaultInputProps())))
}

func TestSelect_SelectedAndPlaceholder(t *testing.T) {
	p := DefaultSelectProps()
	p.Name = "beds"
	p.Placeholder = "Any"
	p.Options = []Option{{Value: "1", Label: "1+"}, {Value: "2", Label: "2+"}}
	p.Value = "2"

	out := render(t, Select(p))
	assert.Contains(t, out, `<option value>Any</option>`)
	assert.Contains(t, out, `<option value="2" selected>2+</option>`)
	assert.Contains(t, out, `<option value="1">1+</option>`)
}

func TestCheckboxAndRadio(t *testing.T) {
	cb := DefaultCheckboxProps()
	cb.Name = "tour"
	cb.Label = "Tour"
	cb.Style = "switch"
	cb.Checked = true
	out := render(t, Checkbox(cb))
	assert.Contains(t, out, `role="switch"`)
	assert.Contains(t, out, " checked")

	rg := DefaultRadioGroupProps()
	rg.Name = "type"
	rg.Options = []Option{{Value: "buy", Label: "Buy"}, {Value: "rent", Label: "Rent"}}
	rg.Value = "rent"
	root := parse(t, render(t, RadioGroup(rg)))
	radios := byTag(root, "input")
	require.Len(t, radios, 2)
	_, checked := hasAttr(radios[1], "checked")
	assert.True(t, checked)
	_, checked = hasAttr(radios[0], "checked")
	assert.False(t, checked)
}

func TestRangeSlider_Dual(t *testing.T) {
	ctx, c := hydrate.WithCollector(context.Background())
	p := DefaultRangeSliderProps()
	p.Name = "price"
	p.Dual = true
	p.Min = 0
	p.Max = 1000000
	p.Step = 50000
	p.ValueMin = 2000000
	p.Currency = "USD"

	root := parse(t, renderCtx(t, ctx, RangeSlider(p)))
	inputs := byTag(root, "input")
	require.Len(t, inputs, 2)
	assert.Equal(t, "price_min", attr(inputs[0], "name"))
	assert.Equal(t, "1000000", attr(inputs[0], "value"))
	assert.Equal(t, "price_max", attr(inputs[1], "name"))
	outputs := byTag(root, "output")
	require.Len(t, outputs, 2)
	assert.Equal(t, "$1,000,000", textOf(outputs[0]))
	assert.Contains(t, c.Families(), hydrate.Range)
}

func TestSearchForm_PrefillsValues(t *testing.T) {
	p := DefaultSearchFormProps()
	p.Values = domain.ListingQuery{City: "Austin", MinBeds: 3, Sort: domain.SortPriceAsc}

	root := parse(t, render(t, SearchForm(p)))
	forms := byTag(root, "form")
	require.Len(t, forms, 1)
	assert.Equal(t, "/listings", attr(forms[0], "action"))
	assert.Equal(t, "get", attr(forms[0], "method"))

	city := findAll(root, func(n *xhtml.Node) bool { return attr(n, "name") == "city" })
	require.Len(t, city, 1)
	assert.Equal(t, "Austin", attr(city[0], "value"))

	beds := findAll(root, func(n *xhtml.Node) bool {
		_, sel := hasAttr(n, "selected")
		return n.Data == "option" && sel
	})
	require.Len(t, beds, 1)
	assert.Equal(t, "3", attr(beds[0], "value"))

	sort := findAll(root, func(n *xhtml.Node) bool { return attr(n, "name") == "sort" })
	require.Len(t, sort, 1)
	assert.Equal(t, "price_asc", attr(sort[0], "value"))
}

func TestContactForm(t *testing.T) {
	ctx, c := hydrate.WithCollector(context.Background())
	p := DefaultContactFormProps()
	p.ListingID = "42"

	out := renderCtx(t, ctx, ContactForm(p))
	root := parse(t, out)
	form := byTag(root, "form")
	require.Len(t, form, 1)
	assert.Equal(t, "form", attr(form[0], "data-hph-component"))
	assert.Equal(t, "/api/inquiries", attr(form[0], "action"))

	hidden := findAll(root, func(n *xhtml.Node) bool { return attr(n, "name") == "listing_id" })
	require.Len(t, hidden, 1)
	assert.Equal(t, "42", attr(hidden[0], "value"))
	assert.Len(t, findAll(root, hasStatus), 1)
	assert.Contains(t, c.Families(), hydrate.Form)
	assert.Equal(t, out, renderCtx(t, ctx, ContactForm(p)))
}

func hasStatus(n *xhtml.Node) bool {
	_, ok := hasAttr(n, "data-hph-form-status")
	return ok
}
