package props

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

func TestMerge(t *testing.T) {
	defaults := Map{
		"variant": "default",
		"size":    "md",
		"image":   map[string]any{"src": "", "alt": "Listing photo", "lazy": true},
		"items":   []any{"a", "b"},
	}
	args := Map{
		"size":  "lg",
		"image": map[string]any{"src": "/house.jpg"},
		"items": []any{"c"},
		"extra": 1,
	}

	got := Merge(defaults, args)

	want := Map{
		"variant": "default",
		"size":    "lg",
		"image":   Map{"src": "/house.jpg", "alt": "Listing photo", "lazy": true},
		"items":   []any{"c"},
		"extra":   1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	// inputs are untouched
	assert.Equal(t, "md", defaults["size"])
	assert.Equal(t, map[string]any{"src": "/house.jpg"}, args["image"])
}

type imageProps struct {
	Src  string `prop:"src"`
	Alt  string `prop:"alt"`
	Lazy bool   `prop:"lazy"`
}

type sampleProps struct {
	Variant string             `prop:"variant"`
	Size    string             `prop:"size"`
	Show    bool               `prop:"show"`
	Columns int                `prop:"columns"`
	Tags    []string           `prop:"tags"`
	Image   imageProps         `prop:"image"`
	Data    map[string]string  `prop:"data"`
	Sort    domain.ListingSort `prop:"sort"`
}

func defaultSample() sampleProps {
	return sampleProps{
		Variant: "default",
		Size:    "md",
		Show:    true,
		Columns: 3,
		Tags:    []string{"one", "two", "three"},
		Image:   imageProps{Alt: "Listing photo", Lazy: true},
		Data:    map[string]string{"a": "1"},
		Sort:    domain.SortNewest,
	}
}

func TestNormalize_DefaultsApplyToUnsetFields(t *testing.T) {
	var p sampleProps
	res, err := Normalize(defaultSample(), Map{"size": "lg"}, &p)
	require.NoError(t, err)
	assert.Empty(t, res.Unused)

	assert.Equal(t, "default", p.Variant)
	assert.Equal(t, "lg", p.Size)
	assert.True(t, p.Show)
	assert.Equal(t, 3, p.Columns)
	assert.Equal(t, []string{"one", "two", "three"}, p.Tags)
}

func TestNormalize_WeakTyping(t *testing.T) {
	var p sampleProps
	_, err := Normalize(defaultSample(), Map{"show": "0", "columns": "4", "sort": "price_asc"}, &p)
	require.NoError(t, err)

	assert.False(t, p.Show)
	assert.Equal(t, 4, p.Columns)
	assert.Equal(t, domain.SortPriceAsc, p.Sort)
}

func TestNormalize_NestedMergeAndListReplace(t *testing.T) {
	var p sampleProps
	_, err := Normalize(defaultSample(), Map{
		"image": map[string]any{"src": "/house.jpg"},
		"tags":  []any{"solo"},
		"data":  map[string]any{"b": "2"},
	}, &p)
	require.NoError(t, err)

	assert.Equal(t, imageProps{Src: "/house.jpg", Alt: "Listing photo", Lazy: true}, p.Image)
	assert.Equal(t, []string{"solo"}, p.Tags)
	assert.Equal(t, map[string]string{"b": "2"}, p.Data)
}

func TestNormalize_CommaSeparatedList(t *testing.T) {
	var p sampleProps
	_, err := Normalize(defaultSample(), Map{"tags": "pool, garage"}, &p)
	require.NoError(t, err)
	assert.Equal(t, []string{"pool", "garage"}, p.Tags)
}

func TestNormalize_ReportsUnusedKeys(t *testing.T) {
	var p sampleProps
	res, err := Normalize(defaultSample(), Map{"zeta": 1, "alpha": 2}, &p)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, res.Unused)
}

func TestNormalize_InvalidInputKeepsDefaults(t *testing.T) {
	var p sampleProps
	_, err := Normalize(defaultSample(), Map{"image": "not-an-object"}, &p)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, defaultSample(), p)
}

func TestNormalize_DefaultsNotMutated(t *testing.T) {
	defaults := defaultSample()
	var p sampleProps
	_, err := Normalize(defaults, Map{"tags": []any{"x"}, "data": map[string]any{"z": "9"}}, &p)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, defaults.Tags)
	assert.Equal(t, map[string]string{"a": "1"}, defaults.Data)
}

func TestEnum(t *testing.T) {
	assert.Equal(t, "primary", Enum("primary", "default", "default", "primary"))
	assert.Equal(t, "default", Enum("neon", "default", "default", "primary"))
	assert.Equal(t, domain.SortNewest, Enum(domain.ListingSort("bogus"), domain.SortNewest, domain.SortNewest, domain.SortPriceAsc))
}

func TestMapAccessors(t *testing.T) {
	m := Map{
		"s":     "hello",
		"n":     42,
		"ns":    "7",
		"f":     "2.5",
		"b":     "yes",
		"b0":    0,
		"list":  []any{"a", 1, "b"},
		"csv":   "x, y",
		"items": []any{map[string]any{"label": "Home"}, "skip"},
	}

	assert.Equal(t, "hello", m.String("s"))
	assert.Equal(t, "42", m.String("n"))
	assert.Equal(t, "", m.String("missing"))
	assert.Equal(t, 42, m.Int("n", 0))
	assert.Equal(t, 7, m.Int("ns", 0))
	assert.Equal(t, 9, m.Int("s", 9))
	assert.InDelta(t, 2.5, m.Float("f", 0), 0.0001)
	assert.True(t, m.Bool("b"))
	assert.False(t, m.Bool("b0"))
	assert.Equal(t, []string{"a", "b"}, m.Strings("list"))
	assert.Equal(t, []string{"x", "y"}, m.Strings("csv"))
	require.Len(t, m.Maps("items"), 1)
	assert.Equal(t, "Home", m.Maps("items")[0].String("label"))
	assert.True(t, m.Has("s"))
	assert.False(t, m.Has("nope"))
}
