// Package components renders the theme's template parts. Every component
// takes a typed props struct, starts from its Default*Props and returns a
// templ.Component. Guard clauses render nothing when required data is missing.
package components

import (
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

// Size is the shared size scale.
type Size string

const (
	SizeXS Size = "xs"
	SizeSM Size = "sm"
	SizeMD Size = "md"
	SizeLG Size = "lg"
	SizeXL Size = "xl"
)

// Align is horizontal alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

func alignOr(a Align, fallback Align) Align {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return a
	}
	return fallback
}

// Option is a value/label pair for selects, radio groups and sort menus.
type Option struct {
	Value    string `prop:"value" json:"value" yaml:"value"`
	Label    string `prop:"label" json:"label" yaml:"label"`
	Disabled bool   `prop:"disabled" json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Link is a labelled URL.
type Link struct {
	Label string `prop:"label" json:"label" yaml:"label"`
	URL   string `prop:"url" json:"url" yaml:"url"`
}

// root builds the attributes shared by every component root: id, classes
// and caller supplied extras.
func root(id string, classes *html.Classes, extra map[string]string) *html.Attrs {
	return html.NewAttrs().
		SetIf(id != "", "id", id).
		Class(classes).
		Merge(extra)
}

func headingLevel(level, fallback int) string {
	if level < 1 || level > 6 {
		level = fallback
	}
	return "h" + string(rune('0'+level))
}

func ratioClass(prefix, ratio string) string {
	switch ratio {
	case "1:1", "4:3", "3:2", "16:9", "21:9":
	default:
		ratio = "4:3"
	}
	b := []byte(ratio)
	for i := range b {
		if b[i] == ':' {
			b[i] = '-'
		}
	}
	return prefix + "--" + string(b)
}
