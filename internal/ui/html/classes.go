// Package html builds class lists, attributes and markup for UI components.
package html

import "strings"

// Classes is an ordered, de-duplicated list of CSS class tokens.
type Classes struct {
	tokens []string
	seen   map[string]struct{}
}

// NewClasses returns a list holding the given tokens. Each argument may
// contain several space separated classes.
func NewClasses(tokens ...string) *Classes {
	c := &Classes{seen: make(map[string]struct{})}
	return c.Add(tokens...)
}

// Add appends tokens that are not already present.
func (c *Classes) Add(tokens ...string) *Classes {
	for _, input := range tokens {
		for _, tok := range strings.Fields(input) {
			if _, dup := c.seen[tok]; dup {
				continue
			}
			c.seen[tok] = struct{}{}
			c.tokens = append(c.tokens, tok)
		}
	}
	return c
}

// AddIf appends tokens when cond holds.
func (c *Classes) AddIf(cond bool, tokens ...string) *Classes {
	if cond {
		c.Add(tokens...)
	}
	return c
}

// Has reports whether tok is in the list.
func (c *Classes) Has(tok string) bool {
	_, ok := c.seen[tok]
	return ok
}

// Tokens returns a copy of the tokens in insertion order.
func (c *Classes) Tokens() []string {
	return append([]string(nil), c.tokens...)
}

// String joins the tokens with single spaces.
func (c *Classes) String() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.tokens, " ")
}

// CN merges class strings, dropping duplicates and empty input.
func CN(inputs ...string) string {
	return NewClasses(inputs...).String()
}
