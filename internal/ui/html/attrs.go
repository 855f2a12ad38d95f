package html

import (
	"sort"
	"strings"

	"github.com/a-h/templ"
)

type attr struct {
	name    string
	value   string
	boolean bool
}

// Attrs is an ordered set of HTML attributes. Setting an existing name
// replaces its value in place, so output order is first-set order.
type Attrs struct {
	list  []attr
	index map[string]int
}

// NewAttrs returns an empty attribute set.
func NewAttrs() *Attrs {
	return &Attrs{index: make(map[string]int)}
}

func (a *Attrs) put(at attr) *Attrs {
	if i, ok := a.index[at.name]; ok {
		a.list[i] = at
		return a
	}
	a.index[at.name] = len(a.list)
	a.list = append(a.list, at)
	return a
}

// Set records name="value". Empty values are skipped when rendering.
func (a *Attrs) Set(name, value string) *Attrs {
	return a.put(attr{name: name, value: value})
}

// SetIf records the attribute when cond holds.
func (a *Attrs) SetIf(cond bool, name, value string) *Attrs {
	if cond {
		a.Set(name, value)
	}
	return a
}

// Bool records a boolean attribute such as disabled or required.
// A false value removes a previously set attribute from the output.
func (a *Attrs) Bool(name string, on bool) *Attrs {
	if !on {
		if _, ok := a.index[name]; ok {
			return a.put(attr{name: name})
		}
		return a
	}
	return a.put(attr{name: name, boolean: true})
}

// ID sets the id attribute.
func (a *Attrs) ID(id string) *Attrs {
	return a.Set("id", id)
}

// Class sets the class attribute from a class list.
func (a *Attrs) Class(c *Classes) *Attrs {
	return a.Set("class", c.String())
}

// Href sets a sanitized href.
func (a *Attrs) Href(url string) *Attrs {
	return a.Set("href", URL(url))
}

// Src sets a sanitized src.
func (a *Attrs) Src(url string) *Attrs {
	return a.Set("src", URL(url))
}

// Data sets data-<name>.
func (a *Attrs) Data(name, value string) *Attrs {
	return a.Set("data-"+name, value)
}

// Aria sets aria-<name>.
func (a *Attrs) Aria(name, value string) *Attrs {
	return a.Set("aria-"+name, value)
}

// Merge applies caller supplied attributes in sorted key order. A "class"
// entry is appended to the existing class list instead of replacing it.
func (a *Attrs) Merge(extra map[string]string) *Attrs {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := strings.ToLower(strings.TrimSpace(k))
		if !validName(name) {
			continue
		}
		if name == "class" {
			current, _ := a.Get("class")
			a.Set("class", CN(current, extra[k]))
			continue
		}
		a.Set(name, extra[k])
	}
	return a
}

// Get returns the value recorded for name.
func (a *Attrs) Get(name string) (string, bool) {
	i, ok := a.index[name]
	if !ok {
		return "", false
	}
	return a.list[i].value, true
}

// Render returns the attributes as ` name="value"` pairs with escaped values.
func (a *Attrs) Render() string {
	if a == nil {
		return ""
	}
	var sb strings.Builder
	for _, at := range a.list {
		switch {
		case at.boolean:
			sb.WriteByte(' ')
			sb.WriteString(at.name)
		case at.value != "":
			sb.WriteByte(' ')
			sb.WriteString(at.name)
			sb.WriteString(`="`)
			sb.WriteString(templ.EscapeString(at.value))
			sb.WriteByte('"')
		}
	}
	return sb.String()
}

// RenderAttributes renders a plain map of attributes in sorted key order.
func RenderAttributes(attrs map[string]string) string {
	return NewAttrs().Merge(attrs).Render()
}

// URL sanitizes a URL for use in href and src attributes. Unsafe schemes
// such as javascript: are replaced.
func URL(raw string) string {
	if raw == "" {
		return ""
	}
	return string(templ.URL(raw))
}

// Escape escapes text for HTML output.
func Escape(s string) string {
	return templ.EscapeString(s)
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "on") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == ':', r == '@', r == '.':
		default:
			return false
		}
	}
	return true
}
