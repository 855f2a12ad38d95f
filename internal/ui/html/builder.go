package html

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
)

// Builder accumulates markup for one component render. Errors from nested
// components are kept and reported once by the enclosing component.
type Builder struct {
	ctx context.Context
	sb  strings.Builder
	err error
}

// Context returns the render context.
func (b *Builder) Context() context.Context {
	return b.ctx
}

// Open writes an opening tag.
func (b *Builder) Open(tag string, attrs *Attrs) *Builder {
	b.sb.WriteByte('<')
	b.sb.WriteString(tag)
	b.sb.WriteString(attrs.Render())
	b.sb.WriteByte('>')
	return b
}

// Close writes a closing tag.
func (b *Builder) Close(tag string) *Builder {
	b.sb.WriteString("</")
	b.sb.WriteString(tag)
	b.sb.WriteByte('>')
	return b
}

// Void writes a self-contained element such as img or input.
func (b *Builder) Void(tag string, attrs *Attrs) *Builder {
	return b.Open(tag, attrs)
}

// Element writes a complete element holding escaped text.
func (b *Builder) Element(tag string, attrs *Attrs, text string) *Builder {
	return b.Open(tag, attrs).Text(text).Close(tag)
}

// Text writes escaped text.
func (b *Builder) Text(s string) *Builder {
	b.sb.WriteString(templ.EscapeString(s))
	return b
}

// Textf writes escaped formatted text.
func (b *Builder) Textf(format string, args ...any) *Builder {
	return b.Text(fmt.Sprintf(format, args...))
}

// Raw writes s unescaped. Only trusted or sanitized markup belongs here.
func (b *Builder) Raw(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Component renders a nested component in place.
func (b *Builder) Component(c templ.Component) *Builder {
	if c == nil {
		return b
	}
	if err := c.Render(b.ctx, &b.sb); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// Markup wraps a builder function as a templ component.
func Markup(fn func(b *Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &Builder{ctx: ctx}
		fn(b)
		if b.err != nil {
			return b.err
		}
		_, err := io.WriteString(w, b.sb.String())
		return err
	})
}

// Empty renders nothing. Guard clauses return it.
func Empty() templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error { return nil })
}

// Render renders c to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

var idNamespace = uuid.MustParse("2b6f0f9e-5a0c-4d6e-9c2b-7f1d3c8a4e51")

// AutoID derives a stable DOM id from prefix and seed values, so rendering
// the same props twice produces the same id.
func AutoID(prefix string, seed ...any) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, s := range seed {
		// %#v quotes strings, so ("ab", "c") and ("a", "bc") differ.
		fmt.Fprintf(&sb, "|%#v", s)
	}
	key := sb.String()
	id := uuid.NewSHA1(idNamespace, []byte(key)).String()
	return prefix + "-" + id[:8]
}

// JSON marshals v for a data-* attribute; Attrs escapes it on output.
func JSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
