// Package format turns listing values into display strings.
package format

import (
	"bytes"
	stdhtml "html"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	policy = bluemonday.UGCPolicy()
)

// Money formats whole dollars with thousands separators: $1,250,000.
func Money(amount int64) string {
	if amount < 0 {
		return "-$" + humanize.Comma(-amount)
	}
	return "$" + humanize.Comma(amount)
}

// CompactMoney abbreviates large amounts: $1.25M, $850K, $999. Amounts are
// rounded before the unit is picked, so $999,999 is $1M rather than $1000K.
func CompactMoney(amount int64) string {
	abs := amount
	sign := ""
	if abs < 0 {
		abs = -abs
		sign = "-"
	}
	if abs < 1_000 {
		return sign + "$" + strconv.FormatInt(abs, 10)
	}
	units := []struct {
		suffix string
		size   int64
		places int
	}{
		{"K", 1_000, 1},
		{"M", 1_000_000, 2},
		{"B", 1_000_000_000, 2},
	}
	for i, u := range units {
		step := u.size / pow10(u.places)
		steps := (abs + step/2) / step
		if steps >= 1000*pow10(u.places) && i < len(units)-1 {
			continue
		}
		return sign + "$" + scaled(steps, u.places) + u.suffix
	}
	return ""
}

func pow10(n int) int64 {
	p := int64(1)
	for ; n > 0; n-- {
		p *= 10
	}
	return p
}

// scaled writes n/10^places without trailing zeros.
func scaled(n int64, places int) string {
	div := pow10(places)
	whole := strconv.FormatInt(n/div, 10)
	frac := n % div
	if frac == 0 {
		return whole
	}
	digits := strconv.FormatInt(frac, 10)
	for len(digits) < places {
		digits = "0" + digits
	}
	return whole + "." + strings.TrimRight(digits, "0")
}

// Number formats an integer with thousands separators.
func Number(n int) string {
	return humanize.Comma(int64(n))
}

// Decimal formats f with at most places decimals and no trailing zeros.
func Decimal(f float64, places int) string {
	return trimFloat(f, places)
}

// Acres formats a lot size given in acres.
func Acres(lot float64) string {
	if lot <= 0 {
		return ""
	}
	unit := " acres"
	if lot == 1 {
		unit = " acre"
	}
	return trimFloat(lot, 2) + unit
}

// Plural returns "1 bed" / "3 beds" style counts.
func Plural(n float64, singular, plural string) string {
	word := plural
	if n == 1 {
		word = singular
	}
	return trimFloat(n, 1) + " " + word
}

// Initials returns up to two uppercase initials for a name: "John Doe" -> "JD".
func Initials(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '.'
	})
	var out []rune
	for _, w := range words {
		r := []rune(w)
		if len(r) == 0 || !unicode.IsLetter(r[0]) {
			continue
		}
		out = append(out, unicode.ToUpper(r[0]))
	}
	switch len(out) {
	case 0:
		return ""
	case 1:
		return string(out)
	default:
		return string([]rune{out[0], out[len(out)-1]})
	}
}

// Markdown renders Markdown to sanitized HTML. Rendering errors yield "".
func Markdown(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return policy.Sanitize(buf.String())
}

// Sanitize strips unsafe markup from user supplied HTML.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}

// Excerpt returns unescaped plain text cut at a word boundary with an
// ellipsis. Callers escape it for output.
func Excerpt(text string, words int) string {
	fields := strings.Fields(stdhtml.UnescapeString(bluemonday.StrictPolicy().Sanitize(text)))
	if words <= 0 || len(fields) <= words {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:words], " ") + "…"
}

func trimFloat(f float64, places int) string {
	s := strconv.FormatFloat(f, 'f', places, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
