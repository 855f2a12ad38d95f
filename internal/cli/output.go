package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatYML  = "yml"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newTable returns a table writer mirroring to w. Terminals get colored
// headers; pipes get plain light borders.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if isTerminal(w) {
		t.Style().Color.Header = text.Colors{text.Bold, text.FgHiCyan}
	} else {
		t.Style().Options.DrawBorder = false
	}
	return t
}

func rowOf(cells ...interface{}) table.Row {
	return table.Row(cells)
}

// printData writes v as JSON or YAML.
func printData(w io.Writer, v interface{}, format string) error {
	switch strings.ToLower(format) {
	case formatYAML, formatYML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
}

// structured reports whether format asks for machine-readable output.
func structured(format string) bool {
	switch strings.ToLower(format) {
	case formatJSON, formatYAML, formatYML:
		return true
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// plural formats a count with a pluralized noun: "1 listing", "1,204 listings".
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Success prints a success message with a checkmark
func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warning prints a warning message
func Warning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Error prints an error message
func Error(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "✗ "+format+"\n", args...)
}

// Info prints an informational message
func Info(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "ℹ "+format+"\n", args...)
}
