package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/happyplace/internal/preview"
	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

// renderOptions are the inputs of the render command.
type renderOptions struct {
	File    string
	Fixture string
	Set     []string
	Page    bool
	Check   bool
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("file", "f", "", "YAML or JSON props file (- for stdin)")
	renderCmd.Flags().String("fixture", "", "start from a preview fixture by id")
	renderCmd.Flags().StringArray("set", nil, "set a prop, e.g. --set title=Hello --set query.city=Austin")
	renderCmd.Flags().Bool("page", false, "wrap the markup in a document with its behavior scripts")
	renderCmd.Flags().Bool("check", false, "fail when props are unused or rejected")
}

var renderCmd = &cobra.Command{
	Use:   "render <component>",
	Short: "Render a component to HTML",
	Long: `Render a registered component with props from a file, a preview
fixture and --set flags, applied in that order.

Values given to --set are read as YAML scalars, so numbers and booleans keep
their type; dotted keys build nested objects.`,
	Example: `  hph render badge --set text=New --set variant=success
  hph render card-grid --set query.city=Austin --set columns=2
  hph render gallery -f gallery.yaml --page > gallery.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := renderOptions{}
		opts.File, _ = cmd.Flags().GetString("file")
		opts.Fixture, _ = cmd.Flags().GetString("fixture")
		opts.Set, _ = cmd.Flags().GetStringArray("set")
		opts.Page, _ = cmd.Flags().GetBool("page")
		opts.Check, _ = cmd.Flags().GetBool("check")
		return runRender(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), CurrentSettings(), args[0], opts)
	},
}

// buildArgs assembles the props for a render from its sources.
func buildArgs(stdin io.Reader, s Settings, opts renderOptions) (props.Map, error) {
	args := props.Map{}
	if opts.File != "" {
		fileArgs, err := loadPropsFile(stdin, opts.File)
		if err != nil {
			return nil, err
		}
		args = fileArgs
	}
	if opts.Fixture != "" {
		store, err := preview.NewStore(s.PreviewDir)
		if err != nil {
			return nil, err
		}
		f, ok := store.Get(opts.Fixture)
		if !ok {
			return nil, fmt.Errorf("fixture %q not found in %s", opts.Fixture, s.PreviewDir)
		}
		args = props.Merge(args, f.Props)
	}
	set, err := parseSet(opts.Set)
	if err != nil {
		return nil, err
	}
	return props.Merge(args, set), nil
}

func runRender(ctx context.Context, stdin io.Reader, out, errOut io.Writer, s Settings, name string, opts renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	args, err := buildArgs(stdin, s, opts)
	if err != nil {
		return err
	}

	var frag *Fragment
	if s.Server != "" {
		frag, err = NewAPIClient(s.Server).Render(ctx, name, args)
		if err != nil {
			return err
		}
	} else {
		app, err := openLocal(ctx, s)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		frag, err = renderLocal(ctx, app, name, args)
		if err != nil {
			return err
		}
	}

	if len(frag.Unused) > 0 {
		Warning(errOut, "unused props: %s", strings.Join(frag.Unused, ", "))
		if opts.Check {
			return fmt.Errorf("%d unused props", len(frag.Unused))
		}
	}

	if structured(outputFormat) {
		return printData(out, frag, outputFormat)
	}
	if opts.Page {
		return writePage(ctx, out, name, frag)
	}
	_, err = fmt.Fprintln(out, frag.HTML)
	return err
}

func renderLocal(ctx context.Context, app *local, name string, args props.Map) (*Fragment, error) {
	res, err := app.render.Registry().Check(ctx, name, args)
	if err != nil {
		return nil, err
	}
	rctx, collector := hydrate.WithCollector(ctx)
	out, err := app.render.Render(rctx, name, args)
	if err != nil {
		return nil, err
	}
	frag := &Fragment{HTML: out, Unused: res.Unused}
	for _, f := range collector.Families() {
		frag.Families = append(frag.Families, string(f))
	}
	return frag, nil
}

// writePage wraps frag in a standalone document.
func writePage(ctx context.Context, out io.Writer, name string, frag *Fragment) error {
	families := make([]hydrate.Family, 0, len(frag.Families))
	for _, f := range frag.Families {
		families = append(families, hydrate.Family(f))
	}
	scripts, err := html.Render(ctx, hydrate.ScriptsFor("/assets/hydrate", families...))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s\n%s\n</body>\n</html>\n",
		html.Escape(name), frag.HTML, scripts)
	return err
}

// loadPropsFile reads a props object from path, or from stdin for "-".
func loadPropsFile(stdin io.Reader, path string) (props.Map, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path is chosen by the user
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read props: %w", err)
	}
	args := props.Map{}
	if err := yaml.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("failed to parse props %s: %w", path, err)
	}
	return args, nil
}

// parseSet turns key=value pairs into props. Dotted keys nest.
func parseSet(pairs []string) (props.Map, error) {
	out := props.Map{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", pair)
		}
		var value interface{} = raw
		if raw != "" {
			var parsed interface{}
			if err := yaml.Unmarshal([]byte(raw), &parsed); err == nil && parsed != nil {
				value = parsed
			}
		}

		path := strings.Split(key, ".")
		target := out
		for _, part := range path[:len(path)-1] {
			next, ok := target[part].(props.Map)
			if !ok {
				next = props.Map{}
				target[part] = next
			}
			target = next
		}
		target[path[len(path)-1]] = value
	}
	return out, nil
}
