package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/happyplace/internal/preview"
	"github.com/ericfisherdev/happyplace/internal/registry"
)

func init() {
	rootCmd.AddCommand(componentsCmd)
	rootCmd.AddCommand(fixturesCmd)

	componentsCmd.Flags().StringP("group", "g", "", "only list one group (atoms, forms, navigation, overlay, data)")
}

// componentInfo is the printable form of a registry entry.
type componentInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Group       string   `json:"group" yaml:"group"`
	Description string   `json:"description" yaml:"description"`
	Bound       bool     `json:"bound" yaml:"bound"`
	Families    []string `json:"families,omitempty" yaml:"families,omitempty"`
}

func componentInfos(reg *registry.Registry, group string) []componentInfo {
	var out []componentInfo
	for _, e := range reg.Entries() {
		if group != "" && !strings.EqualFold(e.Group, group) {
			continue
		}
		info := componentInfo{Name: e.Name, Group: e.Group, Description: e.Description, Bound: e.Bound}
		for _, f := range e.Families {
			info.Families = append(info.Families, string(f))
		}
		out = append(out, info)
	}
	return out
}

var componentsCmd = &cobra.Command{
	Use:     "components",
	Short:   "List the registered components",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		group, _ := cmd.Flags().GetString("group")
		// the catalog does not depend on data, so no store is opened
		reg := registry.New(registry.Deps{Logger: cliLogger()})
		return printComponents(cmd.OutOrStdout(), componentInfos(reg, group), outputFormat)
	},
}

func printComponents(w io.Writer, infos []componentInfo, format string) error {
	if structured(format) {
		return printData(w, infos, format)
	}
	t := newTable(w)
	t.AppendHeader(rowOf("Name", "Group", "Data", "Behavior", "Description"))
	for _, c := range infos {
		data := ""
		if c.Bound {
			data = "✓"
		}
		t.AppendRow(rowOf(c.Name, c.Group, data, strings.Join(c.Families, ","), truncate(c.Description, 50)))
	}
	t.AppendFooter(rowOf("", "", "", "", plural(len(infos), "component")))
	t.Render()
	return nil
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures [component]",
	Short: "List preview fixtures",
	Long:  `List the prop sets in the preview directory, optionally for one component.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := CurrentSettings()
		store, err := preview.NewStore(s.PreviewDir)
		if err != nil {
			// the store keeps the files that did load
			Warning(cmd.ErrOrStderr(), "%v", err)
		}
		fixtures := store.All()
		if len(args) == 1 {
			fixtures = store.ForComponent(args[0])
		}
		return printFixtures(cmd.OutOrStdout(), fixtures, outputFormat)
	},
}

func printFixtures(w io.Writer, fixtures []preview.Fixture, format string) error {
	if structured(format) {
		return printData(w, fixtures, format)
	}
	if len(fixtures) == 0 {
		Info(w, "No fixtures found")
		return nil
	}
	t := newTable(w)
	t.AppendHeader(rowOf("ID", "Component", "Title", "Props"))
	for _, f := range fixtures {
		t.AppendRow(rowOf(f.ID, f.Component, truncate(f.Title, 40), len(f.Props)))
	}
	t.Render()
	return nil
}
