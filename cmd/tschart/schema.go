package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/tschart/internal/config/schema"
	"github.com/dshills/tschart/internal/model"
)

func newSchemaCmd() *cobra.Command {
	var (
		derived bool
		asYAML  bool
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print every option key with its type and default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asYAML {
				return printDefaultsYAML(cmd.OutOrStdout())
			}
			return printSchemas(cmd.OutOrStdout(), derived)
		},
	}
	cmd.Flags().BoolVar(&derived, "derived", false, "Include derived keys computed by the chart")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the defaults as a YAML options file")
	return cmd
}

// sectionNames labels the two brush schemas by brush type.
func sectionNames() []string {
	var names []string
	brushes := []model.BrushType{model.BrushX, model.BrushY}
	for _, s := range model.Schemas() {
		name := s.Name()
		if name == model.StoreBrush && len(brushes) > 0 {
			name = fmt.Sprintf("%s (%s)", name, brushes[0])
			brushes = brushes[1:]
		}
		names = append(names, name)
	}
	return names
}

func printSchemas(w io.Writer, derived bool) error {
	names := sectionNames()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, s := range model.Schemas() {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "[%s]\n", names[i])
		for _, r := range s.Rules() {
			if computed(r) && !derived {
				continue
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", r.Key, r.Summary(), formatDefault(r), r.Doc)
		}
	}
	return tw.Flush()
}

// computed reports whether the chart owns the key. Users cannot set it.
func computed(r *schema.Rule) bool {
	return r.Derived() || r.Type == schema.TypeHandle
}

func formatDefault(r *schema.Rule) string {
	switch v := r.Default.(type) {
	case nil:
		return "-"
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// printDefaultsYAML writes an options file holding every settable key at its
// default. The brush section uses the x brush defaults.
func printDefaultsYAML(w io.Writer) error {
	doc := make(map[string]map[string]any)
	for _, s := range model.Schemas() {
		if _, seen := doc[s.Name()]; seen {
			continue
		}
		section := make(map[string]any)
		for _, r := range s.Rules() {
			if computed(r) || r.Default == nil {
				continue
			}
			section[r.Key] = r.Default
		}
		doc[s.Name()] = section
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
