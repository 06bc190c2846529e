package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/tschart/internal/chart"
	"github.com/dshills/tschart/internal/config/loader"
)

// renderOptions holds the flags shared by render and watch.
type renderOptions struct {
	options   string
	data      string
	output    string
	container string
	noEnv     bool
}

func (ro *renderOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&ro.options, "options", "", "Options file (.toml, .yaml, .yml or .json)")
	f.StringVar(&ro.data, "data", "", "JSON data file: an array of {name, points}")
	f.StringVarP(&ro.output, "output", "o", "-", "Output SVG file, - for stdout")
	f.StringVar(&ro.container, "container", "chart", "Chart id written to the SVG root")
	f.BoolVar(&ro.noEnv, "no-env", false, "Ignore TSCHART_* environment variables")
}

func newRenderCmd(g *globalOptions) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart to SVG",
		Example: `  tschart render --options chart.toml --data series.json -o out.svg
  TSCHART_TYPE=area tschart render --data series.json > out.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildChart(g, ro)
			if err != nil {
				return err
			}
			defer c.Close()
			return writeSVG(cmd.Context(), c, ro.output, cmd.OutOrStdout())
		},
	}
	ro.bind(cmd)
	return cmd
}

// loadOptions reads the options file, if any, and overlays the environment.
func loadOptions(ro *renderOptions) (map[string]any, error) {
	m := make(map[string]any)
	if ro.options != "" {
		var err error
		if m, err = loader.Load(ro.options); err != nil {
			return nil, err
		}
	}
	if !ro.noEnv {
		env, err := loader.NewEnvLoader(loader.DefaultEnvPrefix).Load()
		if err != nil {
			return nil, err
		}
		m = loader.DeepMerge(m, env)
	}
	return m, nil
}

// buildChart creates a chart from the options and data files.
func buildChart(g *globalOptions, ro *renderOptions) (*chart.Chart, error) {
	logger := g.log()

	m, err := loadOptions(ro)
	if err != nil {
		return nil, err
	}
	c, err := chart.New(ro.container, chart.OptionsFromMap(m, logger), chart.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := loadData(c, ro.data); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// loadData replaces the chart's series with the data file's contents.
func loadData(c *chart.Chart, path string) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading data file: %w", err)
	}
	if err := c.LoadJSON(b); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// writeSVG renders the chart to path, or to stdout for "-". Files are
// replaced atomically so viewers never see a partial document.
func writeSVG(ctx context.Context, c *chart.Chart, path string, stdout io.Writer) error {
	if path == "" || path == "-" {
		return c.RenderContext(ctx, stdout)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tschart-*.svg")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := c.RenderContext(ctx, tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
