package main

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/tschart/internal/config/watcher"
)

func newWatchCmd(g *globalOptions) *cobra.Command {
	ro := &renderOptions{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the chart whenever the options or data file changes",
		Long: `watch renders the chart once and then again after every change to the
options or data file. Data changes update the live chart so only the affected
layers are redrawn; options changes rebuild it.`,
		Example: `  tschart watch --options chart.yaml --data series.json -o out.svg`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ro.output == "" || ro.output == "-" {
				return errors.New("watch needs an output file")
			}
			if ro.options == "" && ro.data == "" {
				return errors.New("nothing to watch: pass --options or --data")
			}
			return runWatch(cmd, g, ro, debounce)
		},
	}
	ro.bind(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 150*time.Millisecond, "Quiet period before re-rendering")
	return cmd
}

// runWatch serializes every chart update on the calling goroutine.
func runWatch(cmd *cobra.Command, g *globalOptions, ro *renderOptions, debounce time.Duration) error {
	ctx := cmd.Context()
	logger := g.log().WithComponent("watch")

	w, err := watcher.New(watcher.WithDebounce(debounce))
	if err != nil {
		return err
	}
	defer w.Close()

	for _, p := range []string{ro.options, ro.data} {
		if p == "" {
			continue
		}
		if err := w.Watch(p); err != nil {
			return err
		}
	}

	c, err := buildChart(g, ro)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	if err := writeSVG(ctx, c, ro.output, cmd.OutOrStdout()); err != nil {
		return err
	}
	logger.Info("rendered %s, watching %d files", ro.output, len(w.WatchedFiles()))

	optionsPath := absPath(ro.options)
	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
				logger.Debug("%s %s, waiting for it to come back", ev.Path, ev.Op)
				continue
			}

			if ev.Path == optionsPath {
				next, err := buildChart(g, ro)
				if err != nil {
					logger.Warn("options reload failed: %v", err)
					continue
				}
				_ = c.Close()
				c = next
			} else if err := loadData(c, ro.data); err != nil {
				logger.Warn("data reload failed: %v", err)
				continue
			}

			if err := writeSVG(ctx, c, ro.output, cmd.OutOrStdout()); err != nil {
				logger.Error("render failed: %v", err)
				continue
			}
			logger.WithField("layers", c.Metrics().Snapshot().LayersPainted).
				Info("re-rendered after %s of %s", ev.Op, filepath.Base(ev.Path))
		}
	}
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
