package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/tschart/internal/config/loader"
	"github.com/dshills/tschart/internal/logging"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	logLevel string
	logger   *logging.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "tschart",
		Short: "Render time-series charts to SVG",
		Long: `tschart renders time-series charts to SVG from an options file
(TOML, YAML or JSON) and a JSON data file. Options may also be set with
TSCHART_* environment variables, e.g. TSCHART_WIDTH=640 or
TSCHART_AXES_X_LABEL=Time.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch g.logLevel {
			case "debug", "info", "warn", "error":
			default:
				return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", g.logLevel)
			}
			g.logger = logging.New(logging.Config{
				Level:  logging.ParseLevel(g.logLevel),
				Output: cmd.ErrOrStderr(),
				Prefix: "tschart",
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&g.logLevel, "log-level",
		loader.GetEnvOrDefault("TSCHART_LOG_LEVEL", "warn"),
		"Log level (debug, info, warn, error)")

	root.AddCommand(
		newRenderCmd(g),
		newWatchCmd(g),
		newSchemaCmd(),
	)
	return root
}

// log returns the configured logger, or a stderr logger before flags are
// parsed.
func (g *globalOptions) log() *logging.Logger {
	if g.logger == nil {
		g.logger = logging.New(logging.Config{Level: logging.LevelWarn, Output: os.Stderr, Prefix: "tschart"})
	}
	return g.logger
}
