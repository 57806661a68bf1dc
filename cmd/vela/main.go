package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vela/internal/config"
	"github.com/vango-dev/vela/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	out    io.Writer
	errOut io.Writer

	configDir string
	logLevel  string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	errors.AutoColors(os.Stderr)

	a := &app{out: os.Stdout, errOut: os.Stderr}
	if err := a.rootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vela",
		Short: "Tools for the vela component runtime",
		Long: `Vela is a component runtime with a batched scheduler, an
order-preserving hydration reconciler and CSS keyframe transitions.

This tool drives the runtime from the command line:

  • hydrate   adopt server markup with a client template and report the cost
  • render    server-render a static template to HTML
  • keyframes generate the @keyframes CSS for a built-in transition
  • inspect   serve metrics, DOM snapshots and live runtime events`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	rootCmd.PersistentFlags().StringVarP(&a.configDir, "config", "c", ".", "Directory containing vela.yaml")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		a.hydrateCmd(),
		a.renderCmd(),
		a.keyframesCmd(),
		a.inspectCmd(),
		a.initCmd(),
		a.versionCmd(),
	)
	return rootCmd
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOptional(a.configDir)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return errors.New("E301").WithDetail(err.Error())
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	a.logger.Debug("configuration loaded", "path", cfg.Path(), "level", level)
	return nil
}

// readInput reads a file argument, or stdin for "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", errors.New("E301").WithDetail(fmt.Sprintf("cannot read %s", name)).Wrap(err)
	}
	return string(data), nil
}
