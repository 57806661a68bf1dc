package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vela/internal/config"
	"github.com/vango-dev/vela/internal/errors"
)

func (a *app) initCmd() *cobra.Command {
	var (
		force  bool
		strict bool
		target string
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default vela.yaml",
		Long: `Init writes vela.yaml with the default settings into dir, or the
current directory.`,
		Example: `  vela init
  vela init site --strict --export s3://assets/vela.css`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if config.Exists(dir) && !force {
				return errors.New("E301").
					WithDetail(filepath.Join(dir, config.ConfigFileName) + " already exists").
					WithSuggestion("Use --force to overwrite it")
			}

			cfg := config.New()
			cfg.Runtime.StrictHydration = strict
			cfg.Export.Target = target
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing vela.yaml")
	cmd.Flags().BoolVar(&strict, "strict", false, "Enable strict hydration")
	cmd.Flags().StringVar(&target, "export", "", "Keyframes export target")

	return cmd
}
