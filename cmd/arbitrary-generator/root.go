package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"arbitrary-generator/internal/config"
	"arbitrary-generator/internal/logging"
)

const (
	flagDir    = "dir"
	flagConfig = "config"
	flagPkg    = "pkg"
	flagType   = "type"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arbitrary-generator",
		Short: "Generate random-construction routines for Go types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String(flagDir, "", "working directory package patterns are resolved against")
	logging.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newGenCmd(), newInspectCmd(), newInitCmd())

	return cmd
}

// selection is the type selection shared by gen and inspect.
type selection struct {
	configPath string
	pkg        string
	types      []string
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.configPath, flagConfig, "c", "", "arbitrary.yaml to read")
	cmd.Flags().StringVar(&s.pkg, flagPkg, "", "package pattern holding the types (overrides config)")
	cmd.Flags().StringSliceVarP(&s.types, flagType, "t", nil, "comma-separated type names (overrides config)")
}

// load reads the config file, if any, and applies flag overrides.
func (s *selection) load() (*config.File, error) {
	cfg := config.Default()

	if s.configPath != "" {
		var err error

		cfg, err = config.LoadFile(s.configPath)
		if err != nil {
			return nil, err
		}
	}

	if s.pkg != "" {
		cfg.Package = s.pkg
	}

	if len(s.types) > 0 {
		cfg.Types = s.types
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// env returns the working directory and logger of cmd.
func env(cmd *cobra.Command) (string, *slog.Logger, error) {
	dir, err := cmd.Flags().GetString(flagDir)
	if err != nil {
		return "", nil, fmt.Errorf("reading flag %s: %w", flagDir, err)
	}

	logger, err := logging.FromCommand(cmd)
	if err != nil {
		return "", nil, err
	}

	return dir, logger, nil
}
