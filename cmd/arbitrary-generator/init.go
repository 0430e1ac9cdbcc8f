package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"arbitrary-generator/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		path       string
		pkg        string
		out        string
		positional []string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init TYPE...",
		Short: "Write a starter arbitrary.yaml",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default(args...)
			cfg.Positional = positional

			if pkg != "" {
				cfg.Package = pkg
			}

			if out != "" {
				cfg.Output = out
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			if err := config.WriteFile(cfg, path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "arbitrary.yaml", "config file to write")
	cmd.Flags().StringVar(&pkg, "pkg", "", "package pattern")
	cmd.Flags().StringVarP(&out, "out", "o", "", "generated file name")
	cmd.Flags().StringSliceVar(&positional, "positional", nil, "struct types built with unkeyed literals")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
