package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arbitrary-generator/internal/diagnostic"
	"arbitrary-generator/internal/gen"
)

func newGenCmd() *cobra.Command {
	var (
		sel   selection
		out   string
		quick bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write the generated file for the selected types",
		Example: `  arbitrary-generator gen --type Shape,Point
  arbitrary-generator gen --config arbitrary.yaml --out testdata_gen.go`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, logger, err := env(cmd)
			if err != nil {
				return err
			}

			cfg, err := sel.load()
			if err != nil {
				return err
			}

			if quick {
				cfg.QuickGenerator = true
			}

			res, err := gen.Run(cfg, dir, logger)
			if err != nil {
				return err
			}

			if err := diagnostic.Fprint(cmd.ErrOrStderr(), &res.Diagnostics); err != nil {
				return err
			}

			if res.Diagnostics.HasErrors() {
				return fmt.Errorf("generation failed with %d error(s)", len(res.Diagnostics.Errors))
			}

			path, err := gen.WriteResult(res, out)
			if err != nil {
				return err
			}

			logger.Info("wrote generated file", "path", path, "routines", len(res.Shapes))

			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; relative paths are inside the package directory")
	cmd.Flags().BoolVar(&quick, "quick", false, "also emit testing/quick.Generator methods for struct types")

	return cmd
}
