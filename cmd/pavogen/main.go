// Command pavogen derives pointer-view, inner-access and conversion
// capabilities for wrapper types annotated with //pavo:derive directives.
// It is meant to run via go:generate in the annotated package:
//
//	//go:generate go run github.com/varphone/pavo-traits/cmd/pavogen .
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/varphone/pavo-traits/internal/emit"
	"github.com/varphone/pavo-traits/internal/scan"
)

var (
	outputName string
	dryRun     bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "pavogen [packages]",
	Short: "Derive wrapper capabilities from //pavo:derive directives",
	Long: `pavogen scans the given packages (default ".") for type declarations
annotated with //pavo:derive directives and writes one generated file per
package containing the derived capability methods.

Invalid declarations are rejected before anything is written; every
diagnostic names the offending directive and its source position.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&outputName, "output", "o", "pavo_gen.go", "name of the generated file in each package")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print generated source to stdout instead of writing files")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pkgs, err := scan.Load("", patterns...)
	if err != nil {
		if diags, ok := err.(scan.Diagnostics); ok {
			for _, d := range diags {
				logger.Error().Msg(d.String())
			}
			return fmt.Errorf("%d invalid declaration(s)", len(diags))
		}
		return err
	}

	generated := 0
	for _, pkg := range pkgs {
		if len(pkg.Decls) == 0 {
			logger.Debug().Str("package", pkg.PkgPath).Msg("no directives")
			continue
		}

		src, err := emit.File(pkg)
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "// package %s\n\n%s", pkg.PkgPath, src)
			continue
		}

		path := filepath.Join(pkg.Dir, outputName)
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info().
			Str("package", pkg.PkgPath).
			Str("file", path).
			Int("declarations", len(pkg.Decls)).
			Msg("generated")
		generated++
	}

	if generated == 0 && !dryRun {
		logger.Warn().Msg("no pavo:derive directives found")
	}
	return nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		logger.Fatal().Err(err).Msg("pavogen failed")
	}
}
