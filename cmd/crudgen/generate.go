package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syssam/crudgen/compiler"
	"github.com/syssam/crudgen/compiler/gen"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the CRUD API from the schema",
		Long: `Generate compiles the schema document and writes the artifact tree to the
output directory. Files whose content did not change are left untouched, and
files generated by the previous run but no longer produced are removed
(disable with --disable writer/clean).

Examples:
  # Use ./crudgen.yaml
  crudgen generate

  # Explicit schema and output
  crudgen generate --schema schema.yaml --output ./src/generated

  # List the artifacts without writing them
  crudgen generate --dry-run
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			if dryRun {
				return listArtifacts(cmd.OutOrStdout(), s, log)
			}
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), s, log)
		},
	}
	addGenerateFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "List the artifacts without writing them")
	return cmd
}

// runGenerate runs one generation and prints its summary.
func runGenerate(ctx context.Context, out io.Writer, s *Settings, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := s.Config(log)
	if err != nil {
		return err
	}
	exts, err := s.Extensions()
	if err != nil {
		return err
	}
	var (
		start   = time.Now()
		metrics gen.WriterMetrics
	)
	err = compiler.Generate(s.Schema, cfg,
		compiler.Extensions(exts...),
		compiler.Context(ctx),
		compiler.Metrics(&metrics),
	)
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(out, "✗ generation failed")
		return err
	}
	printSummary(out, s.Output, &metrics, time.Since(start))
	return nil
}

func listArtifacts(out io.Writer, s *Settings, log *zap.Logger) error {
	cfg, err := s.Config(log)
	if err != nil {
		return err
	}
	exts, err := s.Extensions()
	if err != nil {
		return err
	}
	tree, err := compiler.Build(s.Schema, cfg, compiler.Extensions(exts...))
	if err != nil {
		return err
	}
	gray := color.New(color.FgHiBlack)
	for _, a := range tree.Artifacts() {
		fmt.Fprintf(out, "%s", a.Path())
		gray.Fprintf(out, " (%s)\n", a.Kind)
	}
	color.New(color.Bold, color.FgCyan).Fprintf(out, "%d artifacts\n", tree.Len())
	return nil
}

func printSummary(out io.Writer, target string, m *gen.WriterMetrics, took time.Duration) {
	color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ generated %s", target)
	color.New(color.FgHiBlack).Fprintf(out, " in %s\n", took.Round(time.Millisecond))
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(out, "  written:   %d (%d bytes)\n", m.FilesWritten, m.TotalBytes)
	cyan.Fprintf(out, "  unchanged: %d\n", m.FilesUnchanged)
	cyan.Fprintf(out, "  removed:   %d\n", m.FilesRemoved)
}
