// Package main provides the CLI entry point for modelgen, a tool that
// generates a target-language data model graph from JSON Schema,
// OpenAPI, GraphQL SDL, or example data (JSON/YAML/CSV/dict) documents.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/koxudaxi/go-datamodel-codegen/diag"
	"github.com/koxudaxi/go-datamodel-codegen/log"
	"github.com/koxudaxi/go-datamodel-codegen/modelgen"
	"github.com/koxudaxi/go-datamodel-codegen/profile"
	"github.com/koxudaxi/go-datamodel-codegen/version"
)

func main() {
	cfg := modelgen.NewConfig()
	profCfg := profile.NewConfig()
	logCfg := log.NewConfig()

	var profiler *profile.Profiler

	rootCmd := &cobra.Command{
		Use:     "modelgen [flags] <file.yaml|file.json|file.graphql> [file2 ...]",
		Short:   "Generate a data model graph from schema or example documents",
		Version: version.Version,
		Long: `modelgen resolves JSON Schema, OpenAPI, GraphQL SDL, or example data
documents into a finalized, deduplicated, dependency-ordered model graph,
partitioned into modules, and prints it as JSON. Use "-" to read a single
document from stdin.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			slog.SetDefault(slog.New(handler))

			profiler = profCfg.NewProfiler()

			return profiler.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Stop()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// logDiagnostics emits every diagnostic from a pipeline run through the
// process-wide default slog logger, at a level keyed off each
// diagnostic's severity.
func logDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		level := slog.LevelInfo
		if d.Severity == diag.SeverityWarning {
			level = slog.LevelWarn
		}

		slog.Default().Log(context.Background(), level, d.Message,
			"code", d.Code, "path", d.Path, "source_uri", d.SourceURI)
	}
}

func run(ctx context.Context, cfg *modelgen.Config, args []string) error {
	pipeline, err := cfg.NewPipeline()
	if err != nil {
		return err
	}

	var sources []modelgen.Source

	for _, arg := range args {
		var data []byte

		if arg == "-" {
			data, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			sources = append(sources, modelgen.Source{URI: "stdin", Content: data})

			continue
		}

		data, err = os.ReadFile(arg)
		if err != nil {
			return err
		}

		sources = append(sources, modelgen.Source{URI: arg, Content: data})
	}

	result, err := pipeline.Generate(ctx, sources)
	if err != nil {
		return err
	}

	logDiagnostics(result.Diagnostics)

	report := modelgen.BuildReport(result)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	out = append(out, '\n')

	if cfg.Output == "" || cfg.Output == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(cfg.Output, out, 0o644)
	}

	return err
}
