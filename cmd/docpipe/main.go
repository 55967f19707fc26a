// Command docpipe is a small demo CLI around the docpipe core: it loads a
// JSON pipeline definition and a YAML document fixture, runs the pipeline,
// and prints the resulting documents. It is the one permitted "outer
// layer" with I/O — the core packages it wraps stay free of CLI/logging
// concerns (§3, §4 of SPEC_FULL.md). Grounded on cli/main.go's cobra root
// command shape in the teacher.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/docpipe"
	"github.com/aledsdavies/docpipe/internal/fixture"
	"github.com/aledsdavies/docpipe/internal/pipelinefmt"
)

func main() {
	var (
		pipelineFile string
		fixtureFile  string
		debug        bool
	)

	rootCmd := &cobra.Command{
		Use:           "docpipe",
		Short:         "Run a document pipeline against a fixture document set",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			return run(logger, pipelineFile, fixtureFile)
		},
	}

	rootCmd.Flags().StringVarP(&pipelineFile, "pipeline", "p", "", "Path to a JSON pipeline definition (required)")
	rootCmd.Flags().StringVarP(&fixtureFile, "fixture", "d", "", "Path to a YAML document fixture (required)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	_ = rootCmd.MarkFlagRequired("pipeline")
	_ = rootCmd.MarkFlagRequired("fixture")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, pipelineFile, fixtureFile string) error {
	pipelineData, err := os.ReadFile(pipelineFile)
	if err != nil {
		return fmt.Errorf("reading pipeline file: %w", err)
	}
	logger.Debug("loaded pipeline file", "path", pipelineFile, "bytes", len(pipelineData))

	stages, err := pipelinefmt.Parse(pipelineData)
	if err != nil {
		return fmt.Errorf("parsing pipeline: %w", err)
	}
	logger.Debug("parsed pipeline", "stages", len(stages))

	fixtureData, err := os.ReadFile(fixtureFile)
	if err != nil {
		return fmt.Errorf("reading fixture file: %w", err)
	}
	set, err := fixture.Load(fixtureData)
	if err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}
	logger.Debug("loaded fixture documents", "count", len(set.Documents))

	pipeline := docpipe.NewPipeline(stages, docpipe.DefaultSerializer{})
	outputs := docpipe.Run(pipeline, set.Documents)

	logger.Info("pipeline executed", "input_documents", len(set.Documents), "output_documents", len(outputs))
	for _, d := range outputs {
		fmt.Println(describeDocument(d))
	}
	return nil
}

func describeDocument(d docpipe.Document) string {
	if d.State != docpipe.Found {
		return fmt.Sprintf("%s (state=%d)", pathString(d.Key.Path), d.State)
	}
	return fmt.Sprintf("%s fields=%d", pathString(d.Key.Path), len(d.Fields))
}

func pathString(path []string) string {
	out := ""
	for i, seg := range path {
		if i > 0 {
			out += "/"
		}
		out += seg
	}
	return out
}
