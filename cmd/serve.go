package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantprep/internal/config"
	"github.com/abhisek/quantprep/internal/evaluation"
	"github.com/abhisek/quantprep/internal/llm"
	"github.com/abhisek/quantprep/internal/questiongen"
	"github.com/abhisek/quantprep/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// pipeline bundles everything the commands need.
type pipeline struct {
	cfg       *config.Config
	provider  llm.Provider
	generator *questiongen.LLMGenerator
	evaluator *evaluation.Evaluator
}

// buildPipeline loads configuration and assembles the generation and
// evaluation pipeline. A missing credential for the selected provider is
// fatal here, before anything starts serving.
func buildPipeline(cmd *cobra.Command) (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM(), slog.Default())
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	client := llm.NewStructuredClient(provider, cfg.Structured())

	return &pipeline{
		cfg:       cfg,
		provider:  provider,
		generator: questiongen.New(client, cfg.Generation()),
		evaluator: evaluation.NewEvaluator(client, evaluation.DefaultConfig()),
	}, nil
}

func runServe(cmd *cobra.Command) error {
	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Addr:        p.cfg.ServerAddr,
		GinMode:     p.cfg.GinMode,
		Generator:   p.generator,
		Evaluator:   p.evaluator,
		Provider:    p.provider,
		TestTimeout: p.cfg.LLMTimeout,
	})

	return srv.Run()
}
