package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantprep/internal/llm"
)

var pingCmd = &cobra.Command{
	Use:   "ping [prompt]",
	Short: "Check connectivity to the configured LLM provider",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := "Say 'Hello, AI is working!'"
		if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
			prompt = args[0]
		}

		p, err := buildPipeline(cmd)
		if err != nil {
			return err
		}

		ctx := llm.WithPurpose(cmd.Context(), "connectivity")
		if p.cfg.LLMTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.cfg.LLMTimeout)
			defer cancel()
		}

		resp, err := p.provider.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
			MaxTokens: 256,
		})
		if err != nil {
			return fmt.Errorf("provider %s unreachable: %w", p.provider.ModelID(), err)
		}

		fmt.Println(string(resp.Content))
		return nil
	},
}
