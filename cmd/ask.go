package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantprep/internal/questiongen"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Generate one question and print it as JSON",
	Long:  "Generates a single question with the configured provider and prints it to stdout. Useful for smoke-testing prompts without the HTTP layer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		difficultyFlag, _ := cmd.Flags().GetString("difficulty")

		var difficulty questiongen.Difficulty
		if difficultyFlag != "" {
			d, err := questiongen.ParseDifficulty(difficultyFlag)
			if err != nil {
				return err
			}
			difficulty = d
		}

		p, err := buildPipeline(cmd)
		if err != nil {
			return err
		}

		q, err := p.generator.Generate(cmd.Context(), topic, difficulty)
		if err != nil {
			return fmt.Errorf("generate question: %w", err)
		}

		out, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	askCmd.Flags().StringP("topic", "t", "", "Question topic (default from configuration)")
	askCmd.Flags().StringP("difficulty", "d", "", "Easy, Medium, or Hard (default from configuration)")
}
