package questiongen

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed gmat_style.txt
var styleGuide string

const systemPreamble = `You are an expert GMAT quantitative question designer.

Rules:
- Generate a single multiple choice question with exactly 5 options labeled A, B, C, D, E, in that order. Prefix every option with its label, e.g. "A) 12".
- The question must have exactly one unambiguously correct answer.
- The explanation must derive the answer step by step; a reader who got it wrong should be able to follow it.
- Match the requested topic and difficulty.`

// SystemPrompt renders the generation system prompt. Pure function of the
// embedded style guide.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n\nStyle guide:\n")
	b.WriteString(strings.TrimSpace(styleGuide))
	return b.String()
}

// buildUserMessage renders the per-request instruction from typed
// parameters. Deterministic; no side effects.
func buildUserMessage(topic string, difficulty Difficulty) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Difficulty requirement: %s\n", difficultyGuidance(difficulty))
	b.WriteString("\nGenerate one question now.")
	return b.String()
}

// difficultyGuidance spells out what each difficulty level demands, so
// the model does not invent its own scale.
func difficultyGuidance(d Difficulty) string {
	switch d {
	case DifficultyEasy:
		return "a single-step arithmetic or algebra problem with no traps"
	case DifficultyMedium:
		return "a multi-step problem with one plausible trap among the distractors"
	case DifficultyHard:
		return "a multi-step problem whose efficient solution uses a less common technique"
	default:
		return "a multi-step problem of moderate complexity"
	}
}
