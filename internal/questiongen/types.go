package questiongen

import (
	"fmt"
	"strings"
)

// OptionLabels are the five fixed option labels, in display order.
var OptionLabels = [5]string{"A", "B", "C", "D", "E"}

// Question is a generated GMAT-style quantitative question. The JSON
// field names are the compatibility surface consumed by the automation
// client; do not rename them. A Question is immutable once returned: the
// service keeps no copy, the caller resubmits it for evaluation.
type Question struct {
	// Text is the question stem.
	Text string `json:"question"`

	// Options holds exactly five answer options, each prefixed with its
	// label (A through E, in that order).
	Options []string `json:"options"`

	// Explanation derives the correct answer step by step.
	Explanation string `json:"explanation"`

	// Answer is the label of the single correct option.
	Answer string `json:"answer"`
}

// Difficulty is the closed difficulty enumeration.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty maps caller input to a Difficulty, case-insensitively.
// Unknown values are rejected rather than defaulted, to surface caller
// bugs. The empty string is also rejected; callers apply their own
// default before parsing.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q: must be one of Easy, Medium, Hard", s)
}
