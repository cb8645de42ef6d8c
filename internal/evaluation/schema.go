package evaluation

import "github.com/abhisek/quantprep/internal/llm"

// FeedbackSchema defines the JSON schema for LLM feedback responses.
// The correctness verdict is deliberately absent: it is computed locally
// and must not be restated as data the caller could mistake for
// authoritative.
var FeedbackSchema = &llm.Schema{
	Name:        "answer-feedback",
	Description: "Personalized feedback on a student's answer to a GMAT quantitative question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Feedback that states whether the answer was correct, references the concept tested, and walks through the relevant part of the explanation",
			},
			"remediation_topic": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "One concrete sub-topic to study next, e.g. \"Algebra: Linear Equations\"",
			},
		},
		"required":             []any{"feedback", "remediation_topic"},
		"additionalProperties": false,
	},
}
