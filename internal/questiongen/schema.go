package questiongen

import "github.com/abhisek/quantprep/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation
// responses. Label ordering inside options cannot be expressed here; the
// StructuralValidator covers it.
var QuestionSchema = &llm.Schema{
	Name:        "gmat-question",
	Description: "A GMAT-style quantitative multiple choice question with five labeled options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The question stem, in the concise formal register of GMAT quantitative questions",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
				"minItems":    5,
				"maxItems":    5,
				"description": "Exactly five options, each prefixed with its label: A, B, C, D, E in that order, e.g. \"A) 12\"",
			},
			"answer": map[string]any{
				"type":        "string",
				"enum":        []any{"A", "B", "C", "D", "E"},
				"description": "The label of the single correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Step-by-step derivation of the correct answer",
			},
		},
		"required":             []any{"question", "options", "answer", "explanation"},
		"additionalProperties": false,
	},
}
