package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quantprep/internal/llm"
	"github.com/abhisek/quantprep/internal/questiongen"
)

// Config controls the Evaluator's LLM usage.
type Config struct {
	// MaxTokens is the token budget for the feedback response.
	MaxTokens int

	// Temperature controls LLM output randomness. Feedback should stay
	// close to the provided explanation, so the default is low.
	Temperature float64
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.3,
	}
}

// Evaluator grades a student's answer locally and generates remediation
// feedback through the structured client.
type Evaluator struct {
	client *llm.StructuredClient
	cfg    Config
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(client *llm.StructuredClient, cfg Config) *Evaluator {
	return &Evaluator{client: client, cfg: cfg}
}

// feedbackOutput is the raw LLM response before assembly into a Result.
type feedbackOutput struct {
	Feedback         string `json:"feedback"`
	RemediationTopic string `json:"remediation_topic"`
}

// Evaluate grades studentAnswer against q and returns a Result whose
// IsCorrect is always the local verdict. Malformed question data fails
// with *BadInputError before any upstream call: caller input is never
// validated at the expense of a billable request. The student answer is
// not shape-checked at all; an unrecognized label is just incorrect.
func (e *Evaluator) Evaluate(ctx context.Context, q *questiongen.Question, studentAnswer string) (*Result, error) {
	if verr := questiongen.ValidateQuestion(q); verr != nil {
		return nil, &BadInputError{Field: "question_data", Reason: verr.Message}
	}

	isCorrect := Grade(studentAnswer, q.Answer)

	ctx = llm.WithPurpose(ctx, "answer-eval")

	req := llm.Request{
		System: feedbackSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildFeedbackMessage(q, studentAnswer, isCorrect)},
		},
		Schema:      FeedbackSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.client.Generate(ctx, req, checkFeedback)
	if err != nil {
		return nil, err
	}

	var raw feedbackOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse feedback response: %w", err)
	}

	return &Result{
		IsCorrect:        isCorrect,
		Feedback:         raw.Feedback,
		RemediationTopic: raw.RemediationTopic,
	}, nil
}

// checkFeedback rejects whitespace-only fields that slip past the
// schema's minLength.
func checkFeedback(content json.RawMessage) error {
	var raw feedbackOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw.Feedback) == "" {
		return fmt.Errorf("feedback is blank")
	}
	if strings.TrimSpace(raw.RemediationTopic) == "" {
		return fmt.Errorf("remediation_topic is blank")
	}
	return nil
}
