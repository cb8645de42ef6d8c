package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/quantprep/internal/llm"
)

// Generator produces GMAT-style questions on demand.
type Generator interface {
	// Generate produces a single validated question for the given topic
	// and difficulty. Empty topic or difficulty falls back to the
	// configured defaults. Non-idempotent: two calls with identical
	// parameters may yield different questions.
	Generate(ctx context.Context, topic string, difficulty Difficulty) (*Question, error)
}

// LLMGenerator implements Generator on top of the structured client.
type LLMGenerator struct {
	client *llm.StructuredClient
	cfg    Config
}

// New creates an LLMGenerator.
func New(client *llm.StructuredClient, cfg Config) *LLMGenerator {
	return &LLMGenerator{client: client, cfg: cfg}
}

// Generate builds the generation prompt and delegates to the structured
// client with the Question schema and validator chain. Failures from the
// client (*llm.ErrValidationExhausted, *llm.ErrProviderUnavailable,
// *llm.ErrRateLimit) propagate unchanged.
func (g *LLMGenerator) Generate(ctx context.Context, topic string, difficulty Difficulty) (*Question, error) {
	if topic == "" {
		topic = g.cfg.DefaultTopic
	}
	if difficulty == "" {
		difficulty = g.cfg.DefaultDifficulty
	}

	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: SystemPrompt(),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(topic, difficulty)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.client.Generate(ctx, req, g.checkQuestion)
	if err != nil {
		return nil, err
	}

	var q Question
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		return nil, fmt.Errorf("parse generated question: %w", err)
	}
	return &q, nil
}

// checkQuestion runs the validator chain on schema-valid content so that
// domain failures re-enter the retry loop with corrective context.
func (g *LLMGenerator) checkQuestion(raw json.RawMessage) error {
	var q Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return err
	}
	for _, v := range g.cfg.Validators {
		if verr := v.Validate(&q); verr != nil {
			return verr
		}
	}
	return nil
}
