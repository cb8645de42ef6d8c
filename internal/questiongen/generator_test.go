package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/quantprep/internal/llm"
)

func questionJSON(t *testing.T, q *Question) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return data
}

func newTestGenerator(mock *llm.MockProvider) *LLMGenerator {
	client := llm.NewStructuredClient(mock, llm.StructuredConfig{MaxAttempts: 3})
	return New(client, DefaultConfig())
}

func TestGenerate_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON(t, validQuestion())},
	)
	g := newTestGenerator(mock)

	q, err := g.Generate(context.Background(), "Algebra", DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Answer != "B" {
		t.Errorf("unexpected answer: %q", q.Answer)
	}
	if len(q.Options) != 5 {
		t.Errorf("expected 5 options, got %d", len(q.Options))
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", mock.CallCount())
	}

	call := mock.LastCall()
	if call.Schema != QuestionSchema {
		t.Error("request does not carry the question schema")
	}
	if !strings.Contains(call.Messages[0].Content, "Topic: Algebra") {
		t.Errorf("prompt missing topic:\n%s", call.Messages[0].Content)
	}
}

func TestGenerate_DefaultsApplied(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON(t, validQuestion())},
	)
	g := newTestGenerator(mock)

	if _, err := g.Generate(context.Background(), "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.LastCall().Messages[0].Content
	if !strings.Contains(prompt, "Topic: Algebra") {
		t.Errorf("default topic not applied:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Difficulty: Medium") {
		t.Errorf("default difficulty not applied:\n%s", prompt)
	}
}

func TestGenerate_MalformedThenValid(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage(`Sure! Here is your question: ...`),
			Err:     errors.New("invalid JSON"),
		}},
		llm.MockResponse{Content: questionJSON(t, validQuestion())},
	)
	g := newTestGenerator(mock)

	q, err := g.Generate(context.Background(), "Algebra", DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Answer != "B" {
		t.Errorf("unexpected answer: %q", q.Answer)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", mock.CallCount())
	}
}

func TestGenerate_StructuralFailureRetried(t *testing.T) {
	// Schema-valid JSON whose answer names no option. The validator chain
	// must push it back into the retry loop.
	bad := validQuestion()
	bad.Answer = "F"

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON(t, bad)},
		llm.MockResponse{Content: questionJSON(t, validQuestion())},
	)
	g := newTestGenerator(mock)

	q, err := g.Generate(context.Background(), "Algebra", DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Answer != "B" {
		t.Errorf("unexpected answer: %q", q.Answer)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", mock.CallCount())
	}

	// The retry carries the rejection reason as corrective context.
	retry := mock.Calls[1]
	last := retry.Messages[len(retry.Messages)-1]
	if !strings.Contains(last.Content, "not one of the option labels") {
		t.Errorf("corrective turn missing validator message: %q", last.Content)
	}
}

func TestGenerate_Exhaustion(t *testing.T) {
	bad := validQuestion()
	bad.Options = bad.Options[:3]

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON(t, bad)},
		llm.MockResponse{Content: questionJSON(t, bad)},
		llm.MockResponse{Content: questionJSON(t, bad)},
	)
	g := newTestGenerator(mock)

	_, err := g.Generate(context.Background(), "Algebra", DifficultyMedium)
	var exhausted *llm.ErrValidationExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ErrValidationExhausted, got %T: %v", err, err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", mock.CallCount())
	}
}

func TestGenerate_TransportErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial tcp: refused")}},
	)
	g := newTestGenerator(mock)

	_, err := g.Generate(context.Background(), "Algebra", DifficultyMedium)
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T: %v", err, err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", mock.CallCount())
	}
}

func TestQuestionSchema_AcceptsValidQuestion(t *testing.T) {
	raw := questionJSON(t, validQuestion())
	if err := llm.ValidateContent(QuestionSchema, raw); err != nil {
		t.Fatalf("schema rejects a valid question: %v", err)
	}
}

func TestQuestionSchema_RejectsBadShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing answer", `{"question":"q","options":["A) 1","B) 2","C) 3","D) 4","E) 5"],"explanation":"e"}`},
		{"answer not a label", `{"question":"q","options":["A) 1","B) 2","C) 3","D) 4","E) 5"],"explanation":"e","answer":"Z"}`},
		{"four options", `{"question":"q","options":["A) 1","B) 2","C) 3","D) 4"],"explanation":"e","answer":"A"}`},
		{"empty question", `{"question":"","options":["A) 1","B) 2","C) 3","D) 4","E) 5"],"explanation":"e","answer":"A"}`},
		{"extra field", `{"question":"q","options":["A) 1","B) 2","C) 3","D) 4","E) 5"],"explanation":"e","answer":"A","hint":"h"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := llm.ValidateContent(QuestionSchema, json.RawMessage(tt.content))
			if err == nil {
				t.Fatal("expected schema rejection, got nil")
			}
			var inv *llm.ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
		})
	}
}
