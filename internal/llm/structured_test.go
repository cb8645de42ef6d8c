package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func structuredConfig() StructuredConfig {
	return StructuredConfig{MaxAttempts: 3}
}

func invalidErr(content, reason string) *ErrInvalidResponse {
	return &ErrInvalidResponse{
		Content: json.RawMessage(content),
		Err:     errors.New(reason),
	}
}

func TestStructured_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	c := NewStructuredClient(mock, structuredConfig())

	resp, err := c.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestStructured_MalformedThenValid(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: invalidErr(`not json`, "invalid JSON")},
		MockResponse{Err: invalidErr(`{"partial":`, "invalid JSON")},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	c := NewStructuredClient(mock, structuredConfig())

	resp, err := c.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "generate"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestStructured_CorrectiveContextAppended(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: invalidErr(`{"bad":1}`, "missing field question")},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	c := NewStructuredClient(mock, structuredConfig())

	_, err := c.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "generate"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := mock.Calls[1]
	if len(second.Messages) != 3 {
		t.Fatalf("expected 3 messages on retry, got %d", len(second.Messages))
	}
	if second.Messages[1].Role != RoleAssistant || second.Messages[1].Content != `{"bad":1}` {
		t.Errorf("expected prior output as assistant turn, got %+v", second.Messages[1])
	}
	if second.Messages[2].Role != RoleUser {
		t.Errorf("expected corrective user turn, got role %q", second.Messages[2].Role)
	}
	if !strings.Contains(second.Messages[2].Content, "missing field question") {
		t.Errorf("corrective turn does not carry the prior error: %q", second.Messages[2].Content)
	}
}

func TestStructured_RetryDoesNotAccumulateCorrections(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: invalidErr(`first`, "bad 1")},
		MockResponse{Err: invalidErr(`second`, "bad 2")},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	c := NewStructuredClient(mock, structuredConfig())

	_, err := c.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "generate"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every retry rebuilds from the base conversation plus one correction.
	third := mock.Calls[2]
	if len(third.Messages) != 3 {
		t.Fatalf("expected 3 messages on second retry, got %d", len(third.Messages))
	}
	if !strings.Contains(third.Messages[2].Content, "bad 2") {
		t.Errorf("expected latest error in corrective turn, got %q", third.Messages[2].Content)
	}
}

func TestStructured_AllAttemptsMalformed(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: invalidErr(`x`, "bad")},
		MockResponse{Err: invalidErr(`y`, "bad")},
		MockResponse{Err: invalidErr(`z`, "still bad")},
	)
	c := NewStructuredClient(mock, structuredConfig())

	_, err := c.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	var exhausted *ErrValidationExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ErrValidationExhausted, got %T: %v", err, err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", exhausted.Attempts)
	}
	if !strings.Contains(exhausted.Error(), "still bad") {
		t.Errorf("expected last failure in message, got %q", exhausted.Error())
	}
	// The upstream was called exactly MaxAttempts times.
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestStructured_TransportErrorFailsFast(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection reset")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)}, // Won't be reached.
	)
	c := NewStructuredClient(mock, structuredConfig())

	_, err := c.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call (no retry on transport failure), got %d", mock.CallCount())
	}
}

func TestStructured_RateLimitFailsFast(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Second, Err: errors.New("429")}},
	)
	c := NewStructuredClient(mock, structuredConfig())

	_, err := c.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestStructured_ChecksRejectIntoRetryLoop(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"n":1}`)},
		MockResponse{Content: json.RawMessage(`{"n":2}`)},
	)
	c := NewStructuredClient(mock, structuredConfig())

	evenOnly := func(raw json.RawMessage) error {
		var v struct {
			N int `json:"n"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v.N%2 != 0 {
			return fmt.Errorf("n must be even, got %d", v.N)
		}
		return nil
	}

	resp, err := c.Generate(context.Background(), Request{}, evenOnly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"n":2}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestStructured_MinimumOneAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	c := NewStructuredClient(mock, StructuredConfig{MaxAttempts: 0})

	_, err := c.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

// slowProvider blocks until the context is done or the delay elapses.
type slowProvider struct {
	delay time.Duration
}

func (p *slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.delay):
		return &Response{Content: json.RawMessage(`"ok"`), StopReason: "end"}, nil
	}
}

func (p *slowProvider) ModelID() string { return "slow" }

func TestStructured_TimeoutSurfacesAsUnavailable(t *testing.T) {
	c := NewStructuredClient(&slowProvider{delay: time.Second}, StructuredConfig{
		MaxAttempts: 3,
		Timeout:     time.Millisecond,
	})

	_, err := c.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T: %v", err, err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped deadline error, got %v", err)
	}
}

func TestStructured_ModelIDDelegates(t *testing.T) {
	c := NewStructuredClient(NewMockProvider(), structuredConfig())
	if c.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", c.ModelID())
	}
}
