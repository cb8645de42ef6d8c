package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ResponseCheck inspects schema-valid content for domain-level problems
// the JSON Schema cannot express (e.g. option labels out of order).
// A non-nil error puts the attempt back into the retry loop.
type ResponseCheck func(raw json.RawMessage) error

// StructuredConfig controls the structured client's retry budget and the
// per-attempt timeout on the upstream call.
type StructuredConfig struct {
	// MaxAttempts is the total number of upstream calls allowed per
	// request before giving up with ErrValidationExhausted. Minimum 1.
	MaxAttempts int

	// Timeout bounds each individual upstream call. Zero disables it.
	Timeout time.Duration
}

// DefaultStructuredConfig returns the recommended defaults.
func DefaultStructuredConfig() StructuredConfig {
	return StructuredConfig{
		MaxAttempts: 3,
		Timeout:     30 * time.Second,
	}
}

// StructuredClient obtains a structured object of a declared shape from
// the unreliable generative service.
//
// The two failure modes are handled differently on purpose: a malformed
// but successfully delivered response is the model choosing not to
// conform, and re-prompting with the failure appended as corrective
// context can fix it; a failed delivery is not improved by re-prompting
// under the same network conditions, so transport errors propagate
// immediately. Retries are sequential and bounded, with no backoff.
type StructuredClient struct {
	provider Provider
	cfg      StructuredConfig
}

// NewStructuredClient wraps a provider with the validate-and-retry loop.
func NewStructuredClient(p Provider, cfg StructuredConfig) *StructuredClient {
	return &StructuredClient{provider: p, cfg: cfg}
}

// Generate runs the bounded retry loop until the provider delivers
// content that passes both schema validation and every check.
// Returns *ErrValidationExhausted after MaxAttempts content failures,
// or the transport error from the first failed delivery.
func (c *StructuredClient) Generate(ctx context.Context, req Request, checks ...ResponseCheck) (*Response, error) {
	attempts := c.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	base := req.Messages
	var last *ErrInvalidResponse

	for attempt := 1; attempt <= attempts; attempt++ {
		attemptReq := req
		if last != nil {
			attemptReq.Messages = withCorrection(base, last)
		}

		resp, err := c.generateOnce(ctx, attemptReq)
		if err != nil {
			var inv *ErrInvalidResponse
			if errors.As(err, &inv) {
				last = inv
				continue
			}
			return nil, err
		}

		if cerr := runChecks(resp.Content, checks); cerr != nil {
			last = cerr
			continue
		}

		return resp, nil
	}

	return nil, &ErrValidationExhausted{Attempts: attempts, Last: last}
}

// ModelID reports the underlying provider's model.
func (c *StructuredClient) ModelID() string {
	return c.provider.ModelID()
}

// generateOnce performs a single upstream call under the configured
// per-attempt timeout. Deadline expiry is a transport failure.
func (c *StructuredClient) generateOnce(ctx context.Context, req Request) (*Response, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ErrProviderUnavailable{Err: err}
		}
		return nil, err
	}
	return resp, nil
}

// withCorrection rebuilds the conversation with the rejected output and
// the reason it was rejected, so the next attempt can self-correct.
func withCorrection(base []Message, last *ErrInvalidResponse) []Message {
	msgs := make([]Message, 0, len(base)+2)
	msgs = append(msgs, base...)
	if len(last.Content) > 0 {
		msgs = append(msgs, Message{Role: RoleAssistant, Content: string(last.Content)})
	}
	msgs = append(msgs, Message{
		Role: RoleUser,
		Content: fmt.Sprintf(
			"Your previous response was rejected: %v. Reply again with a single JSON object that conforms exactly to the required schema. No prose, no markdown fences.",
			last.Err,
		),
	})
	return msgs
}

func runChecks(raw json.RawMessage, checks []ResponseCheck) *ErrInvalidResponse {
	for _, check := range checks {
		if err := check(raw); err != nil {
			var inv *ErrInvalidResponse
			if errors.As(err, &inv) {
				return inv
			}
			return &ErrInvalidResponse{Content: raw, Err: err}
		}
	}
	return nil
}
