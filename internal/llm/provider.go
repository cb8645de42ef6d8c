package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction over the external text-generation
// service. It is inherently non-deterministic: two identical requests may
// produce different output, and when a Schema is set the returned content
// should conform but is not guaranteed to.
type Provider interface {
	// Generate sends a single, context-free request to the LLM.
	// When the request carries a Schema, the provider validates the raw
	// output against it and returns *ErrInvalidResponse on mismatch.
	// Transport-level failures surface as *ErrProviderUnavailable or
	// *ErrRateLimit.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation for this request. The first message is
	// the user instruction; the structured client appends corrective
	// turns on retry.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, the response Content is free text (used only by the
	// connectivity check).
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "gmat-question".
	Name string

	// Description is sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output: validated JSON when a Schema was
	// set, raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
