package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts the text-generation service. One call per Generate;
// there is no internal retry loop, a failed call is reported once and the
// user re-triggers.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its raw output.
	// When the request carries a Schema, the provider asks the service
	// for structured JSON conforming to it; the service is not fully
	// trusted to comply, so callers still parse leniently.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system-level instruction string.
	System string

	// Messages is the conversation. Question generation is single-turn,
	// so this holds one user message.
	Messages []Message

	// Schema, when set, selects the provider's native structured output
	// mechanism for the response.
	Schema *Schema

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int

	// Temperature controls sampling randomness, 0.0-1.0.
	Temperature float64
}

// Message is a single conversation message.
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

// Schema describes the JSON shape requested from the LLM.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "dse-question".
	Name string

	// Description tells the LLM what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the raw generated text. It is expected, but not
	// guaranteed, to be a JSON object; it may arrive wrapped in a
	// Markdown code fence.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
