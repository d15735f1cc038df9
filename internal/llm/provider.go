package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured answer per call.
type Provider interface {
	// Generate sends req and returns the reply. With req.Schema set the
	// vendor's structured output mode is used and Content has already
	// passed ValidateResponse.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the resolved model the provider calls.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, is enforced on the reply. Nil asks for free text.
	Schema *Schema

	MaxTokens int

	// Temperature is in 0.0 - 1.0. Zero leaves the vendor default.
	Temperature float64
}

// Message is one turn of the prompt.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Each vendor gets it in its own structured
// output form. Name keys the compiled-schema cache and must be unique per
// Definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is the JSON object when a Schema was given, otherwise the
	// raw text.
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request, which may differ from
	// ModelID when the vendor routes aliases.
	Model string

	// StopReason is one of "end", "max_tokens" or "error".
	StopReason string
}

// Usage is the token count for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
