package qgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/albertyip/dsedrill/internal/llm"
	"github.com/albertyip/dsedrill/internal/model"
)

// Placeholder text substituted for fields the generator left out.
// A response missing one field is still usable; only a structurally
// broken response fails the whole call.
const (
	PlaceholderQuestion = "（題目生成失敗，請重試）"
	PlaceholderHint     = "（提示未生成）"
	PlaceholderSolution = "（詳解未生成）"
)

// ErrMalformed indicates the cleaned response text is not the JSON object
// the service was asked for. Recoverable: the student re-triggers.
type ErrMalformed struct {
	Raw string
	Err error
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("malformed generation response: %v", e.Err)
}

func (e *ErrMalformed) Unwrap() error { return e.Err }

// Generator produces practice questions for a (section, topic) pair.
type Generator interface {
	// Generate requests one fresh question. The result is complete
	// (placeholders fill any absent field) or the call fails as a whole.
	Generate(ctx context.Context, section model.SectionInfo, topic string) (*model.GenerationResult, error)
}

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// resultOutput is the raw LLM response. Pointer fields distinguish an
// absent key from a present-but-empty one.
type resultOutput struct {
	Question *string `json:"question"`
	Hint     *string `json:"hint"`
	Solution *string `json:"solution"`
}

// Generate issues a single structured-output request and parses the
// response leniently: strip an optional code fence, require a JSON object
// with string fields, substitute placeholders for absent keys.
func (g *LLMGenerator) Generate(ctx context.Context, section model.SectionInfo, topic string) (*model.GenerationResult, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(section, topic)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	cleaned := json.RawMessage(stripCodeFence(string(resp.Content)))

	if err := llm.Validate(QuestionSchema, cleaned); err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			return nil, &ErrMalformed{Raw: string(cleaned), Err: invalid.Err}
		}
		return nil, err
	}

	var raw resultOutput
	if err := json.Unmarshal(cleaned, &raw); err != nil {
		return nil, &ErrMalformed{Raw: string(cleaned), Err: err}
	}

	return &model.GenerationResult{
		Question: fallback(raw.Question, PlaceholderQuestion),
		Hint:     fallback(raw.Hint, PlaceholderHint),
		Solution: fallback(raw.Solution, PlaceholderSolution),
	}, nil
}

func fallback(s *string, placeholder string) string {
	if s == nil {
		return placeholder
	}
	return *s
}
