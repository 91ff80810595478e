package qgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/albertyip/dsedrill/internal/llm"
	"github.com/albertyip/dsedrill/internal/model"
)

var (
	testSection = model.Sections[0]
	testTopic   = model.Topics[0]
)

func newTestGenerator(responses ...llm.MockResponse) (*LLMGenerator, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return New(mock, DefaultConfig()), mock
}

func TestGenerateCompleteResponse(t *testing.T) {
	gen, mock := newTestGenerator(llm.MockResponse{
		Content: json.RawMessage(`{"question":"求 $x$ 的值。","hint":"先化簡。","solution":"$x = 3$。"}`),
	})

	result, err := gen.Generate(context.Background(), testSection, testTopic)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if result.Question != "求 $x$ 的值。" {
		t.Errorf("Question = %q", result.Question)
	}
	if result.Hint != "先化簡。" {
		t.Errorf("Hint = %q", result.Hint)
	}
	if result.Solution != "$x = 3$。" {
		t.Errorf("Solution = %q", result.Solution)
	}

	// The request must carry the fixed instruction set and high temperature.
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.System != systemPrompt {
		t.Error("request should carry the fixed system prompt")
	}
	if req.Temperature != 0.9 {
		t.Errorf("Temperature = %v, want 0.9", req.Temperature)
	}
	if req.Schema == nil || req.Schema.Name != "dse-question" {
		t.Error("request should carry the question schema")
	}
}

func TestGenerateFencedResponse(t *testing.T) {
	body := `{"question":"q","hint":"h","solution":"s"}`
	gen, _ := newTestGenerator(llm.MockResponse{
		Content: json.RawMessage("```json\n" + body + "\n```"),
	})

	result, err := gen.Generate(context.Background(), testSection, testTopic)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if result.Question != "q" || result.Hint != "h" || result.Solution != "s" {
		t.Errorf("fenced response parsed incorrectly: %+v", result)
	}
}

func TestGenerateMissingFieldGetsPlaceholder(t *testing.T) {
	gen, _ := newTestGenerator(llm.MockResponse{
		Content: json.RawMessage(`{"question":"q","solution":"s"}`),
	})

	result, err := gen.Generate(context.Background(), testSection, testTopic)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if result.Hint != PlaceholderHint {
		t.Errorf("Hint = %q, want placeholder %q", result.Hint, PlaceholderHint)
	}
	if result.Question != "q" || result.Solution != "s" {
		t.Errorf("present fields must pass through unaltered: %+v", result)
	}
}

func TestGenerateAllFieldsMissing(t *testing.T) {
	gen, _ := newTestGenerator(llm.MockResponse{
		Content: json.RawMessage(`{}`),
	})

	result, err := gen.Generate(context.Background(), testSection, testTopic)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if result.Question != PlaceholderQuestion ||
		result.Hint != PlaceholderHint ||
		result.Solution != PlaceholderSolution {
		t.Errorf("expected all placeholders, got %+v", result)
	}
}

func TestGenerateGarbageIsMalformed(t *testing.T) {
	gen, _ := newTestGenerator(llm.MockResponse{
		Content: json.RawMessage(`Sorry, I cannot help with that.`),
	})

	_, err := gen.Generate(context.Background(), testSection, testTopic)
	var malformed *ErrMalformed
	if !errors.As(err, &malformed) {
		t.Fatalf("Generate() = %v, want *ErrMalformed", err)
	}
}

func TestGenerateTransportErrorPassesThrough(t *testing.T) {
	gen, _ := newTestGenerator(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})

	_, err := gen.Generate(context.Background(), testSection, testTopic)
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("Generate() = %v, want *llm.ErrProviderUnavailable", err)
	}
	var malformed *ErrMalformed
	if errors.As(err, &malformed) {
		t.Error("transport errors must not be reported as malformed responses")
	}
}

func TestGenerateVariedResponses(t *testing.T) {
	// Two identical requests may legitimately produce different results.
	gen, _ := newTestGenerator(
		llm.MockResponse{Content: json.RawMessage(`{"question":"q1","hint":"h1","solution":"s1"}`)},
		llm.MockResponse{Content: json.RawMessage(`{"question":"q2","hint":"h2","solution":"s2"}`)},
	)

	first, err := gen.Generate(context.Background(), testSection, testTopic)
	if err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}
	second, err := gen.Generate(context.Background(), testSection, testTopic)
	if err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}
	if first.Question == second.Question {
		t.Error("expected canned responses to differ")
	}
	if second.Question != "q2" || second.Hint != "h2" || second.Solution != "s2" {
		t.Errorf("each result must individually be faithful: %+v", second)
	}
}
