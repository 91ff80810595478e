package llm

import (
	"context"
	"log/slog"
	"time"
)

// LoggingProvider is a decorator that logs every generation call with its
// duration and token usage.
type LoggingProvider struct {
	inner Provider
}

// WithLogging wraps a Provider with slog request logging.
func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		slog.Warn("LLM generation failed",
			"model", l.inner.ModelID(),
			"duration", elapsed,
			"error", err,
		)
		return nil, err
	}

	slog.Debug("LLM generation complete",
		"model", resp.Model,
		"duration", elapsed,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason,
	)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
