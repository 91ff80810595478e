// Package exam wires the user triggers (generate, reveal hint, reveal
// solution) to session state transitions.
package exam

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/albertyip/dsedrill/internal/model"
	"github.com/albertyip/dsedrill/internal/qgen"
)

// Controller drives one session's state machine. All mutation of a
// SessionState goes through here; the presentation layer only reads.
type Controller struct {
	gen     qgen.Generator
	timeout time.Duration
}

// New creates a Controller. timeout bounds each generation call; zero
// disables the bound.
func New(gen qgen.Generator, timeout time.Duration) *Controller {
	return &Controller{gen: gen, timeout: timeout}
}

// Generate requests a fresh question for the chosen section and topic.
// On success the current result is replaced, both reveal flags reset and
// the display labels recorded. On failure the state is left untouched,
// so the previous question (if any) stays visible, and the error is
// returned for the caller to surface.
func (c *Controller) Generate(ctx context.Context, state *model.SessionState, sectionID model.Section, topic string) error {
	section, ok := model.SectionByID(sectionID)
	if !ok {
		return fmt.Errorf("unknown section %q", sectionID)
	}
	if !model.ValidTopic(topic) {
		return fmt.Errorf("unknown topic %q", topic)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.gen.Generate(ctx, section, topic)
	if err != nil {
		slog.Warn("question generation failed",
			"section", section.ID,
			"topic", topic,
			"error", err,
		)
		return err
	}

	state.CurrentResult = result
	state.ShowHint = false
	state.ShowSolution = false
	state.DisplaySection = section.Label
	state.DisplayTopic = topic

	slog.Info("question generated", "section", section.ID, "topic", topic)
	return nil
}

// RevealHint marks the hint as visible. Safe no-op without a result:
// the button is not rendered in that state, but a stray request must not
// corrupt anything.
func (c *Controller) RevealHint(state *model.SessionState) {
	if !state.HasResult() {
		return
	}
	state.ShowHint = true
}

// RevealSolution marks the solution as visible. Same no-op safety as
// RevealHint.
func (c *Controller) RevealSolution(state *model.SessionState) {
	if !state.HasResult() {
		return
	}
	state.ShowSolution = true
}
