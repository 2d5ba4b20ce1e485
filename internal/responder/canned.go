package responder

import (
	"context"
	"fmt"
	"time"
)

const (
	MockFormat     = "🤖 (mock) Simulated reply to: %s"
	FallbackFormat = "⚠️ (fallback) Could not reach the backend, mock reply: %s"

	DefaultMockDelay     = 800 * time.Millisecond
	DefaultFallbackDelay = 700 * time.Millisecond
)

// Canned answers with a fixed template after a pause that keeps the
// turn-taking rhythm of a real conversation.
type Canned struct {
	Format string
	Delay  time.Duration
}

// NewMock is used when no backend is configured at all.
func NewMock(delay time.Duration) *Canned {
	return &Canned{Format: MockFormat, Delay: delay}
}

// NewFallback is used when a configured backend failed for this turn.
func NewFallback(delay time.Duration) *Canned {
	return &Canned{Format: FallbackFormat, Delay: delay}
}

func (c *Canned) Reply(ctx context.Context, userText string) string {
	if c.Delay > 0 {
		t := time.NewTimer(c.Delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}
	return fmt.Sprintf(c.Format, userText)
}
