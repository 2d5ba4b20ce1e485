package widget

import (
	"fmt"
	"io"
	"sync"
)

const subscriberBuffer = 64

// Transcript keeps every displayed event in order and fans them out to
// subscribers. Slow subscribers lose events rather than block a turn.
type Transcript struct {
	mu      sync.RWMutex
	events  []DisplayEvent
	visible bool
	subs    map[chan DisplayEvent]struct{}
}

func NewTranscript() *Transcript {
	return &Transcript{subs: make(map[chan DisplayEvent]struct{})}
}

func (t *Transcript) Display(ev DisplayEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, ev)
	for ch := range t.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (t *Transcript) SetVisible(visible bool) {
	t.mu.Lock()
	t.visible = visible
	t.mu.Unlock()
}

func (t *Transcript) Visible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visible
}

// Events returns a copy of the transcript.
func (t *Transcript) Events() []DisplayEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]DisplayEvent, len(t.events))
	copy(out, t.events)
	return out
}

// Subscribe returns a channel of events displayed from now on. Call cancel
// when done; it closes the channel.
func (t *Transcript) Subscribe() (<-chan DisplayEvent, func()) {
	ch := make(chan DisplayEvent, subscriberBuffer)
	t.mu.Lock()
	t.subs[ch] = struct{}{}
	t.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, ch)
			t.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// TerminalPresenter writes the conversation as plain lines.
type TerminalPresenter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalPresenter(w io.Writer) *TerminalPresenter {
	return &TerminalPresenter{w: w}
}

func (p *TerminalPresenter) Display(ev DisplayEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prefix := "bot> "
	if ev.Sender == SenderUser {
		prefix = "you> "
	}
	fmt.Fprintf(p.w, "%s%s\n", prefix, ev.Text)
}

func (p *TerminalPresenter) SetVisible(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if visible {
		fmt.Fprintln(p.w, "-- chat opened --")
		return
	}
	fmt.Fprintln(p.w, "-- chat closed --")
}
