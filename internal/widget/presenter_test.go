package widget

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranscriptKeepsOrderAndCopies(t *testing.T) {
	tr := NewTranscript()
	tr.Display(DisplayEvent{Text: "a", Sender: SenderUser})
	tr.Display(DisplayEvent{Text: "b", Sender: SenderBot})

	events := tr.Events()
	require.Len(t, events, 2)
	require.Equal(t, "a", events[0].Text)

	events[0].Text = "mutated"
	require.Equal(t, "a", tr.Events()[0].Text)
}

func TestTranscriptSubscribe(t *testing.T) {
	tr := NewTranscript()
	tr.Display(DisplayEvent{Text: "before"})

	ch, cancel := tr.Subscribe()
	tr.Display(DisplayEvent{Text: "after"})

	ev := <-ch
	require.Equal(t, "after", ev.Text)

	cancel()
	cancel()
	_, open := <-ch
	require.False(t, open)

	require.NotPanics(t, func() { tr.Display(DisplayEvent{Text: "late"}) })
}

func TestTranscriptSlowSubscriberDoesNotBlock(t *testing.T) {
	tr := NewTranscript()
	_, cancel := tr.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer*2; i++ {
		tr.Display(DisplayEvent{Text: "x"})
	}
	require.Len(t, tr.Events(), subscriberBuffer*2)
}

func TestTerminalPresenter(t *testing.T) {
	var buf bytes.Buffer
	p := NewTerminalPresenter(&buf)

	p.SetVisible(true)
	p.Display(DisplayEvent{Text: "hi", Sender: SenderUser})
	p.Display(DisplayEvent{Text: "hello", Sender: SenderBot})

	require.Equal(t, "-- chat opened --\nyou> hi\nbot> hello\n", buf.String())
}
