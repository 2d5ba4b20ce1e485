package widget

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// DisplayEvent is one line of the visible transcript.
type DisplayEvent struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Sender Sender    `json:"sender"`
	At     time.Time `json:"at"`
}

// OutgoingMessage — body of POST /api/v1/conversation/respond
type OutgoingMessage struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

var ErrNoPresenter = errors.New("widget: presenter is required")

// Presenter — display surface (DOM, terminal, websocket)
type Presenter interface {
	Display(ev DisplayEvent)
	SetVisible(visible bool)
}

// Backend — the remote conversational API
type Backend interface {
	Start(ctx context.Context, baseURL string) (Reply, error)
	Respond(ctx context.Context, baseURL string, msg OutgoingMessage) (Reply, error)
}

// Service — widget core, every call is fire-and-forget
type Service interface {
	Init()
	Start()
	Send(text string)
	Toggle() bool
	Override(url string)
	BackendURL() (string, bool)
	Wait()
}
