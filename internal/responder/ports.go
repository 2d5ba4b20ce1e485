package responder

import "context"

// Responder — local stand-in for the conversational backend, knows nothing
// about HTTP or storage
type Responder interface {
	Reply(ctx context.Context, userText string) string
}
