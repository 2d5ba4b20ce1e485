package widget

const (
	// NoAnswerText replaces a successful reply that carries no known text field.
	NoAnswerText = "🤔 The bot did not answer."

	DefaultGreeting = "Hello! Welcome, ready to chat?"

	// FallbackSessionPrefix marks identifiers generated on the client.
	FallbackSessionPrefix = "web_"
)
