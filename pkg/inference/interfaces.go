package inference

import "context"

// Completer sends a chat-style request to a language model and returns its text output.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Logger defines the logging interface needed by the inference clients
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
