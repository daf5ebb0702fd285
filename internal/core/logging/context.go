package logging

import "context"

type contextKey string

const (
	documentKey contextKey = "document"
	commandKey  contextKey = "command"
)

// WithDocument adds the path of the document being worked on to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, documentKey, path)
}

// WithCommand adds the running CLI command name to the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// GetDocument retrieves the document path from the context.
// Returns empty string if not present.
func GetDocument(ctx context.Context) string {
	if p, ok := ctx.Value(documentKey).(string); ok {
		return p
	}
	return ""
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}
