package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextFields maps log field names to the context lookups that fill them.
var contextFields = []struct {
	field string
	get   func(context.Context) string
}{
	{"document", GetDocument},
	{"command", GetCommand},
}

// ContextHook copies the values stored by WithDocument and WithCommand from
// the event context onto the event.
type ContextHook struct{}

// Run implements zerolog.Hook.
func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}
	for _, f := range contextFields {
		if v := f.get(ctx); v != "" {
			e.Str(f.field, v)
		}
	}
}
