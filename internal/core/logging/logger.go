// Package logging holds the zerolog helpers shared by every i2edit component.
// Loggers are derived from the global log.Logger so they pick up the sink and
// level configured at startup.
package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey is the field that names the emitting component.
const ComponentKey = "cmp"

// Component creates a new logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str(ComponentKey, name).Logger()
}

// ComponentCtx is Component bound to ctx, so every event it emits carries
// the document and command recorded on ctx once ContextHook is installed.
func ComponentCtx(ctx context.Context, name string) zerolog.Logger {
	return log.With().Str(ComponentKey, name).Ctx(ctx).Logger()
}
