package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	doc := "/tmp/I2Languages.json"

	tests := []struct {
		name    string
		ctx     context.Context
		present map[string]string
		absent  []string
	}{
		{
			name:    "document and command",
			ctx:     WithDocument(WithCommand(context.Background(), "export"), doc),
			present: map[string]string{"document": doc, "command": "export"},
		},
		{
			name:    "only document",
			ctx:     WithDocument(context.Background(), doc),
			present: map[string]string{"document": doc},
			absent:  []string{"command"},
		},
		{
			name:    "only command",
			ctx:     WithCommand(context.Background(), "ls"),
			present: map[string]string{"command": "ls"},
			absent:  []string{"document"},
		},
		{
			name:   "no context values",
			ctx:    context.Background(),
			absent: []string{"document", "command"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.ctx).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for k, v := range tt.present {
				assert.Equal(t, v, entry[k], k)
			}
			for _, k := range tt.absent {
				assert.NotContains(t, entry, k)
			}
		})
	}
}
