package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskdeck-api/internal/config"
)

func TestSetupReturnsLogger(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"case insensitive", "INFO"},
		{"invalid level falls back to info", "verbose"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{LogLevel: tt.level})
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestFromContextRoundTrip(t *testing.T) {
	t.Parallel()

	log := slog.Default().With(slog.String("component", "test"))
	ctx := WithLogger(context.Background(), log)

	assert.Same(t, log, FromContext(ctx))
	assert.Same(t, log, FromContextOrDefault(ctx, nil))
}

func TestFromContextFallsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.NotNil(t, FromContext(ctx))

	def := slog.Default().With(slog.String("component", "fallback"))
	assert.Same(t, def, FromContextOrDefault(ctx, def))
}
