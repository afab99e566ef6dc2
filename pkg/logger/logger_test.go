package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cryptovest/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		env     logger.Environment
		level   string
		wantErr bool
	}{
		{name: "development default level", env: logger.Development},
		{name: "production debug", env: logger.Production, level: "debug"},
		{name: "upper case level", env: logger.Production, level: "WARN"},
		{name: "unknown level", env: logger.Development, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.NewLogger(tt.env, tt.level)
			if tt.wantErr {
				require.ErrorIs(t, err, logger.ErrInvalidLevel)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, l)
			l.With(zap.String("k", "v")).Debug(context.Background(), "test message")
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("logger present", func(t *testing.T) {
		l := logger.NewNop()
		got, err := logger.FromContext(logger.NewContext(context.Background(), l))
		require.NoError(t, err)
		assert.Same(t, l, got)
	})

	t.Run("logger absent", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, got)
	})

	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck
		_, err := logger.FromContext(nil)
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog(t *testing.T) {
	ctxLogger := logger.NewNop()
	globalLogger := logger.NewNop()

	logger.SetGlobalLogger(globalLogger)
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	assert.Same(t, ctxLogger, logger.Log(logger.NewContext(context.Background(), ctxLogger)))
	assert.Same(t, globalLogger, logger.Log(context.Background()))

	logger.SetGlobalLogger(nil)
	assert.NotNil(t, logger.Log(context.Background()), "fallback logger expected")
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id kept", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("empty id generated", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}
