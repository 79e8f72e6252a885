package logger

import (
	"testing"
	"time"

	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

func TestNamedRequiresInit(t *testing.T) {
	saved := Log
	Log = nil
	t.Cleanup(func() { Log = saved })

	_, err := Named("http")
	assert.Error(t, err)
}

func TestLogHookReceivesEntries(t *testing.T) {
	saved := Log
	t.Cleanup(func() {
		Log = saved
		logHook = nil
	})

	require.NoError(t, Init(Config{TimeLocation: time.UTC}))

	var got []types.Log
	SetLogHook(func(log types.Log) {
		got = append(got, log)
	})

	l, err := Named("cache")
	require.NoError(t, err)
	l.Warn("redis unavailable")

	require.Len(t, got, 1)
	assert.Equal(t, zapcore.WarnLevel, got[0].Level)
	assert.Equal(t, "main.cache", got[0].LoggerName)
	assert.Equal(t, "redis unavailable", got[0].Message)
}

func TestPrefixEncoder(t *testing.T) {
	enc := &prefixEncoder{
		Encoder: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "message"}),
		pool:    buffer.NewPool(),
		prefix:  "[events-1]",
	}

	buf, err := enc.EncodeEntry(zapcore.Entry{Message: "started"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "[events-1] started\n", buf.String())
}
