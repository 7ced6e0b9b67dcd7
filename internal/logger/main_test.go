package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	testCases := []struct {
		name          string
		cfg           Log
		expectedError error
	}{
		{
			name: "unsupported log level",
			cfg:  Log{LogLevel: "chatty", ServiceName: "svc", AppName: "app"},
		},
		{
			name:          "empty service name",
			cfg:           Log{LogLevel: "info", AppName: "app"},
			expectedError: ErrServiceNameIsEmpty,
		},
		{
			name:          "empty app name",
			cfg:           Log{LogLevel: "info", ServiceName: "svc"},
			expectedError: ErrAppNameIsEmpty,
		},
		{
			name: "valid config without outputs",
			cfg:  Log{LogLevel: "info", ServiceName: "svc", AppName: "app"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Init(tc.cfg)

			switch {
			case tc.expectedError != nil:
				require.ErrorIs(t, err, tc.expectedError)
			case tc.cfg.LogLevel == "chatty":
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestWriteLevel(t *testing.T) {
	var infoBuf, warnBuf, errBuf, traceBuf bytes.Buffer

	lw := LevelWriter{
		InfoWriter:  &infoBuf,
		WarnWriter:  &warnBuf,
		ErrorWriter: &errBuf,
		TraceWriter: &traceBuf,
	}

	testCases := []struct {
		name     string
		level    zerolog.Level
		expected *bytes.Buffer
	}{
		{name: "debug goes to info", level: zerolog.DebugLevel, expected: &infoBuf},
		{name: "info goes to info", level: zerolog.InfoLevel, expected: &infoBuf},
		{name: "warn goes to warn", level: zerolog.WarnLevel, expected: &warnBuf},
		{name: "error goes to error", level: zerolog.ErrorLevel, expected: &errBuf},
		{name: "fatal goes to error", level: zerolog.FatalLevel, expected: &errBuf},
		{name: "trace goes to trace", level: zerolog.TraceLevel, expected: &traceBuf},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			infoBuf.Reset()
			warnBuf.Reset()
			errBuf.Reset()
			traceBuf.Reset()

			n, err := lw.WriteLevel(tc.level, []byte("x"))
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			assert.Equal(t, "x", tc.expected.String())
		})
	}

	// disabled level writes nothing
	n, err := lw.WriteLevel(zerolog.Disabled, []byte("x"))
	require.NoError(t, err)
	assert.Zero(t, n)
}
