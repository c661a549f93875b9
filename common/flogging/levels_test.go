/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging_test

import (
	"testing"

	"github.com/hyperledger/fabric-rijndael/common/flogging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoggerLevelsActivateSpec(t *testing.T) {
	tests := []struct {
		spec                 string
		expectedLevels       map[string]zapcore.Level
		expectedDefaultLevel zapcore.Level
	}{
		{
			spec:                 "DEBUG",
			expectedLevels:       map[string]zapcore.Level{},
			expectedDefaultLevel: zapcore.DebugLevel,
		},
		{
			spec:                 "INFO",
			expectedLevels:       map[string]zapcore.Level{},
			expectedDefaultLevel: zapcore.InfoLevel,
		},
		{
			spec: "logger=info:DEBUG",
			expectedLevels: map[string]zapcore.Level{
				"logger":     zapcore.InfoLevel,
				"logger.a":   zapcore.InfoLevel,
				"logger.b":   zapcore.InfoLevel,
				"logger.a.b": zapcore.InfoLevel,
			},
			expectedDefaultLevel: zapcore.DebugLevel,
		},
		{
			spec: "logger=info:logger.=error:DEBUG",
			expectedLevels: map[string]zapcore.Level{
				"logger":     zapcore.ErrorLevel,
				"logger.a":   zapcore.InfoLevel,
				"logger.a.b": zapcore.InfoLevel,
			},
			expectedDefaultLevel: zapcore.DebugLevel,
		},
		{
			spec: "bccsp_sw,factory=warning:cli=debug",
			expectedLevels: map[string]zapcore.Level{
				"bccsp_sw":     zapcore.WarnLevel,
				"factory":      zapcore.WarnLevel,
				"cli":          zapcore.DebugLevel,
				"cli.encrypt":  zapcore.DebugLevel,
				"other.logger": zapcore.InfoLevel,
			},
			expectedDefaultLevel: zapcore.InfoLevel,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.spec, func(t *testing.T) {
			ll := &flogging.LoggerLevels{}

			err := ll.ActivateSpec(tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedDefaultLevel, ll.DefaultLevel())
			for name, lvl := range tc.expectedLevels {
				assert.Equal(t, lvl, ll.Level(name), "logger %s", name)
			}
		})
	}
}

func TestLoggerLevelsActivateSpecErrors(t *testing.T) {
	tests := []struct {
		spec string
		err  string
	}{
		{spec: "=INFO", err: "invalid logging specification '=INFO': no logger specified in segment '=INFO'"},
		{spec: "a=b=c", err: "invalid logging specification 'a=b=c': bad segment 'a=b=c'"},
		{spec: "bogus", err: "invalid logging specification 'bogus': bad segment 'bogus'"},
		{spec: "a.b=info:bogus", err: "invalid logging specification 'a.b=info:bogus': bad segment 'bogus'"},
		{spec: "a*=info", err: "invalid logging specification 'a*=info': bad logger name 'a*'"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.spec, func(t *testing.T) {
			ll := &flogging.LoggerLevels{}
			err := ll.ActivateSpec("fatal:a=warn")
			require.NoError(t, err)

			err = ll.ActivateSpec(tc.spec)
			assert.EqualError(t, err, tc.err)

			// previous spec is still active
			assert.Equal(t, zapcore.FatalLevel, ll.DefaultLevel())
			assert.Equal(t, zapcore.WarnLevel, ll.Level("a"))
		})
	}
}

func TestSpec(t *testing.T) {
	ll := &flogging.LoggerLevels{}
	require.NoError(t, ll.ActivateSpec("b=debug:a.=error:warn"))
	assert.Equal(t, "a.=error:b=debug:warn", ll.Spec())

	assert.True(t, ll.Enabled(zapcore.DebugLevel))
	require.NoError(t, ll.ActivateSpec("error"))
	assert.False(t, ll.Enabled(zapcore.WarnLevel))
}

func TestNameToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, flogging.NameToLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, flogging.NameToLevel("CRITICAL"))
	assert.Equal(t, zapcore.InfoLevel, flogging.NameToLevel("bogus"))
	assert.True(t, flogging.IsValidLevel("dpanic"))
	assert.False(t, flogging.IsValidLevel("verbose"))
}

func TestLoggerLevel(t *testing.T) {
	defer flogging.Reset()
	flogging.ActivateSpec("bccsp_sw=debug")
	assert.Equal(t, "debug", flogging.LoggerLevel("bccsp_sw"))
	assert.Equal(t, "info", flogging.LoggerLevel("factory"))
}
