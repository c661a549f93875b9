/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/hyperledger/fabric-rijndael/common/flogging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logging, err := flogging.New(flogging.Config{})
	assert.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, logging.DefaultLevel())

	_, err = flogging.New(flogging.Config{
		LogSpec: "::=borken=::",
	})
	assert.EqualError(t, err, "invalid logging specification '::=borken=::': bad segment '=borken='")

	_, err = flogging.New(flogging.Config{Format: "xml"})
	assert.EqualError(t, err, "unsupported log format 'xml'")
}

func TestNewWithEnvironment(t *testing.T) {
	oldSpec, set := os.LookupEnv(flogging.SpecEnv)
	if set {
		defer os.Setenv(flogging.SpecEnv, oldSpec)
	}

	os.Setenv(flogging.SpecEnv, "fatal")
	logging, err := flogging.New(flogging.Config{})
	assert.NoError(t, err)
	assert.Equal(t, zapcore.FatalLevel, logging.DefaultLevel())

	os.Unsetenv(flogging.SpecEnv)
	logging, err = flogging.New(flogging.Config{})
	assert.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, logging.DefaultLevel())
}

func TestFormats(t *testing.T) {
	buf := &bytes.Buffer{}

	logging, err := flogging.New(flogging.Config{Format: "json", Writer: buf})
	require.NoError(t, err)
	logging.Logger("bccsp_sw").Infow("engine ready", "blockSize", 32)

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine ready", entry["msg"])
	assert.Equal(t, "bccsp_sw", entry["name"])
	assert.Equal(t, float64(32), entry["blockSize"])

	buf.Reset()
	require.NoError(t, logging.SetFormat("logfmt"))
	logging.Logger("bccsp_sw").Infow("engine ready", "blockSize", 24)
	assert.Contains(t, buf.String(), "msg=\"engine ready\"")
	assert.Contains(t, buf.String(), "blockSize=24")

	buf.Reset()
	require.NoError(t, logging.SetFormat("console"))
	logging.Logger("bccsp_sw").Info("engine", "ready")
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "bccsp_sw")
	assert.Contains(t, buf.String(), "engine ready")
}

func TestNamedLogger(t *testing.T) {
	defer flogging.Reset()
	buf := &bytes.Buffer{}
	flogging.Global.SetWriter(buf)

	t.Run("logger and named (child) logger with different levels", func(t *testing.T) {
		defer buf.Reset()
		logger := flogging.MustGetLogger("factory")
		logger2 := logger.Named("sw")
		flogging.ActivateSpec("factory=info:factory.sw=error")

		logger.Info("from factory")
		logger2.Info("from sw")
		assert.Contains(t, buf.String(), "from factory")
		assert.NotContains(t, buf.String(), "from sw")
	})

	t.Run("named logger where parent logger isn't enabled", func(t *testing.T) {
		logger := flogging.MustGetLogger("cli")
		logger2 := logger.Named("encrypt")
		flogging.ActivateSpec("cli=fatal:cli.encrypt=error")
		logger.Error("from cli")
		logger2.Error("from encrypt")
		assert.NotContains(t, buf.String(), "from cli")
		assert.Contains(t, buf.String(), "from encrypt")
	})
}

func TestInvalidLoggerName(t *testing.T) {
	names := []string{"test*", ".test", "test.", ".", ""}
	for _, name := range names {
		name := name
		t.Run(name, func(t *testing.T) {
			msg := fmt.Sprintf("invalid logger name: %s", name)
			assert.PanicsWithValue(t, msg, func() { flogging.MustGetLogger(name) })
		})
	}
}

func TestLoggerCoreCheck(t *testing.T) {
	logging, err := flogging.New(flogging.Config{})
	assert.NoError(t, err)

	logger := logging.ZapLogger("foo")

	err = logging.ActivateSpec("info")
	assert.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "debug should not be enabled at info level")

	err = logging.ActivateSpec("debug")
	assert.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel), "debug should now be enabled at debug level")
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	logging, err := flogging.New(flogging.Config{Format: "logfmt", Writer: buf})
	require.NoError(t, err)

	logger := logging.Logger("bccsp_sw").With("padding", "pkcs7")
	logger.Warnf("decrypt failed for %d bytes", 17)
	assert.Contains(t, buf.String(), "padding=pkcs7")
	assert.Contains(t, buf.String(), "decrypt failed for 17 bytes")
	assert.True(t, logger.IsEnabledFor(zapcore.WarnLevel))
}
