package logger

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	Debugf("clamped %s", "radius")
	Warn("lose sight radius raised", zap.Float32("radius", 10))

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "clamped radius", logs.All()[0].Message)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)

	SetLogger(nil)
	assert.NotNil(t, Zap())
	assert.NoError(t, Sync())
}

func TestInitWithFile(t *testing.T) {
	defer SetLogger(nil)

	dir, err := ioutil.TempDir("", "sightlog")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	v := viper.New()
	v.Set("logger.level", "debug")
	v.Set("logger.dir", dir)
	v.Set("logger.rotation", true)
	v.Set("logger.maxsize", 1)

	Init("sight", v)
	Info("hello")
	Sync()

	_, err = os.Stat(filepath.Join(dir, "sight.log"))
	assert.NoError(t, err)
}
