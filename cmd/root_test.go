package cmd

import (
	"testing"

	"github.com/intothevoid/mirrorclone/pkg/clone"
	"github.com/intothevoid/mirrorclone/pkg/segment"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func init() {
	pterm.DisableOutput()
}

func TestInterruptible(t *testing.T) {
	assert.NoError(t, interruptible(nil))
	assert.NoError(t, interruptible(errors.Wrap(clone.ErrInterrupted, "context canceled")))

	boom := errors.New("boom")
	assert.Equal(t, boom, interruptible(boom))
}

func TestSafelyRecoversPanics(t *testing.T) {
	err := safely(func() error { panic("camera exploded") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera exploded")

	assert.NoError(t, safely(func() error { return nil }))
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"check", "run"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}

	profile := runCmd.Flags().Lookup("profile")
	require.NotNil(t, profile)
	assert.Equal(t, clone.Enhanced.Name, profile.DefValue)
}

func TestErrorsPrintedOnce(t *testing.T) {
	assert.True(t, rootCmd.SilenceErrors)
}

func TestLoadModelMissingFile(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()

	cfg.Segment = segment.Options{
		Backend:   segment.BackendDNN,
		ModelPath: "does/not/exist.onnx",
		Variant:   segment.VariantLandscape,
	}
	model, err := loadModel()
	require.Error(t, err)
	assert.Nil(t, model)
	assert.Contains(t, err.Error(), "load segmentation model")
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel), "debug disabled by default")

	l, err = newLogger(true)
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
}
