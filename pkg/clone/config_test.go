package clone

import (
	"testing"

	"github.com/intothevoid/mirrorclone/pkg/segment"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.DeviceID)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, segment.VariantLandscape, cfg.Segment.Variant)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative device", func(c *Config) { c.DeviceID = -1 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"bad variant", func(c *Config) { c.Segment.Variant = "portrait" }},
		{"bad backend", func(c *Config) { c.Segment.Backend = "tpu" }},
		{"dnn without model", func(c *Config) { c.Segment.ModelPath = "" }},
		{"python without script", func(c *Config) {
			c.Segment.Backend = segment.BackendPython
			c.Segment.WorkerScript = ""
		}},
		{"bad display", func(c *Config) { c.Display = "terminal" }},
		{"zero key wait", func(c *Config) { c.KeyWait = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
