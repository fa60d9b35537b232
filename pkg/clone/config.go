package clone

import (
	"time"

	"github.com/intothevoid/mirrorclone/pkg/camera"
	"github.com/intothevoid/mirrorclone/pkg/display"
	"github.com/intothevoid/mirrorclone/pkg/segment"
	"github.com/pkg/errors"
)

// Config holds everything a run needs besides the profile.
type Config struct {
	DeviceID int // camera index
	Width    int // requested capture width
	Height   int // requested capture height

	Segment segment.Options

	Display string        // display backend, see display.Run
	KeyWait time.Duration // key poll timeout, also paces the display
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		DeviceID: camera.DefaultDeviceID,
		Width:    camera.DefaultWidth,
		Height:   camera.DefaultHeight,
		Segment: segment.Options{
			Backend:      segment.BackendDNN,
			ModelPath:    "models/selfie_segmentation_landscape.onnx",
			Variant:      segment.VariantLandscape,
			Python:       "python3",
			WorkerScript: "python/segment_worker.py",
		},
		Display: display.BackendHighGUI,
		KeyWait: time.Millisecond,
	}
}

// Validate rejects settings that cannot work before anything is opened.
func (c Config) Validate() error {
	if c.DeviceID < 0 {
		return errors.Errorf("device must not be negative, got %d", c.DeviceID)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("capture size must be positive, got %dx%d", c.Width, c.Height)
	}
	if _, err := c.Segment.Variant.InputSize(); err != nil {
		return err
	}
	switch c.Segment.Backend {
	case segment.BackendDNN:
		if c.Segment.ModelPath == "" {
			return errors.New("the dnn backend needs a model path")
		}
	case segment.BackendPython:
		if c.Segment.Python == "" || c.Segment.WorkerScript == "" {
			return errors.New("the python backend needs an interpreter and a worker script")
		}
	default:
		return errors.Errorf("unknown segmentation backend %q", c.Segment.Backend)
	}
	switch c.Display {
	case display.BackendHighGUI, display.BackendFyne:
	default:
		return errors.Errorf("unknown display backend %q", c.Display)
	}
	if c.KeyWait <= 0 {
		return errors.Errorf("key wait must be positive, got %v", c.KeyWait)
	}
	return nil
}
