package preflight

import (
	"context"
	"image"
	"testing"

	"github.com/intothevoid/mirrorclone/pkg/camera"
	"github.com/intothevoid/mirrorclone/pkg/segment"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	pterm.DisableOutput()
}

type fakeCamera struct {
	img    image.Image
	err    error
	closed bool
}

func (c *fakeCamera) Read() (image.Image, error) { return c.img, c.err }

func (c *fakeCamera) Close() error {
	c.closed = true
	return nil
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	var ran []string
	check := func(name string, err error) Check {
		return Check{Name: name, Run: func(context.Context) (string, error) {
			ran = append(ran, name)
			return "ok", err
		}}
	}

	err := Run(context.Background(), "test", []Check{
		check("first", nil),
		check("second", errors.Wrap(ErrDependencyMissing, "nope")),
		check("third", nil),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependencyMissing))
	assert.Contains(t, err.Error(), "second")
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestRunAllPass(t *testing.T) {
	ok := Check{Name: "ok", Run: func(context.Context) (string, error) { return "fine", nil }}
	assert.NoError(t, Run(context.Background(), "test", []Check{ok, ok}))
}

func TestMissingModel(t *testing.T) {
	opts := segment.Options{
		Backend:   segment.BackendDNN,
		ModelPath: "does/not/exist.onnx",
		Variant:   segment.VariantLandscape,
	}
	checks := Requirements(opts)
	last := checks[len(checks)-1]
	require.Equal(t, "Segmentation model", last.Name)

	_, err := last.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependencyMissing))
}

func TestMissingPython(t *testing.T) {
	opts := segment.Options{
		Backend:      segment.BackendPython,
		Python:       "no-such-python-interpreter",
		WorkerScript: "python/segment_worker.py",
		Variant:      segment.VariantLandscape,
	}
	var python Check
	for _, c := range Requirements(opts) {
		if c.Name == "Python" {
			python = c
		}
	}
	require.NotNil(t, python.Run)

	_, err := python.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependencyMissing))
}

func TestWebcamReportsResolution(t *testing.T) {
	cam := &fakeCamera{img: image.NewRGBA(image.Rect(0, 0, 640, 480))}
	check := Webcam(func() (Camera, error) { return cam, nil })

	detail, err := check.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "resolution 640x480", detail)
	assert.True(t, cam.closed)
}

func TestWebcamUnavailable(t *testing.T) {
	check := Webcam(func() (Camera, error) {
		return nil, errors.Wrap(camera.ErrUnavailable, "device 0")
	})
	_, err := check.Run(context.Background())
	assert.True(t, errors.Is(err, camera.ErrUnavailable))

	cam := &fakeCamera{err: camera.ErrFrameRead}
	check = Webcam(func() (Camera, error) { return cam, nil })
	_, err = check.Run(context.Background())
	assert.True(t, errors.Is(err, camera.ErrUnavailable))
	assert.True(t, cam.closed, "camera released after a failed read")
}
