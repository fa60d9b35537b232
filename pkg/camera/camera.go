package camera

import (
	"image"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gocv.io/x/gocv"
)

const (
	DefaultDeviceID = 0
	DefaultWidth    = 640
	DefaultHeight   = 480
)

var (
	// ErrUnavailable means the device could not be opened.
	ErrUnavailable = errors.New("camera unavailable")
	// ErrFrameRead means a read did not produce a valid frame.
	ErrFrameRead = errors.New("cannot read frame")
)

// VideoStream manages the webcam connection
type VideoStream struct {
	deviceID int
	webcam   *gocv.VideoCapture
	frame    *gocv.Mat // Keep a reusable matrix to save memory
	closed   bool
}

// NewVideoStream opens the camera and requests the given capture resolution.
// The device may deliver a different size; callers must use the shape of
// each frame they receive.
func NewVideoStream(id, width, height int) (*VideoStream, error) {
	cam, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "device %d: %v", id, err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, errors.Wrapf(ErrUnavailable, "device %d is not opened", id)
	}

	cam.Set(gocv.VideoCaptureFrameWidth, float64(width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(height))

	mat := gocv.NewMat()
	return &VideoStream{
		deviceID: id,
		webcam:   cam,
		frame:    &mat,
	}, nil
}

// Next reads the next BGR frame. The returned Mat is owned by the stream and
// is only valid until the following call to Next or Close.
func (vs *VideoStream) Next() (gocv.Mat, error) {
	if vs.closed {
		return gocv.Mat{}, errors.Wrapf(ErrFrameRead, "device %d is closed", vs.deviceID)
	}
	if !vs.webcam.Read(vs.frame) {
		return gocv.Mat{}, errors.Wrapf(ErrFrameRead, "device %d", vs.deviceID)
	}
	if vs.frame.Empty() {
		return gocv.Mat{}, errors.Wrapf(ErrFrameRead, "device %d returned an empty frame", vs.deviceID)
	}
	return *vs.frame, nil
}

// Read returns the current frame as a standard Go image
func (vs *VideoStream) Read() (image.Image, error) {
	mat, err := vs.Next()
	if err != nil {
		return nil, err
	}
	return mat.ToImage()
}

// Size reports the resolution the device says it delivers.
func (vs *VideoStream) Size() image.Point {
	return image.Pt(
		int(vs.webcam.Get(gocv.VideoCaptureFrameWidth)),
		int(vs.webcam.Get(gocv.VideoCaptureFrameHeight)),
	)
}

// Close releases the device and the frame buffer. Calling it again is a no-op.
func (vs *VideoStream) Close() error {
	if vs.closed {
		return nil
	}
	vs.closed = true
	return multierr.Append(vs.webcam.Close(), vs.frame.Close())
}
