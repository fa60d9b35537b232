// Package segment turns camera frames into per-pixel foreground
// probability masks using a pretrained person segmentation model.
package segment

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ErrSegmentation wraps every failure of the underlying model.
var ErrSegmentation = errors.New("segmentation failed")

// Model is a pretrained segmentation model treated as a black box.
type Model interface {
	// Predict takes an RGB image and returns a single channel float map of
	// foreground confidences. The map may use the model's own resolution.
	Predict(rgb gocv.Mat) (gocv.Mat, error)

	// Close releases any resources held by the model.
	Close() error
}

// Variant selects which flavour of the selfie segmentation model to use.
type Variant string

const (
	// VariantGeneral is the square 256x256 model.
	VariantGeneral Variant = "general"
	// VariantLandscape is the 256x144 model tuned for webcam framing.
	VariantLandscape Variant = "landscape"
)

// InputSize is the width and height the variant expects.
func (v Variant) InputSize() (image.Point, error) {
	switch v {
	case VariantGeneral:
		return image.Pt(256, 256), nil
	case VariantLandscape:
		return image.Pt(256, 144), nil
	default:
		return image.Point{}, errors.Errorf("unknown model variant %q", string(v))
	}
}

// Selection is the index the MediaPipe API uses for the variant.
func (v Variant) Selection() int {
	if v == VariantLandscape {
		return 1
	}
	return 0
}

// Adapter feeds BGR camera frames to a Model and normalises what comes back.
type Adapter struct {
	model Model
}

func NewAdapter(model Model) *Adapter {
	return &Adapter{model: model}
}

// Segment returns a CV_32FC1 mask with the frame's exact shape and values
// clamped to [0,1]. The caller owns the result.
func (a *Adapter) Segment(frame gocv.Mat) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.Mat{}, errors.Wrap(ErrSegmentation, "empty frame")
	}

	// Capture delivers BGR, the model wants RGB
	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(frame, &rgb, gocv.ColorBGRToRGB)

	raw, err := a.model.Predict(rgb)
	if err != nil {
		return gocv.Mat{}, errors.Wrapf(ErrSegmentation, "%v", err)
	}
	defer raw.Close()

	if raw.Empty() || raw.Channels() != 1 {
		return gocv.Mat{}, errors.Wrapf(ErrSegmentation, "model returned %d channel mask", raw.Channels())
	}

	mask := gocv.NewMat()
	raw.ConvertTo(&mask, gocv.MatTypeCV32F)

	if mask.Rows() != frame.Rows() || mask.Cols() != frame.Cols() {
		resized := gocv.NewMat()
		gocv.Resize(mask, &resized, image.Pt(frame.Cols(), frame.Rows()), 0, 0, gocv.InterpolationLinear)
		mask.Close()
		mask = resized
	}

	// Clamp into [0,1]
	gocv.Threshold(mask, &mask, 1, 1, gocv.ThresholdTrunc)
	gocv.Threshold(mask, &mask, 0, 0, gocv.ThresholdToZero)
	return mask, nil
}

// Close releases the wrapped model.
func (a *Adapter) Close() error {
	return a.model.Close()
}
