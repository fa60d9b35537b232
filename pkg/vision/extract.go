package vision

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ForegroundThreshold is the mask confidence a pixel must exceed to count
// as part of the person.
const ForegroundThreshold = 0.5

// Condition converts a float probability mask into an 8-bit mask that is 255
// where the confidence is strictly above ForegroundThreshold and 0 elsewhere.
func Condition(mask gocv.Mat) gocv.Mat {
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(mask, &binary, ForegroundThreshold, 255, gocv.ThresholdBinary)

	cond := gocv.NewMat()
	binary.ConvertTo(&cond, gocv.MatTypeCV8U)
	return cond
}

// ExtractPerson composites the frame over the background: frame pixels where
// the mask marks foreground, background pixels everywhere else.
// The caller owns the result and must Close it.
func ExtractPerson(frame, mask, background gocv.Mat) (gocv.Mat, error) {
	if err := sameShape(frame, mask); err != nil {
		return gocv.Mat{}, errors.Wrap(err, "mask")
	}
	if err := sameShape(frame, background); err != nil {
		return gocv.Mat{}, errors.Wrap(err, "background")
	}
	if frame.Type() != background.Type() {
		return gocv.Mat{}, errors.Errorf("background type %v does not match frame type %v", background.Type(), frame.Type())
	}

	cond := Condition(mask)
	defer cond.Close()

	person := background.Clone()
	frame.CopyToWithMask(&person, cond)
	return person, nil
}

func sameShape(a, b gocv.Mat) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return errors.Errorf("shape %dx%d does not match frame %dx%d", b.Cols(), b.Rows(), a.Cols(), a.Rows())
	}
	return nil
}
