package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// Background selects what replaces the pixels outside the person.
type Background int

const (
	BackgroundBlack Background = iota
	BackgroundWhite
	BackgroundBlur
)

// blurKernel is the side of the square Gaussian kernel used for BackgroundBlur.
const blurKernel = 21

func (b Background) String() string {
	switch b {
	case BackgroundBlack:
		return "black"
	case BackgroundWhite:
		return "white"
	case BackgroundBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// BuildBackground returns a new Mat with the same shape and type as frame.
// The caller owns the result and must Close it.
func BuildBackground(frame gocv.Mat, kind Background) gocv.Mat {
	switch kind {
	case BackgroundWhite:
		white := gocv.NewScalar(255, 255, 255, 255)
		return gocv.NewMatWithSizeFromScalar(white, frame.Rows(), frame.Cols(), frame.Type())
	case BackgroundBlur:
		// sigma 0 lets OpenCV derive it from the kernel size
		blurred := gocv.NewMat()
		gocv.GaussianBlur(frame, &blurred, image.Pt(blurKernel, blurKernel), 0, 0, gocv.BorderDefault)
		return blurred
	default:
		return gocv.Zeros(frame.Rows(), frame.Cols(), frame.Type())
	}
}
