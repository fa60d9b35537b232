package vision

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Mode is a clone layout.
type Mode int

const (
	ModeMirror Mode = iota
	ModeDouble
	ModeQuad
)

// flip codes understood by gocv.Flip
const (
	flipVertical   = 0
	flipHorizontal = 1
	flipBoth       = -1
)

func (m Mode) String() string {
	switch m {
	case ModeMirror:
		return "mirror"
	case ModeDouble:
		return "double"
	case ModeQuad:
		return "quad"
	default:
		return "unknown"
	}
}

// Render arranges copies of the extracted person into a display buffer.
// The input is never modified; the caller owns the result.
func Render(person gocv.Mat, mode Mode) (gocv.Mat, error) {
	if person.Empty() {
		return gocv.Mat{}, errors.New("cannot render an empty image")
	}

	switch mode {
	case ModeMirror:
		return mirrorLayout(person), nil
	case ModeDouble:
		return doubleLayout(person), nil
	case ModeQuad:
		return quadLayout(person)
	default:
		return gocv.Mat{}, errors.Errorf("unknown layout mode %d", int(mode))
	}
}

// mirrorLayout places the person next to its horizontal reflection.
func mirrorLayout(person gocv.Mat) gocv.Mat {
	mirrored := gocv.NewMat()
	defer mirrored.Close()
	gocv.Flip(person, &mirrored, flipHorizontal)

	out := gocv.NewMat()
	gocv.Hconcat(person, mirrored, &out)
	return out
}

// doubleLayout places two unmodified copies side by side.
func doubleLayout(person gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.Hconcat(person, person, &out)
	return out
}

// HalfScale resizes the image to exactly half its width and height
// (rounded down) with bilinear interpolation.
func HalfScale(img gocv.Mat) gocv.Mat {
	small := gocv.NewMat()
	gocv.Resize(img, &small, image.Pt(img.Cols()/2, img.Rows()/2), 0, 0, gocv.InterpolationLinear)
	return small
}

// quadLayout builds a 2x2 grid from the half-scale image:
//
//	normal   | mirrored
//	inverted | both
//
// The output always has the input's shape; odd dimensions get one black
// row/column of padding at the bottom/right.
func quadLayout(person gocv.Mat) (gocv.Mat, error) {
	if person.Cols() < 2 || person.Rows() < 2 {
		return gocv.Mat{}, errors.Errorf("quad layout needs at least 2x2 pixels, got %dx%d", person.Cols(), person.Rows())
	}

	small := HalfScale(person)
	defer small.Close()

	mirrored := gocv.NewMat()
	defer mirrored.Close()
	gocv.Flip(small, &mirrored, flipHorizontal)

	inverted := gocv.NewMat()
	defer inverted.Close()
	gocv.Flip(small, &inverted, flipVertical)

	both := gocv.NewMat()
	defer both.Close()
	gocv.Flip(small, &both, flipBoth)

	top := gocv.NewMat()
	defer top.Close()
	gocv.Hconcat(small, mirrored, &top)

	bottom := gocv.NewMat()
	defer bottom.Close()
	gocv.Hconcat(inverted, both, &bottom)

	grid := gocv.NewMat()
	gocv.Vconcat(top, bottom, &grid)

	padRows := person.Rows() - grid.Rows()
	padCols := person.Cols() - grid.Cols()
	if padRows == 0 && padCols == 0 {
		return grid, nil
	}
	defer grid.Close()

	out := gocv.NewMat()
	gocv.CopyMakeBorder(grid, &out, 0, padRows, 0, padCols, gocv.BorderConstant, color.RGBA{})
	return out, nil
}
