package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"
)

func countLit(t *testing.T, m gocv.Mat, r image.Rectangle) int {
	t.Helper()
	roi := region(m, r)
	defer roi.Close()
	n := 0
	for _, b := range roi.ToBytes() {
		if b != 0 {
			n++
		}
	}
	return n
}

func TestAnnotateWithoutFPS(t *testing.T) {
	img := gocv.Zeros(480, 1280, gocv.MatTypeCV8UC3)
	defer img.Close()

	Annotate(&img, Overlay{Mode: "mirror", Background: "black"})

	assert.Equal(t, 480, img.Rows())
	assert.Equal(t, 1280, img.Cols())
	assert.Positive(t, countLit(t, img, image.Rect(0, 0, 300, 70)), "mode and background labels")
	assert.Positive(t, countLit(t, img, image.Rect(0, 440, 640, 480)), "help line")
	assert.Zero(t, countLit(t, img, image.Rect(1160, 0, 1280, 40)), "no fps before the first window")
}

func TestAnnotateWithFPS(t *testing.T) {
	img := gocv.Zeros(480, 640, gocv.MatTypeCV8UC3)
	defer img.Close()

	Annotate(&img, Overlay{Mode: "quad", Background: "blur", FPS: 29.7, HasFPS: true})

	assert.Positive(t, countLit(t, img, image.Rect(520, 0, 640, 40)))
}
