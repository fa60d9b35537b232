package vision

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"
)

// HelpText is the static controls hint drawn along the bottom edge.
const HelpText = "Press 'M' for mode, 'B' for background, 'ESC' to exit"

var (
	labelColor = color.RGBA{0, 255, 0, 0}
	helpColor  = color.RGBA{255, 255, 255, 0}
	fpsColor   = color.RGBA{255, 255, 0, 0}
)

// Overlay is the text stamped on every enhanced display buffer.
type Overlay struct {
	Mode       string
	Background string
	FPS        float64
	HasFPS     bool // no FPS is drawn until the first measurement window closes
}

// Annotate draws the overlay into img in place.
func Annotate(img *gocv.Mat, o Overlay) {
	modeText := fmt.Sprintf("Mode: %s", strings.ToUpper(o.Mode))
	bgText := fmt.Sprintf("Background: %s", strings.ToUpper(o.Background))

	gocv.PutText(img, modeText, image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, labelColor, 2)
	gocv.PutText(img, bgText, image.Pt(10, 60), gocv.FontHersheySimplex, 0.7, labelColor, 2)
	gocv.PutText(img, HelpText, image.Pt(10, img.Rows()-20), gocv.FontHersheySimplex, 0.5, helpColor, 1)

	// top right corner, fixed offset from the right edge
	if o.HasFPS {
		fpsText := fmt.Sprintf("FPS: %.1f", o.FPS)
		gocv.PutText(img, fpsText, image.Pt(img.Cols()-120, 30), gocv.FontHersheySimplex, 0.7, fpsColor, 2)
	}
}
