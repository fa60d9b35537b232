package display

import (
	"time"

	"go.uber.org/multierr"
	"gocv.io/x/gocv"
)

// HighGUI is an OpenCV window.
type HighGUI struct {
	window *gocv.Window
}

func NewHighGUI(title string) *HighGUI {
	return &HighGUI{window: gocv.NewWindow(title)}
}

func (h *HighGUI) Show(img gocv.Mat) error {
	h.window.IMShow(img)
	return nil
}

// PollKey also gives the window its chance to repaint.
func (h *HighGUI) PollKey(wait time.Duration) Key {
	ms := int(wait / time.Millisecond)
	if ms < 1 {
		ms = 1 // 0 would block forever
	}
	key := h.window.WaitKey(ms)
	if key < 0 {
		return KeyNone
	}
	return Key(key & 0xFF)
}

func (h *HighGUI) Close() error {
	return h.window.Close()
}

func runHighGUI(title string, fn func(Surface) error) (err error) {
	h := NewHighGUI(title)
	defer func() { err = multierr.Append(err, h.Close()) }()
	return fn(h)
}
