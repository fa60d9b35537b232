// Package display presents display buffers in a window and reports the keys
// pressed in it.
package display

import (
	"time"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Key is a key code as reported by the window, or KeyNone.
type Key int

const (
	KeyNone   Key = -1
	KeyEscape Key = 27
)

// Backend names accepted by Run.
const (
	BackendHighGUI = "highgui"
	BackendFyne    = "fyne"
)

// Surface is a window that shows BGR images and can be polled for keys.
type Surface interface {
	// Show presents img. The surface does not keep a reference to it.
	Show(img gocv.Mat) error

	// PollKey waits at most wait for a key press and returns KeyNone if
	// there was none.
	PollKey(wait time.Duration) Key

	// Close destroys the window.
	Close() error
}

// Run opens a surface of the given backend titled title, calls fn with it
// and closes it afterwards, whatever fn returns. Backends that need to own
// the main goroutine run fn on another one and block until it returns.
func Run(backend, title string, fn func(Surface) error) error {
	switch backend {
	case BackendHighGUI:
		return runHighGUI(title, fn)
	case BackendFyne:
		return runFyne(title, fn)
	default:
		return errors.Errorf("unknown display backend %q", backend)
	}
}
