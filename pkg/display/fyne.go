package display

import (
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/intothevoid/mirrorclone/pkg/ui"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// keyBuffer bounds how many unread key presses are kept.
const keyBuffer = 16

// Fyne is a fyne window showing display buffers in a ui.VideoDisplay.
// Key presses arrive on fyne's goroutine and are queued for PollKey.
type Fyne struct {
	app    fyne.App
	window fyne.Window
	view   *ui.VideoDisplay
	keys   chan Key

	quitOnce   sync.Once
	quit       chan struct{} // closed when the window or app goes away
	appStopped atomic.Bool
}

func NewFyne(a fyne.App, title string) *Fyne {
	f := &Fyne{
		app:    a,
		window: a.NewWindow(title),
		view:   ui.NewVideoDisplay(),
		keys:   make(chan Key, keyBuffer),
		quit:   make(chan struct{}),
	}

	f.window.SetContent(f.view)
	f.window.Resize(fyne.NewSize(1280, 480))

	// Runes carry case ('m' vs 'M'); named keys only matter for escape
	f.window.Canvas().SetOnTypedRune(func(r rune) {
		f.push(Key(r))
	})
	f.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			f.push(KeyEscape)
		}
	})

	// Closing the window behaves like pressing escape
	f.window.SetCloseIntercept(f.stop)
	a.Lifecycle().SetOnStopped(func() {
		f.appStopped.Store(true)
		f.stop()
	})
	return f
}

func (f *Fyne) push(k Key) {
	select {
	case f.keys <- k:
	default: // drop presses nobody is reading
	}
}

func (f *Fyne) stop() {
	f.quitOnce.Do(func() { close(f.quit) })
}

func (f *Fyne) Show(img gocv.Mat) error {
	frame, err := img.ToImage()
	if err != nil {
		return errors.Wrap(err, "convert display buffer")
	}
	f.view.UpdateFrame(frame)
	return nil
}

func (f *Fyne) PollKey(wait time.Duration) Key {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case k := <-f.keys:
		return k
	case <-f.quit:
		return KeyEscape
	case <-timer.C:
		return KeyNone
	}
}

// Close quits the fyne application, which also closes the window.
func (f *Fyne) Close() error {
	f.stop()
	if !f.appStopped.Load() {
		fyne.Do(f.app.Quit)
	}
	return nil
}

func runFyne(title string, fn func(Surface) error) error {
	a := app.New()
	f := NewFyne(a, title)

	done := make(chan error, 1)
	go func() {
		err := fn(f)
		f.Close()
		done <- err
	}()

	// fyne needs the main goroutine for its event loop
	f.window.ShowAndRun()
	return <-done
}
