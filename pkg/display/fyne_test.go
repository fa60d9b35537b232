package display

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestFynePollKey(t *testing.T) {
	f := NewFyne(test.NewApp(), "test")
	defer f.Close()

	assert.Equal(t, KeyNone, f.PollKey(time.Millisecond))

	f.window.Canvas().OnTypedRune()('m')
	f.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyEscape})
	f.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyM}) // ignored, the rune covers it

	assert.Equal(t, Key('m'), f.PollKey(time.Millisecond))
	assert.Equal(t, KeyEscape, f.PollKey(time.Millisecond))
	assert.Equal(t, KeyNone, f.PollKey(time.Millisecond))
}

func TestFyneDropsKeysWhenFull(t *testing.T) {
	f := NewFyne(test.NewApp(), "test")
	defer f.Close()

	for i := 0; i < keyBuffer+5; i++ {
		f.push(Key('b'))
	}
	for i := 0; i < keyBuffer; i++ {
		require.Equal(t, Key('b'), f.PollKey(time.Millisecond))
	}
	assert.Equal(t, KeyNone, f.PollKey(time.Millisecond))
}

func TestFyneStopActsAsEscape(t *testing.T) {
	f := NewFyne(test.NewApp(), "test")
	defer f.Close()

	f.stop()
	f.stop() // closing twice is safe
	assert.Equal(t, KeyEscape, f.PollKey(time.Second))
}

func TestFyneShow(t *testing.T) {
	f := NewFyne(test.NewApp(), "test")
	defer f.Close()

	img := gocv.Zeros(48, 128, gocv.MatTypeCV8UC3)
	defer img.Close()

	require.NoError(t, f.Show(img))
	require.NoError(t, f.Show(img))
	assert.Equal(t, 2, f.view.Frames())
}

func TestRunUnknownBackend(t *testing.T) {
	called := false
	err := Run("terminal", "test", func(Surface) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
