package vision

import (
	"image"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// patternFrame builds a BGR frame whose bytes are all distinct enough to
// catch flips and misplaced tiles.
func patternFrame(t *testing.T, rows, cols int) gocv.Mat {
	t.Helper()
	data := make([]byte, rows*cols*3)
	for i := range data {
		data[i] = byte((i*7 + i/3) % 251)
	}
	view, err := gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC3, data)
	require.NoError(t, err)
	defer view.Close()
	// the view borrows data, the clone owns its pixels
	m := view.Clone()
	runtime.KeepAlive(data)
	return m
}

func uniformMask(rows, cols int, v float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, 0, 0, 0), rows, cols, gocv.MatTypeCV32FC1)
}

// region copies out a rectangle so it can be compared byte for byte.
func region(m gocv.Mat, r image.Rectangle) gocv.Mat {
	roi := m.Region(r)
	defer roi.Close()
	return roi.Clone()
}

func requireSameMat(t *testing.T, want, got gocv.Mat) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	require.Equal(t, want.Type(), got.Type(), "type")
	require.Equal(t, want.ToBytes(), got.ToBytes())
}

func requireAllBytes(t *testing.T, m gocv.Mat, v byte) {
	t.Helper()
	for i, b := range m.ToBytes() {
		if b != v {
			t.Fatalf("byte %d = %d, want %d", i, b, v)
		}
	}
}
