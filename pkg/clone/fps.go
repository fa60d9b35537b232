package clone

import (
	"time"

	"github.com/benbjohnson/clock"
)

// fpsWindow is how long frames are counted before a rate is reported.
const fpsWindow = time.Second

// FPSMeter measures frames per second over consecutive one second windows.
type FPSMeter struct {
	clock clock.Clock
	count int
	start time.Time
	last  float64
	ready bool
}

func NewFPSMeter(clk clock.Clock) *FPSMeter {
	return &FPSMeter{clock: clk, start: clk.Now()}
}

// Tick counts one frame. When the current window has lasted at least a
// second it returns the rate over that window, and starts a new one.
func (m *FPSMeter) Tick() (float64, bool) {
	m.count++
	now := m.clock.Now()
	elapsed := now.Sub(m.start)
	if elapsed < fpsWindow {
		return 0, false
	}

	m.last = float64(m.count) / elapsed.Seconds()
	m.ready = true
	m.count = 0
	m.start = now
	return m.last, true
}

// Last is the most recent rate; false until the first window closes.
func (m *FPSMeter) Last() (float64, bool) {
	return m.last, m.ready
}

// Count is the number of frames in the open window.
func (m *FPSMeter) Count() int {
	return m.count
}
