// Package clone drives the mirror clone loop: it pulls camera frames,
// segments the person out of them, lays the clones out and reacts to keys.
package clone

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/intothevoid/mirrorclone/pkg/camera"
	"github.com/intothevoid/mirrorclone/pkg/display"
	"github.com/intothevoid/mirrorclone/pkg/vision"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// ErrInterrupted is returned when the user cancels a run.
var ErrInterrupted = errors.New("interrupted by user")

// FrameSource yields camera frames. Frames stay owned by the source.
type FrameSource interface {
	Next() (gocv.Mat, error)
	Close() error
}

// Segmenter produces a CV_32FC1 foreground probability mask for a frame.
type Segmenter interface {
	Segment(frame gocv.Mat) (gocv.Mat, error)
}

// Runner owns one run of the capture, segment, composite, display loop.
type Runner struct {
	Profile   Profile
	Open      func() (FrameSource, error)
	Segmenter Segmenter
	Surface   display.Surface
	KeyWait   time.Duration
	Clock     clock.Clock
	Logger    *zap.SugaredLogger
}

// Run opens the frame source and loops until escape, a failed frame read,
// a fatal error or ctx cancellation. The source is closed on every path.
func (r *Runner) Run(ctx context.Context) (err error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	clk := r.Clock
	if clk == nil {
		clk = clock.New()
	}

	src, err := r.Open()
	if err != nil {
		return errors.Wrap(err, "open frame source")
	}
	defer func() {
		err = multierr.Append(err, src.Close())
		logger.Infof("%s stopped", r.Profile.Title)
	}()

	logger.Infof("%s started", r.Profile.Title)
	if r.Profile.Interactive {
		logger.Info("Controls: 'M' change clone mode, 'B' change background, 'ESC' exit")
	} else {
		logger.Info("Press 'ESC' to exit")
	}

	state := NewState(r.Profile)
	meter := NewFPSMeter(clk)

	delivered := false
	for {
		if ctx.Err() != nil {
			return errors.Wrap(ErrInterrupted, ctx.Err().Error())
		}

		frame, err := src.Next()
		if errors.Is(err, camera.ErrFrameRead) {
			// a camera that never delivers is unavailable, not unplugged
			if !delivered {
				return errors.Wrap(camera.ErrUnavailable, err.Error())
			}
			logger.Warnw("Failed to capture frame", "error", err)
			return nil
		}
		if err != nil {
			return err
		}
		delivered = true

		out, err := r.composite(frame, state)
		if err != nil {
			return err
		}

		if fps, ok := meter.Tick(); ok {
			if r.Profile.Overlay {
				logger.Debugf("FPS: %.1f", fps)
			} else {
				logger.Infof("FPS: %.1f", fps)
			}
		}

		if r.Profile.Overlay {
			fps, ok := meter.Last()
			vision.Annotate(&out, vision.Overlay{
				Mode:       state.Mode().String(),
				Background: state.Background().String(),
				FPS:        fps,
				HasFPS:     ok,
			})
		}

		err = r.Surface.Show(out)
		out.Close()
		if err != nil {
			return errors.Wrap(err, "show frame")
		}

		switch state.HandleKey(r.Surface.PollKey(r.KeyWait)) {
		case ActionQuit:
			return nil
		case ActionModeChanged:
			logger.Infof("Mode changed to: %s", state.Mode())
		case ActionBackgroundChanged:
			logger.Infof("Background changed to: %s", state.Background())
		}
	}
}

// composite turns one frame into the display buffer for the current state.
func (r *Runner) composite(frame gocv.Mat, state *State) (gocv.Mat, error) {
	mask, err := r.Segmenter.Segment(frame)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer mask.Close()

	bg := vision.BuildBackground(frame, state.Background())
	defer bg.Close()

	person, err := vision.ExtractPerson(frame, mask, bg)
	if err != nil {
		return gocv.Mat{}, errors.Wrap(err, "extract person")
	}
	defer person.Close()

	return vision.Render(person, state.Mode())
}
