package cmd

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/intothevoid/mirrorclone/pkg/camera"
	"github.com/intothevoid/mirrorclone/pkg/clone"
	"github.com/intothevoid/mirrorclone/pkg/display"
	"github.com/intothevoid/mirrorclone/pkg/segment"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var profileName string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demo profile without the system check",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		p, err := clone.ProfileByName(profileName)
		if err != nil {
			return err
		}
		return interruptible(runProfile(cmd.Context(), p))
	},
}

func init() {
	runCmd.Flags().StringVarP(&profileName, "profile", "p", clone.Enhanced.Name, "Demo profile: basic, enhanced")
	rootCmd.AddCommand(runCmd)
}

// runProfile loads the model, opens the window and runs the loop. Model,
// camera and window are released on every exit path.
func runProfile(ctx context.Context, p clone.Profile) (err error) {
	model, err := loadModel()
	if err != nil {
		return err
	}
	seg := segment.NewAdapter(model)
	defer func() { err = multierr.Append(err, seg.Close()) }()

	return display.Run(cfg.Display, p.Title, func(s display.Surface) error {
		runner := &clone.Runner{
			Profile:   p,
			Open:      openCamera,
			Segmenter: seg,
			Surface:   s,
			KeyWait:   cfg.KeyWait,
			Clock:     clock.New(),
			Logger:    logger,
		}
		return safely(func() error { return runner.Run(ctx) })
	})
}

// loadModel opens the segmentation backend behind a spinner, or behind
// plain messages when the terminal cannot show one.
func loadModel() (segment.Model, error) {
	const msg = "Loading segmentation model..."
	spinner, err := pterm.DefaultSpinner.Start(msg)
	if err != nil {
		logger.Debugw("spinner unavailable", "error", err)
		spinner = nil
		pterm.Info.Println(msg)
	}

	model, err := segment.Open(cfg.Segment)
	if err != nil {
		if spinner != nil {
			spinner.Fail("Segmentation model failed to load")
		}
		return nil, errors.Wrap(err, "load segmentation model")
	}
	if spinner != nil {
		spinner.Success("Segmentation model loaded")
	} else {
		pterm.Success.Println("Segmentation model loaded")
	}
	return model, nil
}

func openCamera() (clone.FrameSource, error) {
	stream, err := camera.NewVideoStream(cfg.DeviceID, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	logger.Debugw("camera opened", "device", cfg.DeviceID, "size", stream.Size())
	return stream, nil
}

// safely converts a panic in fn into an error so deferred cleanup still
// runs and the user gets a message instead of a crash dump.
func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("unexpected failure: %v", r)
		}
	}()
	return fn()
}
