package cmd

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/intothevoid/mirrorclone/pkg/camera"
	"github.com/intothevoid/mirrorclone/pkg/clone"
	"github.com/intothevoid/mirrorclone/pkg/preflight"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check OpenCV, the segmentation backend and the webcam",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return checkSystem(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkSystem runs the pre-flight checks. Nothing stays open afterwards.
func checkSystem(ctx context.Context) error {
	if err := preflight.Run(ctx, "System Requirements Check", preflight.Requirements(cfg.Segment)); err != nil {
		pterm.Error.Println("System requirements not met")
		return err
	}

	webcam := preflight.Webcam(func() (preflight.Camera, error) {
		stream, err := camera.NewVideoStream(cfg.DeviceID, cfg.Width, cfg.Height)
		if err != nil {
			return nil, err
		}
		return stream, nil
	})
	if err := preflight.Run(ctx, "Webcam Check", []preflight.Check{webcam}); err != nil {
		pterm.Error.Println("Webcam not available")
		return err
	}

	pterm.Success.Println("All checks passed!")
	return nil
}

// runDemo is the guided flow: check, choose a profile, run it.
func runDemo(ctx context.Context) error {
	if err := checkSystem(ctx); err != nil {
		return err
	}

	p, err := chooseProfile()
	if err != nil {
		return err
	}
	pterm.Info.Printfln("Starting %s...", p.Title)
	return runProfile(ctx, p)
}

func chooseProfile() (clone.Profile, error) {
	var name string
	err := huh.NewSelect[string]().
		Title("Choose demo mode").
		Options(
			huh.NewOption("Basic Mirror Clone", clone.Basic.Name),
			huh.NewOption("Enhanced Mirror Clone", clone.Enhanced.Name),
		).
		Value(&name).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return clone.Profile{}, errors.Wrap(clone.ErrInterrupted, "demo mode prompt")
	}
	if err != nil {
		return clone.Profile{}, err
	}
	return clone.ProfileByName(name)
}
