package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/intothevoid/mirrorclone/pkg/clone"
	"github.com/intothevoid/mirrorclone/pkg/segment"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is the application version.
const Version = "0.1.0"

var (
	// cfg is filled from the persistent flags
	cfg     = clone.DefaultConfig()
	variant string
	debug   bool

	logger = zap.NewNop().Sugar()
)

// rootCmd checks the system, asks which demo to run and runs it
var rootCmd = &cobra.Command{
	Use:           "mirrorclone",
	Short:         "Mirror Clone System",
	Long:          `Segments the person in front of the webcam and shows mirrored, doubled or quadrupled clones of them in real time.`,
	Version:       Version,
	SilenceErrors: true, // Execute prints the error
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg.Segment.Variant = segment.Variant(variant)
		if err := cfg.Validate(); err != nil {
			return err
		}

		l, err := newLogger(debug)
		if err != nil {
			return errors.Wrap(err, "create logger")
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return interruptible(runDemo(cmd.Context()))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Ctrl+C (SIGINT) or kill (SIGTERM) cancel the running loop
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	defaults := clone.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	flags.IntVarP(&cfg.DeviceID, "device", "d", defaults.DeviceID, "Camera device index")
	flags.IntVar(&cfg.Width, "width", defaults.Width, "Requested capture width")
	flags.IntVar(&cfg.Height, "height", defaults.Height, "Requested capture height")

	flags.StringVar(&cfg.Segment.Backend, "backend", defaults.Segment.Backend, "Segmentation backend: dnn, python")
	flags.StringVarP(&cfg.Segment.ModelPath, "model", "m", defaults.Segment.ModelPath, "Segmentation model for the dnn backend (ONNX or TFLite)")
	flags.StringVar(&variant, "variant", string(defaults.Segment.Variant), "Model variant: landscape, general")
	flags.StringVar(&cfg.Segment.Python, "python", defaults.Segment.Python, "Python interpreter for the python backend")
	flags.StringVar(&cfg.Segment.WorkerScript, "worker-script", defaults.Segment.WorkerScript, "MediaPipe worker script for the python backend")

	flags.StringVar(&cfg.Display, "display", defaults.Display, "Display backend: highgui, fyne")
	flags.DurationVar(&cfg.KeyWait, "key-wait", defaults.KeyWait, "How long each frame waits for a key press")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	if !debug {
		zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// interruptible turns a user interruption into a clean exit.
func interruptible(err error) error {
	if errors.Is(err, clone.ErrInterrupted) {
		pterm.Warning.Println("Interrupted by user")
		return nil
	}
	return err
}
