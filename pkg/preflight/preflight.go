// Package preflight checks that OpenCV, the segmentation backend and the
// webcam are usable before a run acquires anything.
package preflight

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/intothevoid/mirrorclone/pkg/camera"
	"github.com/intothevoid/mirrorclone/pkg/segment"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"go.uber.org/multierr"
	"gocv.io/x/gocv"
)

// ErrDependencyMissing means a library, model or tool the run needs is absent.
var ErrDependencyMissing = errors.New("dependency missing")

// Check is one diagnostic. Run returns a short detail line on success.
type Check struct {
	Name string
	Hint string // how to fix a failure
	Run  func(ctx context.Context) (string, error)
}

// Run prints a section titled title and runs the checks in order, stopping
// at the first failure.
func Run(ctx context.Context, title string, checks []Check) error {
	pterm.DefaultSection.Println(title)
	for _, c := range checks {
		detail, err := c.Run(ctx)
		if err != nil {
			pterm.Error.Printfln("%s: %v", c.Name, err)
			if c.Hint != "" {
				pterm.Info.Println(c.Hint)
			}
			return errors.Wrap(err, c.Name)
		}
		pterm.Success.Printfln("%s: %s", c.Name, detail)
	}
	return nil
}

// Requirements lists the library and model checks for the given backend.
func Requirements(opts segment.Options) []Check {
	checks := []Check{
		{
			Name: "Go runtime",
			Run: func(context.Context) (string, error) {
				return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH), nil
			},
		},
		{
			Name: "OpenCV",
			Hint: "Install OpenCV and rebuild, see https://gocv.io/getting-started/",
			Run: func(context.Context) (string, error) {
				v := gocv.OpenCVVersion()
				if v == "" {
					return "", errors.Wrap(ErrDependencyMissing, "OpenCV version unavailable")
				}
				return fmt.Sprintf("OpenCV %s, GoCV %s", v, gocv.Version()), nil
			},
		},
	}

	switch opts.Backend {
	case segment.BackendPython:
		checks = append(checks, pythonChecks(opts)...)
	default:
		checks = append(checks, Check{
			Name: "Segmentation model",
			Hint: "Export the MediaPipe selfie segmentation model to ONNX and pass its path with --model",
			Run: func(context.Context) (string, error) {
				return loadModel(opts)
			},
		})
	}
	return checks
}

func loadModel(opts segment.Options) (string, error) {
	if _, err := os.Stat(opts.ModelPath); err != nil {
		return "", errors.Wrapf(ErrDependencyMissing, "model %s: %v", opts.ModelPath, err)
	}
	model, err := segment.NewDNNModel(opts.ModelPath, opts.Variant)
	if err != nil {
		return "", errors.Wrapf(ErrDependencyMissing, "%v", err)
	}
	if err := model.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s)", opts.ModelPath, opts.Variant), nil
}

func pythonChecks(opts segment.Options) []Check {
	return []Check{
		{
			Name: "Python",
			Hint: "Install Python 3 or pass the interpreter with --python",
			Run: func(ctx context.Context) (string, error) {
				path, err := exec.LookPath(opts.Python)
				if err != nil {
					return "", errors.Wrapf(ErrDependencyMissing, "%v", err)
				}
				out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
				if err != nil {
					return "", errors.Wrapf(ErrDependencyMissing, "%s --version: %v", path, err)
				}
				return strings.TrimSpace(string(out)), nil
			},
		},
		{
			Name: "MediaPipe",
			Hint: "pip install mediapipe numpy",
			Run: func(ctx context.Context) (string, error) {
				script := "import mediapipe, numpy; print(mediapipe.__version__, numpy.__version__)"
				out, err := exec.CommandContext(ctx, opts.Python, "-c", script).CombinedOutput()
				if err != nil {
					return "", errors.Wrapf(ErrDependencyMissing, "%s", strings.TrimSpace(string(out)))
				}
				fields := strings.Fields(string(out))
				if len(fields) != 2 {
					return strings.TrimSpace(string(out)), nil
				}
				return fmt.Sprintf("MediaPipe %s, NumPy %s", fields[0], fields[1]), nil
			},
		},
		{
			Name: "Worker script",
			Hint: "Pass the path of segment_worker.py with --worker-script",
			Run: func(context.Context) (string, error) {
				if _, err := os.Stat(opts.WorkerScript); err != nil {
					return "", errors.Wrapf(ErrDependencyMissing, "%v", err)
				}
				return opts.WorkerScript, nil
			},
		},
	}
}

// Camera is the part of camera.VideoStream the webcam check needs.
type Camera interface {
	Read() (image.Image, error)
	Close() error
}

// Webcam opens the camera, reads one frame to learn the resolution and
// releases it again.
func Webcam(open func() (Camera, error)) Check {
	return Check{
		Name: "Webcam",
		Hint: "Make sure a webcam is connected and not in use by another application",
		Run: func(context.Context) (detail string, err error) {
			cam, err := open()
			if err != nil {
				return "", err
			}
			defer func() { err = multierr.Append(err, cam.Close()) }()

			img, err := cam.Read()
			if err != nil {
				return "", errors.Wrapf(camera.ErrUnavailable, "%v", err)
			}
			b := img.Bounds()
			return fmt.Sprintf("resolution %dx%d", b.Dx(), b.Dy()), nil
		},
	}
}
