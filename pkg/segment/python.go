package segment

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// worker reply status bytes
const (
	statusOK    byte = 0
	statusError byte = 1
)

// PythonModel hosts MediaPipe selfie segmentation in a Python child process.
//
// Protocol, every message prefixed with a big endian uint32 length:
//
//	request (stdin):  [rows uint32][cols uint32][rgb bytes]
//	reply   (fd 3):   [status byte][rows*cols little endian float32] or [status byte][error text]
type PythonModel struct {
	Cmd      *exec.Cmd
	Stderr   *LogBuffer // worker logs, kept for crash reports
	Stdin    io.WriteCloser
	DataPipe io.ReadCloser

	waitOnce sync.Once
	waitErr  error
}

// LogBuffer collects worker output. os/exec writes to it from its own
// goroutine while the worker runs.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *LogBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *LogBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// NewPythonModel starts python running the worker script for the variant.
func NewPythonModel(python, script string, variant Variant) (*PythonModel, error) {
	cmd := exec.Command(python, "-u", script, "--model-selection", strconv.Itoa(variant.Selection()))
	return startWorker(cmd)
}

// startWorker wires the pipes of cmd and starts it.
func startWorker(cmd *exec.Cmd) (*PythonModel, error) {
	logs := &LogBuffer{}
	cmd.Stderr = logs

	// Side channel pipe (FD 3) so stray prints on stdout cannot corrupt replies
	r, w, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(err, "create data pipe")
	}
	cmd.ExtraFiles = []*os.File{w}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		w.Close()
		r.Close()
		return nil, errors.Wrap(err, "create stdin pipe")
	}

	if err := cmd.Start(); err != nil {
		w.Close()
		r.Close()
		return nil, errors.Wrapf(err, "start %s", cmd.Path)
	}

	// Only the child holds the write end now
	w.Close()

	return &PythonModel{
		Cmd:      cmd,
		Stderr:   logs,
		Stdin:    stdin,
		DataPipe: r,
	}, nil
}

// Predict sends the RGB pixels to the worker and decodes the mask it returns.
func (p *PythonModel) Predict(rgb gocv.Mat) (gocv.Mat, error) {
	rows, cols := rgb.Rows(), rgb.Cols()

	if err := writeRequest(p.Stdin, rows, cols, rgb.ToBytes()); err != nil {
		return gocv.Mat{}, p.crashed(err)
	}
	status, payload, err := readReply(p.DataPipe)
	if err != nil {
		return gocv.Mat{}, p.crashed(err)
	}
	return decodeMask(status, payload, rows, cols)
}

func writeRequest(w io.Writer, rows, cols int, pixels []byte) error {
	var header [12]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(8+len(pixels)))
	binary.BigEndian.PutUint32(header[4:8], uint32(rows))
	binary.BigEndian.PutUint32(header[8:12], uint32(cols))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(pixels)
	return err
}

// readReply reads one framed reply and splits off its status byte.
func readReply(r io.Reader) (byte, []byte, error) {
	var size uint32
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return 0, nil, err
	}
	if size == 0 {
		return 0, nil, errors.New("empty worker reply")
	}

	var status [1]byte
	if _, err := io.ReadFull(r, status[:]); err != nil {
		return 0, nil, err
	}
	payload := make([]byte, size-1)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}
	return status[0], payload, nil
}

// crashed is called when a pipe to the worker broke. The worker is stopped
// first so its traceback is complete before it is attached.
func (p *PythonModel) crashed(err error) error {
	if p.Cmd != nil && p.Cmd.Process != nil {
		p.Cmd.Process.Kill()
		p.wait()
	}
	if p.Stderr == nil {
		return err
	}
	if logs := p.Stderr.String(); logs != "" {
		return errors.Wrapf(err, "worker logs:\n%s", logs)
	}
	return err
}

func (p *PythonModel) wait() error {
	p.waitOnce.Do(func() { p.waitErr = p.Cmd.Wait() })
	return p.waitErr
}

func decodeMask(status byte, payload []byte, rows, cols int) (gocv.Mat, error) {
	switch status {
	case statusOK:
	case statusError:
		return gocv.Mat{}, errors.Errorf("worker: %s", payload)
	default:
		return gocv.Mat{}, errors.Errorf("unknown worker status %d", status)
	}

	if want := rows * cols * 4; len(payload) != want {
		return gocv.Mat{}, errors.Errorf("worker mask has %d bytes, want %d", len(payload), want)
	}
	return matFromFloats(rows, cols, payload)
}

// matFromFloats copies little endian float32 data into a new CV_32FC1 Mat.
func matFromFloats(rows, cols int, data []byte) (gocv.Mat, error) {
	view, err := gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV32F, data)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer view.Close()

	// the view borrows data, the clone owns its memory
	mask := view.Clone()
	runtime.KeepAlive(data)
	return mask, nil
}

// Close stops the worker by closing its input and waits for it to exit.
func (p *PythonModel) Close() error {
	p.Stdin.Close()
	p.DataPipe.Close()
	if p.Cmd == nil {
		return nil
	}
	return p.wait()
}
