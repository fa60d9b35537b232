package segment

import (
	"os"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// DNNModel runs an exported selfie segmentation network (ONNX or TFLite)
// through OpenCV's dnn module.
type DNNModel struct {
	net     gocv.Net
	variant Variant
}

// NewDNNModel loads the network at path. The variant decides the input size.
func NewDNNModel(path string, variant Variant) (*DNNModel, error) {
	if _, err := variant.InputSize(); err != nil {
		return nil, err
	}

	// OpenCV aborts on unreadable files, so check first
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(err, "segmentation model")
	}

	net := gocv.ReadNet(path, "")
	if net.Empty() {
		net.Close()
		return nil, errors.Errorf("cannot load segmentation model %s", path)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &DNNModel{net: net, variant: variant}, nil
}

// Predict returns the raw confidence map at the network's resolution.
func (m *DNNModel) Predict(rgb gocv.Mat) (gocv.Mat, error) {
	size, _ := m.variant.InputSize()

	// 1. Normalise to [0,1] and resize to the network input
	blob := gocv.BlobFromImage(rgb, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	// 2. Run inference
	m.net.SetInput(blob, "")
	out := m.net.Forward("")
	defer out.Close()

	if out.Empty() {
		return gocv.Mat{}, errors.New("network produced no output")
	}

	// 3. The output is 1xHxWx1 or 1x1xHxW; both hold H*W contiguous floats
	want := size.X * size.Y
	if out.Total() != want {
		return gocv.Mat{}, errors.Errorf("unexpected output size %d, want %d", out.Total(), want)
	}

	return matFromFloats(size.Y, size.X, out.ToBytes())
}

// Close releases the network.
func (m *DNNModel) Close() error {
	return m.net.Close()
}
