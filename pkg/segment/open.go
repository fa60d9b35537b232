package segment

import "github.com/pkg/errors"

// Backend names accepted by Open.
const (
	BackendDNN    = "dnn"
	BackendPython = "python"
)

// Options picks and configures a Model.
type Options struct {
	Backend      string
	ModelPath    string // network file for the dnn backend
	Variant      Variant
	Python       string // interpreter for the python backend
	WorkerScript string
}

// Open builds the Model described by opts.
func Open(opts Options) (Model, error) {
	switch opts.Backend {
	case BackendDNN:
		return NewDNNModel(opts.ModelPath, opts.Variant)
	case BackendPython:
		return NewPythonModel(opts.Python, opts.WorkerScript, opts.Variant)
	default:
		return nil, errors.Errorf("unknown segmentation backend %q", opts.Backend)
	}
}
