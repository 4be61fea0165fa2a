package advisor

import "errors"

// ErrModelCall wraps any failure of the model provider. It is fatal to the run.
var ErrModelCall = errors.New("model provider call failed")
