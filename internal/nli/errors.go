package nli

import "errors"

// ErrModelUnavailable marks a startup failure to reach the inference
// capability. The command loop does not start when it is returned.
var ErrModelUnavailable = errors.New("NLI model unavailable")
