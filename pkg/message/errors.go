package message

import "fmt"

// Layer identifies which transcoding step produced an error.
type Layer string

const (
	// LayerContent is the content-coding step (raw bytes to content).
	LayerContent Layer = "content"

	// LayerText is the charset step (content to text).
	LayerText Layer = "text"
)

// TranscodeError reports a failed transcode with the layer it happened
// in and the coding or charset that failed. It wraps the underlying
// codec error for errors.Is/As.
type TranscodeError struct {
	Layer  Layer
	Scheme string
	Err    error
}

// Error implements the error interface.
func (e *TranscodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s transcode with %q failed: %v", e.Layer, e.Scheme, e.Err)
	}
	return fmt.Sprintf("%s transcode with %q failed", e.Layer, e.Scheme)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TranscodeError) Unwrap() error {
	return e.Err
}
