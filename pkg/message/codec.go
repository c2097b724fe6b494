package message

import "github.com/magnologan/httpmsg/pkg/encoding"

// Codec transforms body bytes to and from a content coding such as
// gzip. Implementations must be pure: same input, same output, no
// retained references to the slices they are given.
type Codec interface {
	Encode(data []byte, coding string) ([]byte, error)
	Decode(data []byte, coding string) ([]byte, error)
}

// stdCodec is the default Codec, backed by pkg/encoding.
type stdCodec struct{}

func (stdCodec) Encode(data []byte, coding string) ([]byte, error) {
	return encoding.Encode(data, coding)
}

func (stdCodec) Decode(data []byte, coding string) ([]byte, error) {
	return encoding.Decode(data, coding)
}
