// Package testutil provides shared test helpers.
package testutil

import "github.com/magnologan/httpmsg/pkg/encoding"

// CountingCodec performs the standard content codings while counting
// calls, so tests can assert how often a message really transcodes
// versus serving from cache.
type CountingCodec struct {
	Encodes int
	Decodes int
}

// Encode counts the call and delegates to the standard codec.
func (c *CountingCodec) Encode(data []byte, coding string) ([]byte, error) {
	c.Encodes++
	return encoding.Encode(data, coding)
}

// Decode counts the call and delegates to the standard codec.
func (c *CountingCodec) Decode(data []byte, coding string) ([]byte, error) {
	c.Decodes++
	return encoding.Decode(data, coding)
}

// Reset zeroes both counters.
func (c *CountingCodec) Reset() {
	c.Encodes = 0
	c.Decodes = 0
}
