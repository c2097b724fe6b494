// Package encoding implements the HTTP content codings used in
// Content-Encoding headers: identity, gzip, deflate, br and zstd.
// Coding names are matched case-insensitively. Decoding "deflate"
// accepts both zlib-wrapped and raw deflate streams, since servers
// disagree on what that coding means.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// ErrUnsupportedCoding is returned when a coding name is not one of
// the supported content codings.
var ErrUnsupportedCoding = errors.New("unsupported content coding")

// Shared zstd state. EncodeAll/DecodeAll on these are safe for
// concurrent use, so one instance serves the whole process.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic(fmt.Sprintf("encoding: create zstd encoder: %v", err))
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("encoding: create zstd decoder: %v", err))
	}
}

// normalize maps a Content-Encoding token to its lookup form.
func normalize(coding string) string {
	return strings.ToLower(strings.TrimSpace(coding))
}

// Supported reports whether coding names a content coding this
// package can encode and decode.
func Supported(coding string) bool {
	switch normalize(coding) {
	case "", "identity", "none", "gzip", "deflate", "br", "zstd":
		return true
	}
	return false
}

// Decode reverses the given content coding. The identity coding (and
// its aliases "" and "none") returns data unchanged.
func Decode(data []byte, coding string) ([]byte, error) {
	switch normalize(coding) {
	case "", "identity", "none":
		return data, nil
	case "gzip":
		return decodeGzip(data)
	case "deflate":
		return decodeDeflate(data)
	case "br":
		return decodeBrotli(data)
	case "zstd":
		return zstdDecoder.DecodeAll(data, nil)
	default:
		return nil, fmt.Errorf("decode %q: %w", coding, ErrUnsupportedCoding)
	}
}

// Encode applies the given content coding. The identity coding (and
// its aliases "" and "none") returns data unchanged.
func Encode(data []byte, coding string) ([]byte, error) {
	switch normalize(coding) {
	case "", "identity", "none":
		return data, nil
	case "gzip":
		return encodeGzip(data)
	case "deflate":
		return encodeDeflate(data)
	case "br":
		return encodeBrotli(data)
	case "zstd":
		return zstdEncoder.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("encode %q: %w", coding, ErrUnsupportedCoding)
	}
}

func decodeGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decode: %w", err)
	}
	defer r.Close()
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decode: %w", err)
	}
	return decoded, nil
}

func encodeGzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip encode: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeDeflate first tries the zlib-wrapped form the RFC mandates,
// then falls back to a raw deflate stream.
func decodeDeflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err == nil {
		defer r.Close()
		decoded, err := io.ReadAll(r)
		if err == nil {
			return decoded, nil
		}
	}
	raw := flate.NewReader(bytes.NewReader(data))
	defer raw.Close()
	decoded, rawErr := io.ReadAll(raw)
	if rawErr != nil {
		return nil, fmt.Errorf("deflate decode: %w", rawErr)
	}
	return decoded, nil
}

func encodeDeflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("deflate encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("deflate encode: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeBrotli(data []byte) ([]byte, error) {
	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("brotli decode: %w", err)
	}
	return decoded, nil
}

func encodeBrotli(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("brotli encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("brotli encode: %w", err)
	}
	return buf.Bytes(), nil
}
