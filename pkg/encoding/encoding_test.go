package encoding

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/flate"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, twice: the quick brown fox jumps over the lazy dog")

	for _, coding := range []string{"identity", "gzip", "deflate", "br", "zstd"} {
		t.Run(coding, func(t *testing.T) {
			encoded, err := Encode(payload, coding)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			decoded, err := Decode(encoded, coding)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !bytes.Equal(decoded, payload) {
				t.Errorf("Decode(Encode(payload)) = %q, want %q", decoded, payload)
			}
		})
	}
}

func TestIdentityAliases(t *testing.T) {
	payload := []byte("unchanged")

	for _, coding := range []string{"", "identity", "none", "Identity", " IDENTITY "} {
		encoded, err := Encode(payload, coding)
		if err != nil {
			t.Fatalf("Encode(%q) error = %v", coding, err)
		}
		if !bytes.Equal(encoded, payload) {
			t.Errorf("Encode(%q) = %q, want input unchanged", coding, encoded)
		}
		decoded, err := Decode(payload, coding)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", coding, err)
		}
		if !bytes.Equal(decoded, payload) {
			t.Errorf("Decode(%q) = %q, want input unchanged", coding, decoded)
		}
	}
}

func TestCodingNameNormalized(t *testing.T) {
	payload := []byte("case test")

	encoded, err := Encode(payload, "GZIP")
	if err != nil {
		t.Fatalf("Encode(GZIP) error = %v", err)
	}
	decoded, err := Decode(encoded, " Gzip ")
	if err != nil {
		t.Fatalf("Decode( Gzip ) error = %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("round trip with mixed-case coding = %q, want %q", decoded, payload)
	}
}

func TestDecodeRawDeflate(t *testing.T) {
	payload := []byte("raw deflate stream without zlib wrapper")

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("flate.NewWriter() error = %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	decoded, err := Decode(buf.Bytes(), "deflate")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("Decode(raw deflate) = %q, want %q", decoded, payload)
	}
}

func TestUnsupportedCoding(t *testing.T) {
	if _, err := Encode([]byte("x"), "super-zip"); !errors.Is(err, ErrUnsupportedCoding) {
		t.Errorf("Encode(super-zip) error = %v, want ErrUnsupportedCoding", err)
	}
	if _, err := Decode([]byte("x"), "super-zip"); !errors.Is(err, ErrUnsupportedCoding) {
		t.Errorf("Decode(super-zip) error = %v, want ErrUnsupportedCoding", err)
	}
}

func TestDecodeCorruptInput(t *testing.T) {
	for _, coding := range []string{"gzip", "zstd"} {
		t.Run(coding, func(t *testing.T) {
			if _, err := Decode([]byte("definitely not compressed"), coding); err == nil {
				t.Errorf("Decode(garbage, %q) succeeded, want error", coding)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		coding string
		want   bool
	}{
		{"gzip", true},
		{"deflate", true},
		{"br", true},
		{"zstd", true},
		{"identity", true},
		{"none", true},
		{"", true},
		{"GZIP", true},
		{"super-zip", false},
		{"compress", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.coding); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.coding, got, tt.want)
		}
	}
}
