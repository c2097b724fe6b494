// Package state captures messages into a flat, serializable record
// and restores them from it. The record holds exactly what survives
// persistence: wire bytes, headers with order and spelling, version
// and timestamps. Transcode caches are never persisted; they rebuild
// lazily after a restore.
package state

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/magnologan/httpmsg/pkg/headers"
	"github.com/magnologan/httpmsg/pkg/message"
)

// State is the persisted form of a message.
type State struct {
	RawContent     []byte      `cbor:"raw_content"`
	Headers        [][2]string `cbor:"headers"`
	HTTPVersion    string      `cbor:"http_version"`
	TimestampStart float64     `cbor:"timestamp_start"`
	TimestampEnd   float64     `cbor:"timestamp_end"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("state: create cbor encoder: %v", err))
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("state: create cbor decoder: %v", err))
	}
}

// Capture snapshots m into a State. The snapshot is detached: later
// changes to m do not show through, and an absent body stays
// distinguishable from an empty one.
func Capture(m *message.Message) State {
	var raw []byte
	if m.HasBody() {
		raw = append([]byte{}, m.RawContent()...)
	}
	fields := m.Headers.Fields()
	hs := make([][2]string, len(fields))
	for i, f := range fields {
		hs[i] = [2]string{f.Name, f.Value}
	}
	return State{
		RawContent:     raw,
		Headers:        hs,
		HTTPVersion:    m.HTTPVersion,
		TimestampStart: m.TimestampStart,
		TimestampEnd:   m.TimestampEnd,
	}
}

// Apply overwrites m with the snapshot. Any cached transcodes on m
// fall out of use by themselves, since they no longer match the
// restored bytes and headers.
func (s State) Apply(m *message.Message) {
	fields := make([]headers.Field, len(s.Headers))
	for i, h := range s.Headers {
		fields[i] = headers.Field{Name: h[0], Value: h[1]}
	}
	m.Headers = headers.New(fields...)
	var raw []byte
	if s.RawContent != nil {
		raw = append([]byte{}, s.RawContent...)
	}
	m.SetRawContent(raw)
	m.HTTPVersion = s.HTTPVersion
	m.TimestampStart = s.TimestampStart
	m.TimestampEnd = s.TimestampEnd
}

// Message builds a fresh message from the snapshot.
func (s State) Message() *message.Message {
	m := message.New()
	s.Apply(m)
	return m
}

// Marshal serializes the snapshot as deterministic CBOR.
func Marshal(s State) ([]byte, error) {
	data, err := encMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// Unmarshal restores a snapshot serialized by Marshal.
func Unmarshal(data []byte) (State, error) {
	var s State
	if err := decMode.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return s, nil
}
