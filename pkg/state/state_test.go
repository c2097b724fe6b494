package state

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/magnologan/httpmsg/pkg/headers"
	"github.com/magnologan/httpmsg/pkg/message"
)

func sampleMessage(t *testing.T) *message.Message {
	t.Helper()
	m := message.New()
	m.Headers.Add("Content-Type", "text/plain; charset=utf-8")
	m.Headers.Add("X-Custom", "one")
	m.Headers.Add("x-custom", "two")
	m.HTTPVersion = "HTTP/1.1"
	m.TimestampStart = 1724400000.25
	m.TimestampEnd = 1724400001.5
	m.SetContent([]byte("snapshot me"))
	return m
}

func TestCaptureApplyRoundTrip(t *testing.T) {
	m := sampleMessage(t)
	s := Capture(m)

	restored := s.Message()

	if !bytes.Equal(restored.RawContent(), m.RawContent()) {
		t.Errorf("raw content = %q, want %q", restored.RawContent(), m.RawContent())
	}
	if !reflect.DeepEqual(restored.Headers.Fields(), m.Headers.Fields()) {
		t.Errorf("headers = %v, want %v", restored.Headers.Fields(), m.Headers.Fields())
	}
	if restored.HTTPVersion != "HTTP/1.1" {
		t.Errorf("HTTPVersion = %q", restored.HTTPVersion)
	}
	if restored.TimestampStart != 1724400000.25 || restored.TimestampEnd != 1724400001.5 {
		t.Errorf("timestamps = %v, %v", restored.TimestampStart, restored.TimestampEnd)
	}

	text, err := restored.Text(true)
	if err != nil {
		t.Fatalf("Text() on restored message error = %v", err)
	}
	if text != "snapshot me" {
		t.Errorf("Text() = %q", text)
	}
}

func TestCaptureIsDetached(t *testing.T) {
	m := sampleMessage(t)
	s := Capture(m)

	m.SetContent([]byte("changed afterwards"))
	m.Headers.Set("X-Custom", "three")

	if string(s.RawContent) != "snapshot me" {
		t.Errorf("snapshot raw content = %q, want untouched", s.RawContent)
	}
	if s.Headers[1][1] != "one" {
		t.Errorf("snapshot header = %v, want untouched", s.Headers[1])
	}
}

func TestAbsentAndEmptyBody(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		s := Capture(message.New())
		if s.RawContent != nil {
			t.Errorf("RawContent = %v, want nil", s.RawContent)
		}
		if s.Message().HasBody() {
			t.Error("restored message has a body")
		}
	})

	t.Run("empty", func(t *testing.T) {
		m := message.New()
		m.SetContent([]byte{})
		s := Capture(m)
		if s.RawContent == nil {
			t.Fatal("RawContent = nil, want empty non-nil")
		}
		if !s.Message().HasBody() {
			t.Error("restored message lost its empty body")
		}
	})
}

func TestApplyOverwritesUsedMessage(t *testing.T) {
	m := message.New()
	m.Headers.Add("Content-Encoding", "gzip")
	m.SetContent([]byte("old body"))
	if _, err := m.Content(true); err != nil {
		t.Fatalf("Content() error = %v", err)
	}

	s := Capture(sampleMessage(t))
	s.Apply(m)

	if m.Headers.Has("Content-Encoding") {
		t.Error("stale header survived Apply")
	}
	content, err := m.Content(true)
	if err != nil {
		t.Fatalf("Content() after Apply error = %v", err)
	}
	if string(content) != "snapshot me" {
		t.Errorf("Content() = %q, want restored body", content)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := Capture(sampleMessage(t))

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("Unmarshal(Marshal(s)) = %+v, want %+v", got, s)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	s := Capture(sampleMessage(t))

	a, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	b, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Marshal() not deterministic for equal input")
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte("not cbor at all")); err == nil {
		t.Error("Unmarshal(garbage) succeeded")
	}
}

func TestApplyHeaderSpellingPreserved(t *testing.T) {
	m := message.New()
	m.Headers.Add("X-MiXeD-CaSe", "v")
	s := Capture(m)

	restored := s.Message()
	want := []headers.Field{{Name: "X-MiXeD-CaSe", Value: "v"}}
	if !reflect.DeepEqual(restored.Headers.Fields(), want) {
		t.Errorf("headers = %v, want spelling preserved", restored.Headers.Fields())
	}
}
