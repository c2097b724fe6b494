package message

import (
	"bytes"
	"strconv"

	"github.com/magnologan/httpmsg/pkg/charset"
	"github.com/magnologan/httpmsg/pkg/headers"
)

// Message is an HTTP message body with its headers. The body is held
// in raw wire form and exposed through three views that stay
// consistent under mutation:
//
//   - RawContent: the bytes as they appear on the wire
//   - Content: raw bytes with the Content-Encoding coding undone
//   - Text: content bytes decoded with the Content-Type charset
//
// Decoded views are computed lazily and memoized; any write through
// one view invalidates the others. The strict flag on readers selects
// between failing on broken codings and degrading to a best-effort
// result. A Message is not safe for concurrent use.
type Message struct {
	Headers        *headers.Headers
	HTTPVersion    string
	TimestampStart float64
	TimestampEnd   float64

	rawContent   []byte
	contentCache transformCache[[]byte]
	textCache    transformCache[string]
	codec        Codec
}

// New returns an empty Message with no body.
func New() *Message {
	return &Message{
		Headers: headers.New(),
		codec:   stdCodec{},
	}
}

// SetCodec replaces the content-coding codec (for testing).
func (m *Message) SetCodec(c Codec) {
	if c == nil {
		panic("message: codec must not be nil")
	}
	m.codec = c
}

// HasBody reports whether the message has a body. An empty body is
// still a body; HasBody is false only when no body is present at all.
func (m *Message) HasBody() bool {
	return m.rawContent != nil
}

// RawContent returns the body in wire form, nil when absent.
func (m *Message) RawContent() []byte {
	return m.rawContent
}

// SetRawContent replaces the wire-form body directly. No header is
// updated; use SetContent to keep Content-Length in sync.
func (m *Message) SetRawContent(data []byte) {
	m.rawContent = data
}

// Content returns the body with the Content-Encoding coding undone,
// nil when the message has no body. A missing Content-Encoding header
// means identity. With strict set, an invalid coding returns a
// TranscodeError; otherwise the raw bytes are passed through as if
// already decoded and the degraded result is remembered as such.
func (m *Message) Content(strict bool) ([]byte, error) {
	if m.rawContent == nil {
		return nil, nil
	}
	ce := m.Headers.GetDefault("Content-Encoding", "")
	if m.contentCache.matches(m.rawContent, ce, strict) {
		CacheHits.WithLabelValues(string(LayerContent)).Inc()
		return m.contentCache.output, nil
	}
	CacheMisses.WithLabelValues(string(LayerContent)).Inc()

	isStrict := true
	decoded := m.rawContent
	if ce != "" {
		var err error
		decoded, err = m.codec.Decode(m.rawContent, ce)
		if err != nil {
			if strict {
				TranscodeErrors.WithLabelValues(string(LayerContent)).Inc()
				return nil, &TranscodeError{Layer: LayerContent, Scheme: ce, Err: err}
			}
			TranscodeFallbacks.WithLabelValues(string(LayerContent)).Inc()
			isStrict = false
			decoded = m.rawContent
		}
	}
	m.contentCache = cached(m.rawContent, ce, isStrict, decoded)
	return decoded, nil
}

// SetContent replaces the body with value, encoding it under the
// current Content-Encoding header; nil drops the body entirely. When
// the header names a coding that cannot encode, the header is removed
// and value is stored as-is rather than failing the write. After any
// non-nil write, Content-Length reflects the stored wire bytes.
func (m *Message) SetContent(value []byte) {
	if value == nil {
		m.rawContent = nil
		return
	}
	ce := m.Headers.GetDefault("Content-Encoding", "")
	hit := m.contentCache.populated &&
		m.contentCache.strict &&
		m.contentCache.param == ce &&
		bytes.Equal(m.contentCache.output, value)
	if !hit {
		encoded, err := m.codec.Encode(value, ce)
		if err != nil {
			TranscodeFallbacks.WithLabelValues(string(LayerContent)).Inc()
			m.Headers.Del("Content-Encoding")
			ce = ""
			encoded = value
		}
		m.contentCache = cached(encoded, ce, true, value)
	}
	m.rawContent = m.contentCache.input
	m.Headers.Set("Content-Length", strconv.Itoa(len(m.rawContent)))
}

// Text returns the body decoded with both the Content-Encoding coding
// and the Content-Type charset, "" when the message has no body (use
// HasBody to tell an empty body apart). The charset is guessed per
// GuessCharset. With strict set, an invalid coding or charset returns
// a TranscodeError; otherwise the content bytes are reinterpreted
// as text with invalid sequences preserved, and the degraded result
// is remembered as such.
func (m *Message) Text(strict bool) (string, error) {
	if m.rawContent == nil {
		return "", nil
	}
	content, err := m.Content(strict)
	if err != nil {
		return "", err
	}
	cs := m.guessCharset(content)
	if m.textCache.matches(content, cs, strict) {
		CacheHits.WithLabelValues(string(LayerText)).Inc()
		return m.textCache.output, nil
	}
	CacheMisses.WithLabelValues(string(LayerText)).Inc()

	// A lenient content decode taints the text result too: it must not
	// serve a later strict read.
	isStrict := m.contentCache.strict
	text, err := charset.Decode(content, cs)
	if err != nil {
		if strict {
			TranscodeErrors.WithLabelValues(string(LayerText)).Inc()
			return "", &TranscodeError{Layer: LayerText, Scheme: cs, Err: err}
		}
		TranscodeFallbacks.WithLabelValues(string(LayerText)).Inc()
		isStrict = false
		text = string(content)
	}
	m.textCache = cached(content, cs, isStrict, text)
	return text, nil
}

// SetText replaces the body with text encoded under the guessed
// charset. When that charset is unknown or cannot represent the text,
// the write does not fail: the Content-Type header is rewritten to
// charset=utf-8 (a minimal text/plain is created when no parseable
// Content-Type exists) and the text is stored as UTF-8. The encoded
// bytes then pass through SetContent. To drop the body entirely, use
// SetContent(nil).
func (m *Message) SetText(text string) {
	cs := m.guessCharset(nil)
	hit := m.textCache.populated &&
		m.textCache.strict &&
		m.textCache.param == cs &&
		m.textCache.output == text
	if !hit {
		encoded, err := charset.Encode(text, cs)
		if err != nil {
			TranscodeFallbacks.WithLabelValues(string(LayerText)).Inc()
			ct, ok := headers.ParseContentType(m.Headers.GetDefault("Content-Type", ""))
			if !ok {
				ct = headers.ContentType{Type: "text", Subtype: "plain"}
			}
			ct.SetParam("charset", "utf-8")
			m.Headers.Set("Content-Type", ct.String())
			cs = "utf-8"
			encoded = []byte(text)
		}
		m.textCache = cached(encoded, cs, true, text)
	}
	m.SetContent(m.textCache.input)
}

// Decode replaces the raw body with its decoded content and removes
// the Content-Encoding header. Decoding twice is a no-op. With strict
// set, an invalid coding returns a TranscodeError and the message is
// left unchanged; otherwise the raw bytes survive as-is.
func (m *Message) Decode(strict bool) error {
	content, err := m.Content(strict)
	if err != nil {
		return err
	}
	m.rawContent = content
	m.Headers.Pop("Content-Encoding")
	return nil
}

// Encode sets the Content-Encoding header to coding and re-encodes
// the current raw body under it. The body is not decoded first:
// whatever bytes are present become the input of the new coding.
// The coding is validated against the codec before any header or
// body changes; an unknown coding returns a TranscodeError and leaves
// the message untouched.
func (m *Message) Encode(coding string) error {
	if _, err := m.codec.Encode(nil, coding); err != nil {
		TranscodeErrors.WithLabelValues(string(LayerContent)).Inc()
		return &TranscodeError{Layer: LayerContent, Scheme: coding, Err: err}
	}
	m.Headers.Set("Content-Encoding", coding)
	m.SetContent(m.rawContent)
	return nil
}
