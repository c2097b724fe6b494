// Package message models an HTTP message body as three consistent
// views: raw wire bytes, content-encoding-decoded bytes, and
// charset-decoded text.
//
// Transcoding between the views is lazy and memoized per layer:
//
// - Raw to content uses the Content-Encoding header (gzip, deflate, br, zstd)
// - Content to text uses a charset guessed from Content-Type and the body
// - Writes through any view re-encode downward and refresh Content-Length
// - Cached results are dropped when the bytes or headers they came from change
//
// # Basic Usage
//
//	// Wrap captured wire data
//	msg := message.New()
//	msg.Headers.Add("Content-Encoding", "gzip")
//	msg.Headers.Add("Content-Type", "text/html; charset=utf-8")
//	msg.SetRawContent(wireBytes)
//
//	// Read the decoded views
//	body, err := msg.Content(true)
//	if err != nil {
//		// invalid content coding
//	}
//	text, err := msg.Text(true)
//
//	// Mutate through the text view; raw bytes and
//	// Content-Length follow
//	msg.SetText(strings.ReplaceAll(text, "http://", "https://"))
//
// # Strict and Lenient Reads
//
// Readers take a strict flag. Strict reads fail with a TranscodeError
// when a coding or charset is invalid. Lenient reads never fail: an
// undecodable body passes through as-is and undecodable text keeps its
// bytes with invalid sequences preserved. Lenient results are cached,
// but never reused to answer a later strict read.
//
//	body, _ = msg.Content(false) // never fails
//
// # Body-Wide Replace
//
//	// Rewrite body and headers in one pass
//	n, err := msg.Replace(regexp.MustCompile(`example\.com`), []byte("example.org"))
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - httpmsg_cache_hits_total{layer} - Transcode cache hits
//   - httpmsg_cache_misses_total{layer} - Transcode cache misses
//   - httpmsg_transcode_errors_total{layer} - Strict-mode failures
//   - httpmsg_transcode_fallbacks_total{layer} - Lenient-mode fallbacks
package message
