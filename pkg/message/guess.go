package message

import (
	"regexp"
	"strings"

	"github.com/magnologan/httpmsg/pkg/headers"
)

// metaCharsetRE extracts the charset from an HTML meta tag, covering
// both <meta charset="..."> and the http-equiv Content-Type form.
var metaCharsetRE = regexp.MustCompile(`(?i)<meta[^>]+charset=['"]?([^'">]+)`)

// metaSniffWindow bounds how far into the body the meta tag search
// looks.
const metaSniffWindow = 1024

// GuessCharset returns the charset used for the Text view: the
// charset parameter of Content-Type when present, UTF-8 when the
// Content-Type value mentions "json", a charset declared in an HTML
// meta tag near the start of the body, and latin-1 as the final
// fallback. GB2312 and GBK answers are widened to their GB 18030
// superset. This is heuristic policy for real-world traffic, not a
// protocol guarantee.
func (m *Message) GuessCharset() string {
	content, _ := m.Content(false)
	return m.guessCharset(content)
}

func (m *Message) guessCharset(content []byte) string {
	ctValue := m.Headers.GetDefault("Content-Type", "")
	var cs string
	if ct, ok := headers.ParseContentType(ctValue); ok {
		if v, ok := ct.Param("charset"); ok {
			cs = v
		}
	}
	if cs == "" {
		window := content
		if len(window) > metaSniffWindow {
			window = window[:metaSniffWindow]
		}
		if strings.Contains(ctValue, "json") {
			cs = "utf-8"
		} else if match := metaCharsetRE.FindSubmatch(window); match != nil {
			cs = string(match[1])
		} else {
			cs = "latin-1"
		}
	}
	// GB 18030 decodes everything its two predecessors do, so mislabeled
	// bodies still come out right.
	switch strings.ToLower(strings.TrimSpace(cs)) {
	case "gb2312", "gbk":
		cs = "gb18030"
	}
	return cs
}
