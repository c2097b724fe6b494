package headers

import "strings"

// Param is a single media-type parameter. Keys are matched exactly;
// values keep any surrounding quotes they were parsed with.
type Param struct {
	Key   string
	Value string
}

// ContentType is a parsed media type such as "text/html;
// charset=utf-8". Params preserves parameter order so a reassembled
// header is deterministic.
type ContentType struct {
	Type    string
	Subtype string
	Params  []Param
}

// ParseContentType parses a Content-Type header value. It is
// deliberately permissive: the only hard requirement is a "type/subtype"
// shape before the first semicolon. Type and subtype are lowercased and
// trimmed; parameter clauses without "=" are ignored; parameter values
// keep their quotes. The second return is false when the value does not
// parse.
func ParseContentType(value string) (ContentType, bool) {
	media, rest, hasParams := strings.Cut(value, ";")
	mainType, subType, ok := strings.Cut(media, "/")
	if !ok {
		return ContentType{}, false
	}
	ct := ContentType{
		Type:    strings.ToLower(strings.TrimSpace(mainType)),
		Subtype: strings.ToLower(strings.TrimSpace(subType)),
	}
	if hasParams {
		for _, clause := range strings.Split(rest, ";") {
			key, value, ok := strings.Cut(clause, "=")
			if !ok {
				continue
			}
			ct.Params = append(ct.Params, Param{
				Key:   strings.TrimSpace(key),
				Value: strings.TrimSpace(value),
			})
		}
	}
	return ct, true
}

// Param returns the value of the named parameter. The second return is
// false when the parameter is absent.
func (ct ContentType) Param(key string) (string, bool) {
	for _, p := range ct.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// SetParam sets the named parameter, replacing the first existing
// occurrence in place or appending when absent.
func (ct *ContentType) SetParam(key, value string) {
	for i, p := range ct.Params {
		if p.Key == key {
			ct.Params[i].Value = value
			return
		}
	}
	ct.Params = append(ct.Params, Param{Key: key, Value: value})
}

// Clone returns a copy with an independent parameter list.
func (ct ContentType) Clone() ContentType {
	clone := ct
	clone.Params = append([]Param(nil), ct.Params...)
	return clone
}

// String reassembles the media type with its parameters in stored
// order.
func (ct ContentType) String() string {
	var b strings.Builder
	b.WriteString(ct.Type)
	b.WriteString("/")
	b.WriteString(ct.Subtype)
	for _, p := range ct.Params {
		b.WriteString("; ")
		b.WriteString(p.Key)
		b.WriteString("=")
		b.WriteString(p.Value)
	}
	return b.String()
}
