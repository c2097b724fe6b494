// Package headers provides an ordered, case-insensitive HTTP header
// multimap. Unlike net/http.Header it preserves both the insertion
// order and the original spelling of field names, which matters when
// headers are captured from the wire and written back unmodified.
package headers

import (
	"regexp"
	"strings"
)

// Field is a single header entry. Name keeps the spelling it was
// stored with; lookups never depend on it.
type Field struct {
	Name  string
	Value string
}

// Headers is an ordered list of header fields with case-insensitive
// lookup. The zero value is empty and ready to use. Multiple fields
// may share a name; Get joins their values, GetAll returns them
// individually.
//
// Headers is not safe for concurrent mutation.
type Headers struct {
	fields []Field
}

// New creates Headers from the given fields, preserving order.
func New(fields ...Field) *Headers {
	h := &Headers{}
	h.fields = append(h.fields, fields...)
	return h
}

// canonical is the lookup form of a field name.
func canonical(name string) string {
	return strings.ToLower(name)
}

// Get returns the value for name. If multiple fields match, their
// values are joined with ", " in field order. The second return is
// false when no field matches.
func (h *Headers) Get(name string) (string, bool) {
	values := h.GetAll(name)
	if len(values) == 0 {
		return "", false
	}
	return strings.Join(values, ", "), true
}

// GetDefault returns the value for name, or def when absent.
func (h *Headers) GetDefault(name, def string) string {
	if value, ok := h.Get(name); ok {
		return value
	}
	return def
}

// GetAll returns the individual values of every field matching name,
// in field order.
func (h *Headers) GetAll(name string) []string {
	key := canonical(name)
	var values []string
	for _, field := range h.fields {
		if canonical(field.Name) == key {
			values = append(values, field.Value)
		}
	}
	return values
}

// Has reports whether at least one field matches name.
func (h *Headers) Has(name string) bool {
	key := canonical(name)
	for _, field := range h.fields {
		if canonical(field.Name) == key {
			return true
		}
	}
	return false
}

// Set replaces the values of name with a single value. The first
// matching field keeps its position and stored spelling; any further
// matching fields are removed. If no field matches, the value is
// appended under the given name.
func (h *Headers) Set(name, value string) {
	h.SetAll(name, []string{value})
}

// SetAll replaces the values of name with the given values. Existing
// matching fields keep their positions and stored spellings for as
// long as replacement values remain; surplus fields are removed and
// surplus values are appended under the given name.
func (h *Headers) SetAll(name string, values []string) {
	key := canonical(name)
	remaining := append([]string(nil), values...)
	fields := h.fields[:0]
	for _, field := range h.fields {
		if canonical(field.Name) == key {
			if len(remaining) > 0 {
				fields = append(fields, Field{Name: field.Name, Value: remaining[0]})
				remaining = remaining[1:]
			}
			continue
		}
		fields = append(fields, field)
	}
	for _, value := range remaining {
		fields = append(fields, Field{Name: name, Value: value})
	}
	h.fields = fields
}

// Add appends a field without touching existing ones.
func (h *Headers) Add(name, value string) {
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Insert inserts a field at the given position. Positions past the
// end append.
func (h *Headers) Insert(index int, name, value string) {
	if index < 0 {
		index = 0
	}
	if index >= len(h.fields) {
		h.Add(name, value)
		return
	}
	h.fields = append(h.fields, Field{})
	copy(h.fields[index+1:], h.fields[index:])
	h.fields[index] = Field{Name: name, Value: value}
}

// Del removes every field matching name.
func (h *Headers) Del(name string) {
	key := canonical(name)
	fields := h.fields[:0]
	for _, field := range h.fields {
		if canonical(field.Name) != key {
			fields = append(fields, field)
		}
	}
	h.fields = fields
}

// Pop removes every field matching name and returns the joined value
// they had, as Get would have reported it. The second return is false
// when no field matched and nothing was removed.
func (h *Headers) Pop(name string) (string, bool) {
	value, ok := h.Get(name)
	if !ok {
		return "", false
	}
	h.Del(name)
	return value, true
}

// Len returns the number of stored fields, counting repeats.
func (h *Headers) Len() int {
	return len(h.fields)
}

// Fields returns a copy of the stored fields in order.
func (h *Headers) Fields() []Field {
	return append([]Field(nil), h.fields...)
}

// Clone returns an independent copy.
func (h *Headers) Clone() *Headers {
	return &Headers{fields: h.Fields()}
}

// String renders the fields as "Name: value" lines, each terminated
// with CRLF.
func (h *Headers) String() string {
	var b strings.Builder
	for _, field := range h.fields {
		b.WriteString(field.Name)
		b.WriteString(": ")
		b.WriteString(field.Value)
		b.WriteString("\r\n")
	}
	return b.String()
}

// Replace applies re to every "name: value" line and substitutes repl
// (with the usual $1-style expansion), returning the number of matches
// replaced. A substitution that destroys the ": " separator would make
// the field unparseable, so that field is kept unchanged and its
// matches are not counted.
func (h *Headers) Replace(re *regexp.Regexp, repl []byte) int {
	count := 0
	for i, field := range h.fields {
		line := field.Name + ": " + field.Value
		matches := len(re.FindAllStringIndex(line, -1))
		if matches == 0 {
			continue
		}
		replaced := string(re.ReplaceAll([]byte(line), repl))
		name, value, ok := strings.Cut(replaced, ": ")
		if !ok {
			continue
		}
		h.fields[i] = Field{Name: name, Value: value}
		count += matches
	}
	return count
}
