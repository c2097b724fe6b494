package message

import "bytes"

// transformCache memoizes one transcoding step. It records the encoded
// input, the transform parameter (content coding or charset) and
// whether the result was computed strictly, alongside the decoded
// output. The zero value is the empty cache and matches nothing.
type transformCache[T any] struct {
	populated bool
	input     []byte
	param     string
	strict    bool
	output    T
}

// matches reports whether the cached output can serve a read of input
// under param. A strict caller is only served by a strictly computed
// entry; a lenient caller accepts either.
func (c *transformCache[T]) matches(input []byte, param string, strict bool) bool {
	return c.populated &&
		bytes.Equal(c.input, input) &&
		c.param == param &&
		(c.strict || !strict)
}

// cached builds a populated cache entry.
func cached[T any](input []byte, param string, strict bool, output T) transformCache[T] {
	return transformCache[T]{
		populated: true,
		input:     input,
		param:     param,
		strict:    strict,
		output:    output,
	}
}
