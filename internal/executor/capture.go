package executor

import (
	"bytes"
	"strings"
)

// lineBuffer accumulates a stream line by line. Each line is stored with a
// single "\n" terminator, so CRLF output is normalized to LF.
type lineBuffer struct {
	buf     strings.Builder
	partial []byte
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		idx := bytes.IndexByte(p, '\n')
		if idx < 0 {
			b.partial = append(b.partial, p...)
			break
		}
		b.partial = append(b.partial, p[:idx]...)
		b.flush()
		p = p[idx+1:]
	}
	return n, nil
}

func (b *lineBuffer) flush() {
	b.buf.Write(bytes.TrimSuffix(b.partial, []byte{'\r'}))
	b.buf.WriteByte('\n')
	b.partial = b.partial[:0]
}

// String returns the captured text with trailing line breaks trimmed.
func (b *lineBuffer) String() string {
	if len(b.partial) > 0 {
		b.flush()
	}
	return strings.TrimRight(b.buf.String(), "\r\n")
}
