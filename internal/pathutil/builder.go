package pathutil

import "strconv"

// PathBuilder accumulates a dotted location such as
// "response.body.oneOf[1].name". The zero value is ready to use.
type PathBuilder struct {
	buf []byte
	// marks[i] is len(buf) before segment i was pushed
	marks []int
}

// Push appends a dot-separated segment. Empty segments are tracked for Pop
// but leave the path unchanged.
func (p *PathBuilder) Push(segment string) {
	p.marks = append(p.marks, len(p.buf))
	if segment == "" {
		return
	}
	if len(p.buf) > 0 {
		p.buf = append(p.buf, '.')
	}
	p.buf = append(p.buf, segment...)
}

// PushIndex appends "[i]" to the last segment.
func (p *PathBuilder) PushIndex(i int) {
	p.marks = append(p.marks, len(p.buf))
	p.buf = append(p.buf, '[')
	p.buf = strconv.AppendInt(p.buf, int64(i), 10)
	p.buf = append(p.buf, ']')
}

// Pop removes the most recent Push or PushIndex. It is a no-op when empty.
func (p *PathBuilder) Pop() {
	n := len(p.marks)
	if n == 0 {
		return
	}
	p.buf = p.buf[:p.marks[n-1]]
	p.marks = p.marks[:n-1]
}

// Depth returns the number of pushed segments.
func (p *PathBuilder) Depth() int {
	return len(p.marks)
}

// Reset clears the builder, keeping its buffers.
func (p *PathBuilder) Reset() {
	p.buf = p.buf[:0]
	p.marks = p.marks[:0]
}

// String returns the current path.
func (p *PathBuilder) String() string {
	return string(p.buf)
}
