package protocol

import (
	"bytes"
	"sync"
)

// Buffers larger than this are dropped instead of pooled so a single large
// body does not pin memory.
const maxPooledBuffer = 64 * 1024

var encodePool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// acquireEncodeBuffer returns an empty buffer for frame and method encoding
func acquireEncodeBuffer() *bytes.Buffer {
	buf := encodePool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func releaseEncodeBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxPooledBuffer {
		encodePool.Put(buf)
	}
}

// Assembly scratch for content bodies, sized for one minimum frame.
var assemblyPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, FrameMinSize)
		return &b
	},
}

func acquireBodyBuffer() *[]byte {
	b := assemblyPool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

func releaseBodyBuffer(b *[]byte) {
	if cap(*b) <= maxPooledBuffer {
		assemblyPool.Put(b)
	}
}
