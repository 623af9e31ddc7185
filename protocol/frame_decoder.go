package protocol

import (
	"encoding/binary"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// FrameDecoder splits an arbitrary byte stream into frames by their declared
// length. Bytes are appended with Write as they arrive from the transport;
// Next returns a frame once all of its bytes are buffered, regardless of how
// the stream was chunked by reads.
type FrameDecoder struct {
	buf          []byte
	start        int
	maxFrameSize uint32
}

// NewFrameDecoder creates a decoder. maxFrameSize of zero accepts any
// declared size.
func NewFrameDecoder(maxFrameSize uint32) *FrameDecoder {
	return &FrameDecoder{maxFrameSize: maxFrameSize}
}

// SetMaxFrameSize updates the limit after tune negotiation
func (d *FrameDecoder) SetMaxFrameSize(n uint32) {
	d.maxFrameSize = n
}

// Write appends stream bytes. It never fails; the signature satisfies io.Writer.
func (d *FrameDecoder) Write(p []byte) (int, error) {
	if d.start > 0 && d.start >= len(d.buf)/2 {
		n := copy(d.buf, d.buf[d.start:])
		d.buf = d.buf[:n]
		d.start = 0
	}
	d.buf = append(d.buf, p...)
	return len(p), nil
}

// Buffered returns the number of bytes not yet consumed as frames
func (d *FrameDecoder) Buffered() int {
	return len(d.buf) - d.start
}

// Next returns the next complete frame, or nil with no error when more bytes
// are needed. A decode error leaves the stream desynchronized; the caller
// must drop the connection.
func (d *FrameDecoder) Next() (*Frame, error) {
	window := d.buf[d.start:]
	if len(window) < FrameHeaderSize {
		return nil, nil
	}

	frameType := window[0]
	if !ValidFrameType(frameType) {
		return nil, amqperrors.NewInvalidFrameType(frameType)
	}

	size := binary.BigEndian.Uint32(window[3:7])
	if d.maxFrameSize > 0 && uint64(size)+FrameOverhead > uint64(d.maxFrameSize) {
		return nil, &amqperrors.DecodeError{Kind: amqperrors.FrameTooLarge, Field: "frame size", Offset: d.start + 3}
	}

	total := int(size) + FrameOverhead
	if len(window) < total {
		return nil, nil
	}

	if window[total-1] != FrameEnd {
		return nil, amqperrors.NewDecodeError(amqperrors.MissingFrameEnd, "frame-end", d.start+total-1)
	}

	payload := make([]byte, size)
	copy(payload, window[FrameHeaderSize:total-1])
	d.start += total

	if d.start == len(d.buf) {
		d.buf = d.buf[:0]
		d.start = 0
	}

	return &Frame{
		Type:    frameType,
		Channel: binary.BigEndian.Uint16(window[1:3]),
		Size:    size,
		Payload: payload,
	}, nil
}
