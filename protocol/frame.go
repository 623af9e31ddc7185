package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// Frame represents an AMQP frame
type Frame struct {
	Type    byte
	Channel uint16
	Size    uint32
	Payload []byte
}

// NewHeartbeatFrame returns the heartbeat frame, which always travels on channel 0
func NewHeartbeatFrame() *Frame {
	return &Frame{Type: FrameHeartbeat}
}

// ValidFrameType reports whether t is one of the recognized frame type octets
func ValidFrameType(t byte) bool {
	switch t {
	case FrameMethod, FrameHeader, FrameBody, FrameHeartbeat:
		return true
	}
	return false
}

// FrameTypeName returns a readable name for a frame type octet
func FrameTypeName(t byte) string {
	switch t {
	case FrameMethod:
		return "method"
	case FrameHeader:
		return "header"
	case FrameBody:
		return "body"
	case FrameHeartbeat:
		return "heartbeat"
	}
	return fmt.Sprintf("unknown(%d)", t)
}

// MarshalBinary encodes a frame into binary format following AMQP 0.9.1 spec
// Format: (1-byte type) + (2-byte channel) + (4-byte size) + (size-byte payload) + (1-byte end: 0xCE)
//
// The size field is written as zero, the payload appended, then the size is
// patched from the number of bytes actually written.
func (f *Frame) MarshalBinary() ([]byte, error) {
	if !ValidFrameType(f.Type) {
		return nil, amqperrors.NewInvalidFrameType(f.Type)
	}

	buf := acquireEncodeBuffer()
	defer releaseEncodeBuffer(buf)
	writeFrameTo(buf, f)

	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	f.Size = uint32(len(f.Payload))
	return data, nil
}

func writeFrameTo(buf *bytes.Buffer, f *Frame) {
	start := buf.Len()
	buf.Grow(FrameOverhead + len(f.Payload))

	var header [FrameHeaderSize]byte
	header[0] = f.Type
	binary.BigEndian.PutUint16(header[1:3], f.Channel)
	buf.Write(header[:])

	payloadStart := buf.Len()
	buf.Write(f.Payload)
	size := uint32(buf.Len() - payloadStart)
	binary.BigEndian.PutUint32(buf.Bytes()[start+3:start+7], size)

	buf.WriteByte(FrameEnd)
}

// UnmarshalBinary decodes exactly one frame from data. The declared size must
// account for every byte between the header and the terminator.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < FrameOverhead {
		return amqperrors.NewDecodeError(amqperrors.Truncated, "frame header", 0)
	}

	frameType := data[0]
	if !ValidFrameType(frameType) {
		return amqperrors.NewInvalidFrameType(frameType)
	}

	payloadSize := binary.BigEndian.Uint32(data[3:7])
	if uint64(len(data)) != uint64(payloadSize)+FrameOverhead {
		return &amqperrors.DecodeError{
			Kind:   amqperrors.FrameSizeMismatch,
			Field:  "frame size",
			Offset: 3,
			Cause:  fmt.Errorf("declared %d payload bytes, have %d", payloadSize, len(data)-FrameOverhead),
		}
	}

	end := FrameHeaderSize + int(payloadSize)
	if data[end] != FrameEnd {
		return amqperrors.NewDecodeError(amqperrors.MissingFrameEnd, "frame-end", end)
	}

	f.Type = frameType
	f.Channel = binary.BigEndian.Uint16(data[1:3])
	f.Size = payloadSize
	f.Payload = make([]byte, payloadSize)
	copy(f.Payload, data[FrameHeaderSize:end])

	return nil
}

// ReadFrame reads a frame from an io.Reader. maxSize bounds the declared
// payload size; zero disables the check.
func ReadFrame(reader io.Reader, maxSize uint32) (*Frame, error) {
	var header [FrameHeaderSize]byte
	if _, err := io.ReadFull(reader, header[:]); err != nil {
		return nil, err
	}

	frameType := header[0]
	if !ValidFrameType(frameType) {
		return nil, amqperrors.NewInvalidFrameType(frameType)
	}

	channel := binary.BigEndian.Uint16(header[1:3])
	size := binary.BigEndian.Uint32(header[3:7])
	if maxSize > 0 && size+FrameOverhead > maxSize {
		return nil, amqperrors.NewDecodeError(amqperrors.FrameTooLarge, "frame size", 3)
	}

	// Read the payload + end-byte
	payload := make([]byte, int(size)+FrameEndSize)
	if _, err := io.ReadFull(reader, payload); err != nil {
		return nil, err
	}

	if payload[size] != FrameEnd {
		return nil, amqperrors.NewDecodeError(amqperrors.MissingFrameEnd, "frame-end", FrameHeaderSize+int(size))
	}

	return &Frame{
		Type:    frameType,
		Channel: channel,
		Size:    size,
		Payload: payload[:size],
	}, nil
}

// WriteFrame writes a frame to an io.Writer using a pooled buffer
func WriteFrame(writer io.Writer, frame *Frame) error {
	if !ValidFrameType(frame.Type) {
		return amqperrors.NewInvalidFrameType(frame.Type)
	}

	buf := acquireEncodeBuffer()
	defer releaseEncodeBuffer(buf)
	writeFrameTo(buf, frame)

	_, err := buf.WriteTo(writer)
	return err
}

// AppendFrames encodes several frames back to back into one buffer so that
// a publish triad reaches the transport in a single write.
func AppendFrames(dst []byte, frames ...*Frame) ([]byte, error) {
	buf := acquireEncodeBuffer()
	defer releaseEncodeBuffer(buf)

	for _, f := range frames {
		if !ValidFrameType(f.Type) {
			return dst, amqperrors.NewInvalidFrameType(f.Type)
		}
		writeFrameTo(buf, f)
	}
	return append(dst, buf.Bytes()...), nil
}

// ReadProtocolHeader checks bytes sent by a broker that rejected the
// protocol header. A broker that cannot speak 0-9-1 answers with the header
// it does support and closes the socket.
func ReadProtocolHeader(data []byte) error {
	if len(data) < len(ProtocolHeader) || !bytes.Equal(data[:4], ProtocolHeader[:4]) {
		return amqperrors.NewFrameError("not an AMQP protocol header", 0)
	}
	if !bytes.Equal(data[:len(ProtocolHeader)], ProtocolHeader[:]) {
		return amqperrors.NewProtocolError(amqperrors.NotImplemented,
			fmt.Sprintf("broker requested protocol %d-%d-%d", data[5], data[6], data[7]), 0, 0, 0)
	}
	return nil
}
