package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

func encodeFrames(t *testing.T, frames ...*Frame) []byte {
	t.Helper()
	out, err := AppendFrames(nil, frames...)
	require.NoError(t, err)
	return out
}

func TestFrameDecoderByteAtATime(t *testing.T) {
	stream := encodeFrames(t,
		&Frame{Type: FrameMethod, Channel: 1, Payload: []byte{0, 60, 0, 60}},
		&Frame{Type: FrameHeartbeat},
		&Frame{Type: FrameBody, Channel: 1, Payload: []byte("payload")},
	)

	d := NewFrameDecoder(0)
	var got []*Frame
	for _, b := range stream {
		_, err := d.Write([]byte{b})
		require.NoError(t, err)
		for {
			f, err := d.Next()
			require.NoError(t, err)
			if f == nil {
				break
			}
			got = append(got, f)
		}
	}

	require.Len(t, got, 3)
	assert.Equal(t, byte(FrameMethod), got[0].Type)
	assert.Equal(t, byte(FrameHeartbeat), got[1].Type)
	assert.Equal(t, []byte("payload"), got[2].Payload)
	assert.Equal(t, 0, d.Buffered())
}

func TestFrameDecoderManyFramesInOneWrite(t *testing.T) {
	var frames []*Frame
	for i := 0; i < 50; i++ {
		frames = append(frames, &Frame{Type: FrameBody, Channel: uint16(i), Payload: make([]byte, i*10)})
	}
	stream := encodeFrames(t, frames...)

	// Split at a point that falls inside a frame
	d := NewFrameDecoder(0)
	_, _ = d.Write(stream[:len(stream)/2+3])

	count := 0
	for {
		f, err := d.Next()
		require.NoError(t, err)
		if f == nil {
			break
		}
		assert.Equal(t, uint16(count), f.Channel)
		count++
	}
	assert.Greater(t, d.Buffered(), 0)

	_, _ = d.Write(stream[len(stream)/2+3:])
	for {
		f, err := d.Next()
		require.NoError(t, err)
		if f == nil {
			break
		}
		assert.Equal(t, uint16(count), f.Channel)
		assert.Len(t, f.Payload, count*10)
		count++
	}
	assert.Equal(t, 50, count)
}

func TestFrameDecoderErrors(t *testing.T) {
	t.Run("missing frame end", func(t *testing.T) {
		stream := encodeFrames(t, &Frame{Type: FrameBody, Channel: 1, Payload: []byte("x")})
		stream[len(stream)-1] = 0x00
		d := NewFrameDecoder(0)
		_, _ = d.Write(stream)
		_, err := d.Next()
		assert.True(t, amqperrors.IsDecodeKind(err, amqperrors.MissingFrameEnd))
	})

	t.Run("invalid type", func(t *testing.T) {
		d := NewFrameDecoder(0)
		_, _ = d.Write([]byte{0x41, 0x4D, 0x51, 0x50, 0, 0, 9, 1})
		_, err := d.Next()
		assert.True(t, amqperrors.IsProtocolViolation(err))
	})

	t.Run("too large", func(t *testing.T) {
		stream := encodeFrames(t, &Frame{Type: FrameBody, Channel: 1, Payload: make([]byte, 5000)})
		d := NewFrameDecoder(FrameMinSize)
		_, _ = d.Write(stream[:FrameHeaderSize])
		_, err := d.Next()
		assert.True(t, amqperrors.IsDecodeKind(err, amqperrors.FrameTooLarge))
	})
}
