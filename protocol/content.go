package protocol

import (
	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// ContentHeader represents the content header frame
type ContentHeader struct {
	ClassID    uint16
	Weight     uint16
	BodySize   uint64
	Properties Properties
}

// ReadContentHeader reads a content header frame
func ReadContentHeader(frame *Frame) (*ContentHeader, error) {
	if frame.Type != FrameHeader {
		return nil, amqperrors.NewUnexpectedFrame(FrameHeader, frame.Type)
	}

	d := newDecoder(frame.Payload)
	header := &ContentHeader{
		ClassID:  d.short("class-id"),
		Weight:   d.short("weight"),
		BodySize: d.longlong("body-size"),
	}
	header.Properties = decodeProperties(d)
	if d.err != nil {
		return nil, d.err
	}

	return header, nil
}

// Serialize encodes the ContentHeader into a byte slice
func (h *ContentHeader) Serialize() ([]byte, error) {
	e := &encoder{}
	e.short(h.ClassID)
	e.short(h.Weight)
	e.longlong(h.BodySize)
	h.Properties.encode(e)
	return e.bytes()
}

// EncodeContentHeaderFrame builds a header frame for a basic-class message
func EncodeContentHeaderFrame(channelID uint16, bodySize uint64, props Properties) (*Frame, error) {
	header := &ContentHeader{ClassID: ClassBasic, BodySize: bodySize, Properties: props}
	payload, err := header.Serialize()
	if err != nil {
		return nil, err
	}
	return &Frame{
		Type:    FrameHeader,
		Channel: channelID,
		Size:    uint32(len(payload)),
		Payload: payload,
	}, nil
}

// EncodeBodyFrame wraps a body chunk in a body frame
func EncodeBodyFrame(channelID uint16, bodyData []byte) *Frame {
	return &Frame{
		Type:    FrameBody,
		Channel: channelID,
		Size:    uint32(len(bodyData)),
		Payload: bodyData,
	}
}
