package protocol

import (
	"encoding/binary"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// Method is one AMQP method. Serialize encodes only the method arguments;
// the class and method ids are written by EncodeMethodFrame.
type Method interface {
	ClassID() uint16
	MethodID() uint16
	Serialize() ([]byte, error)
	Deserialize(data []byte) error
}

// ConnectionMethod is implemented by methods of the connection class
type ConnectionMethod interface {
	Method
	connectionMethod()
}

// ChannelMethod is implemented by methods of the channel class
type ChannelMethod interface {
	Method
	channelMethod()
}

// ExchangeMethod is implemented by methods of the exchange class
type ExchangeMethod interface {
	Method
	exchangeMethod()
}

// QueueMethod is implemented by methods of the queue class
type QueueMethod interface {
	Method
	queueMethod()
}

// BasicMethod is implemented by methods of the basic class
type BasicMethod interface {
	Method
	basicMethod()
}

// TxMethod is implemented by methods of the tx class
type TxMethod interface {
	Method
	txMethod()
}

// argumentCodec is the field-level encoding shared by every method struct
type argumentCodec interface {
	write(e *encoder)
	read(d *decoder)
}

func serializeArgs(m argumentCodec) ([]byte, error) {
	e := &encoder{}
	m.write(e)
	return e.bytes()
}

func deserializeArgs(m argumentCodec, data []byte) error {
	d := newDecoder(data)
	m.read(d)
	return d.err
}

// EncodeMethodFrame encodes a method into a method frame for a channel.
// Connection-class methods must use channel 0.
func EncodeMethodFrame(channelID uint16, m Method) (*Frame, error) {
	args, err := m.Serialize()
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 4+len(args))
	binary.BigEndian.PutUint16(payload[0:2], m.ClassID())
	binary.BigEndian.PutUint16(payload[2:4], m.MethodID())
	copy(payload[4:], args)

	return &Frame{
		Type:    FrameMethod,
		Channel: channelID,
		Size:    uint32(len(payload)),
		Payload: payload,
	}, nil
}

// DecodeMethod decodes the payload of a method frame
func DecodeMethod(payload []byte) (Method, error) {
	if len(payload) < 4 {
		return nil, amqperrors.NewDecodeError(amqperrors.Truncated, "method id", 0)
	}
	classID := binary.BigEndian.Uint16(payload[0:2])
	methodID := binary.BigEndian.Uint16(payload[2:4])

	m := NewMethod(classID, methodID)
	if m == nil {
		return nil, amqperrors.NewProtocolError(amqperrors.CommandInvalid,
			"unknown method "+MethodName(classID, methodID), FrameMethod, classID, methodID)
	}
	if err := m.Deserialize(payload[4:]); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadMethodFrame decodes a frame that must be a method frame
func ReadMethodFrame(frame *Frame) (Method, error) {
	if frame.Type != FrameMethod {
		return nil, amqperrors.NewUnexpectedFrame(FrameMethod, frame.Type)
	}
	return DecodeMethod(frame.Payload)
}

// HasContent reports whether the method is followed by a content header
// and body frames.
func HasContent(m Method) bool {
	switch m.(type) {
	case *BasicPublishMethod, *BasicReturnMethod, *BasicDeliverMethod, *BasicGetOKMethod:
		return true
	}
	return false
}

// IsSynchronousReply reports whether the method answers a synchronous
// request on its channel.
func IsSynchronousReply(m Method) bool {
	switch m.(type) {
	case *ConnectionStartMethod, *ConnectionSecureMethod, *ConnectionTuneMethod,
		*ConnectionOpenOKMethod, *ConnectionCloseOKMethod,
		*ChannelOpenOKMethod, *ChannelFlowOKMethod, *ChannelCloseOKMethod,
		*ExchangeDeclareOKMethod, *ExchangeDeleteOKMethod, *ExchangeBindOKMethod, *ExchangeUnbindOKMethod,
		*QueueDeclareOKMethod, *QueueBindOKMethod, *QueueUnbindOKMethod, *QueuePurgeOKMethod, *QueueDeleteOKMethod,
		*BasicQosOKMethod, *BasicConsumeOKMethod, *BasicCancelOKMethod, *BasicGetEmptyMethod,
		*BasicRecoverOKMethod,
		*TxSelectOKMethod, *TxCommitOKMethod, *TxRollbackOKMethod:
		return true
	}
	return false
}
