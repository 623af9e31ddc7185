package protocol

import (
	"fmt"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// Message is a content-bearing method together with its header and body
type Message struct {
	Channel      uint16
	ConsumerTag  string
	DeliveryTag  uint64
	Redelivered  bool
	Exchange     string
	RoutingKey   string
	MessageCount uint32 // basic.get-ok only
	ReplyCode    uint16 // basic.return only
	ReplyText    string // basic.return only
	Properties   Properties
	Body         []byte

	// Method is the deliver, get-ok or return method that started the message
	Method Method
}

// BuildPublishFrames returns the method, content header and body frames of
// one publish. Bodies larger than frameMax allows are split across several
// body frames; an empty body produces no body frame. A frameMax of zero
// means no limit.
func BuildPublishFrames(channel uint16, publish *BasicPublishMethod, props Properties, body []byte, frameMax uint32) ([]*Frame, error) {
	if frameMax != 0 && frameMax <= FrameOverhead {
		return nil, amqperrors.NewEncodeError("frame-max", fmt.Sprintf("frame-max %d leaves no room for a body", frameMax))
	}

	method, err := EncodeMethodFrame(channel, publish)
	if err != nil {
		return nil, err
	}
	header, err := EncodeContentHeaderFrame(channel, uint64(len(body)), props)
	if err != nil {
		return nil, err
	}

	chunk := len(body)
	if frameMax != 0 {
		chunk = int(frameMax - FrameOverhead)
	}

	frames := make([]*Frame, 0, 2+bodyFrameCount(len(body), chunk))
	frames = append(frames, method, header)
	for off := 0; off < len(body); off += chunk {
		end := off + chunk
		if end > len(body) {
			end = len(body)
		}
		frames = append(frames, EncodeBodyFrame(channel, body[off:end]))
	}
	return frames, nil
}

func bodyFrameCount(size, chunk int) int {
	if size == 0 || chunk <= 0 {
		return 0
	}
	return (size + chunk - 1) / chunk
}

type assemblyState int

const (
	assemblyIdle assemblyState = iota
	assemblyAwaitingHeader
	assemblyAwaitingBody
)

// Assembler rebuilds messages on one channel from a content-bearing method,
// one content header and as many body frames as the header's body size
// requires. Heartbeats must not be fed to it.
type Assembler struct {
	channel  uint16
	state    assemblyState
	current  *Message
	bodySize uint64
	body     *[]byte
}

// NewAssembler creates an assembler for a channel
func NewAssembler(channel uint16) *Assembler {
	return &Assembler{channel: channel}
}

// InProgress reports whether a message has started but not completed
func (a *Assembler) InProgress() bool {
	return a.state != assemblyIdle
}

// Reset drops any partially assembled message
func (a *Assembler) Reset() {
	if a.body != nil {
		releaseBodyBuffer(a.body)
		a.body = nil
	}
	a.current = nil
	a.bodySize = 0
	a.state = assemblyIdle
}

// Start begins a new message from an already decoded method
func (a *Assembler) Start(m Method) error {
	if a.state != assemblyIdle {
		return amqperrors.NewUnexpectedMethod("awaiting content", m.ClassID(), m.MethodID())
	}

	msg := &Message{Channel: a.channel, Method: m}
	switch v := m.(type) {
	case *BasicDeliverMethod:
		msg.ConsumerTag = v.ConsumerTag
		msg.DeliveryTag = v.DeliveryTag
		msg.Redelivered = v.Redelivered
		msg.Exchange = v.Exchange
		msg.RoutingKey = v.RoutingKey
	case *BasicGetOKMethod:
		msg.DeliveryTag = v.DeliveryTag
		msg.Redelivered = v.Redelivered
		msg.Exchange = v.Exchange
		msg.RoutingKey = v.RoutingKey
		msg.MessageCount = v.MessageCount
	case *BasicReturnMethod:
		msg.ReplyCode = v.ReplyCode
		msg.ReplyText = v.ReplyText
		msg.Exchange = v.Exchange
		msg.RoutingKey = v.RoutingKey
	default:
		return amqperrors.NewUnexpectedMethod("idle", m.ClassID(), m.MethodID())
	}

	a.current = msg
	a.state = assemblyAwaitingHeader
	return nil
}

// HandleFrame feeds the next frame of the channel. It returns the message
// once its last body byte has arrived, and nil while more frames are needed.
func (a *Assembler) HandleFrame(f *Frame) (*Message, error) {
	switch f.Type {
	case FrameMethod:
		m, err := DecodeMethod(f.Payload)
		if err != nil {
			return nil, err
		}
		return nil, a.Start(m)

	case FrameHeader:
		if a.state != assemblyAwaitingHeader {
			return nil, amqperrors.NewUnexpectedFrame(a.expectedFrame(), f.Type)
		}
		header, err := ReadContentHeader(f)
		if err != nil {
			return nil, err
		}
		if header.ClassID != ClassBasic {
			return nil, amqperrors.NewFrameError(fmt.Sprintf("content header for class %d", header.ClassID), f.Type)
		}
		a.current.Properties = header.Properties
		a.bodySize = header.BodySize
		if a.bodySize == 0 {
			a.current.Body = []byte{}
			return a.finish(), nil
		}
		a.body = acquireBodyBuffer()
		a.state = assemblyAwaitingBody
		return nil, nil

	case FrameBody:
		if a.state != assemblyAwaitingBody {
			return nil, amqperrors.NewUnexpectedFrame(a.expectedFrame(), f.Type)
		}
		*a.body = append(*a.body, f.Payload...)
		received := uint64(len(*a.body))
		if received > a.bodySize {
			return nil, amqperrors.NewFrameError(
				fmt.Sprintf("body exceeds declared size %d", a.bodySize), f.Type)
		}
		if received < a.bodySize {
			return nil, nil
		}
		a.current.Body = make([]byte, received)
		copy(a.current.Body, *a.body)
		return a.finish(), nil

	default:
		return nil, amqperrors.NewUnexpectedFrame(a.expectedFrame(), f.Type)
	}
}

func (a *Assembler) expectedFrame() byte {
	switch a.state {
	case assemblyAwaitingHeader:
		return FrameHeader
	case assemblyAwaitingBody:
		return FrameBody
	}
	return FrameMethod
}

func (a *Assembler) finish() *Message {
	msg := a.current
	a.Reset()
	return msg
}
