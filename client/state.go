package client

// ConnectionState is a step of the connection negotiation and lifecycle
type ConnectionState int32

const (
	StateDisconnected ConnectionState = iota
	StateAwaitingStart
	StateAwaitingTune
	StateAwaitingOpen
	StateAwaitingOpenOK
	StateOpen
	StateAwaitingCloseOK
	StateClosed
)

// String returns a string representation of the connection state
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateAwaitingStart:
		return "awaiting-start"
	case StateAwaitingTune:
		return "awaiting-tune"
	case StateAwaitingOpen:
		return "awaiting-open"
	case StateAwaitingOpenOK:
		return "awaiting-open-ok"
	case StateOpen:
		return "open"
	case StateAwaitingCloseOK:
		return "awaiting-close-ok"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ChannelState is a step of a channel's lifecycle
type ChannelState int32

const (
	ChannelStateClosed ChannelState = iota
	ChannelStateAwaitingOpenOK
	ChannelStateReady
	ChannelStateAwaitingCloseOK
)

func (s ChannelState) String() string {
	switch s {
	case ChannelStateClosed:
		return "closed"
	case ChannelStateAwaitingOpenOK:
		return "awaiting-open-ok"
	case ChannelStateReady:
		return "ready"
	case ChannelStateAwaitingCloseOK:
		return "awaiting-close-ok"
	default:
		return "unknown"
	}
}
