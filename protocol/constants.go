package protocol

// Frame types. Heartbeat uses octet 8, the value the target broker sends.
const (
	FrameMethod    = 1
	FrameHeader    = 2
	FrameBody      = 3
	FrameHeartbeat = 8
	FrameEnd       = 0xCE // Frame end marker byte
)

// Frame layout sizes
const (
	FrameHeaderSize = 7 // type(1) + channel(2) + size(4)
	FrameEndSize    = 1
	FrameOverhead   = FrameHeaderSize + FrameEndSize

	// FrameMinSize is the smallest frame-max a peer may negotiate
	FrameMinSize = 4096
)

// ProtocolHeader opens every connection: "AMQP" 0 0 9 1
var ProtocolHeader = [8]byte{'A', 'M', 'Q', 'P', 0, 0, 9, 1}

// Class IDs
const (
	ClassConnection = 10
	ClassChannel    = 20
	ClassExchange   = 40
	ClassQueue      = 50
	ClassBasic      = 60
	ClassTx         = 90
)

// Method IDs for connection class
const (
	ConnectionStart    = 10
	ConnectionStartOK  = 11
	ConnectionSecure   = 20
	ConnectionSecureOK = 21
	ConnectionTune     = 30
	ConnectionTuneOK   = 31
	ConnectionOpen     = 40
	ConnectionOpenOK   = 41
	ConnectionClose    = 50
	ConnectionCloseOK  = 51
)

// Method IDs for channel class
const (
	ChannelOpen    = 10
	ChannelOpenOK  = 11
	ChannelFlow    = 20
	ChannelFlowOK  = 21
	ChannelClose   = 40
	ChannelCloseOK = 41
)

// Method IDs for exchange class
const (
	ExchangeDeclare   = 10 // 40.10
	ExchangeDeclareOK = 11 // 40.11
	ExchangeDelete    = 20 // 40.20
	ExchangeDeleteOK  = 21 // 40.21
	ExchangeBind      = 30 // 40.30
	ExchangeBindOK    = 31 // 40.31
	ExchangeUnbind    = 40 // 40.40
	ExchangeUnbindOK  = 51 // 40.51
)

// Method IDs for queue class
const (
	QueueDeclare   = 10 // 50.10
	QueueDeclareOK = 11 // 50.11
	QueueBind      = 20 // 50.20
	QueueBindOK    = 21 // 50.21
	QueuePurge     = 30 // 50.30
	QueuePurgeOK   = 31 // 50.31
	QueueDelete    = 40 // 50.40
	QueueDeleteOK  = 41 // 50.41
	QueueUnbind    = 50 // 50.50
	QueueUnbindOK  = 51 // 50.51
)

// Method IDs for basic class
const (
	BasicQos          = 10  // 60.10
	BasicQosOK        = 11  // 60.11
	BasicConsume      = 20  // 60.20
	BasicConsumeOK    = 21  // 60.21
	BasicCancel       = 30  // 60.30
	BasicCancelOK     = 31  // 60.31
	BasicPublish      = 40  // 60.40
	BasicReturn       = 50  // 60.50
	BasicDeliver      = 60  // 60.60
	BasicGet          = 70  // 60.70
	BasicGetOK        = 71  // 60.71
	BasicGetEmpty     = 72  // 60.72
	BasicAck          = 80  // 60.80
	BasicReject       = 90  // 60.90
	BasicRecoverAsync = 100 // 60.100
	BasicRecover      = 110 // 60.110
	BasicRecoverOK    = 111 // 60.111
	BasicNack         = 120 // 60.120
)

// Method IDs for tx class
const (
	TxSelect     = 10 // 90.10
	TxSelectOK   = 11 // 90.11
	TxCommit     = 20 // 90.20
	TxCommitOK   = 21 // 90.21
	TxRollback   = 30 // 90.30
	TxRollbackOK = 31 // 90.31
)

// Delivery modes for the delivery-mode property
const (
	Transient  uint8 = 1
	Persistent uint8 = 2
)

// ExchangeType names the routing algorithm of an exchange
type ExchangeType string

const (
	ExchangeDirect  ExchangeType = "direct"
	ExchangeFanout  ExchangeType = "fanout"
	ExchangeTopic   ExchangeType = "topic"
	ExchangeHeaders ExchangeType = "headers"
)
