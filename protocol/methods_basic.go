package protocol

// BasicQosMethod represents the basic.qos method
type BasicQosMethod struct {
	PrefetchSize  uint32
	PrefetchCount uint16
	Global        bool
}

func (m *BasicQosMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicQosMethod) MethodID() uint16 { return BasicQos }

func (m *BasicQosMethod) basicMethod() {}

func (m *BasicQosMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicQosMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicQosMethod) write(e *encoder) {
	e.long(m.PrefetchSize)
	e.short(m.PrefetchCount)
	e.bit(m.Global)
}

func (m *BasicQosMethod) read(d *decoder) {
	m.PrefetchSize = d.long("prefetch-size")
	m.PrefetchCount = d.short("prefetch-count")
	m.Global = d.bit("global")
}

// BasicQosOKMethod represents the basic.qos-ok method
type BasicQosOKMethod struct{}

func (m *BasicQosOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicQosOKMethod) MethodID() uint16 { return BasicQosOK }

func (m *BasicQosOKMethod) basicMethod() {}

func (m *BasicQosOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicQosOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicQosOKMethod) write(e *encoder) {}
func (m *BasicQosOKMethod) read(d *decoder)  {}

// BasicConsumeMethod represents the basic.consume method
type BasicConsumeMethod struct {
	Reserved1   uint16 // ticket, always zero
	Queue       string
	ConsumerTag string
	NoLocal     bool
	NoAck       bool
	Exclusive   bool
	NoWait      bool
	Arguments   Table
}

func (m *BasicConsumeMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicConsumeMethod) MethodID() uint16 { return BasicConsume }

func (m *BasicConsumeMethod) basicMethod() {}

func (m *BasicConsumeMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicConsumeMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicConsumeMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("queue", m.Queue)
	e.shortstr("consumer-tag", m.ConsumerTag)
	e.bit(m.NoLocal)
	e.bit(m.NoAck)
	e.bit(m.Exclusive)
	e.bit(m.NoWait)
	e.table(m.Arguments)
}

func (m *BasicConsumeMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Queue = d.shortstr("queue")
	m.ConsumerTag = d.shortstr("consumer-tag")
	m.NoLocal = d.bit("no-local")
	m.NoAck = d.bit("no-ack")
	m.Exclusive = d.bit("exclusive")
	m.NoWait = d.bit("no-wait")
	m.Arguments = d.table("arguments")
}

// BasicConsumeOKMethod represents the basic.consume-ok method
type BasicConsumeOKMethod struct {
	ConsumerTag string
}

func (m *BasicConsumeOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicConsumeOKMethod) MethodID() uint16 { return BasicConsumeOK }

func (m *BasicConsumeOKMethod) basicMethod() {}

func (m *BasicConsumeOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicConsumeOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicConsumeOKMethod) write(e *encoder) { e.shortstr("consumer-tag", m.ConsumerTag) }
func (m *BasicConsumeOKMethod) read(d *decoder)  { m.ConsumerTag = d.shortstr("consumer-tag") }

// BasicCancelMethod represents the basic.cancel method
type BasicCancelMethod struct {
	ConsumerTag string
	NoWait      bool
}

func (m *BasicCancelMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicCancelMethod) MethodID() uint16 { return BasicCancel }

func (m *BasicCancelMethod) basicMethod() {}

func (m *BasicCancelMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicCancelMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicCancelMethod) write(e *encoder) {
	e.shortstr("consumer-tag", m.ConsumerTag)
	e.bit(m.NoWait)
}

func (m *BasicCancelMethod) read(d *decoder) {
	m.ConsumerTag = d.shortstr("consumer-tag")
	m.NoWait = d.bit("no-wait")
}

// BasicCancelOKMethod represents the basic.cancel-ok method
type BasicCancelOKMethod struct {
	ConsumerTag string
}

func (m *BasicCancelOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicCancelOKMethod) MethodID() uint16 { return BasicCancelOK }

func (m *BasicCancelOKMethod) basicMethod() {}

func (m *BasicCancelOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicCancelOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicCancelOKMethod) write(e *encoder) { e.shortstr("consumer-tag", m.ConsumerTag) }
func (m *BasicCancelOKMethod) read(d *decoder)  { m.ConsumerTag = d.shortstr("consumer-tag") }

// BasicPublishMethod represents the basic.publish method. It is followed by a content header and body frames.
type BasicPublishMethod struct {
	Reserved1  uint16 // ticket, always zero
	Exchange   string
	RoutingKey string
	Mandatory  bool
	Immediate  bool
}

func (m *BasicPublishMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicPublishMethod) MethodID() uint16 { return BasicPublish }

func (m *BasicPublishMethod) basicMethod() {}

func (m *BasicPublishMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicPublishMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicPublishMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("exchange", m.Exchange)
	e.shortstr("routing-key", m.RoutingKey)
	e.bit(m.Mandatory)
	e.bit(m.Immediate)
}

func (m *BasicPublishMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Exchange = d.shortstr("exchange")
	m.RoutingKey = d.shortstr("routing-key")
	m.Mandatory = d.bit("mandatory")
	m.Immediate = d.bit("immediate")
}

// BasicReturnMethod represents the basic.return method
type BasicReturnMethod struct {
	ReplyCode  uint16
	ReplyText  string
	Exchange   string
	RoutingKey string
}

func (m *BasicReturnMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicReturnMethod) MethodID() uint16 { return BasicReturn }

func (m *BasicReturnMethod) basicMethod() {}

func (m *BasicReturnMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicReturnMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicReturnMethod) write(e *encoder) {
	e.short(m.ReplyCode)
	e.shortstr("reply-text", m.ReplyText)
	e.shortstr("exchange", m.Exchange)
	e.shortstr("routing-key", m.RoutingKey)
}

func (m *BasicReturnMethod) read(d *decoder) {
	m.ReplyCode = d.short("reply-code")
	m.ReplyText = d.shortstr("reply-text")
	m.Exchange = d.shortstr("exchange")
	m.RoutingKey = d.shortstr("routing-key")
}

// BasicDeliverMethod represents the basic.deliver method
type BasicDeliverMethod struct {
	ConsumerTag string
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
}

func (m *BasicDeliverMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicDeliverMethod) MethodID() uint16 { return BasicDeliver }

func (m *BasicDeliverMethod) basicMethod() {}

func (m *BasicDeliverMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicDeliverMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicDeliverMethod) write(e *encoder) {
	e.shortstr("consumer-tag", m.ConsumerTag)
	e.longlong(m.DeliveryTag)
	e.bit(m.Redelivered)
	e.shortstr("exchange", m.Exchange)
	e.shortstr("routing-key", m.RoutingKey)
}

func (m *BasicDeliverMethod) read(d *decoder) {
	m.ConsumerTag = d.shortstr("consumer-tag")
	m.DeliveryTag = d.longlong("delivery-tag")
	m.Redelivered = d.bit("redelivered")
	m.Exchange = d.shortstr("exchange")
	m.RoutingKey = d.shortstr("routing-key")
}

// BasicGetMethod represents the basic.get method
type BasicGetMethod struct {
	Reserved1 uint16 // ticket, always zero
	Queue     string
	NoAck     bool
}

func (m *BasicGetMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicGetMethod) MethodID() uint16 { return BasicGet }

func (m *BasicGetMethod) basicMethod() {}

func (m *BasicGetMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicGetMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicGetMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("queue", m.Queue)
	e.bit(m.NoAck)
}

func (m *BasicGetMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Queue = d.shortstr("queue")
	m.NoAck = d.bit("no-ack")
}

// BasicGetOKMethod represents the basic.get-ok method
type BasicGetOKMethod struct {
	DeliveryTag  uint64
	Redelivered  bool
	Exchange     string
	RoutingKey   string
	MessageCount uint32
}

func (m *BasicGetOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicGetOKMethod) MethodID() uint16 { return BasicGetOK }

func (m *BasicGetOKMethod) basicMethod() {}

func (m *BasicGetOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicGetOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicGetOKMethod) write(e *encoder) {
	e.longlong(m.DeliveryTag)
	e.bit(m.Redelivered)
	e.shortstr("exchange", m.Exchange)
	e.shortstr("routing-key", m.RoutingKey)
	e.long(m.MessageCount)
}

func (m *BasicGetOKMethod) read(d *decoder) {
	m.DeliveryTag = d.longlong("delivery-tag")
	m.Redelivered = d.bit("redelivered")
	m.Exchange = d.shortstr("exchange")
	m.RoutingKey = d.shortstr("routing-key")
	m.MessageCount = d.long("message-count")
}

// BasicGetEmptyMethod represents the basic.get-empty method
type BasicGetEmptyMethod struct {
	Reserved1 string // cluster-id, always empty
}

func (m *BasicGetEmptyMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicGetEmptyMethod) MethodID() uint16 { return BasicGetEmpty }

func (m *BasicGetEmptyMethod) basicMethod() {}

func (m *BasicGetEmptyMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicGetEmptyMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicGetEmptyMethod) write(e *encoder) { e.shortstr("cluster-id", m.Reserved1) }
func (m *BasicGetEmptyMethod) read(d *decoder)  { m.Reserved1 = d.shortstr("cluster-id") }

// BasicAckMethod represents the basic.ack method
type BasicAckMethod struct {
	DeliveryTag uint64
	Multiple    bool
}

func (m *BasicAckMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicAckMethod) MethodID() uint16 { return BasicAck }

func (m *BasicAckMethod) basicMethod() {}

func (m *BasicAckMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicAckMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicAckMethod) write(e *encoder) {
	e.longlong(m.DeliveryTag)
	e.bit(m.Multiple)
}

func (m *BasicAckMethod) read(d *decoder) {
	m.DeliveryTag = d.longlong("delivery-tag")
	m.Multiple = d.bit("multiple")
}

// BasicRejectMethod represents the basic.reject method
type BasicRejectMethod struct {
	DeliveryTag uint64
	Requeue     bool
}

func (m *BasicRejectMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicRejectMethod) MethodID() uint16 { return BasicReject }

func (m *BasicRejectMethod) basicMethod() {}

func (m *BasicRejectMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicRejectMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicRejectMethod) write(e *encoder) {
	e.longlong(m.DeliveryTag)
	e.bit(m.Requeue)
}

func (m *BasicRejectMethod) read(d *decoder) {
	m.DeliveryTag = d.longlong("delivery-tag")
	m.Requeue = d.bit("requeue")
}

// BasicRecoverAsyncMethod represents the basic.recover-async method. Deprecated in favour of basic.recover.
type BasicRecoverAsyncMethod struct {
	Requeue bool
}

func (m *BasicRecoverAsyncMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicRecoverAsyncMethod) MethodID() uint16 { return BasicRecoverAsync }

func (m *BasicRecoverAsyncMethod) basicMethod() {}

func (m *BasicRecoverAsyncMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicRecoverAsyncMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicRecoverAsyncMethod) write(e *encoder) { e.bit(m.Requeue) }
func (m *BasicRecoverAsyncMethod) read(d *decoder)  { m.Requeue = d.bit("requeue") }

// BasicRecoverMethod represents the basic.recover method
type BasicRecoverMethod struct {
	Requeue bool
}

func (m *BasicRecoverMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicRecoverMethod) MethodID() uint16 { return BasicRecover }

func (m *BasicRecoverMethod) basicMethod() {}

func (m *BasicRecoverMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicRecoverMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicRecoverMethod) write(e *encoder) { e.bit(m.Requeue) }
func (m *BasicRecoverMethod) read(d *decoder)  { m.Requeue = d.bit("requeue") }

// BasicRecoverOKMethod represents the basic.recover-ok method
type BasicRecoverOKMethod struct{}

func (m *BasicRecoverOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicRecoverOKMethod) MethodID() uint16 { return BasicRecoverOK }

func (m *BasicRecoverOKMethod) basicMethod() {}

func (m *BasicRecoverOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicRecoverOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicRecoverOKMethod) write(e *encoder) {}
func (m *BasicRecoverOKMethod) read(d *decoder)  {}

// BasicNackMethod represents the basic.nack method
type BasicNackMethod struct {
	DeliveryTag uint64
	Multiple    bool
	Requeue     bool
}

func (m *BasicNackMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicNackMethod) MethodID() uint16 { return BasicNack }

func (m *BasicNackMethod) basicMethod() {}

func (m *BasicNackMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *BasicNackMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *BasicNackMethod) write(e *encoder) {
	e.longlong(m.DeliveryTag)
	e.bit(m.Multiple)
	e.bit(m.Requeue)
}

func (m *BasicNackMethod) read(d *decoder) {
	m.DeliveryTag = d.longlong("delivery-tag")
	m.Multiple = d.bit("multiple")
	m.Requeue = d.bit("requeue")
}
