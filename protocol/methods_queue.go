package protocol

// QueueDeclareMethod represents the queue.declare method
type QueueDeclareMethod struct {
	Reserved1  uint16 // ticket, always zero
	Queue      string
	Passive    bool
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	NoWait     bool
	Arguments  Table
}

func (m *QueueDeclareMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueDeclareMethod) MethodID() uint16 { return QueueDeclare }

func (m *QueueDeclareMethod) queueMethod() {}

func (m *QueueDeclareMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueueDeclareMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueueDeclareMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("queue", m.Queue)
	e.bit(m.Passive)
	e.bit(m.Durable)
	e.bit(m.Exclusive)
	e.bit(m.AutoDelete)
	e.bit(m.NoWait)
	e.table(m.Arguments)
}

func (m *QueueDeclareMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Queue = d.shortstr("queue")
	m.Passive = d.bit("passive")
	m.Durable = d.bit("durable")
	m.Exclusive = d.bit("exclusive")
	m.AutoDelete = d.bit("auto-delete")
	m.NoWait = d.bit("no-wait")
	m.Arguments = d.table("arguments")
}

// QueueDeclareOKMethod represents the queue.declare-ok method
type QueueDeclareOKMethod struct {
	Queue         string
	MessageCount  uint32
	ConsumerCount uint32
}

func (m *QueueDeclareOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueDeclareOKMethod) MethodID() uint16 { return QueueDeclareOK }

func (m *QueueDeclareOKMethod) queueMethod() {}

func (m *QueueDeclareOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueueDeclareOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueueDeclareOKMethod) write(e *encoder) {
	e.shortstr("queue", m.Queue)
	e.long(m.MessageCount)
	e.long(m.ConsumerCount)
}

func (m *QueueDeclareOKMethod) read(d *decoder) {
	m.Queue = d.shortstr("queue")
	m.MessageCount = d.long("message-count")
	m.ConsumerCount = d.long("consumer-count")
}

// QueueBindMethod represents the queue.bind method
type QueueBindMethod struct {
	Reserved1  uint16 // ticket, always zero
	Queue      string
	Exchange   string
	RoutingKey string
	NoWait     bool
	Arguments  Table
}

func (m *QueueBindMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueBindMethod) MethodID() uint16 { return QueueBind }

func (m *QueueBindMethod) queueMethod() {}

func (m *QueueBindMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueueBindMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueueBindMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("queue", m.Queue)
	e.shortstr("exchange", m.Exchange)
	e.shortstr("routing-key", m.RoutingKey)
	e.bit(m.NoWait)
	e.table(m.Arguments)
}

func (m *QueueBindMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Queue = d.shortstr("queue")
	m.Exchange = d.shortstr("exchange")
	m.RoutingKey = d.shortstr("routing-key")
	m.NoWait = d.bit("no-wait")
	m.Arguments = d.table("arguments")
}

// QueueBindOKMethod represents the queue.bind-ok method
type QueueBindOKMethod struct{}

func (m *QueueBindOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueBindOKMethod) MethodID() uint16 { return QueueBindOK }

func (m *QueueBindOKMethod) queueMethod() {}

func (m *QueueBindOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueueBindOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueueBindOKMethod) write(e *encoder) {}
func (m *QueueBindOKMethod) read(d *decoder)  {}

// QueueUnbindMethod represents the queue.unbind method. Unlike bind it carries no no-wait flag.
type QueueUnbindMethod struct {
	Reserved1  uint16 // ticket, always zero
	Queue      string
	Exchange   string
	RoutingKey string
	Arguments  Table
}

func (m *QueueUnbindMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueUnbindMethod) MethodID() uint16 { return QueueUnbind }

func (m *QueueUnbindMethod) queueMethod() {}

func (m *QueueUnbindMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueueUnbindMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueueUnbindMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("queue", m.Queue)
	e.shortstr("exchange", m.Exchange)
	e.shortstr("routing-key", m.RoutingKey)
	e.table(m.Arguments)
}

func (m *QueueUnbindMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Queue = d.shortstr("queue")
	m.Exchange = d.shortstr("exchange")
	m.RoutingKey = d.shortstr("routing-key")
	m.Arguments = d.table("arguments")
}

// QueueUnbindOKMethod represents the queue.unbind-ok method
type QueueUnbindOKMethod struct{}

func (m *QueueUnbindOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueUnbindOKMethod) MethodID() uint16 { return QueueUnbindOK }

func (m *QueueUnbindOKMethod) queueMethod() {}

func (m *QueueUnbindOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueueUnbindOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueueUnbindOKMethod) write(e *encoder) {}
func (m *QueueUnbindOKMethod) read(d *decoder)  {}

// QueuePurgeMethod represents the queue.purge method
type QueuePurgeMethod struct {
	Reserved1 uint16 // ticket, always zero
	Queue     string
	NoWait    bool
}

func (m *QueuePurgeMethod) ClassID() uint16  { return ClassQueue }
func (m *QueuePurgeMethod) MethodID() uint16 { return QueuePurge }

func (m *QueuePurgeMethod) queueMethod() {}

func (m *QueuePurgeMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueuePurgeMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueuePurgeMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("queue", m.Queue)
	e.bit(m.NoWait)
}

func (m *QueuePurgeMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Queue = d.shortstr("queue")
	m.NoWait = d.bit("no-wait")
}

// QueuePurgeOKMethod represents the queue.purge-ok method
type QueuePurgeOKMethod struct {
	MessageCount uint32
}

func (m *QueuePurgeOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueuePurgeOKMethod) MethodID() uint16 { return QueuePurgeOK }

func (m *QueuePurgeOKMethod) queueMethod() {}

func (m *QueuePurgeOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueuePurgeOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueuePurgeOKMethod) write(e *encoder) { e.long(m.MessageCount) }
func (m *QueuePurgeOKMethod) read(d *decoder)  { m.MessageCount = d.long("message-count") }

// QueueDeleteMethod represents the queue.delete method
type QueueDeleteMethod struct {
	Reserved1 uint16 // ticket, always zero
	Queue     string
	IfUnused  bool
	IfEmpty   bool
	NoWait    bool
}

func (m *QueueDeleteMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueDeleteMethod) MethodID() uint16 { return QueueDelete }

func (m *QueueDeleteMethod) queueMethod() {}

func (m *QueueDeleteMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueueDeleteMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueueDeleteMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("queue", m.Queue)
	e.bit(m.IfUnused)
	e.bit(m.IfEmpty)
	e.bit(m.NoWait)
}

func (m *QueueDeleteMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Queue = d.shortstr("queue")
	m.IfUnused = d.bit("if-unused")
	m.IfEmpty = d.bit("if-empty")
	m.NoWait = d.bit("no-wait")
}

// QueueDeleteOKMethod represents the queue.delete-ok method
type QueueDeleteOKMethod struct {
	MessageCount uint32
}

func (m *QueueDeleteOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueDeleteOKMethod) MethodID() uint16 { return QueueDeleteOK }

func (m *QueueDeleteOKMethod) queueMethod() {}

func (m *QueueDeleteOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *QueueDeleteOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *QueueDeleteOKMethod) write(e *encoder) { e.long(m.MessageCount) }
func (m *QueueDeleteOKMethod) read(d *decoder)  { m.MessageCount = d.long("message-count") }
