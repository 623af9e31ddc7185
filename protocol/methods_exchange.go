package protocol

// ExchangeDeclareMethod represents the exchange.declare method
type ExchangeDeclareMethod struct {
	Reserved1  uint16 // ticket, always zero
	Exchange   string
	Type       string
	Passive    bool
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Arguments  Table
}

func (m *ExchangeDeclareMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDeclareMethod) MethodID() uint16 { return ExchangeDeclare }

func (m *ExchangeDeclareMethod) exchangeMethod() {}

func (m *ExchangeDeclareMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ExchangeDeclareMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ExchangeDeclareMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("exchange", m.Exchange)
	e.shortstr("type", m.Type)
	e.bit(m.Passive)
	e.bit(m.Durable)
	e.bit(m.AutoDelete)
	e.bit(m.Internal)
	e.bit(m.NoWait)
	e.table(m.Arguments)
}

func (m *ExchangeDeclareMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Exchange = d.shortstr("exchange")
	m.Type = d.shortstr("type")
	m.Passive = d.bit("passive")
	m.Durable = d.bit("durable")
	m.AutoDelete = d.bit("auto-delete")
	m.Internal = d.bit("internal")
	m.NoWait = d.bit("no-wait")
	m.Arguments = d.table("arguments")
}

// ExchangeDeclareOKMethod represents the exchange.declare-ok method
type ExchangeDeclareOKMethod struct{}

func (m *ExchangeDeclareOKMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDeclareOKMethod) MethodID() uint16 { return ExchangeDeclareOK }

func (m *ExchangeDeclareOKMethod) exchangeMethod() {}

func (m *ExchangeDeclareOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ExchangeDeclareOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ExchangeDeclareOKMethod) write(e *encoder) {}
func (m *ExchangeDeclareOKMethod) read(d *decoder)  {}

// ExchangeDeleteMethod represents the exchange.delete method
type ExchangeDeleteMethod struct {
	Reserved1 uint16 // ticket, always zero
	Exchange  string
	IfUnused  bool
	NoWait    bool
}

func (m *ExchangeDeleteMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDeleteMethod) MethodID() uint16 { return ExchangeDelete }

func (m *ExchangeDeleteMethod) exchangeMethod() {}

func (m *ExchangeDeleteMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ExchangeDeleteMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ExchangeDeleteMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("exchange", m.Exchange)
	e.bit(m.IfUnused)
	e.bit(m.NoWait)
}

func (m *ExchangeDeleteMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Exchange = d.shortstr("exchange")
	m.IfUnused = d.bit("if-unused")
	m.NoWait = d.bit("no-wait")
}

// ExchangeDeleteOKMethod represents the exchange.delete-ok method
type ExchangeDeleteOKMethod struct{}

func (m *ExchangeDeleteOKMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDeleteOKMethod) MethodID() uint16 { return ExchangeDeleteOK }

func (m *ExchangeDeleteOKMethod) exchangeMethod() {}

func (m *ExchangeDeleteOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ExchangeDeleteOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ExchangeDeleteOKMethod) write(e *encoder) {}
func (m *ExchangeDeleteOKMethod) read(d *decoder)  {}

// ExchangeBindMethod represents the exchange.bind method
type ExchangeBindMethod struct {
	Reserved1   uint16 // ticket, always zero
	Destination string
	Source      string
	RoutingKey  string
	NoWait      bool
	Arguments   Table
}

func (m *ExchangeBindMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeBindMethod) MethodID() uint16 { return ExchangeBind }

func (m *ExchangeBindMethod) exchangeMethod() {}

func (m *ExchangeBindMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ExchangeBindMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ExchangeBindMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("destination", m.Destination)
	e.shortstr("source", m.Source)
	e.shortstr("routing-key", m.RoutingKey)
	e.bit(m.NoWait)
	e.table(m.Arguments)
}

func (m *ExchangeBindMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Destination = d.shortstr("destination")
	m.Source = d.shortstr("source")
	m.RoutingKey = d.shortstr("routing-key")
	m.NoWait = d.bit("no-wait")
	m.Arguments = d.table("arguments")
}

// ExchangeBindOKMethod represents the exchange.bind-ok method
type ExchangeBindOKMethod struct{}

func (m *ExchangeBindOKMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeBindOKMethod) MethodID() uint16 { return ExchangeBindOK }

func (m *ExchangeBindOKMethod) exchangeMethod() {}

func (m *ExchangeBindOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ExchangeBindOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ExchangeBindOKMethod) write(e *encoder) {}
func (m *ExchangeBindOKMethod) read(d *decoder)  {}

// ExchangeUnbindMethod represents the exchange.unbind method
type ExchangeUnbindMethod struct {
	Reserved1   uint16 // ticket, always zero
	Destination string
	Source      string
	RoutingKey  string
	NoWait      bool
	Arguments   Table
}

func (m *ExchangeUnbindMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeUnbindMethod) MethodID() uint16 { return ExchangeUnbind }

func (m *ExchangeUnbindMethod) exchangeMethod() {}

func (m *ExchangeUnbindMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ExchangeUnbindMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ExchangeUnbindMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr("destination", m.Destination)
	e.shortstr("source", m.Source)
	e.shortstr("routing-key", m.RoutingKey)
	e.bit(m.NoWait)
	e.table(m.Arguments)
}

func (m *ExchangeUnbindMethod) read(d *decoder) {
	m.Reserved1 = d.short("ticket")
	m.Destination = d.shortstr("destination")
	m.Source = d.shortstr("source")
	m.RoutingKey = d.shortstr("routing-key")
	m.NoWait = d.bit("no-wait")
	m.Arguments = d.table("arguments")
}

// ExchangeUnbindOKMethod represents the exchange.unbind-ok method
type ExchangeUnbindOKMethod struct{}

func (m *ExchangeUnbindOKMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeUnbindOKMethod) MethodID() uint16 { return ExchangeUnbindOK }

func (m *ExchangeUnbindOKMethod) exchangeMethod() {}

func (m *ExchangeUnbindOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ExchangeUnbindOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ExchangeUnbindOKMethod) write(e *encoder) {}
func (m *ExchangeUnbindOKMethod) read(d *decoder)  {}
