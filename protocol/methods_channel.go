package protocol

// ChannelOpenMethod represents the channel.open method
type ChannelOpenMethod struct {
	Reserved1 string // out-of-band, always empty
}

func (m *ChannelOpenMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelOpenMethod) MethodID() uint16 { return ChannelOpen }

func (m *ChannelOpenMethod) channelMethod() {}

func (m *ChannelOpenMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ChannelOpenMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ChannelOpenMethod) write(e *encoder) { e.shortstr("out-of-band", m.Reserved1) }
func (m *ChannelOpenMethod) read(d *decoder)  { m.Reserved1 = d.shortstr("out-of-band") }

// ChannelOpenOKMethod represents the channel.open-ok method
type ChannelOpenOKMethod struct {
	Reserved1 []byte // channel-id, ignored
}

func (m *ChannelOpenOKMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelOpenOKMethod) MethodID() uint16 { return ChannelOpenOK }

func (m *ChannelOpenOKMethod) channelMethod() {}

func (m *ChannelOpenOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ChannelOpenOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ChannelOpenOKMethod) write(e *encoder) { e.longstr(m.Reserved1) }
func (m *ChannelOpenOKMethod) read(d *decoder)  { m.Reserved1 = d.longstr("channel-id") }

// ChannelFlowMethod represents the channel.flow method. The broker asks the client to pause or resume publishing.
type ChannelFlowMethod struct {
	Active bool
}

func (m *ChannelFlowMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelFlowMethod) MethodID() uint16 { return ChannelFlow }

func (m *ChannelFlowMethod) channelMethod() {}

func (m *ChannelFlowMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ChannelFlowMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ChannelFlowMethod) write(e *encoder) { e.bit(m.Active) }
func (m *ChannelFlowMethod) read(d *decoder)  { m.Active = d.bit("active") }

// ChannelFlowOKMethod represents the channel.flow-ok method
type ChannelFlowOKMethod struct {
	Active bool
}

func (m *ChannelFlowOKMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelFlowOKMethod) MethodID() uint16 { return ChannelFlowOK }

func (m *ChannelFlowOKMethod) channelMethod() {}

func (m *ChannelFlowOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ChannelFlowOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ChannelFlowOKMethod) write(e *encoder) { e.bit(m.Active) }
func (m *ChannelFlowOKMethod) read(d *decoder)  { m.Active = d.bit("active") }

// ChannelCloseMethod represents the channel.close method
type ChannelCloseMethod struct {
	ReplyCode      uint16
	ReplyText      string
	FailedClassID  uint16 // zero when the close was not caused by a method
	FailedMethodID uint16
}

func (m *ChannelCloseMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelCloseMethod) MethodID() uint16 { return ChannelClose }

func (m *ChannelCloseMethod) channelMethod() {}

func (m *ChannelCloseMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ChannelCloseMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ChannelCloseMethod) write(e *encoder) {
	e.short(m.ReplyCode)
	e.shortstr("reply-text", m.ReplyText)
	e.short(m.FailedClassID)
	e.short(m.FailedMethodID)
}

func (m *ChannelCloseMethod) read(d *decoder) {
	m.ReplyCode = d.short("reply-code")
	m.ReplyText = d.shortstr("reply-text")
	m.FailedClassID = d.short("class-id")
	m.FailedMethodID = d.short("method-id")
}

// ChannelCloseOKMethod represents the channel.close-ok method
type ChannelCloseOKMethod struct{}

func (m *ChannelCloseOKMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelCloseOKMethod) MethodID() uint16 { return ChannelCloseOK }

func (m *ChannelCloseOKMethod) channelMethod() {}

func (m *ChannelCloseOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ChannelCloseOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ChannelCloseOKMethod) write(e *encoder) {}
func (m *ChannelCloseOKMethod) read(d *decoder)  {}
