package protocol

import "strings"

// ConnectionStartMethod represents the connection.start method
type ConnectionStartMethod struct {
	VersionMajor     byte
	VersionMinor     byte
	ServerProperties Table
	Mechanisms       []string
	Locales          []string
}

func (m *ConnectionStartMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionStartMethod) MethodID() uint16 { return ConnectionStart }

func (m *ConnectionStartMethod) connectionMethod() {}

func (m *ConnectionStartMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionStartMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionStartMethod) write(e *encoder) {
	e.octet(m.VersionMajor)
	e.octet(m.VersionMinor)
	e.table(m.ServerProperties)
	// Mechanisms and locales are space-separated lists in long strings
	e.longstr([]byte(strings.Join(m.Mechanisms, " ")))
	e.longstr([]byte(strings.Join(m.Locales, " ")))
}

func (m *ConnectionStartMethod) read(d *decoder) {
	m.VersionMajor = d.octet("version-major")
	m.VersionMinor = d.octet("version-minor")
	m.ServerProperties = d.table("server-properties")
	m.Mechanisms = strings.Fields(string(d.longstr("mechanisms")))
	m.Locales = strings.Fields(string(d.longstr("locales")))
}

// ConnectionStartOKMethod represents the connection.start-ok method
type ConnectionStartOKMethod struct {
	ClientProperties Table
	Mechanism        string
	Response         []byte
	Locale           string
}

func (m *ConnectionStartOKMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionStartOKMethod) MethodID() uint16 { return ConnectionStartOK }

func (m *ConnectionStartOKMethod) connectionMethod() {}

func (m *ConnectionStartOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionStartOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionStartOKMethod) write(e *encoder) {
	e.table(m.ClientProperties)
	e.shortstr("mechanism", m.Mechanism)
	e.longstr(m.Response)
	e.shortstr("locale", m.Locale)
}

func (m *ConnectionStartOKMethod) read(d *decoder) {
	m.ClientProperties = d.table("client-properties")
	m.Mechanism = d.shortstr("mechanism")
	m.Response = d.longstr("response")
	m.Locale = d.shortstr("locale")
}

// ConnectionSecureMethod represents the connection.secure method
type ConnectionSecureMethod struct {
	Challenge []byte
}

func (m *ConnectionSecureMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionSecureMethod) MethodID() uint16 { return ConnectionSecure }

func (m *ConnectionSecureMethod) connectionMethod() {}

func (m *ConnectionSecureMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionSecureMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionSecureMethod) write(e *encoder) { e.longstr(m.Challenge) }
func (m *ConnectionSecureMethod) read(d *decoder)  { m.Challenge = d.longstr("challenge") }

// ConnectionSecureOKMethod represents the connection.secure-ok method
type ConnectionSecureOKMethod struct {
	Response []byte
}

func (m *ConnectionSecureOKMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionSecureOKMethod) MethodID() uint16 { return ConnectionSecureOK }

func (m *ConnectionSecureOKMethod) connectionMethod() {}

func (m *ConnectionSecureOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionSecureOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionSecureOKMethod) write(e *encoder) { e.longstr(m.Response) }
func (m *ConnectionSecureOKMethod) read(d *decoder)  { m.Response = d.longstr("response") }

// ConnectionTuneMethod represents the connection.tune method
type ConnectionTuneMethod struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (m *ConnectionTuneMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionTuneMethod) MethodID() uint16 { return ConnectionTune }

func (m *ConnectionTuneMethod) connectionMethod() {}

func (m *ConnectionTuneMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionTuneMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionTuneMethod) write(e *encoder) {
	e.short(m.ChannelMax)
	e.long(m.FrameMax)
	e.short(m.Heartbeat)
}

func (m *ConnectionTuneMethod) read(d *decoder) {
	m.ChannelMax = d.short("channel-max")
	m.FrameMax = d.long("frame-max")
	m.Heartbeat = d.short("heartbeat")
}

// ConnectionTuneOKMethod represents the connection.tune-ok method
type ConnectionTuneOKMethod struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (m *ConnectionTuneOKMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionTuneOKMethod) MethodID() uint16 { return ConnectionTuneOK }

func (m *ConnectionTuneOKMethod) connectionMethod() {}

func (m *ConnectionTuneOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionTuneOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionTuneOKMethod) write(e *encoder) {
	e.short(m.ChannelMax)
	e.long(m.FrameMax)
	e.short(m.Heartbeat)
}

func (m *ConnectionTuneOKMethod) read(d *decoder) {
	m.ChannelMax = d.short("channel-max")
	m.FrameMax = d.long("frame-max")
	m.Heartbeat = d.short("heartbeat")
}

// ConnectionOpenMethod represents the connection.open method
type ConnectionOpenMethod struct {
	VirtualHost string
	Reserved1   string // capabilities
	Reserved2   bool   // insist
}

func (m *ConnectionOpenMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionOpenMethod) MethodID() uint16 { return ConnectionOpen }

func (m *ConnectionOpenMethod) connectionMethod() {}

func (m *ConnectionOpenMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionOpenMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionOpenMethod) write(e *encoder) {
	e.shortstr("virtual-host", m.VirtualHost)
	e.shortstr("capabilities", m.Reserved1)
	e.bit(m.Reserved2)
}

func (m *ConnectionOpenMethod) read(d *decoder) {
	m.VirtualHost = d.shortstr("virtual-host")
	m.Reserved1 = d.shortstr("capabilities")
	m.Reserved2 = d.bit("insist")
}

// ConnectionOpenOKMethod represents the connection.open-ok method
type ConnectionOpenOKMethod struct {
	Reserved1 string // known-hosts
}

func (m *ConnectionOpenOKMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionOpenOKMethod) MethodID() uint16 { return ConnectionOpenOK }

func (m *ConnectionOpenOKMethod) connectionMethod() {}

func (m *ConnectionOpenOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionOpenOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionOpenOKMethod) write(e *encoder) { e.shortstr("known-hosts", m.Reserved1) }
func (m *ConnectionOpenOKMethod) read(d *decoder)  { m.Reserved1 = d.shortstr("known-hosts") }

// ConnectionCloseMethod represents the connection.close method
type ConnectionCloseMethod struct {
	ReplyCode      uint16
	ReplyText      string
	FailedClassID  uint16 // zero when the close was not caused by a method
	FailedMethodID uint16
}

func (m *ConnectionCloseMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionCloseMethod) MethodID() uint16 { return ConnectionClose }

func (m *ConnectionCloseMethod) connectionMethod() {}

func (m *ConnectionCloseMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionCloseMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionCloseMethod) write(e *encoder) {
	e.short(m.ReplyCode)
	e.shortstr("reply-text", m.ReplyText)
	e.short(m.FailedClassID)
	e.short(m.FailedMethodID)
}

func (m *ConnectionCloseMethod) read(d *decoder) {
	m.ReplyCode = d.short("reply-code")
	m.ReplyText = d.shortstr("reply-text")
	m.FailedClassID = d.short("class-id")
	m.FailedMethodID = d.short("method-id")
}

// ConnectionCloseOKMethod represents the connection.close-ok method
type ConnectionCloseOKMethod struct{}

func (m *ConnectionCloseOKMethod) ClassID() uint16  { return ClassConnection }
func (m *ConnectionCloseOKMethod) MethodID() uint16 { return ConnectionCloseOK }

func (m *ConnectionCloseOKMethod) connectionMethod() {}

func (m *ConnectionCloseOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *ConnectionCloseOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *ConnectionCloseOKMethod) write(e *encoder) {}
func (m *ConnectionCloseOKMethod) read(d *decoder)  {}
