package protocol

import (
	"encoding/binary"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// Property flags for word 0 of the content header flag list
const (
	FlagContentType     = 0x8000
	FlagContentEncoding = 0x4000
	FlagHeaders         = 0x2000
	FlagDeliveryMode    = 0x1000
	FlagPriority        = 0x0800
	FlagCorrelationID   = 0x0400
	FlagReplyTo         = 0x0200
	FlagExpiration      = 0x0100
	FlagMessageID       = 0x0080
	FlagTimestamp       = 0x0040
	FlagType            = 0x0020
	FlagUserID          = 0x0010
	FlagAppID           = 0x0008
	FlagClusterID       = 0x0004

	// FlagContinuation marks that another flag word follows
	FlagContinuation = 0x0001
)

// flagsPerWord is the number of property flags carried by one 16-bit word;
// the low bit is the continuation marker.
const flagsPerWord = 15

// propertyCount is the number of optional basic-class properties
const propertyCount = 14

// Properties is the optional property bag of a basic-class message. A field
// is present on the wire when it holds a non-zero value; Headers is present
// when non-nil.
type Properties struct {
	ContentType     string
	ContentEncoding string
	Headers         Table
	DeliveryMode    uint8
	Priority        uint8
	CorrelationID   string
	ReplyTo         string
	Expiration      string
	MessageID       string
	Timestamp       uint64
	Type            string
	UserID          string
	AppID           string
	ClusterID       string
}

// Flags returns the presence flag of each property in declared order
func (p *Properties) Flags() []bool {
	return []bool{
		p.ContentType != "",
		p.ContentEncoding != "",
		p.Headers != nil,
		p.DeliveryMode != 0,
		p.Priority != 0,
		p.CorrelationID != "",
		p.ReplyTo != "",
		p.Expiration != "",
		p.MessageID != "",
		p.Timestamp != 0,
		p.Type != "",
		p.UserID != "",
		p.AppID != "",
		p.ClusterID != "",
	}
}

// EncodeFlagWords packs flags into 16-bit words, most significant bit first.
// Each word carries 15 flags; bit 0 is set when another word follows. At
// least one word is always produced.
func EncodeFlagWords(flags []bool) []uint16 {
	words := make([]uint16, 0, len(flags)/flagsPerWord+1)
	for start := 0; ; start += flagsPerWord {
		var word uint16
		end := start + flagsPerWord
		if end > len(flags) {
			end = len(flags)
		}
		for i, set := range flags[start:end] {
			if set {
				word |= 1 << uint(15-i)
			}
		}
		more := end < len(flags)
		if more {
			word |= FlagContinuation
		}
		words = append(words, word)
		if !more {
			return words
		}
	}
}

// DecodeFlagWords reads flag words at offset until one without the
// continuation bit, returning 15 flags per word read.
func DecodeFlagWords(data []byte, offset int) ([]bool, int, error) {
	var flags []bool
	for {
		if offset+2 > len(data) {
			return nil, offset, amqperrors.NewDecodeError(amqperrors.Truncated, "property flags", offset)
		}
		word := binary.BigEndian.Uint16(data[offset:])
		offset += 2
		for bit := 15; bit >= 1; bit-- {
			flags = append(flags, word&(1<<uint(bit)) != 0)
		}
		if word&FlagContinuation == 0 {
			return flags, offset, nil
		}
	}
}

// EncodeProperties writes the flag word(s) followed by the present fields
func EncodeProperties(p Properties) ([]byte, error) {
	e := &encoder{}
	p.encode(e)
	return e.bytes()
}

// DecodeProperties reads properties at offset and returns the offset after them
func DecodeProperties(data []byte, offset int) (Properties, int, error) {
	d := newDecoder(data)
	d.offset = offset
	p := decodeProperties(d)
	if d.err != nil {
		return Properties{}, d.offset, d.err
	}
	return p, d.offset, nil
}

func (p *Properties) encode(e *encoder) {
	for _, w := range EncodeFlagWords(p.Flags()) {
		e.short(w)
	}

	// Fields must follow the declared order exactly
	if p.ContentType != "" {
		e.shortstr("content-type", p.ContentType)
	}
	if p.ContentEncoding != "" {
		e.shortstr("content-encoding", p.ContentEncoding)
	}
	if p.Headers != nil {
		e.table(p.Headers)
	}
	if p.DeliveryMode != 0 {
		e.octet(p.DeliveryMode)
	}
	if p.Priority != 0 {
		e.octet(p.Priority)
	}
	if p.CorrelationID != "" {
		e.shortstr("correlation-id", p.CorrelationID)
	}
	if p.ReplyTo != "" {
		e.shortstr("reply-to", p.ReplyTo)
	}
	if p.Expiration != "" {
		e.shortstr("expiration", p.Expiration)
	}
	if p.MessageID != "" {
		e.shortstr("message-id", p.MessageID)
	}
	if p.Timestamp != 0 {
		e.longlong(p.Timestamp)
	}
	if p.Type != "" {
		e.shortstr("type", p.Type)
	}
	if p.UserID != "" {
		e.shortstr("user-id", p.UserID)
	}
	if p.AppID != "" {
		e.shortstr("app-id", p.AppID)
	}
	if p.ClusterID != "" {
		e.shortstr("cluster-id", p.ClusterID)
	}
}

func decodeProperties(d *decoder) Properties {
	var p Properties
	if d.err != nil {
		return p
	}

	flags, next, err := DecodeFlagWords(d.data, d.offset)
	if err != nil {
		d.wrap(err, "property flags")
		return p
	}
	d.offset = next
	for len(flags) < propertyCount {
		flags = append(flags, false)
	}

	if flags[0] {
		p.ContentType = d.shortstr("content-type")
	}
	if flags[1] {
		p.ContentEncoding = d.shortstr("content-encoding")
	}
	if flags[2] {
		p.Headers = d.table("headers")
	}
	if flags[3] {
		p.DeliveryMode = d.octet("delivery-mode")
	}
	if flags[4] {
		p.Priority = d.octet("priority")
	}
	if flags[5] {
		p.CorrelationID = d.shortstr("correlation-id")
	}
	if flags[6] {
		p.ReplyTo = d.shortstr("reply-to")
	}
	if flags[7] {
		p.Expiration = d.shortstr("expiration")
	}
	if flags[8] {
		p.MessageID = d.shortstr("message-id")
	}
	if flags[9] {
		p.Timestamp = d.longlong("timestamp")
	}
	if flags[10] {
		p.Type = d.shortstr("type")
	}
	if flags[11] {
		p.UserID = d.shortstr("user-id")
	}
	if flags[12] {
		p.AppID = d.shortstr("app-id")
	}
	if flags[13] {
		p.ClusterID = d.shortstr("cluster-id")
	}
	return p
}
