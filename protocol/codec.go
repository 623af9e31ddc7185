package protocol

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// Primitive codec for the AMQP 0.9.1 wire types. All integers are big-endian.

// Bits is the result of decoding a packed bit octet. Only the first n flags
// are meaningful for a field group of n bits; the rest are always false.
type Bits [8]bool

// EncodeShortString encodes a string with a one-byte length prefix.
// Strings longer than 255 bytes are rejected, never truncated.
func EncodeShortString(s string) ([]byte, error) {
	if len(s) > 255 {
		return nil, amqperrors.NewShortStringTooLong("short-string", len(s))
	}
	result := make([]byte, 1+len(s))
	result[0] = byte(len(s))
	copy(result[1:], s)
	return result, nil
}

// DecodeShortString decodes a short string from data at the given offset
func DecodeShortString(data []byte, offset int) (string, int, error) {
	if offset >= len(data) {
		return "", offset, amqperrors.NewDecodeError(amqperrors.Truncated, "short-string length", offset)
	}

	strLen := int(data[offset])
	start := offset + 1

	if start+strLen > len(data) {
		return "", offset, amqperrors.NewDecodeError(amqperrors.Truncated, "short-string", start)
	}

	raw := data[start : start+strLen]
	if !utf8.Valid(raw) {
		return "", offset, amqperrors.NewDecodeError(amqperrors.InvalidUTF8, "short-string", start)
	}

	return string(raw), start + strLen, nil
}

// EncodeLongString encodes a byte string with a four-byte length prefix
func EncodeLongString(s []byte) []byte {
	result := make([]byte, 4+len(s))
	binary.BigEndian.PutUint32(result[0:4], uint32(len(s)))
	copy(result[4:], s)
	return result
}

// DecodeLongString decodes a long string from data at the given offset.
// Long strings carry binary data (e.g. SASL responses), so no UTF-8 check is made.
func DecodeLongString(data []byte, offset int) ([]byte, int, error) {
	if offset+4 > len(data) {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.Truncated, "long-string length", offset)
	}

	strLen := binary.BigEndian.Uint32(data[offset : offset+4])
	start := offset + 4

	if uint64(start)+uint64(strLen) > uint64(len(data)) {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.Truncated, "long-string", start)
	}

	out := make([]byte, strLen)
	copy(out, data[start:start+int(strLen)])
	return out, start + int(strLen), nil
}

// EncodeBits packs up to eight flags into one octet, first flag in the
// least significant bit.
func EncodeBits(flags []bool) (byte, error) {
	if len(flags) > 8 {
		return 0, amqperrors.NewEncodeError("bits", "more than 8 flags in one octet")
	}
	var b byte
	for i, set := range flags {
		if set {
			b |= 1 << uint(i)
		}
	}
	return b, nil
}

// DecodeBits unpacks an octet into eight flags
func DecodeBits(b byte) Bits {
	var bits Bits
	for i := 0; i < 8; i++ {
		bits[i] = b&(1<<uint(i)) != 0
	}
	return bits
}

// EncodeRawBytes passes a blob through unchanged. Raw bytes carry no length
// prefix; the length travels in the content header.
func EncodeRawBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// DecodeRawBytes reads exactly n bytes at offset
func DecodeRawBytes(data []byte, offset, n int) ([]byte, int, error) {
	if n < 0 || offset+n > len(data) {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.Truncated, "raw-bytes", offset)
	}
	out := make([]byte, n)
	copy(out, data[offset:offset+n])
	return out, offset + n, nil
}

// encoder appends wire values to a buffer. The first error sticks and later
// writes become no-ops, so method serializers can check once at the end.
type encoder struct {
	buf  bytes.Buffer
	bits []bool
	err  error
}

func (e *encoder) flushBits() {
	if len(e.bits) == 0 {
		return
	}
	b, err := EncodeBits(e.bits)
	e.bits = e.bits[:0]
	if err != nil {
		e.setErr(err)
		return
	}
	e.buf.WriteByte(b)
}

func (e *encoder) setErr(err error) {
	if e.err == nil {
		e.err = err
	}
}

// bit queues a flag; consecutive bits share an octet
func (e *encoder) bit(v bool) {
	if len(e.bits) == 8 {
		e.flushBits()
	}
	e.bits = append(e.bits, v)
}

func (e *encoder) octet(v uint8) {
	e.flushBits()
	e.buf.WriteByte(v)
}

func (e *encoder) short(v uint16) {
	e.flushBits()
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) long(v uint32) {
	e.flushBits()
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) longlong(v uint64) {
	e.flushBits()
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) shortstr(field, s string) {
	e.flushBits()
	if len(s) > 255 {
		e.setErr(amqperrors.NewShortStringTooLong(field, len(s)))
		return
	}
	e.buf.WriteByte(byte(len(s)))
	e.buf.WriteString(s)
}

func (e *encoder) longstr(s []byte) {
	e.flushBits()
	e.long(uint32(len(s)))
	e.buf.Write(s)
}

func (e *encoder) table(t Table) {
	e.flushBits()
	if e.err != nil {
		return
	}
	if err := writeTable(&e.buf, t); err != nil {
		e.setErr(err)
	}
}

func (e *encoder) bytes() ([]byte, error) {
	e.flushBits()
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

// decoder walks a payload with an offset cursor
type decoder struct {
	data   []byte
	offset int
	bits   Bits
	nbits  int // remaining unread flags in bits
	err    error
}

func newDecoder(data []byte) *decoder {
	return &decoder{data: data}
}

func (d *decoder) fail(kind amqperrors.DecodeKind, field string) {
	if d.err == nil {
		d.err = amqperrors.NewDecodeError(kind, field, d.offset)
	}
}

func (d *decoder) need(n int, field string) bool {
	if d.err != nil {
		return false
	}
	if d.offset+n > len(d.data) {
		d.fail(amqperrors.Truncated, field)
		return false
	}
	return true
}

func (d *decoder) resetBits() {
	d.nbits = 0
}

// bit reads the next flag of a packed group, fetching a new octet as needed
func (d *decoder) bit(field string) bool {
	if d.nbits == 0 {
		if !d.need(1, field) {
			return false
		}
		d.bits = DecodeBits(d.data[d.offset])
		d.offset++
		d.nbits = 8
	}
	v := d.bits[8-d.nbits]
	d.nbits--
	return v
}

func (d *decoder) octet(field string) uint8 {
	d.resetBits()
	if !d.need(1, field) {
		return 0
	}
	v := d.data[d.offset]
	d.offset++
	return v
}

func (d *decoder) short(field string) uint16 {
	d.resetBits()
	if !d.need(2, field) {
		return 0
	}
	v := binary.BigEndian.Uint16(d.data[d.offset:])
	d.offset += 2
	return v
}

func (d *decoder) long(field string) uint32 {
	d.resetBits()
	if !d.need(4, field) {
		return 0
	}
	v := binary.BigEndian.Uint32(d.data[d.offset:])
	d.offset += 4
	return v
}

func (d *decoder) longlong(field string) uint64 {
	d.resetBits()
	if !d.need(8, field) {
		return 0
	}
	v := binary.BigEndian.Uint64(d.data[d.offset:])
	d.offset += 8
	return v
}

func (d *decoder) shortstr(field string) string {
	d.resetBits()
	if d.err != nil {
		return ""
	}
	s, next, err := DecodeShortString(d.data, d.offset)
	if err != nil {
		d.wrap(err, field)
		return ""
	}
	d.offset = next
	return s
}

func (d *decoder) longstr(field string) []byte {
	d.resetBits()
	if d.err != nil {
		return nil
	}
	s, next, err := DecodeLongString(d.data, d.offset)
	if err != nil {
		d.wrap(err, field)
		return nil
	}
	d.offset = next
	return s
}

func (d *decoder) table(field string) Table {
	d.resetBits()
	if d.err != nil {
		return nil
	}
	t, next, err := readTable(d.data, d.offset, 0)
	if err != nil {
		d.wrap(err, field)
		return nil
	}
	d.offset = next
	return t
}

// wrap records a nested decode error under the method field name
func (d *decoder) wrap(err error, field string) {
	if d.err != nil {
		return
	}
	if de, ok := err.(*amqperrors.DecodeError); ok {
		d.err = &amqperrors.DecodeError{Kind: de.Kind, Field: field, Offset: de.Offset, Cause: de.Cause}
		return
	}
	d.err = err
}

func (d *decoder) remaining() []byte {
	return d.data[d.offset:]
}
