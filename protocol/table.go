package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// MaxTableDepth bounds recursion when decoding nested tables and arrays
const MaxTableDepth = 32

// ShortString is a table value carried with the 's' tag (one-byte length).
// Plain Go strings are carried as long strings ('S').
type ShortString string

// Decimal is a scaled integer value ('D')
type Decimal struct {
	Scale uint8
	Value int32
}

// Timestamp is seconds since the Unix epoch ('T')
type Timestamp uint64

// Time converts the timestamp to a UTC time.Time
func (ts Timestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// TableEntry is one key/value pair of a field table
type TableEntry struct {
	Key   string
	Value interface{}
}

// Table is an AMQP field table. Entry order is preserved on the wire.
type Table []TableEntry

// Get returns the value stored under key
func (t Table) Get(key string) (interface{}, bool) {
	for _, e := range t {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key or appends a new entry
func (t *Table) Set(key string, value interface{}) {
	for i := range *t {
		if (*t)[i].Key == key {
			(*t)[i].Value = value
			return
		}
	}
	*t = append(*t, TableEntry{Key: key, Value: value})
}

// Keys returns the keys in wire order
func (t Table) Keys() []string {
	keys := make([]string, len(t))
	for i, e := range t {
		keys[i] = e.Key
	}
	return keys
}

// TableFromMap builds a table from a map. Keys are sorted so the encoding is
// deterministic; nested maps become nested tables.
func TableFromMap(m map[string]interface{}) Table {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := make(Table, 0, len(m))
	for _, k := range keys {
		v := m[k]
		if nested, ok := v.(map[string]interface{}); ok {
			v = TableFromMap(nested)
		}
		t = append(t, TableEntry{Key: k, Value: v})
	}
	return t
}

// ToMap flattens the table into a map, converting nested tables too
func (t Table) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(t))
	for _, e := range t {
		if nested, ok := e.Value.(Table); ok {
			m[e.Key] = nested.ToMap()
			continue
		}
		m[e.Key] = e.Value
	}
	return m
}

// EncodeTable encodes a table including its four-byte length prefix
func EncodeTable(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTable(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeTable decodes a table at offset and returns the offset after it
func DecodeTable(data []byte, offset int) (Table, int, error) {
	return readTable(data, offset, 0)
}

// writeTable writes a placeholder length, the entries, then patches the
// placeholder with the number of bytes actually written.
func writeTable(buf *bytes.Buffer, t Table) error {
	lenPos := buf.Len()
	buf.Write([]byte{0, 0, 0, 0})
	start := buf.Len()

	for _, e := range t {
		if len(e.Key) > 255 {
			return amqperrors.NewShortStringTooLong("table key", len(e.Key))
		}
		buf.WriteByte(byte(len(e.Key)))
		buf.WriteString(e.Key)
		if err := writeField(buf, e.Key, e.Value); err != nil {
			return err
		}
	}

	binary.BigEndian.PutUint32(buf.Bytes()[lenPos:], uint32(buf.Len()-start))
	return nil
}

func writeField(buf *bytes.Buffer, key string, value interface{}) error {
	var scratch [8]byte

	switch v := value.(type) {
	case bool:
		buf.WriteByte('t')
		if v {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case int8:
		buf.WriteByte('b')
		buf.WriteByte(byte(v))
	case uint8:
		buf.WriteByte('B')
		buf.WriteByte(v)
	case int16:
		buf.WriteByte('U')
		binary.BigEndian.PutUint16(scratch[:2], uint16(v))
		buf.Write(scratch[:2])
	case uint16:
		buf.WriteByte('u')
		binary.BigEndian.PutUint16(scratch[:2], v)
		buf.Write(scratch[:2])
	case int32:
		buf.WriteByte('I')
		binary.BigEndian.PutUint32(scratch[:4], uint32(v))
		buf.Write(scratch[:4])
	case uint32:
		buf.WriteByte('i')
		binary.BigEndian.PutUint32(scratch[:4], v)
		buf.Write(scratch[:4])
	case int:
		buf.WriteByte('l')
		binary.BigEndian.PutUint64(scratch[:], uint64(int64(v)))
		buf.Write(scratch[:])
	case int64:
		buf.WriteByte('l')
		binary.BigEndian.PutUint64(scratch[:], uint64(v))
		buf.Write(scratch[:])
	case uint64:
		buf.WriteByte('L')
		binary.BigEndian.PutUint64(scratch[:], v)
		buf.Write(scratch[:])
	case float32:
		buf.WriteByte('f')
		binary.BigEndian.PutUint32(scratch[:4], math.Float32bits(v))
		buf.Write(scratch[:4])
	case float64:
		buf.WriteByte('d')
		binary.BigEndian.PutUint64(scratch[:], math.Float64bits(v))
		buf.Write(scratch[:])
	case Decimal:
		buf.WriteByte('D')
		buf.WriteByte(v.Scale)
		binary.BigEndian.PutUint32(scratch[:4], uint32(v.Value))
		buf.Write(scratch[:4])
	case ShortString:
		if len(v) > 255 {
			return amqperrors.NewShortStringTooLong(key, len(v))
		}
		buf.WriteByte('s')
		buf.WriteByte(byte(len(v)))
		buf.WriteString(string(v))
	case string:
		buf.WriteByte('S')
		binary.BigEndian.PutUint32(scratch[:4], uint32(len(v)))
		buf.Write(scratch[:4])
		buf.WriteString(v)
	case []byte:
		buf.WriteByte('x')
		binary.BigEndian.PutUint32(scratch[:4], uint32(len(v)))
		buf.Write(scratch[:4])
		buf.Write(v)
	case Timestamp:
		buf.WriteByte('T')
		binary.BigEndian.PutUint64(scratch[:], uint64(v))
		buf.Write(scratch[:])
	case Table:
		buf.WriteByte('F')
		return writeTable(buf, v)
	case map[string]interface{}:
		buf.WriteByte('F')
		return writeTable(buf, TableFromMap(v))
	case []interface{}:
		buf.WriteByte('A')
		lenPos := buf.Len()
		buf.Write([]byte{0, 0, 0, 0})
		start := buf.Len()
		for _, item := range v {
			if err := writeField(buf, key, item); err != nil {
				return err
			}
		}
		binary.BigEndian.PutUint32(buf.Bytes()[lenPos:], uint32(buf.Len()-start))
	case nil:
		buf.WriteByte('V')
	default:
		return amqperrors.NewEncodeError(key, fmt.Sprintf("unsupported table value type %T", value))
	}
	return nil
}

// readTable decodes a length-prefixed table. It must consume exactly the
// declared number of bytes; nested tables track their own budget.
func readTable(data []byte, offset, depth int) (Table, int, error) {
	if depth > MaxTableDepth {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.TableTooDeep, "table", offset)
	}
	if offset+4 > len(data) {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.Truncated, "table length", offset)
	}

	tableLen := binary.BigEndian.Uint32(data[offset : offset+4])
	offset += 4

	if uint64(offset)+uint64(tableLen) > uint64(len(data)) {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.TruncatedTable, "table", offset)
	}

	tableEnd := offset + int(tableLen)
	// Bound the view so an entry cannot read past the declared length
	window := data[:tableEnd]
	table := Table{}

	for offset < tableEnd {
		key, next, err := DecodeShortString(window, offset)
		if err != nil {
			return nil, offset, asTruncatedTable(err)
		}
		offset = next

		value, next, err := readField(window, offset, depth)
		if err != nil {
			return nil, offset, asTruncatedTable(err)
		}
		offset = next

		table = append(table, TableEntry{Key: key, Value: value})
	}

	if offset != tableEnd {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.TruncatedTable, "table", offset)
	}

	return table, offset, nil
}

// asTruncatedTable turns running off the end of the table window into TruncatedTable
func asTruncatedTable(err error) error {
	if de, ok := err.(*amqperrors.DecodeError); ok && de.Kind == amqperrors.Truncated {
		return &amqperrors.DecodeError{Kind: amqperrors.TruncatedTable, Field: de.Field, Offset: de.Offset}
	}
	return err
}

func readField(data []byte, offset, depth int) (interface{}, int, error) {
	if offset >= len(data) {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.Truncated, "field type", offset)
	}
	tag := data[offset]
	offset++

	need := func(n int) error {
		if offset+n > len(data) {
			return amqperrors.NewDecodeError(amqperrors.Truncated, fmt.Sprintf("field '%c'", tag), offset)
		}
		return nil
	}

	switch tag {
	case 't':
		if err := need(1); err != nil {
			return nil, offset, err
		}
		return data[offset] != 0, offset + 1, nil
	case 'b':
		if err := need(1); err != nil {
			return nil, offset, err
		}
		return int8(data[offset]), offset + 1, nil
	case 'B':
		if err := need(1); err != nil {
			return nil, offset, err
		}
		return data[offset], offset + 1, nil
	case 'U':
		if err := need(2); err != nil {
			return nil, offset, err
		}
		return int16(binary.BigEndian.Uint16(data[offset:])), offset + 2, nil
	case 'u':
		if err := need(2); err != nil {
			return nil, offset, err
		}
		return binary.BigEndian.Uint16(data[offset:]), offset + 2, nil
	case 'I':
		if err := need(4); err != nil {
			return nil, offset, err
		}
		return int32(binary.BigEndian.Uint32(data[offset:])), offset + 4, nil
	case 'i':
		if err := need(4); err != nil {
			return nil, offset, err
		}
		return binary.BigEndian.Uint32(data[offset:]), offset + 4, nil
	case 'l':
		if err := need(8); err != nil {
			return nil, offset, err
		}
		return int64(binary.BigEndian.Uint64(data[offset:])), offset + 8, nil
	case 'L':
		if err := need(8); err != nil {
			return nil, offset, err
		}
		return binary.BigEndian.Uint64(data[offset:]), offset + 8, nil
	case 'f':
		if err := need(4); err != nil {
			return nil, offset, err
		}
		return math.Float32frombits(binary.BigEndian.Uint32(data[offset:])), offset + 4, nil
	case 'd':
		if err := need(8); err != nil {
			return nil, offset, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(data[offset:])), offset + 8, nil
	case 'D':
		if err := need(5); err != nil {
			return nil, offset, err
		}
		return Decimal{Scale: data[offset], Value: int32(binary.BigEndian.Uint32(data[offset+1:]))}, offset + 5, nil
	case 's':
		s, next, err := DecodeShortString(data, offset)
		if err != nil {
			return nil, offset, err
		}
		return ShortString(s), next, nil
	case 'S':
		s, next, err := DecodeLongString(data, offset)
		if err != nil {
			return nil, offset, err
		}
		return string(s), next, nil
	case 'x':
		b, next, err := DecodeLongString(data, offset)
		if err != nil {
			return nil, offset, err
		}
		return b, next, nil
	case 'T':
		if err := need(8); err != nil {
			return nil, offset, err
		}
		return Timestamp(binary.BigEndian.Uint64(data[offset:])), offset + 8, nil
	case 'F':
		return readTable(data, offset, depth+1)
	case 'A':
		return readArray(data, offset, depth+1)
	case 'V':
		return nil, offset, nil
	default:
		return nil, offset, amqperrors.NewDecodeError(amqperrors.UnknownFieldType, fmt.Sprintf("tag 0x%02X", tag), offset-1)
	}
}

func readArray(data []byte, offset, depth int) (interface{}, int, error) {
	if depth > MaxTableDepth {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.TableTooDeep, "array", offset)
	}
	if offset+4 > len(data) {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.Truncated, "array length", offset)
	}
	arrLen := binary.BigEndian.Uint32(data[offset:])
	offset += 4
	if uint64(offset)+uint64(arrLen) > uint64(len(data)) {
		return nil, offset, amqperrors.NewDecodeError(amqperrors.TruncatedTable, "array", offset)
	}

	end := offset + int(arrLen)
	window := data[:end]
	items := []interface{}{}
	for offset < end {
		v, next, err := readField(window, offset, depth)
		if err != nil {
			return nil, offset, asTruncatedTable(err)
		}
		items = append(items, v)
		offset = next
	}
	return items, offset, nil
}

// TableFromAMQP091 converts a table used by the rabbitmq/amqp091-go client
func TableFromAMQP091(src amqp091.Table) Table {
	if src == nil {
		return nil
	}
	m := make(map[string]interface{}, len(src))
	for k, v := range src {
		m[k] = fromAMQP091Value(v)
	}
	return TableFromMap(m)
}

func fromAMQP091Value(v interface{}) interface{} {
	switch x := v.(type) {
	case amqp091.Table:
		return TableFromAMQP091(x)
	case amqp091.Decimal:
		return Decimal{Scale: x.Scale, Value: x.Value}
	case time.Time:
		return Timestamp(x.Unix())
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, item := range x {
			out[i] = fromAMQP091Value(item)
		}
		return out
	default:
		return v
	}
}

// ToAMQP091 converts the table to the amqp091-go representation
func (t Table) ToAMQP091() amqp091.Table {
	if t == nil {
		return nil
	}
	out := make(amqp091.Table, len(t))
	for _, e := range t {
		out[e.Key] = toAMQP091Value(e.Value)
	}
	return out
}

func toAMQP091Value(v interface{}) interface{} {
	switch x := v.(type) {
	case Table:
		return x.ToAMQP091()
	case ShortString:
		return string(x)
	case Decimal:
		return amqp091.Decimal{Scale: x.Scale, Value: x.Value}
	case Timestamp:
		return x.Time()
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, item := range x {
			out[i] = toAMQP091Value(item)
		}
		return out
	default:
		return v
	}
}
