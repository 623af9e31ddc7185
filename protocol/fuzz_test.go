package protocol

import (
	"bytes"
	"testing"
)

// FuzzFrameUnmarshal tests frame unmarshaling with random data
// Run with: go test -fuzz=FuzzFrameUnmarshal -fuzztime=30s
func FuzzFrameUnmarshal(f *testing.F) {
	validFrame := &Frame{
		Type:    FrameMethod,
		Channel: 1,
		Payload: []byte{0x00, 0x0A, 0x00, 0x0A},
	}
	validData, _ := validFrame.MarshalBinary()
	f.Add(validData)

	f.Add([]byte{})
	f.Add([]byte{0x01, 0x00})

	heartbeatData, _ := NewHeartbeatFrame().MarshalBinary()
	f.Add(heartbeatData)

	f.Fuzz(func(t *testing.T, data []byte) {
		frame := &Frame{}
		if err := frame.UnmarshalBinary(data); err != nil {
			return
		}
		// Anything accepted must re-encode to the same bytes
		again, err := frame.MarshalBinary()
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		if !bytes.Equal(again, data) {
			t.Errorf("re-encoded frame differs: %x vs %x", again, data)
		}
	})
}

// FuzzFrameDecoder feeds random chunks through the streaming decoder
// Run with: go test -fuzz=FuzzFrameDecoder -fuzztime=30s
func FuzzFrameDecoder(f *testing.F) {
	stream, _ := AppendFrames(nil,
		&Frame{Type: FrameMethod, Channel: 1, Payload: []byte{0, 60, 0, 40}},
		&Frame{Type: FrameBody, Channel: 1, Payload: []byte("hi")},
	)
	f.Add(stream, uint8(3))

	f.Fuzz(func(t *testing.T, data []byte, step uint8) {
		if step == 0 {
			step = 1
		}
		d := NewFrameDecoder(0)
		for off := 0; off < len(data); off += int(step) {
			end := off + int(step)
			if end > len(data) {
				end = len(data)
			}
			_, _ = d.Write(data[off:end])
			for {
				frame, err := d.Next()
				if err != nil {
					return
				}
				if frame == nil {
					break
				}
				if int(frame.Size) != len(frame.Payload) {
					t.Fatalf("size %d does not match payload %d", frame.Size, len(frame.Payload))
				}
			}
		}
	})
}

// FuzzTableDecode tests field table decoding with random data
// Run with: go test -fuzz=FuzzTableDecode -fuzztime=30s
func FuzzTableDecode(f *testing.F) {
	valid, _ := EncodeTable(Table{
		{Key: "string", Value: "value"},
		{Key: "int", Value: int32(42)},
		{Key: "bool", Value: true},
		{Key: "nested", Value: Table{{Key: "short", Value: ShortString("x")}}},
	})
	f.Add(valid)

	empty, _ := EncodeTable(Table{})
	f.Add(empty)

	f.Fuzz(func(t *testing.T, data []byte) {
		table, next, err := DecodeTable(data, 0)
		if err != nil {
			return
		}
		encoded, err := EncodeTable(table)
		if err != nil {
			t.Fatalf("decoded table does not re-encode: %v", err)
		}
		if len(encoded) != next {
			t.Errorf("re-encoded length %d, consumed %d", len(encoded), next)
		}
	})
}

// FuzzContentHeaderRead tests content header parsing with random data
// Run with: go test -fuzz=FuzzContentHeaderRead -fuzztime=30s
func FuzzContentHeaderRead(f *testing.F) {
	validHeader := &ContentHeader{
		ClassID:  ClassBasic,
		BodySize: 100,
		Properties: Properties{
			ContentType:  "text/plain",
			DeliveryMode: Persistent,
		},
	}
	validData, _ := validHeader.Serialize()
	f.Add(validData)

	minimalHeader := &ContentHeader{ClassID: ClassBasic}
	minimalData, _ := minimalHeader.Serialize()
	f.Add(minimalData)

	f.Fuzz(func(t *testing.T, data []byte) {
		frame := &Frame{Type: FrameHeader, Channel: 1, Payload: data}
		_, _ = ReadContentHeader(frame)
	})
}

// FuzzDecodeMethod tests method decoding with random payloads
// Run with: go test -fuzz=FuzzDecodeMethod -fuzztime=30s
func FuzzDecodeMethod(f *testing.F) {
	start, _ := EncodeMethodFrame(0, &ConnectionStartMethod{
		VersionMajor:     0,
		VersionMinor:     9,
		ServerProperties: Table{{Key: "product", Value: "broker"}},
		Mechanisms:       []string{"PLAIN"},
		Locales:          []string{"en_US"},
	})
	f.Add(start.Payload)

	deliver, _ := EncodeMethodFrame(1, &BasicDeliverMethod{ConsumerTag: "ctag", DeliveryTag: 9, Exchange: "", RoutingKey: "q"})
	f.Add(deliver.Payload)

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = DecodeMethod(data)
	})
}

// FuzzDecodeShortString tests short string decoding robustness
// Run with: go test -fuzz=FuzzDecodeShortString -fuzztime=30s
func FuzzDecodeShortString(f *testing.F) {
	for _, s := range []string{"test", "", "unicode 🎉"} {
		encoded, _ := EncodeShortString(s)
		f.Add(encoded)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		s, next, err := DecodeShortString(data, 0)
		if err != nil {
			return
		}
		if next != len(s)+1 {
			t.Errorf("offset %d after string of length %d", next, len(s))
		}
	})
}
