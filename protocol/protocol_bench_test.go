package protocol

import (
	"bytes"
	"fmt"
	"testing"
)

// Benchmark frame marshaling
func BenchmarkFrameMarshalBinary(b *testing.B) {
	frame := &Frame{
		Type:    FrameMethod,
		Channel: 1,
		Payload: make([]byte, 100),
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := frame.MarshalBinary()
		if err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark frame unmarshaling
func BenchmarkFrameUnmarshalBinary(b *testing.B) {
	frame := &Frame{
		Type:    FrameMethod,
		Channel: 1,
		Payload: make([]byte, 100),
	}
	data, _ := frame.MarshalBinary()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f := &Frame{}
		if err := f.UnmarshalBinary(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFrameDecoder(b *testing.B) {
	for _, size := range []int{16, 1024, 128 * 1024} {
		b.Run(fmt.Sprintf("payload-%d", size), func(b *testing.B) {
			stream, _ := AppendFrames(nil, &Frame{Type: FrameBody, Channel: 1, Payload: make([]byte, size)})
			d := NewFrameDecoder(0)

			b.SetBytes(int64(len(stream)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = d.Write(stream)
				if f, err := d.Next(); err != nil || f == nil {
					b.Fatalf("decode failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkWriteFrame(b *testing.B) {
	frame := &Frame{Type: FrameBody, Channel: 1, Payload: make([]byte, 4096)}
	var buf bytes.Buffer

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := WriteFrame(&buf, frame); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTableEncoding(b *testing.B) {
	table := Table{
		{Key: "product", Value: "amqp-go-client"},
		{Key: "version", Value: ShortString("1.0.0")},
		{Key: "capabilities", Value: Table{
			{Key: "publisher_confirms", Value: true},
			{Key: "consumer_cancel_notify", Value: true},
		}},
		{Key: "x-max-length", Value: int32(1000)},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeTable(table); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBasicDeliverDecode(b *testing.B) {
	frame, _ := EncodeMethodFrame(1, &BasicDeliverMethod{
		ConsumerTag: "ctag-1",
		DeliveryTag: 42,
		Exchange:    "events",
		RoutingKey:  "orders.created",
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeMethod(frame.Payload); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildPublishFrames(b *testing.B) {
	body := make([]byte, 64*1024)
	publish := &BasicPublishMethod{Exchange: "events", RoutingKey: "orders"}
	props := Properties{ContentType: "application/json", DeliveryMode: Persistent}

	b.SetBytes(int64(len(body)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildPublishFrames(1, publish, props, body, 131072); err != nil {
			b.Fatal(err)
		}
	}
}
