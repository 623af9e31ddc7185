package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpert/amqp-go-client/protocol"
)

type order struct {
	ID       string   `json:"id" cbor:"id" yaml:"id"`
	Quantity int      `json:"quantity" cbor:"quantity" yaml:"quantity"`
	Tags     []string `json:"tags" cbor:"tags" yaml:"tags"`
}

func TestCodecsRoundTrip(t *testing.T) {
	in := order{ID: "o-1", Quantity: 3, Tags: []string{"rush"}}
	r := DefaultRegistry()

	for _, ct := range []string{ContentTypeJSON, ContentTypeCBOR, ContentTypeYAML} {
		t.Run(ct, func(t *testing.T) {
			pub, err := r.Publishing(ct, in)
			require.NoError(t, err)
			assert.Equal(t, ct, pub.ContentType)
			assert.NotEmpty(t, pub.Body)

			msg := &protocol.Message{Properties: pub.Properties, Body: pub.Body}
			var out order
			require.NoError(t, r.Decode(msg, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestLookupIgnoresParameters(t *testing.T) {
	r := DefaultRegistry()

	codec, err := r.Lookup("application/json; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeJSON, codec.ContentType())

	codec, err = r.Lookup("Application/X-YAML")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeYAML, codec.ContentType())
}

func TestUnsupportedContentType(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Lookup("text/plain")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)

	_, err = r.Publishing("", struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedContentType)

	var v map[string]interface{}
	err = r.Decode(&protocol.Message{Body: []byte("{}")}, &v)
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}

func TestDecodeMalformedBody(t *testing.T) {
	r := DefaultRegistry()
	msg := &protocol.Message{
		Properties: protocol.Properties{ContentType: ContentTypeJSON},
		Body:       []byte("{not json"),
	}

	var out order
	err := r.Decode(msg, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode application/json body")
}

func TestRegistryCustomCodec(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.ContentTypes())

	r.RegisterAs("application/vnd.orders+json", JSON())
	assert.Equal(t, []string{"application/vnd.orders+json"}, r.ContentTypes())

	pub, err := r.Publishing("application/vnd.orders+json", order{ID: "o-2"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"o-2","quantity":0,"tags":null}`, string(pub.Body))
}

func TestDefaultRegistryContentTypes(t *testing.T) {
	assert.Equal(t, []string{
		"application/cbor",
		"application/json",
		"application/x-yaml",
		"application/yaml",
		"text/yaml",
	}, DefaultRegistry().ContentTypes())
}
