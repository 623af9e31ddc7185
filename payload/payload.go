// Package payload encodes and decodes message bodies according to the
// content-type property.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/maxpert/amqp-go-client/client"
	"github.com/maxpert/amqp-go-client/protocol"
)

// Content types with a built-in codec
const (
	ContentTypeJSON = "application/json"
	ContentTypeCBOR = "application/cbor"
	ContentTypeYAML = "application/yaml"
)

// ErrUnsupportedContentType is returned for content types with no codec
var ErrUnsupportedContentType = errors.New("unsupported content type")

// Codec converts between Go values and message bodies of one content type
type Codec interface {
	ContentType() string
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type jsonCodec struct{}

func (jsonCodec) ContentType() string                        { return ContentTypeJSON }
func (jsonCodec) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

type cborCodec struct{}

func (cborCodec) ContentType() string                        { return ContentTypeCBOR }
func (cborCodec) Marshal(v interface{}) ([]byte, error)      { return cbor.Marshal(v) }
func (cborCodec) Unmarshal(data []byte, v interface{}) error { return cbor.Unmarshal(data, v) }

type yamlCodec struct{}

func (yamlCodec) ContentType() string                        { return ContentTypeYAML }
func (yamlCodec) Marshal(v interface{}) ([]byte, error)      { return yaml.Marshal(v) }
func (yamlCodec) Unmarshal(data []byte, v interface{}) error { return yaml.Unmarshal(data, v) }

// JSON, CBOR and YAML return the built-in codecs
func JSON() Codec { return jsonCodec{} }
func CBOR() Codec { return cborCodec{} }
func YAML() Codec { return yamlCodec{} }

// Registry maps content types to codecs
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// DefaultRegistry returns a registry with the JSON, CBOR and YAML codecs.
// YAML is also registered under the legacy x-yaml and text/yaml names.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(JSON())
	r.Register(CBOR())
	r.Register(YAML())
	r.RegisterAs("application/x-yaml", YAML())
	r.RegisterAs("text/yaml", YAML())
	return r
}

// Register adds a codec under its own content type
func (r *Registry) Register(codec Codec) {
	r.RegisterAs(codec.ContentType(), codec)
}

// RegisterAs adds a codec under an alternative content type
func (r *Registry) RegisterAs(contentType string, codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[normalize(contentType)] = codec
}

// Lookup finds the codec for a content-type property. Parameters such as
// charset are ignored.
func (r *Registry) Lookup(contentType string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if codec, ok := r.codecs[normalize(contentType)]; ok {
		return codec, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
}

// ContentTypes lists the registered content types in sorted order
func (r *Registry) ContentTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.codecs))
	for ct := range r.codecs {
		types = append(types, ct)
	}
	sort.Strings(types)
	return types
}

// Publishing encodes v into a message body and sets the content-type
// property to match
func (r *Registry) Publishing(contentType string, v interface{}) (client.Publishing, error) {
	codec, err := r.Lookup(contentType)
	if err != nil {
		return client.Publishing{}, err
	}
	body, err := codec.Marshal(v)
	if err != nil {
		return client.Publishing{}, fmt.Errorf("encode %s body: %w", codec.ContentType(), err)
	}
	return client.Publishing{
		Properties: protocol.Properties{ContentType: contentType},
		Body:       body,
	}, nil
}

// Decode unmarshals a message body into v using its content-type property
func (r *Registry) Decode(msg *protocol.Message, v interface{}) error {
	codec, err := r.Lookup(msg.Properties.ContentType)
	if err != nil {
		return err
	}
	if err := codec.Unmarshal(msg.Body, v); err != nil {
		return fmt.Errorf("decode %s body: %w", codec.ContentType(), err)
	}
	return nil
}

func normalize(contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
