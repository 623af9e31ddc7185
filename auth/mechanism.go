package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoCommonMechanism is returned when the broker offers no mechanism the
// client is configured to use.
var ErrNoCommonMechanism = errors.New("no common SASL mechanism")

// Credentials identify the client to the broker
type Credentials struct {
	Username string
	Password string
}

// Mechanism represents a client-side SASL mechanism
type Mechanism interface {
	// Name returns the mechanism name (e.g., "PLAIN", "ANONYMOUS")
	Name() string

	// Response builds the initial response sent in connection.start-ok
	Response(creds Credentials) ([]byte, error)

	// Challenge answers a connection.secure challenge
	Challenge(challenge []byte, creds Credentials) ([]byte, error)
}

// Registry manages available authentication mechanisms
type Registry struct {
	mechanisms map[string]Mechanism
	preference []string
}

// NewRegistry creates a new mechanism registry
func NewRegistry() *Registry {
	return &Registry{
		mechanisms: make(map[string]Mechanism),
	}
}

// Register adds a mechanism to the registry. Mechanisms registered first
// are preferred when the broker offers several.
func (r *Registry) Register(mechanism Mechanism) {
	if _, exists := r.mechanisms[mechanism.Name()]; !exists {
		r.preference = append(r.preference, mechanism.Name())
	}
	r.mechanisms[mechanism.Name()] = mechanism
}

// Get retrieves a mechanism by name
func (r *Registry) Get(name string) (Mechanism, error) {
	mechanism, exists := r.mechanisms[name]
	if !exists {
		return nil, fmt.Errorf("unsupported authentication mechanism: %s", name)
	}
	return mechanism, nil
}

// List returns all registered mechanism names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.mechanisms))
	for name := range r.mechanisms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns a space-separated list of mechanism names for AMQP
func (r *Registry) String() string {
	return strings.Join(r.List(), " ")
}

// Select picks the mechanism to answer connection.start with. A non-empty
// preferred name must be both registered and offered by the broker; an
// empty one falls back to registration order, skipping ANONYMOUS.
func (r *Registry) Select(offered []string, preferred string) (Mechanism, error) {
	isOffered := func(name string) bool {
		for _, o := range offered {
			if o == name {
				return true
			}
		}
		return false
	}

	if preferred != "" {
		mechanism, err := r.Get(preferred)
		if err != nil {
			return nil, err
		}
		if !isOffered(preferred) {
			return nil, fmt.Errorf("%w: broker offers %q, client wants %s",
				ErrNoCommonMechanism, strings.Join(offered, " "), preferred)
		}
		return mechanism, nil
	}

	for _, name := range r.preference {
		if name == AnonymousName {
			continue
		}
		if isOffered(name) {
			return r.mechanisms[name], nil
		}
	}
	return nil, fmt.Errorf("%w: broker offers %q, client supports %s",
		ErrNoCommonMechanism, strings.Join(offered, " "), r.String())
}

// DefaultRegistry returns a registry with PLAIN, AMQPLAIN and ANONYMOUS
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(&PlainMechanism{})
	registry.Register(&AMQPlainMechanism{})
	registry.Register(&AnonymousMechanism{})
	return registry
}
