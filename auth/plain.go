package auth

import (
	"bytes"
	"fmt"
)

// PlainName is the SASL PLAIN mechanism name
const PlainName = "PLAIN"

// PlainMechanism implements SASL PLAIN authentication
type PlainMechanism struct{}

// Name returns the mechanism name
func (p *PlainMechanism) Name() string {
	return PlainName
}

// Response builds the PLAIN response: \0username\0password
// The authorization identity before the first NUL is left empty so the
// broker uses the authentication identity.
func (p *PlainMechanism) Response(creds Credentials) ([]byte, error) {
	if creds.Username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if bytes.IndexByte([]byte(creds.Username), 0) >= 0 || bytes.IndexByte([]byte(creds.Password), 0) >= 0 {
		return nil, fmt.Errorf("credentials must not contain NUL bytes")
	}

	response := make([]byte, 0, 2+len(creds.Username)+len(creds.Password))
	response = append(response, 0)
	response = append(response, creds.Username...)
	response = append(response, 0)
	response = append(response, creds.Password...)
	return response, nil
}

// Challenge resends the PLAIN response; PLAIN has no challenge step
func (p *PlainMechanism) Challenge(challenge []byte, creds Credentials) ([]byte, error) {
	return p.Response(creds)
}

// ParsePlainResponse splits a PLAIN response into its identities
func ParsePlainResponse(response []byte) (Credentials, error) {
	parts := bytes.Split(response, []byte{0})
	if len(parts) != 3 {
		return Credentials{}, fmt.Errorf("invalid PLAIN response format: expected 3 parts, got %d", len(parts))
	}
	return Credentials{Username: string(parts[1]), Password: string(parts[2])}, nil
}
