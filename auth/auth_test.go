package auth

import (
	"bytes"
	"errors"
	"testing"

	"github.com/maxpert/amqp-go-client/protocol"
)

func TestPlainMechanism(t *testing.T) {
	plain := &PlainMechanism{}

	if plain.Name() != "PLAIN" {
		t.Errorf("Expected mechanism name 'PLAIN', got '%s'", plain.Name())
	}

	// PLAIN format: \0username\0password
	response, err := plain.Response(Credentials{Username: "testuser", Password: "testpass"})
	if err != nil {
		t.Fatalf("Expected response, got error: %v", err)
	}
	expected := []byte{0, 't', 'e', 's', 't', 'u', 's', 'e', 'r', 0, 't', 'e', 's', 't', 'p', 'a', 's', 's'}
	if !bytes.Equal(response, expected) {
		t.Errorf("Expected %q, got %q", expected, response)
	}

	creds, err := ParsePlainResponse(response)
	if err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if creds.Username != "testuser" || creds.Password != "testpass" {
		t.Errorf("Unexpected credentials %+v", creds)
	}

	// Empty username
	if _, err := plain.Response(Credentials{Password: "pass"}); err == nil {
		t.Error("Expected error for empty username")
	}

	// Embedded NUL would shift the identities
	if _, err := plain.Response(Credentials{Username: "us\x00er", Password: "pass"}); err == nil {
		t.Error("Expected error for NUL in username")
	}

	// Empty password is allowed on the wire
	response, err = plain.Response(Credentials{Username: "user"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.Equal(response, []byte("\x00user\x00")) {
		t.Errorf("Unexpected response %q", response)
	}

	again, err := plain.Challenge([]byte("ignored"), Credentials{Username: "user"})
	if err != nil || !bytes.Equal(again, response) {
		t.Errorf("Challenge should resend the response, got %q, %v", again, err)
	}
}

func TestParsePlainResponseInvalid(t *testing.T) {
	if _, err := ParsePlainResponse([]byte("nonuls")); err == nil {
		t.Error("Expected error for response without NUL separators")
	}
}

func TestAnonymousMechanism(t *testing.T) {
	anon := &AnonymousMechanism{Trace: "tester"}

	if anon.Name() != "ANONYMOUS" {
		t.Errorf("Expected mechanism name 'ANONYMOUS', got '%s'", anon.Name())
	}

	response, err := anon.Response(Credentials{Username: "ignored"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(response) != "tester" {
		t.Errorf("Expected trace response, got %q", response)
	}
}

func TestAMQPlainMechanism(t *testing.T) {
	mech := &AMQPlainMechanism{}
	response, err := mech.Response(Credentials{Username: "guest", Password: "secret"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Re-attach a length prefix so the table decoder can read it back
	framed := append([]byte{0, 0, 0, byte(len(response))}, response...)
	table, _, err := protocol.DecodeTable(framed, 0)
	if err != nil {
		t.Fatalf("Response is not a table body: %v", err)
	}

	login, _ := table.Get("LOGIN")
	password, _ := table.Get("PASSWORD")
	if login != "guest" || password != "secret" {
		t.Errorf("Unexpected table %v", table)
	}
}

func TestRegistry(t *testing.T) {
	registry := DefaultRegistry()

	mechanisms := registry.List()
	if len(mechanisms) != 3 {
		t.Errorf("Expected 3 mechanisms, got %d", len(mechanisms))
	}

	if registry.String() != "AMQPLAIN ANONYMOUS PLAIN" {
		t.Errorf("Unexpected mechanism list %q", registry.String())
	}

	plain, err := registry.Get("PLAIN")
	if err != nil {
		t.Errorf("Expected to get PLAIN mechanism, got error: %v", err)
	}
	if plain.Name() != "PLAIN" {
		t.Errorf("Expected PLAIN mechanism, got %s", plain.Name())
	}

	if _, err := registry.Get("UNKNOWN"); err == nil {
		t.Error("Expected error for unknown mechanism")
	}
}

func TestRegistrySelect(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name      string
		offered   []string
		preferred string
		want      string
		wantErr   bool
	}{
		{"default prefers PLAIN", []string{"AMQPLAIN", "PLAIN"}, "", "PLAIN", false},
		{"falls back to AMQPLAIN", []string{"AMQPLAIN"}, "", "AMQPLAIN", false},
		{"anonymous only when asked", []string{"ANONYMOUS"}, "", "", true},
		{"explicit anonymous", []string{"ANONYMOUS", "PLAIN"}, "ANONYMOUS", "ANONYMOUS", false},
		{"preferred not offered", []string{"PLAIN"}, "AMQPLAIN", "", true},
		{"preferred unknown", []string{"PLAIN"}, "SCRAM-SHA-256", "", true},
		{"nothing in common", []string{"EXTERNAL"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mech, err := registry.Select(tt.offered, tt.preferred)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %s", mech.Name())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mech.Name() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, mech.Name())
			}
		})
	}

	_, err := registry.Select([]string{"EXTERNAL"}, "")
	if !errors.Is(err, ErrNoCommonMechanism) {
		t.Errorf("Expected ErrNoCommonMechanism, got %v", err)
	}
}
