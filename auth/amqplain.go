package auth

import (
	"fmt"

	"github.com/maxpert/amqp-go-client/protocol"
)

// AMQPlainName is RabbitMQ's AMQPLAIN mechanism name
const AMQPlainName = "AMQPLAIN"

// AMQPlainMechanism sends the credentials as field-table entries
type AMQPlainMechanism struct{}

// Name returns the mechanism name
func (a *AMQPlainMechanism) Name() string {
	return AMQPlainName
}

// Response encodes LOGIN and PASSWORD as table entries without the table's
// own length prefix.
func (a *AMQPlainMechanism) Response(creds Credentials) ([]byte, error) {
	if creds.Username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	encoded, err := protocol.EncodeTable(protocol.Table{
		{Key: "LOGIN", Value: creds.Username},
		{Key: "PASSWORD", Value: creds.Password},
	})
	if err != nil {
		return nil, err
	}
	return encoded[4:], nil
}

// Challenge resends the response
func (a *AMQPlainMechanism) Challenge(challenge []byte, creds Credentials) ([]byte, error) {
	return a.Response(creds)
}
