package errors

import (
	"errors"
	"fmt"
)

// AMQPError represents a general AMQP error
type AMQPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Method  string `json:"method,omitempty"`
	Cause   error  `json:"cause,omitempty"`
}

func (e *AMQPError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("AMQP Error %d in %s: %s", e.Code, e.Method, e.Message)
	}
	return fmt.Sprintf("AMQP Error %d: %s", e.Code, e.Message)
}

func (e *AMQPError) Unwrap() error {
	return e.Cause
}

// AMQP reply codes (AMQP 0.9.1 specification, section 1.2)
const (
	ReplySuccess = 200

	// Soft errors, close the channel
	ContentTooLarge    = 311
	NoRoute            = 312
	NoConsumers        = 313
	AccessRefused      = 403
	NotFound           = 404
	ResourceLocked     = 405
	PreconditionFailed = 406

	// Hard errors, close the connection
	ConnectionForced = 320
	InvalidPath      = 402
	FrameError       = 501
	SyntaxError      = 502
	CommandInvalid   = 503
	ChannelErrorCode = 504
	UnexpectedFrame  = 505
	ResourceError    = 506
	NotAllowed       = 530
	NotImplemented   = 540
	InternalError    = 541
)

// IsHardError reports whether the reply code closes the whole connection
func IsHardError(code int) bool {
	switch code {
	case ConnectionForced, InvalidPath, FrameError, SyntaxError, CommandInvalid,
		ChannelErrorCode, UnexpectedFrame, ResourceError, NotAllowed, NotImplemented, InternalError:
		return true
	}
	return false
}

// Connection Errors

// ConnectionError is raised when the broker closes the connection with connection.close
type ConnectionError struct {
	AMQPError
	ConnectionID string `json:"connection_id,omitempty"`
	ClassID      uint16 `json:"class_id,omitempty"`
	MethodID     uint16 `json:"method_id,omitempty"`
}

func NewConnectionError(code int, message, connectionID string) *ConnectionError {
	return &ConnectionError{
		AMQPError: AMQPError{
			Code:    code,
			Message: message,
		},
		ConnectionID: connectionID,
	}
}

func NewConnectionForced(connectionID, reason string) *ConnectionError {
	return NewConnectionError(ConnectionForced, fmt.Sprintf("Connection forced closed: %s", reason), connectionID)
}

func NewAccessRefused(connectionID, reason string) *ConnectionError {
	return NewConnectionError(AccessRefused, fmt.Sprintf("Access refused: %s", reason), connectionID)
}

func (e *ConnectionError) As(target interface{}) bool {
	if amqpErr, ok := target.(**AMQPError); ok {
		*amqpErr = &e.AMQPError
		return true
	}
	return false
}

// Channel Errors

// ChannelError is raised when the broker closes a channel with channel.close
type ChannelError struct {
	AMQPError
	ConnectionID string `json:"connection_id,omitempty"`
	ChannelID    uint16 `json:"channel_id"`
	ClassID      uint16 `json:"class_id,omitempty"`
	MethodID     uint16 `json:"method_id,omitempty"`
}

func NewChannelError(code int, message, connectionID string, channelID uint16) *ChannelError {
	return &ChannelError{
		AMQPError: AMQPError{
			Code:    code,
			Message: message,
		},
		ConnectionID: connectionID,
		ChannelID:    channelID,
	}
}

func NewChannelClosed(connectionID string, channelID uint16) *ChannelError {
	return NewChannelError(ChannelErrorCode, fmt.Sprintf("Channel %d is closed", channelID), connectionID, channelID)
}

func NewChannelLimitReached(connectionID string, max uint16) *ChannelError {
	return NewChannelError(ResourceError, fmt.Sprintf("No free channel ids (channel-max %d)", max), connectionID, 0)
}

func (e *ChannelError) As(target interface{}) bool {
	if amqpErr, ok := target.(**AMQPError); ok {
		*amqpErr = &e.AMQPError
		return true
	}
	return false
}

// Protocol Errors

// ProtocolError is a fatal protocol violation. The connection must be torn down.
type ProtocolError struct {
	AMQPError
	FrameType byte   `json:"frame_type,omitempty"`
	ClassID   uint16 `json:"class_id,omitempty"`
	MethodID  uint16 `json:"method_id,omitempty"`
}

func NewProtocolError(code int, message string, frameType byte, classID, methodID uint16) *ProtocolError {
	return &ProtocolError{
		AMQPError: AMQPError{
			Code:    code,
			Message: message,
		},
		FrameType: frameType,
		ClassID:   classID,
		MethodID:  methodID,
	}
}

func NewFrameError(message string, frameType byte) *ProtocolError {
	return NewProtocolError(FrameError, fmt.Sprintf("Frame error: %s", message), frameType, 0, 0)
}

func NewInvalidFrameType(frameType byte) *ProtocolError {
	return NewProtocolError(FrameError, fmt.Sprintf("Invalid frame type %d", frameType), frameType, 0, 0)
}

func NewUnexpectedFrame(expected, actual byte) *ProtocolError {
	message := fmt.Sprintf("Unexpected frame: expected %d, got %d", expected, actual)
	return NewProtocolError(UnexpectedFrame, message, actual, 0, 0)
}

func NewUnexpectedMethod(state string, classID, methodID uint16) *ProtocolError {
	message := fmt.Sprintf("Unexpected method %d.%d in state %s", classID, methodID, state)
	return NewProtocolError(CommandInvalid, message, 1, classID, methodID)
}

func (e *ProtocolError) As(target interface{}) bool {
	if amqpErr, ok := target.(**AMQPError); ok {
		*amqpErr = &e.AMQPError
		return true
	}
	return false
}

// Decode Errors

// DecodeKind classifies a decode failure
type DecodeKind int

const (
	Truncated DecodeKind = iota + 1
	InvalidUTF8
	UnknownFieldType
	TruncatedTable
	TableTooDeep
	MissingFrameEnd
	FrameSizeMismatch
	FrameTooLarge
)

func (k DecodeKind) String() string {
	switch k {
	case Truncated:
		return "truncated"
	case InvalidUTF8:
		return "invalid utf-8"
	case UnknownFieldType:
		return "unknown field type"
	case TruncatedTable:
		return "truncated table"
	case TableTooDeep:
		return "table nesting too deep"
	case MissingFrameEnd:
		return "missing frame end"
	case FrameSizeMismatch:
		return "frame size mismatch"
	case FrameTooLarge:
		return "frame too large"
	default:
		return fmt.Sprintf("decode kind %d", int(k))
	}
}

// DecodeError aborts decoding of the current frame or message
type DecodeError struct {
	Kind   DecodeKind
	Field  string
	Offset int
	Cause  error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("decode error: %s", e.Kind)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %s at offset %d)", e.Field, e.Offset)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is matches another *DecodeError with the same kind, so callers can test
// errors.Is(err, &DecodeError{Kind: MissingFrameEnd}).
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}

func NewDecodeError(kind DecodeKind, field string, offset int) *DecodeError {
	return &DecodeError{Kind: kind, Field: field, Offset: offset}
}

// Encode Errors

// EncodeError is a programmer error: a value does not fit its wire width
type EncodeError struct {
	Field   string
	Message string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode error: %s: %s", e.Field, e.Message)
}

func NewEncodeError(field, message string) *EncodeError {
	return &EncodeError{Field: field, Message: message}
}

func NewShortStringTooLong(field string, length int) *EncodeError {
	return NewEncodeError(field, fmt.Sprintf("short string length %d exceeds 255", length))
}

// Transport Errors

// TransportError wraps a failure of the byte-stream collaborator
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

func NewTransportError(op string, cause error) *TransportError {
	return &TransportError{Op: op, Cause: cause}
}

// Configuration Errors

// ConfigError represents configuration-specific errors
type ConfigError struct {
	AMQPError
	Section string `json:"section"`
	Key     string `json:"key,omitempty"`
}

func NewConfigError(message, section, key string, cause error) *ConfigError {
	return &ConfigError{
		AMQPError: AMQPError{
			Code:    InternalError,
			Message: message,
			Cause:   cause,
		},
		Section: section,
		Key:     key,
	}
}

func NewConfigValidationError(section, key, reason string) *ConfigError {
	message := fmt.Sprintf("Configuration validation failed for %s.%s: %s", section, key, reason)
	return NewConfigError(message, section, key, nil)
}

// Helper functions for common error checking

// IsConnectionError checks if an error is a ConnectionError
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsChannelError checks if an error is a ChannelError
func IsChannelError(err error) bool {
	var chanErr *ChannelError
	return errors.As(err, &chanErr)
}

// IsProtocolViolation checks if an error is a fatal ProtocolError
func IsProtocolViolation(err error) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr)
}

// IsTransport checks if an error came from the transport. Transport failures
// are worth retrying; protocol violations are not.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// IsDecodeKind checks if an error is a DecodeError of the given kind
func IsDecodeKind(err error, kind DecodeKind) bool {
	var dErr *DecodeError
	if errors.As(err, &dErr) {
		return dErr.Kind == kind
	}
	return false
}

// IsFatal reports whether the connection can no longer be used. A missing
// frame end leaves the stream position unrecoverable.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if IsProtocolViolation(err) || IsTransport(err) || IsConnectionError(err) {
		return true
	}
	return IsDecodeKind(err, MissingFrameEnd) || IsDecodeKind(err, FrameSizeMismatch) ||
		IsDecodeKind(err, FrameTooLarge)
}

// IsNotFound checks if an error indicates a resource was not found
func IsNotFound(err error) bool {
	return GetErrorCode(err) == NotFound
}

// IsPreconditionFailed checks if an error indicates a precondition failed
func IsPreconditionFailed(err error) bool {
	return GetErrorCode(err) == PreconditionFailed
}

// IsAccessRefused checks if an error indicates access was refused
func IsAccessRefused(err error) bool {
	return GetErrorCode(err) == AccessRefused
}

// GetErrorCode returns the AMQP error code if the error is an AMQPError
func GetErrorCode(err error) int {
	var amqpErr *AMQPError
	if errors.As(err, &amqpErr) {
		return amqpErr.Code
	}
	return 0
}
