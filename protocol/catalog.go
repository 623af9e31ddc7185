package protocol

import "fmt"

type methodKey struct {
	classID  uint16
	methodID uint16
}

type methodEntry struct {
	name string
	new  func() Method
}

// methodRegistry maps class and method ids to their wire name and a constructor
var methodRegistry = map[methodKey]methodEntry{
	{ClassConnection, ConnectionStart}:    {"connection.start", func() Method { return &ConnectionStartMethod{} }},
	{ClassConnection, ConnectionStartOK}:  {"connection.start-ok", func() Method { return &ConnectionStartOKMethod{} }},
	{ClassConnection, ConnectionSecure}:   {"connection.secure", func() Method { return &ConnectionSecureMethod{} }},
	{ClassConnection, ConnectionSecureOK}: {"connection.secure-ok", func() Method { return &ConnectionSecureOKMethod{} }},
	{ClassConnection, ConnectionTune}:     {"connection.tune", func() Method { return &ConnectionTuneMethod{} }},
	{ClassConnection, ConnectionTuneOK}:   {"connection.tune-ok", func() Method { return &ConnectionTuneOKMethod{} }},
	{ClassConnection, ConnectionOpen}:     {"connection.open", func() Method { return &ConnectionOpenMethod{} }},
	{ClassConnection, ConnectionOpenOK}:   {"connection.open-ok", func() Method { return &ConnectionOpenOKMethod{} }},
	{ClassConnection, ConnectionClose}:    {"connection.close", func() Method { return &ConnectionCloseMethod{} }},
	{ClassConnection, ConnectionCloseOK}:  {"connection.close-ok", func() Method { return &ConnectionCloseOKMethod{} }},

	{ClassChannel, ChannelOpen}:    {"channel.open", func() Method { return &ChannelOpenMethod{} }},
	{ClassChannel, ChannelOpenOK}:  {"channel.open-ok", func() Method { return &ChannelOpenOKMethod{} }},
	{ClassChannel, ChannelFlow}:    {"channel.flow", func() Method { return &ChannelFlowMethod{} }},
	{ClassChannel, ChannelFlowOK}:  {"channel.flow-ok", func() Method { return &ChannelFlowOKMethod{} }},
	{ClassChannel, ChannelClose}:   {"channel.close", func() Method { return &ChannelCloseMethod{} }},
	{ClassChannel, ChannelCloseOK}: {"channel.close-ok", func() Method { return &ChannelCloseOKMethod{} }},

	{ClassExchange, ExchangeDeclare}:   {"exchange.declare", func() Method { return &ExchangeDeclareMethod{} }},
	{ClassExchange, ExchangeDeclareOK}: {"exchange.declare-ok", func() Method { return &ExchangeDeclareOKMethod{} }},
	{ClassExchange, ExchangeDelete}:    {"exchange.delete", func() Method { return &ExchangeDeleteMethod{} }},
	{ClassExchange, ExchangeDeleteOK}:  {"exchange.delete-ok", func() Method { return &ExchangeDeleteOKMethod{} }},
	{ClassExchange, ExchangeBind}:      {"exchange.bind", func() Method { return &ExchangeBindMethod{} }},
	{ClassExchange, ExchangeBindOK}:    {"exchange.bind-ok", func() Method { return &ExchangeBindOKMethod{} }},
	{ClassExchange, ExchangeUnbind}:    {"exchange.unbind", func() Method { return &ExchangeUnbindMethod{} }},
	{ClassExchange, ExchangeUnbindOK}:  {"exchange.unbind-ok", func() Method { return &ExchangeUnbindOKMethod{} }},

	{ClassQueue, QueueDeclare}:   {"queue.declare", func() Method { return &QueueDeclareMethod{} }},
	{ClassQueue, QueueDeclareOK}: {"queue.declare-ok", func() Method { return &QueueDeclareOKMethod{} }},
	{ClassQueue, QueueBind}:      {"queue.bind", func() Method { return &QueueBindMethod{} }},
	{ClassQueue, QueueBindOK}:    {"queue.bind-ok", func() Method { return &QueueBindOKMethod{} }},
	{ClassQueue, QueueUnbind}:    {"queue.unbind", func() Method { return &QueueUnbindMethod{} }},
	{ClassQueue, QueueUnbindOK}:  {"queue.unbind-ok", func() Method { return &QueueUnbindOKMethod{} }},
	{ClassQueue, QueuePurge}:     {"queue.purge", func() Method { return &QueuePurgeMethod{} }},
	{ClassQueue, QueuePurgeOK}:   {"queue.purge-ok", func() Method { return &QueuePurgeOKMethod{} }},
	{ClassQueue, QueueDelete}:    {"queue.delete", func() Method { return &QueueDeleteMethod{} }},
	{ClassQueue, QueueDeleteOK}:  {"queue.delete-ok", func() Method { return &QueueDeleteOKMethod{} }},

	{ClassBasic, BasicQos}:          {"basic.qos", func() Method { return &BasicQosMethod{} }},
	{ClassBasic, BasicQosOK}:        {"basic.qos-ok", func() Method { return &BasicQosOKMethod{} }},
	{ClassBasic, BasicConsume}:      {"basic.consume", func() Method { return &BasicConsumeMethod{} }},
	{ClassBasic, BasicConsumeOK}:    {"basic.consume-ok", func() Method { return &BasicConsumeOKMethod{} }},
	{ClassBasic, BasicCancel}:       {"basic.cancel", func() Method { return &BasicCancelMethod{} }},
	{ClassBasic, BasicCancelOK}:     {"basic.cancel-ok", func() Method { return &BasicCancelOKMethod{} }},
	{ClassBasic, BasicPublish}:      {"basic.publish", func() Method { return &BasicPublishMethod{} }},
	{ClassBasic, BasicReturn}:       {"basic.return", func() Method { return &BasicReturnMethod{} }},
	{ClassBasic, BasicDeliver}:      {"basic.deliver", func() Method { return &BasicDeliverMethod{} }},
	{ClassBasic, BasicGet}:          {"basic.get", func() Method { return &BasicGetMethod{} }},
	{ClassBasic, BasicGetOK}:        {"basic.get-ok", func() Method { return &BasicGetOKMethod{} }},
	{ClassBasic, BasicGetEmpty}:     {"basic.get-empty", func() Method { return &BasicGetEmptyMethod{} }},
	{ClassBasic, BasicAck}:          {"basic.ack", func() Method { return &BasicAckMethod{} }},
	{ClassBasic, BasicReject}:       {"basic.reject", func() Method { return &BasicRejectMethod{} }},
	{ClassBasic, BasicRecoverAsync}: {"basic.recover-async", func() Method { return &BasicRecoverAsyncMethod{} }},
	{ClassBasic, BasicRecover}:      {"basic.recover", func() Method { return &BasicRecoverMethod{} }},
	{ClassBasic, BasicRecoverOK}:    {"basic.recover-ok", func() Method { return &BasicRecoverOKMethod{} }},
	{ClassBasic, BasicNack}:         {"basic.nack", func() Method { return &BasicNackMethod{} }},

	{ClassTx, TxSelect}:     {"tx.select", func() Method { return &TxSelectMethod{} }},
	{ClassTx, TxSelectOK}:   {"tx.select-ok", func() Method { return &TxSelectOKMethod{} }},
	{ClassTx, TxCommit}:     {"tx.commit", func() Method { return &TxCommitMethod{} }},
	{ClassTx, TxCommitOK}:   {"tx.commit-ok", func() Method { return &TxCommitOKMethod{} }},
	{ClassTx, TxRollback}:   {"tx.rollback", func() Method { return &TxRollbackMethod{} }},
	{ClassTx, TxRollbackOK}: {"tx.rollback-ok", func() Method { return &TxRollbackOKMethod{} }},
}

// NewMethod returns an empty method for the ids, or nil if they are unknown
func NewMethod(classID, methodID uint16) Method {
	entry, ok := methodRegistry[methodKey{classID, methodID}]
	if !ok {
		return nil
	}
	return entry.new()
}

// MethodName returns the dotted wire name, e.g. "basic.deliver"
func MethodName(classID, methodID uint16) string {
	if entry, ok := methodRegistry[methodKey{classID, methodID}]; ok {
		return entry.name
	}
	return fmt.Sprintf("%d.%d", classID, methodID)
}

// NameOf returns the wire name of a method value
func NameOf(m Method) string {
	return MethodName(m.ClassID(), m.MethodID())
}
