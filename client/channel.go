package client

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
)

// QueueDefinition describes a queue for Queue.Declare
type QueueDefinition struct {
	Name       string
	Passive    bool
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	NoWait     bool
	Arguments  protocol.Table
}

// ExchangeDefinition describes an exchange for Exchange.Declare
type ExchangeDefinition struct {
	Name       string
	Type       protocol.ExchangeType
	Passive    bool
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Arguments  protocol.Table
}

// QueueInfo is the broker's answer to Queue.Declare
type QueueInfo struct {
	Name      string
	Messages  uint32
	Consumers uint32
}

// Publishing is the content of a Basic.Publish
type Publishing struct {
	protocol.Properties
	Body []byte
}

type rpcReply struct {
	method  protocol.Method
	message *protocol.Message
}

// rpcWaiter is the one outstanding synchronous request of a channel
type rpcWaiter struct {
	expect []protocol.Method
	reply  chan rpcReply
}

func (w *rpcWaiter) accepts(m protocol.Method) bool {
	for _, e := range w.expect {
		if sameMethod(e, m) {
			return true
		}
	}
	return false
}

// Channel is a multiplexed session on a connection. Synchronous requests
// on one channel are serialized; different channels proceed independently.
type Channel struct {
	id     uint16
	conn   *Connection
	logger *zap.Logger

	state     atomic.Int32
	assembler *protocol.Assembler
	tracker   *deliveryTracker

	// rpc holds a token for the whole of a synchronous request
	rpc     chan struct{}
	mu      sync.Mutex
	waiter  *rpcWaiter
	returns []chan *protocol.Message
	flow    chan struct{} // non-nil while the broker has paused us

	consumersMu sync.RWMutex
	consumers   map[string]*consumer
	consumerSeq atomic.Uint64

	closeOnce sync.Once
	err       error
	done      chan struct{}
}

func newChannel(conn *Connection, id uint16) *Channel {
	return &Channel{
		id:        id,
		conn:      conn,
		logger:    conn.logger.With(zap.String("connection_id", conn.id), zap.Uint16("channel", id)),
		assembler: protocol.NewAssembler(id),
		tracker:   newDeliveryTracker(),
		consumers: make(map[string]*consumer),
		rpc:       make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// ID returns the channel number
func (ch *Channel) ID() uint16 {
	return ch.id
}

// State returns the current channel state
func (ch *Channel) State() ChannelState {
	return ChannelState(ch.state.Load())
}

// Done is closed once the channel is closed by either side
func (ch *Channel) Done() <-chan struct{} {
	return ch.done
}

// Err returns why the channel closed
func (ch *Channel) Err() error {
	select {
	case <-ch.done:
		return ch.err
	default:
		return nil
	}
}

func (ch *Channel) setState(s ChannelState) {
	ch.state.Store(int32(s))
}

func (ch *Channel) open(ctx context.Context) error {
	ch.setState(ChannelStateAwaitingOpenOK)
	if _, err := ch.call(ctx, &protocol.ChannelOpenMethod{}, &protocol.ChannelOpenOKMethod{}); err != nil {
		return err
	}
	ch.setState(ChannelStateReady)
	ch.logger.Debug("Channel opened")
	return nil
}

// Close performs the Channel.Close exchange. A request already in flight
// gets its reply before Channel.Close is sent.
func (ch *Channel) Close(ctx context.Context) error {
	if err := ch.acquireRPC(ctx); err != nil {
		return err
	}
	if !ch.state.CompareAndSwap(int32(ChannelStateReady), int32(ChannelStateAwaitingCloseOK)) {
		ch.releaseRPC()
		return ch.Err()
	}

	_, err := ch.roundTrip(ctx, &protocol.ChannelCloseMethod{
		ReplyCode: amqperrors.ReplySuccess,
		ReplyText: "closed by client",
	}, &protocol.ChannelCloseOKMethod{})

	ch.conn.removeChannel(ch.id)
	ch.shutdown(amqperrors.NewChannelClosed(ch.conn.id, ch.id))
	return err
}

// shutdown releases everything waiting on the channel. The first reason wins.
func (ch *Channel) shutdown(reason error) {
	ch.closeOnce.Do(func() {
		prev := ch.State()
		ch.setState(ChannelStateClosed)
		ch.err = reason

		ch.mu.Lock()
		ch.waiter = nil
		if ch.flow != nil {
			close(ch.flow)
			ch.flow = nil
		}
		ch.mu.Unlock()

		ch.consumersMu.Lock()
		consumers := ch.consumers
		ch.consumers = make(map[string]*consumer)
		ch.consumersMu.Unlock()
		for _, c := range consumers {
			c.stop()
		}

		ch.assembler.Reset()
		close(ch.done)
		if prev == ChannelStateReady || prev == ChannelStateAwaitingCloseOK {
			ch.conn.metrics.RecordChannelClosed()
		}
	})
}

// acquireRPC waits for the channel's single request slot
func (ch *Channel) acquireRPC(ctx context.Context) error {
	select {
	case ch.rpc <- struct{}{}:
		return nil
	case <-ch.done:
		return ch.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ch *Channel) releaseRPC() {
	<-ch.rpc
}

// call sends a synchronous request and waits for one of the expected
// replies. Cancelling ctx abandons the wait; the channel stays unusable for
// further requests until the broker's reply arrives.
func (ch *Channel) call(ctx context.Context, req protocol.Method, expect ...protocol.Method) (rpcReply, error) {
	if err := ch.acquireRPC(ctx); err != nil {
		return rpcReply{}, err
	}
	return ch.roundTrip(ctx, req, expect...)
}

// roundTrip runs one request while holding the request slot and releases it
// once the reply is in or the channel is gone.
func (ch *Channel) roundTrip(ctx context.Context, req protocol.Method, expect ...protocol.Method) (rpcReply, error) {
	w := &rpcWaiter{expect: expect, reply: make(chan rpcReply, 1)}
	ch.mu.Lock()
	select {
	case <-ch.done:
		ch.mu.Unlock()
		ch.releaseRPC()
		return rpcReply{}, ch.err
	default:
	}
	ch.waiter = w
	ch.mu.Unlock()

	if err := ch.conn.sendMethod(ctx, ch.id, req); err != nil {
		ch.mu.Lock()
		ch.waiter = nil
		ch.mu.Unlock()
		ch.releaseRPC()
		return rpcReply{}, err
	}

	select {
	case r := <-w.reply:
		ch.releaseRPC()
		return r, nil
	case <-ch.done:
		ch.releaseRPC()
		return rpcReply{}, ch.err
	case <-ctx.Done():
		go func() {
			select {
			case <-w.reply:
			case <-ch.done:
			}
			ch.releaseRPC()
		}()
		return rpcReply{}, ctx.Err()
	}
}

// cast sends a request that has no reply
func (ch *Channel) cast(ctx context.Context, req protocol.Method) error {
	select {
	case <-ch.done:
		return ch.err
	default:
	}
	return ch.conn.sendMethod(ctx, ch.id, req)
}

// reply hands a synchronous reply to the waiting caller. A reply nobody
// asked for is a protocol violation.
func (ch *Channel) reply(m protocol.Method, msg *protocol.Message) error {
	ch.mu.Lock()
	w := ch.waiter
	if w == nil || !w.accepts(m) {
		ch.mu.Unlock()
		return amqperrors.NewUnexpectedMethod(ch.State().String(), m.ClassID(), m.MethodID())
	}
	ch.waiter = nil
	ch.mu.Unlock()

	w.reply <- rpcReply{method: m, message: msg}
	return nil
}

// handleFrame runs on the connection reader
func (ch *Channel) handleFrame(f *protocol.Frame) error {
	closing := ch.State() == ChannelStateAwaitingCloseOK

	if f.Type != protocol.FrameMethod {
		if closing {
			return nil
		}
		msg, err := ch.assembler.HandleFrame(f)
		if err != nil || msg == nil {
			return err
		}
		return ch.deliver(msg)
	}

	m, err := protocol.DecodeMethod(f.Payload)
	if err != nil {
		return err
	}

	switch m := m.(type) {
	case *protocol.ChannelCloseMethod:
		return ch.brokerClosed(m)
	case *protocol.ChannelCloseOKMethod:
		return ch.reply(m, nil)
	}

	// Everything but the close handshake is discarded while closing
	if closing {
		return nil
	}

	if protocol.HasContent(m) {
		return ch.assembler.Start(m)
	}
	if ch.assembler.InProgress() {
		return amqperrors.NewUnexpectedMethod("awaiting content", m.ClassID(), m.MethodID())
	}

	switch m := m.(type) {
	case *protocol.ChannelFlowMethod:
		ch.setFlow(m.Active)
		return ch.conn.sendMethod(context.Background(), ch.id, &protocol.ChannelFlowOKMethod{Active: m.Active})

	case *protocol.BasicCancelMethod:
		ch.logger.Info("Consumer cancelled by broker", zap.String("consumer_tag", m.ConsumerTag))
		ch.removeConsumer(m.ConsumerTag)
		if m.NoWait {
			return nil
		}
		return ch.conn.sendMethod(context.Background(), ch.id, &protocol.BasicCancelOKMethod{ConsumerTag: m.ConsumerTag})
	}

	if protocol.IsSynchronousReply(m) {
		return ch.reply(m, nil)
	}
	return amqperrors.NewUnexpectedMethod(ch.State().String(), m.ClassID(), m.MethodID())
}

// brokerClosed answers a Channel.Close from the broker
func (ch *Channel) brokerClosed(m *protocol.ChannelCloseMethod) error {
	err := amqperrors.NewChannelError(int(m.ReplyCode), m.ReplyText, ch.conn.id, ch.id)
	err.ClassID = m.FailedClassID
	err.MethodID = m.FailedMethodID

	ch.logger.Warn("Channel closed by broker",
		zap.Uint16("reply_code", m.ReplyCode),
		zap.String("reply_text", m.ReplyText),
		zap.String("method", protocol.MethodName(m.FailedClassID, m.FailedMethodID)))

	ch.conn.removeChannel(ch.id)
	ch.shutdown(err)
	return ch.conn.sendMethod(context.Background(), ch.id, &protocol.ChannelCloseOKMethod{})
}

// deliver routes an assembled message
func (ch *Channel) deliver(msg *protocol.Message) error {
	switch msg.Method.(type) {
	case *protocol.BasicDeliverMethod:
		ch.consumersMu.RLock()
		c := ch.consumers[msg.ConsumerTag]
		ch.consumersMu.RUnlock()
		if c == nil {
			ch.logger.Warn("Delivery for unknown consumer",
				zap.String("consumer_tag", msg.ConsumerTag),
				zap.Uint64("delivery_tag", msg.DeliveryTag))
			return nil
		}
		if !ch.tracker.observe(msg.DeliveryTag, !c.noAck) {
			ch.logger.Warn("Dropping repeated delivery tag", zap.Uint64("delivery_tag", msg.DeliveryTag))
			return nil
		}
		ch.conn.metrics.RecordMessageDelivered(len(msg.Body))
		c.push(&Delivery{Message: *msg, channel: ch})
		return nil

	case *protocol.BasicGetOKMethod:
		return ch.reply(msg.Method, msg)

	case *protocol.BasicReturnMethod:
		ch.conn.metrics.RecordMessageReturned()
		ch.mu.Lock()
		listeners := ch.returns
		ch.mu.Unlock()
		for _, l := range listeners {
			select {
			case l <- msg:
			default:
				ch.logger.Warn("Return listener is full, dropping returned message",
					zap.Uint16("reply_code", msg.ReplyCode))
			}
		}
		return nil
	}
	return nil
}

// NotifyReturn registers a listener for messages the broker could not
// route. Sends do not block; a full listener misses returns.
func (ch *Channel) NotifyReturn(c chan *protocol.Message) chan *protocol.Message {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.returns = append(ch.returns, c)
	return c
}

func (ch *Channel) setFlow(active bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if active && ch.flow != nil {
		close(ch.flow)
		ch.flow = nil
	} else if !active && ch.flow == nil {
		ch.flow = make(chan struct{})
	}
	ch.logger.Info("Channel flow changed", zap.Bool("active", active))
}

// FlowActive reports whether the broker currently accepts publishes
func (ch *Channel) FlowActive() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.flow == nil
}

// Flow asks the broker to pause or resume deliveries on this channel
func (ch *Channel) Flow(ctx context.Context, active bool) (bool, error) {
	r, err := ch.call(ctx, &protocol.ChannelFlowMethod{Active: active}, &protocol.ChannelFlowOKMethod{})
	if err != nil {
		return false, err
	}
	return r.method.(*protocol.ChannelFlowOKMethod).Active, nil
}

// Exchange class

// DeclareExchange declares an exchange
func (ch *Channel) DeclareExchange(ctx context.Context, def ExchangeDefinition) error {
	kind := def.Type
	if kind == "" {
		kind = protocol.ExchangeDirect
	}
	req := &protocol.ExchangeDeclareMethod{
		Exchange:   def.Name,
		Type:       string(kind),
		Passive:    def.Passive,
		Durable:    def.Durable,
		AutoDelete: def.AutoDelete,
		Internal:   def.Internal,
		NoWait:     def.NoWait,
		Arguments:  def.Arguments,
	}
	if def.NoWait {
		return ch.cast(ctx, req)
	}
	_, err := ch.call(ctx, req, &protocol.ExchangeDeclareOKMethod{})
	return err
}

// DeleteExchange deletes an exchange
func (ch *Channel) DeleteExchange(ctx context.Context, name string, ifUnused bool) error {
	_, err := ch.call(ctx, &protocol.ExchangeDeleteMethod{Exchange: name, IfUnused: ifUnused},
		&protocol.ExchangeDeleteOKMethod{})
	return err
}

// BindExchange routes messages from source to destination
func (ch *Channel) BindExchange(ctx context.Context, destination, source, routingKey string, args protocol.Table) error {
	_, err := ch.call(ctx, &protocol.ExchangeBindMethod{
		Destination: destination,
		Source:      source,
		RoutingKey:  routingKey,
		Arguments:   args,
	}, &protocol.ExchangeBindOKMethod{})
	return err
}

// UnbindExchange removes an exchange-to-exchange binding
func (ch *Channel) UnbindExchange(ctx context.Context, destination, source, routingKey string, args protocol.Table) error {
	_, err := ch.call(ctx, &protocol.ExchangeUnbindMethod{
		Destination: destination,
		Source:      source,
		RoutingKey:  routingKey,
		Arguments:   args,
	}, &protocol.ExchangeUnbindOKMethod{})
	return err
}

// Queue class

// DeclareQueue declares a queue. An empty name lets the broker pick one,
// returned in QueueInfo. With NoWait the returned info only echoes the name.
func (ch *Channel) DeclareQueue(ctx context.Context, def QueueDefinition) (QueueInfo, error) {
	req := &protocol.QueueDeclareMethod{
		Queue:      def.Name,
		Passive:    def.Passive,
		Durable:    def.Durable,
		Exclusive:  def.Exclusive,
		AutoDelete: def.AutoDelete,
		NoWait:     def.NoWait,
		Arguments:  def.Arguments,
	}
	if def.NoWait {
		return QueueInfo{Name: def.Name}, ch.cast(ctx, req)
	}

	r, err := ch.call(ctx, req, &protocol.QueueDeclareOKMethod{})
	if err != nil {
		return QueueInfo{}, err
	}
	ok := r.method.(*protocol.QueueDeclareOKMethod)
	return QueueInfo{Name: ok.Queue, Messages: ok.MessageCount, Consumers: ok.ConsumerCount}, nil
}

// BindQueue binds a queue to an exchange
func (ch *Channel) BindQueue(ctx context.Context, queue, exchange, routingKey string, args protocol.Table) error {
	_, err := ch.call(ctx, &protocol.QueueBindMethod{
		Queue:      queue,
		Exchange:   exchange,
		RoutingKey: routingKey,
		Arguments:  args,
	}, &protocol.QueueBindOKMethod{})
	return err
}

// UnbindQueue removes a queue binding
func (ch *Channel) UnbindQueue(ctx context.Context, queue, exchange, routingKey string, args protocol.Table) error {
	_, err := ch.call(ctx, &protocol.QueueUnbindMethod{
		Queue:      queue,
		Exchange:   exchange,
		RoutingKey: routingKey,
		Arguments:  args,
	}, &protocol.QueueUnbindOKMethod{})
	return err
}

// PurgeQueue drops all ready messages and returns how many were removed
func (ch *Channel) PurgeQueue(ctx context.Context, queue string) (uint32, error) {
	r, err := ch.call(ctx, &protocol.QueuePurgeMethod{Queue: queue}, &protocol.QueuePurgeOKMethod{})
	if err != nil {
		return 0, err
	}
	return r.method.(*protocol.QueuePurgeOKMethod).MessageCount, nil
}

// DeleteQueue deletes a queue and returns the number of messages it held
func (ch *Channel) DeleteQueue(ctx context.Context, queue string, ifUnused, ifEmpty bool) (uint32, error) {
	r, err := ch.call(ctx, &protocol.QueueDeleteMethod{Queue: queue, IfUnused: ifUnused, IfEmpty: ifEmpty},
		&protocol.QueueDeleteOKMethod{})
	if err != nil {
		return 0, err
	}
	return r.method.(*protocol.QueueDeleteOKMethod).MessageCount, nil
}

// Basic class

// Qos limits unacknowledged deliveries
func (ch *Channel) Qos(ctx context.Context, prefetchCount uint16, prefetchSize uint32, global bool) error {
	_, err := ch.call(ctx, &protocol.BasicQosMethod{
		PrefetchSize:  prefetchSize,
		PrefetchCount: prefetchCount,
		Global:        global,
	}, &protocol.BasicQosOKMethod{})
	return err
}

// Publish sends a message. The method, header and body frames are queued
// as one unit, with the body split to fit the negotiated frame-max. While
// the broker has paused the channel with Channel.Flow, Publish waits.
func (ch *Channel) Publish(ctx context.Context, exchange, routingKey string, mandatory, immediate bool, msg Publishing) error {
	ch.mu.Lock()
	paused := ch.flow
	ch.mu.Unlock()
	if paused != nil {
		select {
		case <-paused:
		case <-ch.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case <-ch.done:
		return ch.err
	default:
	}

	frames, err := protocol.BuildPublishFrames(ch.id, &protocol.BasicPublishMethod{
		Exchange:   exchange,
		RoutingKey: routingKey,
		Mandatory:  mandatory,
		Immediate:  immediate,
	}, msg.Properties, msg.Body, ch.conn.tuning.FrameMax)
	if err != nil {
		return err
	}

	if err := ch.conn.send(ctx, frames...); err != nil {
		return err
	}
	ch.conn.metrics.RecordMessagePublished(len(msg.Body))
	return nil
}

// Consume starts a consumer and returns its tag. The handler runs on a
// goroutine owned by the consumer, once per delivery tag.
func (ch *Channel) Consume(ctx context.Context, queue string, handler Handler, opts ConsumeOptions) (string, error) {
	tag := opts.ConsumerTag
	if tag == "" {
		tag = fmt.Sprintf("ctag-%s.%d-%d", ch.conn.id, ch.id, ch.consumerSeq.Add(1))
	}

	c := newConsumer(tag, queue, opts.NoAck, handler, ch.conn.config.Tuning.DeliveryRingSize, ch.logger)

	ch.consumersMu.Lock()
	if _, exists := ch.consumers[tag]; exists {
		ch.consumersMu.Unlock()
		c.stop()
		return "", amqperrors.NewChannelError(amqperrors.NotAllowed,
			fmt.Sprintf("consumer tag %q already in use", tag), ch.conn.id, ch.id)
	}
	ch.consumers[tag] = c
	ch.consumersMu.Unlock()

	_, err := ch.call(ctx, &protocol.BasicConsumeMethod{
		Queue:       queue,
		ConsumerTag: tag,
		NoLocal:     opts.NoLocal,
		NoAck:       opts.NoAck,
		Exclusive:   opts.Exclusive,
		Arguments:   opts.Arguments,
	}, &protocol.BasicConsumeOKMethod{})
	if err != nil {
		ch.removeConsumer(tag)
		return "", err
	}

	ch.logger.Info("Consumer started", zap.String("queue", queue), zap.String("consumer_tag", tag))
	return tag, nil
}

// Cancel stops a consumer. Deliveries already received still reach the
// handler.
func (ch *Channel) Cancel(ctx context.Context, consumerTag string) error {
	_, err := ch.call(ctx, &protocol.BasicCancelMethod{ConsumerTag: consumerTag}, &protocol.BasicCancelOKMethod{})
	ch.removeConsumer(consumerTag)
	return err
}

func (ch *Channel) removeConsumer(tag string) {
	ch.consumersMu.Lock()
	c := ch.consumers[tag]
	delete(ch.consumers, tag)
	ch.consumersMu.Unlock()
	if c != nil {
		c.stop()
	}
}

// Get fetches one message. It returns false when the queue is empty or the
// broker repeats a delivery tag it already handed out.
func (ch *Channel) Get(ctx context.Context, queue string, noAck bool) (*Delivery, bool, error) {
	r, err := ch.call(ctx, &protocol.BasicGetMethod{Queue: queue, NoAck: noAck},
		&protocol.BasicGetOKMethod{}, &protocol.BasicGetEmptyMethod{})
	if err != nil {
		return nil, false, err
	}
	if r.message == nil {
		return nil, false, nil
	}

	if !ch.tracker.observe(r.message.DeliveryTag, !noAck) {
		ch.logger.Warn("Dropping repeated delivery tag", zap.Uint64("delivery_tag", r.message.DeliveryTag))
		return nil, false, nil
	}
	ch.conn.metrics.RecordMessageDelivered(len(r.message.Body))
	return &Delivery{Message: *r.message, channel: ch}, true, nil
}

// Ack acknowledges a delivery tag. Tags the channel never delivered, or
// already settled, are refused locally instead of letting the broker close
// the channel.
func (ch *Channel) Ack(deliveryTag uint64, multiple bool) error {
	n, err := ch.tracker.settle(deliveryTag, multiple)
	if err != nil {
		return err
	}
	if err := ch.cast(context.Background(), &protocol.BasicAckMethod{DeliveryTag: deliveryTag, Multiple: multiple}); err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		ch.conn.metrics.RecordMessageAcknowledged()
	}
	return nil
}

// Nack rejects one or more deliveries
func (ch *Channel) Nack(deliveryTag uint64, multiple, requeue bool) error {
	n, err := ch.tracker.settle(deliveryTag, multiple)
	if err != nil {
		return err
	}
	if err := ch.cast(context.Background(), &protocol.BasicNackMethod{
		DeliveryTag: deliveryTag,
		Multiple:    multiple,
		Requeue:     requeue,
	}); err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		ch.conn.metrics.RecordMessageRejected()
	}
	return nil
}

// Reject rejects a single delivery
func (ch *Channel) Reject(deliveryTag uint64, requeue bool) error {
	if _, err := ch.tracker.settle(deliveryTag, false); err != nil {
		return err
	}
	if err := ch.cast(context.Background(), &protocol.BasicRejectMethod{DeliveryTag: deliveryTag, Requeue: requeue}); err != nil {
		return err
	}
	ch.conn.metrics.RecordMessageRejected()
	return nil
}

// Unacked returns the number of deliveries waiting for an ack
func (ch *Channel) Unacked() uint64 {
	return ch.tracker.outstanding()
}

// Recover asks the broker to redeliver unacknowledged messages
func (ch *Channel) Recover(ctx context.Context, requeue bool) error {
	_, err := ch.call(ctx, &protocol.BasicRecoverMethod{Requeue: requeue}, &protocol.BasicRecoverOKMethod{})
	return err
}

// Tx class

// TxSelect puts the channel in transactional mode
func (ch *Channel) TxSelect(ctx context.Context) error {
	_, err := ch.call(ctx, &protocol.TxSelectMethod{}, &protocol.TxSelectOKMethod{})
	return err
}

// TxCommit commits the current transaction
func (ch *Channel) TxCommit(ctx context.Context) error {
	_, err := ch.call(ctx, &protocol.TxCommitMethod{}, &protocol.TxCommitOKMethod{})
	return err
}

// TxRollback abandons the current transaction
func (ch *Channel) TxRollback(ctx context.Context) error {
	_, err := ch.call(ctx, &protocol.TxRollbackMethod{}, &protocol.TxRollbackOKMethod{})
	return err
}
