package client

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/roaring64"
	disruptor "github.com/smartystreets-prototypes/go-disruptor"
	"go.uber.org/zap"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
)

// Delivery is a message received through Basic.Deliver or Basic.GetOk
type Delivery struct {
	protocol.Message
	channel *Channel
}

// Ack acknowledges this delivery, and every earlier one when multiple is set
func (d *Delivery) Ack(multiple bool) error {
	return d.channel.Ack(d.DeliveryTag, multiple)
}

// Nack rejects this delivery, and every earlier one when multiple is set
func (d *Delivery) Nack(multiple, requeue bool) error {
	return d.channel.Nack(d.DeliveryTag, multiple, requeue)
}

// Reject rejects this delivery alone
func (d *Delivery) Reject(requeue bool) error {
	return d.channel.Reject(d.DeliveryTag, requeue)
}

// Handler is invoked once per delivery, on the consumer's own goroutine
type Handler func(d *Delivery)

// ConsumeOptions are the Basic.Consume flags
type ConsumeOptions struct {
	// ConsumerTag is generated when empty
	ConsumerTag string
	NoLocal     bool
	NoAck       bool
	Exclusive   bool
	Arguments   protocol.Table
}

// consumer moves deliveries from the reader goroutine to the handler
// through a ring buffer. The reader only blocks when the ring is full.
type consumer struct {
	tag     string
	queue   string
	noAck   bool
	handler Handler
	logger  *zap.Logger

	ring    disruptor.Disruptor
	waiter  *idleWaiter
	slots   []*Delivery
	mask    int64
	stopped chan struct{}

	stopOnce sync.Once
}

func newConsumer(tag, queue string, noAck bool, handler Handler, capacity int64, logger *zap.Logger) *consumer {
	c := &consumer{
		tag:     tag,
		queue:   queue,
		noAck:   noAck,
		handler: handler,
		logger:  logger,
		slots:   make([]*Delivery, capacity),
		mask:    capacity - 1,
		waiter:  newIdleWaiter(),
		stopped: make(chan struct{}),
	}

	c.ring = disruptor.New(
		disruptor.WithCapacity(capacity),
		disruptor.WithWaitStrategy(c.waiter),
		disruptor.WithConsumerGroup(c),
	)

	go func() {
		defer close(c.stopped)
		c.ring.Read()
	}()
	return c
}

// Consume runs the handler for each committed slot (disruptor callback)
func (c *consumer) Consume(lower, upper int64) {
	for seq := lower; seq <= upper; seq++ {
		index := seq & c.mask
		d := c.slots[index]
		c.slots[index] = nil
		if d != nil {
			c.handler(d)
		}
	}
}

// push is called from the connection reader
func (c *consumer) push(d *Delivery) {
	seq := c.ring.Reserve(1)
	c.slots[seq&c.mask] = d
	c.ring.Commit(seq, seq)
	c.waiter.wake()
}

// stop lets the handler drain what was already pushed, then ends its goroutine
func (c *consumer) stop() {
	c.stopOnce.Do(func() {
		if err := c.ring.Close(); err != nil {
			c.logger.Warn("Error closing delivery ring",
				zap.String("consumer_tag", c.tag),
				zap.Error(err))
		}
		c.waiter.wake()
	})
}

// maxIdleWait bounds how long an idle handler goroutine sleeps between
// checks of the ring when no wake-up arrives.
const maxIdleWait = 250 * time.Millisecond

// idleWaiter parks an idle ring reader until the producer commits or the
// ring closes, instead of polling.
type idleWaiter struct {
	signal chan struct{}
}

func newIdleWaiter() *idleWaiter {
	return &idleWaiter{signal: make(chan struct{}, 1)}
}

// wake never blocks; one pending signal is enough
func (w *idleWaiter) wake() {
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// Gate is called while a reserved slot is not yet committed
func (w *idleWaiter) Gate(int64) {
	runtime.Gosched()
}

// Idle is called when the ring is empty
func (w *idleWaiter) Idle(int64) {
	timer := time.NewTimer(maxIdleWait)
	defer timer.Stop()
	select {
	case <-w.signal:
	case <-timer.C:
	}
}

// deliveryTracker remembers which delivery tags a channel has seen and
// which are still waiting for an ack. Tags are per channel and increase
// monotonically, so both sets compress well.
type deliveryTracker struct {
	mu      sync.Mutex
	seen    *roaring64.Bitmap
	unacked *roaring64.Bitmap
}

func newDeliveryTracker() *deliveryTracker {
	return &deliveryTracker{
		seen:    roaring64.New(),
		unacked: roaring64.New(),
	}
}

// observe records a delivery. It returns false for a tag that was already
// delivered, which must not reach a handler again.
func (t *deliveryTracker) observe(tag uint64, needsAck bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.seen.CheckedAdd(tag) {
		return false
	}
	if needsAck {
		t.unacked.Add(tag)
	}
	return true
}

// settle removes acknowledged tags. Multiple with tag zero settles
// everything outstanding. It returns the number of tags settled.
func (t *deliveryTracker) settle(tag uint64, multiple bool) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if multiple && tag == 0 {
		n := t.unacked.GetCardinality()
		t.unacked.Clear()
		return n, nil
	}

	if !t.unacked.Contains(tag) {
		return 0, amqperrors.NewChannelError(amqperrors.PreconditionFailed,
			fmt.Sprintf("unknown delivery tag %d", tag), "", 0)
	}

	if !multiple {
		t.unacked.Remove(tag)
		return 1, nil
	}

	before := t.unacked.GetCardinality()
	t.unacked.RemoveRange(0, tag+1)
	return before - t.unacked.GetCardinality(), nil
}

// outstanding returns the number of deliveries waiting for an ack
func (t *deliveryTracker) outstanding() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unacked.GetCardinality()
}
