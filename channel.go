package caliper

// Handler receives event payloads published on a subscribed topic.
// The payload's concrete type is fixed per topic; see events.go.
type Handler func(payload any)

// PanicHandler is invoked when a subscriber panics during Emit. The
// recovered value and the topic being dispatched are supplied.
type PanicHandler func(topic Topic, recovered any)

type subscriber struct {
	id uint64
	fn Handler
}

// Channel is a synchronous publish/subscribe event channel. It is the
// integration surface between the interaction layer (states, clock
// driver) and downstream consumers (measurement logic, cameras, UI).
//
// Channel is explicitly constructed and explicitly passed; there is
// no package-level instance. Its lifetime belongs to the owning
// application session.
//
// Channel is single-threaded: Emit dispatches handlers inline on the
// caller's goroutine in subscription order. Handlers may call Emit,
// Subscribe, or Subscription.Remove re-entrantly. A nested Emit runs
// to completion before the outer dispatch continues. Handlers
// subscribed during dispatch of a topic do not see the in-flight
// emission; removals during dispatch take effect for subsequent
// emissions.
type Channel struct {
	subs    map[Topic][]subscriber
	nextID  uint64
	onPanic PanicHandler
}

// NewChannel creates an empty event channel.
func NewChannel() *Channel {
	return &Channel{subs: make(map[Topic][]subscriber)}
}

// SetPanicHandler installs a handler called when a subscriber panics
// during Emit. With a handler installed, the panic is recovered and
// dispatch continues with the remaining subscribers. Without one,
// subscriber panics propagate to the Emit caller.
func (c *Channel) SetPanicHandler(fn PanicHandler) {
	c.onPanic = fn
}

// Subscription identifies a registered handler and allows removing it.
type Subscription struct {
	channel *Channel
	topic   Topic
	id      uint64
}

// Subscribe registers fn to receive every payload emitted on topic.
// Handlers fire in subscription order.
func (c *Channel) Subscribe(topic Topic, fn Handler) Subscription {
	c.nextID++
	id := c.nextID
	c.subs[topic] = append(c.subs[topic], subscriber{id: id, fn: fn})
	return Subscription{channel: c, topic: topic, id: id}
}

// Remove unregisters the subscription so its handler no longer fires.
// Removing an already-removed subscription is a no-op.
func (s Subscription) Remove() {
	if s.channel == nil {
		return
	}
	subs := s.channel.subs[s.topic]
	for i := range subs {
		if subs[i].id == s.id {
			// Copy-on-remove so an in-flight Emit iterating the old
			// slice is unaffected until the next emission.
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			s.channel.subs[s.topic] = next
			return
		}
	}
}

// Emit delivers payload to every handler subscribed to topic, in
// subscription order, synchronously. Emitting on a topic with no
// subscribers is a no-op.
func (c *Channel) Emit(topic Topic, payload any) {
	// Snapshot the slice header: Subscribe appends (may reallocate) and
	// Remove copies, so re-entrant mutation never disturbs this pass.
	subs := c.subs[topic]
	for i := range subs {
		c.dispatch(topic, subs[i].fn, payload)
	}
}

func (c *Channel) dispatch(topic Topic, fn Handler, payload any) {
	if c.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				c.onPanic(topic, r)
			}
		}()
	}
	fn(payload)
}

// SubscriberCount returns the number of handlers registered for topic.
func (c *Channel) SubscriberCount(topic Topic) int {
	return len(c.subs[topic])
}
