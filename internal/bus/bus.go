// Package bus is a typed, synchronous publish/subscribe mechanism.
//
// A Topic ties an event name to its payload type, so publishers and
// subscribers of one topic cannot disagree on the payload:
//
//	var Saved = bus.NewTopic[string]("saved")
//
//	sub := bus.Subscribe(b, Saved, func(path string) { ... })
//	defer sub.Unsubscribe()
//	bus.Publish(b, Saved, "/tmp/x")
//
// Handlers run on the publishing goroutine, in subscription order, before
// Publish returns.
package bus

import "sync"

// Topic names an event carrying payloads of type T.
type Topic[T any] struct {
	name string
}

// NewTopic creates a topic. Names must be unique within a program.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

// Name returns the topic name.
func (t Topic[T]) Name() string {
	return t.name
}

type handler struct {
	id int
	fn any
}

// Bus dispatches payloads to the handlers subscribed to a topic.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]handler
	nextID   int
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[string][]handler)}
}

// Subscription identifies one handler registration.
type Subscription struct {
	bus   *Bus
	topic string
	id    int
}

// Unsubscribe removes the handler. Calling it more than once is harmless.
func (s Subscription) Unsubscribe() {
	if s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	list := s.bus.handlers[s.topic]
	for i, h := range list {
		if h.id == s.id {
			s.bus.handlers[s.topic] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Subscribe registers fn for topic t.
func Subscribe[T any](b *Bus, t Topic[T], fn func(T)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[t.name] = append(b.handlers[t.name], handler{id: b.nextID, fn: fn})
	return Subscription{bus: b, topic: t.name, id: b.nextID}
}

// Publish calls every handler of topic t with payload. The handler list is
// copied first, so handlers may subscribe or unsubscribe while running.
func Publish[T any](b *Bus, t Topic[T], payload T) {
	b.mu.RLock()
	list := append([]handler(nil), b.handlers[t.name]...)
	b.mu.RUnlock()

	for _, h := range list {
		h.fn.(func(T))(payload)
	}
}

// Count returns the number of handlers subscribed to a topic name.
func (b *Bus) Count(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}
