package events

import "sync"

// Subscription is one subscriber's view of a [Topic]: a channel of events
// published after it joined.
type Subscription struct {
	C <-chan Event
}

// Topic is a single-producer-fan-out-to-many-subscribers broadcast channel
// with a bounded per-subscriber buffer. Subscribers join and leave
// dynamically; a slow subscriber loses events rather than blocking the
// publisher (late-subscriber/slow-consumer policy).
type Topic struct {
	mu          sync.Mutex
	bufcap      int
	subscribers map[int]chan Event
	nextID      int
}

func newTopic(bufcap int) *Topic {
	return &Topic{bufcap: bufcap, subscribers: make(map[int]chan Event)}
}

func (t *Topic) subscribe() (*Subscription, func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	ch := make(chan Event, t.bufcap)
	t.subscribers[id] = ch
	t.mu.Unlock()

	detach := func() {
		t.mu.Lock()
		delete(t.subscribers, id)
		t.mu.Unlock()
	}
	return &Subscription{C: ch}, detach
}

func (t *Topic) publish(event Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ch := range t.subscribers {
		select {
		case ch <- event:
		default:
			// buffer full: drop at the subscriber, never block the publisher.
		}
	}
}
