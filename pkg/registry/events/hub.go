package events

import "sync"

// bufferSize is the default per-subscriber buffer capacity, per spec.
const bufferSize = 10

// Hub is the process-wide mapping from repository namespace to broadcast
// topic. It is modeled on the original implementation's channel map: a
// single owned object with interior synchronization, created at startup and
// never torn down (topics are never garbage collected — see the "Topic
// leak" design note).
type Hub struct {
	mu     sync.Mutex
	topics map[string]*Topic
	bufcap int
}

// NewHub returns an empty Hub. bufcap overrides the per-subscriber buffer
// capacity; 0 selects the spec default of 10.
func NewHub(bufcap int) *Hub {
	if bufcap <= 0 {
		bufcap = bufferSize
	}
	return &Hub{topics: make(map[string]*Topic), bufcap: bufcap}
}

// Subscribe lazily creates the topic for ns if absent, then attaches a new
// subscription to it. The returned func detaches the subscription; callers
// must call it when the subscriber goes away (e.g. on client disconnect).
func (h *Hub) Subscribe(ns string) (*Subscription, func()) {
	h.mu.Lock()
	topic, ok := h.topics[ns]
	if !ok {
		topic = newTopic(h.bufcap)
		h.topics[ns] = topic
	}
	h.mu.Unlock()
	return topic.subscribe()
}

// Publish looks up the topic for ns and enqueues event on every current
// subscriber's buffer. If no subscriber has ever joined for ns, the publish
// is silently dropped — this is not an error.
func (h *Hub) Publish(ns string, event Event) {
	h.mu.Lock()
	topic, ok := h.topics[ns]
	h.mu.Unlock()
	if !ok {
		return
	}
	topic.publish(event)
}
