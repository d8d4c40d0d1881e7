package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruasec/pkg/registry/events"
)

func TestPublishWithNoSubscriberIsNoop(t *testing.T) {
	h := events.NewHub(0)
	// must not panic or block
	h.Publish("never-subscribed", events.Event{DataType: events.DataTypeBlob})
}

func TestLateSubscribeMissesPriorEvents(t *testing.T) {
	h := events.NewHub(0)

	sub1, detach1 := h.Subscribe("foo")
	defer detach1()

	h.Publish("foo", events.Event{DataType: events.DataTypeBlob, Identifier: "1"})
	h.Publish("foo", events.Event{DataType: events.DataTypeBlob, Identifier: "2"})

	sub2, detach2 := h.Subscribe("foo")
	defer detach2()

	h.Publish("foo", events.Event{DataType: events.DataTypeBlob, Identifier: "3"})

	// sub1 sees all three, in order.
	for _, want := range []string{"1", "2", "3"} {
		select {
		case e := <-sub1.C:
			assert.Equal(t, want, e.Identifier)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %s", want)
		}
	}

	// sub2 only sees the third.
	select {
	case e := <-sub2.C:
		assert.Equal(t, "3", e.Identifier)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event 3 on late subscriber")
	}
	select {
	case e, ok := <-sub2.C:
		t.Fatalf("unexpected extra event on late subscriber: %+v (ok=%v)", e, ok)
	default:
	}
}

func TestFanOutToMultipleSubscribers(t *testing.T) {
	h := events.NewHub(0)
	sub1, detach1 := h.Subscribe("foo")
	defer detach1()
	sub2, detach2 := h.Subscribe("foo")
	defer detach2()

	for i := 0; i < 3; i++ {
		h.Publish("foo", events.Event{DataType: events.DataTypeManifest})
	}

	for _, sub := range []*events.Subscription{sub1, sub2} {
		for i := 0; i < 3; i++ {
			select {
			case <-sub.C:
			case <-time.After(time.Second):
				t.Fatal("timed out waiting for fan-out event")
			}
		}
	}
}

func TestSlowSubscriberDropsRatherThanBlocksPublisher(t *testing.T) {
	h := events.NewHub(2)
	sub, detach := h.Subscribe("foo")
	defer detach()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			h.Publish("foo", events.Event{DataType: events.DataTypeBlob})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a full subscriber buffer")
	}

	// subscriber can still drain whatever made it into its buffer.
	count := 0
drain:
	for {
		select {
		case <-sub.C:
			count++
		default:
			break drain
		}
	}
	require.LessOrEqual(t, count, 2)
}

func TestDetachStopsFurtherDelivery(t *testing.T) {
	h := events.NewHub(0)
	sub, detach := h.Subscribe("foo")
	detach()

	h.Publish("foo", events.Event{DataType: events.DataTypeBlob})

	select {
	case e, ok := <-sub.C:
		t.Fatalf("unexpected delivery after detach: %+v (ok=%v)", e, ok)
	default:
	}
}
