package live

import (
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed, want event")
		}
		return e
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Event{}
}

func TestHubDeliversByTopic(t *testing.T) {
	t.Parallel()
	h := NewHub(4)

	orders, cancelOrders := h.Subscribe(TopicOrders)
	defer cancelOrders()
	all, cancelAll := h.Subscribe()
	defer cancelAll()

	h.Publish(Event{Topic: TopicMemos, Type: EventMemoCreated})
	h.Publish(Event{Topic: TopicOrders, Type: EventOrderCreated})

	if got := receive(t, orders); got.Type != EventOrderCreated {
		t.Fatalf("orders subscriber got %q, want %q", got.Type, EventOrderCreated)
	}
	if got := receive(t, all); got.Type != EventMemoCreated {
		t.Fatalf("wildcard subscriber first event = %q, want %q", got.Type, EventMemoCreated)
	}
	if got := receive(t, all); got.Type != EventOrderCreated {
		t.Fatalf("wildcard subscriber second event = %q, want %q", got.Type, EventOrderCreated)
	}
	if len(orders) != 0 {
		t.Fatalf("orders subscriber received a memo event")
	}
}

func TestHubPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	t.Parallel()
	h := NewHub(1)
	ch, cancel := h.Subscribe(TopicOrders)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			h.Publish(Event{Topic: TopicOrders, Type: EventOrderUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Publish blocked on a full subscriber")
	}
	if got := len(ch); got != 1 {
		t.Fatalf("buffered events = %d, want 1", got)
	}
	if got := receive(t, ch); got.Type != EventResync {
		t.Fatalf("buffered event = %q, want %q", got.Type, EventResync)
	}
}

func TestHubQueuesResyncAfterDrop(t *testing.T) {
	t.Parallel()
	h := NewHub(2)
	ch, cancel := h.Subscribe(TopicOrders)
	defer cancel()

	h.Publish(Event{Topic: TopicOrders, Type: "first"})
	h.Publish(Event{Topic: TopicOrders, Type: "second"})
	h.Publish(Event{Topic: TopicOrders, Type: "third"})

	if got := receive(t, ch); got.Type != "second" {
		t.Fatalf("first received = %q, want second", got.Type)
	}
	if got := receive(t, ch); got.Type != EventResync || got.Topic != TopicOrders {
		t.Fatalf("second received = %+v, want orders resync", got)
	}

	h.Publish(Event{Topic: TopicOrders, Type: "fourth"})
	if got := receive(t, ch); got.Type != "fourth" {
		t.Fatalf("after drain received = %q, want fourth", got.Type)
	}
}

func TestHubCancelIsIdempotent(t *testing.T) {
	t.Parallel()
	h := NewHub(1)
	ch, cancel := h.Subscribe()
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatalf("channel still open after cancel")
	}
	if got := h.Subscribers(); got != 0 {
		t.Fatalf("Subscribers() = %d, want 0", got)
	}
	h.Publish(Event{Topic: TopicOrders})
}

func TestHubCloseEndsSubscriptions(t *testing.T) {
	t.Parallel()
	h := NewHub(1)
	ch, cancel := h.Subscribe()
	h.Close()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatalf("channel still open after Close")
	}
	late, _ := h.Subscribe()
	if _, ok := <-late; ok {
		t.Fatalf("subscription after Close should be closed")
	}
}
