package events

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestBus_OrderedDeliveryExactlyOnce(t *testing.T) {
	bus := NewBus(128, nil)
	defer bus.Close()

	var mu sync.Mutex
	var got []string
	unsubscribe := bus.Subscribe("room:r1", func(ev Event) {
		mu.Lock()
		got = append(got, ev.Status)
		mu.Unlock()
	})
	defer unsubscribe()

	const n = 50
	for i := 0; i < n; i++ {
		bus.Publish("room:r1", Event{Kind: KindNewMessage, Status: fmt.Sprintf("%d", i)})
	}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == n
	})

	mu.Lock()
	defer mu.Unlock()
	for i := 0; i < n; i++ {
		if got[i] != fmt.Sprintf("%d", i) {
			t.Fatalf("delivery %d = %q, out of order", i, got[i])
		}
	}
}

func TestBus_TopicIsolation(t *testing.T) {
	bus := NewBus(16, nil)
	defer bus.Close()

	var mu sync.Mutex
	count := 0
	unsubscribe := bus.Subscribe("room:a", func(ev Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer unsubscribe()

	bus.Publish("room:b", Event{Kind: KindNewMessage})
	bus.Publish("room:a", Event{Kind: KindNewMessage})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	})

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
}

func TestBus_UnsubscribeIdempotent(t *testing.T) {
	bus := NewBus(16, nil)
	defer bus.Close()

	var mu sync.Mutex
	count := 0
	unsubscribe := bus.Subscribe("room:a", func(ev Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	unsubscribe()
	unsubscribe()

	// publish to a detached subscriber must be dropped, not panic
	bus.Publish("room:a", Event{Kind: KindNewMessage})
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("expected no deliveries after unsubscribe, got %d", count)
	}
}

func TestBus_UnsubscribeAfterClose(t *testing.T) {
	bus := NewBus(16, nil)
	unsubscribe := bus.Subscribe("room:a", func(ev Event) {})
	bus.Close()
	unsubscribe()
	bus.Close()

	if got := bus.Subscribe("room:a", func(ev Event) {}); got == nil {
		t.Fatal("subscribe after close must still return an unsubscribe func")
	} else {
		got()
	}
	bus.Publish("room:a", Event{Kind: KindNewMessage})
}

type fakeMirror struct {
	mu     sync.Mutex
	topics []string
}

func (f *fakeMirror) Publish(topic string, payload []byte) error {
	f.mu.Lock()
	f.topics = append(f.topics, topic)
	f.mu.Unlock()
	return nil
}

func TestBus_MirrorReceivesEveryPublish(t *testing.T) {
	mirror := &fakeMirror{}
	bus := NewBus(16, mirror)

	bus.Publish(TaskTopic, Event{Kind: KindTaskClaimed})
	bus.Publish(RoomTopic("r1"), Event{Kind: KindNewMessage})

	waitFor(t, func() bool {
		mirror.mu.Lock()
		defer mirror.mu.Unlock()
		return len(mirror.topics) == 2
	})
	bus.Close()

	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	if mirror.topics[0] != TaskTopic || mirror.topics[1] != "room:r1" {
		t.Errorf("unexpected mirror topics: %v", mirror.topics)
	}
}
