package events

import (
	"encoding/json"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	model "task-market.com/task-market/internal/models"
)

type Kind string

const (
	KindTaskClaimed       Kind = "task_claimed"
	KindTaskCancelled     Kind = "task_cancelled"
	KindTaskStatusChanged Kind = "task_status_changed"
	KindNewMessage        Kind = "new_message"
	KindReadReceipt       Kind = "read_receipt"
)

type Event struct {
	Kind    Kind               `json:"kind"`
	TaskID  string             `json:"task_id,omitempty"`
	RoomID  string             `json:"room_id,omitempty"`
	ActorID string             `json:"actor_id,omitempty"`
	Status  string             `json:"status,omitempty"`
	Message *model.ChatMessage `json:"message,omitempty"`
	At      time.Time          `json:"at"`
}

// TaskTopic carries every task lifecycle event; a notification layer
// subscribes here.
const TaskTopic = "tasks"

func RoomTopic(roomID string) string {
	return "room:" + roomID
}

// Handler receives events one at a time, in publish order.
type Handler func(Event)

// Mirror forwards a published event outside the process. Failures are
// logged and never propagate to publishers.
type Mirror interface {
	Publish(topic string, payload []byte) error
}

type subscriber struct {
	topic string
	ch    chan Event
	once  sync.Once
}

// Bus fans events out to per-topic subscribers. Publish never blocks:
// each subscriber drains its own buffered channel on its own
// goroutine, so one slow handler cannot stall another, and a full
// buffer drops the event for that subscriber only. A subscriber that
// may have missed events must re-fetch history.
type Bus struct {
	mu     sync.Mutex
	subs   map[string]map[*subscriber]struct{}
	mirror chan mirrored
	buffer int
	closed bool
	wg     sync.WaitGroup
}

type mirrored struct {
	topic   string
	payload []byte
}

func NewBus(buffer int, mirror Mirror) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	b := &Bus{
		subs:   make(map[string]map[*subscriber]struct{}),
		buffer: buffer,
	}

	if mirror != nil {
		b.mirror = make(chan mirrored, buffer)
		b.wg.Add(1)
		go b.mirrorLoop(mirror)
	}

	return b
}

// Subscribe registers h for topic and returns its unsubscribe
// function, which is safe to call more than once and after Close.
func (b *Bus) Subscribe(topic string, h Handler) func() {
	sub := &subscriber{topic: topic, ch: make(chan Event, b.buffer)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return func() {}
	}
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*subscriber]struct{})
	}
	b.subs[topic][sub] = struct{}{}
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for ev := range sub.ch {
			h(ev)
		}
	}()

	return func() { b.remove(sub) }
}

func (b *Bus) remove(sub *subscriber) {
	sub.once.Do(func() {
		b.mu.Lock()
		if set, ok := b.subs[sub.topic]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(b.subs, sub.topic)
			}
		}
		b.mu.Unlock()
		close(sub.ch)
	})
}

// Publish delivers ev to every current subscriber of topic, fire and
// forget. Events published while a subscriber's buffer is full are
// dropped for that subscriber.
func (b *Bus) Publish(topic string, ev Event) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	for sub := range b.subs[topic] {
		select {
		case sub.ch <- ev:
		default:
			log.WithFields(log.Fields{"topic": topic, "kind": ev.Kind}).
				Warn("subscriber buffer full, event dropped")
		}
	}
	if b.mirror != nil {
		payload, err := json.Marshal(ev)
		if err == nil {
			select {
			case b.mirror <- mirrored{topic: topic, payload: payload}:
			default:
				log.WithField("topic", topic).Warn("mirror queue full, event dropped")
			}
		}
	}
	b.mu.Unlock()
}

func (b *Bus) mirrorLoop(mirror Mirror) {
	defer b.wg.Done()
	for m := range b.mirror {
		if err := mirror.Publish(m.topic, m.payload); err != nil {
			log.WithField("topic", m.topic).Warnf("mirror publish failed: %v", err)
		}
	}
}

// Close detaches every subscriber and waits for their goroutines.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	var all []*subscriber
	for _, set := range b.subs {
		for sub := range set {
			all = append(all, sub)
		}
	}
	mirror := b.mirror
	b.mu.Unlock()

	for _, sub := range all {
		b.remove(sub)
	}
	if mirror != nil {
		close(mirror)
	}
	b.wg.Wait()
}
