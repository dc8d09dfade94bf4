package events

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// RedisMirror republishes bus events on Redis channels so out-of-process
// consumers (notification layer, other instances) can subscribe without
// touching this core. Channel name is prefix + topic.
type RedisMirror struct {
	client  rueidis.Client
	prefix  string
	timeout time.Duration
}

func NewRedisMirror(client rueidis.Client, prefix string) *RedisMirror {
	return &RedisMirror{
		client:  client,
		prefix:  prefix,
		timeout: 5 * time.Second,
	}
}

func (m *RedisMirror) Publish(topic string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	cmd := m.client.B().Publish().
		Channel(m.prefix + topic).
		Message(string(payload)).
		Build()

	return m.client.Do(ctx, cmd).Error()
}
