package model

import (
	"testing"
	"time"
)

func TestChatMessageSeenBy(t *testing.T) {
	sent := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := ChatMessage{CreatedAt: sent}

	if msg.SeenBy(nil) {
		t.Error("message cannot be seen before the other party ever reads")
	}

	before := sent.Add(-time.Minute)
	if msg.SeenBy(&before) {
		t.Error("a read before the message was sent does not cover it")
	}

	exact := sent
	if !msg.SeenBy(&exact) {
		t.Error("a read at the send instant covers the message")
	}

	after := sent.Add(time.Minute)
	if !msg.SeenBy(&after) {
		t.Error("a later read covers the message")
	}
}
