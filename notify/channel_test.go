package notify

import (
	"testing"
	"time"

	"Storefront/clock"
	"Storefront/models"
)

func TestPublishedMessagesExpire(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	ch := NewChannel(clk, 3*time.Second)

	ch.Success("saved")
	clk.Advance(time.Second)
	ch.Error("failed")

	if msgs := ch.Messages(); len(msgs) != 2 || msgs[1].Kind != models.KindError {
		t.Fatalf("unexpected queue: %+v", msgs)
	}

	clk.Advance(2 * time.Second)
	msgs := ch.Messages()
	if len(msgs) != 1 || msgs[0].Text != "failed" {
		t.Fatalf("expected only the second message left, got %+v", msgs)
	}

	clk.Advance(time.Second)
	if len(ch.Messages()) != 0 {
		t.Fatalf("expected empty queue")
	}
}

func TestExpiryRemovesOnlyItsOwnInstance(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	ch := NewChannel(clk, 3*time.Second)

	first := ch.Success("same text")
	clk.Advance(2 * time.Second)
	second := ch.Success("same text")
	clk.Advance(time.Second)

	msgs := ch.Messages()
	if len(msgs) != 1 || msgs[0].ID != second.ID || msgs[0].ID == first.ID {
		t.Fatalf("expected the later duplicate to survive, got %+v", msgs)
	}
}

func TestSubscribeReplaysQueue(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	ch := NewChannel(clk, 0)
	ch.Publish("hello", "")

	var seen [][]models.Message
	unsubscribe := ch.Subscribe(func(msgs []models.Message) { seen = append(seen, msgs) })
	defer unsubscribe()

	if len(seen) != 1 || len(seen[0]) != 1 || seen[0][0].Kind != models.KindSuccess {
		t.Fatalf("expected replay with default kind, got %+v", seen)
	}

	clk.Advance(DefaultLifetime)
	if len(seen) != 2 || len(seen[1]) != 0 {
		t.Fatalf("expected expiry emission, got %+v", seen)
	}
	if clk.Pending() != 0 {
		t.Fatalf("expected no pending timers")
	}
}

func TestListenerMayPublish(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	ch := NewChannel(clk, time.Second)

	relayed := false
	var last []models.Message
	unsubscribe := ch.Subscribe(func(msgs []models.Message) {
		last = msgs
		for _, m := range msgs {
			if m.Kind == models.KindError && !relayed {
				relayed = true
				ch.Success("reported: " + m.Text)
			}
		}
	})
	defer unsubscribe()

	ch.Error("payment failed")

	msgs := ch.Messages()
	if len(msgs) != 2 || msgs[1].Text != "reported: payment failed" {
		t.Fatalf("expected relayed toast queued, got %+v", msgs)
	}
	if len(last) != 2 {
		t.Fatalf("expected listener to end on the latest queue, got %+v", last)
	}

	clk.Advance(time.Second)
	if len(ch.Messages()) != 0 || len(last) != 0 {
		t.Fatalf("expected both toasts expired, got %+v", last)
	}
}
