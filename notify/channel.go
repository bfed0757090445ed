// Package notify is the toast queue: published messages expire on their own
// after a fixed lifetime.
package notify

import (
	"sync"
	"time"

	"Storefront/clock"
	"Storefront/models"
	"Storefront/observable"

	"github.com/google/uuid"
)

const DefaultLifetime = 3 * time.Second

type Channel struct {
	mu         sync.Mutex
	current    []models.Message
	dirty      bool
	delivering bool

	clock    clock.Clock
	lifetime time.Duration
	queue    *observable.Subject[[]models.Message]
}

func NewChannel(c clock.Clock, lifetime time.Duration) *Channel {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Channel{
		clock:    c,
		lifetime: lifetime,
		current:  []models.Message{},
		queue:    observable.NewSubject([]models.Message{}),
	}
}

// Publish appends a message and schedules its removal. Listeners may publish
// from inside their callback.
func (c *Channel) Publish(text string, kind models.Kind) models.Message {
	if kind == "" {
		kind = models.KindSuccess
	}
	msg := models.Message{ID: uuid.NewString(), Text: text, Kind: kind}

	c.mu.Lock()
	next := make([]models.Message, 0, len(c.current)+1)
	next = append(append(next, c.current...), msg)
	c.current = next
	c.deliverLocked()

	c.clock.AfterFunc(c.lifetime, func() { c.remove(msg.ID) })
	return msg
}

func (c *Channel) Success(text string) models.Message { return c.Publish(text, models.KindSuccess) }

func (c *Channel) Error(text string) models.Message { return c.Publish(text, models.KindError) }

// Messages returns a copy of the live queue.
func (c *Channel) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.current))
	copy(out, c.current)
	return out
}

func (c *Channel) Subscribe(fn func([]models.Message)) func() {
	return c.queue.Subscribe(func(msgs []models.Message) {
		out := make([]models.Message, len(msgs))
		copy(out, msgs)
		fn(out)
	})
}

func (c *Channel) remove(id string) {
	c.mu.Lock()
	next := make([]models.Message, 0, len(c.current))
	for _, m := range c.current {
		if m.ID != id {
			next = append(next, m)
		}
	}
	c.current = next
	c.deliverLocked()
}

// deliverLocked is entered with c.mu held and returns with it released.
// Listeners run unlocked; a change made while they run is delivered by the
// same loop, so the last emission is always the latest queue.
func (c *Channel) deliverLocked() {
	c.dirty = true
	if c.delivering {
		c.mu.Unlock()
		return
	}
	c.delivering = true
	for c.dirty {
		c.dirty = false
		snapshot := c.current
		c.mu.Unlock()
		c.queue.Next(snapshot)
		c.mu.Lock()
	}
	c.delivering = false
	c.mu.Unlock()
}
