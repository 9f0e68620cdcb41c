// Package overlay holds the countdown timer shown on the stream
// overlay. Scene drawing itself belongs to the OBS collaborator; this
// side only keeps the authoritative countdown and announces it on the
// bus.
package overlay

import (
	"context"
	"sync"

	"github.com/deathsdoor/deathsdoor/internal/messaging"
)

// MaxSeconds caps the countdown at one hour.
const MaxSeconds = 3600

// CuePublisher is the slice of the bus the timer needs.
type CuePublisher interface {
	PublishSound(cue string)
	PublishTimer(u messaging.TimerUpdate)
}

// Timer is a second-resolution countdown driven by the tick driver.
// When it runs out it publishes the timer cue and stops.
type Timer struct {
	mu      sync.Mutex
	running bool
	seconds int

	pub CuePublisher
}

func NewTimer(pub CuePublisher) *Timer {
	return &Timer{pub: pub}
}

// Tick advances the countdown by one second. Implements driver.Manager.
func (t *Timer) Tick(ctx context.Context) error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}

	expired := false
	if t.seconds > 0 {
		t.seconds--
	} else {
		t.running = false
		expired = true
	}
	update := messaging.TimerUpdate{Seconds: t.seconds, Running: t.running}
	t.mu.Unlock()

	// Bus traffic happens off the lock.
	t.pub.PublishTimer(update)
	if expired {
		t.pub.PublishSound("timer")
	}
	return nil
}

// Set replaces the countdown value, clamped to [0, MaxSeconds].
func (t *Timer) Set(seconds int) {
	t.mu.Lock()
	t.seconds = clamp(seconds)
	update := messaging.TimerUpdate{Seconds: t.seconds, Running: t.running}
	t.mu.Unlock()

	t.pub.PublishTimer(update)
}

// Add adjusts the countdown by delta, clamped to [0, MaxSeconds].
func (t *Timer) Add(delta int) {
	t.mu.Lock()
	t.seconds = clamp(t.seconds + delta)
	update := messaging.TimerUpdate{Seconds: t.seconds, Running: t.running}
	t.mu.Unlock()

	t.pub.PublishTimer(update)
}

// SetRunning starts or pauses the countdown.
func (t *Timer) SetRunning(running bool) {
	t.mu.Lock()
	t.running = running
	update := messaging.TimerUpdate{Seconds: t.seconds, Running: t.running}
	t.mu.Unlock()

	t.pub.PublishTimer(update)
}

// Remaining returns the current countdown state.
func (t *Timer) Remaining() (seconds int, running bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds, t.running
}

func clamp(seconds int) int {
	if seconds < 0 {
		return 0
	}
	if seconds > MaxSeconds {
		return MaxSeconds
	}
	return seconds
}
