package messaging

import (
	"encoding/json"
	"log/slog"

	"github.com/deathsdoor/deathsdoor/internal/game"
)

// Bus subjects. The OBS overlay follows SubjectSnapshot and
// SubjectTimer; the audio collaborator follows SubjectSound; the DMX
// lighting collaborator follows SubjectLight.
const (
	SubjectSnapshot = "deathsdoor.snapshot"
	SubjectSound    = "deathsdoor.sound"
	SubjectTimer    = "deathsdoor.timer"
	SubjectLight    = "deathsdoor.light"
)

// Publisher provides the ability to publish messages to subjects.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// StatePublisher fans committed game state out to the bus. It
// implements game.SnapshotSink; publish failures are logged and
// swallowed since collaborators degrading must never fail a mutation
// that has already committed.
type StatePublisher struct {
	pub Publisher
}

func NewStatePublisher(pub Publisher) *StatePublisher {
	return &StatePublisher{pub: pub}
}

func (p *StatePublisher) PublishSnapshot(snap game.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		slog.Warn("marshalling snapshot", "error", err)
		return
	}
	if err := p.pub.Publish(SubjectSnapshot, data); err != nil {
		slog.Warn("publishing snapshot", "error", err)
	}
}

// PublishSound emits one sound cue name for the audio collaborator.
func (p *StatePublisher) PublishSound(cue string) {
	if err := p.pub.Publish(SubjectSound, []byte(cue)); err != nil {
		slog.Warn("publishing sound cue", "cue", cue, "error", err)
	}
}

// PublishLight emits one lighting scene name for the DMX collaborator.
func (p *StatePublisher) PublishLight(scene string) {
	if err := p.pub.Publish(SubjectLight, []byte(scene)); err != nil {
		slog.Warn("publishing lighting scene", "scene", scene, "error", err)
	}
}

// TimerUpdate is the overlay payload for the countdown timer.
type TimerUpdate struct {
	Seconds int  `json:"seconds"`
	Running bool `json:"running"`
}

// PublishTimer emits the current countdown for the overlay.
func (p *StatePublisher) PublishTimer(u TimerUpdate) {
	data, err := json.Marshal(u)
	if err != nil {
		slog.Warn("marshalling timer update", "error", err)
		return
	}
	if err := p.pub.Publish(SubjectTimer, data); err != nil {
		slog.Warn("publishing timer update", "error", err)
	}
}
