package game

import "github.com/google/uuid"

// EffectSnapshot is one active effect, copied out for publication.
type EffectSnapshot struct {
	Kind   EffectKind `json:"kind"`
	Source string     `json:"source"`
}

// PlayerSnapshot is one seated player, copied out for publication.
type PlayerSnapshot struct {
	Name         string           `json:"name"`
	Character    string           `json:"character,omitempty"`
	Alignment    Alignment        `json:"alignment"`
	Alive        bool             `json:"alive"`
	UsedDeadVote bool             `json:"used_dead_vote"`
	Effects      []EffectSnapshot `json:"effects,omitempty"`
}

// Snapshot is a plain copy of the whole session taken inside the
// critical section and handed to collaborators outside it. Consumers
// (OBS overlay, sound, console views) never see live state.
type Snapshot struct {
	Epoch  uuid.UUID `json:"epoch"`
	Script string    `json:"script,omitempty"`
	State  State     `json:"state"`
	Phase  Phase     `json:"phase"`
	Nights int       `json:"nights"`

	Included []string         `json:"included,omitempty"`
	Players  []PlayerSnapshot `json:"players,omitempty"`

	RevealReady bool      `json:"reveal_ready"`
	Winner      Alignment `json:"winner,omitempty"`
}

// LivingPlayers counts alive players in the snapshot.
func (s Snapshot) LivingPlayers() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

// snapshot copies the session. Must be called with the manager's lock
// held; the result shares no memory with the session.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		Epoch:       s.epoch,
		State:       s.state,
		Phase:       s.phase,
		Nights:      s.nights,
		RevealReady: s.revealReady,
		Winner:      s.winner,
	}
	if s.script != nil {
		snap.Script = s.script.Name
	}

	for _, inc := range s.included {
		snap.Included = append(snap.Included, inc.Name)
	}

	for _, p := range s.players {
		ps := PlayerSnapshot{
			Name:         p.Name,
			Alignment:    p.Alignment,
			Alive:        p.Alive,
			UsedDeadVote: p.UsedDeadVote,
		}
		if p.Character != nil {
			ps.Character = p.Character.Name
		}
		for _, e := range p.effects {
			ps.Effects = append(ps.Effects, EffectSnapshot{Kind: e.Kind, Source: e.Source})
		}
		snap.Players = append(snap.Players, ps)
	}

	return snap
}
