package game

import (
	"github.com/google/uuid"
)

// EffectKind names a status condition. The constants below are the
// standard reminder tokens; any other non-empty string works as a
// custom kind.
type EffectKind string

const (
	EffectPoisoned  EffectKind = "poisoned"
	EffectDrunk     EffectKind = "drunk"
	EffectProtected EffectKind = "protected"

	EffectButlersMaster EffectKind = "butlers-master"
	EffectRedHerring    EffectKind = "red-herring"
	EffectNoAbility     EffectKind = "no-ability"
	EffectDiedToday     EffectKind = "died-today"
	EffectIsTheDemon    EffectKind = "is-the-demon"
	EffectIsTheDrunk    EffectKind = "is-the-drunk"
)

// SourceStoryteller attributes an effect to the storyteller rather
// than a player. Storyteller effects never cascade; they are removed
// explicitly.
const SourceStoryteller = "storyteller"

// Effect is one active status condition on a player. Source is the
// folded name of the player whose ability produced it (or
// SourceStoryteller); its lifetime is tied to that source, not to a
// timer.
type Effect struct {
	Handle uuid.UUID  `json:"handle"`
	Kind   EffectKind `json:"kind"`
	Source string     `json:"source"`
}

// applyEffect adds an effect of the given kind and source, replacing
// any prior instance of the same (kind, source) pair rather than
// stacking a second one.
func (p *Player) applyEffect(kind EffectKind, source string) *Effect {
	e := &Effect{
		Handle: uuid.New(),
		Kind:   kind,
		Source: source,
	}

	for i, existing := range p.effects {
		if existing.Kind == kind && existing.Source == source {
			p.effects[i] = e
			return e
		}
	}

	p.effects = append(p.effects, e)
	return e
}

// removeEffect removes every effect of the given kind. Removal is
// safe to call speculatively; removing a kind that isn't present is a
// no-op, not an error.
func (p *Player) removeEffect(kind EffectKind) {
	kept := p.effects[:0]
	for _, e := range p.effects {
		if e.Kind != kind {
			kept = append(kept, e)
		}
	}
	p.effects = kept
}

// removeEffectsBySource removes every effect attributed to the given
// source. Returns the number removed.
func (p *Player) removeEffectsBySource(source string) int {
	kept := p.effects[:0]
	removed := 0
	for _, e := range p.effects {
		if e.Source == source {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	p.effects = kept
	return removed
}

// IsActive reports whether the player has an active effect of the
// given kind from any source.
func (p *Player) IsActive(kind EffectKind) bool {
	for _, e := range p.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Effects returns a copy of the player's active effects in
// application order.
func (p *Player) Effects() []Effect {
	out := make([]Effect, len(p.effects))
	for i, e := range p.effects {
		out[i] = *e
	}
	return out
}
