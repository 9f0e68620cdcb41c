package game

// SuppressReason says why an ability evaluated to no mechanical
// effect. Suppression is a valid resolution outcome, never an error:
// the storyteller still goes through the motions at the table, and the
// engine's word on whether anything really happened stays private to
// the caller.
type SuppressReason string

const (
	SuppressDead     SuppressReason = "dead"
	SuppressPoisoned SuppressReason = "poisoned"
	SuppressDrunk    SuppressReason = "drunk"
)

// Resolution is the outcome of resolving one player's ability.
type Resolution struct {
	Player    string
	Character string

	// Suppressed means the ability has no mechanical effect this time.
	// The reason is for the storyteller only; nothing downstream of the
	// domain result reveals it to the table.
	Suppressed bool
	Reason     SuppressReason
}

// resolveAbility gates a player's ability through death and
// malfunction, in that order. Dead players without acts-while-dead
// lose their ability outright; poisoned or drunk players malfunction
// silently. Anything else is live and the character's specific effect
// may proceed.
func (s *Session) resolveAbility(name string) (Resolution, error) {
	p, err := s.player(name)
	if err != nil {
		return Resolution{}, err
	}
	if p.Character == nil {
		return Resolution{}, ErrInvalidState
	}

	res := Resolution{
		Player:    p.Name,
		Character: p.Character.Name,
	}

	if !p.Alive && !p.Character.ActsWhileDead {
		res.Suppressed = true
		res.Reason = SuppressDead
		return res, nil
	}

	if p.IsActive(EffectPoisoned) {
		res.Suppressed = true
		res.Reason = SuppressPoisoned
		return res, nil
	}

	if p.IsActive(EffectDrunk) || p.IsActive(EffectIsTheDrunk) {
		res.Suppressed = true
		res.Reason = SuppressDrunk
		return res, nil
	}

	return res, nil
}
