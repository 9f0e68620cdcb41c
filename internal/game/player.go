package game

// Player is one human in the session. Death is a state, not a
// deletion: dead players stay seated, keep exactly one vote for the
// rest of the game, and only leave the registry through explicit
// removal.
type Player struct {
	// Name is the display name as entered; comparisons use the folded key.
	Name string

	// Character is nil until the player draws or is assigned a role.
	Character *Character

	// Alignment starts from the character but can be overridden for
	// role changes (e.g. the Scarlet Woman becoming the Demon).
	Alignment Alignment

	Alive        bool
	UsedDeadVote bool

	effects []*Effect
}

func newPlayer(name string) *Player {
	return &Player{
		Name:      name,
		Alignment: AlignmentUnknown,
		Alive:     true,
	}
}

// Key returns the folded name used for registry lookups.
func (p *Player) Key() string {
	return NormalizeName(p.Name)
}

// HasCharacter reports whether the player has drawn a role yet.
func (p *Player) HasCharacter() bool {
	return p.Character != nil
}

// CountsForDistribution reports whether the player counts toward the
// base role distribution. Travelers don't.
func (p *Player) CountsForDistribution() bool {
	return p.Character == nil || p.Character.Category != CategoryTraveler
}

// assignCharacter sets the player's role and takes its alignment.
func (p *Player) assignCharacter(c *Character) {
	p.Character = c
	p.Alignment = c.Alignment
}

// useDeadVote spends the player's single dead vote. Only dead players
// hold a dead vote, and it can be spent exactly once.
func (p *Player) useDeadVote() error {
	if p.Alive {
		return ErrInvalidState
	}
	if p.UsedDeadVote {
		return ErrInvalidState
	}
	p.UsedDeadVote = true
	return nil
}
