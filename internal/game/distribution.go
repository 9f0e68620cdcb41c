package game

import "fmt"

// RoleDistribution is how many of each role class belong in a game.
type RoleDistribution struct {
	Townsfolk int `json:"townsfolk"`
	Outsiders int `json:"outsiders"`
	Minions   int `json:"minions"`
	Demons    int `json:"demons"`
}

// distributions maps player count (travelers excluded) to the base
// role distribution from the rulebook.
var distributions = map[int]RoleDistribution{
	5:  {Townsfolk: 3, Outsiders: 0, Minions: 1, Demons: 1},
	6:  {Townsfolk: 3, Outsiders: 1, Minions: 1, Demons: 1},
	7:  {Townsfolk: 5, Outsiders: 0, Minions: 1, Demons: 1},
	8:  {Townsfolk: 5, Outsiders: 1, Minions: 1, Demons: 1},
	9:  {Townsfolk: 5, Outsiders: 2, Minions: 2, Demons: 1},
	10: {Townsfolk: 7, Outsiders: 0, Minions: 2, Demons: 1},
	11: {Townsfolk: 7, Outsiders: 1, Minions: 2, Demons: 1},
	12: {Townsfolk: 7, Outsiders: 2, Minions: 2, Demons: 1},
	13: {Townsfolk: 9, Outsiders: 0, Minions: 3, Demons: 1},
	14: {Townsfolk: 9, Outsiders: 1, Minions: 3, Demons: 1},
	15: {Townsfolk: 9, Outsiders: 2, Minions: 3, Demons: 1},
}

// BaseDistribution returns the rulebook distribution for the given
// player count.
func BaseDistribution(playerCount int) (RoleDistribution, error) {
	d, ok := distributions[playerCount]
	if !ok {
		return RoleDistribution{}, fmt.Errorf("no distribution for %d players: %w", playerCount, ErrInvalidState)
	}
	return d, nil
}

// countRoles tallies the included roles by category. Travelers sit
// outside the distribution and are not counted.
func countRoles(roles []*Character) RoleDistribution {
	var counts RoleDistribution
	for _, r := range roles {
		switch r.Category {
		case CategoryTownsfolk:
			counts.Townsfolk++
		case CategoryOutsider:
			counts.Outsiders++
		case CategoryMinion:
			counts.Minions++
		case CategoryDemon:
			counts.Demons++
		}
	}
	return counts
}

// FreeSpace returns how many more roles of each class fit the base
// distribution for playerCount, after applying the setup changes of
// every included role (e.g. the Baron counts as two extra Outsiders
// already in play).
func FreeSpace(included []*Character, playerCount int) (RoleDistribution, error) {
	base, err := BaseDistribution(playerCount)
	if err != nil {
		return RoleDistribution{}, err
	}

	counts := countRoles(included)
	for _, r := range included {
		if r.Setup == nil {
			continue
		}
		counts.Townsfolk += r.Setup.Townsfolk
		counts.Outsiders += r.Setup.Outsiders
		counts.Minions += r.Setup.Minions
		counts.Demons += r.Setup.Demons
	}

	return RoleDistribution{
		Townsfolk: base.Townsfolk - counts.Townsfolk,
		Outsiders: base.Outsiders - counts.Outsiders,
		Minions:   base.Minions - counts.Minions,
		Demons:    base.Demons - counts.Demons,
	}, nil
}
