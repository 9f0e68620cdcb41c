package game

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestBaseDistribution(t *testing.T) {
	tests := map[string]struct {
		players int
		exp     RoleDistribution
		expErr  bool
	}{
		"five players":    {players: 5, exp: RoleDistribution{Townsfolk: 3, Outsiders: 0, Minions: 1, Demons: 1}},
		"seven players":   {players: 7, exp: RoleDistribution{Townsfolk: 5, Outsiders: 0, Minions: 1, Demons: 1}},
		"ten players":     {players: 10, exp: RoleDistribution{Townsfolk: 7, Outsiders: 0, Minions: 2, Demons: 1}},
		"fifteen players": {players: 15, exp: RoleDistribution{Townsfolk: 9, Outsiders: 2, Minions: 3, Demons: 1}},
		"too few":         {players: 4, expErr: true},
		"too many":        {players: 16, expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := BaseDistribution(tt.players)

			if tt.expErr {
				if !errors.Is(err, ErrInvalidState) {
					t.Errorf("expected ErrInvalidState, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "distribution", d, tt.exp)
		})
	}
}

func TestFreeSpace(t *testing.T) {
	chars := testCharacters()

	tests := map[string]struct {
		included []*Character
		players  int
		exp      RoleDistribution
	}{
		"empty pool": {
			players: 7,
			exp:     RoleDistribution{Townsfolk: 5, Outsiders: 0, Minions: 1, Demons: 1},
		},
		"demon and minion in": {
			included: []*Character{chars["imp"], chars["poisoner"]},
			players:  7,
			exp:      RoleDistribution{Townsfolk: 5, Outsiders: 0, Minions: 0, Demons: 0},
		},
		"baron shifts outsider budget": {
			included: []*Character{chars["imp"], chars["baron"]},
			players:  8,
			exp:      RoleDistribution{Townsfolk: 5, Outsiders: -1, Minions: 0, Demons: 0},
		},
		"travelers not counted": {
			included: []*Character{chars["imp"], chars["thief"]},
			players:  7,
			exp:      RoleDistribution{Townsfolk: 5, Outsiders: 0, Minions: 1, Demons: 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			space, err := FreeSpace(tt.included, tt.players)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "free space", space, tt.exp)
		})
	}
}
