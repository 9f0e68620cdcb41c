package game

import (
	"math/rand"
	"testing"

	"github.com/deathsdoor/deathsdoor/internal/storage"
)

// fakeStore implements storage.Getter over a plain map.
type fakeStore map[storage.Identifier]*Character

func (f fakeStore) Get(id storage.Identifier) *Character {
	return f[id]
}

func (f fakeStore) GetAll() map[storage.Identifier]*Character {
	out := map[storage.Identifier]*Character{}
	for id, c := range f {
		out[id] = c
	}
	return out
}

func testCharacters() fakeStore {
	return fakeStore{
		"imp": {
			Name: "Imp", Ability: "Each night*, choose a player: they die.",
			Category: CategoryDemon, Alignment: AlignmentEvil,
			OtherNightAction: true,
		},
		"poisoner": {
			Name: "Poisoner", Ability: "Each night, choose a player: their ability malfunctions.",
			Category: CategoryMinion, Alignment: AlignmentEvil,
			Reminders:        []string{"Poisoned"},
			FirstNightAction: true, OtherNightAction: true,
		},
		"baron": {
			Name: "Baron", Ability: "You have no ability. [There are 2 extra Outsiders in play]",
			Category: CategoryMinion, Alignment: AlignmentEvil,
			Setup: &SetupChanges{Outsiders: 2},
		},
		"scarlet-woman": {
			Name: "Scarlet Woman", Ability: "If the Demon dies, you become the Demon.",
			Category: CategoryMinion, Alignment: AlignmentEvil,
			Reminders:        []string{"Is the Demon"},
			OtherNightAction: true,
		},
		"monk": {
			Name: "Monk", Ability: "Each night*, choose a player: they are safe from the Demon tonight.",
			Category: CategoryTownsfolk, Alignment: AlignmentGood,
			Reminders:        []string{"Safe"},
			OtherNightAction: true,
		},
		"ravenkeeper": {
			Name: "Ravenkeeper", Ability: "If you die at night, you learn one player's character.",
			Category: CategoryTownsfolk, Alignment: AlignmentGood,
			OtherNightAction: true, ActsWhileDead: true,
		},
		"soldier": {
			Name: "Soldier", Ability: "You are safe from the Demon.",
			Category: CategoryTownsfolk, Alignment: AlignmentGood,
		},
		"mayor": {
			Name: "Mayor", Ability: "If only 3 players live and no execution occurs, your team wins.",
			Category: CategoryTownsfolk, Alignment: AlignmentGood,
		},
		"recluse": {
			Name: "Recluse", Ability: "You might register as evil.",
			Category: CategoryOutsider, Alignment: AlignmentGood,
		},
		"drunk": {
			Name: "Drunk", Ability: "You think you are a Townsfolk, but your ability malfunctions.",
			Category: CategoryOutsider, Alignment: AlignmentGood,
			Reminders: []string{"Is the Drunk"},
		},
		"thief": {
			Name: "Thief", Ability: "Each night, choose a player: their vote counts negatively tomorrow.",
			Category: CategoryTraveler, Alignment: AlignmentUnknown,
			FirstNightAction: true, OtherNightAction: true,
		},
	}
}

func testScript() *Script {
	return &Script{
		Name: "Trouble Brewing",
		Characters: []string{
			"Imp", "Poisoner", "Baron", "Scarlet Woman",
			"Monk", "Ravenkeeper", "Soldier", "Mayor",
			"Recluse", "Drunk",
		},
		FirstNight: []NightStep{
			{Name: "Dusk", Description: "Check that all eyes are closed.", AlwaysShow: true},
			{Name: "Poisoner", Description: "The Poisoner chooses a player."},
			{Name: "Dawn", Description: "Call for eyes open.", AlwaysShow: true},
		},
		OtherNight: []NightStep{
			{Name: "Dusk", Description: "Check that all eyes are closed.", AlwaysShow: true},
			{Name: "Poisoner", Description: "The Poisoner chooses a player."},
			{Name: "Monk", Description: "The Monk chooses a player."},
			{Name: "Imp", Description: "The Imp chooses a player."},
			{Name: "Dawn", Description: "Call for eyes open.", AlwaysShow: true},
		},
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	catalog, err := NewCatalog(testCharacters())
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return catalog
}

func testRegistry(t *testing.T) (*Catalog, *Registry) {
	t.Helper()

	catalog := testCatalog(t)
	registry := NewRegistry(catalog)
	if err := registry.Register(testScript()); err != nil {
		t.Fatalf("registering script: %v", err)
	}
	return catalog, registry
}

// testSession builds a session directly, bypassing the manager, for
// exercising the state machine on its own.
func testSession(t *testing.T) *Session {
	t.Helper()

	catalog := testCatalog(t)
	return newSession(catalog, testScript(), rand.New(rand.NewSource(1)))
}
