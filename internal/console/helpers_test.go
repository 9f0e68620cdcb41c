package console

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/deathsdoor/deathsdoor/internal/game"
	"github.com/deathsdoor/deathsdoor/internal/messaging"
	"github.com/deathsdoor/deathsdoor/internal/overlay"
	"github.com/deathsdoor/deathsdoor/internal/storage"
)

// fakeStore implements storage.Getter over a plain map.
type fakeStore map[storage.Identifier]*game.Character

func (f fakeStore) Get(id storage.Identifier) *game.Character {
	return f[id]
}

func (f fakeStore) GetAll() map[storage.Identifier]*game.Character {
	out := map[storage.Identifier]*game.Character{}
	for id, c := range f {
		out[id] = c
	}
	return out
}

func testCharacters() fakeStore {
	return fakeStore{
		"imp": {
			Name: "Imp", Ability: "Each night*, choose a player: they die.",
			Category: game.CategoryDemon, Alignment: game.AlignmentEvil,
			OtherNightAction: true,
		},
		"poisoner": {
			Name: "Poisoner", Ability: "Each night, choose a player: their ability malfunctions.",
			Category: game.CategoryMinion, Alignment: game.AlignmentEvil,
			FirstNightAction: true, OtherNightAction: true,
		},
		"monk": {
			Name: "Monk", Ability: "Each night*, choose a player: they are safe from the Demon tonight.",
			Category: game.CategoryTownsfolk, Alignment: game.AlignmentGood,
			OtherNightAction: true,
		},
		"soldier": {
			Name: "Soldier", Ability: "You are safe from the Demon.",
			Category: game.CategoryTownsfolk, Alignment: game.AlignmentGood,
		},
		"mayor": {
			Name: "Mayor", Ability: "If only 3 players live and no execution occurs, your team wins.",
			Category: game.CategoryTownsfolk, Alignment: game.AlignmentGood,
		},
		"thief": {
			Name: "Thief", Ability: "Each night, choose a player: their vote counts negatively tomorrow.",
			Category: game.CategoryTraveler, Alignment: game.AlignmentUnknown,
			FirstNightAction: true, OtherNightAction: true,
		},
	}
}

func testScript() *game.Script {
	return &game.Script{
		Name:       "Trouble Brewing",
		Characters: []string{"Imp", "Poisoner", "Monk", "Soldier", "Mayor"},
		FirstNight: []game.NightStep{
			{Name: "Dusk", Description: "Check that all eyes are closed.", AlwaysShow: true},
			{Name: "Poisoner", Description: "The Poisoner chooses a player."},
			{Name: "Dawn", Description: "Call for eyes open.", AlwaysShow: true},
		},
		OtherNight: []game.NightStep{
			{Name: "Dusk", Description: "Check that all eyes are closed.", AlwaysShow: true},
			{Name: "Monk", Description: "The Monk chooses a player."},
			{Name: "Imp", Description: "The Imp chooses a player."},
			{Name: "Dawn", Description: "Call for eyes open.", AlwaysShow: true},
		},
	}
}

// fakeCues records published sound cues and lighting scenes.
type fakeCues struct {
	mu     sync.Mutex
	cues   []string
	scenes []string
}

func (f *fakeCues) PublishSound(cue string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cues = append(f.cues, cue)
}

func (f *fakeCues) PublishLight(scene string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scenes = append(f.scenes, scene)
}

func (f *fakeCues) played() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.cues...)
}

func (f *fakeCues) lit() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.scenes...)
}

// quietPub satisfies the timer's publisher without a bus.
type quietPub struct{}

func (quietPub) Publish(subject string, data []byte) error { return nil }

func testConsole(t *testing.T) (*Console, *fakeCues) {
	t.Helper()

	catalog, err := game.NewCatalog(testCharacters())
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	registry := game.NewRegistry(catalog)
	if err := registry.Register(testScript()); err != nil {
		t.Fatalf("registering script: %v", err)
	}

	mgr := game.NewManager(catalog, registry, game.WithRand(rand.New(rand.NewSource(1))))
	cues := &fakeCues{}
	timer := overlay.NewTimer(messaging.NewStatePublisher(quietPub{}))
	c := NewConsole(mgr, timer, cues, WithRand(rand.New(rand.NewSource(1))))
	return c, cues
}

// testSession starts a game and returns a console session bound to it.
func testSession(t *testing.T) (*session, *fakeCues) {
	t.Helper()

	c, cues := testConsole(t)
	snap, err := c.mgr.NewGame("Trouble Brewing")
	if err != nil {
		t.Fatalf("starting game: %v", err)
	}
	return &session{console: c, epoch: snap.Epoch}, cues
}
