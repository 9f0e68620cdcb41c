package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// State is the session's lifecycle position.
type State string

const (
	// StateUninitialized means no script has been chosen yet.
	StateUninitialized State = "uninitialized"
	// StateRolesPending means a script is chosen but no role has been
	// included yet; players may already be seated.
	StateRolesPending State = "roles-pending"
	// StateInProgress means at least one role is included and players
	// may draw characters.
	StateInProgress State = "in-progress"
	// StateConcluded is terminal; the winner has been recorded.
	StateConcluded State = "concluded"
)

// Phase is the day/night sub-state while a game is in progress. It
// advances only by explicit storyteller action, never on a clock.
type Phase string

const (
	PhaseNight Phase = "night"
	PhaseDay   Phase = "day"
)

// Session is the authoritative state of one game: the chosen script,
// the storyteller-curated included-role pool, the seated players, and
// every active status effect. A Session is not safe for concurrent
// use on its own; the Manager serializes all access and is the only
// entry point for callers.
type Session struct {
	epoch   uuid.UUID
	catalog *Catalog
	script  *Script

	state State
	phase Phase
	// nights counts completed night phases, starting at 1 on game start
	nights int

	// included is the curated subset of the script's pool, in inclusion
	// order. Games deliberately start with an empty pool: the
	// storyteller controls exactly which characters are live.
	included []*Character

	// players in seating order; byKey indexes them by folded name
	players []*Player
	byKey   map[string]*Player

	winner Alignment

	// revealReady flips once every seated non-traveler has a character.
	revealReady bool

	rng *rand.Rand
}

func newSession(catalog *Catalog, script *Script, rng *rand.Rand) *Session {
	return &Session{
		epoch:   uuid.New(),
		catalog: catalog,
		script:  script,
		state:   StateRolesPending,
		phase:   PhaseNight,
		nights:  1,
		byKey:   map[string]*Player{},
		rng:     rng,
	}
}

func (s *Session) Epoch() uuid.UUID {
	return s.epoch
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Phase() Phase {
	return s.phase
}

// player looks a player up by name.
func (s *Session) player(name string) (*Player, error) {
	p, ok := s.byKey[NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("player %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// includeRole adds a character from the script's pool to the live set.
func (s *Session) includeRole(name string) error {
	if s.state != StateRolesPending && s.state != StateInProgress {
		return ErrInvalidState
	}

	char, err := s.catalog.Lookup(name)
	if err != nil {
		return err
	}
	if !s.script.HasCharacter(char.Name) {
		return fmt.Errorf("character %q is not on script %q: %w", char.Name, s.script.Name, ErrNotFound)
	}

	for _, inc := range s.included {
		if inc.MatchName(char.Name) {
			return fmt.Errorf("role %q: %w", char.Name, ErrDuplicate)
		}
	}

	s.included = append(s.included, char)
	if s.state == StateRolesPending {
		s.state = StateInProgress
	}
	return nil
}

// excludeRole removes a character from the live set. Excluding a role
// already held by a living player is a conflict; the player must die
// or be removed first.
func (s *Session) excludeRole(name string) error {
	if s.state != StateRolesPending && s.state != StateInProgress {
		return ErrInvalidState
	}

	for i, inc := range s.included {
		if !inc.MatchName(name) {
			continue
		}

		for _, p := range s.players {
			if p.Character != nil && p.Character.MatchName(name) && p.Alive {
				return fmt.Errorf("role %q is held by living player %q: %w", inc.Name, p.Name, ErrConflict)
			}
		}

		s.included = append(s.included[:i], s.included[i+1:]...)
		return nil
	}

	return fmt.Errorf("role %q: %w", name, ErrNotFound)
}

// addPlayer seats a new player. Names are unique under case folding.
func (s *Session) addPlayer(name string) (*Player, error) {
	if s.state != StateRolesPending && s.state != StateInProgress {
		return nil, ErrInvalidState
	}

	key := NormalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("player name must not be empty: %w", ErrInvalidState)
	}
	if _, ok := s.byKey[key]; ok {
		return nil, fmt.Errorf("player %q: %w", name, ErrDuplicate)
	}

	p := newPlayer(name)
	s.players = append(s.players, p)
	s.byKey[key] = p
	s.revealReady = false
	return p, nil
}

// addTraveler seats a player and assigns a traveler character
// directly from the catalog; travelers bypass the included pool.
func (s *Session) addTraveler(name, characterName string) (*Player, error) {
	char, err := s.catalog.Lookup(characterName)
	if err != nil {
		return nil, err
	}
	if char.Category != CategoryTraveler {
		return nil, fmt.Errorf("character %q is not a traveler: %w", char.Name, ErrInvalidState)
	}

	p, err := s.addPlayer(name)
	if err != nil {
		return nil, err
	}
	p.assignCharacter(char)
	s.refreshRevealReady()
	return p, nil
}

// removePlayer unseats a player entirely and drops every effect they
// were the source of. Concluded games keep their final seating.
func (s *Session) removePlayer(name string) error {
	if s.state != StateRolesPending && s.state != StateInProgress {
		return ErrInvalidState
	}

	key := NormalizeName(name)
	p, ok := s.byKey[key]
	if !ok {
		return fmt.Errorf("player %q: %w", name, ErrNotFound)
	}

	delete(s.byKey, key)
	for i, seated := range s.players {
		if seated == p {
			s.players = append(s.players[:i], s.players[i+1:]...)
			break
		}
	}

	s.cascadeRemoveBySource(key)
	s.refreshRevealReady()
	return nil
}

// assignCharacter gives a player a specific role from the included
// pool. Used for storyteller corrections; normal distribution goes
// through drawCharacter.
func (s *Session) assignCharacter(name, characterName string) error {
	p, err := s.player(name)
	if err != nil {
		return err
	}

	var char *Character
	for _, inc := range s.included {
		if inc.MatchName(characterName) {
			char = inc
			break
		}
	}
	if char == nil {
		return fmt.Errorf("character %q is not in the included pool: %w", characterName, ErrInvalidState)
	}

	if p.Character != nil {
		// Role change: effects sourced by the old ability die with it.
		s.cascadeRemoveBySource(p.Key())
	}

	p.assignCharacter(char)
	s.refreshRevealReady()
	return nil
}

// drawCharacter deals the player a uniformly random role from the
// included pool, without replacement (roles held by other players are
// excluded). Fails with ErrInvalidState when the pool is exhausted.
func (s *Session) drawCharacter(name string) (*Character, error) {
	if s.state != StateInProgress {
		return nil, ErrInvalidState
	}

	p, err := s.player(name)
	if err != nil {
		return nil, err
	}

	taken := map[string]bool{}
	for _, other := range s.players {
		if other != p && other.Character != nil {
			taken[NormalizeName(other.Character.Name)] = true
		}
	}

	var pool []*Character
	for _, inc := range s.included {
		if !taken[NormalizeName(inc.Name)] {
			pool = append(pool, inc)
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("included pool exhausted: %w", ErrInvalidState)
	}

	char := pool[s.rng.Intn(len(pool))]
	if p.Character != nil {
		s.cascadeRemoveBySource(p.Key())
	}
	p.assignCharacter(char)
	s.refreshRevealReady()
	return char, nil
}

// refreshRevealReady recomputes the role-reveal flag: every seated
// player holds a character.
func (s *Session) refreshRevealReady() {
	if len(s.players) == 0 {
		s.revealReady = false
		return
	}
	for _, p := range s.players {
		if p.Character == nil {
			s.revealReady = false
			return
		}
	}
	s.revealReady = true
}

// setAlive flips a player's alive state. Dying cascades away every
// effect the player sourced and, unless the character acts while
// dead, their own standing effects too.
func (s *Session) setAlive(name string, alive bool) error {
	p, err := s.player(name)
	if err != nil {
		return err
	}

	if p.Alive == alive {
		return nil
	}
	p.Alive = alive

	if alive {
		// Resurrection restores the unspent dead vote.
		p.UsedDeadVote = false
		return nil
	}

	s.cascadeRemoveBySource(p.Key())
	if p.Character == nil || !p.Character.ActsWhileDead {
		p.effects = p.effects[:0]
	}
	return nil
}

// cascadeRemoveBySource clears every effect sourced by the given
// player key, across all players. One level only: sources chain
// through player identity, never through effects, so a cascade can't
// recurse. Idempotent.
func (s *Session) cascadeRemoveBySource(source string) int {
	removed := 0
	for _, p := range s.players {
		removed += p.removeEffectsBySource(source)
	}
	return removed
}

// applyEffect puts an effect of the given kind on a player. An empty
// source attributes it to the storyteller.
func (s *Session) applyEffect(name string, kind EffectKind, source string) (*Effect, error) {
	if kind == "" {
		return nil, fmt.Errorf("effect kind must not be empty: %w", ErrInvalidState)
	}

	p, err := s.player(name)
	if err != nil {
		return nil, err
	}

	if source == "" {
		source = SourceStoryteller
	} else if source != SourceStoryteller {
		src := NormalizeName(source)
		if _, ok := s.byKey[src]; !ok {
			return nil, fmt.Errorf("effect source %q: %w", source, ErrNotFound)
		}
		source = src
	}

	return p.applyEffect(kind, source), nil
}

// removeEffect takes an effect kind off a player. Missing effects are
// a no-op so removal can always be called speculatively.
func (s *Session) removeEffect(name string, kind EffectKind) error {
	p, err := s.player(name)
	if err != nil {
		return err
	}

	p.removeEffect(kind)
	return nil
}

// advancePhase toggles Night and Day. Nothing runs automatically on
// the transition; the storyteller drives every per-phase action.
func (s *Session) advancePhase() (Phase, error) {
	if s.state != StateInProgress {
		return "", ErrInvalidState
	}

	if s.phase == PhaseNight {
		s.phase = PhaseDay
	} else {
		s.phase = PhaseNight
		s.nights++
	}
	return s.phase, nil
}

// conclude ends the game and records the winner. The engine never
// computes victory itself; whether "no outs remain" is storyteller
// judgment.
func (s *Session) conclude(winner Alignment) error {
	if s.state != StateInProgress {
		return ErrInvalidState
	}
	if winner != AlignmentGood && winner != AlignmentEvil {
		return fmt.Errorf("winner must be good or evil: %w", ErrInvalidState)
	}

	s.state = StateConcluded
	s.winner = winner
	return nil
}

// livingPlayerCount counts players currently alive.
func (s *Session) livingPlayerCount() int {
	n := 0
	for _, p := range s.players {
		if p.Alive {
			n++
		}
	}
	return n
}

// executionThreshold is the minimum vote count to put a nominee on
// the block: half the living players, rounded up.
func executionThreshold(livingPlayers int) int {
	return (livingPlayers + 1) / 2
}

// checkExecution reports whether voteCount reaches the execution
// threshold for the given living player count. Tie handling across
// multiple nominees is the caller's comparison; this validates a
// single candidate.
func checkExecution(voteCount, livingPlayers int) bool {
	if livingPlayers == 0 {
		return false
	}
	return voteCount >= executionThreshold(livingPlayers)
}

// distributionPlayerCount counts seated players who figure into the
// base role distribution (travelers don't).
func (s *Session) distributionPlayerCount() int {
	n := 0
	for _, p := range s.players {
		if p.CountsForDistribution() {
			n++
		}
	}
	return n
}

// freeSpace reports how much of the base distribution is still
// unfilled by the included pool.
func (s *Session) freeSpace() (RoleDistribution, error) {
	return FreeSpace(s.included, s.distributionPlayerCount())
}
