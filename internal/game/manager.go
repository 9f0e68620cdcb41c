package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SnapshotSink receives a state snapshot after every committed
// mutation. Delivery happens outside the critical section, on data
// copied out beforehand; a slow or absent sink can never stall the
// session.
type SnapshotSink interface {
	PublishSnapshot(Snapshot)
}

// Manager is the single-writer gate in front of the one live session.
// Every operation runs its whole read-modify-write under one mutex
// acquisition, and every operation is keyed by the epoch token issued
// at NewGame: once a newer game replaces the session, stale handles
// are rejected with ErrInvalidState instead of silently mutating the
// wrong game.
type Manager struct {
	mu sync.Mutex

	catalog *Catalog
	scripts *Registry
	session *Session

	sink SnapshotSink
	rng  *rand.Rand

	// waiters holds role-reveal waiters; commit closes the channel when
	// the flag flips true or the session is replaced.
	waiters []chan struct{}
}

// ManagerOpt configures a Manager.
type ManagerOpt func(*Manager)

// WithSnapshotSink sets the post-commit snapshot consumer.
func WithSnapshotSink(sink SnapshotSink) ManagerOpt {
	return func(m *Manager) {
		m.sink = sink
	}
}

// WithRand sets the random source used for character draws.
func WithRand(rng *rand.Rand) ManagerOpt {
	return func(m *Manager) {
		m.rng = rng
	}
}

func NewManager(catalog *Catalog, scripts *Registry, opts ...ManagerOpt) *Manager {
	m := &Manager{
		catalog: catalog,
		scripts: scripts,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Scripts exposes the read-only script registry.
func (m *Manager) Scripts() *Registry {
	return m.scripts
}

// Catalog exposes the read-only character catalog.
func (m *Manager) Catalog() *Catalog {
	return m.catalog
}

// NewGame replaces any prior session with a fresh one on the named
// script and returns its snapshot, which carries the new epoch token.
// Valid from any state; the old game is discarded, not archived, and
// all of its outstanding handles and waits go stale.
func (m *Manager) NewGame(scriptName string) (Snapshot, error) {
	script, err := m.scripts.Get(scriptName)
	if err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	m.session = newSession(m.catalog, script, m.rng)
	m.wakeWaiters()
	snap := m.session.snapshot()
	m.mu.Unlock()

	m.publish(snap)
	return snap, nil
}

// mutate runs fn against the live session under the lock, then
// publishes a snapshot of the committed state outside it. The epoch
// must match the live session.
func (m *Manager) mutate(epoch uuid.UUID, fn func(*Session) error) error {
	m.mu.Lock()
	s, err := m.checkedSession(epoch)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	if err := fn(s); err != nil {
		m.mu.Unlock()
		return err
	}

	if s.revealReady {
		m.wakeWaiters()
	}
	snap := s.snapshot()
	m.mu.Unlock()

	m.publish(snap)
	return nil
}

// view runs fn read-only against the live session under the lock.
func (m *Manager) view(epoch uuid.UUID, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.checkedSession(epoch)
	if err != nil {
		return err
	}
	return fn(s)
}

// checkedSession returns the live session iff epoch matches. Callers
// hold the lock.
func (m *Manager) checkedSession(epoch uuid.UUID) (*Session, error) {
	if m.session == nil {
		return nil, ErrInvalidState
	}
	if m.session.epoch != epoch {
		return nil, ErrInvalidState
	}
	return m.session, nil
}

func (m *Manager) publish(snap Snapshot) {
	if m.sink != nil {
		m.sink.PublishSnapshot(snap)
	}
}

// wakeWaiters wakes every registered waiter. Callers hold the lock;
// woken waiters re-check their condition under the lock themselves.
func (m *Manager) wakeWaiters() {
	for _, ch := range m.waiters {
		close(ch)
	}
	m.waiters = nil
}

// ListScripts returns summaries of all registered scripts.
func (m *Manager) ListScripts() []ScriptSummary {
	return m.scripts.List()
}

// IncludeRoles adds a batch of roles to the live pool. The batch is
// not atomic: each role is validated and added in order, and the
// first failure stops the batch with prior additions kept.
func (m *Manager) IncludeRoles(epoch uuid.UUID, names []string) error {
	return m.mutate(epoch, func(s *Session) error {
		for _, name := range names {
			if err := s.includeRole(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExcludeRole removes a role from the live pool.
func (m *Manager) ExcludeRole(epoch uuid.UUID, name string) error {
	return m.mutate(epoch, func(s *Session) error {
		return s.excludeRole(name)
	})
}

// AddPlayer seats a new player.
func (m *Manager) AddPlayer(epoch uuid.UUID, name string) error {
	return m.mutate(epoch, func(s *Session) error {
		_, err := s.addPlayer(name)
		return err
	})
}

// AddTraveler seats a player holding a traveler character.
func (m *Manager) AddTraveler(epoch uuid.UUID, name, characterName string) error {
	return m.mutate(epoch, func(s *Session) error {
		_, err := s.addTraveler(name, characterName)
		return err
	})
}

// RemovePlayer unseats a player.
func (m *Manager) RemovePlayer(epoch uuid.UUID, name string) error {
	return m.mutate(epoch, func(s *Session) error {
		return s.removePlayer(name)
	})
}

// GetPlayer returns a copy of one player's state.
func (m *Manager) GetPlayer(epoch uuid.UUID, name string) (PlayerSnapshot, error) {
	var out PlayerSnapshot
	err := m.view(epoch, func(s *Session) error {
		p, err := s.player(name)
		if err != nil {
			return err
		}
		out = PlayerSnapshot{
			Name:         p.Name,
			Alignment:    p.Alignment,
			Alive:        p.Alive,
			UsedDeadVote: p.UsedDeadVote,
		}
		if p.Character != nil {
			out.Character = p.Character.Name
		}
		for _, e := range p.effects {
			out.Effects = append(out.Effects, EffectSnapshot{Kind: e.Kind, Source: e.Source})
		}
		return nil
	})
	return out, err
}

// ListPlayers returns copies of all seated players in seating order.
func (m *Manager) ListPlayers(epoch uuid.UUID) ([]PlayerSnapshot, error) {
	var out []PlayerSnapshot
	err := m.view(epoch, func(s *Session) error {
		out = s.snapshot().Players
		return nil
	})
	return out, err
}

// AssignCharacter gives a player a specific role from the included pool.
func (m *Manager) AssignCharacter(epoch uuid.UUID, name, characterName string) error {
	return m.mutate(epoch, func(s *Session) error {
		return s.assignCharacter(name, characterName)
	})
}

// DrawCharacter deals a player a random unassigned role from the pool.
func (m *Manager) DrawCharacter(epoch uuid.UUID, name string) (string, error) {
	var drawn string
	err := m.mutate(epoch, func(s *Session) error {
		char, err := s.drawCharacter(name)
		if err != nil {
			return err
		}
		drawn = char.Name
		return nil
	})
	return drawn, err
}

// SetAlive flips a player's alive state, cascading effect removal on death.
func (m *Manager) SetAlive(epoch uuid.UUID, name string, alive bool) error {
	return m.mutate(epoch, func(s *Session) error {
		return s.setAlive(name, alive)
	})
}

// SetAlignment overrides a player's alignment for role changes.
func (m *Manager) SetAlignment(epoch uuid.UUID, name string, alignment Alignment) error {
	return m.mutate(epoch, func(s *Session) error {
		if alignment != AlignmentGood && alignment != AlignmentEvil {
			return ErrInvalidState
		}
		p, err := s.player(name)
		if err != nil {
			return err
		}
		p.Alignment = alignment
		return nil
	})
}

// ApplyStatusEffect puts an effect on a player. An empty source
// attributes the effect to the storyteller; otherwise source must
// name a seated player.
func (m *Manager) ApplyStatusEffect(epoch uuid.UUID, name string, kind EffectKind, source string) error {
	return m.mutate(epoch, func(s *Session) error {
		_, err := s.applyEffect(name, kind, source)
		return err
	})
}

// RemoveStatusEffect takes an effect kind off a player; a no-op when
// the effect isn't present.
func (m *Manager) RemoveStatusEffect(epoch uuid.UUID, name string, kind EffectKind) error {
	return m.mutate(epoch, func(s *Session) error {
		return s.removeEffect(name, kind)
	})
}

// IsEffectActive reports whether a player holds an effect of the kind.
func (m *Manager) IsEffectActive(epoch uuid.UUID, name string, kind EffectKind) (bool, error) {
	var active bool
	err := m.view(epoch, func(s *Session) error {
		p, err := s.player(name)
		if err != nil {
			return err
		}
		active = p.IsActive(kind)
		return nil
	})
	return active, err
}

// ResolveAbility runs the gating rules for one player's ability.
func (m *Manager) ResolveAbility(epoch uuid.UUID, name string) (Resolution, error) {
	var res Resolution
	err := m.view(epoch, func(s *Session) error {
		var err error
		res, err = s.resolveAbility(name)
		return err
	})
	return res, err
}

// RecordDeadVote spends a dead player's single remaining vote.
func (m *Manager) RecordDeadVote(epoch uuid.UUID, name string) error {
	return m.mutate(epoch, func(s *Session) error {
		p, err := s.player(name)
		if err != nil {
			return err
		}
		return p.useDeadVote()
	})
}

// AdvancePhase toggles Night and Day.
func (m *Manager) AdvancePhase(epoch uuid.UUID) (Phase, error) {
	var phase Phase
	err := m.mutate(epoch, func(s *Session) error {
		var err error
		phase, err = s.advancePhase()
		return err
	})
	return phase, err
}

// Conclude ends the game, recording the winning team.
func (m *Manager) Conclude(epoch uuid.UUID, winner Alignment) error {
	return m.mutate(epoch, func(s *Session) error {
		return s.conclude(winner)
	})
}

// ExecutionThreshold returns the votes needed to reach the block with
// the current living player count.
func (m *Manager) ExecutionThreshold(epoch uuid.UUID) (int, error) {
	var threshold int
	err := m.view(epoch, func(s *Session) error {
		threshold = executionThreshold(s.livingPlayerCount())
		return nil
	})
	return threshold, err
}

// CheckExecution reports whether a single candidate's vote count
// reaches the threshold. Ties between candidates are the caller's
// comparison.
func (m *Manager) CheckExecution(epoch uuid.UUID, candidateVotes int) (bool, error) {
	var executes bool
	err := m.view(epoch, func(s *Session) error {
		executes = checkExecution(candidateVotes, s.livingPlayerCount())
		return nil
	})
	return executes, err
}

// FreeSpace reports how much of the base role distribution the
// included pool still leaves open.
func (m *Manager) FreeSpace(epoch uuid.UUID) (RoleDistribution, error) {
	var space RoleDistribution
	err := m.view(epoch, func(s *Session) error {
		var err error
		space, err = s.freeSpace()
		return err
	})
	return space, err
}

// Snapshot copies the live session regardless of epoch. Returns
// ErrInvalidState when no game has been started.
func (m *Manager) Snapshot() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return Snapshot{}, ErrInvalidState
	}
	return m.session.snapshot(), nil
}

// WaitRoleReveal blocks until every seated player holds a character,
// the timeout passes (ErrTimeout), ctx is done, or the session is
// replaced (ErrInvalidState). Waits are pure reads gated by the same
// lock as writers; a canceled wait leaves no state behind.
func (m *Manager) WaitRoleReveal(ctx context.Context, epoch uuid.UUID, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		m.mu.Lock()
		s, err := m.checkedSession(epoch)
		if err != nil {
			m.mu.Unlock()
			return err
		}
		if s.revealReady {
			m.mu.Unlock()
			return nil
		}

		wake := make(chan struct{})
		m.waiters = append(m.waiters, wake)
		m.mu.Unlock()

		select {
		case <-wake:
			// Re-check the flag; the wake may have been a session swap.
		case <-deadline.C:
			return ErrTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
