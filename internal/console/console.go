package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/deathsdoor/deathsdoor/internal/game"
	"github.com/deathsdoor/deathsdoor/internal/overlay"
)

const banner = "Death's Door storyteller console\nType 'help' for commands.\n"

// errQuit signals a clean session end from the quit command.
var errQuit = errors.New("quit")

// CuePublisher plays sound cues and lighting scenes for moments the
// storyteller triggers from the console.
type CuePublisher interface {
	PublishSound(cue string)
	PublishLight(scene string)
}

// Console runs storyteller sessions against the shared game manager.
type Console struct {
	mgr          *game.Manager
	timer        *overlay.Timer
	cues         CuePublisher
	passwordHash string
	rng          *rand.Rand
}

type ConsoleOpt func(*Console)

// WithPasswordHash gates sessions behind a bcrypt hash. An empty hash
// leaves the console open.
func WithPasswordHash(hash string) ConsoleOpt {
	return func(c *Console) {
		c.passwordHash = hash
	}
}

func WithRand(rng *rand.Rand) ConsoleOpt {
	return func(c *Console) {
		c.rng = rng
	}
}

func NewConsole(mgr *game.Manager, timer *overlay.Timer, cues CuePublisher, opts ...ConsoleOpt) *Console {
	c := &Console{
		mgr:   mgr,
		timer: timer,
		cues:  cues,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunSession drives one storyteller connection until it quits, the
// connection drops, or the context is canceled.
func (c *Console) RunSession(ctx context.Context, conn io.ReadWriter) error {
	rw := newCRLFReadWriter(conn)
	br := bufio.NewReader(rw)

	_, err := rw.Write([]byte(banner))
	if err != nil {
		return err
	}

	if c.passwordHash != "" {
		_, err = prompt(rw, br, "Password: ",
			withMaxTries(3),
			withValidator(func(str string) (bool, string) {
				err := bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(str))
				if err != nil {
					return false, "wrong password\n"
				}
				return true, ""
			}),
		)
		if err != nil {
			return fmt.Errorf("authenticating: %w", err)
		}
	}

	sess := &session{console: c}

	// Adopt the running game, if any, so a reconnecting storyteller
	// doesn't have to start over.
	if snap, err := c.mgr.Snapshot(); err == nil {
		sess.epoch = snap.Epoch
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := prompt(rw, br, "> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		out, err := sess.dispatch(ctx, line)
		if err != nil {
			if errors.Is(err, errQuit) {
				rw.Write([]byte("Goodbye.\n"))
				return nil
			}
			rw.Write([]byte(userMessage(err) + "\n"))
			continue
		}
		if out != "" {
			rw.Write([]byte(out))
		}
	}
}

// userMessage folds the engine's error taxonomy into storyteller-facing
// text. Unknown errors pass through as-is.
func userMessage(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}

	switch {
	case errors.Is(err, game.ErrNotFound):
		return fmt.Sprintf("Not found: %s", err)
	case errors.Is(err, game.ErrDuplicate):
		return fmt.Sprintf("Already there: %s", err)
	case errors.Is(err, game.ErrInvalidState):
		return fmt.Sprintf("Can't do that right now: %s", err)
	case errors.Is(err, game.ErrConflict):
		return fmt.Sprintf("Conflict: %s", err)
	case errors.Is(err, game.ErrTimeout):
		return "Timed out waiting."
	default:
		return fmt.Sprintf("Error: %s", err)
	}
}
