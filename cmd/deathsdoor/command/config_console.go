package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/deathsdoor/deathsdoor/internal/console"
	"github.com/deathsdoor/deathsdoor/internal/game"
	"github.com/deathsdoor/deathsdoor/internal/overlay"
)

type ConsoleConfig struct {
	Port uint16 `json:"port"`

	// PasswordHash is a bcrypt hash. When empty the console accepts
	// anyone who can reach the port.
	PasswordHash string `json:"password_hash,omitempty"`
}

func (c *ConsoleConfig) validate() error {
	el := errors.NewErrorList()

	if c.Port == 0 {
		el.Add(fmt.Errorf("console port must be set to a positive integer"))
	}

	if c.PasswordHash != "" {
		_, err := bcrypt.Cost([]byte(c.PasswordHash))
		if err != nil {
			el.Add(fmt.Errorf("password_hash is not a bcrypt hash: %w", err))
		}
	}

	return el.Err()
}

func (c *ConsoleConfig) BuildListener(mgr *game.Manager, timer *overlay.Timer, cues console.CuePublisher) *console.TelnetListener {
	cons := console.NewConsole(mgr, timer, cues, console.WithPasswordHash(c.PasswordHash))
	return console.NewTelnetListener(c.Port, console.NewConnectionManager(cons))
}
