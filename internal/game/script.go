package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// NightStep is one entry in a script's night order. Steps for roles
// not in play are skipped unless AlwaysShow is set (Dusk, Dawn, and
// the info steps are shown regardless).
type NightStep struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AlwaysShow  bool   `json:"always_show,omitempty"`
}

// Script is a named bundle of characters forming a game variant,
// together with its first-night and other-night orders. Scripts are
// registered at startup and immutable afterward.
type Script struct {
	// Name is the display name (e.g. "Trouble Brewing")
	Name string `json:"name"`

	// Characters lists the catalog names of every role on the script
	Characters []string `json:"characters"`

	FirstNight []NightStep `json:"first_night"`
	OtherNight []NightStep `json:"other_night"`
}

func (s *Script) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if len(s.Characters) == 0 {
		el.Add(fmt.Errorf("at least one character is required"))
	}

	seen := map[string]bool{}
	for _, name := range s.Characters {
		key := NormalizeName(name)
		if seen[key] {
			el.Add(fmt.Errorf("character %q listed twice", name))
		}
		seen[key] = true
	}

	return el.Err()
}

// HasCharacter returns true if the named character is on the script.
func (s *Script) HasCharacter(name string) bool {
	key := NormalizeName(name)
	for _, c := range s.Characters {
		if NormalizeName(c) == key {
			return true
		}
	}
	return false
}
