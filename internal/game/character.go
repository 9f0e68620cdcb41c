package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
	"golang.org/x/text/cases"
)

// Alignment is the team a character fights for. Travelers start out
// unknown; the storyteller assigns them a side when they join.
type Alignment string

const (
	AlignmentGood    Alignment = "good"
	AlignmentEvil    Alignment = "evil"
	AlignmentUnknown Alignment = "unknown"
)

func (a Alignment) Valid() bool {
	switch a {
	case AlignmentGood, AlignmentEvil, AlignmentUnknown:
		return true
	}
	return false
}

// Category is the character's role class within a script.
type Category string

const (
	CategoryTownsfolk Category = "townsfolk"
	CategoryOutsider  Category = "outsider"
	CategoryMinion    Category = "minion"
	CategoryDemon     Category = "demon"
	CategoryTraveler  Category = "traveler"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTownsfolk, CategoryOutsider, CategoryMinion, CategoryDemon, CategoryTraveler:
		return true
	}
	return false
}

// SetupChanges adjusts the base role distribution while the character
// is in play (e.g. the Baron adds two Outsiders).
type SetupChanges struct {
	Townsfolk int `json:"townsfolk,omitempty"`
	Outsiders int `json:"outsiders,omitempty"`
	Minions   int `json:"minions,omitempty"`
	Demons    int `json:"demons,omitempty"`
}

// Character is a single catalog entry. Entries are loaded once at
// startup and never mutated; behavior differences between roles are
// expressed through the capability flags rather than per-role types.
type Character struct {
	// Name is the canonical display name (e.g. "Scarlet Woman")
	Name string `json:"name"`

	// Ability is the rulebook text of the character's ability
	Ability string `json:"ability"`

	Category  Category  `json:"category"`
	Alignment Alignment `json:"alignment"`

	// Setup holds the character's role-distribution modifier, if any
	Setup *SetupChanges `json:"setup,omitempty"`

	// Reminders are the reminder token labels that ship with the role
	Reminders []string `json:"reminders,omitempty"`

	// Capability flags interpreted by ability resolution and night order
	FirstNightAction bool `json:"first_night_action,omitempty"`
	OtherNightAction bool `json:"other_night_action,omitempty"`
	ActsWhileDead    bool `json:"acts_while_dead,omitempty"`
}

func (c *Character) Validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if c.Ability == "" {
		el.Add(fmt.Errorf("ability is required"))
	}
	if !c.Category.Valid() {
		el.Add(fmt.Errorf("unknown category %q", c.Category))
	}
	if !c.Alignment.Valid() {
		el.Add(fmt.Errorf("unknown alignment %q", c.Alignment))
	}

	return el.Err()
}

// MatchName returns true if name matches this character's canonical
// name, ignoring case and surrounding whitespace.
func (c *Character) MatchName(name string) bool {
	return NormalizeName(c.Name) == NormalizeName(name)
}

// HasSetupChanges reports whether the character modifies the base role
// distribution during setup.
func (c *Character) HasSetupChanges() bool {
	return c.Setup != nil
}

// ReminderCount returns the number of reminder tokens the role ships with.
func (c *Character) ReminderCount() int {
	return len(c.Reminders)
}

var nameFolder = cases.Fold()

// NormalizeName folds a player or character name for comparison and
// map keys. Folding rather than lowercasing keeps non-ASCII names
// comparing correctly.
func NormalizeName(name string) string {
	return nameFolder.String(strings.TrimSpace(name))
}
