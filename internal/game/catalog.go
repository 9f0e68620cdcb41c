package game

import (
	"fmt"
	"sort"

	"github.com/deathsdoor/deathsdoor/internal/storage"
)

// Catalog is the process-wide, read-only set of character definitions.
// It indexes a loaded character store by folded canonical name so
// lookups are case-insensitive.
type Catalog struct {
	byName map[string]*Character
}

// NewCatalog builds a catalog from a loaded character store.
func NewCatalog(store storage.Getter[*Character]) (*Catalog, error) {
	c := &Catalog{
		byName: map[string]*Character{},
	}

	for id, char := range store.GetAll() {
		key := NormalizeName(char.Name)
		if _, ok := c.byName[key]; ok {
			return nil, fmt.Errorf("character name %q appears under multiple ids (%s)", char.Name, id)
		}
		c.byName[key] = char
	}

	return c, nil
}

// Lookup returns the character with the given canonical name,
// ignoring case. Returns ErrNotFound for unknown names.
func (c *Catalog) Lookup(name string) (*Character, error) {
	char, ok := c.byName[NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("character %q: %w", name, ErrNotFound)
	}
	return char, nil
}

// ListByCategory returns all characters of the given category, sorted
// by name for stable presentation.
func (c *Catalog) ListByCategory(cat Category) []*Character {
	var chars []*Character
	for _, char := range c.byName {
		if char.Category == cat {
			chars = append(chars, char)
		}
	}

	sort.Slice(chars, func(i, j int) bool { return chars[i].Name < chars[j].Name })
	return chars
}

// Len returns the number of characters in the catalog.
func (c *Catalog) Len() int {
	return len(c.byName)
}
