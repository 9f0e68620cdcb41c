package game

import (
	"fmt"
	"sort"
	"sync"
)

// ScriptSummary is what List hands back for menu display.
type ScriptSummary struct {
	Name           string `json:"name"`
	CharacterCount int    `json:"character_count"`
}

// Registry holds every script known to the process. Scripts register
// at startup; registration checks each referenced character against
// the catalog so a session can never point at a role that doesn't
// exist.
type Registry struct {
	mu      sync.RWMutex
	catalog *Catalog
	scripts map[string]*Script
}

func NewRegistry(catalog *Catalog) *Registry {
	return &Registry{
		catalog: catalog,
		scripts: map[string]*Script{},
	}
}

// Register adds a script. Returns ErrDuplicate if a script with the
// same name is already registered, and an error wrapping ErrNotFound
// if the script references a character missing from the catalog.
func (r *Registry) Register(s *Script) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validating script %q: %w", s.Name, err)
	}

	for _, name := range s.Characters {
		if _, err := r.catalog.Lookup(name); err != nil {
			return fmt.Errorf("script %q: %w", s.Name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := NormalizeName(s.Name)
	if _, ok := r.scripts[key]; ok {
		return fmt.Errorf("script %q: %w", s.Name, ErrDuplicate)
	}

	r.scripts[key] = s
	return nil
}

// Get returns the script with the given name, ignoring case.
func (r *Registry) Get(name string) (*Script, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scripts[NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("script %q: %w", name, ErrNotFound)
	}
	return s, nil
}

// List returns summaries of all registered scripts sorted by name.
func (r *Registry) List() []ScriptSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]ScriptSummary, 0, len(r.scripts))
	for _, s := range r.scripts {
		summaries = append(summaries, ScriptSummary{
			Name:           s.Name,
			CharacterCount: len(s.Characters),
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries
}
