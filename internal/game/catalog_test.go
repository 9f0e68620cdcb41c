package game

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestCatalog_Lookup(t *testing.T) {
	catalog := testCatalog(t)

	tests := map[string]struct {
		name    string
		expName string
		expErr  error
	}{
		"exact name":       {name: "Imp", expName: "Imp"},
		"case insensitive": {name: "scarlet woman", expName: "Scarlet Woman"},
		"padded":           {name: " monk ", expName: "Monk"},
		"unknown":          {name: "Mutant", expErr: ErrNotFound},
		"empty":            {name: "", expErr: ErrNotFound},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			char, err := catalog.Lookup(tt.name)

			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Errorf("expected %v, got %v", tt.expErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "character name", char.Name, tt.expName)
		})
	}
}

func TestCatalog_ListByCategory(t *testing.T) {
	catalog := testCatalog(t)

	tests := map[string]struct {
		category Category
		expNames []string
	}{
		"townsfolk sorted": {
			category: CategoryTownsfolk,
			expNames: []string{"Mayor", "Monk", "Ravenkeeper", "Soldier"},
		},
		"single demon": {
			category: CategoryDemon,
			expNames: []string{"Imp"},
		},
		"travelers": {
			category: CategoryTraveler,
			expNames: []string{"Thief"},
		},
		"no fabled": {
			category: Category("fabled"),
			expNames: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			chars := catalog.ListByCategory(tt.category)

			testutil.AssertEqual(t, "count", len(chars), len(tt.expNames))
			for i, c := range chars {
				testutil.AssertEqual(t, "name", c.Name, tt.expNames[i])
			}
		})
	}
}

func TestNewCatalog_DuplicateName(t *testing.T) {
	store := fakeStore{
		"imp":   {Name: "Imp", Ability: "x", Category: CategoryDemon, Alignment: AlignmentEvil},
		"imp-2": {Name: "IMP", Ability: "x", Category: CategoryDemon, Alignment: AlignmentEvil},
	}

	_, err := NewCatalog(store)
	if err == nil {
		t.Error("expected error for colliding character names")
	}
}
