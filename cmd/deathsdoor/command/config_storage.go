package command

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/deathsdoor/deathsdoor/assets"
	"github.com/deathsdoor/deathsdoor/internal/game"
	"github.com/deathsdoor/deathsdoor/internal/storage"
)

type StorageConfig struct {
	Characters AssetConfig[*game.Character] `json:"characters"`
	Scripts    AssetConfig[*game.Script]    `json:"scripts"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Characters.Validate("characters"))
	el.Add(c.Scripts.Validate("scripts"))
	return el.Err()
}

// BuildCatalog loads the character definitions and indexes them.
func (c *StorageConfig) BuildCatalog() (*game.Catalog, error) {
	defaults, err := fs.Sub(assets.FS, assets.CharactersDir)
	if err != nil {
		return nil, fmt.Errorf("opening embedded characters: %w", err)
	}
	store, err := c.Characters.BuildStore(defaults)
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}
	return game.NewCatalog(store)
}

// BuildRegistry loads the script definitions and registers them
// against the catalog.
func (c *StorageConfig) BuildRegistry(catalog *game.Catalog) (*game.Registry, error) {
	defaults, err := fs.Sub(assets.FS, assets.ScriptsDir)
	if err != nil {
		return nil, fmt.Errorf("opening embedded scripts: %w", err)
	}
	store, err := c.Scripts.BuildStore(defaults)
	if err != nil {
		return nil, fmt.Errorf("creating script store: %w", err)
	}

	registry := game.NewRegistry(catalog)
	for id, script := range store.GetAll() {
		if err := registry.Register(script); err != nil {
			return nil, fmt.Errorf("registering script %q: %w", id, err)
		}
	}
	return registry, nil
}

// AssetConfig points a store at a directory of json assets. An empty
// path falls back to the definitions embedded in the binary.
type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path,omitempty"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return nil
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildStore(defaults fs.FS) (*storage.Store[T], error) {
	if c.Path == "" {
		return storage.NewStore[T](defaults)
	}
	return storage.NewStore[T](os.DirFS(c.Path))
}
