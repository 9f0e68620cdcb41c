package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
)

// Getter is read-only access to a loaded asset collection. Game data
// is immutable once the process is up, so there is no save path.
type Getter[T ValidatingSpec] interface {
	Get(Identifier) T
	GetAll() map[Identifier]T
}

// Store holds all assets of one type, loaded up front from an fs.FS.
// The backing filesystem may be the embedded defaults or an on-disk
// directory; either way the store never touches it again after load.
type Store[T ValidatingSpec] struct {
	records map[Identifier]T
}

// NewStore walks fsys and loads every .json asset it finds.
func NewStore[T ValidatingSpec](fsys fs.FS) (*Store[T], error) {
	s := &Store[T]{
		records: map[Identifier]T{},
	}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		asset, err := loadAsset[T](fsys, path)
		if err != nil {
			return err
		}

		err = asset.Validate()
		if err != nil {
			return fmt.Errorf("validating %s: %w", filepath.Base(path), err)
		}

		if _, ok := s.records[asset.Id()]; ok {
			return fmt.Errorf("duplicate key detected: %s", asset.Id())
		}

		s.records[asset.Id()] = asset.Spec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store[T]) Get(id Identifier) T {
	val, ok := s.records[id]
	if !ok {
		var nilVal T
		return nilVal
	}

	return val
}

func (s *Store[T]) GetAll() map[Identifier]T {
	vals := map[Identifier]T{}
	for id, v := range s.records {
		vals[id] = v
	}

	return vals
}

func loadAsset[T ValidatingSpec](fsys fs.FS, path string) (*Asset[T], error) {
	jsonData, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	err = json.Unmarshal(jsonData, asset)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}
