// Package recordstore keeps named collections of records as JSON array files in a data directory.
//
// Every collection is guarded by its own mutex. Update holds that mutex for the whole
// read-modify-write cycle and replaces the file atomically, so concurrent writers to the
// same collection never lose each other's changes.
package recordstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is a directory of collection files.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open creates the data directory if needed and returns a Store rooted at it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Collection is a typed view over one collection file.
type Collection[T any] struct {
	name  string
	path  string
	mu    *sync.Mutex
	store *Store
}

// NewCollection returns the collection called name. Collections with the same name share a lock.
func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{name: name, path: s.path(name), mu: s.lock(name), store: s}
}

// All returns a snapshot of every record. A missing file is an empty collection.
func (c *Collection[T]) All() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

// Find returns the first record matching fn.
func (c *Collection[T]) Find(fn func(T) bool) (T, bool, error) {
	var zero T
	items, err := c.All()
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if fn(item) {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Filter returns every record matching fn, in file order.
func (c *Collection[T]) Filter(fn func(T) bool) ([]T, error) {
	items, err := c.All()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for _, item := range items {
		if fn(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Update runs fn over the current records and persists the slice it returns.
// If fn returns an error nothing is written and the error is returned unchanged.
func (c *Collection[T]) Update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.write(items)
}

// Remove deletes every record matching fn and returns the removed records.
func (c *Collection[T]) Remove(fn func(T) bool) ([]T, error) {
	var removed []T
	err := c.Update(func(items []T) ([]T, error) {
		kept := items[:0]
		for _, item := range items {
			if fn(item) {
				removed = append(removed, item)
				continue
			}
			kept = append(kept, item)
		}
		return kept, nil
	})
	return removed, err
}

func (c *Collection[T]) read() ([]T, error) {
	b, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	items := []T{}
	if len(b) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return items, nil
}

func (c *Collection[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	tmp, err := os.CreateTemp(c.store.dir, c.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	return nil
}
