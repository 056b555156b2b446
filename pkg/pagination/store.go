package pagination

import (
	"fmt"
	"sync"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
)

// Item is an opaque collection element. The engine never inspects items; it
// only counts and slices them.
type Item = interface{}

// collection is an immutable snapshot of items with its page size
type collection struct {
	items    []Item
	pageSize int
}

// Store holds named, immutable, ordered collections. Collections are
// registered once during startup and then served to any number of concurrent
// readers. Iteration order over a collection is fixed at registration.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewStore creates an empty collection store
func NewStore() *Store {
	return &Store{
		collections: make(map[string]*collection),
	}
}

// Register adds a named collection with its per-page item bound. The item
// slice is copied so later mutation by the caller cannot change served pages.
// Registering the same name twice or a non-positive page size is a wiring
// mistake and returns an error.
func (s *Store) Register(name string, items []Item, pageSize int) error {
	if name == "" {
		return fmt.Errorf("collection name must not be empty")
	}
	if pageSize <= 0 {
		return fmt.Errorf("page size for collection %q must be positive, got %d", name, pageSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.collections[name]; exists {
		return fmt.Errorf("collection %q is already registered", name)
	}

	snapshot := make([]Item, len(items))
	copy(snapshot, items)

	s.collections[name] = &collection{
		items:    snapshot,
		pageSize: pageSize,
	}

	return nil
}

// Slice returns up to one page of items starting at offset. Offsets at or past
// the end of the collection yield an empty slice, not an error; a negative
// offset yields an errors.CodeInvalidOffset error.
func (s *Store) Slice(name string, offset int) ([]Item, error) {
	if offset < 0 {
		return nil, mcperrors.InvalidOffset(name, offset)
	}

	coll, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	if offset >= len(coll.items) {
		return []Item{}, nil
	}

	end := offset + coll.pageSize
	if end > len(coll.items) {
		end = len(coll.items)
	}

	return coll.items[offset:end], nil
}

// Length returns the number of items in a collection
func (s *Store) Length(name string) (int, error) {
	coll, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	return len(coll.items), nil
}

// PageSize returns the per-page item bound of a collection
func (s *Store) PageSize(name string) (int, error) {
	coll, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	return coll.pageSize, nil
}

// Names returns the registered collection names
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	return names
}

func (s *Store) lookup(name string) (*collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, exists := s.collections[name]
	if !exists {
		return nil, mcperrors.UnknownCollection(name)
	}
	return coll, nil
}
