package catalog

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

type MemStore struct {
	mu   sync.RWMutex
	rows []Listing
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Ping(context.Context) error { return nil }

func (s *MemStore) EnsureSchema(context.Context) error { return nil }

func (s *MemStore) Replace(_ context.Context, listings []Listing) error {
	rows := make([]Listing, len(listings))
	for i, l := range listings {
		rows[i] = cloneListing(l)
	}
	slices.SortStableFunc(rows, func(a, b Listing) int { return cmp.Compare(a.ID, b.ID) })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	return nil
}

func (s *MemStore) List(_ context.Context, search string) ([]Listing, error) {
	term := NormalizeSearch(search)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Listing, 0, len(s.rows))
	for _, l := range s.rows {
		if l.Matches(term) {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func cloneListing(l Listing) Listing {
	if l.OldPrice != nil {
		l.OldPrice = price(*l.OldPrice)
	}
	return l
}
