package storefront

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"GameShop/internal/storage"
)

func ptr(v float64) *float64 { return &v }

// seedListings matches the catalog's seed set as served over /list.
func seedListings() []Listing {
	return []Listing{
		{ID: 1, Name: "Split Fiction", Price: 34.14, OldPrice: ptr(42), DiscountPct: 19, ImageURL: "/images/splitfiction.jpg", Platform: "XBOX", Region: "EUROPE"},
		{ID: 2, Name: "Split Fiction", Price: 35.15, OldPrice: ptr(44), DiscountPct: 20, ImageURL: "/images/splitfiction.jpg", Platform: "XBOX", Region: "GLOBAL"},
		{ID: 3, Name: "Split Fiction", Price: 36.25, OldPrice: ptr(36.25), DiscountPct: 0, ImageURL: "/images/splitfiction.jpg", Platform: "NINTENDO", Region: "EUROPE"},
		{ID: 4, Name: "FIFA 23", Price: 29.99, OldPrice: ptr(59.99), DiscountPct: 50, ImageURL: "/images/fifa23.jpg", Platform: "PS5", Region: "GLOBAL"},
		{ID: 5, Name: "FIFA 23", Price: 27.49, OldPrice: ptr(49.99), DiscountPct: 45, ImageURL: "/images/fifa23.jpg", Platform: "PC", Region: "EUROPE"},
		{ID: 6, Name: "Red Dead Redemption 2", Price: 39.99, OldPrice: ptr(59.99), DiscountPct: 33, ImageURL: "/images/rdr2.jpg", Platform: "PC", Region: "GLOBAL"},
	}
}

// memKV is an in-process storage.KV with switchable failures.
type memKV struct {
	mu      sync.Mutex
	m       map[string][]byte
	getErr  error
	setErr  error
	setCall int
}

var _ storage.KV = (*memKV)(nil)

func newMemKV() *memKV { return &memKV{m: map[string][]byte{}} }

func (k *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.getErr != nil {
		return nil, false, k.getErr
	}
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *memKV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.setCall++
	if k.setErr != nil {
		return k.setErr
	}
	k.m[key] = append([]byte(nil), value...)
	return nil
}

func (k *memKV) raw(key string) string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return string(k.m[key])
}

func newState(t *testing.T, kv storage.KV) *State {
	t.Helper()
	s, err := LoadState(context.Background(), kv, nil)
	require.NoError(t, err)
	return s
}

// stubLister serves canned results filtered like the catalog does.
type stubLister struct {
	mu       sync.Mutex
	listings []Listing
	err      error
	terms    []string
}

func (s *stubLister) List(_ context.Context, search string) ([]Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = append(s.terms, search)
	if s.err != nil {
		return nil, s.err
	}
	var out []Listing
	for _, l := range s.listings {
		if search == "" || containsFold(l, search) {
			out = append(out, l)
		}
	}
	return out, nil
}

func containsFold(l Listing, term string) bool {
	term = strings.ToLower(term)
	for _, f := range []string{l.Name, l.Platform, l.Region} {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

var errBoom = errors.New("boom")
