package storefront

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"GameShop/internal/storage"
)

const (
	wishlistKey = "wishlist"
	cartKey     = "cart"
)

// CartEntry is a cart line: the listing as it was when first added and
// the quantity, always >= 1.
type CartEntry struct {
	Listing Listing `json:"listing"`
	Qty     int     `json:"qty"`
}

// CartLine is a CartEntry plus its computed line total.
type CartLine struct {
	CartEntry
	Total decimal.Decimal
}

// State owns the wishlist and cart. Every mutation writes the affected map
// back to the KV before returning; a failed write is reported but the
// in-memory change is kept.
type State struct {
	kv  storage.KV
	log *zap.Logger

	mu   sync.Mutex
	wish map[int64]bool
	cart map[int64]CartEntry
}

// LoadState reads both maps from kv. Missing or unparsable values start
// empty; only a failing store is an error.
func LoadState(ctx context.Context, kv storage.KV, log *zap.Logger) (*State, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{
		kv:   kv,
		log:  log,
		wish: map[int64]bool{},
		cart: map[int64]CartEntry{},
	}

	var wish map[int64]bool
	ok, err := s.load(ctx, wishlistKey, &wish)
	if err != nil {
		return nil, err
	}
	if !ok {
		wish = nil
	}
	for id, liked := range wish {
		if liked {
			s.wish[id] = true
		}
	}

	var cart map[int64]CartEntry
	ok, err = s.load(ctx, cartKey, &cart)
	if err != nil {
		return nil, err
	}
	if !ok {
		cart = nil
	}
	for id, e := range cart {
		if e.Qty < 1 {
			log.Warn("dropping cart entry with bad quantity", zap.Int64("id", id), zap.Int("qty", e.Qty))
			continue
		}
		e.Listing.ID = id
		s.cart[id] = e
	}

	return s, nil
}

// load decodes key into v and reports whether v holds usable data. A
// value that fails to decode may be partially filled and must be ignored.
func (s *State) load(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn("ignoring corrupt stored state", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *State) persist(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		s.log.Error("persist state failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// ToggleWish flips membership of id and reports the new state.
func (s *State) ToggleWish(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked := !s.wish[id]
	if liked {
		s.wish[id] = true
	} else {
		delete(s.wish, id)
	}
	return liked, s.persist(ctx, wishlistKey, s.wish)
}

func (s *State) Liked(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wish[id]
}

func (s *State) LikedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wish)
}

func (s *State) LikedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.wish))
	for id := range s.wish {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *State) ClearWishlist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.wish)
	return s.persist(ctx, wishlistKey, s.wish)
}

// AddToCart snapshots l on first add and bumps the quantity afterwards.
// Later price changes in the catalog do not touch an existing line.
func (s *State) AddToCart(ctx context.Context, l Listing) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cart[l.ID]
	if ok {
		e.Qty++
	} else {
		e = CartEntry{Listing: cloneListing(l), Qty: 1}
	}
	s.cart[l.ID] = e
	return e.Qty, s.persist(ctx, cartKey, s.cart)
}

// IncrementQty is a no-op for ids not in the cart.
func (s *State) IncrementQty(ctx context.Context, id int64) (qty int, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cart[id]
	if !ok {
		return 0, false, nil
	}
	e.Qty++
	s.cart[id] = e
	return e.Qty, true, s.persist(ctx, cartKey, s.cart)
}

// DecrementQty removes the line when the quantity would drop below 1.
func (s *State) DecrementQty(ctx context.Context, id int64) (qty int, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cart[id]
	if !ok {
		return 0, false, nil
	}
	e.Qty--
	if e.Qty < 1 {
		delete(s.cart, id)
		return 0, true, s.persist(ctx, cartKey, s.cart)
	}
	s.cart[id] = e
	return e.Qty, true, s.persist(ctx, cartKey, s.cart)
}

func (s *State) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.cart)
	return s.persist(ctx, cartKey, s.cart)
}

// CartLines returns the cart ordered by listing id.
func (s *State) CartLines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]CartLine, 0, len(s.cart))
	for _, e := range s.cart {
		e.Listing = cloneListing(e.Listing)
		lines = append(lines, CartLine{CartEntry: e, Total: lineTotal(e)})
	}
	slices.SortFunc(lines, func(a, b CartLine) int { return cmp.Compare(a.Listing.ID, b.Listing.ID) })
	return lines
}

// CartCount is the sum of quantities.
func (s *State) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.cart {
		n += e.Qty
	}
	return n
}

// CartTotal sums snapshot price x quantity without rounding; round with
// FormatPrice when displaying.
func (s *State) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, e := range s.cart {
		total = total.Add(lineTotal(e))
	}
	return total
}

func lineTotal(e CartEntry) decimal.Decimal {
	return decimal.NewFromFloat(e.Listing.Price).Mul(decimal.NewFromInt(int64(e.Qty)))
}

func cloneListing(l Listing) Listing {
	if l.OldPrice != nil {
		v := *l.OldPrice
		l.OldPrice = &v
	}
	return l
}
