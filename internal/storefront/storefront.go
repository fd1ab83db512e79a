package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var ErrNotInCatalog = errors.New("listing not in current results")

// Status is the mutually exclusive main-panel state.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusEmpty
	StatusResults
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusEmpty:
		return "empty"
	default:
		return "results"
	}
}

// View is everything a renderer needs for one frame.
type View struct {
	Status     Status
	Err        string
	Search     string
	Filter     Filter
	Listings   []Listing
	LikedCount int
	CartCount  int
}

// Storefront ties the query, the local filters and the persisted state
// together. The filter lives here rather than in Query because it is
// applied client-side to whatever was last fetched.
type Storefront struct {
	Query *Query
	State *State
	log   *zap.Logger

	mu     sync.Mutex
	filter Filter
}

func New(lister Lister, state *State, log *zap.Logger) *Storefront {
	if log == nil {
		log = zap.NewNop()
	}
	return &Storefront{
		Query:  NewQuery(lister, log),
		State:  state,
		log:    log,
		filter: DefaultFilter(),
	}
}

func (s *Storefront) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Storefront) SetFilter(f Filter) {
	if f.Platform == "" {
		f.Platform = FilterAll
	}
	if f.Region == "" {
		f.Region = FilterAll
	}
	if f.Sort == "" {
		f.Sort = SortRelevance
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Search runs a server-side search; filters are left as they are.
func (s *Storefront) Search(ctx context.Context, term string) error {
	return s.Query.Search(ctx, term)
}

// ClearFilters resets search text and both filters, then refetches
// everything. Sort order is kept.
func (s *Storefront) ClearFilters(ctx context.Context) error {
	s.mu.Lock()
	s.filter.Platform = FilterAll
	s.filter.Region = FilterAll
	s.mu.Unlock()

	return s.Query.Search(ctx, "")
}

func (s *Storefront) Visible() []Listing {
	return Derive(s.Query.Snapshot().Listings, s.Filter())
}

func (s *Storefront) View() View {
	q := s.Query.Snapshot()
	f := s.Filter()
	visible := Derive(q.Listings, f)

	v := View{
		Err:        q.Err,
		Search:     q.Search,
		Filter:     f,
		Listings:   visible,
		LikedCount: s.State.LikedCount(),
		CartCount:  s.State.CartCount(),
	}
	switch {
	case q.Loading:
		v.Status = StatusLoading
	case q.Err != "":
		v.Status = StatusError
	case len(visible) == 0:
		v.Status = StatusEmpty
	default:
		v.Status = StatusResults
	}
	return v
}

// Lookup finds id among the last fetched listings.
func (s *Storefront) Lookup(id int64) (Listing, error) {
	for _, l := range s.Query.Snapshot().Listings {
		if l.ID == id {
			return l, nil
		}
	}
	return Listing{}, fmt.Errorf("%w: id=%d", ErrNotInCatalog, id)
}

// AddToCart adds the currently fetched listing with the given id.
func (s *Storefront) AddToCart(ctx context.Context, id int64) (int, error) {
	l, err := s.Lookup(id)
	if err != nil {
		return 0, err
	}
	return s.State.AddToCart(ctx, l)
}
