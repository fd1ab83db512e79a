package storefront

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// ErrSuperseded is returned by Search when a newer search was issued
// before this one resolved; its result is dropped.
var ErrSuperseded = errors.New("search superseded by a newer request")

// QueryState is a point-in-time copy of the query side of the UI.
type QueryState struct {
	Search   string
	Listings []Listing
	Loading  bool
	Err      string
}

// Query coordinates catalog fetches. The network call runs without the
// lock held, so reads of the current state never wait on a fetch.
type Query struct {
	lister Lister
	log    *zap.Logger

	mu    sync.Mutex
	seq   uint64
	state QueryState
}

func NewQuery(lister Lister, log *zap.Logger) *Query {
	if log == nil {
		log = zap.NewNop()
	}
	return &Query{lister: lister, log: log}
}

// Search fetches listings for term. On failure the previous listings stay
// in place and the error text is recorded.
func (q *Query) Search(ctx context.Context, term string) error {
	q.mu.Lock()
	q.seq++
	seq := q.seq
	q.state.Search = term
	q.state.Loading = true
	q.state.Err = ""
	q.mu.Unlock()

	listings, err := q.lister.List(ctx, term)

	q.mu.Lock()
	defer q.mu.Unlock()

	if seq != q.seq {
		q.log.Debug("dropping stale search result", zap.String("search", term), zap.Uint64("seq", seq))
		return ErrSuperseded
	}

	q.state.Loading = false
	if err != nil {
		q.state.Err = err.Error()
		q.log.Warn("catalog search failed", zap.String("search", term), zap.Error(err))
		return err
	}
	q.state.Listings = listings
	return nil
}

func (q *Query) Snapshot() QueryState {
	q.mu.Lock()
	defer q.mu.Unlock()

	s := q.state
	s.Listings = slices.Clone(q.state.Listings)
	return s
}

func (q *Query) SetSearchText(term string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.state.Search = term
}
