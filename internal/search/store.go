package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Options configures a Store.
type Options struct {
	DefaultQuery string
	HitsPerPage  int
	Logger       *zap.Logger
}

// Store holds one search session: the live search box text, the active
// search key, accumulated results per key and the last fetch error.
//
// A Store is owned by a single goroutine (the UI event loop). Network work
// happens in Fetch.Run, which may run elsewhere; its Result is handed back
// to Apply on the owning goroutine.
type Store struct {
	api         API
	hitsPerPage int
	log         *zap.Logger

	searchTerm string
	searchKey  string
	results    map[string]ResultPage
	err        error

	ctx    context.Context
	cancel context.CancelFunc
}

// View is what the presentation layer renders.
type View struct {
	SearchTerm string
	SearchKey  string
	Hits       []Hit
	Page       int
	Err        error
}

// Fetch describes one pending request for a key and page.
type Fetch struct {
	Key  string
	Page int

	api         API
	hitsPerPage int
	session     context.Context
	log         *zap.Logger
}

// Result is the outcome of running a Fetch.
type Result struct {
	Fetch Fetch
	Hits  []Hit
	Err   error
}

func NewStore(api API, opts Options) *Store {
	if opts.DefaultQuery == "" {
		opts.DefaultQuery = DefaultQuery
	}
	if opts.HitsPerPage <= 0 {
		opts.HitsPerPage = DefaultHitsPerPage
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		api:         api,
		hitsPerPage: opts.HitsPerPage,
		log:         opts.Logger,
		searchTerm:  opts.DefaultQuery,
		results:     make(map[string]ResultPage),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start promotes the initial search term to the active key and returns the
// first page fetch for it.
func (s *Store) Start() Fetch {
	s.searchKey = s.searchTerm
	return s.FetchPage(s.searchKey, 0)
}

// Close ends the session. In-flight requests are cancelled and any result
// that still arrives is discarded by Apply.
func (s *Store) Close() {
	s.cancel()
}

func (s *Store) SetSearchTerm(text string) {
	s.searchTerm = text
}

// NeedsSearch reports whether key has no cached results yet.
func (s *Store) NeedsSearch(key string) bool {
	_, ok := s.results[key]
	return !ok
}

// SubmitSearch makes the current search term the active key. It returns a
// page 0 fetch only when nothing is cached for that key.
func (s *Store) SubmitSearch() (Fetch, bool) {
	s.searchKey = s.searchTerm
	if !s.NeedsSearch(s.searchKey) {
		s.log.Debug("showing cached results", zap.String("key", s.searchKey))
		return Fetch{}, false
	}
	return s.FetchPage(s.searchKey, 0), true
}

func (s *Store) FetchPage(key string, page int) Fetch {
	return Fetch{
		Key:         key,
		Page:        page,
		api:         s.api,
		hitsPerPage: s.hitsPerPage,
		session:     s.ctx,
		log:         s.log,
	}
}

// FetchNextPage fetches the page after the active key's current one.
func (s *Store) FetchNextPage() Fetch {
	return s.FetchPage(s.searchKey, s.results[s.searchKey].Page+1)
}

// Dismiss drops every hit with objectID from the active key's results.
func (s *Store) Dismiss(objectID string) {
	rp, ok := s.results[s.searchKey]
	if !ok {
		return
	}
	hits := make([]Hit, 0, len(rp.Hits))
	for _, h := range rp.Hits {
		if h.ObjectID != objectID {
			hits = append(hits, h)
		}
	}
	s.results[s.searchKey] = ResultPage{Hits: hits, Page: rp.Page}
}

// Apply merges a completed fetch into the session and reports whether it
// was applied. Hits are appended without deduplication.
func (s *Store) Apply(r Result) bool {
	if s.ctx.Err() != nil || r.Fetch.session != s.ctx {
		s.log.Debug("discarding stale result", zap.String("key", r.Fetch.Key), zap.Int("page", r.Fetch.Page))
		return false
	}
	if r.Err != nil {
		s.err = r.Err
		return true
	}

	old := s.results[r.Fetch.Key].Hits
	hits := make([]Hit, 0, len(old)+len(r.Hits))
	hits = append(hits, old...)
	hits = append(hits, r.Hits...)
	s.results[r.Fetch.Key] = ResultPage{Hits: hits, Page: r.Fetch.Page}
	s.err = nil
	return true
}

func (s *Store) Snapshot() View {
	rp := s.results[s.searchKey]
	hits := rp.Hits
	if hits == nil {
		hits = []Hit{}
	}
	return View{
		SearchTerm: s.searchTerm,
		SearchKey:  s.searchKey,
		Hits:       hits,
		Page:       rp.Page,
		Err:        s.err,
	}
}

// Run performs the request. It is safe to call off the owning goroutine;
// closing the session cancels it.
func (f Fetch) Run(ctx context.Context) Result {
	if f.api == nil {
		return Result{Fetch: f, Err: ErrFetchFailed}
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(f.session, cancel)
	defer stop()

	f.log.Debug("fetching", zap.String("key", f.Key), zap.Int("page", f.Page))
	rp, err := f.api.Search(ctx, f.Key, f.Page, f.hitsPerPage)
	if err != nil {
		if !errors.Is(err, ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		f.log.Warn("fetch failed", zap.String("key", f.Key), zap.Int("page", f.Page), zap.Error(err))
		return Result{Fetch: f, Err: err}
	}
	f.log.Debug("fetched", zap.String("key", f.Key), zap.Int("page", f.Page), zap.Int("hits", len(rp.Hits)))
	return Result{Fetch: f, Hits: rp.Hits}
}
