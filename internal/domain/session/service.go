package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/outrun/memeverse/internal/domain/catalog"
	"github.com/outrun/memeverse/internal/domain/filterstate"
	"github.com/outrun/memeverse/internal/repository"
)

// Service owns one filter state store per view session and renders catalog
// pages from them.
type Service struct {
	repo     Repository
	projects ProjectSource
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu        sync.Mutex
	id        string
	store     *filterstate.Store
	createdAt time.Time
	savedAt   time.Time
	lastUsed  time.Time
	scrolled  bool
	urlUpdate string
	dirtyURL  bool
	// gone is set once the entry left the cache. Holders of a stale pointer
	// look the session up again.
	gone   bool
	closed bool
}

// snapshot is what an update may change on an entry, kept so a failed save
// can be undone.
type snapshot struct {
	state     filterstate.State
	scrolled  bool
	urlUpdate string
	dirtyURL  bool
}

func (e *entry) snapshot() snapshot {
	return snapshot{state: e.store.State(), scrolled: e.scrolled, urlUpdate: e.urlUpdate, dirtyURL: e.dirtyURL}
}

func (e *entry) restore(snap snapshot) {
	e.store.Restore(snap.state)
	e.scrolled = snap.scrolled
	e.urlUpdate = snap.urlUpdate
	e.dirtyURL = snap.dirtyURL
}

// NewService creates a new session service.
func NewService(repo Repository, projects ProjectSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:     repo,
		projects: projects,
		logger:   logger,
		now:      time.Now,
		entries:  make(map[string]*entry),
	}
}

// Open returns the id of an existing session, or creates one. An empty id
// creates a session with a generated id.
func (s *Service) Open(ctx context.Context, sessionID string) (string, error) {
	e, err := s.entry(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return e.id, nil
}

// View renders the session's current page.
func (s *Service) View(ctx context.Context, sessionID string) (*View, error) {
	return s.do(ctx, sessionID, false, func(*entry) {})
}

// UpdateFilters applies a partial filter update.
func (s *Service) UpdateFilters(ctx context.Context, sessionID string, patch filterstate.Patch) (*View, error) {
	return s.do(ctx, sessionID, true, func(e *entry) {
		e.store.UpdateFilters(patch)
	})
}

// ToggleSortDirection flips the sort direction.
func (s *Service) ToggleSortDirection(ctx context.Context, sessionID string) (*View, error) {
	return s.do(ctx, sessionID, true, func(e *entry) {
		e.store.ToggleSortDirection()
	})
}

// InitializeFromURL replaces the session state with the one carried by URL
// parameters. The resulting view carries no URL update.
func (s *Service) InitializeFromURL(ctx context.Context, sessionID string, params filterstate.URLParams) (*View, error) {
	return s.do(ctx, sessionID, true, func(e *entry) {
		e.store.Replace(params)
	})
}

// SetViewportWidth switches between the two- and three-column layouts.
func (s *Service) SetViewportWidth(ctx context.Context, sessionID string, width int) (*View, error) {
	if width < 0 {
		return nil, ErrInvalidInput
	}
	return s.do(ctx, sessionID, true, func(e *entry) {
		e.store.SetThreeColumn(width >= catalog.ThreeColumnMinWidth)
	})
}

// ToggleDropdown opens or closes a filter menu.
func (s *Service) ToggleDropdown(ctx context.Context, sessionID string, d filterstate.Dropdown) (*View, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: unknown dropdown %q", ErrInvalidInput, d)
	}
	return s.do(ctx, sessionID, true, func(e *entry) {
		e.store.ToggleDropdown(d)
	})
}

// SetPage moves the session to page. Requests outside [1, totalPages] are
// ignored and reported as not accepted.
func (s *Service) SetPage(ctx context.Context, sessionID string, page int) (*PageChange, error) {
	e, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	current, err := s.render(ctx, e)
	if err != nil {
		return nil, err
	}
	snap := e.snapshot()
	accepted := e.store.SetPage(page, current.Result.TotalPages)
	if !accepted {
		s.logger.Debug("page change ignored", "session_id", e.id, "page", page, "total_pages", current.Result.TotalPages)
		return &PageChange{Accepted: false, View: *current}, nil
	}
	if err := s.persist(ctx, e); err != nil {
		e.restore(snap)
		return nil, err
	}
	view, err := s.render(ctx, e)
	if err != nil {
		return nil, err
	}
	scrolled := e.scrolled
	e.scrolled = false
	return &PageChange{Accepted: true, ScrollToTop: scrolled, View: *view}, nil
}

// Close removes the session. Updates racing with Close fail with
// ErrSessionNotFound instead of saving the session again.
func (s *Service) Close(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	e, cached := s.entries[sessionID]
	s.mu.Unlock()
	if cached {
		e.mu.Lock()
		defer e.mu.Unlock()
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("deleting session: %w", err)
	}

	if cached {
		e.closed = true
		s.forget(e)
	}

	s.logger.Info("view session closed", "session_id", sessionID)
	return nil
}

// Sweep drops sessions idle for longer than maxIdle, from the cache and from
// the repository. Cached sessions still in use but not saved within maxIdle
// are saved again first so the repository sweep keeps them.
func (s *Service) Sweep(ctx context.Context, maxIdle time.Duration) (int, error) {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	cached := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		cached = append(cached, e)
	}
	s.mu.Unlock()

	evicted := 0
	for _, e := range cached {
		e.mu.Lock()
		switch {
		case e.gone:
		case e.lastUsed.Before(cutoff):
			s.forget(e)
			evicted++
		case e.savedAt.Before(cutoff):
			if err := s.persist(ctx, e); err != nil {
				e.mu.Unlock()
				return 0, err
			}
		}
		e.mu.Unlock()
	}

	deleted, err := s.repo.DeleteIdle(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweeping sessions: %w", err)
	}
	if deleted > 0 || evicted > 0 {
		s.logger.Info("idle view sessions swept", "deleted", deleted, "evicted", evicted)
	}
	return deleted, nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Sweep(ctx, maxIdle); err != nil {
				s.logger.Warn("session sweep failed", "error", err)
			}
		}
	}
}

func (s *Service) do(ctx context.Context, sessionID string, mutates bool, fn func(*entry)) (*View, error) {
	e, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	if mutates {
		snap := e.snapshot()
		fn(e)
		if err := s.persist(ctx, e); err != nil {
			e.restore(snap)
			return nil, err
		}
	} else {
		fn(e)
	}
	return s.render(ctx, e)
}

func (s *Service) render(ctx context.Context, e *entry) (*View, error) {
	projects, err := s.projects.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	state := e.store.State()
	view := &View{
		SessionID:   e.id,
		State:       state,
		Result:      catalog.Run(projects, state.Query()),
		SortOptions: state.SortOptions(),
		Query:       filterstate.EncodeURL(state).Encode(),
	}
	if e.dirtyURL {
		update := e.urlUpdate
		view.URLUpdate = &update
		e.dirtyURL = false
	}
	return view, nil
}

func (s *Service) persist(ctx context.Context, e *entry) error {
	now := s.now()
	rec := &Record{
		ID:        e.id,
		State:     e.store.State(),
		CreatedAt: e.createdAt,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	e.savedAt = now
	return nil
}

// forget removes e from the cache. The caller holds e.mu.
func (s *Service) forget(e *entry) {
	e.gone = true
	s.mu.Lock()
	if s.entries[e.id] == e {
		delete(s.entries, e.id)
	}
	s.mu.Unlock()
}

// lock returns the session's entry with its mutex held, loading or creating
// the session as needed.
func (s *Service) lock(ctx context.Context, sessionID string) (*entry, error) {
	for {
		e, err := s.entry(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		switch {
		case e.closed:
			e.mu.Unlock()
			return nil, ErrSessionNotFound
		case e.gone:
			e.mu.Unlock()
			continue
		}
		e.lastUsed = s.now()
		return e, nil
	}
}

// entry returns the cached session, loading it from the repository or
// creating it when missing. Repository calls run outside s.mu.
func (s *Service) entry(ctx context.Context, sessionID string) (*entry, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.mu.Lock()
	e, ok := s.entries[sessionID]
	s.mu.Unlock()
	if ok {
		return e, nil
	}

	rec, err := s.repo.Get(ctx, sessionID)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		created = true
	default:
		return nil, fmt.Errorf("loading session: %w", err)
	}

	e = s.newEntry(sessionID, rec)

	// A fresh entry is locked before it is published so nobody updates it
	// before its first save.
	e.mu.Lock()
	s.mu.Lock()
	if existing, ok := s.entries[sessionID]; ok {
		s.mu.Unlock()
		e.mu.Unlock()
		return existing, nil
	}
	s.entries[sessionID] = e
	s.mu.Unlock()
	defer e.mu.Unlock()

	if created {
		if err := s.persist(ctx, e); err != nil {
			s.forget(e)
			return nil, err
		}
		s.logger.Info("view session created", "session_id", sessionID)
	}
	return e, nil
}

func (s *Service) newEntry(sessionID string, rec *Record) *entry {
	now := s.now()
	e := &entry{id: sessionID, createdAt: now, savedAt: now, lastUsed: now}
	opts := []filterstate.Option{
		filterstate.WithLogger(s.logger.With("session_id", sessionID)),
		filterstate.WithPageChange(func(int) { e.scrolled = true }),
	}
	if rec != nil {
		e.createdAt = rec.CreatedAt
		e.savedAt = rec.UpdatedAt
		opts = append(opts, filterstate.WithInitialState(rec.State))
	}
	e.store = filterstate.NewStore(opts...)
	e.store.Subscribe(func(st filterstate.State) {
		e.urlUpdate = filterstate.EncodeURL(st).Encode()
		e.dirtyURL = true
	})
	return e
}
