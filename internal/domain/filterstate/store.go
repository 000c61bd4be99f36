package filterstate

import (
	"log/slog"
	"slices"
	"sync"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report rejected input.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInitialState seeds the store with a previously saved state.
func WithInitialState(state State) Option {
	return func(s *Store) {
		s.state = state
	}
}

// WithPageChange registers the callback run after every accepted page change,
// typically to scroll the view back to the top.
func WithPageChange(fn func(page int)) Option {
	return func(s *Store) {
		s.onPageChange = fn
	}
}

// Store is the single writer of a view's filter state. Incremental updates
// notify subscribers; Replace does not.
type Store struct {
	mu           sync.Mutex
	state        State
	logger       *slog.Logger
	onPageChange func(page int)
	subscribers  []func(State)
}

// NewStore creates a store holding the default state.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state:  Default(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = normalize(s.state, s.logger)
	return s
}

// Subscribe registers fn to receive the state after each incremental update.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UpdateFilters merges the patch into the state. A patch touching any filter
// or sort field without its own current page resets the page to 1.
func (s *Store) UpdateFilters(p Patch) State {
	return s.mutate(func(st State) State {
		return p.apply(st)
	})
}

// ToggleSortDirection flips the sort direction and returns to page 1.
func (s *Store) ToggleSortDirection() State {
	return s.mutate(func(st State) State {
		st.SortDirection = st.SortDirection.Flip()
		st.CurrentPage = 1
		return st
	})
}

// SetPage moves to page if it lies in [1, totalPages]. Out-of-range requests
// change nothing and return false.
func (s *Store) SetPage(page, totalPages int) bool {
	if page < 1 || page > totalPages {
		return false
	}
	s.mutate(func(st State) State {
		st.CurrentPage = page
		return st
	})
	if s.onPageChange != nil {
		s.onPageChange(page)
	}
	return true
}

// SetThreeColumn switches the layout. The page is recomputed so the first
// project of the current page stays visible under the new page size.
func (s *Store) SetThreeColumn(threeColumn bool) State {
	return s.mutate(func(st State) State {
		if st.ThreeColumn == threeColumn {
			return st
		}
		first := (st.CurrentPage - 1) * st.PageSize()
		st.ThreeColumn = threeColumn
		st.CurrentPage = first/st.PageSize() + 1
		return st
	})
}

// Replace swaps the whole filter state for the one described by params. The
// page is taken from params as is, the layout is kept, open dropdowns are
// closed, and subscribers are not notified.
func (s *Store) Replace(params URLParams) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := params.State()
	next.ThreeColumn = s.state.ThreeColumn
	s.state = normalize(next, s.logger)
	return s.state
}

// Restore puts back a state previously read with State, without notifying
// subscribers. It undoes an update whose side effects failed.
func (s *Store) Restore(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = normalize(state, s.logger)
}

// ToggleDropdown opens d, closing any other menu, or closes d if it is
// already open.
func (s *Store) ToggleDropdown(d Dropdown) Dropdown {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !d.Valid() || d == DropdownNone || s.state.ActiveDropdown == d {
		s.state.ActiveDropdown = DropdownNone
	} else {
		s.state.ActiveDropdown = d
	}
	return s.state.ActiveDropdown
}

// CloseDropdowns closes whichever menu is open.
func (s *Store) CloseDropdowns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveDropdown = DropdownNone
}

func (s *Store) mutate(fn func(State) State) State {
	s.mu.Lock()
	prev := s.state
	s.state = normalize(fn(s.state), s.logger)
	next := s.state
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()

	if next != prev {
		for _, sub := range subs {
			sub(next)
		}
	}
	return next
}
