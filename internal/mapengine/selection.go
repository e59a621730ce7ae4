package mapengine

import (
	"context"
	"log"
	"sync"

	"estatecore/internal/model"
)

// SelectionState is the popup lifecycle: nothing selected, detail fetch in
// flight, or details loaded.
type SelectionState int

const (
	StateIdle SelectionState = iota
	StateLoading
	StateLoaded
)

// DetailFetchFunc loads extended details for a marker's backing property.
type DetailFetchFunc func(ctx context.Context, id int64) (*model.PropertyDetail, error)

// Snapshot is a point-in-time view of the selection, the popup's data
// source. In Loading state the popup shows the marker title with a loading
// placeholder; Details is set once loaded.
type Snapshot struct {
	State    SelectionState
	MarkerID int64
	Title    string
	Details  *model.PropertyDetail
}

// Selector owns the single-selection invariant: at most one marker is
// selected at a time, and selecting a new one deselects the previous as
// part of the same transition. Detail fetches are guarded by a generation
// token so a stale response can never overwrite a newer selection.
type Selector struct {
	mu         sync.Mutex
	state      SelectionState
	marker     model.MapMarker
	generation uint64
	details    *model.PropertyDetail

	fetch    DetailFetchFunc
	onSelect func(id int64)
}

// NewSelector creates a selector. fetch may be nil, in which case callers
// drive completion through Complete directly. onSelect, when set, fires on
// every new selection.
func NewSelector(fetch DetailFetchFunc, onSelect func(id int64)) *Selector {
	return &Selector{fetch: fetch, onSelect: onSelect}
}

// Select marks the marker selected and shows the loading popup
// immediately, with no network latency. The detail fetch runs
// asynchronously; its result is applied only if this selection is still
// current when it lands. Returns the selection token.
func (s *Selector) Select(ctx context.Context, marker model.MapMarker) uint64 {
	s.mu.Lock()
	s.generation++
	token := s.generation
	s.state = StateLoading
	s.marker = marker
	s.details = nil
	onSelect := s.onSelect
	s.mu.Unlock()

	if onSelect != nil {
		onSelect(marker.ID)
	}

	if s.fetch != nil {
		go func() {
			details, err := s.fetch(ctx, marker.ID)
			if err != nil {
				// The loading popup stays in place; no error UI.
				log.Printf("Warning: detail fetch for property %d failed: %v", marker.ID, err)
				return
			}
			s.Complete(token, details)
		}()
	}

	return token
}

// Complete installs fetched details for the given selection token. Stale
// tokens are discarded silently.
func (s *Selector) Complete(token uint64, details *model.PropertyDetail) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.generation || s.state == StateIdle {
		return false
	}
	s.state = StateLoaded
	s.details = details
	return true
}

// Close clears the selection and invalidates any in-flight fetch.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = StateIdle
	s.marker = model.MapMarker{}
	s.details = nil
}

// IsSelected reports whether the given marker currently carries the
// selected visual state.
func (s *Selector) IsSelected(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StateIdle && s.marker.ID == id
}

// Snapshot returns the current selection for rendering.
func (s *Selector) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{State: s.state}
	if s.state != StateIdle {
		snap.MarkerID = s.marker.ID
		snap.Title = s.marker.Title
		snap.Details = s.details
	}
	return snap
}
