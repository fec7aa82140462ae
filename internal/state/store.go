package state

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/five82/opsboard/internal/dataset"
)

var (
	// ErrNotFound is returned for an unknown tax or incident id.
	ErrNotFound = errors.New("not found")
	// ErrNotResolvable is returned when resolving an incident that is not active.
	ErrNotResolvable = errors.New("incident is not active")
)

// Snapshot is a point-in-time copy of the session data.
type Snapshot struct {
	Data        dataset.Dataset
	Version     int
	LastUpdated time.Time
}

// Store holds the session's copy of the dataset. All edits made in the
// console land here and are lost on exit.
type Store struct {
	mu      sync.RWMutex
	data    dataset.Dataset
	version int
	updated time.Time
	clock   func() time.Time
}

// NewStore seeds a store from ds. The store keeps its own copy.
func NewStore(ds dataset.Dataset) *Store {
	return &Store{data: ds.Clone(), clock: time.Now, updated: time.Now()}
}

// Snapshot returns a deep copy of the current data.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Data: s.data.Clone(), Version: s.version, LastUpdated: s.updated}
}

// Version increments on every successful mutation.
func (s *Store) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Tax returns the tax with id, matched trimmed and case-insensitively.
func (s *Store) Tax(id string) (dataset.Tax, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.taxIndex(id)
	if i < 0 {
		return dataset.Tax{}, fmt.Errorf("tax %s: %w", strings.TrimSpace(id), ErrNotFound)
	}
	return s.data.Taxes[i], nil
}

// AddTax stores t under the next free TAX id and returns the stored row.
func (s *Store) AddTax(t dataset.Tax) dataset.Tax {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.data.Taxes))
	for i, tax := range s.data.Taxes {
		ids[i] = tax.ID
	}
	t.ID = nextID("TAX", ids)
	s.data.Taxes = append(s.data.Taxes, t)
	s.touch()
	return t
}

// UpdateTax replaces the tax with t.ID, keeping the stored id spelling.
func (s *Store) UpdateTax(t dataset.Tax) (dataset.Tax, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taxIndex(t.ID)
	if i < 0 {
		return dataset.Tax{}, fmt.Errorf("tax %s: %w", strings.TrimSpace(t.ID), ErrNotFound)
	}
	t.ID = s.data.Taxes[i].ID
	s.data.Taxes[i] = t
	s.touch()
	return t, nil
}

// Incident returns the incident with id, matched trimmed and case-insensitively.
func (s *Store) Incident(id string) (dataset.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.incidentIndex(id)
	if i < 0 {
		return dataset.Incident{}, fmt.Errorf("incident %s: %w", strings.TrimSpace(id), ErrNotFound)
	}
	return s.data.Incidents[i].Clone(), nil
}

// AddIncident stores inc under the next free ISS id and returns the stored row.
func (s *Store) AddIncident(inc dataset.Incident) dataset.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.data.Incidents))
	for i, existing := range s.data.Incidents {
		ids[i] = existing.ID
	}
	inc = inc.Clone()
	inc.ID = nextID("ISS", ids)
	s.data.Incidents = append(s.data.Incidents, inc)
	s.touch()
	return inc.Clone()
}

// UpdateIncident replaces the incident with inc.ID.
func (s *Store) UpdateIncident(inc dataset.Incident) (dataset.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.incidentIndex(inc.ID)
	if i < 0 {
		return dataset.Incident{}, fmt.Errorf("incident %s: %w", strings.TrimSpace(inc.ID), ErrNotFound)
	}
	inc = inc.Clone()
	inc.ID = s.data.Incidents[i].ID
	s.data.Incidents[i] = inc
	s.touch()
	return inc.Clone(), nil
}

// ResolveIncident applies the edited fields in inc and marks it Resolved.
// Only an incident whose stored status is Active can be resolved.
func (s *Store) ResolveIncident(inc dataset.Incident) (dataset.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.incidentIndex(inc.ID)
	if i < 0 {
		return dataset.Incident{}, fmt.Errorf("incident %s: %w", strings.TrimSpace(inc.ID), ErrNotFound)
	}
	if s.data.Incidents[i].Status != dataset.StatusActive {
		return dataset.Incident{}, fmt.Errorf("resolve %s (%s): %w", s.data.Incidents[i].ID, s.data.Incidents[i].Status, ErrNotResolvable)
	}
	inc = inc.Clone()
	inc.ID = s.data.Incidents[i].ID
	inc.Status = dataset.StatusResolved
	s.data.Incidents[i] = inc
	s.touch()
	return inc.Clone(), nil
}

func (s *Store) touch() {
	s.version++
	if s.clock != nil {
		s.updated = s.clock()
	}
}

func (s *Store) taxIndex(id string) int {
	key := normalizeID(id)
	for i, t := range s.data.Taxes {
		if normalizeID(t.ID) == key {
			return i
		}
	}
	return -1
}

func (s *Store) incidentIndex(id string) int {
	key := normalizeID(id)
	for i, inc := range s.data.Incidents {
		if normalizeID(inc.ID) == key {
			return i
		}
	}
	return -1
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// nextID returns prefix followed by one more than the highest numeric suffix
// among ids, zero-padded to three digits.
func nextID(prefix string, ids []string) string {
	highest := 0
	for _, id := range ids {
		rest, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(id)), prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}
