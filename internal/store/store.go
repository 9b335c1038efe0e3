// Package store holds the canonical in-memory transaction collection, the
// shared substrate every core operation reads and writes. Persistence is a
// separate concern: callers snapshot the store and hand the snapshot to a
// Persister after each mutation.
package store

import (
	"errors"
	"sync"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

// ErrMissingID is returned when a record reaches the store without an
// assigned identifier. IDs are always minted by the caller before insertion.
var ErrMissingID = errors.New("transaction id not assigned")

// TransactionStore maps transaction IDs to records, preserving insertion
// order for listings. Every mutation bumps a version stamp that callers use
// to invalidate derived views. The design assumes one logical writer at a
// time; the mutex only guards against accidental cross-goroutine use.
type TransactionStore struct {
	mu      sync.Mutex
	byID    map[string]core.Transaction
	order   []string
	version uint64
}

func New() *TransactionStore {
	return &TransactionStore{byID: make(map[string]core.Transaction)}
}

// NewFromSnapshot seeds a store from a previously persisted snapshot.
func NewFromSnapshot(transactions []core.Transaction) *TransactionStore {
	s := New()
	for _, t := range transactions {
		if t.ID == "" {
			continue
		}
		if _, dup := s.byID[t.ID]; dup {
			continue
		}
		s.byID[t.ID] = t
		s.order = append(s.order, t.ID)
	}
	return s
}

// Insert adds a record whose ID was assigned by the caller.
func (s *TransactionStore) Insert(t core.Transaction) error {
	if t.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.byID[t.ID] = t
	s.version++
	return nil
}

// Get returns the record for id, or ErrNotFound.
func (s *TransactionStore) Get(id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	return t, nil
}

// Update applies mutator to the record for id. ID and Kind are immutable
// post-creation; whatever the mutator sets there is discarded. Returns
// ErrNotFound when the id is unknown.
func (s *TransactionStore) Update(id string, mutator func(*core.Transaction)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	mutated := t
	mutator(&mutated)
	mutated.ID = t.ID
	mutated.Kind = t.Kind
	if err := mutated.Validate(); err != nil {
		return err
	}
	s.byID[id] = mutated
	s.version++
	return nil
}

// Delete removes the record for id. Deleting an unknown id is a no-op.
func (s *TransactionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.version++
}

// DeleteByCategory bulk-removes every record of the given category and
// returns how many were removed. Used by the superseding statement import.
func (s *TransactionStore) DeleteByCategory(category string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	kept := s.order[:0]
	for _, id := range s.order {
		if s.byID[id].Category == category {
			delete(s.byID, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	if removed > 0 {
		s.version++
	}
	return removed
}

// List produces a snapshot in insertion order. Later mutations of the store
// do not affect a snapshot already taken.
func (s *TransactionStore) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of stored records.
func (s *TransactionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Version returns the current mutation stamp. It increases on every
// successful mutation and never decreases.
func (s *TransactionStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
