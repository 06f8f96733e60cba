package store

import (
	"fmt"
	"sync"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
)

// MemoryStore is an in-memory Gateway for tests and ephemeral rosters.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.Record
	stored  bool
	saves   int
	failErr error
}

var _ Gateway = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store. Load returns ErrNotFound until the
// first Save.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a store that already holds records.
func NewMemoryStoreWith(records []models.Record) *MemoryStore {
	return &MemoryStore{records: models.CloneRecords(records), stored: true}
}

// Load returns a deep copy of the stored records.
func (m *MemoryStore) Load() ([]models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.stored {
		return nil, fmt.Errorf("load memory: %w", ErrNotFound)
	}
	out := models.CloneRecords(m.records)
	if out == nil {
		out = []models.Record{}
	}
	return out, nil
}

// Save replaces the stored records with a deep copy.
func (m *MemoryStore) Save(records []models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return persistErr("save memory", m.failErr)
	}
	m.records = models.CloneRecords(records)
	m.stored = true
	m.saves++
	return nil
}

// FailSaves makes every later Save fail with err. Pass nil to recover.
func (m *MemoryStore) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// Saves returns the number of successful saves.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Records returns a deep copy of the stored records without counting as a Load.
func (m *MemoryStore) Records() []models.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.CloneRecords(m.records)
}
