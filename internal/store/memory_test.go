package store_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
	"github.com/ajitpratap0/zodiac-roster/internal/store"
)

func TestMemoryStore_NotFoundUntilSaved(t *testing.T) {
	m := store.NewMemoryStore()
	_, err := m.Load()
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, m.Save(nil))
	got, err := m.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, m.Saves())
}

func TestMemoryStore_DeepCopies(t *testing.T) {
	in := sampleRecords()
	m := store.NewMemoryStoreWith(in)

	*in[0].Email = "mutated@example.com"
	got, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", *got[0].Email)

	*got[0].SunSign = "Leo"
	again, err := m.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(sampleRecords(), again); diff != "" {
		t.Errorf("stored records changed (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_FailSaves(t *testing.T) {
	m := store.NewMemoryStoreWith(sampleRecords())
	boom := errors.New("disk full")
	m.FailSaves(boom)

	err := m.Save([]models.Record{})
	assert.ErrorIs(t, err, store.ErrPersistence)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.Saves())
	assert.Len(t, m.Records(), 2)

	m.FailSaves(nil)
	require.NoError(t, m.Save([]models.Record{}))
	assert.Empty(t, m.Records())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	m := store.NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.Save(sampleRecords())
		}()
		go func() {
			defer wg.Done()
			_, _ = m.Load()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, m.Saves())
}
