package metrics

import (
	"testing"

	"github.com/mauv0809/kickabout/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) Store {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return NewStore(db)
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestDB(t)

	// 1. Initially, there should be no metrics
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	// 2. Increment a new key
	store.Increment(KeyTeamsGenerated)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyTeamsGenerated: 1}, metrics)

	// 3. Increment the same key again
	store.Increment(KeyTeamsGenerated)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyTeamsGenerated: 2}, metrics)

	// 4. Increment a different key
	store.Increment(KeyMatchesPlanned)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyTeamsGenerated: 2,
		KeyMatchesPlanned: 1,
	}, metrics)
}

func TestStoreMock(t *testing.T) {
	m := NewStoreMock()
	m.Increment("a")
	m.Increment("a")
	got, err := m.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2}, got)
}
