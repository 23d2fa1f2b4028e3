package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"users", "players", "matches", "metrics"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}
}

func TestInitDB_RatingConstraint(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO players (id, owner_id, name, position, rating, created_at) VALUES ('p1', 'u1', 'Too Good', 'Forward', 101, 0)`)
	assert.Error(t, err, "ratings above 100 must be rejected by the schema")

	_, err = db.Exec(`INSERT INTO players (id, owner_id, name, position, rating, created_at) VALUES ('p2', 'u1', 'Fine', 'Forward', 100, 0)`)
	assert.NoError(t, err)
}
