package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/db"
)

var _ db.Database = (*DB)(nil)

func TestPendingMigrations(t *testing.T) {
	pending, err := pendingMigrations(nil)
	require.NoError(t, err)
	require.NotEmpty(t, pending)
	assert.Equal(t, "001_roster.sql", pending[0])
	assert.IsNonDecreasing(t, pending)

	pending, err = pendingMigrations([]string{"001_roster.sql"})
	require.NoError(t, err)
	assert.NotContains(t, pending, "001_roster.sql")
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, nonNil(nil))
	assert.Equal(t, []string{"CT"}, nonNil([]string{"CT"}))
}
