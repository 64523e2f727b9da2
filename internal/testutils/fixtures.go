package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
)

// Fixture defaults
const (
	TestOwnerID  = "char-test-001"
	TestItemName = "Orb of Testing"
	TestSeed     = 1234
)

// CreateTestItem creates a seeded item of kind and grants it xp, so the
// same arguments always produce the same item
func CreateTestItem(t *testing.T, id string, kind equipment.Kind, xp uint64) *equipment.Item {
	t.Helper()

	src := rng.NewSeeded(TestSeed)
	item, err := equipment.New(src, &equipment.Config{ID: id, Name: TestItemName, Kind: kind})
	require.NoError(t, err, "failed to create test item")

	item.Advance(src, xp)
	return item
}

// CreateTestSnapshot returns the snapshot of CreateTestItem
func CreateTestSnapshot(t *testing.T, id string, kind equipment.Kind, xp uint64) *equipment.Snapshot {
	t.Helper()
	return CreateTestItem(t, id, kind, xp).Snapshot()
}
