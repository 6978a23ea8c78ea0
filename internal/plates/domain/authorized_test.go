package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewAuthorizedRecord(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	rec := NewAuthorizedRecord("p1", "34ABC123", "Ali Veli", createdAt)

	require.Equal(t, "p1", rec.ID())
	require.Equal(t, PlateKey("34ABC123"), rec.Key())
	require.Equal(t, "Ali Veli", rec.Owner())
	require.Equal(t, createdAt, rec.CreatedAt())
}

func TestAuthorizedRecord_Apply(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	rec := NewAuthorizedRecord("p1", "34ABC123", "Ali Veli", createdAt)

	updated := rec.Apply(AuthorizedUpdate{Key: "34ABC124", Owner: "Ayşe"})

	require.Equal(t, "p1", updated.ID(), "id must survive an edit")
	require.Equal(t, createdAt, updated.CreatedAt(), "createdAt must survive an edit")
	require.Equal(t, PlateKey("34ABC124"), updated.Key())
	require.Equal(t, "Ayşe", updated.Owner())

	// The original is left untouched
	require.Equal(t, PlateKey("34ABC123"), rec.Key())
	require.Equal(t, "Ali Veli", rec.Owner())
}

func TestEntryEvent_SetID(t *testing.T) {
	ts := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	event := NewEntryEvent("01AAA1", ts)
	require.Equal(t, int64(0), event.ID(), "new event should have ID 0")

	event.SetID(42)
	require.Equal(t, int64(42), event.ID())
	require.Equal(t, PlateKey("01AAA1"), event.Plate())
	require.Equal(t, ts, event.Timestamp())
}
