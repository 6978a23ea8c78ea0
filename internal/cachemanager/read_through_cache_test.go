package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls int
	rows  []plateRow
	err   error
}

func (l *countingLoader) load(_ context.Context, owner string) ([]plateRow, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	out := make([]plateRow, 0, len(l.rows))
	for _, r := range l.rows {
		if owner == "" || r.Owner == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestReadThroughCache_Get_LoadsOnceThenHits(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{rows: []plateRow{{Plate: "34ABC123", Owner: "Ayşe"}}}
	rt := NewReadThroughCache[snapshotKey, []plateRow, string](newTestManager(), loader.load, false)

	first, err := rt.Get(ctx, "plates", "", time.Minute)
	require.NoError(t, err)
	second, err := rt.Get(ctx, "plates", "", time.Minute)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, loader.calls)
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{rows: []plateRow{{Plate: "34ABC123"}}}
	rt := NewReadThroughCache[snapshotKey, []plateRow, string](newTestManager(), loader.load, true)

	for range 3 {
		_, err := rt.Get(ctx, "plates", "", time.Minute)
		require.NoError(t, err)
	}
	require.Equal(t, 3, loader.calls)

	_, err := rt.GetWithRefresh(ctx, "plates", "", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 4, loader.calls)
}

func TestReadThroughCache_Get_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{err: errors.New("database is locked")}
	rt := NewReadThroughCache[snapshotKey, []plateRow, string](newTestManager(), loader.load, false)

	_, err := rt.Get(ctx, "plates", "", time.Minute)
	require.EqualError(t, err, "database is locked")

	loader.err = nil
	loader.rows = []plateRow{{Plate: "06XYZ9"}}
	rows, err := rt.Get(ctx, "plates", "", time.Minute)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 2, loader.calls)
}

func TestReadThroughCache_GetWithRefresh(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{rows: []plateRow{{Plate: "A", Owner: "x"}, {Plate: "B", Owner: "y"}}}
	rt := NewReadThroughCache[snapshotKey, []plateRow, string](newTestManager(), loader.load, false)

	rows, err := rt.GetWithRefresh(ctx, "owner:x", "x", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []plateRow{{Plate: "A", Owner: "x"}}, rows)

	_, err = rt.GetWithRefresh(ctx, "owner:x", "x", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, loader.calls)
}

func TestReadThroughCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{rows: []plateRow{{Plate: "A"}}}
	rt := NewReadThroughCache[snapshotKey, []plateRow, string](newTestManager(), loader.load, false)

	_, err := rt.Get(ctx, "plates", "", time.Minute)
	require.NoError(t, err)

	loader.rows = append(loader.rows, plateRow{Plate: "B"})
	require.NoError(t, rt.Invalidate(ctx, "plates"))

	rows, err := rt.Get(ctx, "plates", "", time.Minute)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 2, loader.calls)
}
