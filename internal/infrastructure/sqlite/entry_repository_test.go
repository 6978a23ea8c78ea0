package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/pubsub"
	"github.com/zjrosen/platekeeper/internal/testutil"
)

func TestEntryRepository_AppendAssignsIDAndPublishes(t *testing.T) {
	db := setupTestDB(t)
	repo := db.EntryRepository()
	ctx := context.Background()
	events := subscribe(t, db)

	event := domain.NewEntryEvent("34ABC123", testutil.StandardTime)
	require.NoError(t, repo.Append(ctx, event))
	require.Positive(t, event.ID())

	e := nextChange(t, events)
	require.Equal(t, pubsub.CreatedEvent, e.Type)
	require.Equal(t, domain.Change{Collection: domain.CollectionEntries, Key: "34ABC123"}, e.Payload)
}

func TestEntryRepository_LatestEmpty(t *testing.T) {
	_, err := setupTestDB(t).EntryRepository().Latest(context.Background())
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, domain.CollectionEntries, nf.Collection)
}

func TestEntryRepository_LatestUsesAppendOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := db.EntryRepository()
	ctx := context.Background()

	// Same timestamp: append order decides
	require.NoError(t, repo.Append(ctx, domain.NewEntryEvent("AAA1", testutil.StandardTime)))
	require.NoError(t, repo.Append(ctx, domain.NewEntryEvent("BBB2", testutil.StandardTime)))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PlateKey("BBB2"), latest.Plate())
	require.True(t, testutil.StandardTime.Equal(latest.Timestamp()))
}

func TestEntryRepository_ListRecent(t *testing.T) {
	db := setupTestDB(t)
	testutil.NewBuilder(t, db.Connection()).
		WithEntry("A1", testutil.StandardTime).
		WithEntry("B2", testutil.StandardTime.Add(time.Second)).
		WithEntry("C3", testutil.StandardTime.Add(2*time.Second)).
		Build()
	repo := db.EntryRepository()
	ctx := context.Background()

	events, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, domain.PlateKey("C3"), events[0].Plate())
	require.Equal(t, domain.PlateKey("B2"), events[1].Plate())

	none, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}
