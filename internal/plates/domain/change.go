package domain

// Collection names a registry collection. The values match the table names of
// the backing store.
type Collection string

const (
	CollectionPlates    Collection = "plates"
	CollectionBlacklist Collection = "blacklist"
	CollectionEntries   Collection = "entries"
)

// Change describes a successful mutation of one collection. The kind of
// mutation travels with the event that carries the Change.
type Change struct {
	Collection Collection
	Key        PlateKey
	// ID is the document id for the plates collection and empty otherwise.
	ID string
}
