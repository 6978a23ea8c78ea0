package sqlite

import (
	"time"

	"github.com/zjrosen/platekeeper/internal/plates/domain"
)

// Row models map one-to-one to table columns. Times are stored as Unix
// milliseconds.

type plateModel struct {
	ID        string
	Plate     string
	Owner     string
	CreatedAt int64
}

func toPlateModel(r *domain.AuthorizedRecord) plateModel {
	return plateModel{
		ID:        r.ID(),
		Plate:     r.Key().String(),
		Owner:     r.Owner(),
		CreatedAt: r.CreatedAt().UnixMilli(),
	}
}

func (m plateModel) toDomain() *domain.AuthorizedRecord {
	return domain.NewAuthorizedRecord(m.ID, domain.PlateKey(m.Plate), m.Owner, time.UnixMilli(m.CreatedAt))
}

type blacklistModel struct {
	Plate     string
	Timestamp int64
}

func toBlacklistModel(r *domain.BlacklistRecord) blacklistModel {
	return blacklistModel{
		Plate:     r.Key().String(),
		Timestamp: r.BlacklistedAt().UnixMilli(),
	}
}

func (m blacklistModel) toDomain() *domain.BlacklistRecord {
	return domain.NewBlacklistRecord(domain.PlateKey(m.Plate), time.UnixMilli(m.Timestamp))
}

type entryModel struct {
	ID        int64
	Plate     string
	Timestamp int64
}

func (m entryModel) toDomain() *domain.EntryEvent {
	return domain.ReconstituteEntryEvent(m.ID, domain.PlateKey(m.Plate), time.UnixMilli(m.Timestamp))
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
