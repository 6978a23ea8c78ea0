package domain

import "time"

// BlacklistRecord is a plate that is currently denied entry.
// The plate key itself is the record identity.
type BlacklistRecord struct {
	key           PlateKey
	blacklistedAt time.Time
}

// NewBlacklistRecord creates a BlacklistRecord for key.
func NewBlacklistRecord(key PlateKey, blacklistedAt time.Time) *BlacklistRecord {
	return &BlacklistRecord{
		key:           key,
		blacklistedAt: blacklistedAt,
	}
}

// Key returns the blacklisted plate key.
func (r *BlacklistRecord) Key() PlateKey {
	return r.key
}

// BlacklistedAt returns when the plate was put on the blacklist.
func (r *BlacklistRecord) BlacklistedAt() time.Time {
	return r.blacklistedAt
}
