package domain

import "time"

// AuthorizedRecord is a plate that is currently permitted entry.
// All fields are unexported to enforce encapsulation; use the constructor
// and getter methods to access data.
type AuthorizedRecord struct {
	id        string
	key       PlateKey
	owner     string
	createdAt time.Time
}

// NewAuthorizedRecord creates an AuthorizedRecord. The id is the store document
// identifier; it is opaque to the workflows.
func NewAuthorizedRecord(id string, key PlateKey, owner string, createdAt time.Time) *AuthorizedRecord {
	return &AuthorizedRecord{
		id:        id,
		key:       key,
		owner:     owner,
		createdAt: createdAt,
	}
}

// ID returns the store document identifier of this record.
func (r *AuthorizedRecord) ID() string {
	return r.id
}

// Key returns the normalized plate key.
func (r *AuthorizedRecord) Key() PlateKey {
	return r.key
}

// Owner returns the registered owner name.
func (r *AuthorizedRecord) Owner() string {
	return r.owner
}

// CreatedAt returns when the plate was registered.
func (r *AuthorizedRecord) CreatedAt() time.Time {
	return r.createdAt
}

// Apply returns a copy of the record with the update's fields replaced.
// The id and creation time never change on edit.
func (r *AuthorizedRecord) Apply(u AuthorizedUpdate) *AuthorizedRecord {
	return &AuthorizedRecord{
		id:        r.id,
		key:       u.Key,
		owner:     u.Owner,
		createdAt: r.createdAt,
	}
}

// AuthorizedUpdate carries the mutable fields of an AuthorizedRecord.
type AuthorizedUpdate struct {
	Key   PlateKey
	Owner string
}
