package domain

import "time"

// EntryEvent records a single vehicle pass reported by the gate sensor.
type EntryEvent struct {
	id        int64
	plate     PlateKey
	timestamp time.Time
}

// NewEntryEvent creates an EntryEvent for plate observed at timestamp.
// The ID is left as zero; it will be assigned by the persistence layer.
func NewEntryEvent(plate PlateKey, timestamp time.Time) *EntryEvent {
	return &EntryEvent{
		plate:     plate,
		timestamp: timestamp,
	}
}

// ReconstituteEntryEvent creates an EntryEvent from stored data.
func ReconstituteEntryEvent(id int64, plate PlateKey, timestamp time.Time) *EntryEvent {
	return &EntryEvent{
		id:        id,
		plate:     plate,
		timestamp: timestamp,
	}
}

// ID returns the feed sequence number. Returns 0 before the event is stored.
func (e *EntryEvent) ID() int64 {
	return e.id
}

// SetID sets the sequence number. Called by the persistence layer after insert.
func (e *EntryEvent) SetID(id int64) {
	e.id = id
}

// Plate returns the plate key seen by the sensor.
func (e *EntryEvent) Plate() PlateKey {
	return e.plate
}

// Timestamp returns when the vehicle passed.
func (e *EntryEvent) Timestamp() time.Time {
	return e.timestamp
}
