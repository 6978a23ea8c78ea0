package domain

import "fmt"

// ValidationError is returned when user input cannot form a valid record.
// It is recoverable: the caller should re-prompt.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DuplicateAuthorizedError is returned by the registration workflow when the
// plate is already in the authorized collection.
type DuplicateAuthorizedError struct {
	Key PlateKey
}

func (e *DuplicateAuthorizedError) Error() string {
	return fmt.Sprintf("plate %s is already registered", e.Key)
}

// DuplicateKeyError is returned by a repository when an insert or update would
// create a second record with the same key in one collection.
type DuplicateKeyError struct {
	Collection Collection
	Key        PlateKey
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate key %s", e.Collection, e.Key)
}

// NotFoundError is returned when a lookup or update targets a record that does
// not exist, typically because another session deleted it concurrently.
// Exactly one of ID or Key is set.
type NotFoundError struct {
	Collection Collection
	ID         string
	Key        PlateKey
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: no record with id %s", e.Collection, e.ID)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s: no record for plate %s", e.Collection, e.Key)
	}
	return fmt.Sprintf("%s: no records", e.Collection)
}
