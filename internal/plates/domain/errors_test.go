package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  &ValidationError{Field: "owner", Message: "must not be empty"},
			want: "invalid owner: must not be empty",
		},
		{
			name: "duplicate authorized",
			err:  &DuplicateAuthorizedError{Key: "06XYZ99"},
			want: "plate 06XYZ99 is already registered",
		},
		{
			name: "duplicate key",
			err:  &DuplicateKeyError{Collection: CollectionBlacklist, Key: "35TTT01"},
			want: "blacklist: duplicate key 35TTT01",
		},
		{
			name: "not found by id",
			err:  &NotFoundError{Collection: CollectionPlates, ID: "p1"},
			want: "plates: no record with id p1",
		},
		{
			name: "not found by key",
			err:  &NotFoundError{Collection: CollectionBlacklist, Key: "35TTT01"},
			want: "blacklist: no record for plate 35TTT01",
		},
		{
			name: "empty feed",
			err:  &NotFoundError{Collection: CollectionEntries},
			want: "entries: no records",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestNotFoundError_As(t *testing.T) {
	wrapped := fmt.Errorf("update plate: %w", &NotFoundError{Collection: CollectionPlates, ID: "p1"})

	var notFound *NotFoundError
	require.True(t, errors.As(wrapped, &notFound), "wrapped error should unwrap to NotFoundError")
	require.Equal(t, "p1", notFound.ID)
}
