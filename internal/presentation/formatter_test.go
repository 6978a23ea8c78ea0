package presentation

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/platekeeper/internal/plates/application"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
)

var fixedNow = time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)

func newTestFormatter(asJSON bool) (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, asJSON)
	f.now = func() time.Time { return fixedNow }
	return f, &buf
}

func TestFormatPlates_JSON(t *testing.T) {
	f, buf := newTestFormatter(true)
	rec := domain.NewAuthorizedRecord("p1", "34ABC123", "Ali Veli", fixedNow.Add(-time.Hour))

	require.NoError(t, f.FormatPlates(FromPlates([]*domain.AuthorizedRecord{rec})))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "p1", got[0]["id"])
	require.Equal(t, "34ABC123", got[0]["plate"])
	require.Equal(t, "Ali Veli", got[0]["owner"])
	require.Contains(t, got[0], "createdAt")
}

func TestFormatPlates_Table(t *testing.T) {
	f, buf := newTestFormatter(false)
	rec := domain.NewAuthorizedRecord("p1", "34ABC123", "Ali Veli", fixedNow.Add(-3*time.Hour))

	require.NoError(t, f.FormatPlates(FromPlates([]*domain.AuthorizedRecord{rec})))

	out := buf.String()
	require.Contains(t, out, "PLATE")
	require.Contains(t, out, "34ABC123")
	require.Contains(t, out, "Ali Veli")
	require.Contains(t, out, "3h ago")
}

func TestFormatBlacklist_Empty(t *testing.T) {
	f, buf := newTestFormatter(false)

	require.NoError(t, f.FormatBlacklist(nil))
	require.Contains(t, buf.String(), "(none)")
}

func TestFormatEntries_Table(t *testing.T) {
	f, buf := newTestFormatter(false)
	events := []*domain.EntryEvent{domain.ReconstituteEntryEvent(7, "06XYZ99", fixedNow.Add(-2*time.Minute))}

	require.NoError(t, f.FormatEntries(FromEntries(events)))
	require.Contains(t, buf.String(), "06XYZ99")
	require.Contains(t, buf.String(), "2m ago")
}

func TestFromRegistration(t *testing.T) {
	rec := domain.NewAuthorizedRecord("p1", "35TTT01", "Mert", fixedNow)

	dto := FromRegistration(application.RegistrationResult{Outcome: application.OutcomeSuccess, Record: rec})
	require.Equal(t, "success", dto.Outcome)
	require.Equal(t, "Plate 35TTT01 registered for Mert", dto.Message)
	require.Equal(t, "p1", dto.Plate.ID)

	conflict := domain.NewBlacklistRecord("35TTT01", fixedNow)
	dto = FromRegistration(application.RegistrationResult{Outcome: application.OutcomeBlacklistConflict, Conflict: conflict})
	require.Equal(t, "This plate is on the blacklist", dto.Message)
	require.Equal(t, "35TTT01", dto.Blocked.Plate)

	dto = FromRegistration(application.RegistrationResult{
		Outcome: application.OutcomeValidation,
		Err:     &domain.ValidationError{Field: "owner", Message: "must not be empty"},
	})
	require.Equal(t, "invalid owner: must not be empty", dto.Message)
}

func TestFromTransfer_Partial(t *testing.T) {
	dto := FromTransfer(application.TransferResult{
		Outcome: application.OutcomePartial,
		Record:  domain.NewBlacklistRecord("01AAA1", fixedNow),
		Err:     errors.New("database is locked"),
	}, "moved to blacklist")

	require.Equal(t, "partial", dto.Outcome)
	require.Contains(t, dto.Message, "still authorized")
	require.Equal(t, "database is locked", dto.Error)
}

func TestFormatResult(t *testing.T) {
	f, buf := newTestFormatter(false)
	require.NoError(t, f.FormatResult(ResultDTO{Outcome: "success", Message: "Plate deleted"}))
	require.Equal(t, "Plate deleted\n", buf.String())

	f, buf = newTestFormatter(true)
	require.NoError(t, f.FormatResult(ResultDTO{Outcome: "cancelled", Message: "Nothing deleted"}))
	require.Contains(t, buf.String(), `"outcome": "cancelled"`)
}
