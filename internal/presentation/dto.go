package presentation

import (
	"time"

	"github.com/zjrosen/platekeeper/internal/plates/application"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
)

// PlateDTO is an authorized plate for presentation. Field names follow the
// stored document fields.
type PlateDTO struct {
	ID        string    `json:"id"`
	Plate     string    `json:"plate"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlacklistDTO is a blacklisted plate for presentation.
type BlacklistDTO struct {
	Plate     string    `json:"plate"`
	Timestamp time.Time `json:"timestamp"`
}

// EntryDTO is one entry feed event for presentation.
type EntryDTO struct {
	ID        int64     `json:"id"`
	Plate     string    `json:"plate"`
	Timestamp time.Time `json:"timestamp"`
}

// ResultDTO reports how a workflow ended.
type ResultDTO struct {
	Outcome string        `json:"outcome"`
	Message string        `json:"message"`
	Plate   *PlateDTO     `json:"plate,omitempty"`
	Blocked *BlacklistDTO `json:"blacklist,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// FromPlate converts a domain record to a DTO.
func FromPlate(r *domain.AuthorizedRecord) PlateDTO {
	return PlateDTO{
		ID:        r.ID(),
		Plate:     r.Key().String(),
		Owner:     r.Owner(),
		CreatedAt: r.CreatedAt(),
	}
}

// FromPlates converts a slice of domain records to DTOs.
func FromPlates(records []*domain.AuthorizedRecord) []PlateDTO {
	dtos := make([]PlateDTO, len(records))
	for i, r := range records {
		dtos[i] = FromPlate(r)
	}
	return dtos
}

// FromBlacklist converts a blacklist record to a DTO.
func FromBlacklist(r *domain.BlacklistRecord) BlacklistDTO {
	return BlacklistDTO{Plate: r.Key().String(), Timestamp: r.BlacklistedAt()}
}

// FromBlacklists converts a slice of blacklist records to DTOs.
func FromBlacklists(records []*domain.BlacklistRecord) []BlacklistDTO {
	dtos := make([]BlacklistDTO, len(records))
	for i, r := range records {
		dtos[i] = FromBlacklist(r)
	}
	return dtos
}

// FromEntry converts an entry event to a DTO.
func FromEntry(e *domain.EntryEvent) EntryDTO {
	return EntryDTO{ID: e.ID(), Plate: e.Plate().String(), Timestamp: e.Timestamp()}
}

// FromEntries converts a slice of entry events to DTOs.
func FromEntries(events []*domain.EntryEvent) []EntryDTO {
	dtos := make([]EntryDTO, len(events))
	for i, e := range events {
		dtos[i] = FromEntry(e)
	}
	return dtos
}

// FromRegistration describes a registration outcome.
func FromRegistration(r application.RegistrationResult) ResultDTO {
	dto := ResultDTO{Outcome: string(r.Outcome), Error: errString(r.Err)}
	if r.Record != nil {
		p := FromPlate(r.Record)
		dto.Plate = &p
	}
	if r.Conflict != nil {
		b := FromBlacklist(r.Conflict)
		dto.Blocked = &b
	}

	switch r.Outcome {
	case application.OutcomeSuccess:
		dto.Message = "Plate " + r.Record.Key().String() + " registered for " + r.Record.Owner()
		if r.CleanupErr != nil {
			dto.Message += " (blacklist cleanup failed: " + r.CleanupErr.Error() + ")"
		}
	case application.OutcomeDuplicate:
		dto.Message = "This plate is already registered"
	case application.OutcomeBlacklistConflict:
		dto.Message = "This plate is on the blacklist"
	case application.OutcomeCancelled:
		dto.Message = "Registration cancelled; blacklist unchanged"
	default:
		dto.Message = dto.Error
	}
	return dto
}

// FromEdit describes an update or delete outcome.
func FromEdit(r application.EditResult, verb string) ResultDTO {
	dto := ResultDTO{Outcome: string(r.Outcome), Error: errString(r.Err)}
	if r.Record != nil {
		p := FromPlate(r.Record)
		dto.Plate = &p
	}

	switch r.Outcome {
	case application.OutcomeSuccess:
		dto.Message = "Plate " + verb
	case application.OutcomeCancelled:
		dto.Message = "Nothing " + verb
	case application.OutcomeNotFound:
		dto.Message = "The plate no longer exists"
	case application.OutcomeDuplicate:
		dto.Message = "Another record already holds this plate"
	default:
		dto.Message = dto.Error
	}
	return dto
}

// FromTransfer describes a blacklist move or drop outcome.
func FromTransfer(r application.TransferResult, verb string) ResultDTO {
	dto := ResultDTO{Outcome: string(r.Outcome), Error: errString(r.Err)}
	if r.Record != nil {
		b := FromBlacklist(r.Record)
		dto.Blocked = &b
	}

	switch r.Outcome {
	case application.OutcomeSuccess:
		dto.Message = "Plate " + r.Record.Key().String() + " " + verb
	case application.OutcomePartial:
		dto.Message = "Plate " + r.Record.Key().String() + " was blacklisted but is still authorized: " + dto.Error
	case application.OutcomeCancelled:
		dto.Message = "Nothing changed"
	case application.OutcomeNotFound:
		dto.Message = "This plate is not on the blacklist"
	default:
		dto.Message = dto.Error
	}
	return dto
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
