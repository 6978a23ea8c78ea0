package application

import (
	"github.com/zjrosen/platekeeper/internal/plates/domain"
)

// Outcome classifies how a workflow invocation ended. Every outcome except
// OutcomeSuccess carries enough data in its result for the caller to render it.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeValidation        Outcome = "validation"
	OutcomeDuplicate         Outcome = "duplicate"
	OutcomeBlacklistConflict Outcome = "blacklist_conflict"
	OutcomeCancelled         Outcome = "cancelled"
	OutcomeNotFound          Outcome = "not_found"
	OutcomePartial           Outcome = "partial"
)

// RegistrationResult is returned by Register, ConfirmOverride and RegisterWithGate.
type RegistrationResult struct {
	Outcome Outcome
	// Record is the inserted record on success, or the existing record on duplicate.
	Record *domain.AuthorizedRecord
	// Conflict is the blacklist record that blocked registration.
	Conflict *domain.BlacklistRecord
	// Pending resumes a blacklist conflict via ConfirmOverride.
	Pending *PendingOverride
	// Err is the typed domain error for validation and duplicate outcomes.
	Err error
	// CleanupErr is set when the best-effort blacklist cleanup after a
	// successful insert failed. The insert stands.
	CleanupErr error
}

// EditResult is returned by UpdatePlate and DeletePlate.
type EditResult struct {
	Outcome Outcome
	Record  *domain.AuthorizedRecord
	Err     error
}

// TransferResult is returned by MoveToBlacklist and DropFromBlacklist.
type TransferResult struct {
	Outcome Outcome
	Record  *domain.BlacklistRecord
	// Err is the typed domain error for validation and not-found outcomes, or
	// the failed authorized delete for OutcomePartial.
	Err error
}

// PendingOverride is phase one of a blacklist conflict. It is consumed by the
// first ConfirmOverride call.
type PendingOverride struct {
	key      domain.PlateKey
	owner    string
	conflict *domain.BlacklistRecord
	opts     RegisterOptions
	used     bool
}

// Key returns the normalized plate awaiting a decision.
func (p *PendingOverride) Key() domain.PlateKey { return p.key }

// Owner returns the trimmed owner the plate will be registered to.
func (p *PendingOverride) Owner() string { return p.owner }

// Conflict returns the blacklist record found at phase one.
func (p *PendingOverride) Conflict() *domain.BlacklistRecord { return p.conflict }
