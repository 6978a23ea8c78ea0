package application

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/tracing"
)

// RegisterOptions tunes Register.
type RegisterOptions struct {
	// RemoveFromBlacklistIfAuthorized deletes any blacklist record for the key
	// after a successful insert. Set when registration is the second half of
	// lifting a blacklisting.
	RemoveFromBlacklistIfAuthorized bool
}

var (
	// ErrNoPendingOverride is returned by ConfirmOverride without a pending conflict.
	ErrNoPendingOverride = errors.New("no pending blacklist override")
	// ErrOverrideUsed is returned when a PendingOverride is confirmed twice.
	ErrOverrideUsed = errors.New("blacklist override already decided")
)

// Register is phase one of registration. It validates input, rejects
// duplicates without mutating, and stops at a blacklist conflict, returning a
// PendingOverride for ConfirmOverride. Otherwise the plate is inserted.
func (s *RegistryService) Register(ctx context.Context, rawPlate, owner string, opts RegisterOptions) (RegistrationResult, error) {
	ctx, span := tracing.StartWorkflow(ctx, s.tracer, "register",
		attribute.String(tracing.AttrPlateKey, domain.Normalize(rawPlate).String()))
	result, err := s.register(ctx, rawPlate, owner, opts)
	tracing.FinishWorkflow(span, string(result.Outcome), err)
	return result, err
}

func (s *RegistryService) register(ctx context.Context, rawPlate, owner string, opts RegisterOptions) (RegistrationResult, error) {
	key, owner, verr := validate(rawPlate, owner)
	if verr != nil {
		return RegistrationResult{Outcome: OutcomeValidation, Err: verr}, nil
	}

	existing, err := s.plates.FindByKey(ctx, key)
	switch {
	case err == nil:
		log.Debug(log.CatRegistry, "registration rejected: already registered", "plate", key, "id", existing.ID())
		return RegistrationResult{
			Outcome: OutcomeDuplicate,
			Record:  existing,
			Err:     &domain.DuplicateAuthorizedError{Key: key},
		}, nil
	case !isNotFound(err):
		log.ErrorErr(log.CatRegistry, "authorized lookup failed", err, "plate", key)
		return RegistrationResult{}, fmt.Errorf("checking authorized plates: %w", err)
	}

	conflict, err := s.blacklist.FindByKey(ctx, key)
	switch {
	case err == nil:
		log.Info(log.CatRegistry, "registration paused: plate is blacklisted", "plate", key)
		return RegistrationResult{
			Outcome:  OutcomeBlacklistConflict,
			Conflict: conflict,
			Pending:  &PendingOverride{key: key, owner: owner, conflict: conflict, opts: opts},
		}, nil
	case !isNotFound(err):
		log.ErrorErr(log.CatRegistry, "blacklist lookup failed", err, "plate", key)
		return RegistrationResult{}, fmt.Errorf("checking blacklist: %w", err)
	}

	result, err := s.insert(ctx, key, owner)
	if err != nil || result.Outcome != OutcomeSuccess {
		return result, err
	}

	if opts.RemoveFromBlacklistIfAuthorized {
		// Best effort: the insert is not rolled back
		if err := s.blacklist.Remove(ctx, key); err != nil {
			log.Warn(log.CatRegistry, "blacklist cleanup after registration failed", "plate", key, "error", err)
			result.CleanupErr = fmt.Errorf("removing %s from blacklist: %w", key, err)
		}
	}
	return result, nil
}

// ConfirmOverride is phase two of a blacklist conflict. On DecisionConfirm the
// blacklist record is deleted before the plate is inserted, so a failure in
// between leaves the plate in neither collection. A failed delete aborts
// without inserting. On DecisionCancel nothing is mutated.
func (s *RegistryService) ConfirmOverride(ctx context.Context, pending *PendingOverride, decision Decision) (RegistrationResult, error) {
	if pending == nil {
		return RegistrationResult{}, ErrNoPendingOverride
	}
	if pending.used {
		return RegistrationResult{}, ErrOverrideUsed
	}
	pending.used = true

	ctx, span := tracing.StartWorkflow(ctx, s.tracer, "confirm_override",
		attribute.String(tracing.AttrPlateKey, pending.key.String()),
		attribute.String(tracing.AttrDecision, decision.String()))
	result, err := s.confirmOverride(ctx, pending, decision)
	tracing.FinishWorkflow(span, string(result.Outcome), err)
	return result, err
}

func (s *RegistryService) confirmOverride(ctx context.Context, pending *PendingOverride, decision Decision) (RegistrationResult, error) {
	if decision != DecisionConfirm {
		log.Debug(log.CatRegistry, "blacklist override cancelled", "plate", pending.key)
		return RegistrationResult{Outcome: OutcomeCancelled, Conflict: pending.conflict}, nil
	}

	if err := s.blacklist.Remove(ctx, pending.key); err != nil {
		log.ErrorErr(log.CatRegistry, "blacklist delete failed; plate not registered", err, "plate", pending.key)
		return RegistrationResult{}, fmt.Errorf("removing %s from blacklist: %w", pending.key, err)
	}
	tracing.Mutation(ctx, string(domain.CollectionBlacklist), "remove")

	result, err := s.insert(ctx, pending.key, pending.owner)
	if err != nil {
		log.ErrorErr(log.CatRegistry, "insert after blacklist removal failed; plate is in neither collection", err,
			"plate", pending.key)
		return result, err
	}
	return result, nil
}

// RegisterWithGate runs both phases, asking gate on a blacklist conflict.
func (s *RegistryService) RegisterWithGate(ctx context.Context, rawPlate, owner string, opts RegisterOptions, gate Gate) (RegistrationResult, error) {
	if gate == nil {
		return RegistrationResult{}, ErrNilGate
	}

	result, err := s.Register(ctx, rawPlate, owner, opts)
	if err != nil || result.Outcome != OutcomeBlacklistConflict {
		return result, err
	}

	decision, err := ask(ctx, gate, overridePrompt(result.Conflict, result.Pending.Owner()))
	if err != nil {
		return result, err
	}
	return s.ConfirmOverride(ctx, result.Pending, decision)
}

// UnblockPlate lifts a blacklisting by registering the plate to owner. The
// operator confirms the override through gate.
func (s *RegistryService) UnblockPlate(ctx context.Context, rawPlate, owner string, gate Gate) (RegistrationResult, error) {
	return s.RegisterWithGate(ctx, rawPlate, owner, RegisterOptions{RemoveFromBlacklistIfAuthorized: true}, gate)
}

// insert stores a new AuthorizedRecord. A concurrent registration of the same
// key surfaces as OutcomeDuplicate.
func (s *RegistryService) insert(ctx context.Context, key domain.PlateKey, owner string) (RegistrationResult, error) {
	record := domain.NewAuthorizedRecord(s.newID(), key, owner, s.clock.Now())
	err := s.plates.Insert(ctx, record)
	switch {
	case err == nil:
		tracing.Mutation(ctx, string(domain.CollectionPlates), "insert")
		log.Info(log.CatRegistry, "plate registered", "plate", key, "id", record.ID())
		return RegistrationResult{Outcome: OutcomeSuccess, Record: record}, nil
	case isDuplicateKey(err):
		log.Info(log.CatRegistry, "plate registered concurrently by another session", "plate", key)
		return RegistrationResult{Outcome: OutcomeDuplicate, Err: &domain.DuplicateAuthorizedError{Key: key}}, nil
	default:
		return RegistrationResult{}, fmt.Errorf("registering %s: %w", key, err)
	}
}
