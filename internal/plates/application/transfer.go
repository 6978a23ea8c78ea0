package application

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/tracing"
)

// ViewHook lets a caller hide a row before the store confirms a transfer.
// Restore is called when the transfer fails before anything was written.
type ViewHook interface {
	Remove(id string)
	Restore(id string)
}

// ListBlacklist returns every blacklist record.
func (s *RegistryService) ListBlacklist(ctx context.Context) ([]*domain.BlacklistRecord, error) {
	records, err := s.blacklist.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing blacklist: %w", err)
	}
	return records, nil
}

// MoveToBlacklist moves the authorized record id with plate rawKey to the
// blacklist after the operator confirms. The blacklist record is written
// first, overwriting any existing one, then the authorized record is deleted.
//
// When the delete fails the plate is in both collections. That is reported as
// OutcomePartial with a nil error and is not rolled back.
func (s *RegistryService) MoveToBlacklist(ctx context.Context, id, rawKey string, gate Gate, view ViewHook) (TransferResult, error) {
	ctx, span := tracing.StartWorkflow(ctx, s.tracer, "move_to_blacklist",
		attribute.String(tracing.AttrPlateID, id),
		attribute.String(tracing.AttrPlateKey, domain.Normalize(rawKey).String()))
	result, err := s.moveToBlacklist(ctx, id, rawKey, gate, view)
	tracing.FinishWorkflow(span, string(result.Outcome), err)
	return result, err
}

func (s *RegistryService) moveToBlacklist(ctx context.Context, id, rawKey string, gate Gate, view ViewHook) (TransferResult, error) {
	key, verr := validateKey(rawKey)
	if verr != nil {
		return TransferResult{Outcome: OutcomeValidation, Err: verr}, nil
	}

	decision, err := ask(ctx, gate, transferPrompt(key))
	if err != nil {
		return TransferResult{}, err
	}
	if decision != DecisionConfirm {
		return TransferResult{Outcome: OutcomeCancelled}, nil
	}

	if view != nil {
		view.Remove(id)
	}

	record := domain.NewBlacklistRecord(key, s.clock.Now())
	if err := s.blacklist.Put(ctx, record); err != nil {
		if view != nil {
			view.Restore(id)
		}
		log.ErrorErr(log.CatRegistry, "blacklist write failed; nothing moved", err, "id", id, "plate", key)
		return TransferResult{}, fmt.Errorf("blacklisting %s: %w", key, err)
	}
	tracing.Mutation(ctx, string(domain.CollectionBlacklist), "put")

	if err := s.plates.Remove(ctx, id); err != nil {
		log.ErrorErr(log.CatRegistry, "authorized delete failed; plate is in both collections", err,
			"id", id, "plate", key)
		trace.SpanFromContext(ctx).AddEvent(tracing.EventPartialTransfer)
		return TransferResult{Outcome: OutcomePartial, Record: record, Err: err}, nil
	}
	tracing.Mutation(ctx, string(domain.CollectionPlates), "remove")

	log.Info(log.CatRegistry, "plate moved to blacklist", "id", id, "plate", key)
	return TransferResult{Outcome: OutcomeSuccess, Record: record}, nil
}

// DropFromBlacklist deletes the blacklist record for rawPlate after the
// operator confirms, without registering the plate. A plate that is not
// blacklisted yields OutcomeNotFound without prompting.
func (s *RegistryService) DropFromBlacklist(ctx context.Context, rawPlate string, gate Gate) (TransferResult, error) {
	ctx, span := tracing.StartWorkflow(ctx, s.tracer, "drop_from_blacklist",
		attribute.String(tracing.AttrPlateKey, domain.Normalize(rawPlate).String()))
	result, err := s.dropFromBlacklist(ctx, rawPlate, gate)
	tracing.FinishWorkflow(span, string(result.Outcome), err)
	return result, err
}

func (s *RegistryService) dropFromBlacklist(ctx context.Context, rawPlate string, gate Gate) (TransferResult, error) {
	key, verr := validateKey(rawPlate)
	if verr != nil {
		return TransferResult{Outcome: OutcomeValidation, Err: verr}, nil
	}

	record, err := s.blacklist.FindByKey(ctx, key)
	switch {
	case isNotFound(err):
		return TransferResult{Outcome: OutcomeNotFound, Err: err}, nil
	case err != nil:
		return TransferResult{}, fmt.Errorf("checking blacklist: %w", err)
	}

	decision, err := ask(ctx, gate, dropPrompt(key))
	if err != nil {
		return TransferResult{}, err
	}
	if decision != DecisionConfirm {
		return TransferResult{Outcome: OutcomeCancelled, Record: record}, nil
	}

	if err := s.blacklist.Remove(ctx, key); err != nil {
		log.ErrorErr(log.CatRegistry, "blacklist delete failed", err, "plate", key)
		return TransferResult{}, fmt.Errorf("removing %s from blacklist: %w", key, err)
	}
	tracing.Mutation(ctx, string(domain.CollectionBlacklist), "remove")
	log.Info(log.CatRegistry, "plate dropped from blacklist", "plate", key)
	return TransferResult{Outcome: OutcomeSuccess, Record: record}, nil
}
