package application

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/tracing"
)

// ListPlates returns every authorized record.
func (s *RegistryService) ListPlates(ctx context.Context) ([]*domain.AuthorizedRecord, error) {
	records, err := s.plates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing plates: %w", err)
	}
	return records, nil
}

// GetPlate returns the authorized record with id.
func (s *RegistryService) GetPlate(ctx context.Context, id string) (*domain.AuthorizedRecord, error) {
	return s.plates.FindByID(ctx, id)
}

// UpdatePlate replaces the plate and owner of the record with id after the
// operator confirms. The key is not checked against the blacklist. A key
// already held by another record is rejected by the store as OutcomeDuplicate.
func (s *RegistryService) UpdatePlate(ctx context.Context, id, newPlate, newOwner string, gate Gate) (EditResult, error) {
	ctx, span := tracing.StartWorkflow(ctx, s.tracer, "update",
		attribute.String(tracing.AttrPlateID, id),
		attribute.String(tracing.AttrPlateKey, domain.Normalize(newPlate).String()))
	result, err := s.updatePlate(ctx, id, newPlate, newOwner, gate)
	tracing.FinishWorkflow(span, string(result.Outcome), err)
	return result, err
}

func (s *RegistryService) updatePlate(ctx context.Context, id, newPlate, newOwner string, gate Gate) (EditResult, error) {
	key, owner, verr := validate(newPlate, newOwner)
	if verr != nil {
		return EditResult{Outcome: OutcomeValidation, Err: verr}, nil
	}

	decision, err := ask(ctx, gate, updatePrompt(key, owner))
	if err != nil {
		return EditResult{}, err
	}
	if decision != DecisionConfirm {
		return EditResult{Outcome: OutcomeCancelled}, nil
	}

	updated, err := s.plates.Update(ctx, id, domain.AuthorizedUpdate{Key: key, Owner: owner})
	switch {
	case err == nil:
		tracing.Mutation(ctx, string(domain.CollectionPlates), "update")
		log.Info(log.CatRegistry, "plate updated", "id", id, "plate", key)
		return EditResult{Outcome: OutcomeSuccess, Record: updated}, nil
	case isNotFound(err):
		log.Debug(log.CatRegistry, "update target vanished", "id", id)
		return EditResult{Outcome: OutcomeNotFound, Err: err}, nil
	case isDuplicateKey(err):
		return EditResult{Outcome: OutcomeDuplicate, Err: &domain.DuplicateAuthorizedError{Key: key}}, nil
	default:
		log.ErrorErr(log.CatRegistry, "plate update failed", err, "id", id)
		return EditResult{}, fmt.Errorf("updating plate %s: %w", id, err)
	}
}

// DeletePlate removes the record with id after the operator confirms.
// Deleting an id that no longer exists succeeds.
func (s *RegistryService) DeletePlate(ctx context.Context, id string, gate Gate) (EditResult, error) {
	ctx, span := tracing.StartWorkflow(ctx, s.tracer, "delete", attribute.String(tracing.AttrPlateID, id))
	result, err := s.deletePlate(ctx, id, gate)
	tracing.FinishWorkflow(span, string(result.Outcome), err)
	return result, err
}

func (s *RegistryService) deletePlate(ctx context.Context, id string, gate Gate) (EditResult, error) {
	decision, err := ask(ctx, gate, deletePrompt(id))
	if err != nil {
		return EditResult{}, err
	}
	if decision != DecisionConfirm {
		return EditResult{Outcome: OutcomeCancelled}, nil
	}

	if err := s.plates.Remove(ctx, id); err != nil {
		log.ErrorErr(log.CatRegistry, "plate delete failed", err, "id", id)
		return EditResult{}, fmt.Errorf("deleting plate %s: %w", id, err)
	}
	tracing.Mutation(ctx, string(domain.CollectionPlates), "remove")
	log.Info(log.CatRegistry, "plate deleted", "id", id)
	return EditResult{Outcome: OutcomeSuccess}, nil
}
