// Package application implements the registry workflows: registration with
// duplicate and blacklist-conflict handling, gated edit and delete, and the
// transfer of plates between the authorized set and the blacklist.
//
// Workflows run sequentially on the caller's goroutine. Every repository call
// is a suspension point honoring ctx; nothing is atomic with respect to other
// sessions sharing the store. Outcomes the operator must see are returned in
// result structs; the error return is reserved for store failures and
// cancelled contexts.
package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/platekeeper/internal/plates/domain"
)

// RegistryService runs the registry workflows against the repositories.
type RegistryService struct {
	plates    domain.AuthorizedRepository
	blacklist domain.BlacklistRepository
	entries   domain.EntryRepository
	clock     Clock
	tracer    trace.Tracer
	newID     func() string
}

// Option configures a RegistryService.
type Option func(*RegistryService)

// WithClock sets the clock used for createdAt, blacklistedAt and entry timestamps.
func WithClock(c Clock) Option {
	return func(s *RegistryService) { s.clock = c }
}

// WithTracer sets the tracer for workflow spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *RegistryService) { s.tracer = t }
}

// WithIDGenerator sets the generator for new record ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *RegistryService) { s.newID = fn }
}

// NewRegistryService creates a RegistryService. Records get UUID ids and
// wall-clock timestamps unless overridden.
func NewRegistryService(
	plates domain.AuthorizedRepository,
	blacklist domain.BlacklistRepository,
	entries domain.EntryRepository,
	opts ...Option,
) *RegistryService {
	s := &RegistryService{
		plates:    plates,
		blacklist: blacklist,
		entries:   entries,
		clock:     RealClock{},
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validate normalizes a plate and trims an owner, reporting the first empty field.
func validate(rawPlate, owner string) (domain.PlateKey, string, *domain.ValidationError) {
	key := domain.Normalize(rawPlate)
	if !key.Valid() {
		return key, "", &domain.ValidationError{Field: "plate", Message: "must not be empty"}
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return key, "", &domain.ValidationError{Field: "owner", Message: "must not be empty"}
	}
	return key, owner, nil
}

func validateKey(rawPlate string) (domain.PlateKey, *domain.ValidationError) {
	key := domain.Normalize(rawPlate)
	if !key.Valid() {
		return key, &domain.ValidationError{Field: "plate", Message: "must not be empty"}
	}
	return key, nil
}

func isNotFound(err error) bool {
	var nf *domain.NotFoundError
	return errors.As(err, &nf)
}

func isDuplicateKey(err error) bool {
	var dup *domain.DuplicateKeyError
	return errors.As(err, &dup)
}

// ask runs the gate, treating a nil gate as a programming error.
func ask(ctx context.Context, gate Gate, prompt Prompt) (Decision, error) {
	if gate == nil {
		return DecisionCancel, ErrNilGate
	}
	d, err := gate.Confirm(ctx, prompt)
	if err != nil {
		return DecisionCancel, err
	}
	return d, nil
}
