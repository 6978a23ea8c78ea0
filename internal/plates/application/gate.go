package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/platekeeper/internal/plates/domain"
)

// Decision is the operator's answer to a confirmation prompt.
type Decision int

const (
	DecisionCancel Decision = iota
	DecisionConfirm
)

func (d Decision) String() string {
	if d == DecisionConfirm {
		return "confirm"
	}
	return "cancel"
}

// Prompt is what a Gate shows before a destructive or conflict-resolving mutation.
type Prompt struct {
	Title        string
	Body         string
	ConfirmLabel string
	CancelLabel  string
}

// Gate asks the operator to confirm. Implementations block until the operator
// answers or ctx is done; in the latter case they return ctx.Err().
type Gate interface {
	Confirm(ctx context.Context, prompt Prompt) (Decision, error)
}

// GateFunc adapts a function to the Gate interface.
type GateFunc func(ctx context.Context, prompt Prompt) (Decision, error)

// Confirm calls f.
func (f GateFunc) Confirm(ctx context.Context, prompt Prompt) (Decision, error) {
	return f(ctx, prompt)
}

// StaticGate answers every prompt with d without asking anyone.
func StaticGate(d Decision) Gate {
	return GateFunc(func(ctx context.Context, _ Prompt) (Decision, error) {
		if err := ctx.Err(); err != nil {
			return DecisionCancel, err
		}
		return d, nil
	})
}

// ErrNilGate is returned when a gated workflow is called without a gate.
var ErrNilGate = errors.New("confirmation gate is required")

func overridePrompt(conflict *domain.BlacklistRecord, owner string) Prompt {
	return Prompt{
		Title: "Blacklist warning",
		Body: fmt.Sprintf("Plate %s is on the blacklist since %s. Remove it from the blacklist and register it for %s?",
			conflict.Key(), conflict.BlacklistedAt().Format("2006-01-02 15:04"), owner),
		ConfirmLabel: "Yes",
		CancelLabel:  "No",
	}
}

func updatePrompt(key domain.PlateKey, owner string) Prompt {
	return Prompt{
		Title:        "Are you sure?",
		Body:         fmt.Sprintf("Update this plate to %s (%s)?", key, owner),
		ConfirmLabel: "Yes",
		CancelLabel:  "Cancel",
	}
}

func deletePrompt(id string) Prompt {
	return Prompt{
		Title:        "Are you sure?",
		Body:         fmt.Sprintf("Delete plate record %s?", id),
		ConfirmLabel: "Delete",
		CancelLabel:  "Keep",
	}
}

func transferPrompt(key domain.PlateKey) Prompt {
	return Prompt{
		Title:        "Add to blacklist",
		Body:         fmt.Sprintf("Move the vehicle with plate %s to the blacklist?", key),
		ConfirmLabel: "Yes",
		CancelLabel:  "Cancel",
	}
}

func dropPrompt(key domain.PlateKey) Prompt {
	return Prompt{
		Title:        "Remove from blacklist",
		Body:         fmt.Sprintf("Remove plate %s from the blacklist without registering it?", key),
		ConfirmLabel: "Remove",
		CancelLabel:  "Cancel",
	}
}
