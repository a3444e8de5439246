package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// Debt events
const (
	EventStart    = "start"
	EventComplete = "complete"
)

// debtEvents only ever move a debt forward
var debtEvents = fsm.Events{
	// pending → in_progress (first partial payment)
	{Name: EventStart, Src: []string{models.DebtStatusPending}, Dst: models.DebtStatusInProgress},

	// pending/in_progress → completed (balance settled)
	{Name: EventComplete, Src: []string{models.DebtStatusPending, models.DebtStatusInProgress}, Dst: models.DebtStatusCompleted},
}

// ErrInvalidTransition is returned for transitions that would move a debt backwards
var ErrInvalidTransition = errors.New("invalid debt status transition")

// DebtFSM wraps a debt with its state machine
type DebtFSM struct {
	debt *models.Debt
	fsm  *fsm.FSM
}

// NewDebtFSM creates a new debt state machine
func NewDebtFSM(debt *models.Debt) *DebtFSM {
	status := debt.Status
	if status == "" {
		status = models.DebtStatusPending
	}

	dfsm := &DebtFSM{
		debt: debt,
	}

	dfsm.fsm = fsm.NewFSM(status, debtEvents, fsm.Callbacks{})

	return dfsm
}

// Start transitions the debt to in_progress
func (d *DebtFSM) Start(ctx context.Context) error {
	if err := d.fsm.Event(ctx, EventStart); err != nil {
		return fmt.Errorf("failed to start debt: %w", err)
	}

	d.debt.Status = d.fsm.Current()
	return nil
}

// Complete transitions the debt to completed
func (d *DebtFSM) Complete(ctx context.Context) error {
	if err := d.fsm.Event(ctx, EventComplete); err != nil {
		return fmt.Errorf("failed to complete debt: %w", err)
	}

	d.debt.Status = d.fsm.Current()
	return nil
}

// TransitionTo moves the debt to target. Staying in the current state is a
// no-op; anything that is not a forward move returns ErrInvalidTransition.
func (d *DebtFSM) TransitionTo(ctx context.Context, target string) error {
	if target == d.fsm.Current() {
		return nil
	}

	switch target {
	case models.DebtStatusInProgress:
		if d.fsm.Can(EventStart) {
			return d.Start(ctx)
		}
	case models.DebtStatusCompleted:
		if d.fsm.Can(EventComplete) {
			return d.Complete(ctx)
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.fsm.Current(), target)
}

// Current returns the current state
func (d *DebtFSM) Current() string {
	return d.fsm.Current()
}

// Can checks if a transition is possible
func (d *DebtFSM) Can(event string) bool {
	return d.fsm.Can(event)
}

// SourcesOf lists the statuses a debt may move to target from
func SourcesOf(target string) []string {
	for _, e := range debtEvents {
		if e.Dst == target {
			return append([]string(nil), e.Src...)
		}
	}
	return nil
}

// IsForward reports whether moving from to to is allowed or a no-op
func IsForward(from, to string) bool {
	if from == to {
		return true
	}
	for _, src := range SourcesOf(to) {
		if src == from {
			return true
		}
	}
	return false
}
