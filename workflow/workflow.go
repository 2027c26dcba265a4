// Package workflow implements the violation resolution state machine.
// A detected violation starts Pending and moves between review states through
// explicit per-state allow-lists; any action outside the current state's
// allow-list fails with ErrInvalidTransition and performs no mutation.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/thoas/go-funk"

	"github.com/trucklog/hosd/types"
)

// ErrInvalidTransition is returned when an action is not allowed in the
// violation's current status
var ErrInvalidTransition = errors.New("invalid workflow transition")

// Action is a workflow action applied to a violation
type Action string

const (
	// ActionAcknowledge moves a pending violation into review
	ActionAcknowledge Action = "acknowledge"
	// ActionDispute contests a pending violation
	ActionDispute Action = "dispute"
	// ActionEscalate raises the violation to a higher authority
	ActionEscalate Action = "escalate"
	// ActionReview returns a disputed or escalated violation to review
	ActionReview Action = "review"
	// ActionResolve closes the violation
	ActionResolve Action = "resolve"
	// ActionReject rejects the review outcome, leaving the violation disputed
	ActionReject Action = "reject"
	// ActionReopen reopens a resolved violation
	ActionReopen Action = "reopen"
)

// transitions maps each status to its allowed actions and their target status
var transitions = map[types.ViolationStatus]map[Action]types.ViolationStatus{
	types.StatusPending: {
		ActionAcknowledge: types.StatusInReview,
		ActionDispute:     types.StatusDisputed,
		ActionEscalate:    types.StatusEscalated,
	},
	types.StatusInReview: {
		ActionResolve:  types.StatusResolved,
		ActionReject:   types.StatusDisputed,
		ActionEscalate: types.StatusEscalated,
	},
	types.StatusDisputed: {
		ActionReview:   types.StatusInReview,
		ActionResolve:  types.StatusResolved,
		ActionEscalate: types.StatusEscalated,
	},
	types.StatusEscalated: {
		ActionReview:  types.StatusInReview,
		ActionResolve: types.StatusResolved,
		ActionReject:  types.StatusDisputed,
	},
	types.StatusResolved: {
		ActionReopen: types.StatusPending,
	},
}

// Workflow applies resolution actions to violations
type Workflow struct{}

// NewWorkflow returns a new Workflow
func NewWorkflow() *Workflow {
	return new(Workflow)
}

// AllowedActions returns the actions permitted in the given status
func (w *Workflow) AllowedActions(status types.ViolationStatus) []Action {
	allowed := []Action{}
	for action := range transitions[status] {
		allowed = append(allowed, action)
	}
	return allowed
}

// CanApply returns whether the action is allowed in the given status
func (w *Workflow) CanApply(status types.ViolationStatus, action Action) bool {
	names := []string{}
	for allowed := range transitions[status] {
		names = append(names, string(allowed))
	}
	return funk.ContainsString(names, string(action))
}

// Apply performs the action on the violation and returns the updated copy.
// The input violation is never mutated, so the check-and-apply is atomic from
// the caller's perspective; persisting the result under a single-writer
// discipline is the storage collaborator's responsibility.
func (w *Workflow) Apply(violation types.Violation, action Action, actor, notes string, now time.Time) (types.Violation, error) {
	next, ok := transitions[violation.Status][action]
	if !ok {
		return violation, fmt.Errorf("Apply: %q on status %q: %w", action, violation.Status, ErrInvalidTransition)
	}

	updated := violation.Clone()
	updated.Status = next

	// resolution notes are an append-only log, never overwritten
	switch action {
	case ActionEscalate:
		updated.EscalationLevel++
		updated.ResolutionNotes = append(updated.ResolutionNotes, fmt.Sprintf("Escalated to level %d by %s: %s", updated.EscalationLevel, actor, notes))
	case ActionResolve:
		updated.ResolvedBy = actor
		updated.ResolvedAt = now
		updated.ResolutionNotes = append(updated.ResolutionNotes, fmt.Sprintf("Resolved by %s: %s", actor, notes))
	case ActionReopen:
		updated.ResolvedBy = ""
		updated.ResolvedAt = time.Time{}
		updated.ResolutionNotes = append(updated.ResolutionNotes, fmt.Sprintf("Reopened by %s: %s", actor, notes))
	default:
		if notes != "" {
			updated.ResolutionNotes = append(updated.ResolutionNotes, fmt.Sprintf("%s by %s: %s", action, actor, notes))
		}
	}
	return updated, nil
}
