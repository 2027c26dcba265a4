package dataobjects

import (
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"
	"github.com/lib/pq"
	uuid "github.com/satori/go.uuid"

	"github.com/trucklog/hosd/types"
	"github.com/trucklog/hosd/workflow"
)

// ErrViolationConflict is returned when a workflow action lost a concurrent
// update race; the caller should re-read the violation and retry
var ErrViolationConflict = errors.New("violation modified concurrently")

// Violation is a persisted rule breach together with its resolution workflow
// state
type Violation struct {
	types.Violation
	Driver *Driver
}

// NewViolation wraps a detected violation for persistence, assigning an ID
func NewViolation(driver *Driver, detected types.Violation) *Violation {
	id, _ := uuid.NewV4()
	detected.ID = id.String()
	return &Violation{
		Violation: detected,
		Driver:    driver,
	}
}

// GetViolations returns a slice with all registered violations
func GetViolations(node sqalx.Node) ([]*Violation, error) {
	return getViolationsWithSelect(node, sdb.Select())
}

// GetPendingViolations returns all violations still awaiting review
func GetPendingViolations(node sqalx.Node) ([]*Violation, error) {
	s := sdb.Select().
		Where(sq.Eq{"status": types.StatusPending})
	return getViolationsWithSelect(node, s)
}

// GetViolationsForDriver returns the violations of the given driver
func GetViolationsForDriver(node sqalx.Node, driver *Driver) ([]*Violation, error) {
	s := sdb.Select().
		Where(sq.Eq{"mdriver": driver.ID})
	return getViolationsWithSelect(node, s)
}

func getViolationsWithSelect(node sqalx.Node, sbuilder sq.SelectBuilder) ([]*Violation, error) {
	violations := []*Violation{}

	tx, err := node.Beginx()
	if err != nil {
		return violations, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sbuilder.Columns("id", "mdriver", "type", "description", "severity", "occurred_at",
		"duration_over", "requires_immediate_action", "compliance_impact", "status",
		"resolution_notes", "resolved_by", "resolved_at", "escalation_level", "version").
		From("violation").
		OrderBy("occurred_at ASC").
		RunWith(tx).Query()
	if err != nil {
		return violations, fmt.Errorf("getViolationsWithSelect: %s", err)
	}
	defer rows.Close()

	driverIDs := []string{}
	for rows.Next() {
		var violation Violation
		var resolvedAt pq.NullTime
		var driverID string
		err := rows.Scan(
			&violation.ID,
			&driverID,
			&violation.Type,
			&violation.Description,
			&violation.Severity,
			&violation.OccurredAt,
			&violation.DurationOver,
			&violation.RequiresImmediateAction,
			&violation.ComplianceImpact,
			&violation.Status,
			pq.Array(&violation.ResolutionNotes),
			&violation.ResolvedBy,
			&resolvedAt,
			&violation.EscalationLevel,
			&violation.Version)
		if err != nil {
			return violations, fmt.Errorf("getViolationsWithSelect: %s", err)
		}
		violation.ResolvedAt = resolvedAt.Time
		violations = append(violations, &violation)
		driverIDs = append(driverIDs, driverID)
	}
	if err := rows.Err(); err != nil {
		return violations, fmt.Errorf("getViolationsWithSelect: %s", err)
	}
	for i := range driverIDs {
		violations[i].Driver, err = GetDriver(tx, driverIDs[i])
		if err != nil {
			return violations, fmt.Errorf("getViolationsWithSelect: %s", err)
		}
	}
	return violations, nil
}

// Update adds the violation, or leaves an existing record of the same breach
// untouched. The conflict target makes repeated evaluations of the same log
// idempotent: the engine over-reports by design and storage deduplicates.
func (violation *Violation) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	resolvedAt := pq.NullTime{
		Time:  violation.ResolvedAt,
		Valid: !violation.ResolvedAt.IsZero(),
	}

	_, err = sdb.Insert("violation").
		Columns("id", "mdriver", "type", "description", "severity", "occurred_at",
			"duration_over", "requires_immediate_action", "compliance_impact", "status",
			"resolution_notes", "resolved_by", "resolved_at", "escalation_level", "version").
		Values(violation.ID, violation.Driver.ID, violation.Type, violation.Description,
			violation.Severity, violation.OccurredAt, violation.DurationOver,
			violation.RequiresImmediateAction, violation.ComplianceImpact, violation.Status,
			pq.Array(violation.ResolutionNotes), violation.ResolvedBy, resolvedAt,
			violation.EscalationLevel, violation.Version).
		Suffix("ON CONFLICT (mdriver, type, occurred_at) DO NOTHING").
		RunWith(tx).Exec()
	if err != nil {
		return errors.New("AddViolation: " + err.Error())
	}
	return tx.Commit()
}

// ApplyAction runs a workflow action on the violation and persists the result
// under optimistic versioning, so concurrent resolve/escalate calls on the
// same violation cannot both win
func (violation *Violation) ApplyAction(node sqalx.Node, wf *workflow.Workflow, action workflow.Action, actor, notes string, now time.Time) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updated, err := wf.Apply(violation.Violation, action, actor, notes, now)
	if err != nil {
		return fmt.Errorf("ApplyAction: %w", err)
	}
	updated.Version = violation.Version + 1

	resolvedAt := pq.NullTime{
		Time:  updated.ResolvedAt,
		Valid: !updated.ResolvedAt.IsZero(),
	}

	result, err := sdb.Update("violation").
		Set("status", updated.Status).
		Set("resolution_notes", pq.Array(updated.ResolutionNotes)).
		Set("resolved_by", updated.ResolvedBy).
		Set("resolved_at", resolvedAt).
		Set("escalation_level", updated.EscalationLevel).
		Set("version", updated.Version).
		Where(sq.Eq{"id": violation.ID, "version": violation.Version}).
		RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("ApplyAction: %s", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ApplyAction: %s", err)
	}
	if affected == 0 {
		return fmt.Errorf("ApplyAction: %w", ErrViolationConflict)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	violation.Violation = updated
	return nil
}

// Delete deletes the violation
func (violation *Violation) Delete(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Delete("violation").
		Where(sq.Eq{"id": violation.ID}).RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("RemoveViolation: %s", err)
	}
	return tx.Commit()
}
