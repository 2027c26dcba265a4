package types

import (
	"time"

	"github.com/trucklog/hosd/hours"
)

// Violation types emitted by the detector
const (
	ViolationDrivingOver11          = "driving_over_11"
	ViolationOnDutyOver14           = "on_duty_over_14"
	ViolationNo30MinBreak           = "no_30_min_break"
	ViolationCycleHoursExceeded     = "cycle_hours_exceeded"
	ViolationInvalid34HourRestart   = "invalid_34_hour_restart"
	ViolationInvalidSplitBerthFirst = "invalid_split_berth_first"
	ViolationInvalidSplitBerthLast  = "invalid_split_berth_second"
)

// ViolationStatus represents where a violation is in the resolution workflow
type ViolationStatus string

const (
	// StatusPending is the initial status of every detected violation
	StatusPending ViolationStatus = "pending"
	// StatusInReview means a reviewer acknowledged the violation
	StatusInReview ViolationStatus = "in_review"
	// StatusDisputed means the driver or a reviewer contests the violation
	StatusDisputed ViolationStatus = "disputed"
	// StatusEscalated means the violation was raised to a higher authority
	StatusEscalated ViolationStatus = "escalated"
	// StatusResolved is terminal unless the violation is reopened
	StatusResolved ViolationStatus = "resolved"
)

// Violation represents one breach of an enabled rule
type Violation struct {
	ID          string
	Type        string
	Description string
	Severity    Severity
	OccurredAt  time.Time

	// DurationOver is how far past the rule threshold the driver went.
	// Zero for rules without an hour threshold.
	DurationOver hours.Hours

	RequiresImmediateAction bool
	ComplianceImpact        string

	// Resolution workflow fields, managed by the workflow package
	Status          ViolationStatus
	ResolutionNotes []string
	ResolvedBy      string
	ResolvedAt      time.Time
	EscalationLevel int

	// Version supports optimistic concurrency in the persistence layer
	Version int
}

// Clone returns a deep copy of the violation
func (v Violation) Clone() Violation {
	c := v
	c.ResolutionNotes = make([]string, len(v.ResolutionNotes))
	copy(c.ResolutionNotes, v.ResolutionNotes)
	return c
}
