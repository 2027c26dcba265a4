// Package compliance implements the hours-of-service compliance rule engine:
// cycle window computation with 34-hour restart and split sleeper berth
// detection, the pluggable rule registry, per-rule violation checkers,
// eligibility decisions and compliance analytics.
//
// The engine is a stateless computation over an immutable snapshot of duty
// intervals and a point-in-time registry snapshot. It performs no I/O, never
// logs, and may be invoked concurrently, one evaluation per driver.
package compliance

import (
	"fmt"
	"time"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

// Engine evaluates duty logs against the rules in its registry
type Engine struct {
	Registry *Registry
}

// NewEngine returns an engine with the default rule set loaded
func NewEngine() *Engine {
	return &Engine{Registry: NewRegistry()}
}

// Evaluate computes the full HOS status of one driver from their duty
// intervals. The intervals must be in chronological order and owned by the
// caller; the engine never mutates them. Malformed input fails the whole
// evaluation with ErrInvalidLogData, because a partial evaluation could
// understate risk.
func (e *Engine) Evaluate(intervals []types.DutyInterval, now time.Time, cycleType types.CycleType, team *types.TeamDrivingInfo) (*types.HOSStatus, error) {
	limits, err := LimitsFor(cycleType)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}
	if err := validateIntervals(intervals, now); err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}

	rules := e.Registry.Snapshot()

	start := cycleStart(intervals, now, limits)
	periods := sleeperBerthPeriods(intervals, now, limits)
	scoped := scopedIntervals(intervals, start)

	used := cycleHoursUsed(scoped, now)
	available := limits.CycleHours - used
	if available < 0 {
		available = 0
	}

	violations := detect(rules, scoped, now, periods, limits)

	status := &types.HOSStatus{
		CanDrive:                canDrive(scoped, now, violations, team, limits),
		CanBeOnDuty:             canBeOnDuty(scoped, now, violations, limits),
		NeedsRest:               needsRest(scoped, now, violations, limits),
		HoursUsedThisCycle:      used,
		HoursAvailable:          available,
		ConsecutiveOffDutyHours: consecutiveOffDutyHours(intervals, now),
		Violations:              violations,
		CycleType:               cycleType,
		CycleStart:              start,
		SleeperBerthPeriods:     periods,
		Analytics:               buildAnalytics(intervals, violations, now, limits),
		Restart:                 restartRecommendation(periods, used, now, limits),
	}

	if lastBreak, ok := lastQualifyingBreak(intervals, 50*hours.Centi); ok {
		status.LastBreak = lastBreak
	}
	if team != nil {
		teamCopy := *team
		status.TeamDriving = &teamCopy
	}
	return status, nil
}

// validateIntervals checks the invariants the engine relies on: ascending
// start order, start < end for every closed interval, and at most one open
// interval, which must be the last one and must have started already
func validateIntervals(intervals []types.DutyInterval, now time.Time) error {
	for i, interval := range intervals {
		if !interval.Status.IsValid() {
			return fmt.Errorf("interval %d: unknown duty status %q: %w", i, interval.Status, ErrInvalidLogData)
		}
		if i > 0 && interval.Start.Before(intervals[i-1].Start) {
			return fmt.Errorf("interval %d: out of order: %w", i, ErrInvalidLogData)
		}
		if !interval.Ended {
			if i != len(intervals)-1 {
				return fmt.Errorf("interval %d: missing end: %w", i, ErrInvalidLogData)
			}
			if !interval.Start.Before(now) {
				return fmt.Errorf("interval %d: open interval starts in the future: %w", i, ErrInvalidLogData)
			}
			continue
		}
		if !interval.Start.Before(interval.End) {
			return fmt.Errorf("interval %d: end not after start: %w", i, ErrInvalidLogData)
		}
	}
	return nil
}
