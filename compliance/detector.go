package compliance

import (
	"fmt"
	"time"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

// detect evaluates every enabled rule against the cycle-scoped intervals.
// Violations come out in rule-registration order, chronological within each
// rule, and are never de-duplicated: the detector deliberately over-reports
// so that suppression decisions stay with the persistence collaborator.
func detect(rules []types.Rule, scoped []types.DutyInterval, now time.Time, periods []types.SleeperBerthPeriod, limits types.CycleLimits) []types.Violation {
	violations := []types.Violation{}
	for _, rule := range rules {
		switch rule.ID {
		case RuleDrivingLimit:
			violations = append(violations, checkDrivingLimit(rule, scoped, now)...)
		case RuleOnDutyLimit:
			violations = append(violations, checkOnDutyLimit(rule, scoped, now)...)
		case RuleBreakRequirement:
			violations = append(violations, checkBreakRequirement(rule, scoped, now)...)
		case RuleCycleHours:
			violations = append(violations, checkCycleHours(rule, scoped, now, limits)...)
		case Rule34HourRestart:
			violations = append(violations, checkRestartAttempts(rule, scoped)...)
		case RuleSleeperSplit:
			violations = append(violations, checkSplitBerth(rule, periods)...)
		}
	}
	return violations
}

func param(rule types.Rule, key string, fallback float64) hours.Hours {
	if v, ok := rule.Parameters[key]; ok {
		return hours.FromFloat(v)
	}
	return hours.FromFloat(fallback)
}

// checkDrivingLimit flags every single continuous driving interval longer
// than the limit. This is a per-interval check, not a running total across
// breaks; each offending interval triggers exactly once.
func checkDrivingLimit(rule types.Rule, scoped []types.DutyInterval, now time.Time) []types.Violation {
	maxHours := param(rule, "max_hours", 11.0)

	violations := []types.Violation{}
	for _, interval := range scoped {
		if interval.Status != types.Driving {
			continue
		}
		driven := intervalHours(interval, now)
		if driven <= maxHours {
			continue
		}
		violations = append(violations, types.Violation{
			Type:                    types.ViolationDrivingOver11,
			Description:             fmt.Sprintf("Drove for %s hours without 10-hour break (limit: %s)", driven, maxHours),
			Severity:                rule.Severity,
			OccurredAt:              interval.Start,
			DurationOver:            driven - maxHours,
			RequiresImmediateAction: true,
			ComplianceImpact:        "Driver must take 10-hour break before driving again",
			Status:                  types.StatusPending,
		})
	}
	return violations
}

// checkOnDutyLimit is the same per-interval pattern over driving and
// on-duty-not-driving intervals
func checkOnDutyLimit(rule types.Rule, scoped []types.DutyInterval, now time.Time) []types.Violation {
	maxHours := param(rule, "max_hours", 14.0)

	violations := []types.Violation{}
	for _, interval := range scoped {
		if !interval.Status.IsOnDuty() {
			continue
		}
		worked := intervalHours(interval, now)
		if worked <= maxHours {
			continue
		}
		violations = append(violations, types.Violation{
			Type:                    types.ViolationOnDutyOver14,
			Description:             fmt.Sprintf("On duty for %s hours without 10-hour break (limit: %s)", worked, maxHours),
			Severity:                rule.Severity,
			OccurredAt:              interval.Start,
			DurationOver:            worked - maxHours,
			RequiresImmediateAction: true,
			ComplianceImpact:        "Driver must take 10-hour break before any duty",
			Status:                  types.StatusPending,
		})
	}
	return violations
}

func checkBreakRequirement(rule types.Rule, scoped []types.DutyInterval, now time.Time) []types.Violation {
	threshold := param(rule, "break_threshold", 8.0)
	minBreak := param(rule, "min_break", 0.5)

	driven := drivingHoursSinceBreak(scoped, now, minBreak)
	if driven <= threshold {
		return nil
	}
	return []types.Violation{{
		Type:                    types.ViolationNo30MinBreak,
		Description:             fmt.Sprintf("No %d-minute break after %s hours of driving (threshold: %s)", int(minBreak.Duration().Minutes()), driven, threshold),
		Severity:                rule.Severity,
		OccurredAt:              now,
		DurationOver:            driven - threshold,
		RequiresImmediateAction: true,
		ComplianceImpact:        "Driver must take 30-minute break before continuing to drive",
		Status:                  types.StatusPending,
	}}
}

// checkCycleHours sums on-duty and driving hours across the whole cycle
// window. The threshold comes from the active cycle type, not from the rule
// parameters, so a 60/7 driver is held to 60 hours.
func checkCycleHours(rule types.Rule, scoped []types.DutyInterval, now time.Time, limits types.CycleLimits) []types.Violation {
	total := cycleHoursUsed(scoped, now)
	if total <= limits.CycleHours {
		return nil
	}

	occurredAt := now
	if len(scoped) > 0 {
		last := scoped[len(scoped)-1]
		if last.Ended {
			occurredAt = last.End
		}
	}
	return []types.Violation{{
		Type:                    types.ViolationCycleHoursExceeded,
		Description:             fmt.Sprintf("Exceeded %s-hour cycle limit by %s hours", limits.CycleHours, total-limits.CycleHours),
		Severity:                rule.Severity,
		OccurredAt:              occurredAt,
		DurationOver:            total - limits.CycleHours,
		RequiresImmediateAction: true,
		ComplianceImpact:        "Driver must take 34-hour restart or wait for cycle reset",
		Status:                  types.StatusPending,
	}}
}

// checkRestartAttempts flags every completed off-duty interval shorter than
// the restart minimum as an invalid restart attempt. This intentionally
// over-reports: a two-hour lunch break is flagged even though it was never
// meant as a restart, and a human disputes it later through the workflow.
func checkRestartAttempts(rule types.Rule, scoped []types.DutyInterval) []types.Violation {
	minHours := param(rule, "min_hours", 34.0)

	violations := []types.Violation{}
	for _, interval := range scoped {
		if interval.Status != types.OffDuty || !interval.Ended {
			continue
		}
		duration, err := hours.Between(interval.Start, interval.End)
		if err != nil || duration >= minHours {
			continue
		}
		violations = append(violations, types.Violation{
			Type:             types.ViolationInvalid34HourRestart,
			Description:      fmt.Sprintf("Attempted 34-hour restart with only %s hours off duty (minimum: %s)", duration, minHours),
			Severity:         rule.Severity,
			OccurredAt:       interval.Start,
			ComplianceImpact: "Restart attempt invalid, cycle continues",
			Status:           types.StatusPending,
		})
	}
	return violations
}

// checkSplitBerth validates the first two split-flagged sleeper berth periods
// against the per-leg minimums, one violation per failing leg
func checkSplitBerth(rule types.Rule, periods []types.SleeperBerthPeriod) []types.Violation {
	minFirst := param(rule, "min_first_period", 2.0)
	minSecond := param(rule, "min_second_period", 2.0)

	split := []types.SleeperBerthPeriod{}
	for _, period := range periods {
		if period.SplitBerthPeriod {
			split = append(split, period)
		}
	}
	if len(split) < 2 {
		return nil
	}

	violations := []types.Violation{}
	if split[0].DurationHours < minFirst {
		violations = append(violations, types.Violation{
			Type:             types.ViolationInvalidSplitBerthFirst,
			Description:      fmt.Sprintf("First sleeper berth period only %s hours (minimum: %s)", split[0].DurationHours, minFirst),
			Severity:         rule.Severity,
			OccurredAt:       split[0].Start,
			ComplianceImpact: "Split berth period invalid",
			Status:           types.StatusPending,
		})
	}
	if split[1].DurationHours < minSecond {
		violations = append(violations, types.Violation{
			Type:             types.ViolationInvalidSplitBerthLast,
			Description:      fmt.Sprintf("Second sleeper berth period only %s hours (minimum: %s)", split[1].DurationHours, minSecond),
			Severity:         rule.Severity,
			OccurredAt:       split[1].Start,
			ComplianceImpact: "Split berth period invalid",
			Status:           types.StatusPending,
		})
	}
	return violations
}
