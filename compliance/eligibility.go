package compliance

import (
	"time"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

func hasSeverity(violations []types.Violation, severities ...types.Severity) bool {
	for _, violation := range violations {
		for _, severity := range severities {
			if violation.Severity == severity {
				return true
			}
		}
	}
	return false
}

// canDrive decides driving eligibility: no critical violations, currently the
// active driver of the team (when team driving), and under both the driving
// and the on-duty hour limits
func canDrive(scoped []types.DutyInterval, now time.Time, violations []types.Violation, team *types.TeamDrivingInfo, limits types.CycleLimits) bool {
	if hasSeverity(violations, types.SeverityCritical) {
		return false
	}
	if team != nil && team.Role != team.CurrentDriver {
		return false
	}
	if drivingHoursSinceBreak(scoped, now, 50*hours.Centi) >= limits.MaxDrivingHours {
		return false
	}
	if onDutyHoursSinceRest(scoped, now, limits.MinOffDutyHours) >= limits.MaxOnDutyHours {
		return false
	}
	return true
}

// canBeOnDuty decides on-duty eligibility
func canBeOnDuty(scoped []types.DutyInterval, now time.Time, violations []types.Violation, limits types.CycleLimits) bool {
	if hasSeverity(violations, types.SeverityCritical) {
		return false
	}
	if onDutyHoursSinceRest(scoped, now, limits.MinOffDutyHours) >= limits.MaxOnDutyHours {
		return false
	}
	return true
}

// needsRest raises the early warning one hour before the hard limits, or
// whenever a major or critical violation is already on the books
func needsRest(scoped []types.DutyInterval, now time.Time, violations []types.Violation, limits types.CycleLimits) bool {
	if hasSeverity(violations, types.SeverityMajor, types.SeverityCritical) {
		return true
	}
	if drivingHoursSinceBreak(scoped, now, 50*hours.Centi) >= limits.MaxDrivingHours-hours.One {
		return true
	}
	if onDutyHoursSinceRest(scoped, now, limits.MinOffDutyHours) >= limits.MaxOnDutyHours-hours.One {
		return true
	}
	return false
}
