package compliance

import (
	"time"

	altmath "github.com/pkg/math"
	"github.com/rickb777/date"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

const (
	penaltyCritical = 20 * hours.One
	penaltyMajor    = 10 * hours.One
	penaltyMinor    = 5 * hours.One
)

// Risk factor labels reported in ComplianceAnalytics
const (
	RiskLowScore         = "Low compliance score"
	RiskHighViolations   = "High violation count"
	RiskFrequentRestarts = "Frequent restarts"
	RiskHighDailyHours   = "High daily hours"
)

// buildAnalytics aggregates the evaluation into a compliance snapshot.
// It never re-evaluates rules: the violations are taken as given.
func buildAnalytics(intervals []types.DutyInterval, violations []types.Violation, now time.Time, limits types.CycleLimits) types.ComplianceAnalytics {
	analytics := types.ComplianceAnalytics{
		TotalViolations: len(violations),
		ByType:          map[string]int{},
		BySeverity:      map[types.Severity]int{},
		ComplianceScore: 100 * hours.One,
		RiskFactors:     []string{},
	}

	var penalty hours.Hours
	for _, violation := range violations {
		analytics.ByType[violation.Type]++
		analytics.BySeverity[violation.Severity]++
		switch violation.Severity {
		case types.SeverityCritical:
			penalty += penaltyCritical
		case types.SeverityMajor:
			penalty += penaltyMajor
		case types.SeverityMinor:
			penalty += penaltyMinor
		}
	}
	analytics.ComplianceScore -= penalty
	if analytics.ComplianceScore < 0 {
		analytics.ComplianceScore = 0
	}

	if len(intervals) > 0 {
		var totalHours, drivingHours hours.Hours
		dailyHours := map[date.Date]hours.Hours{}
		for _, interval := range intervals {
			duration := intervalHours(interval, now)
			totalHours += duration
			if interval.Status == types.Driving {
				drivingHours += duration
			}
			dailyHours[date.NewAt(interval.Start)] += duration
		}
		analytics.CycleEfficiency = drivingHours.PercentOf(totalHours)

		var dailyTotal hours.Hours
		for _, dayHours := range dailyHours {
			dailyTotal += dayHours
		}
		analytics.AverageDailyHours = dailyTotal.DivInt(len(dailyHours))

		restarts := 0
		for _, interval := range intervals {
			if interval.Status != types.OffDuty || !interval.Ended {
				continue
			}
			if duration, err := hours.Between(interval.Start, interval.End); err == nil && duration >= limits.MinRestartHours {
				restarts++
			}
		}
		spanDays := altmath.Max(1, int(now.Sub(intervals[0].Start).Hours()/24)+1)
		analytics.RestartFrequency = hours.FromRatio(int64(restarts)*7, int64(spanDays))
	}

	if analytics.ComplianceScore < 80*hours.One {
		analytics.RiskFactors = append(analytics.RiskFactors, RiskLowScore)
	}
	if analytics.TotalViolations > 5 {
		analytics.RiskFactors = append(analytics.RiskFactors, RiskHighViolations)
	}
	if analytics.RestartFrequency > 2*hours.One {
		analytics.RiskFactors = append(analytics.RiskFactors, RiskFrequentRestarts)
	}
	if analytics.AverageDailyHours > 12*hours.One {
		analytics.RiskFactors = append(analytics.RiskFactors, RiskHighDailyHours)
	}

	return analytics
}

// Summarize counts the given violations by severity, type and urgency
func Summarize(violations []types.Violation) types.ViolationSummary {
	summary := types.ViolationSummary{
		Total:  len(violations),
		ByType: map[string]int{},
	}
	for _, violation := range violations {
		summary.ByType[violation.Type]++
		switch violation.Severity {
		case types.SeverityCritical:
			summary.Critical++
		case types.SeverityMajor:
			summary.Major++
		case types.SeverityMinor:
			summary.Minor++
		}
		if violation.RequiresImmediateAction {
			summary.RequiresImmediateAction++
		}
	}
	return summary
}
