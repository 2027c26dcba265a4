package types

import "github.com/trucklog/hosd/hours"

// ComplianceAnalytics is a derived, read-only snapshot of a driver's
// compliance posture over the evaluated log
type ComplianceAnalytics struct {
	TotalViolations int
	ByType          map[string]int
	BySeverity      map[Severity]int

	// ComplianceScore starts at 100.00 and loses points per violation
	ComplianceScore hours.Hours
	// CycleEfficiency is the percentage of logged hours spent driving
	CycleEfficiency hours.Hours
	// RestartFrequency is restarts per week over the logged span
	RestartFrequency  hours.Hours
	AverageDailyHours hours.Hours

	RiskFactors []string
}

// ViolationSummary counts violations by severity and urgency
type ViolationSummary struct {
	Total                   int
	Critical                int
	Major                   int
	Minor                   int
	RequiresImmediateAction int
	ByType                  map[string]int
}
