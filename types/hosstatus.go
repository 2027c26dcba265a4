package types

import (
	"time"

	"github.com/trucklog/hosd/hours"
)

// RestartAdvice is one actionable recommendation about cycle restarts
type RestartAdvice struct {
	Type           string
	Message        string
	Priority       string
	ActionRequired bool
}

// SleeperBerthOption describes one way of taking the required berth rest
type SleeperBerthOption struct {
	Type         string
	Description  string
	MinimumHours hours.Hours
	Benefits     []string
}

// RestartRecommendation summarizes cycle progress and suggests restart timing
type RestartRecommendation struct {
	LastRestart          time.Time
	HasRestart           bool
	TimeSinceRestart     hours.Hours
	CurrentCycleHours    hours.Hours
	CycleLimit           hours.Hours
	CycleProgressPercent hours.Hours
	Advice               []RestartAdvice
	OptimalRestartTime   time.Time
	HasOptimalTime       bool
	SleeperBerthOptions  []SleeperBerthOption
}

// HOSStatus is the engine's single output aggregate for one evaluation
type HOSStatus struct {
	CanDrive    bool
	CanBeOnDuty bool
	NeedsRest   bool

	HoursUsedThisCycle      hours.Hours
	HoursAvailable          hours.Hours
	ConsecutiveOffDutyHours hours.Hours

	// LastBreak is the end of the most recent qualifying 30-minute break;
	// zero when the log contains none
	LastBreak time.Time

	Violations []Violation

	CycleType  CycleType
	CycleStart time.Time

	SleeperBerthPeriods []SleeperBerthPeriod
	TeamDriving         *TeamDrivingInfo
	Analytics           ComplianceAnalytics
	Restart             RestartRecommendation
}
