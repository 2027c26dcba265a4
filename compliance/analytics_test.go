package compliance

import (
	"testing"
	"time"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

func TestAnalyticsScorePenalties(t *testing.T) {
	violations := []types.Violation{
		{Type: types.ViolationCycleHoursExceeded, Severity: types.SeverityCritical},
		{Type: types.ViolationDrivingOver11, Severity: types.SeverityMajor},
		{Type: types.ViolationInvalidSplitBerthFirst, Severity: types.SeverityMinor},
	}
	analytics := buildAnalytics(nil, violations, testNow, limits70())

	if analytics.ComplianceScore != 65*hours.One {
		t.Errorf("ComplianceScore = %s, want 65.00 (100 - 20 - 10 - 5)", analytics.ComplianceScore)
	}
	if analytics.TotalViolations != 3 {
		t.Errorf("TotalViolations = %d, want 3", analytics.TotalViolations)
	}
	if analytics.BySeverity[types.SeverityCritical] != 1 {
		t.Errorf("BySeverity[critical] = %d, want 1", analytics.BySeverity[types.SeverityCritical])
	}
	if analytics.ByType[types.ViolationDrivingOver11] != 1 {
		t.Errorf("ByType[driving_over_11] = %d, want 1", analytics.ByType[types.ViolationDrivingOver11])
	}
}

func TestAnalyticsScoreFloor(t *testing.T) {
	violations := make([]types.Violation, 6)
	for i := range violations {
		violations[i] = types.Violation{Severity: types.SeverityCritical}
	}
	analytics := buildAnalytics(nil, violations, testNow, limits70())
	if analytics.ComplianceScore != 0 {
		t.Errorf("ComplianceScore = %s, want 0.00, never negative", analytics.ComplianceScore)
	}
}

func TestAnalyticsCycleEfficiency(t *testing.T) {
	intervals := []types.DutyInterval{
		closed(types.Driving, testNow.Add(-10*time.Hour), 6*time.Hour),
		closed(types.OnDutyNotDriving, testNow.Add(-4*time.Hour), 2*time.Hour),
		closed(types.OffDuty, testNow.Add(-2*time.Hour), 2*time.Hour),
	}
	analytics := buildAnalytics(intervals, nil, testNow, limits70())
	if analytics.CycleEfficiency != 60*hours.One {
		t.Errorf("CycleEfficiency = %s, want 60.00 (6 of 10 hours driving)", analytics.CycleEfficiency)
	}
}

func TestAnalyticsRiskFactors(t *testing.T) {
	// one 13-hour duty day and enough violations to cross every threshold
	intervals := []types.DutyInterval{
		closed(types.Driving, testNow.Add(-13*time.Hour), 13*time.Hour),
	}
	violations := make([]types.Violation, 6)
	for i := range violations {
		violations[i] = types.Violation{Severity: types.SeverityMajor}
	}
	analytics := buildAnalytics(intervals, violations, testNow, limits70())

	want := map[string]bool{
		RiskLowScore:       true,
		RiskHighViolations: true,
		RiskHighDailyHours: true,
	}
	for _, factor := range analytics.RiskFactors {
		delete(want, factor)
	}
	for factor := range want {
		t.Errorf("missing risk factor %q", factor)
	}
}

func TestAnalyticsCleanLog(t *testing.T) {
	intervals := []types.DutyInterval{
		closed(types.Driving, testNow.Add(-8*time.Hour), 6*time.Hour),
	}
	analytics := buildAnalytics(intervals, nil, testNow, limits70())
	if analytics.ComplianceScore != 100*hours.One {
		t.Errorf("ComplianceScore = %s, want 100.00", analytics.ComplianceScore)
	}
	if len(analytics.RiskFactors) != 0 {
		t.Errorf("RiskFactors = %v, want none", analytics.RiskFactors)
	}
}

func TestSummarize(t *testing.T) {
	violations := []types.Violation{
		{Type: types.ViolationDrivingOver11, Severity: types.SeverityMajor, RequiresImmediateAction: true},
		{Type: types.ViolationDrivingOver11, Severity: types.SeverityMajor, RequiresImmediateAction: true},
		{Type: types.ViolationCycleHoursExceeded, Severity: types.SeverityCritical, RequiresImmediateAction: true},
		{Type: types.ViolationInvalidSplitBerthLast, Severity: types.SeverityMinor},
	}
	summary := Summarize(violations)

	if summary.Total != 4 {
		t.Errorf("Total = %d, want 4", summary.Total)
	}
	if summary.Critical != 1 || summary.Major != 2 || summary.Minor != 1 {
		t.Errorf("severity counts = %d/%d/%d, want 1/2/1", summary.Critical, summary.Major, summary.Minor)
	}
	if summary.RequiresImmediateAction != 3 {
		t.Errorf("RequiresImmediateAction = %d, want 3", summary.RequiresImmediateAction)
	}
	if summary.ByType[types.ViolationDrivingOver11] != 2 {
		t.Errorf("ByType[driving_over_11] = %d, want 2", summary.ByType[types.ViolationDrivingOver11])
	}
}

func TestRestartRecommendationProgress(t *testing.T) {
	tests := []struct {
		name           string
		used           hours.Hours
		wantType       string
		wantActionable bool
	}{
		{"near limit", 65 * hours.One, "restart_immediate", true},
		{"eighty percent", 57 * hours.One, "restart_soon", false},
		{"low usage", 20 * hours.One, "", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recommendation := restartRecommendation(nil, test.used, testNow, limits70())
			if test.wantType == "" {
				if len(recommendation.Advice) != 0 {
					t.Errorf("Advice = %v, want none", recommendation.Advice)
				}
				return
			}
			if len(recommendation.Advice) != 1 {
				t.Fatalf("got %d advice entries, want 1", len(recommendation.Advice))
			}
			advice := recommendation.Advice[0]
			if advice.Type != test.wantType {
				t.Errorf("advice type = %q, want %q", advice.Type, test.wantType)
			}
			if advice.ActionRequired != test.wantActionable {
				t.Errorf("ActionRequired = %v, want %v", advice.ActionRequired, test.wantActionable)
			}
		})
	}
}

func TestRestartRecommendationOptimalTime(t *testing.T) {
	recommendation := restartRecommendation(nil, 50*hours.One, testNow, limits70())
	if !recommendation.HasOptimalTime {
		t.Fatal("expected an optimal restart time above seventy percent of the cycle")
	}
	if !recommendation.OptimalRestartTime.Equal(testNow.Add(time.Hour)) {
		t.Errorf("OptimalRestartTime = %v, want now+1h", recommendation.OptimalRestartTime)
	}

	recommendation = restartRecommendation(nil, 20*hours.One, testNow, limits70())
	if recommendation.HasOptimalTime {
		t.Error("did not expect an optimal restart time at low usage")
	}
}

func TestRestartRecommendationLastRestart(t *testing.T) {
	periods := []types.SleeperBerthPeriod{
		{
			Start:           testNow.Add(-50 * time.Hour),
			End:             testNow.Add(-15 * time.Hour),
			Ended:           true,
			DurationHours:   35 * hours.One,
			ValidForRestart: true,
		},
	}
	recommendation := restartRecommendation(periods, 10*hours.One, testNow, limits70())
	if !recommendation.HasRestart {
		t.Fatal("expected the valid sleeper berth period to count as the last restart")
	}
	if !recommendation.LastRestart.Equal(periods[0].End) {
		t.Errorf("LastRestart = %v, want the period end", recommendation.LastRestart)
	}
	if recommendation.TimeSinceRestart != 15*hours.One {
		t.Errorf("TimeSinceRestart = %s, want 15.00", recommendation.TimeSinceRestart)
	}
}
