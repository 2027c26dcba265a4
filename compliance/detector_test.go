package compliance

import (
	"testing"
	"time"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

func TestDetectRegistrationOrder(t *testing.T) {
	// 12 hours of driving trips both the driving limit and the break rule;
	// the driving limit is registered first and must come out first
	intervals := []types.DutyInterval{
		closed(types.Driving, testNow.Add(-12*time.Hour), 12*time.Hour),
	}
	violations := detect(NewRegistry().Snapshot(), intervals, testNow, nil, limits70())

	if len(violations) != 2 {
		t.Fatalf("got %d violations, want 2", len(violations))
	}
	if violations[0].Type != types.ViolationDrivingOver11 {
		t.Errorf("violations[0].Type = %q, want %q", violations[0].Type, types.ViolationDrivingOver11)
	}
	if violations[1].Type != types.ViolationNo30MinBreak {
		t.Errorf("violations[1].Type = %q, want %q", violations[1].Type, types.ViolationNo30MinBreak)
	}
}

func TestDetectUnknownRuleIsNoOp(t *testing.T) {
	registry := NewRegistry()
	registry.Register(types.Rule{
		ID:         "fleet_custom_check",
		Enabled:    true,
		Severity:   types.SeverityMinor,
		Parameters: map[string]float64{},
	})
	violations := detect(registry.Snapshot(), nil, testNow, nil, limits70())
	if len(violations) != 0 {
		t.Errorf("got %d violations, a rule the detector does not know must produce none", len(violations))
	}
}

func TestParamFallback(t *testing.T) {
	rule := types.Rule{Parameters: map[string]float64{"max_hours": 9.25}}
	if got := param(rule, "max_hours", 11.0); got != 925*hours.Centi {
		t.Errorf("param = %s, want 9.25", got)
	}
	if got := param(rule, "missing", 11.0); got != 11*hours.One {
		t.Errorf("param fallback = %s, want 11.00", got)
	}
}

func TestCheckSplitBerthShortLegs(t *testing.T) {
	registry := NewRegistry()
	err := registry.Update(RuleSleeperSplit, RulePatch{
		Parameters: map[string]float64{"min_first_period": 4.0, "min_second_period": 4.0},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	rule, err := registry.Get(RuleSleeperSplit)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	t0 := testNow.Add(-12 * time.Hour)
	periods := []types.SleeperBerthPeriod{
		{Start: t0, End: t0.Add(3 * time.Hour), Ended: true, DurationHours: 3 * hours.One, SplitBerthPeriod: true},
		{Start: t0.Add(4 * time.Hour), End: t0.Add(9 * time.Hour), Ended: true, DurationHours: 5 * hours.One, SplitBerthPeriod: true},
	}
	violations := checkSplitBerth(rule, periods)
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1 for the short first leg", len(violations))
	}
	if violations[0].Type != types.ViolationInvalidSplitBerthFirst {
		t.Errorf("Type = %q, want %q", violations[0].Type, types.ViolationInvalidSplitBerthFirst)
	}
}
