package compliance

import (
	"errors"
	"testing"

	"github.com/trucklog/hosd/types"
)

func TestRegistryDefaults(t *testing.T) {
	rules := NewRegistry().Snapshot()

	wantOrder := []string{
		RuleDrivingLimit,
		RuleOnDutyLimit,
		RuleBreakRequirement,
		RuleCycleHours,
		Rule34HourRestart,
		RuleSleeperSplit,
	}
	if len(rules) != len(wantOrder) {
		t.Fatalf("got %d default rules, want %d", len(rules), len(wantOrder))
	}
	for i, id := range wantOrder {
		if rules[i].ID != id {
			t.Errorf("rule %d: ID = %q, want %q", i, rules[i].ID, id)
		}
		if !rules[i].Enabled {
			t.Errorf("rule %q: default rules must be enabled", id)
		}
	}
}

func TestRegistrySnapshotIsolation(t *testing.T) {
	registry := NewRegistry()
	snapshot := registry.Snapshot()

	snapshot[0].Parameters["max_hours"] = 1.0
	snapshot[0].Severity = types.SeverityMinor

	rule, err := registry.Get(RuleDrivingLimit)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rule.Parameters["max_hours"] != 11.0 {
		t.Errorf("max_hours = %v, mutating a snapshot must not reach the registry", rule.Parameters["max_hours"])
	}
	if rule.Severity != types.SeverityMajor {
		t.Errorf("Severity = %s, mutating a snapshot must not reach the registry", rule.Severity)
	}
}

func TestRegistryGetClone(t *testing.T) {
	registry := NewRegistry()
	rule, err := registry.Get(RuleBreakRequirement)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	rule.Parameters["min_break"] = 99.0

	again, err := registry.Get(RuleBreakRequirement)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Parameters["min_break"] != 0.5 {
		t.Errorf("min_break = %v, mutating a returned rule must not reach the registry", again.Parameters["min_break"])
	}
}

func TestRegistryUpdateUnknown(t *testing.T) {
	err := NewRegistry().Update("no_such_rule", RulePatch{})
	if !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("err = %v, want ErrRuleNotFound", err)
	}
}

func TestRegistryUpdatePatch(t *testing.T) {
	registry := NewRegistry()

	severity := types.SeverityCritical
	err := registry.Update(RuleDrivingLimit, RulePatch{
		Severity:   &severity,
		Parameters: map[string]float64{"max_hours": 10.0},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	rule, err := registry.Get(RuleDrivingLimit)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rule.Severity != types.SeverityCritical {
		t.Errorf("Severity = %s, want %s", rule.Severity, types.SeverityCritical)
	}
	if rule.Parameters["max_hours"] != 10.0 {
		t.Errorf("max_hours = %v, want 10", rule.Parameters["max_hours"])
	}
	if rule.Name != "11-Hour Driving Limit" {
		t.Errorf("Name = %q, fields outside the patch must not change", rule.Name)
	}
}

func TestRegistryDisabledExcludedFromSnapshot(t *testing.T) {
	registry := NewRegistry()
	disabled := false
	err := registry.Update(Rule34HourRestart, RulePatch{Enabled: &disabled})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	for _, rule := range registry.Snapshot() {
		if rule.ID == Rule34HourRestart {
			t.Fatal("a disabled rule must not appear in the snapshot")
		}
	}

	// disabled rules stay addressable
	rule, err := registry.Get(Rule34HourRestart)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rule.Enabled {
		t.Error("Get must reflect the disabled state")
	}
}

func TestRegistryRegisterReplacePreservesOrder(t *testing.T) {
	registry := NewRegistry()
	rule, err := registry.Get(RuleOnDutyLimit)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	rule.Name = "Renamed"
	registry.Register(rule)

	snapshot := registry.Snapshot()
	if snapshot[1].ID != RuleOnDutyLimit {
		t.Errorf("rule 1: ID = %q, re-registering must keep the original position", snapshot[1].ID)
	}
	if snapshot[1].Name != "Renamed" {
		t.Errorf("rule 1: Name = %q, want the replacement", snapshot[1].Name)
	}
}

func TestRegistryRegisterCustomRule(t *testing.T) {
	registry := NewRegistry()
	registry.Register(types.Rule{
		ID:         "state_specific_limit",
		Name:       "State Specific Limit",
		Severity:   types.SeverityMinor,
		Enabled:    true,
		Parameters: map[string]float64{"max_hours": 9.0},
	})

	snapshot := registry.Snapshot()
	last := snapshot[len(snapshot)-1]
	if last.ID != "state_specific_limit" {
		t.Errorf("last rule ID = %q, new rules must append in registration order", last.ID)
	}
}
