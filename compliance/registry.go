package compliance

import (
	"fmt"
	"sync"

	"github.com/trucklog/hosd/types"
)

// Rule IDs of the default rule set
const (
	RuleDrivingLimit     = "driving_limit_11_hours"
	RuleOnDutyLimit      = "on_duty_limit_14_hours"
	RuleBreakRequirement = "30_min_break_requirement"
	RuleCycleHours       = "cycle_hours_limit"
	Rule34HourRestart    = "34_hour_restart"
	RuleSleeperSplit     = "sleeper_berth_split"
)

// RulePatch is a partial update to a registry rule. Nil fields are left
// unchanged; Parameters are merged key by key.
type RulePatch struct {
	Name        *string
	Description *string
	Severity    *types.Severity
	Enabled     *bool
	Parameters  map[string]float64
}

// Registry is the source of truth for which compliance checks run and with
// what thresholds. It may be shared between administrative callers and
// evaluations; evaluations must work from a Snapshot so concurrent rule edits
// cannot produce a half-old/half-new rule set mid-pass.
type Registry struct {
	mu    sync.Mutex
	order []string
	rules map[string]*types.Rule
}

// NewRegistry returns a registry loaded with the default FMCSA rule set
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[string]*types.Rule)}
	for _, rule := range defaultRules() {
		r.Register(rule)
	}
	return r
}

func defaultRules() []types.Rule {
	return []types.Rule{
		{
			ID:          RuleDrivingLimit,
			Name:        "11-Hour Driving Limit",
			Description: "Maximum 11 hours of driving after 10 consecutive hours off duty",
			Severity:    types.SeverityMajor,
			Enabled:     true,
			Parameters:  map[string]float64{"max_hours": 11.0},
		},
		{
			ID:          RuleOnDutyLimit,
			Name:        "14-Hour On-Duty Limit",
			Description: "Maximum 14 hours on duty after 10 consecutive hours off duty",
			Severity:    types.SeverityMajor,
			Enabled:     true,
			Parameters:  map[string]float64{"max_hours": 14.0},
		},
		{
			ID:          RuleBreakRequirement,
			Name:        "30-Minute Break Requirement",
			Description: "Must take 30-minute break after 8 hours of driving",
			Severity:    types.SeverityMajor,
			Enabled:     true,
			Parameters:  map[string]float64{"break_threshold": 8.0, "min_break": 0.5},
		},
		{
			ID:          RuleCycleHours,
			Name:        "Cycle Hours Limit",
			Description: "Maximum hours in 70/8 or 60/7 cycle",
			Severity:    types.SeverityCritical,
			Enabled:     true,
			Parameters:  map[string]float64{"cycle_hours": 70.0, "cycle_days": 8},
		},
		{
			ID:          Rule34HourRestart,
			Name:        "34-Hour Restart",
			Description: "Minimum 34 consecutive hours off duty to restart cycle",
			Severity:    types.SeverityCritical,
			Enabled:     true,
			Parameters:  map[string]float64{"min_hours": 34.0},
		},
		{
			ID:          RuleSleeperSplit,
			Name:        "Sleeper Berth Split",
			Description: "Sleeper berth time can be split into two periods",
			Severity:    types.SeverityMinor,
			Enabled:     true,
			Parameters:  map[string]float64{"min_first_period": 2.0, "min_second_period": 2.0},
		},
	}
}

// Register adds the rule to the registry, or replaces it if a rule with the
// same ID exists. Registration order determines detector output order.
func (r *Registry) Register(rule types.Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := rule.Clone()
	if _, exists := r.rules[rule.ID]; !exists {
		r.order = append(r.order, rule.ID)
	}
	r.rules[rule.ID] = &stored
}

// Update applies a partial update to the rule with the given ID.
// Unknown IDs fail with ErrRuleNotFound and cause no side effects.
func (r *Registry) Update(id string, patch RulePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return fmt.Errorf("Update: %q: %w", id, ErrRuleNotFound)
	}

	if patch.Name != nil {
		rule.Name = *patch.Name
	}
	if patch.Description != nil {
		rule.Description = *patch.Description
	}
	if patch.Severity != nil {
		rule.Severity = *patch.Severity
	}
	if patch.Enabled != nil {
		rule.Enabled = *patch.Enabled
	}
	for k, v := range patch.Parameters {
		rule.Parameters[k] = v
	}
	return nil
}

// Get returns a copy of the rule with the given ID
func (r *Registry) Get(id string) (types.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return types.Rule{}, fmt.Errorf("Get: %q: %w", id, ErrRuleNotFound)
	}
	return rule.Clone(), nil
}

// Snapshot returns deep copies of all enabled rules in registration order.
// The returned slice is immutable from the registry's point of view and safe
// to use for the whole duration of one evaluation.
func (r *Registry) Snapshot() []types.Rule {
	r.mu.Lock()
	defer r.mu.Unlock()

	rules := []types.Rule{}
	for _, id := range r.order {
		rule := r.rules[id]
		if !rule.Enabled {
			continue
		}
		rules = append(rules, rule.Clone())
	}
	return rules
}
