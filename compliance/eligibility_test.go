package compliance

import (
	"testing"
	"time"

	"github.com/trucklog/hosd/types"
)

func TestNeedsRestEarlyWarning(t *testing.T) {
	tests := []struct {
		name      string
		intervals []types.DutyInterval
		want      bool
	}{
		{
			"under the warning threshold",
			[]types.DutyInterval{closed(types.OnDutyNotDriving, testNow.Add(-12*time.Hour), 12*time.Hour)},
			false,
		},
		{
			"one hour before the on-duty limit",
			[]types.DutyInterval{closed(types.OnDutyNotDriving, testNow.Add(-13*time.Hour), 13*time.Hour)},
			true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := needsRest(test.intervals, testNow, nil, limits70())
			if got != test.want {
				t.Errorf("needsRest = %v, want %v", got, test.want)
			}
		})
	}
}

func TestCanDriveAtExactLimit(t *testing.T) {
	intervals := []types.DutyInterval{
		closed(types.Driving, testNow.Add(-11*time.Hour), 11*time.Hour),
	}
	if canDrive(intervals, testNow, nil, nil, limits70()) {
		t.Error("eleven hours of driving must exhaust driving eligibility")
	}

	intervals = []types.DutyInterval{
		closed(types.Driving, testNow.Add(-10*time.Hour), 10*time.Hour),
	}
	if !canDrive(intervals, testNow, nil, nil, limits70()) {
		t.Error("ten hours of driving must leave driving eligibility intact")
	}
}

func TestCanBeOnDutyAtExactLimit(t *testing.T) {
	intervals := []types.DutyInterval{
		closed(types.OnDutyNotDriving, testNow.Add(-14*time.Hour), 14*time.Hour),
	}
	if canBeOnDuty(intervals, testNow, nil, limits70()) {
		t.Error("fourteen hours on duty must exhaust on-duty eligibility")
	}
}

func TestCanDriveBlockedByCriticalViolation(t *testing.T) {
	violations := []types.Violation{{Severity: types.SeverityCritical}}
	if canDrive(nil, testNow, violations, nil, limits70()) {
		t.Error("a critical violation must block driving regardless of hours")
	}
	if canBeOnDuty(nil, testNow, violations, limits70()) {
		t.Error("a critical violation must block on-duty regardless of hours")
	}
	if !needsRest(nil, testNow, violations, limits70()) {
		t.Error("a critical violation must require rest")
	}
}
