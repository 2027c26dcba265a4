package compliance

import (
	"fmt"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

var cycleLimits = map[types.CycleType]types.CycleLimits{
	types.Cycle70In8: {
		MaxDrivingHours:      11 * hours.One,
		MaxOnDutyHours:       14 * hours.One,
		MinOffDutyHours:      10 * hours.One,
		MinSleeperBerthHours: 8 * hours.One,
		CycleHours:           70 * hours.One,
		CycleDays:            8,
		MinRestartHours:      34 * hours.One,
	},
	types.Cycle60In7: {
		MaxDrivingHours:      11 * hours.One,
		MaxOnDutyHours:       14 * hours.One,
		MinOffDutyHours:      10 * hours.One,
		MinSleeperBerthHours: 8 * hours.One,
		CycleHours:           60 * hours.One,
		CycleDays:            7,
		MinRestartHours:      34 * hours.One,
	},
	types.Cycle34HourRestart: {
		MaxDrivingHours:      11 * hours.One,
		MaxOnDutyHours:       14 * hours.One,
		MinOffDutyHours:      34 * hours.One,
		MinSleeperBerthHours: 8 * hours.One,
		CycleHours:           70 * hours.One,
		CycleDays:            8,
		MinRestartHours:      34 * hours.One,
	},
}

// LimitsFor returns the fixed limits of the given cycle type
func LimitsFor(cycleType types.CycleType) (types.CycleLimits, error) {
	limits, ok := cycleLimits[cycleType]
	if !ok {
		return types.CycleLimits{}, fmt.Errorf("LimitsFor: %q: %w", cycleType, ErrUnsupportedCycleType)
	}
	return limits, nil
}
