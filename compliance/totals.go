package compliance

import (
	"time"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

// intervalHours measures an interval that already passed validation,
// treating an open interval as extending to now
func intervalHours(interval types.DutyInterval, now time.Time) hours.Hours {
	end := interval.End
	if !interval.Ended {
		end = now
	}
	h, err := hours.Between(interval.Start, end)
	if err != nil {
		return 0
	}
	return h
}

// cycleHoursUsed sums driving and on-duty hours over the given intervals
func cycleHoursUsed(intervals []types.DutyInterval, now time.Time) hours.Hours {
	var total hours.Hours
	for _, interval := range intervals {
		if interval.Status.IsOnDuty() {
			total += intervalHours(interval, now)
		}
	}
	return total
}

// lastQualifyingBreak returns the end of the most recent completed off-duty
// interval of at least minBreak hours, and whether one exists
func lastQualifyingBreak(intervals []types.DutyInterval, minBreak hours.Hours) (time.Time, bool) {
	for i := len(intervals) - 1; i >= 0; i-- {
		interval := intervals[i]
		if interval.Status != types.OffDuty || !interval.Ended {
			continue
		}
		duration, err := hours.Between(interval.Start, interval.End)
		if err != nil {
			continue
		}
		if duration >= minBreak {
			return interval.End, true
		}
	}
	return time.Time{}, false
}

// drivingHoursSinceBreak sums driving hours since the last qualifying
// 30-minute break. When the log contains no such break at all, every driving
// hour in the window counts.
func drivingHoursSinceBreak(intervals []types.DutyInterval, now time.Time, minBreak hours.Hours) hours.Hours {
	cutoff, hasBreak := lastQualifyingBreak(intervals, minBreak)

	var total hours.Hours
	for _, interval := range intervals {
		if interval.Status != types.Driving {
			continue
		}
		if hasBreak && interval.Start.Before(cutoff) {
			continue
		}
		total += intervalHours(interval, now)
	}
	return total
}

// onDutyHoursSinceRest sums on-duty hours since the end of the most recent
// off-duty interval of at least minRest hours. When the log contains no such
// rest, every on-duty hour in the window counts.
func onDutyHoursSinceRest(intervals []types.DutyInterval, now time.Time, minRest hours.Hours) hours.Hours {
	cutoff, hasRest := lastQualifyingBreak(intervals, minRest)

	var total hours.Hours
	for _, interval := range intervals {
		if !interval.Status.IsOnDuty() {
			continue
		}
		if hasRest && interval.Start.Before(cutoff) {
			continue
		}
		total += intervalHours(interval, now)
	}
	return total
}

// consecutiveOffDutyHours measures the rest run the driver is currently in:
// the trailing stretch of off-duty and sleeper berth intervals at the end of
// the log, up to now
func consecutiveOffDutyHours(intervals []types.DutyInterval, now time.Time) hours.Hours {
	var total hours.Hours
	for i := len(intervals) - 1; i >= 0; i-- {
		interval := intervals[i]
		if interval.Status.IsOnDuty() {
			break
		}
		total += intervalHours(interval, now)
	}
	return total
}
