package compliance

import (
	"sort"
	"time"

	"github.com/SaidinWoT/timespan"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

// cycleStart determines the start of the rolling window over which cycle
// hours are summed. It scans the log in reverse chronological order for the
// most recent valid 34-hour restart; if one is found the cycle starts at its
// end, otherwise (and never earlier than) cycle_days before now.
func cycleStart(intervals []types.DutyInterval, now time.Time, limits types.CycleLimits) time.Time {
	earliest := now.AddDate(0, 0, -limits.CycleDays)

	for i := len(intervals) - 1; i >= 0; i-- {
		candidate := intervals[i]
		if candidate.Status != types.OffDuty || !candidate.Ended {
			continue
		}
		if !isValidRestart(candidate, intervals, limits) {
			continue
		}
		if candidate.End.Before(earliest) {
			break
		}
		return candidate.End
	}
	return earliest
}

// isValidRestart reports whether the off-duty candidate is a valid restart:
// long enough, and with no on-duty time overlapping its interior. Sleeper
// berth time during the candidate is allowed; any positive overlap of driving
// or other on-duty work strictly between its bounds disqualifies it, with no
// partial credit.
func isValidRestart(candidate types.DutyInterval, all []types.DutyInterval, limits types.CycleLimits) bool {
	duration, err := hours.Between(candidate.Start, candidate.End)
	if err != nil || duration < limits.MinRestartHours {
		return false
	}

	interior := timespan.New(candidate.Start, candidate.End.Sub(candidate.Start))
	for _, interval := range all {
		if !interval.Status.IsOnDuty() {
			continue
		}
		end := interval.End
		if !interval.Ended || end.After(candidate.End) {
			end = candidate.End
		}
		if !end.After(interval.Start) {
			continue
		}
		span := timespan.New(interval.Start, end.Sub(interval.Start))
		if overlap, ok := interior.Intersection(span); ok && overlap.Duration() > 0 {
			return false
		}
	}
	return true
}

// sleeperBerthPeriods derives a SleeperBerthPeriod from every sleeper berth
// interval in the log and marks valid split berth pairs
func sleeperBerthPeriods(intervals []types.DutyInterval, now time.Time, limits types.CycleLimits) []types.SleeperBerthPeriod {
	periods := []types.SleeperBerthPeriod{}
	for _, interval := range intervals {
		if interval.Status != types.SleeperBerth {
			continue
		}
		duration := intervalHours(interval, now)
		periods = append(periods, types.SleeperBerthPeriod{
			Start:           interval.Start,
			End:             interval.End,
			Ended:           interval.Ended,
			DurationHours:   duration,
			ValidForRestart: duration >= limits.MinRestartHours,
		})
	}
	markSplitBerthPairs(periods, limits)
	return periods
}

// markSplitBerthPairs flags adjacent sleeper berth period pairs that together
// form a valid split: started no more than 24 hours apart, at least 2 hours
// each, at least the minimum sleeper berth total combined. Only consecutive
// pairs by start time are considered; a chain of three periods is checked
// pairwise, never as a whole.
func markSplitBerthPairs(periods []types.SleeperBerthPeriod, limits types.CycleLimits) {
	if len(periods) < 2 {
		return
	}

	byStart := make([]*types.SleeperBerthPeriod, len(periods))
	for i := range periods {
		byStart[i] = &periods[i]
	}
	sort.SliceStable(byStart, func(i, j int) bool {
		return byStart[i].Start.Before(byStart[j].Start)
	})

	minLeg := 2 * hours.One
	for i := 0; i < len(byStart)-1; i++ {
		current, next := byStart[i], byStart[i+1]
		if !current.Ended {
			continue
		}
		if next.Start.Sub(current.End) > 24*time.Hour {
			continue
		}
		total := current.DurationHours + next.DurationHours
		if current.DurationHours >= minLeg && next.DurationHours >= minLeg && total >= limits.MinSleeperBerthHours {
			current.SplitBerthPeriod = true
			next.SplitBerthPeriod = true
		}
	}
}

// scopedIntervals returns the intervals starting at or after the cycle start
func scopedIntervals(intervals []types.DutyInterval, start time.Time) []types.DutyInterval {
	scoped := []types.DutyInterval{}
	for _, interval := range intervals {
		if !interval.Start.Before(start) {
			scoped = append(scoped, interval)
		}
	}
	return scoped
}
