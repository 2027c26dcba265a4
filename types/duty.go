package types

import (
	"time"

	"github.com/trucklog/hosd/hours"
)

// DutyStatus represents what a driver was doing during a duty interval
type DutyStatus string

const (
	// OffDuty means the driver was not working and free of all responsibility
	OffDuty DutyStatus = "off_duty"
	// SleeperBerth means the driver was resting in the sleeper berth
	SleeperBerth DutyStatus = "sleeper_berth"
	// Driving means the driver was at the controls of the vehicle
	Driving DutyStatus = "driving"
	// OnDutyNotDriving means the driver was working but not driving
	OnDutyNotDriving DutyStatus = "on_duty_not_driving"
)

// IsValid returns whether s is one of the four duty statuses
func (s DutyStatus) IsValid() bool {
	switch s {
	case OffDuty, SleeperBerth, Driving, OnDutyNotDriving:
		return true
	}
	return false
}

// IsOnDuty returns whether s counts against on-duty hour limits
func (s DutyStatus) IsOnDuty() bool {
	return s == Driving || s == OnDutyNotDriving
}

// CycleType represents a hours-of-service cycle variant
type CycleType string

const (
	// Cycle70In8 is the 70-hour/8-day cycle
	Cycle70In8 CycleType = "70_8"
	// Cycle60In7 is the 60-hour/7-day cycle
	Cycle60In7 CycleType = "60_7"
	// Cycle34HourRestart is the 34-hour restart cycle
	Cycle34HourRestart CycleType = "34_hour"
)

// DutyInterval is one contiguous stretch of a single duty status.
// Only the most recent interval of a log may still be open (Ended == false);
// the engine treats an open interval as extending to the evaluation time.
type DutyInterval struct {
	Start  time.Time
	End    time.Time
	Ended  bool
	Status DutyStatus
}

// Hours returns the elapsed hours of the interval, measuring open intervals
// up to now
func (i DutyInterval) Hours(now time.Time) (hours.Hours, error) {
	end := i.End
	if !i.Ended {
		end = now
	}
	h, err := hours.Between(i.Start, end)
	if err != nil {
		return 0, err
	}
	return h, nil
}

// CycleLimits holds the fixed limits of one cycle type
type CycleLimits struct {
	MaxDrivingHours      hours.Hours
	MaxOnDutyHours       hours.Hours
	MinOffDutyHours      hours.Hours
	MinSleeperBerthHours hours.Hours
	CycleHours           hours.Hours
	CycleDays            int
	MinRestartHours      hours.Hours
}

// SleeperBerthPeriod is a rest period derived from a SleeperBerth interval
type SleeperBerthPeriod struct {
	Start            time.Time
	End              time.Time
	Ended            bool
	DurationHours    hours.Hours
	ValidForRestart  bool
	SplitBerthPeriod bool
}
