package main

import (
	"fmt"
	"time"

	"github.com/gbl08ma/sqalx"

	"github.com/trucklog/hosd/compliance"
	"github.com/trucklog/hosd/dataobjects"
	"github.com/trucklog/hosd/types"
)

// EvaluationTelemetry is a channel where something should be sent whenever a
// driver evaluation completes
var EvaluationTelemetry = make(chan interface{}, 10)

// EvaluateAllDrivers runs one compliance pass over every registered driver,
// persisting newly detected violations and caching the resulting status
func EvaluateAllDrivers(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Commit()

	drivers, err := dataobjects.GetDrivers(tx)
	if err != nil {
		return fmt.Errorf("EvaluateAllDrivers: %s", err)
	}

	now := time.Now().UTC()
	for _, driver := range drivers {
		err := evaluateDriver(tx, driver, now)
		if err != nil {
			// one driver's bad log must not block the whole fleet
			mainLog.Println("EvaluateAllDrivers:", driver.ID, err)
			continue
		}
		select {
		case EvaluationTelemetry <- driver.ID:
		default:
		}
	}
	return nil
}

func evaluateDriver(node sqalx.Node, driver *dataobjects.Driver, now time.Time) error {
	limits, err := compliance.LimitsFor(driver.CycleType)
	if err != nil {
		return fmt.Errorf("evaluateDriver: %s", err)
	}

	// fetch one day beyond the cycle window so a restart straddling the
	// window boundary is still visible
	since := now.AddDate(0, 0, -(limits.CycleDays + 1))
	entries, err := dataobjects.GetLogEntriesForDriver(node, driver, since)
	if err != nil {
		return fmt.Errorf("evaluateDriver: %s", err)
	}

	team, err := teamInfoFor(node, driver)
	if err != nil {
		return fmt.Errorf("evaluateDriver: %s", err)
	}

	status, err := engine.Evaluate(dataobjects.DutyIntervals(entries), now, driver.CycleType, team)
	if err != nil {
		return fmt.Errorf("evaluateDriver: %s", err)
	}

	for _, detected := range status.Violations {
		violation := dataobjects.NewViolation(driver, detected)
		err = violation.Update(node)
		if err != nil {
			return fmt.Errorf("evaluateDriver: %s", err)
		}
	}

	statusCache.SetDefault(driver.ID, status)
	return nil
}

func teamInfoFor(node sqalx.Node, driver *dataobjects.Driver) (*types.TeamDrivingInfo, error) {
	if driver.TeamID == "" {
		return nil, nil
	}
	team, err := dataobjects.GetTeam(node, driver.TeamID)
	if err != nil {
		return nil, err
	}
	return team.DrivingInfoFor(driver), nil
}

// DriverStatus returns the latest cached evaluation for the driver, or nil if
// the driver has not been evaluated yet
func DriverStatus(driverID string) *types.HOSStatus {
	if s, ok := statusCache.Get(driverID); ok {
		return s.(*types.HOSStatus)
	}
	return nil
}
