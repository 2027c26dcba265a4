package main

import (
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
	"github.com/trucklog/hosd/dataobjects"
	statsd "gopkg.in/alexcesaro/statsd.v2"
)

// StatsSender is meant to be called as a goroutine that handles sending telemetry
// to a statsd (or compatible) server
func StatsSender() {
	statsdAddress, present := secrets.Get("statsdAddress")
	statsdPrefix, present2 := secrets.Get("statsdPrefix")
	if !present || !present2 {
		return
	}

	c, err := statsd.New(statsd.Address(statsdAddress), statsd.Prefix(statsdPrefix))
	if err != nil {
		// If nothing is listening on the target port, an error is returned and
		// the returned client does nothing but is still usable. So we can
		// just log the error and go on.
		mainLog.Println(err)
	}
	defer c.Close()

	fleetScore := movingaverage.New(100)

	ticker := time.NewTicker(1 * time.Minute)

	for {
		select {
		case <-ticker.C:
			drivers, err := dataobjects.GetDrivers(rootSqalxNode)
			if err != nil {
				mainLog.Println(err)
				continue
			}
			for _, driver := range drivers {
				status := DriverStatus(driver.ID)
				if status == nil {
					continue
				}
				score := status.Analytics.ComplianceScore.Float64()
				c.Gauge("compliance_score_"+driver.ID, score)
				c.Gauge("violations_"+driver.ID, len(status.Violations))
				fleetScore.Add(score)
			}
			c.Gauge("fleet_compliance_score", fleetScore.Avg())
		case <-EvaluationTelemetry:
			c.Increment("evaluations")
		}
	}
}
