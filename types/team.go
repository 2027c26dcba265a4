package types

import "time"

// TeamDrivingRole identifies a member of a driving team
type TeamDrivingRole string

const (
	// Driver1 is the primary driver of the team
	Driver1 TeamDrivingRole = "driver_1"
	// Driver2 is the secondary driver of the team
	Driver2 TeamDrivingRole = "driver_2"
	// ReliefDriver substitutes for either regular driver
	ReliefDriver TeamDrivingRole = "relief_driver"
)

// TeamDrivingInfo carries team coordination state for one evaluation.
// Role is the role of the driver being evaluated; CurrentDriver is the role
// currently at the wheel according to the coordination collaborator.
type TeamDrivingInfo struct {
	TeamID            string
	Driver1ID         string
	Driver2ID         string
	Role              TeamDrivingRole
	CurrentDriver     TeamDrivingRole
	HandoffTime       time.Time
	HandoffLocation   string
	CoordinationNotes string
}

// Handoff passes the wheel to the other regular driver
func (t *TeamDrivingInfo) Handoff(location, notes string, now time.Time) {
	if t.CurrentDriver == Driver1 {
		t.CurrentDriver = Driver2
	} else {
		t.CurrentDriver = Driver1
	}
	t.HandoffTime = now
	t.HandoffLocation = location
	t.CoordinationNotes = notes
}
