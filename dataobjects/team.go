package dataobjects

import (
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"
	"github.com/lib/pq"

	"github.com/trucklog/hosd/types"
)

// Team represents a driving team sharing a vehicle
type Team struct {
	ID                string
	Driver1ID         string
	Driver2ID         string
	CurrentDriver     types.TeamDrivingRole
	HandoffTime       time.Time
	HandoffLocation   string
	CoordinationNotes string
}

// GetTeams returns a slice with all registered teams
func GetTeams(node sqalx.Node) ([]*Team, error) {
	return getTeamsWithSelect(node, sdb.Select())
}

// GetTeam returns the Team with the given ID
func GetTeam(node sqalx.Node, id string) (*Team, error) {
	s := sdb.Select().
		Where(sq.Eq{"id": id})
	teams, err := getTeamsWithSelect(node, s)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, errors.New("Team not found")
	}
	return teams[0], nil
}

func getTeamsWithSelect(node sqalx.Node, sbuilder sq.SelectBuilder) ([]*Team, error) {
	teams := []*Team{}

	tx, err := node.Beginx()
	if err != nil {
		return teams, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sbuilder.Columns("id", "driver1", "driver2", "current_driver",
		"handoff_time", "handoff_location", "coordination_notes").
		From("team").
		OrderBy("id ASC").
		RunWith(tx).Query()
	if err != nil {
		return teams, fmt.Errorf("getTeamsWithSelect: %s", err)
	}
	defer rows.Close()

	for rows.Next() {
		var team Team
		var handoffTime pq.NullTime
		err := rows.Scan(
			&team.ID,
			&team.Driver1ID,
			&team.Driver2ID,
			&team.CurrentDriver,
			&handoffTime,
			&team.HandoffLocation,
			&team.CoordinationNotes)
		if err != nil {
			return teams, fmt.Errorf("getTeamsWithSelect: %s", err)
		}
		team.HandoffTime = handoffTime.Time
		teams = append(teams, &team)
	}
	if err := rows.Err(); err != nil {
		return teams, fmt.Errorf("getTeamsWithSelect: %s", err)
	}
	return teams, nil
}

// DrivingInfoFor builds the team context the compliance engine expects for
// the given driver, or nil if the driver has no team
func (team *Team) DrivingInfoFor(driver *Driver) *types.TeamDrivingInfo {
	if team == nil || driver.TeamRole == "" {
		return nil
	}
	return &types.TeamDrivingInfo{
		TeamID:            team.ID,
		Driver1ID:         team.Driver1ID,
		Driver2ID:         team.Driver2ID,
		Role:              driver.TeamRole,
		CurrentDriver:     team.CurrentDriver,
		HandoffTime:       team.HandoffTime,
		HandoffLocation:   team.HandoffLocation,
		CoordinationNotes: team.CoordinationNotes,
	}
}

// Update adds or updates the team
func (team *Team) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	handoffTime := pq.NullTime{
		Time:  team.HandoffTime,
		Valid: !team.HandoffTime.IsZero(),
	}

	_, err = sdb.Insert("team").
		Columns("id", "driver1", "driver2", "current_driver",
			"handoff_time", "handoff_location", "coordination_notes").
		Values(team.ID, team.Driver1ID, team.Driver2ID, team.CurrentDriver,
			handoffTime, team.HandoffLocation, team.CoordinationNotes).
		Suffix("ON CONFLICT (id) DO UPDATE SET driver1 = ?, driver2 = ?, current_driver = ?, handoff_time = ?, handoff_location = ?, coordination_notes = ?",
			team.Driver1ID, team.Driver2ID, team.CurrentDriver,
			handoffTime, team.HandoffLocation, team.CoordinationNotes).
		RunWith(tx).Exec()
	if err != nil {
		return errors.New("AddTeam: " + err.Error())
	}
	return tx.Commit()
}

// Delete deletes the team
func (team *Team) Delete(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Delete("team").
		Where(sq.Eq{"id": team.ID}).RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("RemoveTeam: %s", err)
	}
	return tx.Commit()
}
