package dataobjects

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"

	"github.com/trucklog/hosd/types"
)

// Driver represents a commercial driver whose duty logs are evaluated
type Driver struct {
	ID        string
	Name      string
	CycleType types.CycleType
	TeamID    string
	TeamRole  types.TeamDrivingRole
}

// GetDrivers returns a slice with all registered drivers
func GetDrivers(node sqalx.Node) ([]*Driver, error) {
	return getDriversWithSelect(node, sdb.Select())
}

// GetDriver returns the Driver with the given ID
func GetDriver(node sqalx.Node, id string) (*Driver, error) {
	s := sdb.Select().
		Where(sq.Eq{"id": id})
	drivers, err := getDriversWithSelect(node, s)
	if err != nil {
		return nil, err
	}
	if len(drivers) == 0 {
		return nil, errors.New("Driver not found")
	}
	return drivers[0], nil
}

func getDriversWithSelect(node sqalx.Node, sbuilder sq.SelectBuilder) ([]*Driver, error) {
	drivers := []*Driver{}

	tx, err := node.Beginx()
	if err != nil {
		return drivers, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sbuilder.Columns("id", "name", "cycle_type", "team_id", "team_role").
		From("driver").
		OrderBy("id ASC").
		RunWith(tx).Query()
	if err != nil {
		return drivers, fmt.Errorf("getDriversWithSelect: %s", err)
	}
	defer rows.Close()

	for rows.Next() {
		var driver Driver
		var teamID, teamRole sql.NullString
		err := rows.Scan(
			&driver.ID,
			&driver.Name,
			&driver.CycleType,
			&teamID,
			&teamRole)
		if err != nil {
			return drivers, fmt.Errorf("getDriversWithSelect: %s", err)
		}
		driver.TeamID = teamID.String
		driver.TeamRole = types.TeamDrivingRole(teamRole.String)
		drivers = append(drivers, &driver)
	}
	if err := rows.Err(); err != nil {
		return drivers, fmt.Errorf("getDriversWithSelect: %s", err)
	}
	return drivers, nil
}

// Update adds or updates the driver
func (driver *Driver) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	teamID := sql.NullString{String: driver.TeamID, Valid: driver.TeamID != ""}
	teamRole := sql.NullString{String: string(driver.TeamRole), Valid: driver.TeamRole != ""}

	_, err = sdb.Insert("driver").
		Columns("id", "name", "cycle_type", "team_id", "team_role").
		Values(driver.ID, driver.Name, driver.CycleType, teamID, teamRole).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = ?, cycle_type = ?, team_id = ?, team_role = ?",
			driver.Name, driver.CycleType, teamID, teamRole).
		RunWith(tx).Exec()
	if err != nil {
		return errors.New("AddDriver: " + err.Error())
	}
	return tx.Commit()
}

// Delete deletes the driver
func (driver *Driver) Delete(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Delete("driver").
		Where(sq.Eq{"id": driver.ID}).RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("RemoveDriver: %s", err)
	}
	return tx.Commit()
}
