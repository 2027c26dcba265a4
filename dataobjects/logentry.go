package dataobjects

import (
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"
	"github.com/lib/pq"
	uuid "github.com/satori/go.uuid"

	"github.com/trucklog/hosd/types"
)

// LogEntry is one persisted duty status interval of a driver
type LogEntry struct {
	ID       string
	Driver   *Driver
	Start    time.Time
	End      time.Time
	Ended    bool
	Status   types.DutyStatus
	Location string
	Remarks  string
}

// NewLogEntry returns a new LogEntry with a fresh ID
func NewLogEntry(driver *Driver, status types.DutyStatus, start time.Time) *LogEntry {
	id, _ := uuid.NewV4()
	return &LogEntry{
		ID:     id.String(),
		Driver: driver,
		Start:  start,
		Status: status,
	}
}

// GetLogEntries returns a slice with all registered log entries
func GetLogEntries(node sqalx.Node) ([]*LogEntry, error) {
	return getLogEntriesWithSelect(node, sdb.Select())
}

// GetLogEntriesForDriver returns the log entries of the given driver starting
// at or after since, in chronological order
func GetLogEntriesForDriver(node sqalx.Node, driver *Driver, since time.Time) ([]*LogEntry, error) {
	s := sdb.Select().
		Where(sq.Eq{"mdriver": driver.ID}).
		Where(sq.GtOrEq{"time_start": since})
	return getLogEntriesWithSelect(node, s)
}

func getLogEntriesWithSelect(node sqalx.Node, sbuilder sq.SelectBuilder) ([]*LogEntry, error) {
	entries := []*LogEntry{}

	tx, err := node.Beginx()
	if err != nil {
		return entries, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sbuilder.Columns("id", "mdriver", "time_start", "time_end", "duty_status", "location", "remarks").
		From("duty_log").
		OrderBy("time_start ASC").
		RunWith(tx).Query()
	if err != nil {
		return entries, fmt.Errorf("getLogEntriesWithSelect: %s", err)
	}
	defer rows.Close()

	driverIDs := []string{}
	for rows.Next() {
		var entry LogEntry
		var timeEnd pq.NullTime
		var driverID string
		err := rows.Scan(
			&entry.ID,
			&driverID,
			&entry.Start,
			&timeEnd,
			&entry.Status,
			&entry.Location,
			&entry.Remarks)
		if err != nil {
			return entries, fmt.Errorf("getLogEntriesWithSelect: %s", err)
		}
		entry.End = timeEnd.Time
		entry.Ended = timeEnd.Valid
		entries = append(entries, &entry)
		driverIDs = append(driverIDs, driverID)
	}
	if err := rows.Err(); err != nil {
		return entries, fmt.Errorf("getLogEntriesWithSelect: %s", err)
	}
	for i := range driverIDs {
		entries[i].Driver, err = GetDriver(tx, driverIDs[i])
		if err != nil {
			return entries, fmt.Errorf("getLogEntriesWithSelect: %s", err)
		}
	}
	return entries, nil
}

// DutyIntervals converts log entries to the intervals the compliance engine
// consumes
func DutyIntervals(entries []*LogEntry) []types.DutyInterval {
	intervals := make([]types.DutyInterval, len(entries))
	for i, entry := range entries {
		intervals[i] = types.DutyInterval{
			Start:  entry.Start,
			End:    entry.End,
			Ended:  entry.Ended,
			Status: entry.Status,
		}
	}
	return intervals
}

// Update adds or updates the log entry
func (entry *LogEntry) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	timeEnd := pq.NullTime{
		Time:  entry.End,
		Valid: entry.Ended,
	}

	_, err = sdb.Insert("duty_log").
		Columns("id", "mdriver", "time_start", "time_end", "duty_status", "location", "remarks").
		Values(entry.ID, entry.Driver.ID, entry.Start, timeEnd, entry.Status, entry.Location, entry.Remarks).
		Suffix("ON CONFLICT (id) DO UPDATE SET mdriver = ?, time_start = ?, time_end = ?, duty_status = ?, location = ?, remarks = ?",
			entry.Driver.ID, entry.Start, timeEnd, entry.Status, entry.Location, entry.Remarks).
		RunWith(tx).Exec()
	if err != nil {
		return errors.New("AddLogEntry: " + err.Error())
	}
	return tx.Commit()
}

// Delete deletes the log entry
func (entry *LogEntry) Delete(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Delete("duty_log").
		Where(sq.Eq{"id": entry.ID}).RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("RemoveLogEntry: %s", err)
	}
	return tx.Commit()
}
