package compliance

import "errors"

var (
	// ErrInvalidLogData is returned when duty intervals are malformed or out of
	// order. Evaluation aborts entirely; no partial result is produced.
	ErrInvalidLogData = errors.New("invalid log data")
	// ErrRuleNotFound is returned by registry operations on unknown rule IDs
	ErrRuleNotFound = errors.New("rule not found")
	// ErrUnsupportedCycleType is returned for unrecognized cycle types
	ErrUnsupportedCycleType = errors.New("unsupported cycle type")
)
