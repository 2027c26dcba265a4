// Package dataobjects contains the persisted entities of the HOS service and
// their database access functions. The compliance engine itself never touches
// this package; package main loads duty logs and rule configuration from here
// and stores detected violations back.
package dataobjects

import (
	sq "github.com/Masterminds/squirrel"
)

var sdb sq.StatementBuilderType

func init() {
	sdb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
