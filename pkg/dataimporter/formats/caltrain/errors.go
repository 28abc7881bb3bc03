package caltrain

import "errors"

var (
	ErrSpanningCell     = errors.New("table contains a cell spanning several rows or columns")
	ErrMissingHeading   = errors.New("timetable heading not found")
	ErrDuplicateHeading = errors.New("timetable heading appears more than once")
	ErrMissingHeaderRow = errors.New("table has no header row")
	ErrMissingStopCell  = errors.New("table row has no stop name cell")
)
