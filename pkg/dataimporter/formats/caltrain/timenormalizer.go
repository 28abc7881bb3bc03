package caltrain

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/travigo/caltrain/pkg/ctdf"
)

var timeCellRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)

// NormalizeTime parses a H:MM timetable cell into a 24 hour timestamp.
//
// The timetable prints bare 12 hour values with no AM/PM marker and relies on the times along a
// stop row increasing through the service day. runningHour is the hour of the previous parsed
// cell in the same row (0 at the start of a row). An hour below it, other than 12, is moved into
// the afternoon. The returned hour is the running hour for the next cell.
//
// Cells that are empty or not a time yield ok == false and leave runningHour untouched.
func NormalizeTime(rawCell string, runningHour int) (timestamp ctdf.Timestamp, nextRunningHour int, ok bool) {
	match := timeCellRegex.FindStringSubmatch(strings.TrimSpace(rawCell))
	if match == nil {
		return ctdf.Timestamp{}, runningHour, false
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	if hour < runningHour && hour != 12 {
		hour += 12
	}

	return ctdf.Timestamp{Hour: hour, Minute: minute}, hour, true
}
