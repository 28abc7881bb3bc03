package ctdf

import (
	"time"
)

type SpecialDay struct {
	Name  string
	Month time.Month
	Day   int
}

// SpecialDays are the fixed date holidays run on the weekend timetable.
// Movable holidays (Memorial Day, Thanksgiving) are not part of the set.
var SpecialDays = []SpecialDay{
	{Name: "New Year's Day", Month: time.January, Day: 1},
	{Name: "Independence Day", Month: time.July, Day: 4},
	{Name: "Christmas Day", Month: time.December, Day: 25},
}

func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()

	return weekday != time.Saturday && weekday != time.Sunday
}

func IsHoliday(date time.Time) bool {
	_, ok := GetSpecialDay(date)

	return ok
}

func GetSpecialDay(date time.Time) (SpecialDay, bool) {
	for _, specialDay := range SpecialDays {
		if date.Month() == specialDay.Month && date.Day() == specialDay.Day {
			return specialDay, true
		}
	}

	return SpecialDay{}, false
}

// ClassifyDate picks the timetable that runs on date.
func ClassifyDate(date time.Time) DayType {
	if IsWeekday(date) && !IsHoliday(date) {
		return DayTypeWeekday
	}

	return DayTypeWeekend
}
