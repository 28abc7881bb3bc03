package ctdf

import "fmt"

type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
)

type Direction string

const (
	DirectionNorthbound Direction = "northbound"
	DirectionSouthbound Direction = "southbound"
)

func ParseDayType(value string) (DayType, error) {
	switch DayType(value) {
	case DayTypeWeekday, DayTypeWeekend:
		return DayType(value), nil
	}

	return "", fmt.Errorf("unknown day type %q", value)
}
