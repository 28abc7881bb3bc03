package ctdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fact(dayType DayType, train string, stop string, hour int, minute int) ScheduleFact {
	return ScheduleFact{
		DayType:     dayType,
		Direction:   DirectionNorthbound,
		TrainNumber: train,
		Stop:        stop,
		Time:        Timestamp{Hour: hour, Minute: minute},
	}
}

func TestFindConnections(t *testing.T) {
	facts := []ScheduleFact{
		fact(DayTypeWeekday, "T1", "A", 8, 0),
		fact(DayTypeWeekday, "T1", "B", 8, 30),
		fact(DayTypeWeekday, "T2", "A", 9, 0),
		fact(DayTypeWeekday, "T2", "B", 8, 45),
	}

	t.Run("ArrivalMustFollowDeparture", func(t *testing.T) {
		connections := FindConnections(facts, DayTypeWeekday, "A", "B")

		assert.Equal(t, []Connection{
			{Depart: Timestamp{8, 0}, Arrive: Timestamp{8, 30}, TrainNumber: "T1"},
		}, connections)
	})

	t.Run("ReverseDirection", func(t *testing.T) {
		connections := FindConnections(facts, DayTypeWeekday, "B", "A")

		assert.Equal(t, []Connection{
			{Depart: Timestamp{8, 45}, Arrive: Timestamp{9, 0}, TrainNumber: "T2"},
		}, connections)
	})

	t.Run("OtherDayTypeIgnored", func(t *testing.T) {
		connections := FindConnections(facts, DayTypeWeekend, "A", "B")

		assert.NotNil(t, connections)
		assert.Empty(t, connections)
	})

	t.Run("UnknownStop", func(t *testing.T) {
		assert.Empty(t, FindConnections(facts, DayTypeWeekday, "A", "Nowhere"))
		assert.Empty(t, FindConnections(facts, DayTypeWeekday, "Nowhere", "B"))
		assert.Empty(t, FindConnections(nil, DayTypeWeekday, "A", "B"))
	})

	t.Run("SameMinuteIsNotAConnection", func(t *testing.T) {
		connections := FindConnections([]ScheduleFact{
			fact(DayTypeWeekday, "T3", "A", 10, 15),
			fact(DayTypeWeekday, "T3", "B", 10, 15),
		}, DayTypeWeekday, "A", "B")

		assert.Empty(t, connections)
	})

	t.Run("LaterHourEarlierMinute", func(t *testing.T) {
		connections := FindConnections([]ScheduleFact{
			fact(DayTypeWeekend, "T4", "A", 10, 55),
			fact(DayTypeWeekend, "T4", "B", 11, 5),
		}, DayTypeWeekend, "A", "B")

		assert.Len(t, connections, 1)
	})
}

func TestSortConnections(t *testing.T) {
	connections := []Connection{
		{Depart: Timestamp{17, 10}, Arrive: Timestamp{18, 0}, TrainNumber: "3"},
		{Depart: Timestamp{6, 5}, Arrive: Timestamp{7, 0}, TrainNumber: "1"},
		{Depart: Timestamp{6, 5}, Arrive: Timestamp{6, 50}, TrainNumber: "2"},
		{Depart: Timestamp{12, 0}, Arrive: Timestamp{12, 40}, TrainNumber: "4"},
	}

	SortConnections(connections)

	var trains []string
	for _, connection := range connections {
		trains = append(trains, connection.TrainNumber)
	}
	assert.Equal(t, []string{"2", "1", "4", "3"}, trains)
}
