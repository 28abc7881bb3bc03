package ctdf

import (
	"golang.org/x/exp/slices"
)

type Connection struct {
	Depart      Timestamp `json:"depart" groups:"basic,detailed"`
	Arrive      Timestamp `json:"arrive" groups:"basic,detailed"`
	TrainNumber string    `json:"train_number" groups:"detailed"`
}

// FindConnections joins the departures at fromStop with the arrivals at toStop on train number.
// Only facts of the given day type take part and the arrival must be strictly later than the
// departure. Direction is not considered. Unknown stops produce an empty result.
func FindConnections(facts []ScheduleFact, dayType DayType, fromStop string, toStop string) []Connection {
	arrivals := map[string][]Timestamp{}
	for _, fact := range facts {
		if fact.DayType == dayType && fact.Stop == toStop {
			arrivals[fact.TrainNumber] = append(arrivals[fact.TrainNumber], fact.Time)
		}
	}

	connections := []Connection{}

	for _, departure := range facts {
		if departure.DayType != dayType || departure.Stop != fromStop {
			continue
		}

		for _, arrival := range arrivals[departure.TrainNumber] {
			if arrival.After(departure.Time) {
				connections = append(connections, Connection{
					Depart:      departure.Time,
					Arrive:      arrival,
					TrainNumber: departure.TrainNumber,
				})
			}
		}
	}

	return connections
}

// SortConnections orders connections by departure time, then arrival time. Ties keep their
// existing order.
func SortConnections(connections []Connection) {
	slices.SortStableFunc(connections, func(a, b Connection) int {
		switch {
		case a.Depart.Before(b.Depart):
			return -1
		case a.Depart.After(b.Depart):
			return 1
		case a.Arrive.Before(b.Arrive):
			return -1
		case a.Arrive.After(b.Arrive):
			return 1
		}

		return 0
	})
}
