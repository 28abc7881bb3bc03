package ctdf

// ScheduleFact is one normalised observation: a train calling at a stop at a time,
// within one day type and direction table.
type ScheduleFact struct {
	DayType     DayType
	Direction   Direction
	TrainNumber string
	Stop        string
	Time        Timestamp
}

// Hour and Minute flatten the timestamp for row conversion.
func (f ScheduleFact) Hour() int {
	return f.Time.Hour
}

func (f ScheduleFact) Minute() int {
	return f.Time.Minute
}

type ScheduleBucket struct {
	DayType   DayType
	Direction Direction
}

var ScheduleBuckets = []ScheduleBucket{
	{DayType: DayTypeWeekday, Direction: DirectionNorthbound},
	{DayType: DayTypeWeekday, Direction: DirectionSouthbound},
	{DayType: DayTypeWeekend, Direction: DirectionNorthbound},
	{DayType: DayTypeWeekend, Direction: DirectionSouthbound},
}

type Schedule map[ScheduleBucket][]ScheduleFact

// Facts flattens the schedule in ScheduleBuckets order. Facts within a bucket keep their
// extraction order.
func (s Schedule) Facts() []ScheduleFact {
	var facts []ScheduleFact

	for _, bucket := range ScheduleBuckets {
		facts = append(facts, s[bucket]...)
	}

	return facts
}

func (s Schedule) Len() int {
	total := 0
	for _, facts := range s {
		total += len(facts)
	}

	return total
}
