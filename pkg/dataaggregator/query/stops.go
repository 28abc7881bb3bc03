package query

// Stops asks for the sorted distinct stop names in the schedule.
type Stops struct{}

func (s Stops) CacheKey() string {
	return "stops"
}
