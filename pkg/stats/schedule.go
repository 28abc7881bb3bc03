package stats

import (
	"github.com/travigo/caltrain/pkg/ctdf"
	"golang.org/x/exp/slices"
)

type BucketStats struct {
	Facts  int
	Trains int
	Stops  int
}

type ScheduleStats struct {
	Facts   int
	Trains  int
	Stops   int
	Buckets map[string]BucketStats
}

// GetScheduleStats counts the facts, distinct trains and distinct stops of a schedule, overall
// and per day type and direction.
func GetScheduleStats(schedule ctdf.Schedule) ScheduleStats {
	stats := ScheduleStats{
		Buckets: map[string]BucketStats{},
	}

	var allTrains []string

	for _, bucket := range ctdf.ScheduleBuckets {
		facts, exists := schedule[bucket]
		if !exists {
			continue
		}

		var trains []string
		for _, fact := range facts {
			trains = append(trains, fact.TrainNumber)
		}
		allTrains = append(allTrains, trains...)

		stats.Buckets[BucketName(bucket)] = BucketStats{
			Facts:  len(facts),
			Trains: countDistinct(trains),
			Stops:  len(ctdf.StopNames(facts)),
		}
	}

	stats.Facts = schedule.Len()
	stats.Trains = countDistinct(allTrains)
	stats.Stops = len(ctdf.StopNames(schedule.Facts()))

	return stats
}

func BucketName(bucket ctdf.ScheduleBucket) string {
	return string(bucket.DayType) + "/" + string(bucket.Direction)
}

func countDistinct(values []string) int {
	slices.Sort(values)
	return len(slices.Compact(values))
}
