package query

import (
	"strconv"

	"github.com/travigo/caltrain/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Connections asks for every train serving FromStop and then ToStop later on DayType. The direction
// of travel is not part of the query, so a train stopping at both stops in the same direction
// bucket is matched either way round.
type Connections struct {
	DayType  ctdf.DayType
	FromStop string
	ToStop   string
}

// CacheKey quotes every part so stop names containing the separator cannot collide.
func (c Connections) CacheKey() string {
	return "connections/" + strconv.Quote(string(c.DayType)) + "/" + strconv.Quote(c.FromStop) + "/" + strconv.Quote(c.ToStop)
}

// ToPipeline builds the aggregation equivalent of the departure/arrival self join on collection.
func (c Connections) ToPipeline(collection string) mongo.Pipeline {
	laterArrival := bson.M{
		"$or": bson.A{
			bson.M{"$gt": bson.A{"$hour", "$$hour"}},
			bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$hour", "$$hour"}},
				bson.M{"$gt": bson.A{"$minute", "$$minute"}},
			}},
		},
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"day_type": string(c.DayType),
			"stop":     c.FromStop,
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": collection,
			"let": bson.M{
				"train_num": "$train_num",
				"day_type":  "$day_type",
				"hour":      "$hour",
				"minute":    "$minute",
			},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"stop": c.ToStop,
					"$expr": bson.M{"$and": bson.A{
						bson.M{"$eq": bson.A{"$train_num", "$$train_num"}},
						bson.M{"$eq": bson.A{"$day_type", "$$day_type"}},
						laterArrival,
					}},
				}},
			},
			"as": "arrivals",
		}}},
		{{Key: "$unwind", Value: "$arrivals"}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"train_num":     "$train_num",
			"depart_hour":   "$hour",
			"depart_minute": "$minute",
			"arrive_hour":   "$arrivals.hour",
			"arrive_minute": "$arrivals.minute",
		}}},
	}
}
