package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createScheduleIndexes(ctx context.Context, collection *mongo.Collection) {
	departureIndexName := "DayTypeStop"
	arrivalIndexName := "TrainDayTypeStop"

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Options: &options.IndexOptions{
				Name: &departureIndexName,
			},
			Keys: bson.D{
				{Key: "day_type", Value: 1},
				{Key: "stop", Value: 1},
			},
		},
		{
			Options: &options.IndexOptions{
				Name: &arrivalIndexName,
			},
			Keys: bson.D{
				{Key: "train_num", Value: 1},
				{Key: "day_type", Value: 1},
				{Key: "stop", Value: 1},
			},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
