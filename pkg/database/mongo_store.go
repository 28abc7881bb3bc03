package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/ctdf"
	"github.com/travigo/caltrain/pkg/dataaggregator/query"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/exp/slices"
)

type scheduleDocument struct {
	DayType     ctdf.DayType   `bson:"day_type"`
	Direction   ctdf.Direction `bson:"direction"`
	TrainNumber string         `bson:"train_num"`
	Stop        string         `bson:"stop"`
	Hour        int            `bson:"hour"`
	Minute      int            `bson:"minute"`
}

const stagingCollectionName = ScheduleTableName + "_import"

type MongoScheduleStore struct {
	Instance *MongoInstance

	identity string
}

func NewMongoScheduleStore(instance *MongoInstance, identity string) *MongoScheduleStore {
	return &MongoScheduleStore{Instance: instance, identity: identity}
}

func (s *MongoScheduleStore) HasSchedule(ctx context.Context) (bool, error) {
	names, err := s.Instance.Database.ListCollectionNames(ctx, bson.M{"name": ScheduleTableName})
	if err != nil {
		return false, err
	}

	return len(names) > 0, nil
}

// SaveSchedule inserts the facts in batches. MongoDB offers no transactions on a standalone
// server so a failed insert drops the partial collection instead.
func (s *MongoScheduleStore) SaveSchedule(ctx context.Context, schedule ctdf.Schedule) error {
	exists, err := s.HasSchedule(ctx)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("schedule already saved")
	}

	return s.writeCollection(ctx, ScheduleTableName, schedule)
}

// ReplaceSchedule fills a staging collection and renames it over the schedule, so the old
// collection stays in place until the new one is complete.
func (s *MongoScheduleStore) ReplaceSchedule(ctx context.Context, schedule ctdf.Schedule) error {
	staging := s.Instance.GetCollection(stagingCollectionName)
	if err := staging.Drop(ctx); err != nil {
		return fmt.Errorf("clearing %s collection: %w", stagingCollectionName, err)
	}

	if err := s.writeCollection(ctx, stagingCollectionName, schedule); err != nil {
		return err
	}

	databaseName := s.Instance.Database.Name()

	err := s.Instance.Client.Database("admin").RunCommand(ctx, bson.D{
		{Key: "renameCollection", Value: databaseName + "." + stagingCollectionName},
		{Key: "to", Value: databaseName + "." + ScheduleTableName},
		{Key: "dropTarget", Value: true},
	}).Err()
	if err != nil {
		if dropErr := staging.Drop(ctx); dropErr != nil {
			log.Error().Err(dropErr).Msg("Failed to drop staged schedule")
		}

		return fmt.Errorf("renaming %s collection: %w", stagingCollectionName, err)
	}

	return nil
}

func (s *MongoScheduleStore) writeCollection(ctx context.Context, collectionName string, schedule ctdf.Schedule) error {
	documents := []scheduleDocument{}
	if err := copier.Copy(&documents, schedule.Facts()); err != nil {
		return fmt.Errorf("converting schedule facts: %w", err)
	}

	if err := s.Instance.Database.CreateCollection(ctx, collectionName); err != nil {
		return fmt.Errorf("creating %s collection: %w", collectionName, err)
	}

	collection := s.Instance.GetCollection(collectionName)

	for start := 0; start < len(documents); start += insertBatchSize {
		end := min(start+insertBatchSize, len(documents))

		batch := make([]interface{}, 0, end-start)
		for _, document := range documents[start:end] {
			batch = append(batch, document)
		}

		if _, err := collection.InsertMany(ctx, batch); err != nil {
			if dropErr := collection.Drop(ctx); dropErr != nil {
				log.Error().Err(dropErr).Msg("Failed to drop partial schedule")
			}

			return fmt.Errorf("inserting schedule facts: %w", err)
		}
	}

	createScheduleIndexes(ctx, collection)

	return nil
}

func (s *MongoScheduleStore) DropSchedule(ctx context.Context) error {
	return s.Instance.GetCollection(ScheduleTableName).Drop(ctx)
}

func (s *MongoScheduleStore) GetStops(ctx context.Context) ([]string, error) {
	values, err := s.Instance.GetCollection(ScheduleTableName).Distinct(ctx, "stop", bson.M{})
	if err != nil {
		return nil, err
	}

	stops := make([]string, 0, len(values))
	for _, value := range values {
		if stop, ok := value.(string); ok {
			stops = append(stops, stop)
		}
	}

	slices.Sort(stops)

	return stops, nil
}

func (s *MongoScheduleStore) GetConnections(ctx context.Context, dayType ctdf.DayType, fromStop string, toStop string) ([]ctdf.Connection, error) {
	connectionsQuery := query.Connections{
		DayType:  dayType,
		FromStop: fromStop,
		ToStop:   toStop,
	}

	cursor, err := s.Instance.GetCollection(ScheduleTableName).Aggregate(ctx, connectionsQuery.ToPipeline(ScheduleTableName))
	if err != nil {
		return nil, err
	}

	var rows []connectionRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	return toConnections(rows), nil
}

func (s *MongoScheduleStore) Identity() string {
	return s.identity
}

func (s *MongoScheduleStore) Close(ctx context.Context) error {
	return s.Instance.Client.Disconnect(ctx)
}
