package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/caltrain/pkg/ctdf"
	"github.com/travigo/caltrain/pkg/util"
	"gorm.io/gorm"
)

func fact(dayType ctdf.DayType, direction ctdf.Direction, train string, stop string, hour int, minute int) ctdf.ScheduleFact {
	return ctdf.ScheduleFact{
		DayType:     dayType,
		Direction:   direction,
		TrainNumber: train,
		Stop:        stop,
		Time:        ctdf.Timestamp{Hour: hour, Minute: minute},
	}
}

func testSchedule() ctdf.Schedule {
	weekdaySouth := ctdf.ScheduleBucket{DayType: ctdf.DayTypeWeekday, Direction: ctdf.DirectionSouthbound}
	weekdayNorth := ctdf.ScheduleBucket{DayType: ctdf.DayTypeWeekday, Direction: ctdf.DirectionNorthbound}
	weekendSouth := ctdf.ScheduleBucket{DayType: ctdf.DayTypeWeekend, Direction: ctdf.DirectionSouthbound}

	return ctdf.Schedule{
		weekdaySouth: {
			fact(ctdf.DayTypeWeekday, ctdf.DirectionSouthbound, "102", "San Francisco", 4, 55),
			fact(ctdf.DayTypeWeekday, ctdf.DirectionSouthbound, "102", "Palo Alto", 5, 40),
			fact(ctdf.DayTypeWeekday, ctdf.DirectionSouthbound, "102", "San Jose", 6, 15),
			fact(ctdf.DayTypeWeekday, ctdf.DirectionSouthbound, "104", "San Francisco", 11, 40),
			fact(ctdf.DayTypeWeekday, ctdf.DirectionSouthbound, "104", "San Jose", 13, 0),
		},
		weekdayNorth: {
			fact(ctdf.DayTypeWeekday, ctdf.DirectionNorthbound, "101", "San Jose", 4, 30),
			fact(ctdf.DayTypeWeekday, ctdf.DirectionNorthbound, "101", "San Francisco", 5, 50),
		},
		weekendSouth: {
			fact(ctdf.DayTypeWeekend, ctdf.DirectionSouthbound, "422", "San Francisco", 8, 15),
			fact(ctdf.DayTypeWeekend, ctdf.DirectionSouthbound, "422", "San Jose", 9, 45),
		},
	}
}

// replacementSchedule reruns train 102 later and drops every other train.
func replacementSchedule() ctdf.Schedule {
	weekdaySouth := ctdf.ScheduleBucket{DayType: ctdf.DayTypeWeekday, Direction: ctdf.DirectionSouthbound}

	return ctdf.Schedule{
		weekdaySouth: {
			fact(ctdf.DayTypeWeekday, ctdf.DirectionSouthbound, "102", "San Francisco", 5, 5),
			fact(ctdf.DayTypeWeekday, ctdf.DirectionSouthbound, "102", "Millbrae", 5, 25),
			fact(ctdf.DayTypeWeekday, ctdf.DirectionSouthbound, "102", "San Jose", 6, 25),
		},
	}
}

func sortedConnections(connections []ctdf.Connection) []ctdf.Connection {
	ctdf.SortConnections(connections)
	return connections
}

// runStoreTests exercises the behaviour every ScheduleStore implementation shares.
func runStoreTests(t *testing.T, store ScheduleStore) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		exists, err := store.HasSchedule(ctx)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Save", func(t *testing.T) {
		require.NoError(t, store.SaveSchedule(ctx, testSchedule()))

		exists, err := store.HasSchedule(ctx)
		require.NoError(t, err)
		assert.True(t, exists)

		assert.Error(t, store.SaveSchedule(ctx, testSchedule()))
	})

	t.Run("Stops", func(t *testing.T) {
		stops, err := store.GetStops(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Palo Alto", "San Francisco", "San Jose"}, stops)
	})

	t.Run("Connections", func(t *testing.T) {
		connections, err := store.GetConnections(ctx, ctdf.DayTypeWeekday, "San Francisco", "San Jose")
		require.NoError(t, err)

		assert.Equal(t, []ctdf.Connection{
			{Depart: ctdf.Timestamp{Hour: 4, Minute: 55}, Arrive: ctdf.Timestamp{Hour: 6, Minute: 15}, TrainNumber: "102"},
			{Depart: ctdf.Timestamp{Hour: 11, Minute: 40}, Arrive: ctdf.Timestamp{Hour: 13, Minute: 0}, TrainNumber: "104"},
		}, sortedConnections(connections))

		connections, err = store.GetConnections(ctx, ctdf.DayTypeWeekday, "San Jose", "San Francisco")
		require.NoError(t, err)
		assert.Equal(t, []ctdf.Connection{
			{Depart: ctdf.Timestamp{Hour: 4, Minute: 30}, Arrive: ctdf.Timestamp{Hour: 5, Minute: 50}, TrainNumber: "101"},
		}, connections)

		connections, err = store.GetConnections(ctx, ctdf.DayTypeWeekend, "San Francisco", "San Jose")
		require.NoError(t, err)
		assert.Len(t, connections, 1)
		assert.Equal(t, "422", connections[0].TrainNumber)
	})

	t.Run("NoConnections", func(t *testing.T) {
		connections, err := store.GetConnections(ctx, ctdf.DayTypeWeekend, "Palo Alto", "San Jose")
		require.NoError(t, err)
		assert.Empty(t, connections)

		connections, err = store.GetConnections(ctx, ctdf.DayTypeWeekday, "San Francisco", "Gilroy")
		require.NoError(t, err)
		assert.Empty(t, connections)
	})

	t.Run("Drop", func(t *testing.T) {
		require.NoError(t, store.DropSchedule(ctx))

		exists, err := store.HasSchedule(ctx)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, store.SaveSchedule(ctx, testSchedule()))
	})

	t.Run("Replace", func(t *testing.T) {
		require.NoError(t, store.ReplaceSchedule(ctx, replacementSchedule()))

		stops, err := store.GetStops(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Millbrae", "San Francisco", "San Jose"}, stops)

		connections, err := store.GetConnections(ctx, ctdf.DayTypeWeekday, "San Francisco", "San Jose")
		require.NoError(t, err)
		assert.Equal(t, []ctdf.Connection{
			{Depart: ctdf.Timestamp{Hour: 5, Minute: 5}, Arrive: ctdf.Timestamp{Hour: 6, Minute: 25}, TrainNumber: "102"},
		}, connections)

		connections, err = store.GetConnections(ctx, ctdf.DayTypeWeekend, "San Francisco", "San Jose")
		require.NoError(t, err)
		assert.Empty(t, connections)
	})

	t.Run("ReplaceWithoutSchedule", func(t *testing.T) {
		require.NoError(t, store.DropSchedule(ctx))
		require.NoError(t, store.ReplaceSchedule(ctx, testSchedule()))

		exists, err := store.HasSchedule(ctx)
		require.NoError(t, err)
		assert.True(t, exists)

		stops, err := store.GetStops(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Palo Alto", "San Francisco", "San Jose"}, stops)
	})
}

func TestMemoryScheduleStore(t *testing.T) {
	runStoreTests(t, NewMemoryScheduleStore())
}

func newSQLiteTestStore(t *testing.T) *SQLScheduleStore {
	db, err := ConnectSQLite("file::memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := NewSQLScheduleStore(db, storeIdentity(StoreSQLite, ":memory:"))
	t.Cleanup(func() { store.Close(context.Background()) })

	return store
}

func TestSQLiteScheduleStore(t *testing.T) {
	runStoreTests(t, newSQLiteTestStore(t))
}

func TestSQLiteReplaceScheduleRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteTestStore(t)
	require.NoError(t, store.SaveSchedule(ctx, testSchedule()))

	insertErr := errors.New("disk full")
	require.NoError(t, store.DB.Callback().Create().Before("gorm:create").Register("test:fail_insert", func(db *gorm.DB) {
		db.AddError(insertErr)
	}))

	assert.ErrorIs(t, store.ReplaceSchedule(ctx, replacementSchedule()), insertErr)

	exists, err := store.HasSchedule(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	stops, err := store.GetStops(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Palo Alto", "San Francisco", "San Jose"}, stops)

	connections, err := store.GetConnections(ctx, ctdf.DayTypeWeekend, "San Francisco", "San Jose")
	require.NoError(t, err)
	assert.Len(t, connections, 1)
}

func TestMongoScheduleStore(t *testing.T) {
	env := util.GetEnvironmentVariables()
	if env["CALTRAIN_MONGODB_TEST_CONNECTION"] == "" {
		t.Skip("CALTRAIN_MONGODB_TEST_CONNECTION not set")
	}

	t.Setenv("CALTRAIN_MONGODB_CONNECTION", env["CALTRAIN_MONGODB_TEST_CONNECTION"])
	t.Setenv("CALTRAIN_MONGODB_DATABASE", "caltrain_test")

	ctx := context.Background()

	instance, err := ConnectMongoDB(ctx)
	require.NoError(t, err)

	store := NewMongoScheduleStore(instance, storeIdentity(StoreMongoDB, "test"))
	require.NoError(t, store.DropSchedule(ctx))
	defer store.Close(ctx)

	runStoreTests(t, store)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Setenv("CALTRAIN_STORE", "memory")
	store, err := OpenStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &MemoryScheduleStore{}, store)
	assert.Equal(t, "memory", store.Identity())

	t.Setenv("CALTRAIN_STORE", "sqlite")
	sqlitePath := t.TempDir() + "/schedule.db"
	t.Setenv("CALTRAIN_SQLITE_PATH", sqlitePath)
	store, err = OpenStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &SQLScheduleStore{}, store)
	assert.Equal(t, storeIdentity(StoreSQLite, sqlitePath), store.Identity())
	assert.NotContains(t, store.Identity(), sqlitePath)
	assert.NoError(t, store.Close(ctx))

	t.Setenv("CALTRAIN_STORE", "cassandra")
	_, err = OpenStore(ctx)
	assert.Error(t, err)
}
