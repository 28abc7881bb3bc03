package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/travigo/caltrain/pkg/ctdf"
)

// ScheduleTableName is the table (or collection) holding the extracted facts. It has no primary
// key; every read is a scan or the connection self join.
const ScheduleTableName = "caltrain"

type ScheduleStore interface {
	// HasSchedule reports whether a schedule has been saved. A saved schedule is never refreshed
	// unless it is dropped first.
	HasSchedule(ctx context.Context) (bool, error)
	// SaveSchedule creates the table and writes every fact. Either all facts are stored or none.
	SaveSchedule(ctx context.Context, schedule ctdf.Schedule) error
	// ReplaceSchedule swaps any saved schedule for this one. Readers see either the old facts or
	// the new ones, and a failed replace keeps the old facts.
	ReplaceSchedule(ctx context.Context, schedule ctdf.Schedule) error
	DropSchedule(ctx context.Context) error

	GetStops(ctx context.Context) ([]string, error)
	// GetConnections returns connections in no particular order.
	GetConnections(ctx context.Context, dayType ctdf.DayType, fromStop string, toStop string) ([]ctdf.Connection, error)

	// Identity names the backend and where it lives, without credentials.
	Identity() string

	Close(ctx context.Context) error
}

type connectionRow struct {
	TrainNum     string `bson:"train_num"`
	DepartHour   int    `bson:"depart_hour"`
	DepartMinute int    `bson:"depart_minute"`
	ArriveHour   int    `bson:"arrive_hour"`
	ArriveMinute int    `bson:"arrive_minute"`
}

func (r connectionRow) toConnection() ctdf.Connection {
	return ctdf.Connection{
		Depart:      ctdf.Timestamp{Hour: r.DepartHour, Minute: r.DepartMinute},
		Arrive:      ctdf.Timestamp{Hour: r.ArriveHour, Minute: r.ArriveMinute},
		TrainNumber: r.TrainNum,
	}
}

func toConnections(rows []connectionRow) []ctdf.Connection {
	connections := make([]ctdf.Connection, 0, len(rows))
	for _, row := range rows {
		connections = append(connections, row.toConnection())
	}

	return connections
}

// storeIdentity hashes location so connection strings never end up in cache keys or logs.
func storeIdentity(storeType string, location string) string {
	hash := sha256.New()
	hash.Write([]byte(location))

	return storeType + ":" + hex.EncodeToString(hash.Sum(nil))[:12]
}
