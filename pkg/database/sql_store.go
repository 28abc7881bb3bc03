package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/travigo/caltrain/pkg/ctdf"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const insertBatchSize = 500

const createScheduleTableSQL = `CREATE TABLE caltrain (
	day_type text,
	direction text,
	train_num text,
	stop text,
	hour integer,
	minute integer
)`

const dropScheduleTableSQL = `DROP TABLE IF EXISTS caltrain`

const distinctStopsSQL = `SELECT DISTINCT stop FROM caltrain ORDER BY stop`

const connectionsSQL = `SELECT c1.train_num AS train_num,
	c1.hour AS depart_hour, c1.minute AS depart_minute,
	c2.hour AS arrive_hour, c2.minute AS arrive_minute
FROM caltrain AS c1, caltrain AS c2
WHERE c1.day_type = ? AND c1.stop = ?
	AND c1.train_num = c2.train_num
	AND c2.day_type = c1.day_type
	AND c2.stop = ?
	AND ((c2.hour > c1.hour) OR
		(c2.hour = c1.hour AND c2.minute > c1.minute))`

type scheduleRecord struct {
	DayType     ctdf.DayType   `gorm:"column:day_type"`
	Direction   ctdf.Direction `gorm:"column:direction"`
	TrainNumber string         `gorm:"column:train_num"`
	Stop        string         `gorm:"column:stop"`
	Hour        int            `gorm:"column:hour"`
	Minute      int            `gorm:"column:minute"`
}

func (scheduleRecord) TableName() string {
	return ScheduleTableName
}

// SQLScheduleStore keeps the schedule in a SQL table through gorm. Used for both the SQLite and
// Postgres backends.
type SQLScheduleStore struct {
	DB *gorm.DB

	identity string
}

func NewSQLScheduleStore(db *gorm.DB, identity string) *SQLScheduleStore {
	return &SQLScheduleStore{DB: db, identity: identity}
}

func (s *SQLScheduleStore) HasSchedule(ctx context.Context) (bool, error) {
	return s.DB.WithContext(ctx).Migrator().HasTable(ScheduleTableName), nil
}

func (s *SQLScheduleStore) SaveSchedule(ctx context.Context, schedule ctdf.Schedule) error {
	return s.writeSchedule(ctx, schedule, false)
}

// ReplaceSchedule drops the old table inside the same transaction that writes the new one.
func (s *SQLScheduleStore) ReplaceSchedule(ctx context.Context, schedule ctdf.Schedule) error {
	return s.writeSchedule(ctx, schedule, true)
}

func (s *SQLScheduleStore) writeSchedule(ctx context.Context, schedule ctdf.Schedule, replace bool) error {
	records := []scheduleRecord{}
	if err := copier.Copy(&records, schedule.Facts()); err != nil {
		return fmt.Errorf("converting schedule facts: %w", err)
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replace {
			if err := tx.Exec(dropScheduleTableSQL).Error; err != nil {
				return fmt.Errorf("dropping %s table: %w", ScheduleTableName, err)
			}
		}

		if err := tx.Exec(createScheduleTableSQL).Error; err != nil {
			return fmt.Errorf("creating %s table: %w", ScheduleTableName, err)
		}

		if len(records) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(&records, insertBatchSize).Error; err != nil {
			return fmt.Errorf("inserting schedule facts: %w", err)
		}

		return nil
	})
}

func (s *SQLScheduleStore) DropSchedule(ctx context.Context) error {
	migrator := s.DB.WithContext(ctx).Migrator()
	if !migrator.HasTable(ScheduleTableName) {
		return nil
	}

	return migrator.DropTable(ScheduleTableName)
}

func (s *SQLScheduleStore) GetStops(ctx context.Context) ([]string, error) {
	stops := []string{}

	if err := s.DB.WithContext(ctx).Raw(distinctStopsSQL).Scan(&stops).Error; err != nil {
		return nil, err
	}

	// database collations do not all order like Go strings
	slices.Sort(stops)

	return stops, nil
}

func (s *SQLScheduleStore) GetConnections(ctx context.Context, dayType ctdf.DayType, fromStop string, toStop string) ([]ctdf.Connection, error) {
	var rows []connectionRow

	err := s.DB.WithContext(ctx).Raw(connectionsSQL, string(dayType), fromStop, toStop).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toConnections(rows), nil
}

func (s *SQLScheduleStore) Identity() string {
	return s.identity
}

func (s *SQLScheduleStore) Close(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
