package datasets

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/caltrain/pkg/ctdf"
)

var validate = validator.New()

// Validate checks the struct rules of the data source and that every dataset defines exactly
// one table for each day type and direction.
func (d *DataSource) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("data source %s: %w", d.Identifier, err)
	}

	for _, dataset := range d.Datasets {
		if err := dataset.validateTables(); err != nil {
			return fmt.Errorf("data source %s: %w", d.Identifier, err)
		}
	}

	return nil
}

func (d *DataSet) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("dataset %s: %w", d.Identifier, err)
	}

	return d.validateTables()
}

func (d *DataSet) validateTables() error {
	seen := map[ctdf.ScheduleBucket]bool{}

	for _, table := range d.Tables {
		bucket := table.Bucket()
		if seen[bucket] {
			return fmt.Errorf("dataset %s: %s %s table defined more than once", d.Identifier, table.DayType, table.Direction)
		}
		seen[bucket] = true
	}

	for _, bucket := range ctdf.ScheduleBuckets {
		if !seen[bucket] {
			return fmt.Errorf("dataset %s: missing %s %s table", d.Identifier, bucket.DayType, bucket.Direction)
		}
	}

	return nil
}
