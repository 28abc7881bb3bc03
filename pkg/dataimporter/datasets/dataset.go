package datasets

import (
	"github.com/travigo/caltrain/pkg/ctdf"
)

type DataSet struct {
	Identifier    string        `yaml:"identifier" validate:"required"`
	DataSourceRef string        `yaml:"-" json:"-"`
	Format        DataSetFormat `yaml:"format" validate:"required,oneof=caltrain-html-timetable"`

	Provider Provider `yaml:"-" validate:"-"`

	Source string `yaml:"source" validate:"required"`

	Tables []TableDefinition `yaml:"tables" validate:"len=4,dive"`
}

// TableDefinition names the heading that immediately precedes the timetable table for one
// day type and direction.
type TableDefinition struct {
	DayType   ctdf.DayType   `yaml:"day_type" validate:"required,oneof=weekday weekend"`
	Direction ctdf.Direction `yaml:"direction" validate:"required,oneof=northbound southbound"`
	Heading   string         `yaml:"heading" validate:"required"`
}

func (t TableDefinition) Bucket() ctdf.ScheduleBucket {
	return ctdf.ScheduleBucket{DayType: t.DayType, Direction: t.Direction}
}

type DataSetFormat string

const (
	DataSetFormatCaltrainHTMLTimetable DataSetFormat = "caltrain-html-timetable"
)

type Provider struct {
	Name    string `yaml:"name" validate:"required"`
	Website string `yaml:"website" validate:"omitempty,url"`
}
