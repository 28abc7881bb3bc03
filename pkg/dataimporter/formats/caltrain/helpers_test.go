package caltrain

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/travigo/caltrain/pkg/ctdf"
	"github.com/travigo/caltrain/pkg/dataimporter/datasets"
)

var testTables = []datasets.TableDefinition{
	{DayType: ctdf.DayTypeWeekday, Direction: ctdf.DirectionNorthbound, Heading: "Weekday Northbound service"},
	{DayType: ctdf.DayTypeWeekday, Direction: ctdf.DirectionSouthbound, Heading: "Weekday Southbound service"},
	{DayType: ctdf.DayTypeWeekend, Direction: ctdf.DirectionNorthbound, Heading: "Weekend and Holiday Northbound service"},
	{DayType: ctdf.DayTypeWeekend, Direction: ctdf.DirectionSouthbound, Heading: "Weekend and Holiday Southbound service"},
}

func loadTestDocument(t *testing.T) *Document {
	t.Helper()

	file, err := os.Open("testdata/timetable.html")
	require.NoError(t, err)
	defer file.Close()

	document, err := ParseHTML(file)
	require.NoError(t, err)

	return document
}
