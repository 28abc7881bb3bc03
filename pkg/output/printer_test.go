package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/caltrain/pkg/ctdf"
)

var testConnections = []ctdf.Connection{
	{Depart: ctdf.Timestamp{Hour: 4, Minute: 55}, Arrive: ctdf.Timestamp{Hour: 6, Minute: 15}, TrainNumber: "102"},
	{Depart: ctdf.Timestamp{Hour: 11, Minute: 40}, Arrive: ctdf.Timestamp{Hour: 13, Minute: 0}, TrainNumber: "104"},
}

func TestRows(t *testing.T) {
	now := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.Local)

	rows := Rows(testConnections, &now)
	assert.Equal(t, []Row{
		{Upcoming: false, Depart: "04:55", Arrive: "06:15", TrainNumber: "102"},
		{Upcoming: true, Depart: "11:40", Arrive: "13:00", TrainNumber: "104"},
	}, rows)

	for _, row := range Rows(testConnections, nil) {
		assert.False(t, row.Upcoming)
	}
}

func TestPrintTable(t *testing.T) {
	now := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.Local)

	var buffer bytes.Buffer
	require.NoError(t, PrintTable(&buffer, "San Francisco", "San Jose", Rows(testConnections, &now)))

	assert.Equal(t, strings.Join([]string{
		"    Leave San Francisco Arrive San Jose",
		"    04:55               06:15",
		"*** 11:40               13:00",
		"",
	}, "\n"), buffer.String())
}

func TestPrintTableEmpty(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintTable(&buffer, "San Francisco", "Gilroy", Rows(nil, nil)))

	assert.Equal(t, " Leave San Francisco Arrive Gilroy\n", buffer.String())
}

func TestPrintCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintCSV(&buffer, Rows(testConnections, nil)))

	assert.Equal(t, "upcoming,depart,arrive,train_number\nfalse,04:55,06:15,102\nfalse,11:40,13:00,104\n", buffer.String())
}

func TestPrintStops(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintStops(&buffer, []string{"Palo Alto", "San Jose"}))

	assert.Equal(t, "Palo Alto\nSan Jose\n", buffer.String())
}
