package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/travigo/caltrain/pkg/ctdf"
)

const UpcomingMarker = "***"

const (
	FormatTable = "table"
	FormatCSV   = "csv"
)

type Row struct {
	Upcoming    bool   `csv:"upcoming"`
	Depart      string `csv:"depart"`
	Arrive      string `csv:"arrive"`
	TrainNumber string `csv:"train_number"`
}

// Rows converts connections for printing. When markFrom is set, departures later than it on the
// same day are flagged as upcoming.
func Rows(connections []ctdf.Connection, markFrom *time.Time) []Row {
	rows := make([]Row, 0, len(connections))

	for _, connection := range connections {
		row := Row{
			Depart:      connection.Depart.String(),
			Arrive:      connection.Arrive.String(),
			TrainNumber: connection.TrainNumber,
		}

		if markFrom != nil {
			row.Upcoming = connection.Depart.OnDate(*markFrom).After(*markFrom)
		}

		rows = append(rows, row)
	}

	return rows
}

func PrintTable(w io.Writer, fromStop string, toStop string, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	fmt.Fprintf(tw, "\tLeave %s\tArrive %s\n", fromStop, toStop)

	for _, row := range rows {
		marker := ""
		if row.Upcoming {
			marker = UpcomingMarker
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", marker, row.Depart, row.Arrive)
	}

	return tw.Flush()
}

func PrintCSV(w io.Writer, rows []Row) error {
	return gocsv.Marshal(rows, w)
}

func PrintStops(w io.Writer, stops []string) error {
	for _, stop := range stops {
		if _, err := fmt.Fprintln(w, stop); err != nil {
			return err
		}
	}

	return nil
}
