package caltrain

import (
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/caltrain/pkg/ctdf"
	"github.com/travigo/caltrain/pkg/dataimporter/datasets"
)

// ExtractTable turns one timetable table into schedule facts.
//
// The first row holds the train numbers after its leading stop column cell. Every other row is a
// stop: its first cell names the stop and the rest line up with the train numbers by position.
// Facts come out in row then column order.
func ExtractTable(table *Table, dayType ctdf.DayType, direction ctdf.Direction) ([]ctdf.ScheduleFact, error) {
	for rowIndex, row := range table.Rows {
		for columnIndex, cell := range row.Cells {
			if cell.ColSpan != 1 || cell.RowSpan != 1 {
				return nil, fmt.Errorf("row %d column %d: %w", rowIndex, columnIndex, ErrSpanningCell)
			}
		}
	}

	if len(table.Rows) == 0 || len(table.Rows[0].Cells) == 0 {
		return nil, ErrMissingHeaderRow
	}

	var trainNumbers []string
	for _, cell := range table.Rows[0].Cells[1:] {
		trainNumbers = append(trainNumbers, cell.Text)
	}

	facts := []ctdf.ScheduleFact{}

	for rowIndex, row := range table.Rows[1:] {
		if len(row.Cells) == 0 {
			return nil, fmt.Errorf("row %d: %w", rowIndex+1, ErrMissingStopCell)
		}

		facts = append(facts, extractStopRow(row, trainNumbers, dayType, direction)...)
	}

	return facts, nil
}

// extractStopRow folds the running hour across the cells of one stop row, starting from 0.
func extractStopRow(row Row, trainNumbers []string, dayType ctdf.DayType, direction ctdf.Direction) []ctdf.ScheduleFact {
	var facts []ctdf.ScheduleFact

	stop := row.Cells[0].Text
	runningHour := 0

	for index, cell := range row.Cells[1:] {
		if index >= len(trainNumbers) {
			break
		}

		var timestamp ctdf.Timestamp
		var ok bool
		timestamp, runningHour, ok = NormalizeTime(cell.Text, runningHour)
		if !ok {
			continue
		}

		facts = append(facts, ctdf.ScheduleFact{
			DayType:     dayType,
			Direction:   direction,
			TrainNumber: trainNumbers[index],
			Stop:        stop,
			Time:        timestamp,
		})
	}

	return facts
}

type extractedTable struct {
	bucket ctdf.ScheduleBucket
	facts  []ctdf.ScheduleFact
}

// ExtractDocument extracts every defined table from the document. All day type and direction
// buckets must be defined and every heading must be present exactly once; otherwise nothing is
// returned.
func ExtractDocument(document *Document, tables []datasets.TableDefinition) (ctdf.Schedule, error) {
	defined := map[ctdf.ScheduleBucket]bool{}
	for _, definition := range tables {
		defined[definition.Bucket()] = true
	}
	for _, bucket := range ctdf.ScheduleBuckets {
		if !defined[bucket] {
			return nil, fmt.Errorf("no table defined for %s %s: %w", bucket.DayType, bucket.Direction, ErrMissingHeading)
		}
	}

	resolved := make([]*Table, len(tables))
	for index, definition := range tables {
		table, err := document.Lookup(definition.Heading)
		if err != nil {
			return nil, err
		}
		resolved[index] = table
	}

	p := pool.NewWithResults[extractedTable]().WithErrors()

	for index, definition := range tables {
		definition := definition
		table := resolved[index]

		p.Go(func() (extractedTable, error) {
			facts, err := ExtractTable(table, definition.DayType, definition.Direction)
			if err != nil {
				return extractedTable{}, fmt.Errorf("%q: %w", definition.Heading, err)
			}

			return extractedTable{bucket: definition.Bucket(), facts: facts}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	schedule := ctdf.Schedule{}
	for _, result := range results {
		schedule[result.bucket] = result.facts
	}

	return schedule, nil
}
