package caltrain

import (
	"context"
	"errors"
	"io"

	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/ctdf"
	"github.com/travigo/caltrain/pkg/database"
	"github.com/travigo/caltrain/pkg/dataimporter/datasets"
	"github.com/travigo/caltrain/pkg/stats"
)

// Timetable is the caltrain-html-timetable dataset format.
type Timetable struct {
	Tables []datasets.TableDefinition

	Schedule ctdf.Schedule
}

func (t *Timetable) ParseFile(reader io.Reader) error {
	document, err := ParseHTML(reader)
	if err != nil {
		return err
	}

	log.Debug().Strs("headings", document.Headings()).Msg("Found timetable sections")

	schedule, err := ExtractDocument(document, t.Tables)
	if err != nil {
		return err
	}
	t.Schedule = schedule

	scheduleStats := stats.GetScheduleStats(schedule)

	if log.Logger.GetLevel() <= zerolog.DebugLevel {
		log.Debug().Msg(pretty.Sprint(scheduleStats.Buckets))
	}

	log.Info().
		Int("facts", scheduleStats.Facts).
		Int("trains", scheduleStats.Trains).
		Int("stops", scheduleStats.Stops).
		Msg("Extracted timetable")

	return nil
}

// Import saves the parsed schedule. With replace set any schedule already in store is swapped out.
func (t *Timetable) Import(ctx context.Context, store database.ScheduleStore, replace bool) error {
	if t.Schedule == nil {
		return errors.New("timetable has not been parsed")
	}

	if replace {
		log.Info().Msg("Replacing the timetable in the schedule store")

		return store.ReplaceSchedule(ctx, t.Schedule)
	}

	log.Info().Msg("Saving timetable into the schedule store")

	return store.SaveSchedule(ctx, t.Schedule)
}
