package lookup

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/ctdf"
	"github.com/travigo/caltrain/pkg/dataaggregator"
	"github.com/travigo/caltrain/pkg/dataaggregator/global"
	"github.com/travigo/caltrain/pkg/dataaggregator/query"
	"github.com/travigo/caltrain/pkg/database"
	"github.com/travigo/caltrain/pkg/dataimporter/manager"
	"github.com/travigo/caltrain/pkg/output"
	"github.com/travigo/caltrain/pkg/redis_client"
	"github.com/travigo/caltrain/pkg/util"
	"github.com/urfave/cli/v2"
)

const dateLayout = "2006-01-02"

var now = time.Now

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "list-stops",
			Aliases: []string{"l"},
			Usage:   "print the known stops",
		},
		&cli.StringFlag{
			Name:    "from",
			Aliases: []string{"f"},
			Usage:   "departure stop",
		},
		&cli.StringFlag{
			Name:    "to",
			Aliases: []string{"t"},
			Usage:   "arrival stop",
		},
		&cli.StringFlag{
			Name:  "date",
			Usage: "travel date as YYYY-MM-DD, defaults to today",
		},
		&cli.BoolFlag{
			Name:  "upcoming",
			Usage: "only show departures later than now",
		},
		&cli.StringFlag{
			Name:  "output",
			Value: output.FormatTable,
			Usage: "output format (table or csv)",
		},
		&cli.StringFlag{
			Name:  "dataset",
			Value: manager.DefaultDataset,
			Usage: "dataset imported when the store is empty",
		},
	}
}

// Run prints either the stop list or the connections between two stops. The schedule is imported
// on first use and only read afterwards.
func Run(c *cli.Context) error {
	if c.NArg() > 0 {
		cli.ShowAppHelp(c)
		return cli.Exit(fmt.Sprintf("unhandled arguments: %s", strings.Join(c.Args().Slice(), " ")), 1)
	}

	listStops := c.Bool("list-stops")
	fromStop := c.String("from")
	toStop := c.String("to")

	if !listStops && (fromStop == "" || toStop == "") {
		cli.ShowAppHelp(c)
		return cli.Exit("both --from and --to are required", 1)
	}

	format := c.String("output")
	if format != output.FormatTable && format != output.FormatCSV {
		return cli.Exit(fmt.Sprintf("unknown output format %q", format), 1)
	}

	currentTime := now()
	date := currentTime
	if dateString := c.String("date"); dateString != "" {
		var err error
		date, err = time.ParseInLocation(dateLayout, dateString, time.Local)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", dateString), 1)
		}
	}

	store, err := setup(c)
	if err != nil {
		return err
	}
	defer store.Close(c.Context)

	if listStops {
		stops, err := dataaggregator.Lookup[[]string](c.Context, query.Stops{})
		if err != nil {
			return err
		}

		return output.PrintStops(c.App.Writer, stops)
	}

	dayType := ctdf.ClassifyDate(date)
	log.Debug().Str("date", date.Format(dateLayout)).Str("daytype", string(dayType)).Msg("Classified travel date")

	connections, err := dataaggregator.Lookup[[]ctdf.Connection](c.Context, query.Connections{
		DayType:  dayType,
		FromStop: fromStop,
		ToStop:   toStop,
	})
	if err != nil {
		return err
	}

	// departures can only be upcoming when travelling today
	var markFrom *time.Time
	if sameDay(date, currentTime) {
		markFrom = &currentTime
	}

	rows := output.Rows(connections, markFrom)

	if c.Bool("upcoming") {
		switch {
		case markFrom != nil:
			util.InPlaceFilter(&rows, func(row output.Row) bool {
				return row.Upcoming
			})
		case date.Before(currentTime):
			rows = rows[:0]
		}
	}

	if format == output.FormatCSV {
		return output.PrintCSV(c.App.Writer, rows)
	}

	return output.PrintTable(c.App.Writer, fromStop, toStop, rows)
}

func setup(c *cli.Context) (database.ScheduleStore, error) {
	store, err := database.OpenStore(c.Context)
	if err != nil {
		return nil, err
	}

	dataset, err := manager.GetDataset(c.String("dataset"))
	if err != nil {
		store.Close(c.Context)
		return nil, err
	}

	if redis_client.Enabled() {
		if err := redis_client.Connect(c.Context); err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, not caching results")
		}
	}

	if err := manager.ImportDataset(c.Context, &dataset, store, false); err != nil {
		store.Close(c.Context)
		return nil, err
	}

	global.Setup(store, dataset.Identifier)

	return store, nil
}

func sameDay(a time.Time, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()

	return aYear == bYear && aMonth == bMonth && aDay == bDay
}
