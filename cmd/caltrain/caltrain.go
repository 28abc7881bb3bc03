package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/api"
	"github.com/travigo/caltrain/pkg/dataimporter"
	"github.com/travigo/caltrain/pkg/lookup"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("CALTRAIN_LOG_FORMAT") == "JSON" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("CALTRAIN_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "caltrain",
		Usage:       "Caltrain departures between two stops",
		Description: "Extracts the published timetable into a local schedule store and answers connection queries from it",
		UsageText:   "caltrain --list-stops\n   caltrain --from STOP --to STOP [--date YYYY-MM-DD] [--upcoming] [--output table|csv]",

		Flags:  lookup.Flags(),
		Action: lookup.Run,

		Commands: []*cli.Command{
			dataimporter.RegisterCLI(),
			api.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
