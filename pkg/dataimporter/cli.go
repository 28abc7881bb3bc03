package dataimporter

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/database"
	"github.com/travigo/caltrain/pkg/dataimporter/manager"
	"github.com/travigo/caltrain/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Download & extract timetable datasets into the schedule store",
		Subcommands: []*cli.Command{
			{
				Name:  "dataset",
				Usage: "Import a dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Read the dataset from this file or URL instead of its registered source",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Replace a schedule that has already been imported",
					},
				},
				Action: func(c *cli.Context) error {
					dataset, err := manager.GetDataset(c.String("id"))
					if err != nil {
						return err
					}

					if source := c.String("source"); source != "" {
						dataset.Source = source
					}

					store, err := database.OpenStore(c.Context)
					if err != nil {
						return err
					}
					defer store.Close(c.Context)

					if redis_client.Enabled() {
						if err := redis_client.Connect(c.Context); err != nil {
							log.Warn().Err(err).Msg("Redis unavailable, cached lookup results not invalidated")
						}
					}

					startTime := time.Now()

					if err := manager.ImportDataset(c.Context, &dataset, store, c.Bool("force")); err != nil {
						return err
					}

					log.Info().Msgf("Operation took %s", time.Since(startTime).String())

					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List the registered datasets",
				Action: func(c *cli.Context) error {
					registered, err := manager.GetRegisteredDataSets()
					if err != nil {
						return err
					}

					for _, dataset := range registered {
						log.Info().
							Str("id", dataset.Identifier).
							Str("datasource", dataset.DataSourceRef).
							Str("provider", dataset.Provider.Name).
							Str("format", string(dataset.Format)).
							Str("source", dataset.Source).
							Msg("Dataset")
					}

					return nil
				},
			},
		},
	}
}
