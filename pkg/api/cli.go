package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/dataaggregator/global"
	"github.com/travigo/caltrain/pkg/database"
	"github.com/travigo/caltrain/pkg/dataimporter/manager"
	"github.com/travigo/caltrain/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the connection query web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "dataset",
						Value: manager.DefaultDataset,
						Usage: "dataset imported when the store is empty",
					},
				},
				Action: func(c *cli.Context) error {
					store, err := database.OpenStore(c.Context)
					if err != nil {
						return err
					}
					defer store.Close(c.Context)

					dataset, err := manager.GetDataset(c.String("dataset"))
					if err != nil {
						return err
					}
					if redis_client.Enabled() {
						if err := redis_client.Connect(c.Context); err != nil {
							log.Fatal().Err(err).Msg("Failed to connect to Redis")
						}
					}

					if err := manager.ImportDataset(c.Context, &dataset, store, false); err != nil {
						return err
					}

					global.Setup(store, dataset.Identifier)

					log.Info().Str("listen", c.String("listen")).Msg("Starting web API")

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
