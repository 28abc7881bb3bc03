package global

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/dataaggregator"
	"github.com/travigo/caltrain/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/caltrain/pkg/dataaggregator/source/databaselookup"
	"github.com/travigo/caltrain/pkg/database"
	"github.com/travigo/caltrain/pkg/redis_client"
)

// Setup registers the schedule store as the lookup source. Results go through the redis cache
// when a redis client has been connected, kept apart per dataset and store.
func Setup(store database.ScheduleStore, datasetIdentifier string) {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}

	databaseLookupSource := databaselookup.Source{
		Store: store,
	}

	if redis_client.Client != nil {
		databaseLookupSource.Cache = &cachedresults.Cache{
			Namespace: cachedresults.Namespace(datasetIdentifier, store.Identity()),
		}
		databaseLookupSource.Cache.Setup(redis_client.Client)

		log.Debug().Str("namespace", databaseLookupSource.Cache.Namespace).Msg("Caching lookup results in redis")
	}

	dataaggregator.GlobalAggregator.RegisterSource(databaseLookupSource)
}
