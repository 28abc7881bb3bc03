package databaselookup

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/ctdf"
	"github.com/travigo/caltrain/pkg/dataaggregator/query"
	"github.com/travigo/caltrain/pkg/dataaggregator/source/cachedresults"
)

// ConnectionsQuery returns the connections sorted by departure then arrival.
func (s Source) ConnectionsQuery(ctx context.Context, connectionsQuery query.Connections) ([]ctdf.Connection, error) {
	cacheKey := connectionsQuery.CacheKey()

	if s.Cache != nil {
		if connections, found := cachedresults.Get[[]ctdf.Connection](ctx, s.Cache, cacheKey); found {
			return connections, nil
		}
	}

	connections, err := s.Store.GetConnections(ctx, connectionsQuery.DayType, connectionsQuery.FromStop, connectionsQuery.ToStop)
	if err != nil {
		return nil, err
	}

	ctdf.SortConnections(connections)

	if s.Cache != nil {
		if err := cachedresults.Set(ctx, s.Cache, cacheKey, connections); err != nil {
			log.Error().Err(err).Str("key", cacheKey).Msg("Failed to cache connections")
		}
	}

	return connections, nil
}
