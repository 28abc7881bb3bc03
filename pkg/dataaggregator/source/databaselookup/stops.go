package databaselookup

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/dataaggregator/query"
	"github.com/travigo/caltrain/pkg/dataaggregator/source/cachedresults"
)

func (s Source) StopsQuery(ctx context.Context, stopsQuery query.Stops) ([]string, error) {
	cacheKey := stopsQuery.CacheKey()

	if s.Cache != nil {
		if stops, found := cachedresults.Get[[]string](ctx, s.Cache, cacheKey); found {
			return stops, nil
		}
	}

	stops, err := s.Store.GetStops(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := cachedresults.Set(ctx, s.Cache, cacheKey, stops); err != nil {
			log.Error().Err(err).Str("key", cacheKey).Msg("Failed to cache stops")
		}
	}

	return stops, nil
}
