package databaselookup

import (
	"context"
	"errors"
	"reflect"

	"github.com/travigo/caltrain/pkg/ctdf"
	"github.com/travigo/caltrain/pkg/dataaggregator/query"
	"github.com/travigo/caltrain/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/caltrain/pkg/database"
)

type Source struct {
	Store database.ScheduleStore
	Cache *cachedresults.Cache
}

func (s Source) GetName() string {
	return "Database Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]ctdf.Connection{}),
		reflect.TypeOf([]string{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Connections:
		return s.ConnectionsQuery(ctx, q)
	case query.Stops:
		return s.StopsQuery(ctx, q)
	}

	return nil, errors.New("unable to lookup")
}
