package formats

import (
	"context"
	"io"

	"github.com/travigo/caltrain/pkg/database"
)

type Format interface {
	ParseFile(io.Reader) error
	Import(ctx context.Context, store database.ScheduleStore, replace bool) error
}
