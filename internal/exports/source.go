package exports

import (
	"context"
	"fmt"
	"math"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/model"
)

// Source loads the export dataset
type Source interface {
	Name() string
	Load(ctx context.Context) (*model.Dataset, error)
}

// Open builds the Source selected by kind. The returned close function
// releases connections and is never nil.
func Open(ctx context.Context, kind config.ExportSource, env config.Env) (Source, func(), error) {
	noop := func() {}
	switch kind {
	case config.ExportSourceSample, "":
		return NewSampleSource(), noop, nil
	case config.ExportSourceOEC:
		return NewOECSource(env.OECBaseURL), noop, nil
	case config.ExportSourcePostgres:
		pg, err := ConnectPostgres(ctx, env.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, noop, err
		}
		if err := pg.SeedIfEmpty(ctx, NewSampleSource()); err != nil {
			pg.Close()
			return nil, noop, err
		}
		return pg, pg.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown export source: %s", kind)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
