package source

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/rlol/internal/logger"
	"github.com/pfrederiksen/rlol/internal/tabular"
)

// Tables holds decoded datasets by name.
type Tables map[Dataset]*tabular.Table

// Rows returns the rows of a dataset, or nil if it was not loaded.
func (t Tables) Rows(d Dataset) []tabular.Row {
	if table, ok := t[d]; ok && table != nil {
		return table.Rows
	}
	return nil
}

// FetchAll loads every dataset in plan concurrently. It returns once all
// have finished; the first failure cancels the rest and is returned.
func (f *Fetcher) FetchAll(ctx context.Context, plan map[Dataset]string) (Tables, error) {
	loadID := uuid.NewString()
	log := f.log.With(logger.Fields{"load_id": loadID})

	names := make([]string, 0, len(plan))
	for d := range plan {
		names = append(names, string(d))
	}
	sort.Strings(names)
	log.Info("Loading datasets", logger.Fields{"datasets": names})
	f.metrics.SetGauge("load.datasets", float64(len(plan)))
	f.metrics.IncrCounter("load.count")

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	tables := make(Tables, len(plan))

	for dataset, url := range plan {
		g.Go(func() error {
			table, err := f.FetchTable(gctx, dataset, url)
			if err != nil {
				return err
			}
			mu.Lock()
			tables[dataset] = table
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("Load failed", logger.Fields{"datasets": names}, err)
		return nil, fmt.Errorf("load %s: %w", loadID, err)
	}

	f.metrics.RecordTiming("load.duration", time.Since(start))
	f.metrics.SetGauge("load.last_duration_ms", float64(time.Since(start).Milliseconds()))
	log.Info("Loaded datasets", logger.Fields{
		"datasets":    names,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return tables, nil
}
