package directory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/campsight/campsight/internal/providers"
)

// Catalog is the slice of the provider surface the refresher needs.
type Catalog interface {
	FetchAllCampgrounds(ctx context.Context) ([]providers.CampgroundInfo, error)
}

// Refresher periodically re-fetches the upstream campground catalog and
// freshens display names for the configured roster. The roster ids stay
// fixed; only names move.
type Refresher struct {
	dir     *Directory
	catalog Catalog
	log     *slog.Logger
	cron    *cron.Cron
}

func NewRefresher(dir *Directory, catalog Catalog, log *slog.Logger) *Refresher {
	if log == nil {
		log = slog.Default()
	}
	return &Refresher{dir: dir, catalog: catalog, log: log}
}

// Start schedules the refresh on a cron expression. The first run happens at
// the first scheduled fire, not at startup; config names serve until then.
func (r *Refresher) Start(ctx context.Context, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() { r.refreshOnce(ctx) })
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	c.Start()
	r.cron = c
	return nil
}

// Stop halts future refreshes. A refresh already in flight finishes.
func (r *Refresher) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	all, err := r.catalog.FetchAllCampgrounds(ctx)
	if err != nil {
		r.log.Error("campground catalog fetch failed", slog.Any("err", err))
		return
	}
	names := make(map[string]string, len(all))
	for _, cg := range all {
		names[cg.ID] = cg.Name
	}
	updated := r.dir.UpdateNames(names)
	r.log.Info("campground names refreshed",
		slog.Int("catalog_size", len(all)),
		slog.Int("updated", updated))
}
