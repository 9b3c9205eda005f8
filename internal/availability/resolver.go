package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campsight/campsight/internal/metrics"
	"github.com/campsight/campsight/internal/providers"
)

// monthLayout is the month anchor format used in diagnostics. It mirrors the
// start_date parameter the upstream fetch sends.
const monthLayout = "2006-01-02T15:04:05.000Z"

// ErrUnknownCampground marks a requested name with no directory match.
var ErrUnknownCampground = errors.New("unknown campground name")

// MonthFetchError wraps the first upstream failure for one campground. The
// remaining months are still attempted, but the campground reports this error
// instead of a classification.
type MonthFetchError struct {
	CampgroundID string
	Month        time.Time
	Err          error
}

func (e *MonthFetchError) Error() string {
	return fmt.Sprintf("failed to fetch month %s: %v", e.Month.Format(monthLayout), e.Err)
}

func (e *MonthFetchError) Unwrap() error { return e.Err }

// Lookup resolves campground names to upstream ids and back. Matching is
// case-insensitive exact.
type Lookup interface {
	IDFor(name string) (string, bool)
	NameFor(id string) (string, bool)
}

// Resolver runs availability checks: it expands the requested range, fans out
// over campgrounds, and assembles the report. All state is per call; the only
// thing shared across checks is the directory and the provider.
type Resolver struct {
	dir         Lookup
	provider    providers.Provider
	log         *slog.Logger
	maxParallel int
}

// NewResolver wires a resolver. maxParallel bounds concurrent campground
// checks; values below one fall back to a small default.
func NewResolver(dir Lookup, provider providers.Provider, log *slog.Logger, maxParallel int) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	if maxParallel < 1 {
		maxParallel = 4
	}
	return &Resolver{dir: dir, provider: provider, log: log, maxParallel: maxParallel}
}

// checkEntry is one campground's outcome plus the report key it lands under.
type checkEntry struct {
	key    string
	result *CampgroundResult
	sites  map[string]string
}

// Check resolves availability for every named campground over [start, end],
// both dates inclusive. An invalid range fails the whole call; every other
// failure stays inside its campground's entry. Entries land in request order
// no matter how the fan-out completes.
func (r *Resolver) Check(ctx context.Context, names []string, start, end time.Time) (*Report, error) {
	nights, err := NightsInRange(start, end)
	if err != nil {
		return nil, err
	}
	months := MonthStarts(nights)

	r.log.Info("running availability check",
		slog.Int("campgrounds", len(names)),
		slog.Int("nights", len(nights)),
		slog.Int("months", len(months)))

	slots := make([]checkEntry, len(names))
	g := new(errgroup.Group)
	g.SetLimit(r.maxParallel)
	for i, name := range names {
		g.Go(func() error {
			slots[i] = r.checkOne(ctx, name, nights, months)
			return nil
		})
	}
	// Workers record failures in their slot and never return an error.
	_ = g.Wait()

	report := NewReport()
	for _, s := range slots {
		report.Add(s.key, s.result)
		report.AddSites(s.key, s.sites)
	}
	return report, nil
}

func (r *Resolver) checkOne(ctx context.Context, name string, nights []Night, months []time.Time) checkEntry {
	id, ok := r.dir.IDFor(name)
	if !ok {
		r.log.Warn("unknown campground requested", slog.String("name", name))
		metrics.Checks.WithLabelValues(metrics.ResultUnknownCampground).Inc()
		return checkEntry{key: name, result: &CampgroundResult{Err: ErrUnknownCampground}}
	}

	var pages []map[string]providers.SiteMonth
	var firstErr *MonthFetchError
	for _, month := range months {
		page, err := r.provider.FetchMonth(ctx, id, month)
		if err != nil {
			r.log.Error("month fetch failed",
				slog.String("campground", id),
				slog.String("month", month.Format(monthLayout)),
				slog.Any("err", err))
			if firstErr == nil {
				firstErr = &MonthFetchError{CampgroundID: id, Month: month, Err: err}
			}
			continue
		}
		pages = append(pages, page)
	}
	if firstErr != nil {
		metrics.Checks.WithLabelValues(metrics.ResultFetchError).Inc()
		return checkEntry{key: id, result: &CampgroundResult{Err: firstErr}}
	}

	displayName, ok := r.dir.NameFor(id)
	if !ok {
		displayName = "Campground " + id
	}
	fully, partially, siteNames := classifySites(mergeMonths(pages), nights)
	metrics.Checks.WithLabelValues(metrics.ResultOK).Inc()
	return checkEntry{
		key:   id,
		sites: siteNames,
		result: &CampgroundResult{
			CampgroundName:     displayName,
			TargetDates:        nights,
			FullyAvailable:     fully,
			PartiallyAvailable: partially,
		},
	}
}
