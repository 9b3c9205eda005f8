package availability

import (
	"time"

	"github.com/campsight/campsight/internal/providers"
)

// SiteRecord is one campsite's availability merged across every fetched month.
type SiteRecord struct {
	ID     string
	Name   string
	Nights map[Night]string
}

// mergeMonths unions per-month site maps into one record per site. Months are
// applied in slice order, so on key collision the later month wins. The first
// non-empty site name sticks. Failed months never reach here.
func mergeMonths(months []map[string]providers.SiteMonth) map[string]*SiteRecord {
	merged := map[string]*SiteRecord{}
	for _, sites := range months {
		for siteID, sm := range sites {
			rec, ok := merged[siteID]
			if !ok {
				rec = &SiteRecord{ID: siteID, Nights: map[Night]string{}}
				merged[siteID] = rec
			}
			if rec.Name == "" && sm.Name != "" {
				rec.Name = sm.Name
			}
			for ts, status := range sm.Nights {
				rec.Nights[normalizeNightKey(ts)] = status
			}
		}
	}
	return merged
}

// normalizeNightKey re-normalizes an upstream timestamp to the canonical
// Night layout. Keys that do not parse as RFC3339 are kept verbatim so no
// upstream data is dropped.
func normalizeNightKey(ts string) Night {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return Night(ts)
	}
	return NightOf(t)
}
