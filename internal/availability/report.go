package availability

import (
	"encoding/json"
)

// CampgroundResult is one campground's outcome: either a success payload or an
// error, never both. The zero Err means success.
type CampgroundResult struct {
	CampgroundName     string
	TargetDates        []Night
	FullyAvailable     []string
	PartiallyAvailable []string
	Err                error
}

// MarshalJSON renders the success shape or, for failures, just the error
// message. The field names are part of the response contract consumed by the
// index page script.
func (c *CampgroundResult) MarshalJSON() ([]byte, error) {
	if c.Err != nil {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: c.Err.Error()})
	}
	dates := c.TargetDates
	if dates == nil {
		dates = []Night{}
	}
	fully := c.FullyAvailable
	if fully == nil {
		fully = []string{}
	}
	partially := c.PartiallyAvailable
	if partially == nil {
		partially = []string{}
	}
	return json.Marshal(struct {
		CampgroundName     string   `json:"campground_name"`
		TargetDates        []Night  `json:"target_dates"`
		FullyAvailable     []string `json:"fully_available_sites"`
		PartiallyAvailable []string `json:"partially_available_sites"`
	}{
		CampgroundName:     c.CampgroundName,
		TargetDates:        dates,
		FullyAvailable:     fully,
		PartiallyAvailable: partially,
	})
}

// AllSitesKey is the reserved top-level report key carrying the site-name
// index. It always wins over a campground entry with the same key.
const AllSitesKey = "all_sites"

// Report is the full response for one check: one entry per requested
// campground, keyed by resolved id (or the supplied name when resolution
// failed), plus the site-name index grouped by campground id. Entries keep
// request order for rendering.
type Report struct {
	keys     []string
	entries  map[string]*CampgroundResult
	allSites map[string]map[string]string
}

func NewReport() *Report {
	return &Report{
		entries:  map[string]*CampgroundResult{},
		allSites: map[string]map[string]string{},
	}
}

// Add stores a result under key, keeping first-add order. Re-adding a key
// replaces the result without duplicating it in the order.
func (r *Report) Add(key string, res *CampgroundResult) {
	if _, ok := r.entries[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = res
}

// AddSites records the site-name index for one campground. Empty maps are
// dropped so failed campgrounds leave no trace in the index.
func (r *Report) AddSites(campgroundID string, names map[string]string) {
	if len(names) == 0 {
		return
	}
	r.allSites[campgroundID] = names
}

// Keys returns entry keys in request order.
func (r *Report) Keys() []string { return r.keys }

// Entry returns the result stored under key, or nil.
func (r *Report) Entry(key string) *CampgroundResult { return r.entries[key] }

// AllSites returns the site id to display name index, grouped by campground id.
func (r *Report) AllSites() map[string]map[string]string { return r.allSites }

// MarshalJSON flattens entries and the reserved all_sites index into one
// object. Key order is the encoder's; consumers address entries by key.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.entries)+1)
	for k, v := range r.entries {
		out[k] = v
	}
	out[AllSitesKey] = r.allSites
	return json.Marshal(out)
}
