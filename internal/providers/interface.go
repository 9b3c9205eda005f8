package providers

import (
	"context"
	"time"
)

// SiteMonth is one campsite's slice of a monthly availability response: the
// site's display name plus the night-keyed status map for that month. Night
// keys and status values are passed through exactly as the upstream sent
// them; the availability core owns normalization.
type SiteMonth struct {
	Name   string
	Nights map[string]string
}

// CampgroundInfo identifies one reservable campground in the provider's
// catalog.
type CampgroundInfo struct {
	ID   string
	Name string
}

// Provider is the upstream reservation system availability is read from.
type Provider interface {
	Name() string
	// FetchMonth issues one request for the calendar month starting at month
	// (first of month, midnight UTC) and returns the per-site availability
	// keyed by upstream site id. A failed call returns an error and nothing
	// else; callers decide how far the failure spreads.
	FetchMonth(ctx context.Context, campgroundID string, month time.Time) (map[string]SiteMonth, error)
	// FetchAllCampgrounds returns the provider's full campground catalog.
	FetchAllCampgrounds(ctx context.Context) ([]CampgroundInfo, error)
	// CampgroundURL returns a link to the campground's public page.
	CampgroundURL(campgroundID string) string
}
