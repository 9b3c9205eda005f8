package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/campsight/campsight/internal/httpx"
	"github.com/campsight/campsight/internal/metrics"
)

// DefaultBaseURL is the production recreation.gov host.
const DefaultBaseURL = "https://www.recreation.gov"

// monthParamLayout is what recreation.gov expects for the start_date query
// parameter: RFC3339 with milliseconds and Zulu time.
const monthParamLayout = "2006-01-02T15:04:05.000Z"

type RecreationGov struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewRecreationGov builds the recreation.gov provider. An empty baseURL uses
// the production host, a nil client gets the shared tuned one, and a nil
// limiter disables rate limiting.
func NewRecreationGov(baseURL string, client *http.Client, limiter *rate.Limiter) *RecreationGov {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = httpx.New(0)
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &RecreationGov{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		limiter: limiter,
	}
}

func (r *RecreationGov) Name() string { return "recreation_gov" }

// CampgroundURL implements providers.Provider.
func (r *RecreationGov) CampgroundURL(campgroundID string) string {
	if campgroundID == "" {
		return ""
	}
	return "https://www.recreation.gov/camping/campgrounds/" + campgroundID
}

// monthResponse is the minimal slice of the monthly availability payload:
// availability is keyed by campsite id, then by night timestamp.
type monthResponse struct {
	Campsites map[string]struct {
		Site           string            `json:"site"`
		Availabilities map[string]string `json:"availabilities"`
	} `json:"campsites"`
}

// FetchMonth fetches one monthly availability page. Exactly one upstream call
// per invocation; there are no retries.
func (r *RecreationGov) FetchMonth(ctx context.Context, campgroundID string, month time.Time) (map[string]SiteMonth, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	u, err := url.Parse(fmt.Sprintf("%s/api/camps/availability/campground/%s/month", r.baseURL, campgroundID))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("start_date", month.UTC().Format(monthParamLayout))
	u.RawQuery = q.Encode()

	slog.Info("fetching availability", slog.String("url", u.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	httpx.SpoofChromeHeaders(req)

	started := time.Now()
	resp, err := r.client.Do(req)
	metrics.UpstreamDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("availability GET failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("availability read body failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("recreation.gov availability status %d; body: %s", resp.StatusCode, clipBody(body))
	}
	var parsed monthResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("availability JSON decode failed: %w; body: %s", err, clipBody(body))
	}
	metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeOK).Inc()

	out := make(map[string]SiteMonth, len(parsed.Campsites))
	for siteID, data := range parsed.Campsites {
		out[siteID] = SiteMonth{Name: data.Site, Nights: data.Availabilities}
	}
	return out, nil
}

// FetchAllCampgrounds scrapes the recreation.gov search API, paging through
// all reservable campgrounds.
func (r *RecreationGov) FetchAllCampgrounds(ctx context.Context) ([]CampgroundInfo, error) {
	slog.Info("starting recreation.gov campground catalog fetch")
	start := 0
	size := 100
	var all []CampgroundInfo
	totalPages := 0

	for {
		totalPages++
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		endpoint := fmt.Sprintf("%s/api/search?fq=entity_type%%3Acampground&size=%d&start=%d", r.baseURL, size, start)
		slog.Debug("fetching recreation.gov campgrounds page", slog.Int("page", totalPages), slog.Int("start", start))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		httpx.SpoofChromeHeaders(req)
		started := time.Now()
		resp, err := r.client.Do(req)
		metrics.UpstreamDuration.Observe(time.Since(started).Seconds())
		if err != nil {
			metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("search GET failed: %w", err)
		}
		body, rerr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if rerr != nil {
			metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("search read body failed: %w", rerr)
		}
		if resp.StatusCode != http.StatusOK {
			metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("recreation.gov search status %d; body: %s", resp.StatusCode, clipBody(body))
		}

		var page struct {
			Results []struct {
				Name       string `json:"name"`
				EntityID   string `json:"entity_id"`
				ParentName string `json:"parent_name"`
				Reservable bool   `json:"reservable"`
			} `json:"results"`
			Size int `json:"size"`
		}
		if decErr := json.Unmarshal(body, &page); decErr != nil {
			metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("search JSON decode failed: %w; body: %s", decErr, clipBody(body))
		}
		metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeOK).Inc()

		for _, result := range page.Results {
			if !result.Reservable {
				continue
			}
			name := result.Name
			if result.ParentName != "" {
				name = result.ParentName + ": " + result.Name
			}
			all = append(all, CampgroundInfo{ID: result.EntityID, Name: name})
		}

		if len(page.Results) < size || len(page.Results) == 0 {
			break
		}
		start += len(page.Results)
	}

	slog.Info("recreation.gov campground catalog fetch completed",
		slog.Int("total_pages", totalPages),
		slog.Int("total_campgrounds", len(all)))

	return all, nil
}

// clipBody returns a short string version of a response body for error
// messages. It limits to a reasonable size to avoid logging huge payloads.
func clipBody(b []byte) string {
	const max = 2048
	if len(b) == 0 {
		return ""
	}
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
