package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestRecreationGov_FetchMonth_QueryEncoded(t *testing.T) {
	// Arrange a fake API that captures the raw query string.
	var captured []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/camps/availability/campground/") {
			http.NotFound(w, r)
			return
		}
		if !strings.HasSuffix(r.URL.Path, "/month") {
			http.Error(w, "bad path", http.StatusBadRequest)
			return
		}
		captured = append(captured, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"campsites": map[string]any{}})
	}))
	defer srv.Close()

	p := NewRecreationGov(srv.URL, nil, nil)

	month := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err := p.FetchMonth(context.Background(), "12345", month)
	if err != nil {
		t.Fatalf("FetchMonth returned error: %v", err)
	}

	if len(captured) != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", len(captured))
	}
	// Verify the query contains a properly encoded start_date; colons must be
	// percent-encoded and the value must carry milliseconds and Zulu time.
	raw := captured[0]
	q, _ := url.ParseQuery(raw)
	got := q.Get("start_date")
	if got == "" {
		t.Fatalf("start_date missing from query: %q", raw)
	}
	if strings.ContainsAny(raw, "+ :") {
		t.Fatalf("query appears not encoded: %q", raw)
	}
	if got != "2024-12-01T00:00:00.000Z" {
		t.Fatalf("unexpected start_date value: %q", got)
	}
}

func TestRecreationGov_FetchMonth_DecodesSites(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"campsites": {
				"101": {
					"site": "A1",
					"campsite_type": "STANDARD NONELECTRIC",
					"availabilities": {
						"2025-08-01T00:00:00Z": "Available",
						"2025-08-02T00:00:00Z": "Reserved"
					}
				},
				"102": {
					"site": "A2",
					"availabilities": {"2025-08-01T00:00:00Z": "Open - Walk Up"}
				}
			}
		}`))
	}))
	defer srv.Close()

	p := NewRecreationGov(srv.URL, nil, nil)
	got, err := p.FetchMonth(context.Background(), "232369", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FetchMonth returned error: %v", err)
	}

	want := map[string]SiteMonth{
		"101": {Name: "A1", Nights: map[string]string{
			"2025-08-01T00:00:00Z": "Available",
			"2025-08-02T00:00:00Z": "Reserved",
		}},
		"102": {Name: "A2", Nights: map[string]string{
			"2025-08-01T00:00:00Z": "Open - Walk Up",
		}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestRecreationGov_FetchMonth_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewRecreationGov(srv.URL, nil, nil)
	_, err := p.FetchMonth(context.Background(), "232369", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Fatalf("error should carry the status code: %v", err)
	}
}

func TestRecreationGov_FetchMonth_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>totally not json</html>"))
	}))
	defer srv.Close()

	p := NewRecreationGov(srv.URL, nil, nil)
	_, err := p.FetchMonth(context.Background(), "232369", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatalf("expected error for malformed body")
	}
	if !strings.Contains(err.Error(), "JSON decode failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecreationGov_FetchAllCampgrounds_Paginates(t *testing.T) {
	// Fake search API with two pages: 100 results then 40.
	var calls []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		start := 0
		if s := q.Get("start"); s != "" {
			var err error
			start, err = strconv.Atoi(s)
			if err != nil {
				t.Fatalf("bad start param: %q", s)
			}
		}
		calls = append(calls, start)

		var count int
		switch start {
		case 0:
			count = 100
		case 100:
			count = 40
		default:
			t.Fatalf("unexpected start param: %d", start)
		}

		type result struct {
			Name       string `json:"name"`
			EntityID   string `json:"entity_id"`
			ParentName string `json:"parent_name"`
			Reservable bool   `json:"reservable"`
		}
		out := struct {
			Results []result `json:"results"`
			Size    int      `json:"size"`
		}{Results: make([]result, 0, count), Size: count}
		for i := 0; i < count; i++ {
			id := start + i + 1
			r := result{EntityID: strconv.Itoa(id), Name: "Campground " + strconv.Itoa(id), Reservable: true}
			if id == 1 {
				r.ParentName = "Some Forest"
			}
			if id == 2 {
				r.Reservable = false
			}
			out.Results = append(out.Results, r)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	p := NewRecreationGov(srv.URL, nil, nil)
	got, err := p.FetchAllCampgrounds(context.Background())
	if err != nil {
		t.Fatalf("FetchAllCampgrounds error: %v", err)
	}

	// 140 results minus the one non-reservable entry.
	if len(got) != 139 {
		t.Fatalf("expected 139 campgrounds, got %d", len(got))
	}
	if got[0].ID != "1" || got[0].Name != "Some Forest: Campground 1" {
		t.Fatalf("unexpected first item: %+v", got[0])
	}
	last := got[len(got)-1]
	if last.ID != "140" || last.Name != "Campground 140" {
		t.Fatalf("unexpected last item: %+v", last)
	}
	if len(calls) != 2 || calls[0] != 0 || calls[1] != 100 {
		t.Fatalf("unexpected pagination calls: %v", calls)
	}
}

func TestRecreationGov_CampgroundURL(t *testing.T) {
	p := NewRecreationGov("", nil, nil)
	if got := p.CampgroundURL("232369"); got != "https://www.recreation.gov/camping/campgrounds/232369" {
		t.Fatalf("unexpected url: %q", got)
	}
	if got := p.CampgroundURL(""); got != "" {
		t.Fatalf("empty id should yield empty url, got %q", got)
	}
}

