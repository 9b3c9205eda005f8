package availability

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestCampgroundResult_MarshalJSON_Success(t *testing.T) {
	res := &CampgroundResult{
		CampgroundName:     "Camp Dick",
		TargetDates:        []Night{"2025-08-01T00:00:00Z", "2025-08-02T00:00:00Z"},
		FullyAvailable:     []string{"A1 (2 nights)"},
		PartiallyAvailable: []string{},
	}
	got, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"campground_name":"Camp Dick","target_dates":["2025-08-01T00:00:00Z","2025-08-02T00:00:00Z"],"fully_available_sites":["A1 (2 nights)"],"partially_available_sites":[]}`
	if string(got) != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestCampgroundResult_MarshalJSON_NilListsRenderEmpty(t *testing.T) {
	res := &CampgroundResult{CampgroundName: "Camp Dick"}
	got, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"campground_name":"Camp Dick","target_dates":[],"fully_available_sites":[],"partially_available_sites":[]}`
	if string(got) != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestCampgroundResult_MarshalJSON_Error(t *testing.T) {
	res := &CampgroundResult{
		CampgroundName: "should not appear",
		Err:            errors.New("boom"),
	}
	got, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"error":"boom"}` {
		t.Fatalf("got %s", got)
	}
}

func TestReport_MarshalJSON(t *testing.T) {
	r := NewReport()
	r.Add("232369", &CampgroundResult{
		CampgroundName: "Camp Dick",
		TargetDates:    []Night{"2025-08-01T00:00:00Z"},
		FullyAvailable: []string{"A1 (1 nights)"},
	})
	r.Add("Nonexistent Camp", &CampgroundResult{Err: ErrUnknownCampground})
	r.AddSites("232369", map[string]string{"101": "A1"})

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]json.RawMessage
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 top-level keys, got %d: %s", len(got), raw)
	}
	if string(got["Nonexistent Camp"]) != `{"error":"unknown campground name"}` {
		t.Fatalf("error entry: %s", got["Nonexistent Camp"])
	}
	var sites map[string]map[string]string
	if err := json.Unmarshal(got[AllSitesKey], &sites); err != nil {
		t.Fatalf("all_sites: %v", err)
	}
	if !reflect.DeepEqual(sites, map[string]map[string]string{"232369": {"101": "A1"}}) {
		t.Fatalf("all_sites: got %v", sites)
	}
}

func TestReport_ReservedKeyWins(t *testing.T) {
	// A caller-supplied name colliding with the reserved key cannot shadow
	// the site index in the JSON output.
	r := NewReport()
	r.Add(AllSitesKey, &CampgroundResult{Err: ErrUnknownCampground})
	r.AddSites("232369", map[string]string{"101": "A1"})

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]map[string]map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got[AllSitesKey], map[string]map[string]string{"232369": {"101": "A1"}}) {
		t.Fatalf("reserved key should carry the index: %s", raw)
	}
}

func TestReport_KeysKeepRequestOrder(t *testing.T) {
	r := NewReport()
	r.Add("b", &CampgroundResult{})
	r.Add("a", &CampgroundResult{})
	r.Add("c", &CampgroundResult{})
	if !reflect.DeepEqual(r.Keys(), []string{"b", "a", "c"}) {
		t.Fatalf("got %v", r.Keys())
	}
	if r.Entry("a") == nil || r.Entry("missing") != nil {
		t.Fatalf("entry lookup broken")
	}
}
