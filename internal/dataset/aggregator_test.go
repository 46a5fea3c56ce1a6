package dataset

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// fakeDatastore serves canned datastore_search payloads per resource id and
// records the queries it saw.
type fakeDatastore struct {
	mu      sync.Mutex
	calls   map[string]int
	queries map[string]string
	fail    map[string]bool
	records map[string][]map[string]any
}

func newFakeDatastore() *fakeDatastore {
	return &fakeDatastore{
		calls:   map[string]int{},
		queries: map[string]string{},
		fail:    map[string]bool{},
		records: map[string][]map[string]any{},
	}
}

func (f *fakeDatastore) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceID := r.URL.Query().Get("resource_id")

		f.mu.Lock()
		f.calls[resourceID]++
		f.queries[resourceID] = r.URL.Query().Get("q")
		fail := f.fail[resourceID]
		records := f.records[resourceID]
		f.mu.Unlock()

		if fail {
			http.Error(w, "upstream broken", http.StatusInternalServerError)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"records": records},
		})
	}
}

func (f *fakeDatastore) callCount(resourceID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[resourceID]
}

func (f *fakeDatastore) query(resourceID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[resourceID]
}

func newTestAggregator(t *testing.T, fake *fakeDatastore) *Aggregator {
	t.Helper()
	ts := httptest.NewServer(fake.handler())
	t.Cleanup(ts.Close)
	return NewAggregator(NewClient(ts.URL), zerolog.Nop())
}

func TestAggregateAllSourcesHealthy(t *testing.T) {
	fake := newFakeDatastore()
	fake.records[resourceSchools] = []map[string]any{
		{"school_name": "ADMIRALTY PRIMARY SCHOOL", "address": "11 WOODLANDS CIRCLE", "postal_code": "738907", "zone_code": "NORTH"},
	}
	fake.records[resourceCCAs] = []map[string]any{
		{"School_name": "ADMIRALTY PRIMARY SCHOOL", "cca_generic_name": "BADMINTON", "cca_grouping_desc": "PHYSICAL SPORTS"},
	}
	fake.records[resourceDistProgs] = []map[string]any{
		{"school_name": "ADMIRALTY PRIMARY SCHOOL", "alp_domain": "Coding", "alp_title": "Coding for All"},
	}
	fake.records[resourceMOEProgs] = []map[string]any{
		{"School_name": "ADMIRALTY PRIMARY SCHOOL", "moe_programme_desc": "Learning Support"},
	}

	agg := newTestAggregator(t, fake)
	result := agg.Aggregate(context.Background(), Query{Name: "admiralty"})

	if len(result.Schools) != 1 {
		t.Fatalf("Schools = %d, want 1", len(result.Schools))
	}
	school := result.Schools[0]
	if school.ID != 1 || school.SchoolName != "ADMIRALTY PRIMARY SCHOOL" || school.ZoneCode != "NORTH" {
		t.Errorf("school = %+v", school)
	}
	if len(result.CCAs) != 1 || result.CCAs[0].SchoolName != "ADMIRALTY PRIMARY SCHOOL" || result.CCAs[0].CCAName != "BADMINTON" {
		t.Errorf("ccas = %+v", result.CCAs)
	}
	if len(result.DistProgs) != 1 || result.DistProgs[0].ProgName != "Coding for All" {
		t.Errorf("distProgs = %+v", result.DistProgs)
	}
	if len(result.MOEProgs) != 1 || result.MOEProgs[0].Category != "Learning Support" {
		t.Errorf("moeprog = %+v", result.MOEProgs)
	}
	if result.Subjects == nil || len(result.Subjects) != 0 {
		t.Errorf("subjects = %+v, want empty", result.Subjects)
	}
}

func TestAggregatePartialFailure(t *testing.T) {
	fake := newFakeDatastore()
	fake.records[resourceSchools] = []map[string]any{
		{"school_name": "ADMIRALTY PRIMARY SCHOOL"},
	}
	fake.fail[resourceCCAs] = true
	fake.fail[resourceDistProgs] = true
	fake.fail[resourceMOEProgs] = true

	agg := newTestAggregator(t, fake)
	result := agg.Aggregate(context.Background(), Query{Name: "admiralty"})

	if len(result.Schools) != 1 {
		t.Errorf("Schools = %d, want 1 despite sibling failures", len(result.Schools))
	}
	for name, got := range map[string]int{
		"ccas":      len(result.CCAs),
		"distProgs": len(result.DistProgs),
		"moeprog":   len(result.MOEProgs),
	} {
		if got != 0 {
			t.Errorf("%s = %d, want 0", name, got)
		}
	}
}

func TestAggregateEnvelopeAlwaysComplete(t *testing.T) {
	fake := newFakeDatastore()
	for _, id := range []string{resourceSchools, resourceCCAs, resourceDistProgs, resourceMOEProgs} {
		fake.fail[id] = true
	}

	agg := newTestAggregator(t, fake)
	result := agg.Aggregate(context.Background(), Query{Name: "admiralty"})

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"schools", "ccas", "distProgs", "subjects", "moeprog"} {
		raw, ok := envelope[key]
		if !ok {
			t.Fatalf("envelope missing %q", key)
		}
		if string(raw) != "[]" {
			t.Errorf("envelope[%q] = %s, want []", key, raw)
		}
	}
}

func TestCCAShortQuerySkipsUpstream(t *testing.T) {
	fake := newFakeDatastore()
	agg := newTestAggregator(t, fake)

	// One character after punctuation stripping: no upstream call.
	agg.Aggregate(context.Background(), Query{Name: "a!"})
	if n := fake.callCount(resourceCCAs); n != 0 {
		t.Errorf("cca calls = %d, want 0 for short query", n)
	}

	// Exactly two characters: the call is attempted.
	agg.Aggregate(context.Background(), Query{Name: "ab"})
	if n := fake.callCount(resourceCCAs); n != 1 {
		t.Errorf("cca calls = %d, want 1 for two-character query", n)
	}
}

func TestCCAQueryStripsLevelQualifier(t *testing.T) {
	fake := newFakeDatastore()
	agg := newTestAggregator(t, fake)

	agg.Aggregate(context.Background(), Query{Name: "Admiralty Primary School"})
	if q := fake.query(resourceCCAs); q != "Admiralty Primary" {
		t.Errorf("cca query = %q, want %q", q, "Admiralty Primary")
	}
}

func TestSchoolsStructuredFilterMode(t *testing.T) {
	fake := newFakeDatastore()
	fake.records[resourceSchools] = []map[string]any{
		{"school_name": "NORTHLAND PRIMARY SCHOOL", "address": "15 YISHUN AVE", "postal_code": "768643", "phone_no": "62575787"},
	}

	agg := newTestAggregator(t, fake)
	result := agg.Aggregate(context.Background(), Query{Level: "PRIMARY", Location: "NORTH"})

	var filter map[string]string
	if err := json.Unmarshal([]byte(fake.query(resourceSchools)), &filter); err != nil {
		t.Fatalf("school query is not a JSON filter: %v", err)
	}
	if filter["mainlevel_code"] != "PRIMARY" || filter["zone_code"] != "NORTH" {
		t.Errorf("filter = %v", filter)
	}

	if len(result.Schools) != 1 {
		t.Fatalf("Schools = %d, want 1", len(result.Schools))
	}
	// Structured mode returns the slim contact-card shape.
	if result.Schools[0].PhoneNo != "" {
		t.Errorf("PhoneNo = %q, want empty in structured mode", result.Schools[0].PhoneNo)
	}
	if result.Schools[0].Address != "15 YISHUN AVE" {
		t.Errorf("Address = %q", result.Schools[0].Address)
	}
}

func TestSchoolsPartialModeWinsOverFilters(t *testing.T) {
	fake := newFakeDatastore()
	agg := newTestAggregator(t, fake)

	agg.Aggregate(context.Background(), Query{Name: "admiralty", Level: "PRIMARY"})
	if q := fake.query(resourceSchools); q != "admiralty" {
		t.Errorf("school query = %q, want free-text %q", q, "admiralty")
	}
}

func TestSchoolsSorting(t *testing.T) {
	fake := newFakeDatastore()
	fake.records[resourceSchools] = []map[string]any{
		{"school_name": "BEDOK GREEN PRIMARY SCHOOL"},
		{"school_name": "ADMIRALTY PRIMARY SCHOOL"},
		{"school_name": "CANBERRA PRIMARY SCHOOL"},
	}

	agg := newTestAggregator(t, fake)

	asc := agg.Aggregate(context.Background(), Query{Name: "primary", Sort: "name-asc"})
	if asc.Schools[0].SchoolName != "ADMIRALTY PRIMARY SCHOOL" || asc.Schools[2].SchoolName != "CANBERRA PRIMARY SCHOOL" {
		t.Errorf("asc order = %v", schoolNames(asc.Schools))
	}

	desc := agg.Aggregate(context.Background(), Query{Name: "primary", Sort: "name-desc"})
	if desc.Schools[0].SchoolName != "CANBERRA PRIMARY SCHOOL" || desc.Schools[2].SchoolName != "ADMIRALTY PRIMARY SCHOOL" {
		t.Errorf("desc order = %v", schoolNames(desc.Schools))
	}

	unsorted := agg.Aggregate(context.Background(), Query{Name: "primary"})
	if unsorted.Schools[0].SchoolName != "BEDOK GREEN PRIMARY SCHOOL" {
		t.Errorf("unsorted order = %v, want upstream order preserved", schoolNames(unsorted.Schools))
	}
}

func TestSearchMalformedPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer ts.Close()

	agg := NewAggregator(NewClient(ts.URL), zerolog.Nop())
	result := agg.Aggregate(context.Background(), Query{Name: "admiralty"})

	if len(result.Schools) != 0 || len(result.CCAs) != 0 {
		t.Errorf("result = %+v, want empty collections for payloads without result.records", result)
	}
}

func schoolNames(schools []School) []string {
	names := make([]string, len(schools))
	for i, s := range schools {
		names[i] = s.SchoolName
	}
	return names
}
