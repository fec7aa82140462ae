package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/opsboard/internal/dataset"
)

func seed(t *testing.T) *Store {
	t.Helper()
	ds, err := dataset.Default()
	if err != nil {
		t.Fatalf("dataset.Default: %v", err)
	}
	return NewStore(ds)
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	s := seed(t)

	snap := s.Snapshot()
	snap.Data.Taxes[0].NameEN = "changed"
	snap.Data.Incidents[0].Attachments = append(snap.Data.Incidents[0].Attachments, "x.png")

	again := s.Snapshot()
	if again.Data.Taxes[0].NameEN == "changed" {
		t.Fatal("Snapshot should clone taxes")
	}
	if len(again.Data.Incidents[0].Attachments) != 0 {
		t.Fatal("Snapshot should clone attachments")
	}
}

func TestStore_NewStoreCopiesSeed(t *testing.T) {
	ds, err := dataset.Default()
	if err != nil {
		t.Fatalf("dataset.Default: %v", err)
	}
	s := NewStore(ds)
	ds.Taxes[0].Rate = 99
	if tax, _ := s.Tax("TAX001"); tax.Rate != 10 {
		t.Fatalf("store shares seed slice: rate = %v", tax.Rate)
	}
}

func TestStore_LookupIsTrimmedAndCaseInsensitive(t *testing.T) {
	s := seed(t)
	inc, err := s.Incident("  iss002 ")
	if err != nil {
		t.Fatalf("Incident returned error: %v", err)
	}
	if inc.ID != "ISS002" {
		t.Fatalf("ID = %q", inc.ID)
	}
	if _, err := s.Tax("tax003"); err != nil {
		t.Fatalf("Tax returned error: %v", err)
	}

	if _, err := s.Incident("ISS404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateTax(dataset.Tax{ID: "TAX404"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_AddAssignsSequentialIDs(t *testing.T) {
	s := seed(t)
	tax := s.AddTax(dataset.Tax{NameEN: "Fuel Surcharge", Rate: 3})
	if tax.ID != "TAX005" {
		t.Fatalf("tax id = %q, want TAX005", tax.ID)
	}
	inc := s.AddIncident(dataset.Incident{Case: "TYIM250826", IssueType: "Other", Status: dataset.StatusActive})
	if inc.ID != "ISS004" {
		t.Fatalf("incident id = %q, want ISS004", inc.ID)
	}
	if next := s.AddIncident(dataset.Incident{}); next.ID != "ISS005" {
		t.Fatalf("next incident id = %q, want ISS005", next.ID)
	}
	if s.Version() != 3 {
		t.Fatalf("Version = %d, want 3", s.Version())
	}
}

func TestStore_UpdateKeepsStoredID(t *testing.T) {
	s := seed(t)
	got, err := s.UpdateTax(dataset.Tax{ID: "tax002", NameEN: "Tax Imposition", Rate: 8})
	if err != nil {
		t.Fatalf("UpdateTax returned error: %v", err)
	}
	if got.ID != "TAX002" || got.Rate != 8 {
		t.Fatalf("updated = %+v", got)
	}

	inc, err := s.UpdateIncident(dataset.Incident{ID: "ISS001", Case: "TYIM250620", Status: dataset.StatusActive, CAPA: "Replace glass"})
	if err != nil {
		t.Fatalf("UpdateIncident returned error: %v", err)
	}
	stored, _ := s.Incident("ISS001")
	if stored.CAPA != "Replace glass" || inc.ID != "ISS001" {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestStore_ResolveIncident(t *testing.T) {
	s := seed(t)

	inc, _ := s.Incident("ISS001")
	inc.CAPA = "Replaced the glass"
	got, err := s.ResolveIncident(inc)
	if err != nil {
		t.Fatalf("ResolveIncident returned error: %v", err)
	}
	if got.Status != dataset.StatusResolved || got.CAPA != "Replaced the glass" {
		t.Fatalf("resolved = %+v", got)
	}

	for _, id := range []string{"ISS001", "ISS002", "ISS003"} {
		inc, _ := s.Incident(id)
		if _, err := s.ResolveIncident(inc); !errors.Is(err, ErrNotResolvable) {
			t.Fatalf("resolve %s: err = %v, want ErrNotResolvable", id, err)
		}
	}
	if _, err := s.ResolveIncident(dataset.Incident{ID: "ISS404"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_MutationsUpdateTimestamp(t *testing.T) {
	s := seed(t)
	fixed := time.Date(2025, 8, 18, 9, 0, 0, 0, time.UTC)
	s.clock = func() time.Time { return fixed }

	s.AddTax(dataset.Tax{NameEN: "VAT", Rate: 20})
	if got := s.Snapshot().LastUpdated; !got.Equal(fixed) {
		t.Fatalf("LastUpdated = %v, want %v", got, fixed)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := seed(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AddTax(dataset.Tax{NameEN: "Concurrent", Rate: 1})
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	if n := len(s.Snapshot().Data.Taxes); n != 12 {
		t.Fatalf("taxes = %d, want 12", n)
	}
	seen := map[string]bool{}
	for _, tax := range s.Snapshot().Data.Taxes {
		if seen[tax.ID] {
			t.Fatalf("duplicate id %s", tax.ID)
		}
		seen[tax.ID] = true
	}
}

func TestNextID(t *testing.T) {
	cases := []struct {
		prefix string
		ids    []string
		want   string
	}{
		{"TAX", nil, "TAX001"},
		{"TAX", []string{"TAX001", "TAX009", "other"}, "TAX010"},
		{"ISS", []string{"iss002", "ISSxyz"}, "ISS003"},
	}
	for _, tc := range cases {
		if got := nextID(tc.prefix, tc.ids); got != tc.want {
			t.Fatalf("nextID(%q, %v) = %q, want %q", tc.prefix, tc.ids, got, tc.want)
		}
	}
}
