package nav

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRouter_ResolveNamedRoutes(t *testing.T) {
	r := NewRouter()
	cases := []struct {
		path string
		name string
		id   string
	}{
		{"/ops", Dashboard, ""},
		{"/ops/incident", Incidents, ""},
		{"/ops/incident/create", IncidentCreate, ""},
		{"/ops/incident/ISS002/edit", IncidentEdit, "ISS002"},
		{"/ops/incident/ISS003/detail", IncidentDetail, "ISS003"},
		{"/ops/finances/taxes", Taxes, ""},
		{"/ops/finances/taxes/create", TaxCreate, ""},
		{"/ops/finances/taxes/TAX001/edit", TaxEdit, "TAX001"},
		{"/ops/activity", Activity, ""},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			m, err := r.Resolve(Route{Path: tc.path})
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if m.Name != tc.name {
				t.Fatalf("name = %q, want %q", m.Name, tc.name)
			}
			if m.Var("id") != tc.id {
				t.Fatalf("id = %q, want %q", m.Var("id"), tc.id)
			}
		})
	}
}

func TestRouter_ResolveUnknown(t *testing.T) {
	r := NewRouter()
	for _, path := range []string{"/", "/ops/nope", "/ops/incident/ISS001"} {
		if _, err := r.Resolve(Route{Path: path}); !errors.Is(err, ErrNoRoute) {
			t.Fatalf("Resolve(%q) err = %v, want ErrNoRoute", path, err)
		}
	}
}

func TestRouter_Build(t *testing.T) {
	r := NewRouter()
	got, err := r.Build(IncidentEdit, "id", "ISS002")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if got.Path != "/ops/incident/ISS002/edit" {
		t.Fatalf("path = %q", got.Path)
	}

	if _, err := r.Build("nope"); !errors.Is(err, ErrNoRoute) {
		t.Fatalf("Build(nope) err = %v, want ErrNoRoute", err)
	}
	if _, err := r.Build(TaxEdit); err == nil {
		t.Fatal("Build without id should fail")
	}
}

func TestRouter_BuildResolveRoundTrip(t *testing.T) {
	r := NewRouter()
	for _, name := range r.Names() {
		var pairs []string
		if name == IncidentEdit || name == IncidentDetail || name == TaxEdit {
			pairs = []string{"id", "X1"}
		}
		route := r.MustBuild(name, pairs...)
		m, err := r.Resolve(route)
		if err != nil {
			t.Fatalf("%s: Resolve(%s) returned error: %v", name, route, err)
		}
		if m.Name != name {
			t.Fatalf("%s: resolved to %q", name, m.Name)
		}
	}
}

func TestParseRoute(t *testing.T) {
	got, err := ParseRoute("/ops/incident/?toast=resolved&id=ISS002")
	if err != nil {
		t.Fatalf("ParseRoute returned error: %v", err)
	}
	if got.Path != "/ops/incident" {
		t.Fatalf("path = %q", got.Path)
	}
	want := url.Values{"toast": {"resolved"}, "id": {"ISS002"}}
	if diff := cmp.Diff(want, got.Query); diff != "" {
		t.Fatalf("query (-want +got):\n%s", diff)
	}
	if got.String() != "/ops/incident?id=ISS002&toast=resolved" {
		t.Fatalf("String = %q", got.String())
	}

	for _, bad := range []string{"", "https://example.com/ops", "%zz"} {
		if _, err := ParseRoute(bad); err == nil {
			t.Fatalf("ParseRoute(%q) expected error", bad)
		}
	}
}

func TestRoute_WithCopies(t *testing.T) {
	base := Route{Path: "/ops/incident", Query: url.Values{"a": {"1"}}}
	next := base.With("toast", "updated")
	if base.Get("toast") != "" {
		t.Fatal("With modified the receiver")
	}
	if next.Get("toast") != "updated" || next.Get("a") != "1" {
		t.Fatalf("next = %s", next)
	}
	if !next.Equal(Route{Path: "/ops/incident", Query: url.Values{"toast": {"updated"}, "a": {"1"}}}) {
		t.Fatalf("Equal mismatch for %s", next)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(Route{Path: "/ops"})
	if _, ok := h.Back(); ok {
		t.Fatal("Back at root should report false")
	}

	h.Push(Route{Path: "/ops/incident/ISS002/edit"})
	h.Push(Route{Path: "/ops/incident", Query: url.Values{"toast": {"resolved"}}})
	h.Replace(Route{Path: "/ops/incident"})
	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	if got := h.Current().String(); got != "/ops/incident" {
		t.Fatalf("Current = %q", got)
	}

	prev, ok := h.Back()
	if !ok || prev.Path != "/ops/incident/ISS002/edit" {
		t.Fatalf("Back = %s, %v", prev, ok)
	}

	var empty History
	empty.Replace(Route{Path: "/ops"})
	if empty.Len() != 1 {
		t.Fatalf("Replace on empty history: Len = %d", empty.Len())
	}
}
