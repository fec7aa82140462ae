package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		want     []string
	}{
		{"zero", 0, nil},
		{"negative", -1, nil},
		{"partial", 5, all[5:]},
		{"partial wraps", 3, all[7:]},
		{"exactly all", 10, all},
		{"more than exists", 20, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Read() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	e := Parse(`{"level":"info","ts":"2025-08-18T09:30:00.000Z","logger":"opsboard","msg":"incident resolved","id":"ISS001","page":2}`)
	if e.Raw != "" {
		t.Fatalf("parsed as raw: %q", e.Raw)
	}
	if e.Level != "info" || e.Message != "incident resolved" {
		t.Fatalf("entry = %+v", e)
	}
	if e.Time.IsZero() || e.Time.Hour() != 9 {
		t.Fatalf("time = %v", e.Time)
	}
	want := map[string]string{"id": "ISS001", "page": "2"}
	if diff := cmp.Diff(want, e.Fields); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
}

func TestParse_NonJSON(t *testing.T) {
	for _, line := range []string{"panic: boom", `{"unrelated":true}`, "[1,2]"} {
		if e := Parse(line); e.Raw != line {
			t.Fatalf("Parse(%q) = %+v, want raw", line, e)
		}
	}
}

func TestEntry_Format(t *testing.T) {
	e := Entry{Level: "warn", Message: "validation failed", Fields: map[string]string{"form": "tax", "fields": "rate"}}
	if got := e.Format(); got != "WARN validation failed fields=rate form=tax" {
		t.Fatalf("Format() = %q", got)
	}
	if got := (Entry{Raw: "plain"}).Format(); got != "plain" {
		t.Fatalf("Format() raw = %q", got)
	}
}

func TestReadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opsboard.log")
	data := `{"level":"info","msg":"navigate","route":"/ops"}` + "\n\n" + "not json\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := ReadEntries(path, 10)
	if err != nil {
		t.Fatalf("ReadEntries() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Message != "navigate" || entries[1].Raw != "not json" {
		t.Fatalf("entries = %+v", entries)
	}
}
