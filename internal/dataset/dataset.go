package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed fixtures.toml
var fixtures []byte

// Dataset holds every row collection.
type Dataset struct {
	Chart     []CasePoint `toml:"chart"`
	Cases     []Case      `toml:"active_cases"`
	Quotes    []Quote     `toml:"pending_quotes"`
	Invoices  []Invoice   `toml:"unpaid_invoices"`
	Taxes     []Tax       `toml:"taxes"`
	Incidents []Incident  `toml:"incidents"`
}

// Default returns the embedded seed data.
func Default() (Dataset, error) {
	return Parse(fixtures)
}

// Load reads the dataset at path, or the embedded seed data when path is empty.
func Load(path string) (Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes a TOML dataset and checks incident statuses.
func Parse(data []byte) (Dataset, error) {
	var ds Dataset
	if err := toml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}
	for _, inc := range ds.Incidents {
		if !inc.Status.Valid() {
			return Dataset{}, fmt.Errorf("parse dataset: incident %s: unknown status %q", inc.ID, inc.Status)
		}
	}
	return ds, nil
}

// Clone returns a deep copy.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Chart:    append([]CasePoint(nil), d.Chart...),
		Cases:    append([]Case(nil), d.Cases...),
		Quotes:   append([]Quote(nil), d.Quotes...),
		Invoices: append([]Invoice(nil), d.Invoices...),
		Taxes:    append([]Tax(nil), d.Taxes...),
	}
	if d.Incidents != nil {
		out.Incidents = make([]Incident, len(d.Incidents))
		for i, inc := range d.Incidents {
			out.Incidents[i] = inc.Clone()
		}
	}
	return out
}
