package table

import (
	"cmp"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type valueKind int

const (
	kindMissing valueKind = iota
	kindNumber
	kindText
)

// Value is a comparable cell value produced by a column extractor.
type Value struct {
	kind valueKind
	num  float64
	text string
}

// Number wraps a numeric value.
func Number(f float64) Value {
	return Value{kind: kindNumber, num: f, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Text wraps a string compared with locale-aware collation.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// Missing marks a row without a value for the column.
func Missing() Value {
	return Value{}
}

// Currency parses a formatted amount such as "$3080.00" into a numeric value.
// Everything except digits and '.' is stripped; unparsable input counts as 0.
// The input string is kept for display.
func Currency(s string) Value {
	v := Number(parseAmount(s))
	v.text = s
	return v
}

func parseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// IsMissing reports whether v carries no value.
func (v Value) IsMissing() bool {
	return v.kind == kindMissing
}

// IsNumber reports whether v compares numerically.
func (v Value) IsNumber() bool {
	return v.kind == kindNumber
}

// Float returns the numeric value, or 0 for text and missing values.
func (v Value) Float() float64 {
	return v.num
}

// String returns the display form of the value.
func (v Value) String() string {
	return v.text
}

// Comparer orders values. Text is collated for a locale.
// A Comparer is not safe for concurrent use.
type Comparer struct {
	coll *collate.Collator
}

// NewComparer returns a Comparer collating text for the given BCP 47 locale.
// Unknown or empty locales fall back to English.
func NewComparer(locale string) *Comparer {
	tag := language.English
	if strings.TrimSpace(locale) != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}
	return &Comparer{coll: collate.New(tag)}
}

// Compare returns -1, 0 or +1. Missing values sort before present ones.
// Two numbers compare numerically; anything else compares by display text.
func (c *Comparer) Compare(a, b Value) int {
	switch {
	case a.IsMissing() && b.IsMissing():
		return 0
	case a.IsMissing():
		return -1
	case b.IsMissing():
		return 1
	case a.IsNumber() && b.IsNumber():
		return cmp.Compare(a.Float(), b.Float())
	}
	return c.coll.CompareString(a.String(), b.String())
}
