// Package validate checks form input before it reaches the session store.
// Each failing field gets exactly one message, the first rule it broke.
package validate

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/five82/opsboard/internal/attach"
	"github.com/five82/opsboard/internal/dataset"
)

// Errors maps a field name to its message. A nil or empty Errors means valid.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool {
	return len(e) == 0
}

// First returns the message for field, or "".
func (e Errors) First(field string) string {
	return e[field]
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

func (e Errors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Form field names.
const (
	FieldNameEN       = "name_en"
	FieldNameJP       = "name_jp"
	FieldRate         = "rate"
	FieldID           = "id"
	FieldCaseNo       = "caseNo"
	FieldIncidentType = "incidentType"
	FieldDescription  = "description"
	FieldCAPA         = "capa"
	FieldAttachments  = "attachments"
	FieldStatus       = "status"
)

// TaxInput is the raw tax form.
type TaxInput struct {
	NameEN string
	NameJP string
	Rate   string
}

// Tax validates in and returns the cleaned row on success.
func Tax(in TaxInput) (dataset.Tax, Errors) {
	errs := Errors{}
	nameEN := strings.TrimSpace(in.NameEN)
	if utf8.RuneCountInString(nameEN) < 2 {
		errs.add(FieldNameEN, "Tax name (EN) must be at least 2 characters")
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(in.Rate), 64)
	switch {
	case err != nil, math.IsNaN(rate):
		errs.add(FieldRate, "Tax rate must be a number")
	case rate < 0:
		errs.add(FieldRate, "Tax Rate must be at least 0")
	case rate > 100:
		errs.add(FieldRate, "Rate cannot be more than 100")
	}

	if !errs.OK() {
		return dataset.Tax{}, errs
	}
	return dataset.Tax{NameEN: nameEN, NameJP: strings.TrimSpace(in.NameJP), Rate: rate}, nil
}

// IncidentInput is the raw incident form. Attachments are file paths.
type IncidentInput struct {
	ID           string
	CaseNo       string
	IncidentType string
	Description  string
	CAPA         string
	Attachments  []string
	Status       string
}

// Incident validates in. editing requires an id. On success the cleaned row
// carries the attachment base names.
func Incident(in IncidentInput, editing bool) (dataset.Incident, Errors) {
	errs := Errors{}
	if editing && strings.TrimSpace(in.ID) == "" {
		errs.add(FieldID, "Invalid ID")
	}

	caseNo := strings.TrimSpace(in.CaseNo)
	switch n := utf8.RuneCountInString(caseNo); {
	case n < 1:
		errs.add(FieldCaseNo, "Case Number is required")
	case n > 30:
		errs.add(FieldCaseNo, "Case Number is too long")
	}

	incidentType := strings.TrimSpace(in.IncidentType)
	if incidentType == "" {
		errs.add(FieldIncidentType, "Incident Type is required")
	}

	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) < 10 {
		errs.add(FieldDescription, "Please write at least 10 characters")
	}

	capa := strings.TrimSpace(in.CAPA)
	if utf8.RuneCountInString(capa) < 5 {
		errs.add(FieldCAPA, "Please provide at least 5 characters")
	}

	refs, err := attach.Check(in.Attachments)
	if err != nil {
		errs.add(FieldAttachments, err.Error())
	}

	status := dataset.IncidentStatus(strings.TrimSpace(in.Status))
	if !status.Valid() {
		errs.add(FieldStatus, "Invalid status")
	}

	if !errs.OK() {
		return dataset.Incident{}, errs
	}
	return dataset.Incident{
		ID:          strings.TrimSpace(in.ID),
		Case:        caseNo,
		IssueType:   incidentType,
		Status:      status,
		Description: description,
		CAPA:        capa,
		Attachments: attach.Names(refs),
	}, nil
}
