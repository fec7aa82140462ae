package dataset

import (
	"strings"
	"time"
)

// Date layouts used by the seed data.
const (
	PickupLayout = "2006/01/02"
	DueLayout    = "2006-01-02"
)

// CasePoint is one bar of the case status chart.
type CasePoint struct {
	Name  string `toml:"name"`
	Value int    `toml:"value"`
}

// Case is an active shipment case.
type Case struct {
	CaseNo     string `toml:"case_no"`
	Customer   string `toml:"customer"`
	Service    string `toml:"service"`
	Status     string `toml:"status"`
	PIC        string `toml:"pic"`
	Driver     string `toml:"driver"`
	PickupDate string `toml:"pickup_date"`
}

// Quote is a case still waiting for customer approval.
type Quote struct {
	CaseNo     string `toml:"case_no"`
	Customer   string `toml:"customer"`
	Service    string `toml:"service"`
	PIC        string `toml:"pic"`
	Driver     string `toml:"driver"`
	PickupDate string `toml:"pickup_date"`
}

// Invoice is an unpaid invoice. TotalAmount keeps its display form ("$700.00").
type Invoice struct {
	CaseNo      string `toml:"case_no"`
	Customer    string `toml:"customer"`
	TotalAmount string `toml:"total_amount"`
	DateDue     string `toml:"date_due"`
}

// Due parses DateDue. It reports false for malformed dates.
func (i Invoice) Due() (time.Time, bool) {
	t, err := time.Parse(DueLayout, strings.TrimSpace(i.DateDue))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Tax is a configured tax rate.
type Tax struct {
	ID     string  `toml:"id"`
	NameEN string  `toml:"name_en"`
	NameJP string  `toml:"name_jp"`
	Rate   float64 `toml:"rate"`
}

// IncidentStatus is the lifecycle state of an incident.
type IncidentStatus string

const (
	StatusPendingApproval IncidentStatus = "Pending Approval"
	StatusActive          IncidentStatus = "Active"
	StatusResolved        IncidentStatus = "Resolved"
)

// IncidentStatuses lists every status in display order.
var IncidentStatuses = []IncidentStatus{StatusPendingApproval, StatusActive, StatusResolved}

// Valid reports whether s is a known status.
func (s IncidentStatus) Valid() bool {
	for _, known := range IncidentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IncidentTypes lists the selectable incident types.
var IncidentTypes = []string{
	"Damaged Item",
	"Failed Pickup/Delivery",
	"Documentation Error",
	"Other",
}

// Incident is a reported problem on a case.
type Incident struct {
	ID          string         `toml:"id"`
	Case        string         `toml:"case"`
	IssueType   string         `toml:"issue_type"`
	Status      IncidentStatus `toml:"status"`
	PIC         string         `toml:"pic"`
	Description string         `toml:"description"`
	CAPA        string         `toml:"capa"`
	Attachments []string       `toml:"attachments"`
}

// Clone returns a copy that shares no slices with i.
func (i Incident) Clone() Incident {
	i.Attachments = append([]string(nil), i.Attachments...)
	return i
}
