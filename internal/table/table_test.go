package table

import (
	"fmt"
	"strconv"
)

// shipment is the row type shared by the table tests.
type shipment struct {
	ID     string
	Status string
	Region string
	Amount string
	Weight int
}

func shipmentDims() []Dimension[shipment] {
	return []Dimension[shipment]{
		{ID: "status", Title: "Status", Value: func(s shipment) (string, bool) { return s.Status, s.Status != "" }},
		{ID: "region", Title: "Region", Value: func(s shipment) (string, bool) { return s.Region, s.Region != "" }},
	}
}

func shipmentCols() []Column[shipment] {
	return []Column[shipment]{
		{Key: "id", Header: "ID", Sortable: true, Value: func(s shipment) Value { return Text(s.ID) }},
		{Key: "status", Header: "Status", Sortable: true, Value: func(s shipment) Value { return Text(s.Status) }},
		{Key: "amount", Header: "Amount", Sortable: true, Value: func(s shipment) Value { return Currency(s.Amount) }},
		{Key: "weight", Header: "Weight", Sortable: true, Value: func(s shipment) Value { return Number(float64(s.Weight)) }},
		{Key: "notes", Header: "Notes"},
	}
}

// makeShipments returns n rows cycling through statuses, regions and weights so
// that filters and sorts produce ties.
func makeShipments(n int) []shipment {
	statuses := []string{"Active", "Pending", "Closed"}
	regions := []string{"Kanto", "Kansai", "Tohoku", "Kyushu"}
	rows := make([]shipment, n)
	for i := range rows {
		rows[i] = shipment{
			ID:     fmt.Sprintf("S%02d", i+1),
			Status: statuses[i%len(statuses)],
			Region: regions[i%len(regions)],
			Amount: "$" + strconv.Itoa((i*37)%11*100) + ".00",
			Weight: (i * 7) % 5,
		}
	}
	return rows
}

func ids(rows []shipment) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
