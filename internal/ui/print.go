package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/five82/opsboard/internal/config"
	"github.com/five82/opsboard/internal/dataset"
	"github.com/five82/opsboard/internal/table"
)

// Entities that PrintTable can render.
var Entities = []string{"cases", "quotes", "invoices", "taxes", "incidents"}

var (
	ErrUnknownEntity = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown or unsortable column")
)

// TableQuery selects one page of a table outside the TUI.
type TableQuery struct {
	Filter   table.Selection
	Sort     string
	Desc     bool
	Page     int
	PageSize int
}

// PrintTable renders one page of entity with the same columns, filters and
// ordering as the console, followed by the page summary.
func PrintTable(entity string, ds dataset.Dataset, cfg config.Config, q TableQuery) (string, error) {
	cmp := table.NewComparer(cfg.Locale)
	switch strings.ToLower(strings.TrimSpace(entity)) {
	case "cases":
		return printPipeline(ds.Cases, table.Config[dataset.Case]{
			Dimensions: caseDimensions(), Columns: caseColumns(), PageSize: cfg.PageSize.Dashboard, Comparer: cmp,
		}, q)
	case "quotes":
		return printPipeline(ds.Quotes, table.Config[dataset.Quote]{
			Dimensions: quoteDimensions(), Columns: quoteColumns(), PageSize: cfg.PageSize.Dashboard, Comparer: cmp,
		}, q)
	case "invoices":
		return printPipeline(ds.Invoices, table.Config[dataset.Invoice]{
			Dimensions: invoiceDimensions(), Columns: invoiceColumns(), PageSize: cfg.PageSize.Dashboard, Comparer: cmp,
			DefaultOrder: func(a, b dataset.Invoice) int { return strings.Compare(a.DateDue, b.DateDue) },
		}, q)
	case "taxes":
		return printPipeline(ds.Taxes, table.Config[dataset.Tax]{
			Dimensions: taxDimensions(), Columns: taxColumns(), PageSize: cfg.PageSize.Taxes, Comparer: cmp,
		}, q)
	case "incidents":
		return printPipeline(ds.Incidents, table.Config[dataset.Incident]{
			Dimensions: incidentDimensions(), Columns: incidentColumns(), PageSize: cfg.PageSize.Incidents, Comparer: cmp,
		}, q)
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownEntity, entity, strings.Join(Entities, ", "))
}

func printPipeline[T any](rows []T, cfg table.Config[T], q TableQuery) (string, error) {
	if q.PageSize > 0 {
		cfg.PageSize = q.PageSize
	}
	p := table.New(rows, cfg)
	if q.Filter != nil {
		p.SetFilter(q.Filter)
	}
	if q.Sort != "" {
		col, ok := table.FindColumn(cfg.Columns, q.Sort)
		if !ok || !col.Sortable {
			return "", fmt.Errorf("%w %q", ErrUnknownColumn, q.Sort)
		}
		dir := table.Ascending
		if q.Desc {
			dir = table.Descending
		}
		p.SetSort(table.SortState{Column: col.Key, Direction: dir})
	}
	if q.Page > 0 {
		p.GoToPage(q.Page)
	}

	page := p.View()
	headers := make([]string, len(cfg.Columns))
	for i, c := range cfg.Columns {
		headers[i] = c.Header
	}
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == ltable.HeaderRow {
				return style.Bold(true)
			}
			return style.Align(lipglossAlign(cfg.Columns[col].Align))
		})
	for _, r := range page.Rows {
		cells := make([]string, len(cfg.Columns))
		for i, c := range cfg.Columns {
			cells[i] = c.Cell(r)
		}
		t.Row(cells...)
	}

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	if page.Total == 0 {
		b.WriteString("No rows\n")
	}
	b.WriteString(page.Summary())
	b.WriteString("\n")
	return b.String(), nil
}
