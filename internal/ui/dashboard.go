package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/opsboard/internal/dataset"
	"github.com/five82/opsboard/internal/table"
)

// Dashboard filter groups. They are shared by all three tables; a table
// ignores groups it has no dimension for.
const (
	groupPIC       = "pic"
	groupDept      = "dept"
	groupCustomers = "customers"
	groupStatus    = "status"
)

var months = []string{
	"All", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func caseDimensions() []table.Dimension[dataset.Case] {
	return []table.Dimension[dataset.Case]{
		{ID: groupPIC, Title: "Person in Charge", Value: func(c dataset.Case) (string, bool) { return c.Driver, c.Driver != "" }},
		{ID: groupDept, Title: "Department", Value: func(c dataset.Case) (string, bool) { return c.Service, c.Service != "" }},
		{ID: groupCustomers, Title: "Customers", Value: func(c dataset.Case) (string, bool) { return c.Customer, c.Customer != "" }},
		{ID: groupStatus, Title: "Status", Value: func(c dataset.Case) (string, bool) { return c.Status, c.Status != "" }},
	}
}

func quoteDimensions() []table.Dimension[dataset.Quote] {
	return []table.Dimension[dataset.Quote]{
		{ID: groupPIC, Title: "Person in Charge", Value: func(q dataset.Quote) (string, bool) { return q.Driver, q.Driver != "" }},
		{ID: groupDept, Title: "Department", Value: func(q dataset.Quote) (string, bool) { return q.Service, q.Service != "" }},
		{ID: groupCustomers, Title: "Customers", Value: func(q dataset.Quote) (string, bool) { return q.Customer, q.Customer != "" }},
	}
}

func invoiceDimensions() []table.Dimension[dataset.Invoice] {
	return []table.Dimension[dataset.Invoice]{
		{ID: groupCustomers, Title: "Customers", Value: func(i dataset.Invoice) (string, bool) { return i.Customer, i.Customer != "" }},
	}
}

func textCol[T any](key, header string, get func(T) string) table.Column[T] {
	return table.Column[T]{Key: key, Header: header, Sortable: true, Value: func(row T) table.Value {
		v := get(row)
		if v == "" {
			return table.Missing()
		}
		return table.Text(v)
	}}
}

func caseColumns() []table.Column[dataset.Case] {
	return []table.Column[dataset.Case]{
		textCol("caseNo", "Case #", func(c dataset.Case) string { return c.CaseNo }),
		textCol("customer", "Customer", func(c dataset.Case) string { return c.Customer }),
		textCol("service", "Service", func(c dataset.Case) string { return c.Service }),
		textCol("status", "Status", func(c dataset.Case) string { return c.Status }),
		textCol("pic", "PIC", func(c dataset.Case) string { return c.PIC }),
		textCol("driver", "Driver", func(c dataset.Case) string { return c.Driver }),
		textCol("pickupDate", "Pickup Date", func(c dataset.Case) string { return c.PickupDate }),
	}
}

func quoteColumns() []table.Column[dataset.Quote] {
	return []table.Column[dataset.Quote]{
		textCol("caseNo", "Case #", func(q dataset.Quote) string { return q.CaseNo }),
		textCol("customer", "Customer", func(q dataset.Quote) string { return q.Customer }),
		textCol("service", "Service", func(q dataset.Quote) string { return q.Service }),
		textCol("pic", "PIC", func(q dataset.Quote) string { return q.PIC }),
		textCol("driver", "Driver", func(q dataset.Quote) string { return q.Driver }),
		textCol("pickupDate", "Pickup Date", func(q dataset.Quote) string { return q.PickupDate }),
	}
}

func invoiceColumns() []table.Column[dataset.Invoice] {
	return []table.Column[dataset.Invoice]{
		textCol("caseNo", "Case #", func(i dataset.Invoice) string { return i.CaseNo }),
		textCol("customer", "Customer", func(i dataset.Invoice) string { return i.Customer }),
		{Key: "totalAmount", Header: "Total Amount", Sortable: true, Align: table.AlignRight,
			Value: func(i dataset.Invoice) table.Value { return table.Currency(i.TotalAmount) }},
		textCol("dateDue", "Date Due", func(i dataset.Invoice) string { return i.DateDue }),
	}
}

// dashboardGroups derives the shared filter groups. Person, department and
// customer options come from cases and quotes; status options from cases only.
func dashboardGroups(cases []dataset.Case, quotes []dataset.Quote) []table.FilterGroup {
	combined := slices.Clone(cases)
	for _, q := range quotes {
		combined = append(combined, dataset.Case{
			CaseNo: q.CaseNo, Customer: q.Customer, Service: q.Service,
			PIC: q.PIC, Driver: q.Driver, PickupDate: q.PickupDate,
		})
	}
	return table.Groups(combined, caseDimensions())
}

// invoicePeriod is the month/year selector of the unpaid invoice table. It
// shows the current month and year from the start but only constrains rows
// once touched; "All" disables a part.
type invoicePeriod struct {
	month        int
	year         string
	years        []string
	monthTouched bool
	yearTouched  bool
}

func newInvoicePeriod(now time.Time, invoices []dataset.Invoice) invoicePeriod {
	current := strconv.Itoa(now.Year())
	years := []string{current}
	for _, inv := range invoices {
		if due, ok := inv.Due(); ok {
			years = append(years, strconv.Itoa(due.Year()))
		}
	}
	slices.Sort(years)
	years = slices.Compact(years)
	return invoicePeriod{
		month: int(now.Month()),
		year:  current,
		years: append([]string{"All"}, years...),
	}
}

// stepMonth moves the month by delta. The first press only marks the month
// as touched so that the displayed month starts to apply.
func (p invoicePeriod) stepMonth(delta int) invoicePeriod {
	if !p.monthTouched {
		p.monthTouched = true
		return p
	}
	p.month = (p.month + delta + len(months)) % len(months)
	return p
}

// stepYear behaves like stepMonth over the year options.
func (p invoicePeriod) stepYear() invoicePeriod {
	if !p.yearTouched {
		p.yearTouched = true
		return p
	}
	i := slices.Index(p.years, p.year)
	p.year = p.years[(i+1)%len(p.years)]
	return p
}

func (p invoicePeriod) monthApplies() bool {
	return p.monthTouched && p.month != 0
}

func (p invoicePeriod) yearApplies() bool {
	return p.yearTouched && p.year != "All"
}

func (p invoicePeriod) matches(inv dataset.Invoice) bool {
	if !p.monthApplies() && !p.yearApplies() {
		return true
	}
	due, ok := inv.Due()
	if !ok {
		return false
	}
	if p.monthApplies() && int(due.Month()) != p.month {
		return false
	}
	if p.yearApplies() && strconv.Itoa(due.Year()) != p.year {
		return false
	}
	return true
}

func (p invoicePeriod) apply(rows []dataset.Invoice) []dataset.Invoice {
	out := make([]dataset.Invoice, 0, len(rows))
	for _, r := range rows {
		if p.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (p invoicePeriod) label() string {
	month := months[p.month]
	if !p.monthTouched {
		month += "*"
	}
	year := p.year
	if !p.yearTouched {
		year += "*"
	}
	return fmt.Sprintf("Due: %s / %s", month, year)
}

type dashboardScreen struct {
	env      env
	chart    []dataset.CasePoint
	cases    *tableView[dataset.Case]
	quotes   *tableView[dataset.Quote]
	invoices *tableView[dataset.Invoice]

	allInvoices []dataset.Invoice
	groups      []table.FilterGroup
	filter      table.Selection
	period      invoicePeriod
	focus       int
}

func newDashboardScreen(e env) *dashboardScreen {
	data := e.store.Snapshot().Data
	size := e.cfg.PageSize.Dashboard
	d := &dashboardScreen{
		env:   e,
		chart: data.Chart,
		cases: newTableView("All Active Cases", data.Cases, table.Config[dataset.Case]{
			Dimensions: caseDimensions(), Columns: caseColumns(), PageSize: size, Comparer: e.comparer,
		}),
		quotes: newTableView("Pending Quotes", data.Quotes, table.Config[dataset.Quote]{
			Dimensions: quoteDimensions(), Columns: quoteColumns(), PageSize: size, Comparer: e.comparer,
		}),
		allInvoices: data.Invoices,
		groups:      dashboardGroups(data.Cases, data.Quotes),
		filter:      table.Selection{},
		period:      newInvoicePeriod(e.now(), data.Invoices),
	}
	d.invoices = newTableView("Unpaid Invoices", d.period.apply(data.Invoices), table.Config[dataset.Invoice]{
		Dimensions:   invoiceDimensions(),
		Columns:      invoiceColumns(),
		PageSize:     size,
		Comparer:     e.comparer,
		DefaultOrder: func(a, b dataset.Invoice) int { return strings.Compare(a.DateDue, b.DateDue) },
	})
	d.setFocus(0)
	return d
}

func (d *dashboardScreen) Init() tea.Cmd { return nil }

func (d *dashboardScreen) Title() string { return "Operations Dashboard" }

func (d *dashboardScreen) capturesInput() bool { return false }

func (d *dashboardScreen) setFocus(i int) {
	d.focus = (i + 3) % 3
	d.cases.focused = d.focus == 0
	d.quotes.focused = d.focus == 1
	d.invoices.focused = d.focus == 2
}

func (d *dashboardScreen) applyFilter(sel table.Selection) {
	d.filter = sel.Clone()
	d.cases.setFilter(d.filter)
	d.quotes.setFilter(d.filter)
	d.invoices.setFilter(d.filter)
	d.env.logger.Info("dashboard filter applied", zap.Int("selected", d.filter.Count()))
}

// setPeriod re-derives the invoice rows. A period change also clears the
// invoice sort, which puts the table back on page 1 in due-date order.
func (d *dashboardScreen) setPeriod(p invoicePeriod) {
	d.period = p
	d.invoices.setSource(p.apply(d.allInvoices))
	d.invoices.pipe.ClearSort()
	d.invoices.cursor = 0
}

func (d *dashboardScreen) Update(msg tea.Msg, keys keyMap) tea.Cmd {
	switch msg := msg.(type) {
	case filterAppliedMsg:
		d.applyFilter(msg.selection)
		return nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.FocusNext):
			d.setFocus(d.focus + 1)
		case key.Matches(msg, keys.FocusPrev):
			d.setFocus(d.focus - 1)
		case key.Matches(msg, keys.Filter):
			return openModalCmd(newFilterModal(d.groups, d.filter))
		case key.Matches(msg, keys.NextMonth):
			d.setPeriod(d.period.stepMonth(1))
		case key.Matches(msg, keys.PrevMonth):
			d.setPeriod(d.period.stepMonth(-1))
		case key.Matches(msg, keys.NextYear):
			d.setPeriod(d.period.stepYear())
		default:
			switch d.focus {
			case 0:
				d.cases.handleKey(msg, keys)
			case 1:
				d.quotes.handleKey(msg, keys)
			default:
				d.invoices.handleKey(msg, keys)
			}
		}
	}
	return nil
}

func chartValue(chart []dataset.CasePoint, name string) int {
	for _, p := range chart {
		if strings.EqualFold(p.Name, name) {
			return p.Value
		}
	}
	return 0
}

func (d *dashboardScreen) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var sections []string

	subtitle := ""
	if n := d.filter.Count(); n > 0 {
		subtitle = fmt.Sprintf("%d filters applied", n)
	}
	sections = append(sections, renderHeading(theme, "Operations Dashboard", subtitle))

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(theme, "Active Cases", chartValue(d.chart, "Active"), theme.Accent),
		statCard(theme, "Pending Quotes", chartValue(d.chart, "Pending"), theme.Warning),
		statCard(theme, "Incidents", chartValue(d.chart, "Cancelled"), theme.Danger),
	)
	overview := lipgloss.JoinHorizontal(lipgloss.Top, cards, "  ", caseChart(theme, d.chart, 20))
	sections = append(sections, overview)

	sections = append(sections, d.cases.view(theme, width))
	sections = append(sections, d.quotes.view(theme, width))
	sections = append(sections, styles.MutedText.Render(d.period.label()+"   m/M month  •  y year  (* not applied)"))
	sections = append(sections, d.invoices.view(theme, width))

	return strings.Join(sections, "\n\n")
}

func statCard(theme Theme, label string, value int, color string) string {
	styles := theme.Styles()
	body := styles.MutedText.Render(label) + "\n" +
		lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(strconv.Itoa(value))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		Padding(0, 2).
		MarginRight(1).
		Width(18).
		Render(body)
}

// caseChart renders the case status chart as horizontal bars scaled to the
// largest value.
func caseChart(theme Theme, chart []dataset.CasePoint, barWidth int) string {
	styles := theme.Styles()
	peak := 0
	for _, p := range chart {
		peak = max(peak, p.Value)
	}
	lines := []string{styles.Text.Bold(true).Render("Case Status")}
	for _, p := range chart {
		n := 0
		if peak > 0 {
			n = p.Value * barWidth / peak
		}
		bar := styles.StatusStyle(p.Name).Padding(0).Render(strings.Repeat(" ", n))
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styles.MutedText.Render(padRight(p.Name, 10)), bar, styles.Text.Render(strconv.Itoa(p.Value))))
	}
	return strings.Join(lines, "\n")
}
