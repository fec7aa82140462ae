package ui

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/opsboard/internal/config"
	"github.com/five82/opsboard/internal/dataset"
	"github.com/five82/opsboard/internal/nav"
	"github.com/five82/opsboard/internal/state"
	"github.com/five82/opsboard/internal/table"
	"github.com/five82/opsboard/internal/toast"
)

func testConfig() config.Config {
	return config.Config{
		Locale:   "en",
		PageSize: config.PageSizes{Dashboard: 5, Incidents: 5, Taxes: 10},
	}
}

func testEnv(t *testing.T, ds dataset.Dataset) env {
	t.Helper()
	return env{
		store:    state.NewStore(ds),
		router:   nav.NewRouter(),
		cfg:      testConfig(),
		logger:   zap.NewNop(),
		comparer: table.NewComparer("en"),
		now:      func() time.Time { return periodNow },
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

func testIncidents() []dataset.Incident {
	return []dataset.Incident{
		{ID: "ISS001", Case: "TYIM250601", IssueType: "Damaged Item", Status: dataset.StatusActive, PIC: "Alice Brown",
			Description: "Crate crushed during unloading", CAPA: "Add corner guards", Attachments: []string{"crate.png"}},
		{ID: "ISS002", Case: "TYIM250602", IssueType: "Other", Status: dataset.StatusPendingApproval, PIC: "John Doe",
			Description: "Customer disputes the pickup time", CAPA: "Confirm by email", Attachments: []string{"mail.pdf"}},
		{ID: "ISS003", Case: "TYIM250603", IssueType: "Documentation Error", Status: dataset.StatusResolved, PIC: "John Doe",
			Description: "Wrong consignee on the waybill", CAPA: "Second check", Attachments: []string{"waybill.pdf"}},
	}
}

type harness struct {
	t     *testing.T
	m     Model
	store *state.Store
}

func newHarness(t *testing.T, ds dataset.Dataset, start string) *harness {
	t.Helper()
	store := state.NewStore(ds)
	opts := Options{
		Store:     store,
		Config:    testConfig(),
		Logger:    zap.NewNop(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Now:       func() time.Time { return periodNow },
	}
	if start != "" {
		route, err := nav.ParseRoute(start)
		if err != nil {
			t.Fatalf("ParseRoute(%q): %v", start, err)
		}
		opts.Start = route
	}
	h := &harness{t: t, m: New(opts), store: store}
	h.send(tea.WindowSizeMsg{Width: 140, Height: 50})
	h.run(h.m.Init(), 0)
	return h
}

// send delivers msg and every message its commands produce. Commands that
// do not return promptly (cursor blinks) are dropped.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	h.deliver(msg, 0)
}

func (h *harness) deliver(msg tea.Msg, depth int) {
	if depth > 20 {
		h.t.Fatalf("message loop too deep at %T", msg)
	}
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	h.run(cmd, depth+1)
}

func (h *harness) run(cmd tea.Cmd, depth int) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return
	}
	// Batches and sequences are both slices of commands; run them in order.
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == reflect.TypeOf(tea.Cmd(nil)) {
		for i := range v.Len() {
			c, _ := v.Index(i).Interface().(tea.Cmd)
			h.run(c, depth)
		}
		return
	}
	switch msg.(type) {
	case nil, tea.QuitMsg:
	default:
		h.deliver(msg, depth)
	}
}

func (h *harness) keys(specs ...string) {
	h.t.Helper()
	for _, s := range specs {
		h.send(keyMsg(s))
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StartsOnDashboard(t *testing.T) {
	h := newHarness(t, dataset.Dataset{}, "")
	if h.m.match.Name != nav.Dashboard {
		t.Fatalf("start screen = %q, want dashboard", h.m.match.Name)
	}
	if !strings.Contains(h.m.View(), "Operations Dashboard") {
		t.Fatal("dashboard title not rendered")
	}
}

func TestModel_SectionKeysNavigate(t *testing.T) {
	h := newHarness(t, dataset.Dataset{}, "")
	want := map[string]string{"2": nav.Incidents, "3": nav.Taxes, "4": nav.Activity, "1": nav.Dashboard}
	for _, k := range []string{"2", "3", "4", "1"} {
		h.keys(k)
		if h.m.match.Name != want[k] {
			t.Fatalf("key %s opened %q, want %q", k, h.m.match.Name, want[k])
		}
	}
	if h.m.history.Len() != 5 {
		t.Fatalf("history len = %d, want 5", h.m.history.Len())
	}
	h.keys("b")
	if h.m.match.Name != nav.Activity {
		t.Fatalf("back opened %q, want activity", h.m.match.Name)
	}
}

func TestModel_UnknownPathShowsNotFound(t *testing.T) {
	h := newHarness(t, dataset.Dataset{}, "/ops/nowhere")
	if _, ok := h.m.current.(*notFoundScreen); !ok {
		t.Fatalf("current = %T, want notFoundScreen", h.m.current)
	}
	if !strings.Contains(h.m.View(), "/ops/nowhere") {
		t.Fatal("not-found view does not name the path")
	}
}

func TestModel_ToastShownOnceAndStripped(t *testing.T) {
	ds := dataset.Dataset{Taxes: sampleTaxes()}
	h := newHarness(t, ds, "/ops/finances/taxes?toast=updated&id=TAX001&keep=1")

	if !h.m.banner.Open || h.m.banner.Title != "Tax updated" {
		t.Fatalf("banner = %+v", h.m.banner)
	}
	if h.m.banner.Description != "Your changes for TAX001 have been saved." {
		t.Fatalf("description = %q", h.m.banner.Description)
	}
	cur := h.m.history.Current()
	if cur.Get(toast.ParamKind) != "" || cur.Get(toast.ParamSubject) != "" || cur.Get("keep") != "1" {
		t.Fatalf("history entry = %s, want toast params stripped and others kept", cur)
	}

	h.keys("r")
	if h.m.banner.Open {
		t.Fatalf("banner reappeared on refresh: %+v", h.m.banner)
	}
}

func TestModel_ToastIgnoredWhereNotUnderstood(t *testing.T) {
	cases := []string{
		"/ops/finances/taxes?toast=resolved&id=TAX001",
		"/ops/finances/taxes?toast=updated",
		"/ops/finances/taxes?toast=bogus&id=TAX001",
		"/ops?toast=updated&id=TAX001",
	}
	for _, start := range cases {
		h := newHarness(t, dataset.Dataset{Taxes: sampleTaxes()}, start)
		if h.m.banner.Open {
			t.Fatalf("%s: unexpected banner %+v", start, h.m.banner)
		}
	}
}

func TestModel_DismissBanner(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Taxes: sampleTaxes()}, "/ops/finances/taxes?toast=updated&id=TAX002")
	h.keys("x")
	if h.m.banner.Open {
		t.Fatal("x did not dismiss the banner")
	}
}

func TestModel_TaxEditRedirectsWithToast(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Taxes: sampleTaxes()}, "/ops/finances/taxes/TAX002/edit")
	if h.m.match.Name != nav.TaxEdit {
		t.Fatalf("screen = %q", h.m.match.Name)
	}

	h.typeText("!")
	h.keys("ctrl+s")

	if h.m.match.Name != nav.Taxes {
		t.Fatalf("after save screen = %q, want taxes", h.m.match.Name)
	}
	if h.m.banner.Title != "Tax updated" || !strings.Contains(h.m.banner.Description, "TAX002") {
		t.Fatalf("banner = %+v", h.m.banner)
	}
	tax, err := h.store.Tax("TAX002")
	if err != nil || tax.NameEN != "Reduced Rate!" {
		t.Fatalf("stored tax = %+v, %v", tax, err)
	}

	h.keys("b")
	if h.m.match.Name != nav.TaxEdit || h.m.banner.Open {
		t.Fatalf("back = %q with banner %+v, want the edit form and no banner", h.m.match.Name, h.m.banner)
	}
}

func TestModel_TaxEditUsesStoredIDSpelling(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Taxes: sampleTaxes()}, "/ops/finances/taxes/tax002/edit")
	if got := h.m.current.Title(); got != "Edit Tax TAX002" {
		t.Fatalf("title = %q, want %q", got, "Edit Tax TAX002")
	}
	h.keys("ctrl+s")
	if !strings.Contains(h.m.banner.Description, "TAX002") {
		t.Fatalf("banner = %+v, want the stored id", h.m.banner)
	}
}

func TestModel_TaxCreateStaysAndResets(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Taxes: sampleTaxes()}, "/ops/finances/taxes/create")

	h.typeText("Stamp Duty")
	h.keys("tab", "tab")
	h.typeText("2.5")
	h.keys("ctrl+s")

	if h.m.match.Name != nav.TaxCreate {
		t.Fatalf("screen = %q, want to stay on create", h.m.match.Name)
	}
	if h.m.banner.Title != "Successfully uploaded" || h.m.banner.Variant != toast.Success {
		t.Fatalf("banner = %+v", h.m.banner)
	}
	taxes := h.store.Snapshot().Data.Taxes
	if len(taxes) != 4 || taxes[3].NameEN != "Stamp Duty" || taxes[3].Rate != 2.5 {
		t.Fatalf("taxes = %+v", taxes)
	}
	f := h.m.current.(*taxForm)
	if f.form.value("name_en") != "" || f.form.value("rate") != "" || f.form.focus != 0 {
		t.Fatalf("form not reset: %q %q focus %d", f.form.value("name_en"), f.form.value("rate"), f.form.focus)
	}
}

func TestModel_TaxCreateInvalidShowsFieldErrors(t *testing.T) {
	h := newHarness(t, dataset.Dataset{}, "/ops/finances/taxes/create")
	h.typeText("X")
	h.keys("ctrl+s")

	f := h.m.current.(*taxForm)
	if f.form.errors.First("name_en") == "" || f.form.errors.First("rate") == "" {
		t.Fatalf("errors = %v", f.form.errors)
	}
	if n := len(h.store.Snapshot().Data.Taxes); n != 0 {
		t.Fatalf("invalid form stored %d taxes", n)
	}
	if !strings.Contains(h.m.View(), "at least 2 characters") {
		t.Fatal("inline error not rendered")
	}
}

func TestModel_TaxNotFound(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Taxes: sampleTaxes()}, "/ops/finances/taxes/TAX404/edit")
	if h.m.banner.Variant != toast.Error || h.m.banner.Title != "Tax not found" {
		t.Fatalf("banner = %+v", h.m.banner)
	}
	if h.m.current.capturesInput() {
		t.Fatal("not-found form should not capture input")
	}
}

func TestModel_IncidentTablesRouteByStatus(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Incidents: testIncidents()}, "/ops/incident")
	s := h.m.current.(*incidentsScreen)
	if s.active.pipe.View().Total != 2 || s.resolved.pipe.View().Total != 1 {
		t.Fatalf("active %d resolved %d", s.active.pipe.View().Total, s.resolved.pipe.View().Total)
	}

	h.keys("enter")
	if h.m.match.Name != nav.IncidentEdit || h.m.match.Var("id") != "ISS001" {
		t.Fatalf("enter on active row opened %+v", h.m.match)
	}

	h.keys("esc")
	h.keys("tab", "enter")
	if h.m.match.Name != nav.IncidentDetail || h.m.match.Var("id") != "ISS003" {
		t.Fatalf("enter on resolved row opened %+v", h.m.match)
	}
}

func TestModel_IncidentCreate(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Incidents: testIncidents()}, "/ops/incident/create")

	h.typeText("TYIM250699")
	h.keys("tab", "right", "tab")
	h.typeText("Pallet arrived wet")
	h.keys("tab")
	h.typeText("Cover loads")
	h.keys("tab")
	h.typeText("wet.jpg, report.docx")
	h.keys("ctrl+s")

	if h.m.banner.Title != "Incident submitted" {
		t.Fatalf("banner = %+v", h.m.banner)
	}
	incs := h.store.Snapshot().Data.Incidents
	got := incs[len(incs)-1]
	if got.ID != "ISS004" || got.IssueType != dataset.IncidentTypes[0] || got.Status != dataset.StatusPendingApproval {
		t.Fatalf("stored incident = %+v", got)
	}
	if strings.Join(got.Attachments, ",") != "wet.jpg,report.docx" {
		t.Fatalf("attachments = %v", got.Attachments)
	}
	if h.m.match.Name != nav.IncidentCreate {
		t.Fatalf("screen = %q, want to stay on create", h.m.match.Name)
	}
}

func TestModel_IncidentCreateRejectsBadAttachments(t *testing.T) {
	h := newHarness(t, dataset.Dataset{}, "/ops/incident/create")
	h.keys("tab", "tab", "tab", "tab")
	h.typeText("run.exe")
	h.keys("ctrl+s")

	f := h.m.current.(*incidentForm)
	for _, field := range []string{"caseNo", "incidentType", "description", "capa", "attachments"} {
		if f.form.errors.First(field) == "" {
			t.Fatalf("no error for %s: %v", field, f.form.errors)
		}
	}
}

func TestModel_IncidentEditKeepsPICAndStatus(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Incidents: testIncidents()}, "/ops/incident/ISS002/edit")

	f := h.m.current.(*incidentForm)
	if f.form.value("attachments") != "" {
		t.Fatal("attachments should start empty on edit")
	}
	if f.form.field("status") != nil {
		t.Fatal("edit form must not offer a status field")
	}

	h.keys("tab", "tab", "tab", "tab")
	h.typeText("new-mail.pdf")
	h.keys("ctrl+s")

	if h.m.match.Name != nav.Incidents || h.m.banner.Title != "Incident updated" {
		t.Fatalf("screen %q banner %+v", h.m.match.Name, h.m.banner)
	}
	got, _ := h.store.Incident("ISS002")
	if got.PIC != "John Doe" || got.Status != dataset.StatusPendingApproval {
		t.Fatalf("stored = %+v", got)
	}
	if len(got.Attachments) != 1 || got.Attachments[0] != "new-mail.pdf" {
		t.Fatalf("attachments = %v", got.Attachments)
	}
}

func TestModel_IncidentResolve(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Incidents: testIncidents()}, "/ops/incident/ISS001/edit")

	h.keys("tab", "tab", "tab", "tab")
	h.typeText("crate.png")
	h.keys("ctrl+r")
	if _, ok := h.m.modal.(*confirmModal); !ok {
		t.Fatalf("modal = %T, want confirmModal", h.m.modal)
	}
	if !containsAll(h.m.View(), "mark ISS001 as", "Resolved?") {
		t.Fatal("confirm text not rendered")
	}

	h.keys("y")
	if h.m.match.Name != nav.Incidents {
		t.Fatalf("screen = %q, want incidents", h.m.match.Name)
	}
	if h.m.banner.Title != "Incident resolved" || h.m.banner.Description != "Incident ISS001 has been resolved." {
		t.Fatalf("banner = %+v", h.m.banner)
	}
	got, _ := h.store.Incident("ISS001")
	if got.Status != dataset.StatusResolved || got.PIC != "Alice Brown" {
		t.Fatalf("stored = %+v", got)
	}
}

func TestModel_IncidentResolveCancelled(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Incidents: testIncidents()}, "/ops/incident/ISS001/edit")
	h.keys("ctrl+r", "n")
	if h.m.modal != nil || h.m.match.Name != nav.IncidentEdit {
		t.Fatalf("modal %T screen %q", h.m.modal, h.m.match.Name)
	}
	got, _ := h.store.Incident("ISS001")
	if got.Status != dataset.StatusActive {
		t.Fatalf("status = %s, want Active", got.Status)
	}
}

func TestModel_IncidentResolveInvalidShowsErrors(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Incidents: testIncidents()}, "/ops/incident/ISS001/edit")
	h.keys("ctrl+r", "y")

	f := h.m.current.(*incidentForm)
	if f.form.errors.First("attachments") == "" {
		t.Fatalf("errors = %v, want an attachments error", f.form.errors)
	}
	got, _ := h.store.Incident("ISS001")
	if got.Status != dataset.StatusActive {
		t.Fatalf("status = %s after invalid resolve", got.Status)
	}
}

func TestModel_ResolveBlockedUnlessActive(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Incidents: testIncidents()}, "/ops/incident/ISS002/edit")
	h.keys("ctrl+r")
	if h.m.modal != nil {
		t.Fatal("resolve modal opened for a pending incident")
	}
	if f := h.m.current.(*incidentForm); f.tip != resolveBlockedTip {
		t.Fatalf("tip = %q", f.tip)
	}
}

func TestModel_IncidentNotFound(t *testing.T) {
	for _, start := range []string{"/ops/incident/ISS999/edit", "/ops/incident/ISS999/detail"} {
		h := newHarness(t, dataset.Dataset{Incidents: testIncidents()}, start)
		if h.m.banner.Variant != toast.Error || h.m.banner.Title != "Incident not found" {
			t.Fatalf("%s: banner = %+v", start, h.m.banner)
		}
		if h.m.banner.Description != "No incident with ID ISS999." {
			t.Fatalf("%s: description = %q", start, h.m.banner.Description)
		}
	}
}

func TestModel_IncidentDetail(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Incidents: testIncidents()}, "/ops/incident/ISS003/detail")
	if !containsAll(h.m.View(), "Incident ISS003", "Wrong consignee", "waybill.pdf", "Resolved") {
		t.Fatalf("detail view:\n%s", h.m.View())
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	h := newHarness(t, dataset.Dataset{}, "")
	if h.m.theme.Name != "Slate" {
		t.Fatalf("theme = %q", h.m.theme.Name)
	}
	h.keys("T")
	if h.m.theme.Name != "Nightfox" || h.m.prefs.Theme != "Nightfox" {
		t.Fatalf("theme = %q prefs = %q", h.m.theme.Name, h.m.prefs.Theme)
	}
}

func TestModel_FilterModalAppliesOnConfirm(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Taxes: sampleTaxes()}, "/ops/finances/taxes")
	h.keys("f")
	if _, ok := h.m.modal.(*filterModal); !ok {
		t.Fatalf("modal = %T", h.m.modal)
	}
	h.keys(" ")
	s := h.m.current.(*taxesScreen)
	if s.taxes.pipe.View().Total != 3 {
		t.Fatal("draft selection applied before confirm")
	}
	h.keys("enter")
	if h.m.modal != nil {
		t.Fatal("modal still open after confirm")
	}
	if s.taxes.pipe.View().Total != 1 {
		t.Fatalf("rows after filter = %d, want 1", s.taxes.pipe.View().Total)
	}
}

func TestModel_FilterModalSearchAndClear(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Taxes: sampleTaxes()}, "/ops/finances/taxes")
	s := h.m.current.(*taxesScreen)
	h.keys("f", "/")
	h.typeText("8")
	h.keys("enter")
	fm, ok := h.m.modal.(*filterModal)
	if !ok {
		t.Fatalf("modal = %T after leaving search", h.m.modal)
	}
	if len(fm.rows) != 1 || fm.rows[0].option != "8%" {
		t.Fatalf("rows = %+v, want only 8%%", fm.rows)
	}
	h.keys(" ", "enter")
	if got := s.taxes.pipe.View().Total; got != 1 {
		t.Fatalf("rows after filter = %d, want 1", got)
	}

	h.keys("f", "c")
	if h.m.modal != nil {
		t.Fatal("clear left the modal open")
	}
	if s.filter.Count() != 0 {
		t.Fatalf("filter after clear = %v", s.filter)
	}
	if got := s.taxes.pipe.View().Total; got != 3 {
		t.Fatalf("rows after clear = %d, want 3", got)
	}
}

func TestModel_FooterOffersBackOnlyWithHistory(t *testing.T) {
	h := newHarness(t, dataset.Dataset{Taxes: sampleTaxes()}, "")
	if strings.Contains(h.m.renderFooter(), "b Back") {
		t.Fatalf("footer on the first route offers back:\n%s", h.m.renderFooter())
	}
	h.keys("3")
	if !strings.Contains(h.m.renderFooter(), "b Back") {
		t.Fatalf("footer after navigating lacks back:\n%s", h.m.renderFooter())
	}
	h.keys("b")
	if strings.Contains(h.m.renderFooter(), "b Back") {
		t.Fatalf("footer after returning to the first route offers back:\n%s", h.m.renderFooter())
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	h := newHarness(t, dataset.Dataset{}, "")
	h.keys("?")
	if !containsAll(h.m.View(), "Keyboard Shortcuts", "Sort & Filter") {
		t.Fatalf("help view:\n%s", h.m.View())
	}
	h.keys("2")
	if h.m.showHelp || h.m.match.Name != nav.Dashboard {
		t.Fatal("a key press on the help overlay should only close it")
	}
}

func TestModel_FormCapturesSectionKeys(t *testing.T) {
	h := newHarness(t, dataset.Dataset{}, "/ops/finances/taxes/create")
	h.typeText("2")
	if h.m.match.Name != nav.TaxCreate {
		t.Fatalf("typing in a form navigated to %q", h.m.match.Name)
	}
	if got := h.m.current.(*taxForm).form.value("name_en"); got != "2" {
		t.Fatalf("name_en = %q, want the typed digit", got)
	}
	// Nothing to go back to from the start route.
	h.keys("esc")
	if h.m.match.Name != nav.TaxCreate {
		t.Fatalf("esc from the first route opened %q", h.m.match.Name)
	}
}
