package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/opsboard/internal/config"
	"github.com/five82/opsboard/internal/dataset"
	"github.com/five82/opsboard/internal/nav"
	"github.com/five82/opsboard/internal/prefs"
	"github.com/five82/opsboard/internal/state"
	"github.com/five82/opsboard/internal/table"
	"github.com/five82/opsboard/internal/toast"
)

// Options configures the UI.
type Options struct {
	// Context stops the program when cancelled.
	Context   context.Context
	Store     *state.Store
	Config    config.Config
	Logger    *zap.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	// ThemeName overrides the saved theme when set.
	ThemeName string
	// Start is the first route; the zero Route opens the dashboard.
	Start nav.Route
	// Now is the clock used for the invoice period defaults.
	Now func() time.Time
}

// env is what every screen shares.
type env struct {
	store    *state.Store
	router   *nav.Router
	cfg      config.Config
	logger   *zap.Logger
	comparer *table.Comparer
	now      func() time.Time
}

// goTo navigates to a named route. Routes that cannot be built (an id with
// a slash, say) are logged and ignored.
func (e env) goTo(name string, pairs ...string) tea.Cmd {
	route, err := e.router.Build(name, pairs...)
	if err != nil {
		e.logger.Warn("build route", zap.String("name", name), zap.Error(err))
		return nil
	}
	return navigateCmd(route)
}

// screen is one routed page of the console.
type screen interface {
	// Init runs once when the screen is opened.
	Init() tea.Cmd
	Update(msg tea.Msg, keys keyMap) tea.Cmd
	View(theme Theme, width, height int) string
	Title() string
	// capturesInput reports whether single-letter keys belong to the screen.
	capturesInput() bool
}

// arrivalToasts lists the toast kinds each destination understands.
var arrivalToasts = map[string]toast.Templates{
	nav.Incidents: {
		toast.Resolved: {Title: "Incident resolved", Description: "Incident %s has been resolved."},
		toast.Updated:  {Title: "Incident updated", Description: "Your changes for %s have been saved."},
	},
	nav.Taxes: {
		toast.Updated: {Title: "Tax updated", Description: "Your changes for %s have been saved."},
	},
}

type openMode int

const (
	openPush openMode = iota
	// openStay re-opens the current history entry (refresh or back).
	openStay
)

// Model is the root application state for Bubble Tea.
type Model struct {
	env       env
	keys      keyMap
	prefs     prefs.Prefs
	prefsPath string

	theme  Theme
	width  int
	height int
	ready  bool

	history *nav.History
	current screen
	match   nav.Match
	banner  toast.Banner

	modal    Modal
	showHelp bool
	initCmd  tea.Cmd
}

// New creates the root model and opens the start route.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	store := opts.Store
	if store == nil {
		store = state.NewStore(dataset.Dataset{})
	}

	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Default()
	}
	themeName := p.Theme
	if opts.ThemeName != "" {
		themeName = opts.ThemeName
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	router := nav.NewRouter()
	m := Model{
		env: env{
			store:    store,
			router:   router,
			cfg:      opts.Config,
			logger:   logger,
			comparer: table.NewComparer(opts.Config.Locale),
			now:      now,
		},
		keys:      DefaultKeyMap(),
		prefs:     p,
		prefsPath: prefsPath,
		theme:     GetTheme(themeName),
	}

	start := opts.Start
	if start.Path == "" {
		start = router.MustBuild(nav.Dashboard)
	}
	m.history = nav.NewHistory(start)
	m.initCmd = m.open(start, openStay)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case navigateMsg:
		return m, m.open(msg.route, openPush)

	case backMsg:
		return m, m.back()

	case bannerMsg:
		m.banner = msg.banner
		return m, nil

	case openModalMsg:
		m.modal = msg.modal
		return m, nil
	}

	return m, m.current.Update(msg, m.keys)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Modals and the help overlay take
// precedence; screens that capture text input only yield ctrl+c.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.current.capturesInput() {
		return m, m.current.Update(msg, m.keys)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.prefs.SidebarCollapsed = !m.prefs.SidebarCollapsed
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.GoDashboard):
		return m, m.open(m.env.router.MustBuild(nav.Dashboard), openPush)
	case key.Matches(msg, m.keys.GoIncidents):
		return m, m.open(m.env.router.MustBuild(nav.Incidents), openPush)
	case key.Matches(msg, m.keys.GoTaxes):
		return m, m.open(m.env.router.MustBuild(nav.Taxes), openPush)
	case key.Matches(msg, m.keys.GoActivity):
		return m, m.open(m.env.router.MustBuild(nav.Activity), openPush)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.open(m.history.Current(), openStay)

	case key.Matches(msg, m.keys.Back):
		return m, m.back()

	case key.Matches(msg, m.keys.Dismiss):
		if m.banner.Open {
			m.banner.Dismiss()
			return m, nil
		}
	}

	return m, m.current.Update(msg, m.keys)
}

// open makes route current. Arriving at a destination that understands a
// toast turns it into a banner and replaces the history entry with the
// stripped route, so revisiting it does not show the banner again.
func (m *Model) open(route nav.Route, mode openMode) tea.Cmd {
	m.banner.Dismiss()
	m.modal = nil
	if mode == openPush {
		m.history.Push(route)
	}

	match, err := m.env.router.Resolve(route)
	if err != nil {
		m.env.logger.Warn("unknown route", zap.String("route", route.String()), zap.Error(err))
		m.match = nav.Match{}
		m.current = newNotFoundScreen(route)
		return m.current.Init()
	}
	m.match = match
	m.env.logger.Debug("navigate", zap.String("route", route.String()), zap.String("screen", match.Name))

	if tpls, ok := arrivalToasts[match.Name]; ok {
		if b, clean, ok := toast.Consume(route, tpls); ok {
			m.banner = b
			m.history.Replace(clean)
			m.env.logger.Info("toast shown",
				zap.String("screen", match.Name),
				zap.String("kind", route.Get(toast.ParamKind)),
				zap.String("id", route.Get(toast.ParamSubject)))
		}
	}

	m.current = m.build(match, route)
	return m.current.Init()
}

func (m *Model) back() tea.Cmd {
	route, ok := m.history.Back()
	if !ok {
		return nil
	}
	return m.open(route, openStay)
}

func (m *Model) build(match nav.Match, route nav.Route) screen {
	switch match.Name {
	case nav.Dashboard:
		return newDashboardScreen(m.env)
	case nav.Incidents:
		return newIncidentsScreen(m.env)
	case nav.IncidentCreate:
		return newIncidentForm(m.env, "")
	case nav.IncidentEdit:
		return newIncidentForm(m.env, match.Var("id"))
	case nav.IncidentDetail:
		return newIncidentDetail(m.env, match.Var("id"))
	case nav.Taxes:
		return newTaxesScreen(m.env)
	case nav.TaxCreate:
		return newTaxForm(m.env, "")
	case nav.TaxEdit:
		return newTaxForm(m.env, match.Var("id"))
	case nav.Activity:
		return newActivityScreen(m.env)
	}
	return newNotFoundScreen(route)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.env.logger.Warn("save prefs", zap.Error(err))
	}
}

// Messages

type navigateMsg struct {
	route nav.Route
}

type backMsg struct{}

type bannerMsg struct {
	banner toast.Banner
}

type openModalMsg struct {
	modal Modal
}

// Commands

func navigateCmd(route nav.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: route} }
}

func backCmd() tea.Msg {
	return backMsg{}
}

func bannerCmd(b toast.Banner) tea.Cmd {
	return func() tea.Msg { return bannerMsg{banner: b} }
}

func openModalCmd(modal Modal) tea.Cmd {
	return func() tea.Msg { return openModalMsg{modal: modal} }
}

// delayCmd delivers msg after the simulated request latency.
func delayCmd(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	return err
}
